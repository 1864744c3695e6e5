package pattern

// Parsed couples a syntactic value with its half-open [Start, End) byte range
// in the original, unescaped pattern source. Ranges at the same nesting level
// never overlap and a child's range is always contained in its parent's.
type Parsed[T any] struct {
	Value T
	Start int
	End   int
}
