// Package pattern implements the repath pattern language: a flat substitution
// grammar where "prefix_{b|u}.{e|l}" expands variables (file name, counter,
// capture group, ...) and pipes them through filters (substring, case,
// padding, replacement, ...). Every parsed node keeps its byte range in the
// original source so parse and evaluation errors can be underlined against
// the pattern text.
package pattern

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ItemKind distinguishes constant text from expressions.
type ItemKind int

const (
	ItemConstant ItemKind = iota
	ItemExpression
)

// Item is one top-level unit of a pattern: either constant text (escape
// sequences already resolved) or an expression of one variable and its
// filter chain.
type Item struct {
	Kind     ItemKind
	Constant string
	Variable Parsed[Variable]
	Filters  []Parsed[Filter]
}

// Pattern is the parsed, immutable representation of one pattern source.
// It is built once and evaluated repeatedly, once per input value.
type Pattern struct {
	source string
	items  []Parsed[Item]
}

// Source returns the original pattern text.
func (p *Pattern) Source() string {
	return p.source
}

// Eval resolves the pattern against ctx in one forward pass. Constants are
// appended verbatim; each expression resolves its variable and folds the
// result through its filters in pipe order. The first failure aborts the
// evaluation with an *EvalError carrying the failing node's source range.
func (p *Pattern) Eval(ctx *EvalContext) (string, error) {
	if !utf8.ValidString(ctx.Input) {
		return "", &EvalError{
			Err:    ErrInputNotUTF8,
			Source: p.source,
			Input:  ctx.Input,
			Start:  0,
			End:    len(p.source),
		}
	}

	var out strings.Builder

	for _, item := range p.items {
		if item.Value.Kind == ItemConstant {
			out.WriteString(item.Value.Constant)

			continue
		}

		value, err := item.Value.Variable.Value.eval(ctx)
		if err != nil {
			return "", &EvalError{
				Err:    err,
				Source: p.source,
				Input:  ctx.Input,
				Start:  item.Value.Variable.Start,
				End:    item.Value.Variable.End,
			}
		}

		for _, filter := range item.Value.Filters {
			value = filter.Value.apply(value)
		}

		if ctx.Quote != 0 {
			value = quoteValue(value, ctx.Quote)
		}

		out.WriteString(value)
	}

	return out.String(), nil
}

// Explanation is one human-readable node description paired with the node's
// source range. Rendering (colors, underlines) is up to the caller.
type Explanation struct {
	Description string
	Start       int
	End         int
}

// Explain lists every constant, variable and filter of the pattern with its
// exact source range, in source order.
func (p *Pattern) Explain() []Explanation {
	var out []Explanation

	for _, item := range p.items {
		if item.Value.Kind == ItemConstant {
			out = append(out, Explanation{
				Description: fmt.Sprintf("constant %q", item.Value.Constant),
				Start:       item.Start,
				End:         item.End,
			})

			continue
		}

		v := item.Value.Variable
		out = append(out, Explanation{Description: v.Value.String(), Start: v.Start, End: v.End})

		for _, f := range item.Value.Filters {
			out = append(out, Explanation{Description: f.Value.String(), Start: f.Start, End: f.End})
		}
	}

	return out
}

// UsesLocalCounter reports whether any expression reads the local counter.
// The caller only needs to track per-directory counter state when it does.
func (p *Pattern) UsesLocalCounter() bool {
	return p.usesVariable(VarLocalCounter)
}

// UsesGlobalCounter reports whether any expression reads the global counter.
func (p *Pattern) UsesGlobalCounter() bool {
	return p.usesVariable(VarGlobalCounter)
}

// UsesCaptureGroups reports whether any expression references a regex capture
// group, so the caller knows a regex must be supplied.
func (p *Pattern) UsesCaptureGroups() bool {
	return p.usesVariable(VarCaptureGroup)
}

func (p *Pattern) usesVariable(kind VariableKind) bool {
	for _, item := range p.items {
		if item.Value.Kind == ItemExpression && item.Value.Variable.Value.Kind == kind {
			return true
		}
	}

	return false
}
