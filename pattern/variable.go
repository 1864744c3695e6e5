package pattern

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// VariableKind identifies a substitution source. The set is closed, so the
// evaluator can match exhaustively.
type VariableKind int

const (
	VarFileName VariableKind = iota
	VarBaseName
	VarExtension
	VarExtensionWithDot
	VarParentDir
	VarParentDirName
	VarAbsolutePath
	VarLocalCounter
	VarGlobalCounter
	VarUUID
	VarCaptureGroup
)

// Variable is one parsed substitution source. Group is only meaningful for
// VarCaptureGroup.
type Variable struct {
	Kind  VariableKind
	Group uint64
}

// parseVariable parses one variable tag from the segment reader and verifies
// nothing trails it.
func parseVariable(rd *reader) (Parsed[Variable], *ParseError) {
	start := rd.position()

	r, ok := rd.peek()
	if !ok {
		return Parsed[Variable]{}, &ParseError{Err: ErrExpectedVariable, Start: start, End: rd.end()}
	}

	var v Variable

	if r >= '0' && r <= '9' {
		group, perr := parseUint(rd, math.MaxInt32)
		if perr != nil {
			return Parsed[Variable]{}, perr
		}

		v = Variable{Kind: VarCaptureGroup, Group: group}
	} else {
		rd.next()

		switch r {
		case 'f':
			v = Variable{Kind: VarFileName}
		case 'b':
			v = Variable{Kind: VarBaseName}
		case 'e':
			v = Variable{Kind: VarExtension}
		case 'E':
			v = Variable{Kind: VarExtensionWithDot}
		case 'd':
			v = Variable{Kind: VarParentDir}
		case 'D':
			v = Variable{Kind: VarParentDirName}
		case 'p':
			v = Variable{Kind: VarAbsolutePath}
		case 'c':
			v = Variable{Kind: VarLocalCounter}
		case 'C':
			v = Variable{Kind: VarGlobalCounter}
		case 'u':
			v = Variable{Kind: VarUUID}
		default:
			return Parsed[Variable]{}, &ParseError{
				Err:   fmt.Errorf("%w: '%c'", ErrUnknownVariable, r),
				Start: start,
				End:   rd.position(),
			}
		}
	}

	end := rd.position()

	if perr := ensureDone(rd); perr != nil {
		return Parsed[Variable]{}, perr
	}

	return Parsed[Variable]{Value: v, Start: start, End: end}, nil
}

// eval resolves the variable against ctx. Errors are raw sentinels; the
// pattern evaluator wraps them with the node's range.
func (v Variable) eval(ctx *EvalContext) (string, error) {
	switch v.Kind {
	case VarFileName:
		return filepath.Base(ctx.Input), nil
	case VarBaseName:
		name := filepath.Base(ctx.Input)

		return strings.TrimSuffix(name, filepath.Ext(name)), nil
	case VarExtension:
		return strings.TrimPrefix(filepath.Ext(filepath.Base(ctx.Input)), "."), nil
	case VarExtensionWithDot:
		return filepath.Ext(filepath.Base(ctx.Input)), nil
	case VarParentDir:
		return filepath.Dir(ctx.Input), nil
	case VarParentDirName:
		return filepath.Base(filepath.Dir(ctx.Input)), nil
	case VarAbsolutePath:
		return absolutePath(ctx)
	case VarLocalCounter:
		return strconv.FormatUint(ctx.LocalCounter, 10), nil
	case VarGlobalCounter:
		return strconv.FormatUint(ctx.GlobalCounter, 10), nil
	case VarUUID:
		return uuid.NewString(), nil
	case VarCaptureGroup:
		if v.Group == 0 {
			return "", ErrCaptureGroupZeroIndex
		}

		if v.Group > uint64(len(ctx.CaptureGroups)) {
			return "", fmt.Errorf("%w: group %d of %d", ErrCaptureGroupOverflow, v.Group, len(ctx.CaptureGroups))
		}

		return ctx.CaptureGroups[v.Group-1], nil
	default:
		return "", fmt.Errorf("%w: kind %d", ErrUnknownVariable, v.Kind)
	}
}

// absolutePath resolves the input against the context working directory
// without touching the filesystem. filepath.Abs is only consulted when no
// working directory was supplied.
func absolutePath(ctx *EvalContext) (string, error) {
	if filepath.IsAbs(ctx.Input) {
		return filepath.Clean(ctx.Input), nil
	}

	if ctx.WorkDir != "" {
		return filepath.Join(ctx.WorkDir, ctx.Input), nil
	}

	abs, err := filepath.Abs(ctx.Input)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCanonicalization, err)
	}

	return abs, nil
}

func (v Variable) String() string {
	switch v.Kind {
	case VarFileName:
		return "file name"
	case VarBaseName:
		return "base name"
	case VarExtension:
		return "extension"
	case VarExtensionWithDot:
		return "extension with dot"
	case VarParentDir:
		return "parent directory"
	case VarParentDirName:
		return "parent directory name"
	case VarAbsolutePath:
		return "absolute path"
	case VarLocalCounter:
		return "local counter"
	case VarGlobalCounter:
		return "global counter"
	case VarUUID:
		return "random UUID"
	case VarCaptureGroup:
		return fmt.Sprintf("capture group %d", v.Group)
	default:
		return fmt.Sprintf("variable %d", v.Kind)
	}
}
