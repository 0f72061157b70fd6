package gen

import (
	"fmt"
	"math/big"

	"github.com/hwfuzz/stimgen/pkg/width"
)

// RegisterFile names an architectural register file: Count registers printed
// as Prefix followed by the index.
type RegisterFile struct {
	Name   string
	Prefix string
	Count  int
}

// Register is a concrete member of a file.
type Register struct {
	File  *RegisterFile
	Index int
}

func (r Register) String() string {
	return fmt.Sprintf("%s%d", r.File.Prefix, r.Index)
}

// Pick resolves a register operand. A nil init draws uniformly from the file;
// a non-nil init is validated against the file's bounds and an out-of-range
// index is an IllegalRegisterError.
func (f *RegisterFile) Pick(ctx *Context, init *Register) (Register, error) {
	if init != nil {
		if init.Index < 0 || init.Index >= f.Count {
			return Register{}, &IllegalRegisterError{File: f.Name, Index: init.Index}
		}
		return Register{File: f, Index: init.Index}, nil
	}
	return Register{File: f, Index: ctx.RNG().Intn(f.Count)}, nil
}

// Constant resolves an immediate operand of width w. A nil init draws
// uniformly over w's range; a non-nil init is validated against it and a
// value outside the range is a WidthViolationError.
func Constant(ctx *Context, w width.Width, init *big.Int) (*big.Int, error) {
	if init != nil {
		if !w.Fits(init) {
			return nil, &WidthViolationError{Value: init, Width: w}
		}
		return new(big.Int).Set(init), nil
	}
	return ctx.RNG().UniformRange(w.Range()), nil
}

// LabelRef resolves a label operand: the given record when non-nil, otherwise
// a uniform pick from the jump targets registered so far.
func LabelRef(ctx *Context, init *LabelRecord) (LabelRecord, error) {
	if init != nil {
		return *init, nil
	}
	return ctx.NextJumpTarget()
}
