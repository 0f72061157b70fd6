package gen

import (
	"github.com/hwfuzz/stimgen/pkg/category"
	"github.com/hwfuzz/stimgen/pkg/width"
)

// Instruction is one generated assembly line. Render produces the textual
// form; Regenerate re-randomizes the instruction's free operands in ctx,
// leaving explicitly initialized ones untouched.
type Instruction interface {
	Categories() category.Set
	Render() string
	Regenerate(ctx *Context) error
}

// Producer emits zero or more instructions into a run. Simple producers wrap
// a single instruction shape; compound producers emit a whole idiom (a
// bounds-checked memory read, a labeled loop) in one call.
type Producer func(ctx *Context) ([]Instruction, error)

// Pattern is a catalog entry: a named producer tagged with the categories it
// can stand in for during selection.
type Pattern struct {
	Name string
	Cats category.Set
	Body Producer
}

// Produce runs the pattern's body.
func (p Pattern) Produce(ctx *Context) ([]Instruction, error) {
	return p.Body(ctx)
}

// InstructionSet is an architecture plugin: the pattern catalog plus the
// address spaces memory and I/O operands are drawn from. Catalog order is
// significant; selection preserves it so runs stay reproducible.
type InstructionSet interface {
	Name() string
	Catalog() []Pattern
	MemorySpace() width.Range
	IOSpace() width.Range
}

// Select picks exactly one of the given producers uniformly and runs it.
func Select(producers ...Producer) Producer {
	return func(ctx *Context) ([]Instruction, error) {
		return producers[ctx.RNG().Intn(len(producers))](ctx)
	}
}

// OfCategory picks one catalog pattern carrying cat, honoring the active
// constraints, and runs it.
func OfCategory(cat category.Category) Producer {
	return func(ctx *Context) ([]Instruction, error) {
		p, err := ctx.choosePattern(&cat)
		if err != nil {
			return nil, err
		}
		return p.Produce(ctx)
	}
}

// Any picks one catalog pattern without a category requirement, honoring the
// active constraints, and runs it.
func Any() Producer {
	return func(ctx *Context) ([]Instruction, error) {
		p, err := ctx.choosePattern(nil)
		if err != nil {
			return nil, err
		}
		return p.Produce(ctx)
	}
}

// Fill performs n catalog draws and concatenates their output. Compound
// patterns may emit more than one instruction per draw.
func Fill(n int) Producer {
	return repeat(n, Any())
}

// FillWithCategory is Fill restricted to patterns carrying cat.
func FillWithCategory(n int, cat category.Category) Producer {
	return repeat(n, OfCategory(cat))
}

// Seq runs the given producers in order and concatenates their output.
func Seq(producers ...Producer) Producer {
	return func(ctx *Context) ([]Instruction, error) {
		var out []Instruction
		for _, p := range producers {
			insns, err := p(ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, insns...)
		}
		return out, nil
	}
}

func repeat(n int, p Producer) Producer {
	return func(ctx *Context) ([]Instruction, error) {
		var out []Instruction
		for i := 0; i < n; i++ {
			insns, err := p(ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, insns...)
		}
		return out, nil
	}
}
