package gen

import "github.com/hwfuzz/stimgen/pkg/category"

// LabelInsn is a label definition emitted into the instruction stream. It
// renders as "name:" and is a jump target for every later label reference.
type LabelInsn struct {
	Record    LabelRecord
	Anonymous bool
}

func (l *LabelInsn) Categories() category.Set {
	return category.NewSet(category.Label)
}

func (l *LabelInsn) Render() string {
	return l.Record.Name + ":"
}

// Regenerate is a no-op: a label's identity is fixed at definition time and
// regenerating it would orphan every reference already emitted.
func (l *LabelInsn) Regenerate(ctx *Context) error {
	return nil
}

// Label emits an anonymous label, registering a fresh RANDOM_LABEL_<n> name.
func Label() Producer {
	return func(ctx *Context) ([]Instruction, error) {
		rec := ctx.DefineLabel("")
		return []Instruction{&LabelInsn{Record: rec, Anonymous: true}}, nil
	}
}

// LabelNamed emits a label with a caller-chosen name and registers it.
func LabelNamed(name string) Producer {
	return func(ctx *Context) ([]Instruction, error) {
		rec := ctx.DefineLabel(name)
		return []Instruction{&LabelInsn{Record: rec}}, nil
	}
}
