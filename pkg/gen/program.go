package gen

import "strings"

// Program is an ordered sequence of generated instructions.
type Program struct {
	Instructions []Instruction
}

// Render prints the program, one instruction per line, with a trailing
// newline. Rendering is pure: two calls on the same program are identical.
func (p *Program) Render() string {
	var b strings.Builder
	for _, insn := range p.Instructions {
		b.WriteString(insn.Render())
		b.WriteByte('\n')
	}
	return b.String()
}

// Regenerate re-randomizes the free operands of every instruction in place,
// preserving program structure. Labels and explicitly initialized operands
// keep their values.
func (p *Program) Regenerate(ctx *Context) error {
	for _, insn := range p.Instructions {
		if err := insn.Regenerate(ctx); err != nil {
			return err
		}
	}
	return nil
}
