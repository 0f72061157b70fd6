// Package demoisa is a small RISC-style instruction set used to exercise the
// generator end to end: register ALU ops, immediates, indirect loads and
// stores, port I/O, labels and branches, all over a 16-register file.
package demoisa

import (
	"fmt"
	"math/big"

	"github.com/hwfuzz/stimgen/pkg/category"
	"github.com/hwfuzz/stimgen/pkg/gen"
	"github.com/hwfuzz/stimgen/pkg/width"
)

// GPR is the general purpose register file, printed x0..x15.
var GPR = &gen.RegisterFile{Name: "gpr", Prefix: "x", Count: 16}

// Operand widths.
var (
	ImmS12 = width.Signed(12)   // addi
	ImmU20 = width.Unsigned(20) // li
	Port   = width.Unsigned(8)  // in, out
	Addr   = width.Unsigned(16) // memory space
)

// --- Register ALU Instructions ---

// Add - three-register addition
type Add struct {
	Rd, Rs1, Rs2 gen.Register
}

// Sub - three-register subtraction
type Sub struct {
	Rd, Rs1, Rs2 gen.Register
}

// And - bitwise and
type And struct {
	Rd, Rs1, Rs2 gen.Register
}

// Or - bitwise or
type Or struct {
	Rd, Rs1, Rs2 gen.Register
}

// Xor - bitwise exclusive or
type Xor struct {
	Rd, Rs1, Rs2 gen.Register
}

func (i *Add) Categories() category.Set { return category.NewSet(category.Arithmetic) }
func (i *Sub) Categories() category.Set { return category.NewSet(category.Arithmetic) }
func (i *And) Categories() category.Set { return category.NewSet(category.Logical) }
func (i *Or) Categories() category.Set  { return category.NewSet(category.Logical) }
func (i *Xor) Categories() category.Set { return category.NewSet(category.Logical) }

func render3(mnem string, rd, rs1, rs2 gen.Register) string {
	return fmt.Sprintf("\t%s\t%s, %s, %s", mnem, rd, rs1, rs2)
}

func (i *Add) Render() string { return render3("add", i.Rd, i.Rs1, i.Rs2) }
func (i *Sub) Render() string { return render3("sub", i.Rd, i.Rs1, i.Rs2) }
func (i *And) Render() string { return render3("and", i.Rd, i.Rs1, i.Rs2) }
func (i *Or) Render() string  { return render3("or", i.Rd, i.Rs1, i.Rs2) }
func (i *Xor) Render() string { return render3("xor", i.Rd, i.Rs1, i.Rs2) }

func pick3(ctx *gen.Context) (rd, rs1, rs2 gen.Register, err error) {
	if rd, err = GPR.Pick(ctx, nil); err != nil {
		return
	}
	if rs1, err = GPR.Pick(ctx, nil); err != nil {
		return
	}
	rs2, err = GPR.Pick(ctx, nil)
	return
}

func (i *Add) Regenerate(ctx *gen.Context) (err error) {
	i.Rd, i.Rs1, i.Rs2, err = pick3(ctx)
	return
}
func (i *Sub) Regenerate(ctx *gen.Context) (err error) {
	i.Rd, i.Rs1, i.Rs2, err = pick3(ctx)
	return
}
func (i *And) Regenerate(ctx *gen.Context) (err error) {
	i.Rd, i.Rs1, i.Rs2, err = pick3(ctx)
	return
}
func (i *Or) Regenerate(ctx *gen.Context) (err error) {
	i.Rd, i.Rs1, i.Rs2, err = pick3(ctx)
	return
}
func (i *Xor) Regenerate(ctx *gen.Context) (err error) {
	i.Rd, i.Rs1, i.Rs2, err = pick3(ctx)
	return
}

// --- Immediate Instructions ---

// Addi - add a signed 12-bit immediate. Init fields, when non-nil, pin the
// corresponding operand across Regenerate; compound patterns use them to keep
// materialized address arithmetic intact.
type Addi struct {
	Rd, Rs gen.Register
	Imm    *big.Int

	RdInit, RsInit *gen.Register
	ImmInit        *big.Int
}

func (i *Addi) Categories() category.Set {
	return category.NewSet(category.Arithmetic, category.Immediate)
}

func (i *Addi) Render() string {
	return fmt.Sprintf("\taddi\t%s, %s, %s", i.Rd, i.Rs, i.Imm)
}

func (i *Addi) Regenerate(ctx *gen.Context) error {
	rd, err := GPR.Pick(ctx, i.RdInit)
	if err != nil {
		return err
	}
	rs, err := GPR.Pick(ctx, i.RsInit)
	if err != nil {
		return err
	}
	imm, err := gen.Constant(ctx, ImmS12, i.ImmInit)
	if err != nil {
		return err
	}
	i.Rd, i.Rs, i.Imm = rd, rs, imm
	return nil
}

// Li - load an unsigned 20-bit immediate
type Li struct {
	Rd  gen.Register
	Imm *big.Int

	RdInit  *gen.Register
	ImmInit *big.Int
}

func (i *Li) Categories() category.Set { return category.NewSet(category.Immediate) }

func (i *Li) Render() string {
	return fmt.Sprintf("\tli\t%s, %s", i.Rd, i.Imm)
}

func (i *Li) Regenerate(ctx *gen.Context) error {
	rd, err := GPR.Pick(ctx, i.RdInit)
	if err != nil {
		return err
	}
	imm, err := gen.Constant(ctx, ImmU20, i.ImmInit)
	if err != nil {
		return err
	}
	i.Rd, i.Imm = rd, imm
	return nil
}

// --- Memory Instructions ---

// Lw - load word through a base register
type Lw struct {
	Rd, Base gen.Register

	BaseInit *gen.Register
}

// Lbu - load byte unsigned through a base register
type Lbu struct {
	Rd, Base gen.Register

	BaseInit *gen.Register
}

// Sw - store word through a base register
type Sw struct {
	Rs, Base gen.Register

	BaseInit *gen.Register
}

func (i *Lw) Categories() category.Set  { return category.NewSet(category.Load) }
func (i *Lbu) Categories() category.Set { return category.NewSet(category.Load) }
func (i *Sw) Categories() category.Set  { return category.NewSet(category.Store) }

func (i *Lw) Render() string  { return fmt.Sprintf("\tlw\t%s, 0(%s)", i.Rd, i.Base) }
func (i *Lbu) Render() string { return fmt.Sprintf("\tlbu\t%s, 0(%s)", i.Rd, i.Base) }
func (i *Sw) Render() string  { return fmt.Sprintf("\tsw\t%s, 0(%s)", i.Rs, i.Base) }

func (i *Lw) Regenerate(ctx *gen.Context) error {
	rd, err := GPR.Pick(ctx, nil)
	if err != nil {
		return err
	}
	base, err := GPR.Pick(ctx, i.BaseInit)
	if err != nil {
		return err
	}
	i.Rd, i.Base = rd, base
	return nil
}

func (i *Lbu) Regenerate(ctx *gen.Context) error {
	rd, err := GPR.Pick(ctx, nil)
	if err != nil {
		return err
	}
	base, err := GPR.Pick(ctx, i.BaseInit)
	if err != nil {
		return err
	}
	i.Rd, i.Base = rd, base
	return nil
}

func (i *Sw) Regenerate(ctx *gen.Context) error {
	rs, err := GPR.Pick(ctx, nil)
	if err != nil {
		return err
	}
	base, err := GPR.Pick(ctx, i.BaseInit)
	if err != nil {
		return err
	}
	i.Rs, i.Base = rs, base
	return nil
}

// --- Port I/O Instructions ---

// In - read a port into a register
type In struct {
	Rd   gen.Register
	Port *big.Int

	PortInit *big.Int
}

// Out - write a register to a port
type Out struct {
	Rs   gen.Register
	Port *big.Int

	PortInit *big.Int
}

func (i *In) Categories() category.Set  { return category.NewSet(category.Input) }
func (i *Out) Categories() category.Set { return category.NewSet(category.Output) }

func (i *In) Render() string  { return fmt.Sprintf("\tin\t%s, %s", i.Rd, i.Port) }
func (i *Out) Render() string { return fmt.Sprintf("\tout\t%s, %s", i.Rs, i.Port) }

func (i *In) Regenerate(ctx *gen.Context) error {
	rd, err := GPR.Pick(ctx, nil)
	if err != nil {
		return err
	}
	port := i.PortInit
	if port == nil {
		if port, err = ctx.NextIOAddress(); err != nil {
			return err
		}
	}
	i.Rd, i.Port = rd, port
	return nil
}

func (i *Out) Regenerate(ctx *gen.Context) error {
	rs, err := GPR.Pick(ctx, nil)
	if err != nil {
		return err
	}
	port := i.PortInit
	if port == nil {
		if port, err = ctx.NextIOAddress(); err != nil {
			return err
		}
	}
	i.Rs, i.Port = rs, port
	return nil
}

// --- Control Flow Instructions ---

// Jal - jump and link to a registered label
type Jal struct {
	Rd     gen.Register
	Target gen.LabelRecord

	TargetInit *gen.LabelRecord
}

// Beq - branch to a registered label when equal
type Beq struct {
	Rs1, Rs2 gen.Register
	Target   gen.LabelRecord

	TargetInit *gen.LabelRecord
}

// Ecall - environment call
type Ecall struct{}

// Nop - no operation
type Nop struct{}

func (i *Jal) Categories() category.Set {
	return category.NewSet(category.JumpAndLink)
}
func (i *Beq) Categories() category.Set   { return category.NewSet(category.Branch) }
func (i *Ecall) Categories() category.Set { return category.NewSet(category.EnvironmentCall) }
func (i *Nop) Categories() category.Set   { return category.NewSet(category.Nop) }

func (i *Jal) Render() string {
	return fmt.Sprintf("\tjal\t%s, %s", i.Rd, i.Target.Name)
}
func (i *Beq) Render() string {
	return fmt.Sprintf("\tbeq\t%s, %s, %s", i.Rs1, i.Rs2, i.Target.Name)
}
func (i *Ecall) Render() string { return "\tecall" }
func (i *Nop) Render() string   { return "\tnop" }

func (i *Jal) Regenerate(ctx *gen.Context) error {
	rd, err := GPR.Pick(ctx, nil)
	if err != nil {
		return err
	}
	target, err := gen.LabelRef(ctx, i.TargetInit)
	if err != nil {
		return err
	}
	i.Rd, i.Target = rd, target
	return nil
}

func (i *Beq) Regenerate(ctx *gen.Context) error {
	rs1, err := GPR.Pick(ctx, nil)
	if err != nil {
		return err
	}
	rs2, err := GPR.Pick(ctx, nil)
	if err != nil {
		return err
	}
	target, err := gen.LabelRef(ctx, i.TargetInit)
	if err != nil {
		return err
	}
	i.Rs1, i.Rs2, i.Target = rs1, rs2, target
	return nil
}

func (i *Ecall) Regenerate(ctx *gen.Context) error { return nil }
func (i *Nop) Regenerate(ctx *gen.Context) error   { return nil }
