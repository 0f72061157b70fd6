package demoisa

import (
	"github.com/hwfuzz/stimgen/pkg/category"
	"github.com/hwfuzz/stimgen/pkg/gen"
	"github.com/hwfuzz/stimgen/pkg/width"
)

var _ gen.InstructionSet = (*ISA)(nil)

// ISA is the demo instruction set plugin.
type ISA struct {
	catalog []gen.Pattern
}

// New builds the demo instruction set. The catalog order is fixed; changing
// it changes what a given seed generates.
func New() *ISA {
	s := &ISA{}
	s.catalog = []gen.Pattern{
		{Name: "add", Cats: category.NewSet(category.Arithmetic), Body: one(func() gen.Instruction { return &Add{} })},
		{Name: "sub", Cats: category.NewSet(category.Arithmetic), Body: one(func() gen.Instruction { return &Sub{} })},
		{Name: "and", Cats: category.NewSet(category.Logical), Body: one(func() gen.Instruction { return &And{} })},
		{Name: "or", Cats: category.NewSet(category.Logical), Body: one(func() gen.Instruction { return &Or{} })},
		{Name: "xor", Cats: category.NewSet(category.Logical), Body: one(func() gen.Instruction { return &Xor{} })},
		{Name: "addi", Cats: category.NewSet(category.Arithmetic, category.Immediate), Body: one(func() gen.Instruction { return &Addi{} })},
		{Name: "li", Cats: category.NewSet(category.Immediate), Body: one(func() gen.Instruction { return &Li{} })},
		{Name: "memory-read", Cats: category.NewSet(category.Load, category.Immediate), Body: memoryRead},
		{Name: "memory-write", Cats: category.NewSet(category.Store, category.Immediate), Body: memoryWrite},
		{Name: "in", Cats: category.NewSet(category.Input), Body: one(func() gen.Instruction { return &In{} })},
		{Name: "io-exchange", Cats: category.NewSet(category.Input, category.Output), Body: ioExchange},
		{Name: "branch-loop", Cats: category.NewSet(category.Branch, category.Label), Body: branchLoop},
		{Name: "jump-link", Cats: category.NewSet(category.JumpAndLink, category.Label), Body: jumpLink},
		{Name: "ecall", Cats: category.NewSet(category.EnvironmentCall), Body: one(func() gen.Instruction { return &Ecall{} })},
		{Name: "nop", Cats: category.NewSet(category.Nop), Body: one(func() gen.Instruction { return &Nop{} })},
	}
	return s
}

func (s *ISA) Name() string { return "demo" }

func (s *ISA) Catalog() []gen.Pattern { return s.catalog }

func (s *ISA) MemorySpace() width.Range { return Addr.Range() }

func (s *ISA) IOSpace() width.Range { return Port.Range() }

// one wraps a single instruction shape as a producer: construct, randomize
// the free operands, emit.
func one(mk func() gen.Instruction) gen.Producer {
	return func(ctx *gen.Context) ([]gen.Instruction, error) {
		i := mk()
		if err := i.Regenerate(ctx); err != nil {
			return nil, err
		}
		return []gen.Instruction{i}, nil
	}
}

// emit is one() over an already-pinned instruction.
func emit(i gen.Instruction) gen.Producer {
	return func(ctx *gen.Context) ([]gen.Instruction, error) {
		if err := i.Regenerate(ctx); err != nil {
			return nil, err
		}
		return []gen.Instruction{i}, nil
	}
}

// memoryRead materializes a sampled address as li plus addi into a base
// register, then loads through it with either lw or lbu. The address parts
// are pinned so later regeneration keeps the pair consistent.
func memoryRead(ctx *gen.Context) ([]gen.Instruction, error) {
	base, insns, err := materializeAddress(ctx)
	if err != nil {
		return nil, err
	}
	load, err := gen.Select(
		emit(&Lw{BaseInit: &base}),
		emit(&Lbu{BaseInit: &base}),
	)(ctx)
	if err != nil {
		return nil, err
	}
	return append(insns, load...), nil
}

// memoryWrite is memoryRead's store counterpart.
func memoryWrite(ctx *gen.Context) ([]gen.Instruction, error) {
	base, insns, err := materializeAddress(ctx)
	if err != nil {
		return nil, err
	}
	store, err := emit(&Sw{BaseInit: &base})(ctx)
	if err != nil {
		return nil, err
	}
	return append(insns, store...), nil
}

func materializeAddress(ctx *gen.Context) (gen.Register, []gen.Instruction, error) {
	addr, err := ctx.NextMemoryAddress()
	if err != nil {
		return gen.Register{}, nil, err
	}
	hi, lo, err := ctx.RNG().SplitAdditive(addr, Addr, ImmS12)
	if err != nil {
		return gen.Register{}, nil, err
	}
	base, err := GPR.Pick(ctx, nil)
	if err != nil {
		return gen.Register{}, nil, err
	}
	li := &Li{RdInit: &base, ImmInit: hi}
	if err := li.Regenerate(ctx); err != nil {
		return gen.Register{}, nil, err
	}
	addi := &Addi{RdInit: &base, RsInit: &base, ImmInit: lo}
	if err := addi.Regenerate(ctx); err != nil {
		return gen.Register{}, nil, err
	}
	return base, []gen.Instruction{li, addi}, nil
}

// ioExchange reads one port and writes a different one.
func ioExchange(ctx *gen.Context) ([]gen.Instruction, error) {
	inPort, err := ctx.NextIOAddress()
	if err != nil {
		return nil, err
	}
	outPort, err := ctx.NextIOAddress(inPort)
	if err != nil {
		return nil, err
	}
	return gen.Seq(
		emit(&In{PortInit: inPort}),
		emit(&Out{PortInit: outPort}),
	)(ctx)
}

// branchLoop defines a label, emits one filler op, and branches back to a
// registered target.
func branchLoop(ctx *gen.Context) ([]gen.Instruction, error) {
	rec := ctx.DefineLabel("")
	return gen.Seq(
		func(*gen.Context) ([]gen.Instruction, error) {
			return []gen.Instruction{&gen.LabelInsn{Record: rec, Anonymous: true}}, nil
		},
		one(func() gen.Instruction { return &Add{} }),
		emit(&Beq{}),
	)(ctx)
}

// jumpLink defines a label and jumps to it.
func jumpLink(ctx *gen.Context) ([]gen.Instruction, error) {
	rec := ctx.DefineLabel("")
	return gen.Seq(
		func(*gen.Context) ([]gen.Instruction, error) {
			return []gen.Instruction{&gen.LabelInsn{Record: rec, Anonymous: true}}, nil
		},
		emit(&Jal{TargetInit: &rec}),
	)(ctx)
}
