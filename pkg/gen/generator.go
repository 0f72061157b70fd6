// Package gen implements constraint-directed random assembly generation: an
// instruction-set plugin contributes a pattern catalog, constraints bias or
// restrict selection, and a seeded context makes every run reproducible.
package gen

// Generator produces programs for one instruction set under a fixed set of
// constraints. It is stateless across runs: each call builds a fresh context
// from the seed, so equal seeds yield byte-identical programs.
type Generator struct {
	Set         InstructionSet
	Constraints []Constraint
}

// New builds a generator for set under the given constraints.
func New(set InstructionSet, constraints ...Constraint) *Generator {
	return &Generator{Set: set, Constraints: constraints}
}

// Generate performs n catalog draws and returns the resulting program. The
// program may be longer than n lines when compound patterns fire.
func (g *Generator) Generate(n int, seed int64) (*Program, error) {
	return g.GeneratePattern(Fill(n), seed)
}

// GeneratePattern runs one producer in a fresh context and returns the
// resulting program.
func (g *Generator) GeneratePattern(p Producer, seed int64) (*Program, error) {
	ctx := NewContext(g.Set, g.Constraints, seed)
	insns, err := p(ctx)
	if err != nil {
		return nil, err
	}
	return &Program{Instructions: insns}, nil
}
