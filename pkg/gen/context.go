package gen

import (
	"fmt"
	"math/big"

	"github.com/hwfuzz/stimgen/pkg/category"
	"github.com/hwfuzz/stimgen/pkg/rng"
	"github.com/hwfuzz/stimgen/pkg/width"
)

// addressRetryLimit bounds exclusion-aware address sampling. Like the
// additive-split loop, running out of retries fails loudly.
const addressRetryLimit = 1024

// LabelRecord identifies a registered jump target.
type LabelRecord struct {
	Name string
}

// Context is the per-run mutable session state: the single RNG stream, the
// active constraints, the label counter, and the jump-target registry. It is
// created by the generator for one run, owned by that run alone, and
// discarded with it. Instructions and producers never hold their own RNG or
// registry.
type Context struct {
	set InstructionSet
	rng *rng.Stream

	labelCount  int
	jumpTargets []LabelRecord

	whitelist  category.Set // nil when no whitelist is active
	blacklist  category.Set // nil when no blacklist is active
	catWeights []CategoryWeight
	memBuckets []RangeWeight
	ioBuckets  []RangeWeight
}

// NewContext builds a fresh context over the given instruction set,
// constraints, and seed. Later constraints of the same kind replace earlier
// ones: at most one filter and one weighting applies per axis.
func NewContext(set InstructionSet, constraints []Constraint, seed int64) *Context {
	ctx := &Context{set: set, rng: rng.New(seed)}
	for _, c := range constraints {
		switch c := c.(type) {
		case CategoryWhiteList:
			ctx.whitelist = category.NewSet(c.Categories...)
		case CategoryBlackList:
			ctx.blacklist = category.NewSet(c.Categories...)
		case CategoryDistribution:
			ctx.catWeights = c.Weights
		case MemoryDistribution:
			ctx.memBuckets = c.Buckets
		case IODistribution:
			ctx.ioBuckets = c.Buckets
		}
	}
	return ctx
}

// RNG returns the run's single draw stream.
func (ctx *Context) RNG() *rng.Stream {
	return ctx.rng
}

// Target returns the instruction set this run generates for.
func (ctx *Context) Target() InstructionSet {
	return ctx.set
}

// DefineLabel registers a jump target and returns its record. An empty name
// allocates RANDOM_LABEL_<n> from the run's monotonic counter. Caller-supplied
// names are registered as-is; uniqueness is the caller's problem.
func (ctx *Context) DefineLabel(name string) LabelRecord {
	if name == "" {
		name = fmt.Sprintf("RANDOM_LABEL_%d", ctx.labelCount)
		ctx.labelCount++
	}
	rec := LabelRecord{Name: name}
	ctx.jumpTargets = append(ctx.jumpTargets, rec)
	return rec
}

// NextJumpTarget picks uniformly among the jump targets registered so far.
func (ctx *Context) NextJumpTarget() (LabelRecord, error) {
	if len(ctx.jumpTargets) == 0 {
		return LabelRecord{}, ErrEmptyLabelRegistry
	}
	return ctx.jumpTargets[ctx.rng.Intn(len(ctx.jumpTargets))], nil
}

// JumpTargets returns a copy of the registry in registration order.
func (ctx *Context) JumpTargets() []LabelRecord {
	out := make([]LabelRecord, len(ctx.jumpTargets))
	copy(out, ctx.jumpTargets)
	return out
}

// NextMemoryAddress samples an address from the memory distribution, or
// uniformly over the instruction set's memory space when none is configured.
// Addresses in exclusions are rejected and resampled up to the retry limit.
func (ctx *Context) NextMemoryAddress(exclusions ...*big.Int) (*big.Int, error) {
	return ctx.nextAddress(ctx.memBuckets, ctx.set.MemorySpace(), exclusions)
}

// NextIOAddress is NextMemoryAddress over the I/O address space and the I/O
// distribution.
func (ctx *Context) NextIOAddress(exclusions ...*big.Int) (*big.Int, error) {
	return ctx.nextAddress(ctx.ioBuckets, ctx.set.IOSpace(), exclusions)
}

func (ctx *Context) nextAddress(buckets []RangeWeight, space width.Range, exclusions []*big.Int) (*big.Int, error) {
	for try := 0; try < addressRetryLimit; try++ {
		var addr *big.Int
		if len(buckets) > 0 {
			weights := make([]int64, len(buckets))
			for i, b := range buckets {
				weights[i] = b.Weight
			}
			idx, err := ctx.rng.WeightedIndex(weights)
			if err != nil {
				return nil, fmt.Errorf("gen: address distribution: %w", err)
			}
			addr = ctx.rng.UniformRange(buckets[idx].Range)
		} else {
			addr = ctx.rng.UniformRange(space)
		}
		if !excluded(addr, exclusions) {
			return addr, nil
		}
	}
	return nil, fmt.Errorf("gen: no unexcluded address found in %d attempts", addressRetryLimit)
}

func excluded(addr *big.Int, exclusions []*big.Int) bool {
	for _, x := range exclusions {
		if addr.Cmp(x) == 0 {
			return true
		}
	}
	return false
}

// eligible filters the catalog: blacklist removes, whitelist keeps, then the
// requested category (if any) narrows further. Catalog order is preserved.
func (ctx *Context) eligible(cat *category.Category) []Pattern {
	var out []Pattern
	for _, p := range ctx.set.Catalog() {
		if ctx.blacklist != nil && p.Cats.Intersects(ctx.blacklist) {
			continue
		}
		if ctx.whitelist != nil && !p.Cats.Intersects(ctx.whitelist) {
			continue
		}
		if cat != nil && !p.Cats.Has(*cat) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// choosePattern resolves "any instruction" (cat nil) or "any instruction of
// category cat". When a category distribution assigns positive weight to at
// least one eligible entry, selection is weighted by the sum of an entry's
// category weights; otherwise it is uniform.
func (ctx *Context) choosePattern(cat *category.Category) (Pattern, error) {
	elig := ctx.eligible(cat)
	if len(elig) == 0 {
		if cat != nil {
			return Pattern{}, fmt.Errorf("%w: category %s", ErrNoEligibleInstruction, *cat)
		}
		return Pattern{}, ErrNoEligibleInstruction
	}
	if len(ctx.catWeights) > 0 {
		weights := make([]int64, len(elig))
		weighted := false
		for i, p := range elig {
			for _, cw := range ctx.catWeights {
				if p.Cats.Has(cw.Category) {
					weights[i] += cw.Weight
				}
			}
			if weights[i] > 0 {
				weighted = true
			}
		}
		if weighted {
			idx, err := ctx.rng.WeightedIndex(weights)
			if err != nil {
				return Pattern{}, fmt.Errorf("gen: category distribution: %w", err)
			}
			return elig[idx], nil
		}
	}
	return elig[ctx.rng.Intn(len(elig))], nil
}
