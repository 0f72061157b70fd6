// Package rng is the numeric sampling kernel: arbitrary-precision ranged
// draws, weighted bucket selection, and additive range splitting. All
// randomness in a generation run flows through a single Stream so that a
// fixed seed replays the exact same draw sequence.
package rng

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand"

	"github.com/hwfuzz/stimgen/pkg/width"
)

// ErrSplitExhausted reports that SplitAdditive hit its retry bound without
// finding a pair of pieces that both fit their target widths.
var ErrSplitExhausted = errors.New("rng: additive split retries exhausted")

// maxSplitRetries bounds the rejection loop in SplitAdditive. Pathological
// width combinations fail loudly instead of spinning.
const maxSplitRetries = 256

// Stream is a seeded random draw stream. It is the only randomness source a
// generation run may touch; every draw advances its state in call order.
type Stream struct {
	src *rand.Rand
}

// New returns a Stream seeded with seed. Equal seeds replay equal draws.
func New(seed int64) *Stream {
	return &Stream{src: rand.New(rand.NewSource(seed))}
}

// Intn draws a uniform int in [0, n). Panics if n <= 0.
func (s *Stream) Intn(n int) int {
	return s.src.Intn(n)
}

// Uniform draws a uniform integer in [0, bound). It draws just enough random
// bits to cover bound and rejects draws at or above it, so there is no modulo
// bias. Panics if bound is not positive.
func (s *Stream) Uniform(bound *big.Int) *big.Int {
	if bound.Sign() <= 0 {
		panic(fmt.Sprintf("rng: non-positive bound %s", bound))
	}
	bits := bound.BitLen()
	nbytes := (bits + 7) / 8
	mask := byte(0xff >> uint(nbytes*8-bits))
	buf := make([]byte, nbytes)
	v := new(big.Int)
	for {
		s.src.Read(buf)
		buf[0] &= mask
		v.SetBytes(buf)
		if v.Cmp(bound) < 0 {
			return v
		}
	}
}

// UniformRange draws a uniform integer in r, i.e. Uniform(r.Len()) + r.Min.
// Panics if r is empty.
func (s *Stream) UniformRange(r width.Range) *big.Int {
	v := s.Uniform(r.Len())
	return v.Add(v, r.Min)
}

// WeightedIndex picks an index proportionally to the given integer weights:
// sum the weights, draw a uniform offset into the cumulative total, and walk
// to the bucket it lands in. Weights must be non-negative and at least one
// must be positive.
func (s *Stream) WeightedIndex(weights []int64) (int, error) {
	var total int64
	for i, w := range weights {
		if w < 0 {
			return 0, fmt.Errorf("rng: negative weight %d at index %d", w, i)
		}
		total += w
	}
	if total <= 0 {
		return 0, errors.New("rng: weights sum to zero")
	}
	off := s.Uniform(big.NewInt(total)).Int64()
	for i, w := range weights {
		if off < w {
			return i, nil
		}
		off -= w
	}
	// Unreachable: off < total by construction.
	return len(weights) - 1, nil
}

// SplitAdditive splits value into a pair (a, b) with a + b == value, a
// representable in wa and b representable in wb. It samples a from wa's range
// and rejects pairs whose remainder does not fit wb; after maxSplitRetries
// failed attempts it returns ErrSplitExhausted.
func (s *Stream) SplitAdditive(value *big.Int, wa, wb width.Width) (*big.Int, *big.Int, error) {
	ra := wa.Range()
	for try := 0; try < maxSplitRetries; try++ {
		a := s.UniformRange(ra)
		b := new(big.Int).Sub(value, a)
		if wb.Fits(b) {
			return a, b, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: value %s into %s + %s", ErrSplitExhausted, value, wa, wb)
}
