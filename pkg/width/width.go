// Package width defines signed and unsigned bit-width descriptors and the
// half-open integer ranges they imply. Every field constructor validates its
// explicit initializers and sizes its random draws through this package.
package width

import (
	"fmt"
	"math/big"
)

// Width describes the shape of an integer field: a bit count plus signedness.
type Width struct {
	Signed bool
	Bits   int
}

// Unsigned returns an unsigned width of the given bit count.
// Panics if bits is not positive.
func Unsigned(bits int) Width {
	checkBits(bits)
	return Width{Signed: false, Bits: bits}
}

// Signed returns a signed (two's complement) width of the given bit count.
// Panics if bits is not positive.
func Signed(bits int) Width {
	checkBits(bits)
	return Width{Signed: true, Bits: bits}
}

func checkBits(bits int) {
	if bits <= 0 {
		panic(fmt.Sprintf("width: bit count must be positive, got %d", bits))
	}
}

// Range returns the half-open range of values representable by w:
// [0, 2^bits) when unsigned, [-2^(bits-1), 2^(bits-1)) when signed.
func (w Width) Range() Range {
	one := big.NewInt(1)
	if !w.Signed {
		max := new(big.Int).Lsh(one, uint(w.Bits))
		return Range{Min: big.NewInt(0), Max: max}
	}
	half := new(big.Int).Lsh(one, uint(w.Bits-1))
	return Range{Min: new(big.Int).Neg(half), Max: half}
}

// Fits reports whether v is representable in w.
func (w Width) Fits(v *big.Int) bool {
	return w.Range().Contains(v)
}

func (w Width) String() string {
	if w.Signed {
		return fmt.Sprintf("s%d", w.Bits)
	}
	return fmt.Sprintf("u%d", w.Bits)
}

// Range is a half-open integer interval [Min, Max).
type Range struct {
	Min *big.Int
	Max *big.Int
}

// New builds a range from int64 bounds. Max is exclusive.
func New(min, max int64) Range {
	return Range{Min: big.NewInt(min), Max: big.NewInt(max)}
}

// Len returns Max - Min. A range never has negative length; callers that
// construct one by hand get a zero-or-negative length back and must treat it
// as empty.
func (r Range) Len() *big.Int {
	return new(big.Int).Sub(r.Max, r.Min)
}

// Contains reports whether v lies in [Min, Max).
func (r Range) Contains(v *big.Int) bool {
	return v.Cmp(r.Min) >= 0 && v.Cmp(r.Max) < 0
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Min, r.Max)
}
