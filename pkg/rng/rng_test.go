package rng

import (
	"errors"
	"math/big"
	"testing"

	"github.com/hwfuzz/stimgen/pkg/width"
)

func TestUniformStaysBelowBound(t *testing.T) {
	s := New(1)
	bounds := []int64{1, 2, 3, 7, 100, 255, 256, 1 << 20}
	for _, b := range bounds {
		bound := big.NewInt(b)
		for i := 0; i < 200; i++ {
			v := s.Uniform(bound)
			if v.Sign() < 0 || v.Cmp(bound) >= 0 {
				t.Fatalf("Uniform(%d) = %s, out of [0, %d)", b, v, b)
			}
		}
	}
}

func TestUniformWideBound(t *testing.T) {
	s := New(7)
	// 2^100: draws must still land inside the bound.
	bound := new(big.Int).Lsh(big.NewInt(1), 100)
	for i := 0; i < 50; i++ {
		v := s.Uniform(bound)
		if v.Sign() < 0 || v.Cmp(bound) >= 0 {
			t.Fatalf("Uniform(2^100) = %s out of range", v)
		}
	}
}

func TestUniformDeterminism(t *testing.T) {
	a := New(0xdeadbeef)
	b := New(0xdeadbeef)
	bound := big.NewInt(1 << 30)
	for i := 0; i < 100; i++ {
		va, vb := a.Uniform(bound), b.Uniform(bound)
		if va.Cmp(vb) != 0 {
			t.Fatalf("draw %d diverged: %s vs %s", i, va, vb)
		}
	}
}

func TestUniformRange(t *testing.T) {
	s := New(3)
	r := width.New(-8, 8)
	for i := 0; i < 200; i++ {
		v := s.UniformRange(r)
		if !r.Contains(v) {
			t.Fatalf("UniformRange(%s) = %s out of range", r, v)
		}
	}
}

func TestWeightedIndex(t *testing.T) {
	s := New(42)
	counts := make([]int, 3)
	for i := 0; i < 3000; i++ {
		idx, err := s.WeightedIndex([]int64{0, 1, 9})
		if err != nil {
			t.Fatal(err)
		}
		counts[idx]++
	}
	if counts[0] != 0 {
		t.Errorf("zero-weight bucket selected %d times", counts[0])
	}
	if counts[2] <= counts[1] {
		t.Errorf("weight-9 bucket (%d) not favored over weight-1 bucket (%d)", counts[2], counts[1])
	}
}

func TestWeightedIndexErrors(t *testing.T) {
	s := New(1)
	if _, err := s.WeightedIndex([]int64{0, 0}); err == nil {
		t.Error("zero total weight: expected error")
	}
	if _, err := s.WeightedIndex([]int64{3, -1}); err == nil {
		t.Error("negative weight: expected error")
	}
}

func TestSplitAdditiveReconstructs(t *testing.T) {
	s := New(11)
	wa, wb := width.Unsigned(8), width.Unsigned(8)
	value := big.NewInt(300)
	for i := 0; i < 50; i++ {
		a, b, err := s.SplitAdditive(value, wa, wb)
		if err != nil {
			t.Fatal(err)
		}
		if !wa.Fits(a) || !wb.Fits(b) {
			t.Fatalf("pieces out of width: a=%s b=%s", a, b)
		}
		if sum := new(big.Int).Add(a, b); sum.Cmp(value) != 0 {
			t.Fatalf("a+b = %s, want %s", sum, value)
		}
	}
}

func TestSplitAdditiveSignedRemainder(t *testing.T) {
	s := New(5)
	// A wide unsigned piece plus a narrow signed correction.
	wa, wb := width.Unsigned(16), width.Signed(12)
	value := big.NewInt(40000)
	a, b, err := s.SplitAdditive(value, wa, wb)
	if err != nil {
		t.Fatal(err)
	}
	if sum := new(big.Int).Add(a, b); sum.Cmp(value) != 0 {
		t.Fatalf("a+b = %s, want %s", sum, value)
	}
}

func TestSplitAdditiveExhausted(t *testing.T) {
	s := New(1)
	// 4-bit pieces can sum to at most 30; 300 can never be split.
	_, _, err := s.SplitAdditive(big.NewInt(300), width.Unsigned(4), width.Unsigned(4))
	if !errors.Is(err, ErrSplitExhausted) {
		t.Fatalf("err = %v, want ErrSplitExhausted", err)
	}
}
