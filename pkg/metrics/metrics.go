// Package metrics scores the divergence between two simulation result
// traces. The functions are pure and stateless; they are consumed after a
// generated program has been executed, never during generation.
package metrics

import (
	"errors"
	"fmt"
	"math"
)

// ErrShapeMismatch reports that two traces cannot be compared because their
// lengths or grid dimensions differ.
var ErrShapeMismatch = errors.New("metrics: traces differ in shape")

// ErrEmptyTrace reports a comparison over zero samples.
var ErrEmptyTrace = errors.New("metrics: empty trace")

// ExceedsMaxError reports a divergence score above the caller's limit.
type ExceedsMaxError struct {
	Score float64
	Max   float64
}

func (e *ExceedsMaxError) Error() string {
	return fmt.Sprintf("metrics: score %g exceeds maximum %g", e.Score, e.Max)
}

// MSE returns the mean squared error between two equal-length traces.
func MSE(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d samples", ErrShapeMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, ErrEmptyTrace
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum / float64(len(a)), nil
}

// GridMSE is MSE over nested grids. Every row of a must match the
// corresponding row of b in length.
func GridMSE(a, b [][]float64) (float64, error) {
	fa, err := flatten(a)
	if err != nil {
		return 0, err
	}
	fb, err := flatten(b)
	if err != nil {
		return 0, err
	}
	return MSE(fa, fb)
}

// PSNR returns the peak signal-to-noise ratio in decibels for the given peak
// value. Identical traces yield +Inf.
func PSNR(a, b []float64, peak float64) (float64, error) {
	mse, err := MSE(a, b)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}
	return 10 * math.Log10(peak*peak/mse), nil
}

// SSIM returns a global structural similarity index over two grids of equal
// shape, computed with a single window spanning the whole grid and the usual
// stabilizing constants scaled by the dynamic range. Identical grids score 1.
func SSIM(a, b [][]float64, dynamicRange float64) (float64, error) {
	fa, err := flatten(a)
	if err != nil {
		return 0, err
	}
	fb, err := flatten(b)
	if err != nil {
		return 0, err
	}
	if len(fa) != len(fb) {
		return 0, fmt.Errorf("%w: %d vs %d samples", ErrShapeMismatch, len(fa), len(fb))
	}
	if len(fa) == 0 {
		return 0, ErrEmptyTrace
	}
	n := float64(len(fa))
	var muA, muB float64
	for i := range fa {
		muA += fa[i]
		muB += fb[i]
	}
	muA /= n
	muB /= n
	var varA, varB, cov float64
	for i := range fa {
		da := fa[i] - muA
		db := fb[i] - muB
		varA += da * da
		varB += db * db
		cov += da * db
	}
	varA /= n
	varB /= n
	cov /= n
	c1 := (0.01 * dynamicRange) * (0.01 * dynamicRange)
	c2 := (0.03 * dynamicRange) * (0.03 * dynamicRange)
	num := (2*muA*muB + c1) * (2*cov + c2)
	den := (muA*muA + muB*muB + c1) * (varA + varB + c2)
	return num / den, nil
}

// CheckMax validates a divergence score against a caller-supplied maximum.
func CheckMax(score, max float64) error {
	if score > max {
		return &ExceedsMaxError{Score: score, Max: max}
	}
	return nil
}

func flatten(grid [][]float64) ([]float64, error) {
	if len(grid) == 0 {
		return nil, nil
	}
	w := len(grid[0])
	out := make([]float64, 0, len(grid)*w)
	for i, row := range grid {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d", ErrShapeMismatch, i, len(row), w)
		}
		out = append(out, row...)
	}
	return out, nil
}
