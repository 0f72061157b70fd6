package metrics

import (
	"errors"
	"math"
	"testing"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"constant offset", []float64{0, 0}, []float64{2, 2}, 4},
		{"mixed", []float64{1, 2, 3, 4}, []float64{1, 2, 3, 6}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("MSE = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestMSEShapeMismatch(t *testing.T) {
	if _, err := MSE([]float64{1}, []float64{1, 2}); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("error = %v, want ErrShapeMismatch", err)
	}
	if _, err := MSE(nil, nil); !errors.Is(err, ErrEmptyTrace) {
		t.Fatalf("error = %v, want ErrEmptyTrace", err)
	}
}

func TestGridMSE(t *testing.T) {
	a := [][]float64{{0, 0}, {0, 0}}
	b := [][]float64{{1, 1}, {1, 1}}
	got, err := GridMSE(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("GridMSE = %g, want 1", got)
	}

	ragged := [][]float64{{0, 0}, {0}}
	if _, err := GridMSE(ragged, b); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("error = %v, want ErrShapeMismatch", err)
	}
}

func TestPSNR(t *testing.T) {
	got, err := PSNR([]float64{0, 0}, []float64{2, 2}, 255)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 10 * math.Log10(255*255/4.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("PSNR = %g, want %g", got, want)
	}

	inf, err := PSNR([]float64{5}, []float64{5}, 255)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(inf, 1) {
		t.Errorf("PSNR of identical traces = %g, want +Inf", inf)
	}
}

func TestSSIM(t *testing.T) {
	a := [][]float64{{10, 20}, {30, 40}}
	same, err := SSIM(a, a, 255)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(same-1) > 1e-9 {
		t.Errorf("SSIM of identical grids = %g, want 1", same)
	}

	b := [][]float64{{40, 30}, {20, 10}}
	diff, err := SSIM(a, b, 255)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff >= same {
		t.Errorf("SSIM of reversed grid = %g, want < 1", diff)
	}
}

func TestCheckMax(t *testing.T) {
	if err := CheckMax(0.5, 1.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := CheckMax(2.0, 1.0)
	var ex *ExceedsMaxError
	if !errors.As(err, &ex) {
		t.Fatalf("error = %v, want ExceedsMaxError", err)
	}
	if ex.Score != 2.0 || ex.Max != 1.0 {
		t.Errorf("error fields = %g/%g, want 2/1", ex.Score, ex.Max)
	}
}
