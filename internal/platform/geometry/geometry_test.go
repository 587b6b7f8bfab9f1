package geometry

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

// TestToUnitToPixel_RoundTrip は正規化→ピクセル→正規化の往復変換が元の値に一致することを検証します。
func TestToUnitToPixel_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		p      Point
		width  float64
		height float64
	}{
		{"origin", Point{0, 0}, 800, 600},
		{"center", Point{0.5, 0.5}, 800, 600},
		{"edge", Point{1, 1}, 1920, 1080},
		{"arbitrary", Point{0.123, 0.987}, 640, 480},
		{"non integer dims", Point{0.25, 0.75}, 333.5, 217.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			px, err := ToPixel(tt.p, tt.width, tt.height)
			if err != nil {
				t.Fatalf("ToPixel returned error: %v", err)
			}
			back, err := ToUnit(px, tt.width, tt.height)
			if err != nil {
				t.Fatalf("ToUnit returned error: %v", err)
			}
			if math.Abs(back.X-tt.p.X) > tolerance || math.Abs(back.Y-tt.p.Y) > tolerance {
				t.Errorf("round trip mismatch: got %+v, want %+v", back, tt.p)
			}
		})
	}
}

// TestToUnit_InvalidDimension は幅・高さが0以下の場合にErrInvalidDimensionが返されることを検証します。
func TestToUnit_InvalidDimension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		width  float64
		height float64
	}{
		{"zero width", 0, 600},
		{"zero height", 800, 0},
		{"negative width", -1, 600},
		{"negative height", 800, -600},
		{"both zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ToUnit(Point{1, 1}, tt.width, tt.height); !errors.Is(err, ErrInvalidDimension) {
				t.Errorf("ToUnit: expected ErrInvalidDimension, got %v", err)
			}
			if _, err := ToPixel(Point{1, 1}, tt.width, tt.height); !errors.Is(err, ErrInvalidDimension) {
				t.Errorf("ToPixel: expected ErrInvalidDimension, got %v", err)
			}
		})
	}
}

// TestScaleContour は点数と順序が保持されることを検証します。
func TestScaleContour(t *testing.T) {
	t.Parallel()

	contour := []Point{{0.1, 0.1}, {0.5, 0.1}, {0.5, 0.5}, {0.1, 0.5}}
	expected := []Point{{80, 60}, {400, 60}, {400, 300}, {80, 300}}

	out, err := ScaleContour(contour, 800, 600, ToPixelSpace)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(contour) {
		t.Fatalf("point count mismatch: got %d, want %d", len(out), len(contour))
	}
	for i := range expected {
		if math.Abs(out[i].X-expected[i].X) > tolerance || math.Abs(out[i].Y-expected[i].Y) > tolerance {
			t.Errorf("point %d mismatch: got %+v, want %+v", i, out[i], expected[i])
		}
	}
}

// TestScaleContour_Empty は空の輪郭に対してエラーなしで空のスライスが返されることを検証します。
func TestScaleContour_Empty(t *testing.T) {
	t.Parallel()

	for _, contour := range [][]Point{nil, {}} {
		out, err := ScaleContour(contour, 800, 600, ToUnitSpace)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out) != 0 {
			t.Errorf("expected empty result, got %v", out)
		}
	}
}

// TestScaleContour_InvalidDimension は不正な寸法でエラーが伝播することを検証します。
func TestScaleContour_InvalidDimension(t *testing.T) {
	t.Parallel()

	_, err := ScaleContour([]Point{{1, 1}}, 0, 600, ToUnitSpace)
	if !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("expected ErrInvalidDimension, got %v", err)
	}
}

// TestBBoxFromContour は結果のボックスが全入力点を含むことを検証します。
func TestBBoxFromContour(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contour  []Point
		expected BBox
	}{
		{
			name:     "square",
			contour:  []Point{{0.1, 0.1}, {0.5, 0.1}, {0.5, 0.5}, {0.1, 0.5}},
			expected: BBox{X1: 0.1, Y1: 0.1, X2: 0.5, Y2: 0.5},
		},
		{
			name:     "single point",
			contour:  []Point{{3, 7}},
			expected: BBox{X1: 3, Y1: 7, X2: 3, Y2: 7},
		},
		{
			name:     "unordered points",
			contour:  []Point{{5, 2}, {-1, 8}, {3, 0}},
			expected: BBox{X1: -1, Y1: 0, X2: 5, Y2: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			box, err := BBoxFromContour(tt.contour)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if box != tt.expected {
				t.Errorf("bbox mismatch: got %+v, want %+v", box, tt.expected)
			}
			for _, p := range tt.contour {
				if p.X < box.X1 || p.X > box.X2 || p.Y < box.Y1 || p.Y > box.Y2 {
					t.Errorf("point %+v not contained in bbox %+v", p, box)
				}
			}
		})
	}
}

// TestBBoxFromContour_Empty は空の輪郭でErrEmptyContourが返されることを検証します。
func TestBBoxFromContour_Empty(t *testing.T) {
	t.Parallel()

	if _, err := BBoxFromContour(nil); !errors.Is(err, ErrEmptyContour) {
		t.Errorf("expected ErrEmptyContour, got %v", err)
	}
}

// TestScaleBBox はボックスの両コーナーが変換されることを検証します。
func TestScaleBBox(t *testing.T) {
	t.Parallel()

	box, err := ScaleBBox(BBox{X1: 0.125, Y1: 0.1, X2: 0.375, Y2: 0.5}, 800, 600, ToPixelSpace)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := BBox{X1: 100, Y1: 60, X2: 300, Y2: 300}
	if box != want {
		t.Errorf("bbox mismatch: got %+v, want %+v", box, want)
	}
}
