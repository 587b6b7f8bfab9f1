package stub

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"contour_backend/internal/feature/hotspots/domain"
	"contour_backend/internal/platform/geometry"
)

func writeTestImage(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	path := filepath.Join(t.TempDir(), "photo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestStubDetector_Detect(t *testing.T) {
	t.Parallel()

	path := writeTestImage(t, 400, 200)
	detector := NewStubDetector()

	det, err := detector.Detect(context.Background(), path, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if det.ImageID != 3 {
		t.Errorf("unexpected image id: %d", det.ImageID)
	}
	// ピクセル空間のため寸法は記録されない
	if det.Normalized() {
		t.Error("stub result must be in pixel space")
	}
	if len(det.Objects) != 1 {
		t.Fatalf("expected one object, got %d", len(det.Objects))
	}

	obj := det.Objects[0]
	if obj.Label != "object" || obj.Score != 0.9 {
		t.Errorf("unexpected object: %+v", obj)
	}
	if len(obj.Contour) != 0 {
		t.Error("stub must not produce a contour")
	}

	want := geometry.BBox{X1: 100, Y1: 50, X2: 300, Y2: 150}
	if obj.BBox != want {
		t.Errorf("bbox mismatch: got %+v, want %+v", obj.BBox, want)
	}
}

// TestStubDetector_Deterministic は同一画像に対して常に同一の結果を返すことを検証します。
func TestStubDetector_Deterministic(t *testing.T) {
	t.Parallel()

	path := writeTestImage(t, 640, 480)
	detector := NewStubDetector()

	first, err := detector.Detect(context.Background(), path, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := detector.Detect(context.Background(), path, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("stub detection is not deterministic")
	}
}

// TestStubDetector_UndecodableImage はデコード不能ファイルにフォールバック寸法が使われることを検証します。
func TestStubDetector_UndecodableImage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	det, err := NewStubDetector().Detect(context.Background(), path, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := geometry.BBox{X1: 200, Y1: 150, X2: 600, Y2: 450}
	if det.Objects[0].BBox != want {
		t.Errorf("bbox mismatch: got %+v, want %+v", det.Objects[0].BBox, want)
	}
}

// TestStubDetector_ImageMissing は存在しないファイルでErrImageNotFoundになることを検証します。
func TestStubDetector_ImageMissing(t *testing.T) {
	t.Parallel()

	_, err := NewStubDetector().Detect(context.Background(), filepath.Join(t.TempDir(), "missing.png"), 1)
	if !errors.Is(err, domain.ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
}
