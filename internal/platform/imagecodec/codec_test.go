package imagecodec

import (
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestPNG は指定サイズのPNGファイルをテスト用ディレクトリに生成するヘルパー関数です。
func writeTestPNG(t *testing.T, name string, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	path := filepath.Join(t.TempDir(), name)
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

func TestLoadDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"small", 4, 3},
		{"landscape", 800, 600},
		{"single pixel", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeTestPNG(t, "test.png", tt.width, tt.height)

			w, h, err := LoadDimensions(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w != tt.width || h != tt.height {
				t.Errorf("dimensions mismatch: got %dx%d, want %dx%d", w, h, tt.width, tt.height)
			}
		})
	}
}

// TestLoadDimensions_NotImage は画像でないファイルがErrUnsupportedImageFormatになることを検証します。
func TestLoadDimensions_NotImage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "not-image.png")
	if err := os.WriteFile(path, []byte("this is not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, _, err := LoadDimensions(path)
	if !errors.Is(err, ErrUnsupportedImageFormat) {
		t.Errorf("expected ErrUnsupportedImageFormat, got %v", err)
	}
}

// TestLoadDimensions_MissingFile は存在しないファイルがErrFileReadになることを検証します。
func TestLoadDimensions_MissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := LoadDimensions(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, ErrFileRead) {
		t.Errorf("expected ErrFileRead, got %v", err)
	}
}

func TestToDataURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		filename     string
		content      []byte
		expectedMime string
	}{
		{"png", "a.png", []byte{0x89, 0x50, 0x4e, 0x47}, "image/png"},
		{"jpeg", "b.jpg", []byte{0xff, 0xd8, 0xff}, "image/jpeg"},
		{"jpeg long ext", "c.jpeg", []byte{0xff, 0xd8, 0xff}, "image/jpeg"},
		{"gif", "d.gif", []byte("GIF89a"), "image/gif"},
		{"webp", "e.webp", []byte("RIFF....WEBP"), "image/webp"},
		{"uppercase ext", "f.PNG", []byte{0x89}, "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.filename)
			if err := os.WriteFile(path, tt.content, 0o644); err != nil {
				t.Fatalf("failed to write file: %v", err)
			}

			uri, err := ToDataURI(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			prefix := "data:" + tt.expectedMime + ";base64,"
			if !strings.HasPrefix(uri, prefix) {
				t.Fatalf("uri %q does not start with %q", uri[:min(len(uri), 40)], prefix)
			}

			decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
			if err != nil {
				t.Fatalf("payload is not valid base64: %v", err)
			}
			if string(decoded) != string(tt.content) {
				t.Errorf("decoded payload mismatch: got %q, want %q", decoded, tt.content)
			}
		})
	}
}

// TestToDataURI_UnsupportedExtension は対応外の拡張子がエラーになることを検証します。
func TestToDataURI_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"doc.pdf", "archive.tar.gz", "noext"} {
		path := filepath.Join(t.TempDir(), name)
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if _, err := ToDataURI(path); !errors.Is(err, ErrUnsupportedImageFormat) {
			t.Errorf("%s: expected ErrUnsupportedImageFormat, got %v", name, err)
		}
	}
}

// TestToDataURI_MissingFile は存在しないファイルがErrFileReadになることを検証します。
func TestToDataURI_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := ToDataURI(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, ErrFileRead) {
		t.Errorf("expected ErrFileRead, got %v", err)
	}
}
