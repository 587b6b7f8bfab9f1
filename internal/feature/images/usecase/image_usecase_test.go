package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"contour_backend/internal/feature/images/domain/entity"
)

type mockImageRepo struct {
	CreateFn   func(ctx context.Context, img *entity.Image) error
	FindByIDFn func(ctx context.Context, id uint) (*entity.Image, error)
	ListFn     func(ctx context.Context) ([]entity.Image, error)
}

func (m *mockImageRepo) Create(ctx context.Context, img *entity.Image) error {
	return m.CreateFn(ctx, img)
}
func (m *mockImageRepo) FindByID(ctx context.Context, id uint) (*entity.Image, error) {
	return m.FindByIDFn(ctx, id)
}
func (m *mockImageRepo) List(ctx context.Context) ([]entity.Image, error) {
	return m.ListFn(ctx)
}

type mockFileStore struct {
	SaveFn func(filename string, r io.Reader) (string, error)
}

func (m *mockFileStore) Save(filename string, r io.Reader) (string, error) {
	return m.SaveFn(filename, r)
}

func writeTestPNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create temp png: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return path
}

func TestUpload_Success(t *testing.T) {
	dir := t.TempDir()
	saved := writeTestPNG(t, dir, 640, 480)

	var created *entity.Image
	repo := &mockImageRepo{
		CreateFn: func(ctx context.Context, img *entity.Image) error {
			img.ID = 1
			created = img
			return nil
		},
	}
	store := &mockFileStore{
		SaveFn: func(filename string, r io.Reader) (string, error) {
			io.Copy(io.Discard, r)
			return saved, nil
		},
	}

	uc := NewImageUsecase(repo, store)
	img, err := uc.Upload(context.Background(), "photo.png", "image/png", bytes.NewReader([]byte("data")), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.ID != 1 || img.Filename != "photo.png" || img.UserID != 7 {
		t.Errorf("unexpected image record: %+v", img)
	}
	if img.Width != 640 || img.Height != 480 {
		t.Errorf("expected dimensions 640x480, got %dx%d", img.Width, img.Height)
	}
	if created == nil || created.Filepath != saved {
		t.Errorf("expected record persisted with path %q", saved)
	}
}

func TestUpload_NotAnImage(t *testing.T) {
	uc := NewImageUsecase(&mockImageRepo{}, &mockFileStore{})
	_, err := uc.Upload(context.Background(), "doc.pdf", "application/pdf", strings.NewReader("x"), 1)
	if !errors.Is(err, ErrNotAnImage) {
		t.Errorf("expected ErrNotAnImage, got %v", err)
	}
}

func TestUpload_UndecodableFallsBackToZeroDims(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "bogus.png")
	if err := os.WriteFile(bogus, []byte("not really a png"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	repo := &mockImageRepo{
		CreateFn: func(ctx context.Context, img *entity.Image) error { return nil },
	}
	store := &mockFileStore{
		SaveFn: func(filename string, r io.Reader) (string, error) { return bogus, nil },
	}

	uc := NewImageUsecase(repo, store)
	img, err := uc.Upload(context.Background(), "bogus.png", "image/png", strings.NewReader("x"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Width != 0 || img.Height != 0 {
		t.Errorf("expected 0x0 fallback dimensions, got %dx%d", img.Width, img.Height)
	}
}

func TestUpload_RejectsOversizedFile(t *testing.T) {
	createCalls := 0
	repo := &mockImageRepo{
		CreateFn: func(ctx context.Context, img *entity.Image) error {
			createCalls++
			return nil
		},
	}
	// 実際の保存と同様にリーダーを最後まで消費し、エラーをラップして返す
	store := &mockFileStore{
		SaveFn: func(filename string, r io.Reader) (string, error) {
			if _, err := io.Copy(io.Discard, r); err != nil {
				return "", fmt.Errorf("failed to write %s: %w", filename, err)
			}
			return filename, nil
		},
	}

	uc := NewImageUsecase(repo, store)
	oversized := bytes.NewReader(make([]byte, MaxUploadSize+4096))
	_, err := uc.Upload(context.Background(), "big.png", "image/png", oversized, 1)

	if !errors.Is(err, ErrUploadTooLarge) {
		t.Fatalf("expected ErrUploadTooLarge, got %v", err)
	}
	if createCalls != 0 {
		t.Errorf("no record should be created for a rejected upload, got %d", createCalls)
	}
}

func TestUpload_AcceptsFileAtSizeLimit(t *testing.T) {
	repo := &mockImageRepo{
		CreateFn: func(ctx context.Context, img *entity.Image) error { return nil },
	}
	var stored int64
	store := &mockFileStore{
		SaveFn: func(filename string, r io.Reader) (string, error) {
			n, err := io.Copy(io.Discard, r)
			stored = n
			if err != nil {
				return "", fmt.Errorf("failed to write %s: %w", filename, err)
			}
			return filename, nil
		},
	}

	uc := NewImageUsecase(repo, store)
	atLimit := bytes.NewReader(make([]byte, MaxUploadSize))
	img, err := uc.Upload(context.Background(), "exact.png", "image/png", atLimit, 1)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored != MaxUploadSize {
		t.Errorf("expected %d bytes stored without truncation, got %d", int64(MaxUploadSize), stored)
	}
	// 中身はデコード不能なので寸法は0x0フォールバック
	if img.Width != 0 || img.Height != 0 {
		t.Errorf("expected 0x0 dimensions, got %dx%d", img.Width, img.Height)
	}
}

func TestUpload_StoreFailure(t *testing.T) {
	store := &mockFileStore{
		SaveFn: func(filename string, r io.Reader) (string, error) {
			return "", errors.New("disk full")
		},
	}
	uc := NewImageUsecase(&mockImageRepo{}, store)
	_, err := uc.Upload(context.Background(), "photo.png", "image/png", strings.NewReader("x"), 1)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected store error, got %v", err)
	}
}

func TestFilePath(t *testing.T) {
	dir := t.TempDir()
	existing := writeTestPNG(t, dir, 10, 10)

	repo := &mockImageRepo{
		FindByIDFn: func(ctx context.Context, id uint) (*entity.Image, error) {
			switch id {
			case 1:
				return &entity.Image{ID: 1, Filename: "a.png", Filepath: existing}, nil
			case 2:
				return &entity.Image{ID: 2, Filename: "b.png", Filepath: filepath.Join(dir, "gone.png")}, nil
			default:
				return nil, ErrImageNotFound
			}
		},
	}
	uc := NewImageUsecase(repo, &mockFileStore{})

	path, name, err := uc.FilePath(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != existing || name != "a.png" {
		t.Errorf("unexpected path/name: %q %q", path, name)
	}

	if _, _, err := uc.FilePath(context.Background(), 2); !errors.Is(err, ErrImageFileMissing) {
		t.Errorf("expected ErrImageFileMissing, got %v", err)
	}
	if _, _, err := uc.FilePath(context.Background(), 99); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("expected ErrImageNotFound, got %v", err)
	}
}
