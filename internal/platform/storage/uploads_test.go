package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploadStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewUploadStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path, err := store.Save("photo.png", strings.NewReader("pngdata"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("expected file under %s, got %s", dir, path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("saved file not readable: %v", err)
	}
	if string(b) != "pngdata" {
		t.Errorf("unexpected file content %q", b)
	}
}

// パス区切りを含むファイル名はベース名に切り詰められること
func TestUploadStore_Save_SanitizesFilename(t *testing.T) {
	dir := t.TempDir()
	store, err := NewUploadStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path, err := store.Save("../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(path) != dir || filepath.Base(path) != "passwd" {
		t.Errorf("expected sanitized path under %s, got %s", dir, path)
	}
}

type failingReader struct {
	data []byte
	err  error
	done bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.done {
		return 0, f.err
	}
	f.done = true
	return copy(p, f.data), nil
}

// 書き込み途中でリーダーが失敗した場合、書きかけのファイルを残さないこと
func TestUploadStore_Save_RemovesPartialFileOnError(t *testing.T) {
	dir := t.TempDir()
	store, err := NewUploadStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	readErr := errors.New("upload interrupted")
	_, err = store.Save("partial.png", &failingReader{data: []byte("half"), err: readErr})
	if !errors.Is(err, readErr) {
		t.Fatalf("expected wrapped reader error, got %v", err)
	}

	if _, statErr := os.Stat(filepath.Join(dir, "partial.png")); !os.IsNotExist(statErr) {
		t.Error("partial file should have been removed")
	}
}

func TestNewUploadStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	if _, err := NewUploadStore(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("expected directory %s to exist", dir)
	}
}
