// Package storage はアップロードファイルのローカル保存を提供します。
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultUploadDir はアップロード先のデフォルトディレクトリです。
const DefaultUploadDir = "static/uploads"

// UploadStore はアップロードディレクトリ配下へのファイル保存を管理します。
type UploadStore struct {
	dir string
}

// NewUploadStore はアップロードディレクトリを作成してUploadStoreを生成します。
// dirが空の場合はDefaultUploadDirを使用します。
func NewUploadStore(dir string) (*UploadStore, error) {
	if dir == "" {
		dir = DefaultUploadDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &UploadStore{dir: dir}, nil
}

// Save はファイル内容をアップロードディレクトリに書き込み、保存先パスを返します。
// ディレクトリトラバーサルを防ぐため、ファイル名はベース名に正規化されます。
func (s *UploadStore) Save(filename string, r io.Reader) (string, error) {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename %q", filename)
	}

	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		// 書きかけのファイルを残さない
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
