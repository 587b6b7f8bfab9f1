// Package imagecodec はラスター画像のメタデータ読み取りとdata URI埋め込みを提供します。
package imagecodec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// サポートする画像フォーマットのデコーダを登録
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

var (
	// ErrUnsupportedImageFormat はデコーダが解釈できないファイル、
	// または未対応の拡張子に対して返されます。
	ErrUnsupportedImageFormat = errors.New("unsupported image format")

	// ErrFileRead はファイルI/Oの失敗時に返されます。
	ErrFileRead = errors.New("failed to read image file")
)

// mimeByExtension は拡張子からMIMEタイプへの対応表です。
// コンテンツスニッフィングではなく拡張子ベースで判定します（閉じた集合）。
var mimeByExtension = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// LoadDimensions は画像ファイルの幅と高さをピクセル単位で返します。
// デコーダがファイルを解釈できない場合、ErrUnsupportedImageFormatを返します。
// フォールバック（0x0扱いなど）は行わず、呼び出し側の判断に委ねます。
func LoadDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s: %v", ErrUnsupportedImageFormat, path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// ToDataURI はファイルをbase64エンコードしたdata URI文字列を返します。
// MIMEタイプはファイル拡張子から決定します（jpeg/png/gif/webpのみ対応）。
func ToDataURI(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mime, ok := mimeByExtension[ext]
	if !ok {
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedImageFormat, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileRead, err)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
