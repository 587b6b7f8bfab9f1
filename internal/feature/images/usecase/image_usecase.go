package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"contour_backend/internal/feature/images/domain/entity"
	"contour_backend/internal/platform/imagecodec"
)

// MaxUploadSize は画像アップロードの最大サイズ（10MB）です。
const MaxUploadSize = 10 * 1024 * 1024

// ImageRepository は画像メタデータの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ImageRepository interface {
	// Create は新しい画像レコードをストレージに永続化します。
	Create(ctx context.Context, img *entity.Image) error

	// FindByID は指定IDの画像を取得します。存在しない場合はエラーを返します。
	FindByID(ctx context.Context, id uint) (*entity.Image, error)

	// List は全画像を作成順で返します。
	List(ctx context.Context) ([]entity.Image, error)
}

// FileStore はアップロードファイルの保存を抽象化します。
type FileStore interface {
	// Save はファイル内容を保存し、保存先パスを返します。
	Save(filename string, r io.Reader) (string, error)
}

// imageUsecase は画像アップロード・取得のビジネスロジックを提供します。
type imageUsecase struct {
	repo  ImageRepository
	store FileStore
}

// NewImageUsecase はimageUsecaseの新しいインスタンスを生成します。
func NewImageUsecase(repo ImageRepository, store FileStore) *imageUsecase {
	return &imageUsecase{repo: repo, store: store}
}

// boundedReader はMaxUploadSizeを超えて読まれた時点でErrUploadTooLargeを返します。
// io.LimitReaderと違い、超過を切り詰めではなくエラーとして報告します。
type boundedReader struct {
	r      io.Reader
	remain int64
}

func (b *boundedReader) Read(p []byte) (int, error) {
	if b.remain <= 0 {
		return 0, ErrUploadTooLarge
	}
	if int64(len(p)) > b.remain {
		p = p[:b.remain]
	}
	n, err := b.r.Read(p)
	b.remain -= int64(n)
	return n, err
}

// Upload はアップロードされた画像を保存し、メタデータレコードを作成します。
// contentTypeがimage/*でない場合はErrNotAnImageを返します。
// MaxUploadSizeを超えるアップロードはErrUploadTooLargeで拒否されます。
// 寸法をデコードできないファイルは0x0として登録されます（エラーにはしません）。
func (u *imageUsecase) Upload(ctx context.Context, filename, contentType string, r io.Reader, userID uint) (*entity.Image, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	// 上限ちょうどのファイルを通すため、判定用に1バイト余分に許容する
	path, err := u.store.Save(filename, &boundedReader{r: r, remain: MaxUploadSize + 1})
	if err != nil {
		if errors.Is(err, ErrUploadTooLarge) {
			return nil, fmt.Errorf("%w: limit is %d bytes", ErrUploadTooLarge, MaxUploadSize)
		}
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	// 寸法の取得はベストエフォート。デコード不能なら0x0で登録する。
	width, height := 0, 0
	if w, h, err := imagecodec.LoadDimensions(path); err == nil {
		width, height = w, h
	} else {
		slog.Warn("could not decode image dimensions", "path", path, "error", err)
	}

	img := &entity.Image{
		Filename: filename,
		Filepath: path,
		UserID:   userID,
		Width:    width,
		Height:   height,
	}
	if err := u.repo.Create(ctx, img); err != nil {
		return nil, fmt.Errorf("failed to persist image record: %w", err)
	}
	return img, nil
}

// Get は指定IDの画像メタデータを返します。
func (u *imageUsecase) Get(ctx context.Context, id uint) (*entity.Image, error) {
	return u.repo.FindByID(ctx, id)
}

// List は全画像のメタデータを返します。
func (u *imageUsecase) List(ctx context.Context) ([]entity.Image, error) {
	return u.repo.List(ctx)
}

// FilePath は元ラスターファイルの配信用にパスとファイル名を返します。
// ファイルがディスク上に存在しない場合はErrImageFileMissingを返します。
func (u *imageUsecase) FilePath(ctx context.Context, id uint) (string, string, error) {
	img, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return "", "", err
	}
	if _, err := os.Stat(img.Filepath); err != nil {
		return "", "", fmt.Errorf("%w: %s", ErrImageFileMissing, img.Filepath)
	}
	return img.Filepath, img.Filename, nil
}
