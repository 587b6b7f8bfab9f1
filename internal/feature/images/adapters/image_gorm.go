// Package adapters はimagesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"contour_backend/internal/feature/images/domain/entity"
	"contour_backend/internal/feature/images/usecase"
)

// imageGorm はImageRepositoryインターフェースのGORM実装です。
type imageGorm struct {
	db *gorm.DB
}

// imageGormがImageRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ImageRepository = (*imageGorm)(nil)

// NewImageRepository は指定されたgorm.DB接続でimageGormの新しいインスタンスを生成します。
func NewImageRepository(db *gorm.DB) *imageGorm {
	return &imageGorm{db: db}
}

// Create は画像レコードをデータベースに追加します。
func (r *imageGorm) Create(ctx context.Context, img *entity.Image) error {
	return r.db.WithContext(ctx).Create(img).Error
}

// FindByID は指定IDの画像を取得します。
// レコードが存在しない場合はErrImageNotFoundを返します。
func (r *imageGorm) FindByID(ctx context.Context, id uint) (*entity.Image, error) {
	var img entity.Image
	if err := r.db.WithContext(ctx).First(&img, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrImageNotFound
		}
		return nil, err
	}
	return &img, nil
}

// List は全画像を作成順で取得します。
func (r *imageGorm) List(ctx context.Context) ([]entity.Image, error) {
	var images []entity.Image
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}
