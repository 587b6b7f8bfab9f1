// Package adapters はhotspotsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"contour_backend/internal/feature/hotspots/domain/entity"
	"contour_backend/internal/feature/hotspots/usecase"
)

// hotspotGorm はHotspotRepositoryインターフェースのGORM実装です。
type hotspotGorm struct {
	db *gorm.DB
}

// hotspotGormがHotspotRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.HotspotRepository = (*hotspotGorm)(nil)

// NewHotspotRepository は指定されたgorm.DB接続でhotspotGormの新しいインスタンスを生成します。
func NewHotspotRepository(db *gorm.DB) *hotspotGorm {
	return &hotspotGorm{db: db}
}

// Create はホットスポットをデータベースに追加します。
func (r *hotspotGorm) Create(ctx context.Context, h *entity.Hotspot) error {
	return r.db.WithContext(ctx).Create(h).Error
}

// ListByImage は指定画像のホットスポットを作成順で取得します。
func (r *hotspotGorm) ListByImage(ctx context.Context, imageID uint) ([]entity.Hotspot, error) {
	var hotspots []entity.Hotspot
	if err := r.db.WithContext(ctx).
		Where("image_id = ?", imageID).
		Order("id ASC").
		Find(&hotspots).Error; err != nil {
		return nil, err
	}
	return hotspots, nil
}
