// Package stub は固定の検出結果を返すDetector実装を提供します。
// テスト用フィクスチャ、および検出バックエンド未設定時のフォールバックとして使います。
package stub

import (
	"context"
	"fmt"
	"os"

	"contour_backend/internal/feature/hotspots/domain"
	"contour_backend/internal/feature/hotspots/domain/entity"
	"contour_backend/internal/feature/hotspots/usecase"
	"contour_backend/internal/platform/geometry"
	"contour_backend/internal/platform/imagecodec"
)

const (
	stubLabel = "object"
	stubScore = 0.9

	fallbackWidth  = 800.0
	fallbackHeight = 600.0
)

// StubDetector は画像中央に寸法の50%のバウンディングボックスを1つ返します。
// 輪郭は返しません。座標はピクセル空間です（結果に寸法は記録されません）。
type StubDetector struct{}

// StubDetectorがDetectorを実装していることをコンパイル時に検証します。
var _ usecase.Detector = (*StubDetector)(nil)

// NewStubDetector はStubDetectorの新しいインスタンスを生成します。
func NewStubDetector() *StubDetector {
	return &StubDetector{}
}

// Detect は決定的な合成検出結果を返します。同一画像には常に同一の結果です。
func (s *StubDetector) Detect(ctx context.Context, imagePath string, imageID uint) (*entity.DetectionResult, error) {
	if _, err := os.Stat(imagePath); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrImageNotFound, imagePath)
	}

	w, h := fallbackWidth, fallbackHeight
	if dw, dh, err := imagecodec.LoadDimensions(imagePath); err == nil {
		w, h = float64(dw), float64(dh)
	}

	return &entity.DetectionResult{
		ImageID: imageID,
		Objects: []entity.DetectedObject{
			{
				ID:    0,
				Label: stubLabel,
				Score: stubScore,
				BBox: geometry.BBox{
					X1: w * 0.25,
					Y1: h * 0.25,
					X2: w * 0.75,
					Y2: h * 0.75,
				},
			},
		},
	}, nil
}
