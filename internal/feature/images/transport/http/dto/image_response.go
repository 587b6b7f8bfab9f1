// Package dto はimagesフィーチャーのHTTPリクエスト/レスポンス型を定義します。
package dto

import (
	"fmt"
	"time"

	"contour_backend/internal/feature/images/domain/entity"
)

// ImageResponse は画像メタデータのレスポンスです。
type ImageResponse struct {
	ID        uint      `json:"id"`
	Filename  string    `json:"filename"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	FileURL   string    `json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
}

// NewImageResponse はドメインエンティティからレスポンスDTOを組み立てます。
func NewImageResponse(img *entity.Image) ImageResponse {
	return ImageResponse{
		ID:        img.ID,
		Filename:  img.Filename,
		Width:     img.Width,
		Height:    img.Height,
		FileURL:   fmt.Sprintf("/images/%d/file", img.ID),
		CreatedAt: img.CreatedAt,
	}
}
