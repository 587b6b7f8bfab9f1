// Package dto はhotspotsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"contour_backend/internal/feature/hotspots/domain/entity"
	"contour_backend/internal/platform/geometry"
)

// GenerateSvgReq は/hotspots/svgエンドポイントのリクエストボディです。
// ObjectIDは0が有効な値のためポインタで受け取ります。
type GenerateSvgReq struct {
	ImageID  uint   `json:"image_id" binding:"required"`
	ObjectID *int   `json:"object_id" binding:"required"`
	Text     string `json:"text"`
	Link     string `json:"link" binding:"required,url"`
	Color    string `json:"color"`
}

// SuggestReq は/hotspots/suggestエンドポイントのリクエストボディです。
type SuggestReq struct {
	ImageID  uint `json:"image_id" binding:"required"`
	ObjectID *int `json:"object_id" binding:"required"`
}

// SuggestResponse は注釈サジェストのレスポンスです。
type SuggestResponse struct {
	Text string `json:"text"`
}

// SvgResponse は生成されたSVGドキュメントのレスポンスです。
type SvgResponse struct {
	ImageID    uint   `json:"image_id"`
	Svg        string `json:"svg"`
	PreviewURL string `json:"preview_url,omitempty"`
}

// DetectedObjectResponse は検出された1オブジェクトのレスポンス表現です。
type DetectedObjectResponse struct {
	ID      int              `json:"id"`
	Label   string           `json:"label"`
	Score   float64          `json:"score"`
	BBox    geometry.BBox    `json:"bbox"`
	Contour []geometry.Point `json:"contour,omitempty"`
}

// DetectionResponse は画像1枚の検出結果のレスポンスです。
type DetectionResponse struct {
	ImageID     uint                     `json:"image_id"`
	ImageWidth  float64                  `json:"image_width,omitempty"`
	ImageHeight float64                  `json:"image_height,omitempty"`
	Objects     []DetectedObjectResponse `json:"objects"`
}

// NewDetectionResponse はドメインの検出結果をレスポンス表現に変換します。
func NewDetectionResponse(det *entity.DetectionResult) DetectionResponse {
	objects := make([]DetectedObjectResponse, 0, len(det.Objects))
	for _, o := range det.Objects {
		objects = append(objects, DetectedObjectResponse{
			ID:      o.ID,
			Label:   o.Label,
			Score:   o.Score,
			BBox:    o.BBox,
			Contour: o.Contour,
		})
	}
	return DetectionResponse{
		ImageID:     det.ImageID,
		ImageWidth:  det.ImageWidth,
		ImageHeight: det.ImageHeight,
		Objects:     objects,
	}
}

// HotspotResponse は保存済みホットスポットのレスポンス表現です。
type HotspotResponse struct {
	ID          uint   `json:"id"`
	ImageID     uint   `json:"image_id"`
	BBoxCoords  string `json:"bbox_coords"`
	TextContent string `json:"text_content"`
	LinkURL     string `json:"link_url"`
	Color       string `json:"color"`
}

// NewHotspotResponse はドメインのホットスポットをレスポンス表現に変換します。
func NewHotspotResponse(h entity.Hotspot) HotspotResponse {
	return HotspotResponse{
		ID:          h.ID,
		ImageID:     h.ImageID,
		BBoxCoords:  h.BBoxCoords,
		TextContent: h.TextContent,
		LinkURL:     h.LinkURL,
		Color:       h.Color,
	}
}
