// Package dto はYOLOセグメンテーションサービスのワイヤフォーマットを定義します。
package dto

// DetectRequest は検出リクエストのボディです。
type DetectRequest struct {
	ImagePath string `json:"image_path"`
}

// BBoxDTO は正規化（0-1）座標のバウンディングボックスです。
type BBoxDTO struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// DetectedObjectDTO はサービスが返す1検出オブジェクトです。
// 全座標は元画像寸法に対する正規化（0-1）値です。
type DetectedObjectDTO struct {
	ID      int         `json:"id"`
	Label   string      `json:"label"`
	Score   float64     `json:"score"`
	BBox    BBoxDTO     `json:"bbox"`
	Contour [][]float64 `json:"contour"`
}

// DetectResponse は検出レスポンスのボディです。
type DetectResponse struct {
	Objects []DetectedObjectDTO `json:"objects"`
}
