// Package entity はhotspotsフィーチャーのドメインモデルを定義します。
package entity

import "contour_backend/internal/platform/geometry"

// DetectedObject は画像から検出された1つの物体を表します。
// IDは1つのDetectionResult内で一意かつ安定です（0始まり）。
type DetectedObject struct {
	ID    int              `json:"id"`
	Label string           `json:"label"`
	Score float64          `json:"score"` // 信頼度スコア（0.0 ~ 1.0）
	BBox  geometry.BBox    `json:"bbox"`
	// Contour は物体の輪郭ポリゴンです（閉路は末尾→先頭の暗黙辺）。
	// 矩形のみの検出バックエンドでは空になります。
	Contour []geometry.Point `json:"contour,omitempty"`
}

// DetectionResult は1画像に対する検出結果です。リクエストごとに再計算され、
// 構築後は変更されません。
//
// 座標規約: ImageWidth/ImageHeight が正の値の場合、全オブジェクトの
// bbox/contourは正規化（0-1）空間であり、この寸法でピクセル空間へ復元できます。
// 0の場合、座標は保存済み画像の寸法に一致するピクセル空間とみなします。
type DetectionResult struct {
	ImageID     uint             `json:"image_id"`
	ImageWidth  float64          `json:"image_width,omitempty"`
	ImageHeight float64          `json:"image_height,omitempty"`
	Objects     []DetectedObject `json:"objects"`
}

// Normalized は座標が正規化（0-1）空間かどうかを返します。
func (r *DetectionResult) Normalized() bool {
	return r.ImageWidth > 0 && r.ImageHeight > 0
}

// FindObject は指定IDのオブジェクトを返します。見つからない場合はnilを返します。
func (r *DetectionResult) FindObject(objectID int) *DetectedObject {
	for i := range r.Objects {
		if r.Objects[i].ID == objectID {
			return &r.Objects[i]
		}
	}
	return nil
}
