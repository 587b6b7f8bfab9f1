package entity

import "time"

// DefaultColor はホットスポットのデフォルトの枠線色です。
const DefaultColor = "#3b82f6"

// HotspotRequest はユーザーが選択したオブジェクトと注釈の入力を表します。
type HotspotRequest struct {
	ImageID  uint
	ObjectID int
	Text     string
	Link     string
	// Color は枠線の16進カラー文字列です。空の場合はDefaultColorが使われます。
	Color string
}

// StrokeColor は指定色、未指定の場合はデフォルト色を返します。
func (r HotspotRequest) StrokeColor() string {
	if r.Color == "" {
		return DefaultColor
	}
	return r.Color
}

// Hotspot は画像領域とユーザー注釈（テキスト+リンク）の対応を永続化するレコードです。
type Hotspot struct {
	ID      uint `gorm:"primaryKey"`
	ImageID uint `gorm:"index;not null"`

	// BBoxCoords は選択領域のバウンディングボックスをJSONで直列化した文字列です。
	BBoxCoords string `gorm:"size:512;not null"`

	TextContent string `gorm:"size:1024"`
	LinkURL     string `gorm:"size:2048"`
	Color       string `gorm:"size:16"`

	CreatedAt time.Time
}

// SvgDocument は合成済みのSVG出力です。リクエストごとに新規生成され、
// 構築後は変更されません。
type SvgDocument struct {
	ImageID    uint   `json:"image_id"`
	Svg        string `json:"svg"`
	PreviewURL string `json:"preview_url,omitempty"`
}
