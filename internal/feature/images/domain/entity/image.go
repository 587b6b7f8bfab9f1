// Package entity はimagesフィーチャーのドメインモデルを定義します。
package entity

import "time"

// Image はアップロードされた画像のメタデータを表します。
type Image struct {
	// ID は画像の一意な識別子です。
	ID uint `gorm:"primaryKey"`

	// Filename はアップロード時の元ファイル名です。
	Filename string `gorm:"size:255;not null"`

	// Filepath はアップロードディレクトリ配下の保存先パスです。
	Filepath string `gorm:"size:512;not null"`

	// UserID はアップロードしたユーザーのIDです。
	UserID uint `gorm:"index"`

	// Width / Height はピクセル単位の画像寸法です。
	// デコードできないファイルは0x0として保存されます。
	Width  int
	Height int

	// CreatedAt は画像が登録された日時です。
	CreatedAt time.Time
}
