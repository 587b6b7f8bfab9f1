// Package usecase はimagesフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrImageNotFound はIDに対応する画像レコードが存在しない場合に返されます。
	ErrImageNotFound = errors.New("image not found")

	// ErrImageFileMissing はレコードは存在するがファイルがディスク上にない場合に返されます。
	ErrImageFileMissing = errors.New("image file not found on disk")

	// ErrNotAnImage はアップロードされたファイルが画像でない場合に返されます。
	ErrNotAnImage = errors.New("file must be an image")

	// ErrUploadTooLarge はアップロードがMaxUploadSizeを超えた場合に返されます。
	ErrUploadTooLarge = errors.New("uploaded file is too large")
)
