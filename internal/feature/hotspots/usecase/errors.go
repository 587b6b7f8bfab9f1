// Package usecase はhotspotsフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrDetectionFailed は検出バックエンドの失敗を外向きに一本化したエラーです。
	// 原因（ErrDetectorUnavailable等）をラップして保持します。
	ErrDetectionFailed = errors.New("object detection failed")

	// ErrSuggesterUnavailable は注釈サジェスト機能が設定されていない場合に返されます。
	ErrSuggesterUnavailable = errors.New("annotation suggester is not configured")

	// ErrInvalidRequest はホットスポット入力のバリデーション失敗時に返されます。
	ErrInvalidRequest = errors.New("invalid hotspot request")
)
