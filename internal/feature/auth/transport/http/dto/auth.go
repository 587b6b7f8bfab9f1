// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "time"

// SignupReq は/auth/signupエンドポイントのリクエストボディを表します。
// Ginのbindingタグでバリデーション（必須、メール形式、パスワード長）を行います。
type SignupReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginReq は/auth/loginエンドポイントのリクエストボディを表します。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// MeResponse は/auth/meエンドポイントのレスポンスです。
// パスワードハッシュは含めません。
type MeResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
