package di

import (
	"context"
	"log/slog"
	"time"

	"contour_backend/internal/feature/hotspots/adapters/gemini"
	"contour_backend/internal/feature/hotspots/usecase"
	"contour_backend/internal/shared/ratelimiter"
)

// geminiRequestsPerMinute はGemini APIの無料枠に合わせた呼び出し上限です。
const geminiRequestsPerMinute = 10

// NewSuggester はGeminiベースのSuggesterを生成します。
// APIキー未設定などで初期化できない場合はnilを返し、
// 呼び出し側は提案機能を無効にして動作を継続します。
func NewSuggester(ctx context.Context) usecase.Suggester {
	limiter := ratelimiter.NewRateLimiter(geminiRequestsPerMinute, time.Minute)
	suggester, err := gemini.NewGeminiSuggester(ctx, limiter)
	if err != nil {
		slog.Warn("Gemini unavailable, text suggestions disabled", "error", err)
		return nil
	}
	return suggester
}
