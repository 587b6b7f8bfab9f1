// Package gemini はGoogle Gemini APIを使用した注釈テキストのサジェスト
// クライアントを提供します。
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"contour_backend/internal/feature/hotspots/usecase"
	"contour_backend/internal/shared/ratelimiter"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"

	// SuggestPromptTemplate は注釈サジェストのプロンプトテンプレートです。
	SuggestPromptTemplate = "Write one short call-to-action caption (max 8 words) for an image hotspot over a %s. Reply with the caption only."
)

// GeminiSuggester はGemini APIで検出ラベルから注釈テキスト案を生成します。
type GeminiSuggester struct {
	client  *genai.Client
	model   string
	limiter ratelimiter.RateLimiterInterface
}

// GeminiSuggesterがSuggesterを実装していることをコンパイル時に検証します。
var _ usecase.Suggester = (*GeminiSuggester)(nil)

// NewGeminiSuggester はADCを使用してGeminiSuggesterの新しいインスタンスを生成します。
// limiterはAPIクォータ保護のために全サジェスト呼び出しへ適用されます。
func NewGeminiSuggester(ctx context.Context, limiter ratelimiter.RateLimiterInterface) (*GeminiSuggester, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiSuggester{client: client, model: DefaultModel, limiter: limiter}, nil
}

// Suggest は検出ラベルからホットスポット注釈の候補文を生成します。
func (g *GeminiSuggester) Suggest(ctx context.Context, label string) (string, error) {
	if g.limiter != nil {
		g.limiter.WaitIfNeeded()
	}

	prompt := fmt.Sprintf(SuggestPromptTemplate, label)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return strings.TrimSpace(resp.Text()), nil
}
