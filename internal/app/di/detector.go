// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"contour_backend/internal/feature/hotspots/adapters/stub"
	"contour_backend/internal/feature/hotspots/adapters/vision"
	"contour_backend/internal/feature/hotspots/adapters/yolo"
	"contour_backend/internal/feature/hotspots/usecase"
	"contour_backend/internal/platform/cache"
	infrahttp "contour_backend/internal/platform/http"
)

// EnvKeyDetectorBackend はディテクター実装を選択する環境変数です。
// 受け付ける値: "yolo"（デフォルト）、"vision"、"stub"
const EnvKeyDetectorBackend = "DETECTOR_BACKEND"

// NewDetector は設定されたバックエンドのDetectorを生成します。
// Redisクライアントが渡された場合は検出結果キャッシュでラップします。
// visionバックエンドの初期化に失敗した場合はstubへフォールバックします。
func NewDetector(ctx context.Context, rdb *redisv9.Client) usecase.Detector {
	var detector usecase.Detector
	var backend string

	switch os.Getenv(EnvKeyDetectorBackend) {
	case "stub":
		backend = "stub"
		detector = stub.NewStubDetector()
	case "vision":
		v, err := vision.NewVisionDetector(ctx, yolo.DefaultMinScore)
		if err != nil {
			slog.Warn("Cloud Vision unavailable, falling back to stub detector", "error", err)
			backend = "stub"
			detector = stub.NewStubDetector()
		} else {
			backend = "vision"
			detector = v
		}
	default:
		backend = "yolo"
		cfg := yolo.LoadConfig()
		httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
		detector = yolo.NewYoloDetector(cfg, httpClient)
	}

	if rdb != nil {
		// バックエンドごとに名前空間を分ける。
		// DETECTOR_BACKENDを切り替えたとき、別実装の古い検出結果を返さないため。
		return cache.NewCachingDetector(rdb, cache.DefaultDetectionTTL, detector, "detections:"+backend)
	}
	return detector
}
