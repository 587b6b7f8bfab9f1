package yolo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"contour_backend/internal/feature/hotspots/adapters/yolo/dto"
	"contour_backend/internal/feature/hotspots/domain"
	"contour_backend/internal/feature/hotspots/domain/entity"
	"contour_backend/internal/feature/hotspots/usecase"
	"contour_backend/internal/platform/geometry"
	"contour_backend/internal/platform/imagecodec"
)

// YoloDetector はYOLOv8セグメンテーションマイクロサービスを呼び出すDetector実装です。
//
// 座標規約: サービスは正規化（0-1）座標を返し、元画像の寸法は返しません。
// そのためこのアダプタが画像ファイルから寸法を読み取り、結果に記録します。
// 寸法が決定できない場合は曖昧な結果を返さずエラーにします。
type YoloDetector struct {
	cfg    Config
	client *http.Client
}

// YoloDetectorがDetectorを実装していることをコンパイル時に検証します。
var _ usecase.Detector = (*YoloDetector)(nil)

// NewYoloDetector は指定された設定とHTTPクライアントでYoloDetectorの新しいインスタンスを生成します。
// クライアントは共有され、複数リクエストから並行利用されます。
func NewYoloDetector(cfg Config, client *http.Client) *YoloDetector {
	return &YoloDetector{cfg: cfg, client: client}
}

// Detect は画像に対してセグメンテーション検出を実行します。
// 信頼度がMinScore未満のオブジェクトはここで除外されます。
func (y *YoloDetector) Detect(ctx context.Context, imagePath string, imageID uint) (*entity.DetectionResult, error) {
	// 推論を呼び出す前にファイルの存在を確認する
	if _, err := os.Stat(imagePath); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrImageNotFound, imagePath)
	}

	// 正規化座標の復元に必須の寸法を画像メタデータから取得
	width, height, err := imagecodec.LoadDimensions(imagePath)
	if err != nil {
		return nil, fmt.Errorf("cannot determine image dimensions for %s: %w", imagePath, err)
	}

	body, err := json.Marshal(dto.DetectRequest{ImagePath: imagePath})
	if err != nil {
		return nil, fmt.Errorf("failed to encode detect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, y.cfg.BaseURL+"/detect", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build detect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := y.client.Do(req)
	if err != nil {
		// 接続エラー・タイムアウト（コンテキストキャンセル含む）
		return nil, fmt.Errorf("%w: %v", domain.ErrDetectorUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: http %d", domain.ErrDetectorError, res.StatusCode)
	}

	var parsed dto.DetectResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDetectorProtocolError, err)
	}

	objects := make([]entity.DetectedObject, 0, len(parsed.Objects))
	for _, o := range parsed.Objects {
		if o.Score < y.cfg.MinScore {
			continue
		}
		obj, err := toEntity(o)
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}

	return &entity.DetectionResult{
		ImageID:     imageID,
		ImageWidth:  float64(width),
		ImageHeight: float64(height),
		Objects:     objects,
	}, nil
}

// toEntity はワイヤフォーマットのオブジェクトをドメインエンティティに変換します。
func toEntity(o dto.DetectedObjectDTO) (entity.DetectedObject, error) {
	contour := make([]geometry.Point, 0, len(o.Contour))
	for _, pt := range o.Contour {
		if len(pt) != 2 {
			return entity.DetectedObject{}, fmt.Errorf("%w: contour point has %d coordinates", domain.ErrDetectorProtocolError, len(pt))
		}
		contour = append(contour, geometry.Point{X: pt[0], Y: pt[1]})
	}
	return entity.DetectedObject{
		ID:      o.ID,
		Label:   o.Label,
		Score:   o.Score,
		BBox:    geometry.BBox{X1: o.BBox.X1, Y1: o.BBox.Y1, X2: o.BBox.X2, Y2: o.BBox.Y2},
		Contour: contour,
	}, nil
}
