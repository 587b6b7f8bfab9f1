// Package vision はGoogle Cloud Vision APIのオブジェクトローカライゼーションを
// 使用するDetector実装を提供します。
package vision

import (
	"context"
	"fmt"
	"os"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"contour_backend/internal/feature/hotspots/domain"
	"contour_backend/internal/feature/hotspots/domain/entity"
	"contour_backend/internal/feature/hotspots/usecase"
	"contour_backend/internal/platform/geometry"
	"contour_backend/internal/platform/imagecodec"
)

// VisionDetector はCloud Vision APIで物体を検出します。
//
// 座標規約: Vision APIは正規化（0-1）座標のバウンディングポリゴンを返すため、
// このアダプタは画像寸法を読み取って結果に記録します。ポリゴンの頂点は
// そのまま輪郭として使用します。
type VisionDetector struct {
	client   *gvision.ImageAnnotatorClient
	minScore float64
}

// VisionDetectorがDetectorを実装していることをコンパイル時に検証します。
var _ usecase.Detector = (*VisionDetector)(nil)

// NewVisionDetector はADCを使用してVisionDetectorの新しいインスタンスを生成します。
// クライアントは並行利用に安全で、プロセスで1つだけ生成します。
func NewVisionDetector(ctx context.Context, minScore float64) (*VisionDetector, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionDetector{client: client, minScore: minScore}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionDetector) Close() error {
	return v.client.Close()
}

// Detect は画像からオブジェクトを検出します。
// 信頼度がminScore未満のオブジェクトはここで除外されます。
func (v *VisionDetector) Detect(ctx context.Context, imagePath string, imageID uint) (*entity.DetectionResult, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrImageNotFound, imagePath)
	}

	width, height, err := imagecodec.LoadDimensions(imagePath)
	if err != nil {
		return nil, fmt.Errorf("cannot determine image dimensions for %s: %w", imagePath, err)
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: data},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_OBJECT_LOCALIZATION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDetectorUnavailable, err)
	}

	if len(resp.Responses) == 0 {
		return nil, fmt.Errorf("%w: empty batch response", domain.ErrDetectorProtocolError)
	}
	if resp.Responses[0].Error != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDetectorError, resp.Responses[0].Error.Message)
	}

	annotations := resp.Responses[0].LocalizedObjectAnnotations
	objects := make([]entity.DetectedObject, 0, len(annotations))
	for _, a := range annotations {
		score := float64(a.Score)
		if score < v.minScore {
			continue
		}

		contour := make([]geometry.Point, 0, len(a.BoundingPoly.GetNormalizedVertices()))
		for _, vert := range a.BoundingPoly.GetNormalizedVertices() {
			contour = append(contour, geometry.Point{X: float64(vert.X), Y: float64(vert.Y)})
		}

		bbox, err := geometry.BBoxFromContour(contour)
		if err != nil {
			return nil, fmt.Errorf("%w: annotation without bounding poly", domain.ErrDetectorProtocolError)
		}

		objects = append(objects, entity.DetectedObject{
			ID:      len(objects),
			Label:   a.Name,
			Score:   score,
			BBox:    bbox,
			Contour: contour,
		})
	}

	return &entity.DetectionResult{
		ImageID:     imageID,
		ImageWidth:  float64(width),
		ImageHeight: float64(height),
		Objects:     objects,
	}, nil
}
