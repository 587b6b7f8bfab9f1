package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"unicode/utf8"

	"contour_backend/internal/feature/hotspots/domain"
	"contour_backend/internal/feature/hotspots/domain/entity"
	"contour_backend/internal/feature/hotspots/svg"
	imgentity "contour_backend/internal/feature/images/domain/entity"
)

const (
	// MaxTextLength は注釈テキストの最大文字数（rune数）です。
	MaxTextLength = 500
	// MaxLinkLength はリンクURLの最大バイト数です。
	MaxLinkLength = 2048
)

// validHexColor はホットスポットの色として許可される16進カラー形式です。
var validHexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Detector は検出バックエンドを抽象化するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
// 実装はプロセス起動時に1つ選択され、複数リクエストから並行利用されるため
// 並行安全でなければなりません。
type Detector interface {
	// Detect は画像パスに対して物体検出を実行し、検出結果を返します。
	// 結果内のオブジェクトIDは一意かつ安定で、信頼度フィルタリングは
	// 実装側で完了しています。
	Detect(ctx context.Context, imagePath string, imageID uint) (*entity.DetectionResult, error)
}

// Suggester は検出ラベルから注釈テキスト案を生成するインターフェースです。
type Suggester interface {
	// Suggest はオブジェクトのラベルからホットスポット注釈の候補文を生成します。
	Suggest(ctx context.Context, label string) (string, error)
}

// ImageRepository は画像メタデータの読み取りを抽象化します。
type ImageRepository interface {
	// FindByID は指定IDの画像メタデータを取得します。
	FindByID(ctx context.Context, id uint) (*imgentity.Image, error)
}

// HotspotRepository はホットスポットレコードの永続化を抽象化します。
type HotspotRepository interface {
	// Create は新しいホットスポットをストレージに永続化します。
	Create(ctx context.Context, h *entity.Hotspot) error

	// ListByImage は指定画像のホットスポットを作成順で返します。
	ListByImage(ctx context.Context, imageID uint) ([]entity.Hotspot, error)
}

// hotspotUsecase は検出・SVG合成・永続化を編成するホットスポットセッションです。
type hotspotUsecase struct {
	images    ImageRepository
	hotspots  HotspotRepository
	detector  Detector
	suggester Suggester
}

// NewHotspotUsecase はhotspotUsecaseの新しいインスタンスを生成します。
// suggesterはnil可（サジェスト機能無効）です。
func NewHotspotUsecase(images ImageRepository, hotspots HotspotRepository, detector Detector, suggester Suggester) *hotspotUsecase {
	return &hotspotUsecase{
		images:    images,
		hotspots:  hotspots,
		detector:  detector,
		suggester: suggester,
	}
}

// DetectObjects は画像に対して新しい検出を実行し、結果を返します。
// 画像メタデータが見つからない場合、推論を呼び出す前に
// domain.ErrImageNotFoundで短絡します。
func (u *hotspotUsecase) DetectObjects(ctx context.Context, imageID uint) (*entity.DetectionResult, error) {
	_, det, err := u.detect(ctx, imageID)
	return det, err
}

// GenerateSVG は検出・合成・永続化を実行してSVGドキュメントを返します。
// 合成が完全に成功した場合のみ出力を返します（部分的なSVGは返しません）。
func (u *hotspotUsecase) GenerateSVG(ctx context.Context, req entity.HotspotRequest) (*entity.SvgDocument, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	img, det, err := u.detect(ctx, req.ImageID)
	if err != nil {
		return nil, err
	}

	doc, err := svg.Composite(svg.ImageInfo{
		Path:       img.Filepath,
		Width:      img.Width,
		Height:     img.Height,
		PreviewURL: fmt.Sprintf("/images/%d/file", img.ID),
	}, det, req)
	if err != nil {
		return nil, err
	}

	// 選択領域のバウンディングボックスを注釈と共に保存する
	record, err := buildRecord(det, req)
	if err != nil {
		return nil, err
	}
	if err := u.hotspots.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist hotspot: %w", err)
	}

	return doc, nil
}

// ListHotspots は指定画像のホットスポット一覧を返します。
func (u *hotspotUsecase) ListHotspots(ctx context.Context, imageID uint) ([]entity.Hotspot, error) {
	if _, err := u.images.FindByID(ctx, imageID); err != nil {
		return nil, fmt.Errorf("%w: image_id=%d", domain.ErrImageNotFound, imageID)
	}
	return u.hotspots.ListByImage(ctx, imageID)
}

// SuggestText は検出されたオブジェクトのラベルから注釈テキスト案を生成します。
func (u *hotspotUsecase) SuggestText(ctx context.Context, imageID uint, objectID int) (string, error) {
	if u.suggester == nil {
		return "", ErrSuggesterUnavailable
	}

	_, det, err := u.detect(ctx, imageID)
	if err != nil {
		return "", err
	}

	obj := det.FindObject(objectID)
	if obj == nil {
		return "", fmt.Errorf("%w: object_id=%d", domain.ErrObjectNotFound, objectID)
	}

	text, err := u.suggester.Suggest(ctx, obj.Label)
	if err != nil {
		return "", fmt.Errorf("suggestion failed for label %q: %w", obj.Label, err)
	}
	return text, nil
}

// detect は画像メタデータの取得と検出の共通パスです。
// 検出バックエンドの失敗はErrDetectionFailedに一本化され、原因をラップします。
func (u *hotspotUsecase) detect(ctx context.Context, imageID uint) (*imgentity.Image, *entity.DetectionResult, error) {
	img, err := u.images.FindByID(ctx, imageID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: image_id=%d", domain.ErrImageNotFound, imageID)
	}

	det, err := u.detector.Detect(ctx, img.Filepath, img.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDetectionFailed, err)
	}
	return img, det, nil
}

// validateRequest はホットスポット入力の形式を検証します。
func validateRequest(req entity.HotspotRequest) error {
	if req.Link == "" {
		return fmt.Errorf("%w: link is required", ErrInvalidRequest)
	}
	if len(req.Link) > MaxLinkLength {
		return fmt.Errorf("%w: link exceeds %d bytes", ErrInvalidRequest, MaxLinkLength)
	}
	if utf8.RuneCountInString(req.Text) > MaxTextLength {
		return fmt.Errorf("%w: text exceeds %d characters", ErrInvalidRequest, MaxTextLength)
	}
	if req.Color != "" && !validHexColor.MatchString(req.Color) {
		return fmt.Errorf("%w: color must be a #rrggbb hex string", ErrInvalidRequest)
	}
	return nil
}

// buildRecord は選択オブジェクトのバウンディングボックスを直列化した
// 永続化レコードを組み立てます。
func buildRecord(det *entity.DetectionResult, req entity.HotspotRequest) (*entity.Hotspot, error) {
	obj := det.FindObject(req.ObjectID)
	if obj == nil {
		return nil, fmt.Errorf("%w: object_id=%d", domain.ErrObjectNotFound, req.ObjectID)
	}

	coords, err := json.Marshal(obj.BBox)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize bbox: %w", err)
	}

	return &entity.Hotspot{
		ImageID:     req.ImageID,
		BBoxCoords:  string(coords),
		TextContent: req.Text,
		LinkURL:     req.Link,
		Color:       req.StrokeColor(),
	}, nil
}
