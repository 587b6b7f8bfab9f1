// Package svg は検出結果とユーザー注釈から対話的なSVGドキュメントを合成します。
//
// 出力は背景ラスター画像（data URI埋め込み）の上に、選択されたオブジェクトの
// 輪郭パス（輪郭がない場合はバウンディングボックス矩形）をクリック可能な
// リンクとして重ねた、自己完結のXMLドキュメントです。座標系は常に元画像の
// ピクセル空間に揃えられます。
package svg

import (
	"fmt"
	"strconv"
	"strings"

	"contour_backend/internal/feature/hotspots/domain"
	"contour_backend/internal/feature/hotspots/domain/entity"
	"contour_backend/internal/platform/geometry"
	"contour_backend/internal/platform/imagecodec"
)

const (
	// FallbackWidth / FallbackHeight は画像寸法が一切得られない場合の
	// キャンバス寸法です。
	FallbackWidth  = 800.0
	FallbackHeight = 600.0

	// minContourPoints はパス描画に必要な輪郭の最小点数です。
	// これ未満の輪郭は退化パスを避けるためbbox描画にフォールバックします。
	minContourPoints = 3

	fillOpacity = "0.2"
	strokeWidth = "2"
)

// ImageInfo は合成対象の画像メタデータです。
type ImageInfo struct {
	Path   string
	Width  int
	Height int
	// PreviewURL は元ラスターへの参照パスです（呼び出し元から渡され、
	// そのままSvgDocumentに引き継がれます）。
	PreviewURL string
}

// xmlEscaper はユーザー入力をマークアップに埋め込む前のエスケープ処理です。
// text/link/labelは攻撃者が制御可能な文字列のため、必ず通します。
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Composite は検出結果・選択オブジェクト・注釈から完全なSVGドキュメントを生成します。
//
// キャンバス寸法の優先順位は (1) DetectionResultの寸法 (2) 画像の保存済み寸法
// (3) フォールバック定数 の順で、この順序は座標スケーリングの前提のため
// 変更してはなりません。出力は決定的で、同一入力に対してバイト単位で一致します。
// 失敗時は部分的な出力を返しません。
func Composite(img ImageInfo, det *entity.DetectionResult, req entity.HotspotRequest) (*entity.SvgDocument, error) {
	obj := det.FindObject(req.ObjectID)
	if obj == nil {
		return nil, fmt.Errorf("%w: object_id=%d", domain.ErrObjectNotFound, req.ObjectID)
	}

	canvasW, canvasH := canvasSize(img, det)

	overlay, err := buildOverlay(obj, det, canvasW, canvasH)
	if err != nil {
		return nil, err
	}

	dataURI, err := imagecodec.ToDataURI(img.Path)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"`)
	b.WriteString(` width="` + formatDim(canvasW) + `" height="` + formatDim(canvasH) + `"`)
	b.WriteString(` viewBox="0 0 ` + formatDim(canvasW) + ` ` + formatDim(canvasH) + `">`)
	b.WriteString("\n")

	// 背景を先に描画（z順: 背景 → オーバーレイ）
	b.WriteString(`  <image href="` + dataURI + `" x="0" y="0"`)
	b.WriteString(` width="` + formatDim(canvasW) + `" height="` + formatDim(canvasH) + `"/>`)
	b.WriteString("\n")

	// クリック可能領域をリンクで包む
	b.WriteString(`  <a href="` + xmlEscaper.Replace(req.Link) + `" target="_blank">`)
	b.WriteString("\n    ")
	b.WriteString(overlayMarkup(overlay, req))
	b.WriteString("\n  </a>\n</svg>\n")

	return &entity.SvgDocument{
		ImageID:    req.ImageID,
		Svg:        b.String(),
		PreviewURL: img.PreviewURL,
	}, nil
}

// overlayShape はピクセル空間に解決済みのオーバーレイ形状です。
type overlayShape struct {
	contour []geometry.Point // 空の場合はbboxを描画
	bbox    geometry.BBox
}

// canvasSize はキャンバス寸法を優先順位に従って1箇所で決定します。
func canvasSize(img ImageInfo, det *entity.DetectionResult) (float64, float64) {
	if det.ImageWidth > 0 && det.ImageHeight > 0 {
		return det.ImageWidth, det.ImageHeight
	}
	if img.Width > 0 && img.Height > 0 {
		return float64(img.Width), float64(img.Height)
	}
	return FallbackWidth, FallbackHeight
}

// buildOverlay は選択オブジェクトの形状をピクセル空間へ解決します。
// 正規化座標のスケーリング以外の変形は行いません。キャンバス外の座標も
// そのまま通します（SVGがビューポートで自然にクリップするため）。
func buildOverlay(obj *entity.DetectedObject, det *entity.DetectionResult, canvasW, canvasH float64) (overlayShape, error) {
	if len(obj.Contour) >= minContourPoints {
		contour := obj.Contour
		if det.Normalized() {
			scaled, err := geometry.ScaleContour(contour, canvasW, canvasH, geometry.ToPixelSpace)
			if err != nil {
				return overlayShape{}, err
			}
			contour = scaled
		}
		return overlayShape{contour: contour}, nil
	}

	bbox := obj.BBox
	// 過去の検出バックエンドには画像寸法付きでピクセルbboxを返すものが
	// あったため、寸法がある場合でも座標が単位区間に収まる時のみスケールする。
	if det.Normalized() && bboxInUnitRange(bbox) {
		scaled, err := geometry.ScaleBBox(bbox, canvasW, canvasH, geometry.ToPixelSpace)
		if err != nil {
			return overlayShape{}, err
		}
		bbox = scaled
	}
	return overlayShape{bbox: bbox}, nil
}

func bboxInUnitRange(b geometry.BBox) bool {
	return b.X1 >= 0 && b.Y1 >= 0 && b.X2 <= 1 && b.Y2 <= 1
}

// overlayMarkup はオーバーレイ形状のSVG要素を生成します。
func overlayMarkup(shape overlayShape, req entity.HotspotRequest) string {
	color := xmlEscaper.Replace(req.StrokeColor())
	title := `<title>` + xmlEscaper.Replace(req.Text) + `</title>`
	style := ` fill="` + color + `" fill-opacity="` + fillOpacity +
		`" stroke="` + color + `" stroke-width="` + strokeWidth + `"`

	if len(shape.contour) > 0 {
		return `<path d="` + pathData(shape.contour) + `"` + style + `>` + title + `</path>`
	}

	return `<rect x="` + formatCoord(shape.bbox.X1) +
		`" y="` + formatCoord(shape.bbox.Y1) +
		`" width="` + formatCoord(shape.bbox.Width()) +
		`" height="` + formatCoord(shape.bbox.Height()) +
		`"` + style + `>` + title + `</rect>`
}

// pathData は輪郭を "M x1,y1 x2,y2 ... Z" 形式のパスデータに直列化します。
func pathData(contour []geometry.Point) string {
	parts := make([]string, 0, len(contour)+2)
	parts = append(parts, "M")
	for _, p := range contour {
		parts = append(parts, formatCoord(p.X)+","+formatCoord(p.Y))
	}
	parts = append(parts, "Z")
	return strings.Join(parts, " ")
}

// formatCoord は座標を小数1桁の固定小数点で整形します。
// ロケール非依存で決定的です。
func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// formatDim はキャンバス寸法を余分な小数なしで整形します（800 → "800"）。
func formatDim(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
