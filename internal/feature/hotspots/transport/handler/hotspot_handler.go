// Package handler はhotspotsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"contour_backend/internal/api"
	"contour_backend/internal/feature/hotspots/domain"
	"contour_backend/internal/feature/hotspots/domain/entity"
	"contour_backend/internal/feature/hotspots/transport/http/dto"
	"contour_backend/internal/feature/hotspots/usecase"
)

// HotspotUsecase はホットスポット操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type HotspotUsecase interface {
	DetectObjects(ctx context.Context, imageID uint) (*entity.DetectionResult, error)
	GenerateSVG(ctx context.Context, req entity.HotspotRequest) (*entity.SvgDocument, error)
	ListHotspots(ctx context.Context, imageID uint) ([]entity.Hotspot, error)
	SuggestText(ctx context.Context, imageID uint, objectID int) (string, error)
}

// HotspotHandler はホットスポット操作のHTTPリクエストを処理します。
type HotspotHandler struct {
	uc HotspotUsecase
}

// NewHotspotHandler はHotspotHandlerの新しいインスタンスを生成します。
func NewHotspotHandler(uc HotspotUsecase) *HotspotHandler {
	return &HotspotHandler{uc: uc}
}

// DetectObjects は画像に対する物体検出を実行します。
//
// エンドポイント: GET /images/:id/objects
func (h *HotspotHandler) DetectObjects(c *gin.Context) {
	imageID, ok := parseImageID(c)
	if !ok {
		return
	}

	det, err := h.uc.DetectObjects(c.Request.Context(), imageID)
	if err != nil {
		h.respondError(c, err, "object detection failed")
		return
	}

	c.JSON(http.StatusOK, dto.NewDetectionResponse(det))
}

// GenerateSVG は選択オブジェクトと注釈からSVGドキュメントを生成します。
//
// エンドポイント: POST /hotspots/svg
// Content-Type: application/json
func (h *HotspotHandler) GenerateSVG(c *gin.Context) {
	var req dto.GenerateSvgReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("svg generation validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	doc, err := h.uc.GenerateSVG(c.Request.Context(), entity.HotspotRequest{
		ImageID:  req.ImageID,
		ObjectID: *req.ObjectID,
		Text:     req.Text,
		Link:     req.Link,
		Color:    req.Color,
	})
	if err != nil {
		h.respondError(c, err, "svg generation failed")
		return
	}

	slog.Info("svg generated", "image_id", doc.ImageID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.SvgResponse{
		ImageID:    doc.ImageID,
		Svg:        doc.Svg,
		PreviewURL: doc.PreviewURL,
	})
}

// ListHotspots は画像のホットスポット一覧を返します。
//
// エンドポイント: GET /images/:id/hotspots
func (h *HotspotHandler) ListHotspots(c *gin.Context) {
	imageID, ok := parseImageID(c)
	if !ok {
		return
	}

	hotspots, err := h.uc.ListHotspots(c.Request.Context(), imageID)
	if err != nil {
		h.respondError(c, err, "failed to list hotspots")
		return
	}

	out := make([]dto.HotspotResponse, 0, len(hotspots))
	for _, hs := range hotspots {
		out = append(out, dto.NewHotspotResponse(hs))
	}
	c.JSON(http.StatusOK, out)
}

// Suggest は検出オブジェクトのラベルから注釈テキスト案を生成します。
//
// エンドポイント: POST /hotspots/suggest
func (h *HotspotHandler) Suggest(c *gin.Context) {
	var req dto.SuggestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("suggest validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	text, err := h.uc.SuggestText(c.Request.Context(), req.ImageID, *req.ObjectID)
	if err != nil {
		h.respondError(c, err, "suggestion failed")
		return
	}

	c.JSON(http.StatusOK, dto.SuggestResponse{Text: text})
}

// respondError はユースケースのエラーをHTTPステータスに対応付けます。
func (h *HotspotHandler) respondError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrImageNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "image not found"})
	case errors.Is(err, domain.ErrObjectNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "object not found"})
	case errors.Is(err, usecase.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrSuggesterUnavailable):
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "suggestion is not available"})
	case errors.Is(err, usecase.ErrDetectionFailed):
		slog.Error(logMsg, "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "object detection failed"})
	default:
		slog.Error(logMsg, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: logMsg})
	}
}

// parseImageID はパスパラメータ:idを解析します。不正な場合は400を応答済みです。
func parseImageID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid image id"})
		return 0, false
	}
	return uint(id), true
}
