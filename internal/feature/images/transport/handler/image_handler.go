// Package handler はimagesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"contour_backend/internal/api"
	"contour_backend/internal/feature/images/domain/entity"
	"contour_backend/internal/feature/images/transport/http/dto"
	"contour_backend/internal/feature/images/usecase"
	jwtmw "contour_backend/internal/platform/jwt"
)

// ImageUsecase は画像操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ImageUsecase interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader, userID uint) (*entity.Image, error)
	Get(ctx context.Context, id uint) (*entity.Image, error)
	List(ctx context.Context) ([]entity.Image, error)
	FilePath(ctx context.Context, id uint) (string, string, error)
}

// ImageHandler は画像アップロード・取得のHTTPリクエストを処理します。
type ImageHandler struct {
	uc ImageUsecase
}

// NewImageHandler はImageHandlerの新しいインスタンスを生成します。
func NewImageHandler(uc ImageUsecase) *ImageHandler {
	return &ImageHandler{uc: uc}
}

// Upload は画像をアップロードしてメタデータを登録します。
//
// エンドポイント: POST /images
// Content-Type: multipart/form-data
// フィールド: file（画像ファイル、最大10MB）
func (h *ImageHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		slog.Warn("画像ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "画像ファイルが必要です"})
		return
	}

	// サイズが分かっている時点で上限超過を弾く（ユースケース側でも再検証される）
	if file.Size > usecase.MaxUploadSize {
		slog.Warn("画像ファイルが大きすぎます", "size", file.Size, "remote_addr", c.ClientIP())
		c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: "画像は10MB以下にしてください"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "画像の読み込みに失敗しました"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err)
		}
	}()

	userID, _ := c.Get(jwtmw.ContextUserID)
	uid, _ := userID.(uint)

	img, err := h.uc.Upload(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), f, uid)
	if err != nil {
		h.respondError(c, err, "image upload failed")
		return
	}

	slog.Info("image uploaded", "image_id", img.ID, "filename", img.Filename, "user_id", uid)
	c.JSON(http.StatusCreated, dto.NewImageResponse(img))
}

// Get は画像メタデータを返します。
//
// エンドポイント: GET /images/:id
func (h *ImageHandler) Get(c *gin.Context) {
	id, ok := parseImageID(c)
	if !ok {
		return
	}

	img, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "failed to get image")
		return
	}

	c.JSON(http.StatusOK, dto.NewImageResponse(img))
}

// List は画像メタデータの一覧を返します。
//
// エンドポイント: GET /images
func (h *ImageHandler) List(c *gin.Context) {
	images, err := h.uc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "failed to list images")
		return
	}

	out := make([]dto.ImageResponse, 0, len(images))
	for i := range images {
		out = append(out, dto.NewImageResponse(&images[i]))
	}
	c.JSON(http.StatusOK, out)
}

// File は元のラスターファイルを配信します。
//
// エンドポイント: GET /images/:id/file
func (h *ImageHandler) File(c *gin.Context) {
	id, ok := parseImageID(c)
	if !ok {
		return
	}

	path, filename, err := h.uc.FilePath(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "failed to serve image file")
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.File(path)
}

// respondError はユースケースのエラーをHTTPステータスに対応付けます。
func (h *ImageHandler) respondError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, usecase.ErrNotAnImage):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "uploaded file is not an image"})
	case errors.Is(err, usecase.ErrUploadTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: "uploaded file is too large"})
	case errors.Is(err, usecase.ErrImageNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "image not found"})
	case errors.Is(err, usecase.ErrImageFileMissing):
		slog.Error(logMsg, "error", err)
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "image file is missing"})
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
