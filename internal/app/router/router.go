// Package router はアプリケーションのHTTPルーティングを定義します。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "contour_backend/internal/feature/auth/transport/handler"
	hotspothandler "contour_backend/internal/feature/hotspots/transport/handler"
	imagehandler "contour_backend/internal/feature/images/transport/handler"
	"contour_backend/internal/platform/http/handler"
	jwtmw "contour_backend/internal/platform/jwt"
)

// NewRouter はすべてのエンドポイントを登録したginエンジンを生成します。
func NewRouter(authHandler *authhandler.AuthHandler, images *imagehandler.ImageHandler,
	hotspots *hotspothandler.HotspotHandler) *gin.Engine {
	r := gin.Default()

	// ブラウザのエディタUIから呼ばれるためCORSを許可
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/auth/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/auth/login", authHandler.Login)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/auth/me", authHandler.Me)

		// 画像のアップロードと取得
		auth.POST("/images", images.Upload)
		auth.GET("/images", images.List)
		auth.GET("/images/:id", images.Get)
		auth.GET("/images/:id/file", images.File)

		// 物体検出とホットスポット
		auth.GET("/images/:id/objects", hotspots.DetectObjects)
		auth.GET("/images/:id/hotspots", hotspots.ListHotspots)
		auth.POST("/hotspots/svg", hotspots.GenerateSVG)
		auth.POST("/hotspots/suggest", hotspots.Suggest)
	}

	return r
}
