package main

import (
	"context"
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"contour_backend/internal/app/di"
	"contour_backend/internal/app/router"
	authadapters "contour_backend/internal/feature/auth/adapters"
	authhandler "contour_backend/internal/feature/auth/transport/handler"
	authusecase "contour_backend/internal/feature/auth/usecase"
	hotspotadapters "contour_backend/internal/feature/hotspots/adapters"
	hotspothandler "contour_backend/internal/feature/hotspots/transport/handler"
	hotspotusecase "contour_backend/internal/feature/hotspots/usecase"
	imageadapters "contour_backend/internal/feature/images/adapters"
	imagehandler "contour_backend/internal/feature/images/transport/handler"
	imageusecase "contour_backend/internal/feature/images/usecase"
	infradb "contour_backend/internal/platform/db"
	jwtmw "contour_backend/internal/platform/jwt"
	infraredis "contour_backend/internal/platform/redis"
	"contour_backend/internal/platform/storage"
)

func main() {
	ctx := context.Background()

	// db
	db := infradb.OpenDB()

	// Redis（任意。落ちていてもキャッシュなしで動作する）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without detection cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// アップロード先ディレクトリ
	uploads, err := storage.NewUploadStore(os.Getenv("UPLOAD_DIR"))
	if err != nil {
		log.Fatal("failed to prepare upload directory: ", err)
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	imageRepo := imageadapters.NewImageRepository(db)
	hotspotRepo := hotspotadapters.NewHotspotRepository(db)

	// 外部サービス
	detector := di.NewDetector(ctx, rdb)
	suggester := di.NewSuggester(ctx)

	// JWT
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), jwtmw.DefaultExpiration)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	imageUC := imageusecase.NewImageUsecase(imageRepo, uploads)
	hotspotUC := hotspotusecase.NewHotspotUsecase(imageRepo, hotspotRepo, detector, suggester)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	imageH := imagehandler.NewImageHandler(imageUC)
	hotspotH := hotspothandler.NewHotspotHandler(hotspotUC)

	// ルータ生成
	r := router.NewRouter(authH, imageH, hotspotH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
