// Package db はデータベース接続の初期化を提供します。
package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "contour_backend/internal/feature/auth/domain/entity"
	hotspotentity "contour_backend/internal/feature/hotspots/domain/entity"
	imageentity "contour_backend/internal/feature/images/domain/entity"
)

// Config はデータベース接続設定を保持します。
type Config struct {
	// Driver は "sqlite" または "postgres" を指定します。
	Driver string
	// Path はSQLiteデータベースファイルのパスです。
	Path string
	// PostgreSQL接続情報
	User     string
	Password string
	Name     string
	Host     string
	Port     string
}

// LoadConfig は環境変数からデータベース設定を読み込みます。
// 未指定の場合はローカルのSQLiteファイルにフォールバックします。
func LoadConfig() Config {
	cfg := Config{
		Driver:   os.Getenv("DB_DRIVER"),
		Path:     os.Getenv("DB_PATH"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
	}
	if cfg.Driver == "" {
		cfg.Driver = "sqlite"
	}
	if cfg.Path == "" {
		cfg.Path = "photo_hotspots.db"
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	return cfg
}

// BuildDSN はPostgreSQL接続用のDSN文字列を生成します。
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Tokyo",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
}

// OpenDB は設定されたドライバでデータベース接続を開きます。
// 起動直後のDB未準備に備え、最大60秒までリトライします。
// TranslateErrorを有効にし、一意制約違反をgorm.ErrDuplicatedKeyへ変換します。
func OpenDB() *gorm.DB {
	cfg := LoadConfig()

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = gpostgres.Open(BuildDSN(cfg))
	default:
		dialector = gsqlite.Open(cfg.Path)
	}

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(dialector, &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			slog.Error("DB connect failed after 60s", "driver", cfg.Driver, "error", err)
			os.Exit(1)
		}
		slog.Warn("DB connect failed, retrying", "driver", cfg.Driver, "error", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&authentity.User{},
			&imageentity.Image{},
			&hotspotentity.Hotspot{},
		); err != nil {
			slog.Error("failed to migrate", "error", err)
			os.Exit(1)
		}
	}

	return db
}
