// Package yolo provides a client for the YOLOv8 segmentation microservice.
package yolo

import (
	"os"
	"strconv"
	"time"
)

const (
	// DefaultTimeout is the request timeout for detection calls.
	// Inference is the one slow step of the pipeline, so the bound is generous.
	DefaultTimeout = 30 * time.Second

	// DefaultMinScore is the confidence threshold below which detections are dropped.
	DefaultMinScore = 0.5
)

// Config holds configuration for the YOLO segmentation service client.
type Config struct {
	BaseURL  string        // Base URL of the service (e.g., "http://localhost:8001")
	Timeout  time.Duration // HTTP request timeout
	MinScore float64       // Confidence threshold for filtering detections
}

// LoadConfig loads YOLO client configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		BaseURL:  os.Getenv("YOLO_SERVICE_URL"),
		Timeout:  DefaultTimeout,
		MinScore: DefaultMinScore,
	}
	if v := os.Getenv("DETECTOR_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("DETECTOR_MIN_SCORE"); v != "" {
		if score, err := strconv.ParseFloat(v, 64); err == nil && score >= 0 && score <= 1 {
			cfg.MinScore = score
		}
	}
	return cfg
}
