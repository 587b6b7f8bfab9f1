// Package domain defines domain-level errors for the hotspots feature.
package domain

import "errors"

// Detection and composition errors. These represent the failure taxonomy of the
// detection pipeline and are mapped to user-facing errors by upper layers.
var (
	// ErrImageNotFound indicates that the source image record or file does not exist.
	// Detector adapters return this before invoking any inference.
	ErrImageNotFound = errors.New("image not found")

	// ErrObjectNotFound indicates that the selected object id is absent from the
	// detection result.
	ErrObjectNotFound = errors.New("object not found in detection result")

	// ErrDetectorUnavailable indicates a connection error or timeout while
	// reaching the detection backend.
	ErrDetectorUnavailable = errors.New("detector unavailable")

	// ErrDetectorError indicates that the detection backend returned a
	// non-success status.
	ErrDetectorError = errors.New("detector returned error status")

	// ErrDetectorProtocolError indicates a malformed response body from the
	// detection backend.
	ErrDetectorProtocolError = errors.New("malformed detector response")
)
