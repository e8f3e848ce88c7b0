// Package capture defines the frame sources the pump reads from and the
// helpers shared by their implementations.
package capture

import (
	"encoding/base64"
	"errors"
	"image"
	"strings"
)

var (
	// ErrNotReady means the source has no decoded frame yet.
	ErrNotReady = errors.New("source not ready")
	// ErrUnavailable means the camera could not be opened (denied or absent).
	ErrUnavailable = errors.New("camera unavailable")
	// ErrEndOfStream means a file source has no more frames.
	ErrEndOfStream = errors.New("end of stream")
)

// Options controls how a captured frame is scaled and encoded.
// MaxWidth <= 0 keeps the native resolution.
type Options struct {
	MaxWidth int
	Quality  int
}

// Source yields JPEG encoded frames.
type Source interface {
	Capture(opts Options) ([]byte, error)
	Close() error
}

// Opener acquires sources. OpenCamera failures wrap ErrUnavailable.
type Opener interface {
	OpenCamera(device, width, height int) (Source, error)
	OpenFile(path string) (Source, error)
}

// ScaledSize returns the size of a width x height frame bounded by maxWidth,
// keeping the aspect ratio. Frames are never upscaled.
func ScaledSize(width, height, maxWidth int) image.Point {
	if maxWidth <= 0 || width <= maxWidth || width == 0 {
		return image.Pt(width, height)
	}
	h := int(float64(height)*float64(maxWidth)/float64(width) + 0.5)
	if h < 1 {
		h = 1
	}
	return image.Pt(maxWidth, h)
}

const jpegPrefix = "data:image/jpeg;base64,"

// DataURI wraps JPEG bytes as a data URI.
func DataURI(jpeg []byte) string {
	return jpegPrefix + base64.StdEncoding.EncodeToString(jpeg)
}

// DecodeDataURI extracts the raw bytes from a base64 data URI.
func DecodeDataURI(uri string) ([]byte, error) {
	i := strings.Index(uri, ",")
	if !strings.HasPrefix(uri, "data:") || i < 0 {
		return nil, errors.New("not a data URI")
	}
	if !strings.HasSuffix(uri[:i], ";base64") {
		return nil, errors.New("data URI is not base64 encoded")
	}
	return base64.StdEncoding.DecodeString(uri[i+1:])
}
