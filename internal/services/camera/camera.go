// Package camera implements capture sources on top of OpenCV.
package camera

import (
	"fmt"
	"sync"

	"smarttag/internal/logger"
	"smarttag/internal/services/capture"

	"gocv.io/x/gocv"
)

// Opener opens camera devices and video files through gocv.
type Opener struct {
	logger *logger.Logger
}

func NewOpener(logger *logger.Logger) *Opener {
	return &Opener{logger: logger}
}

// OpenCamera opens a capture device and asks for the target resolution.
// The device may settle on a different one.
func (o *Opener) OpenCamera(device, width, height int) (capture.Source, error) {
	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("%w: device %d: %v", capture.ErrUnavailable, device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: device %d could not be opened", capture.ErrUnavailable, device)
	}

	vc.Set(gocv.VideoCaptureFrameWidth, float64(width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(height))

	o.logger.Info("Camera %d opened (requested %dx%d)", device, width, height)
	return newSource(vc, false), nil
}

// OpenFile opens a video file for frame extraction.
func (o *Opener) OpenFile(path string) (capture.Source, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video %s: %w", path, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("failed to open video %s", path)
	}

	o.logger.Info("Video file opened: %s", path)
	return newSource(vc, true), nil
}

type source struct {
	mu     sync.Mutex
	vc     *gocv.VideoCapture
	frame  gocv.Mat
	scaled gocv.Mat
	file   bool
	closed bool
}

func newSource(vc *gocv.VideoCapture, file bool) *source {
	return &source{
		vc:     vc,
		frame:  gocv.NewMat(),
		scaled: gocv.NewMat(),
		file:   file,
	}
}

// Capture reads the next frame, scales it to opts.MaxWidth and encodes it as JPEG.
func (s *source) Capture(opts capture.Options) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, capture.ErrNotReady
	}

	if ok := s.vc.Read(&s.frame); !ok {
		if s.file {
			return nil, capture.ErrEndOfStream
		}
		return nil, capture.ErrNotReady
	}
	if s.frame.Empty() || s.frame.Cols() == 0 {
		return nil, capture.ErrNotReady
	}

	img := s.frame
	size := capture.ScaledSize(s.frame.Cols(), s.frame.Rows(), opts.MaxWidth)
	if size.X != s.frame.Cols() {
		gocv.Resize(s.frame, &s.scaled, size, 0, 0, gocv.InterpolationArea)
		img = s.scaled
	}

	var params []int
	if opts.Quality > 0 {
		params = []int{int(gocv.IMWriteJpegQuality), opts.Quality}
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, img, params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

// Close releases the device and every buffer held by the source.
func (s *source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.frame.Close()
	s.scaled.Close()
	return s.vc.Close()
}

// ToPNG re-encodes a JPEG frame as PNG.
func ToPNG(jpeg []byte) ([]byte, error) {
	mat, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("decoded image is empty")
	}

	buf, err := gocv.IMEncode(gocv.PNGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}
