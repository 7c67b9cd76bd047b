package edge

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// WebcamSource captures frames from a local camera device and hands them out
// as JPEG bytes, resized to a fixed processing resolution.
type WebcamSource struct {
	capture *gocv.VideoCapture
	mat     gocv.Mat
	width   int
	height  int
}

// NewWebcamSource opens the camera at the given device index.
func NewWebcamSource(deviceIndex, width, height int) (*WebcamSource, error) {
	capture, err := gocv.OpenVideoCapture(deviceIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", deviceIndex, err)
	}

	return &WebcamSource{
		capture: capture,
		mat:     gocv.NewMat(),
		width:   width,
		height:  height,
	}, nil
}

// Read captures one frame, resizes it and encodes it as JPEG.
func (s *WebcamSource) Read() ([]byte, error) {
	if ok := s.capture.Read(&s.mat); !ok || s.mat.Empty() {
		return nil, ErrSourceExhausted
	}

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(s.mat, &resized, image.Pt(s.width, s.height), 0, 0, gocv.InterpolationLinear)

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, resized)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	defer buf.Close()

	frame := make([]byte, buf.Len())
	copy(frame, buf.GetBytes())
	return frame, nil
}

// Close releases the camera device.
func (s *WebcamSource) Close() error {
	s.mat.Close()
	return s.capture.Close()
}
