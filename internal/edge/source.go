package edge

import "errors"

// ErrSourceExhausted signals that the frame source has no more frames. It is
// the normal end of a recorded stream, not a failure; the pipeline shuts
// down gracefully when it sees it.
var ErrSourceExhausted = errors.New("frame source exhausted")

// FrameSource produces encoded (JPEG) frames from a camera or video file.
type FrameSource interface {
	// Read returns the next captured frame, or ErrSourceExhausted when the
	// stream has ended.
	Read() ([]byte, error)
	Close() error
}
