package edge

// Sampler pulls frames from a source at a fixed downsample rate and owns the
// look-back buffer used for "before" evidence frames. Only every interval-th
// captured frame is emitted, which bounds processing cost relative to
// capture rate.
type Sampler struct {
	source   FrameSource
	interval int
	count    int

	// buffer holds the most recently sampled (not captured) frames, oldest
	// first, capped at capacity.
	buffer   [][]byte
	capacity int
}

// NewSampler creates a Sampler emitting every interval-th frame and keeping
// the last capacity sampled frames for look-back.
func NewSampler(source FrameSource, interval, capacity int) *Sampler {
	if interval < 1 {
		interval = 1
	}
	if capacity < 1 {
		capacity = 1
	}
	return &Sampler{
		source:   source,
		interval: interval,
		buffer:   make([][]byte, 0, capacity),
		capacity: capacity,
	}
}

// Sample reads from the source until the next frame due for processing,
// records it in the look-back buffer and returns it. Returns
// ErrSourceExhausted once the source has ended.
func (s *Sampler) Sample() ([]byte, error) {
	for {
		frame, err := s.source.Read()
		if err != nil {
			return nil, err
		}

		s.count++
		if s.count%s.interval != 0 {
			continue
		}

		s.push(frame)
		return frame, nil
	}
}

// OldestBuffered returns the oldest retained sampled frame, used as the
// "before" evidence image. Until the buffer fills, the oldest available
// frame is the deliberate substitute. Returns nil before the first sample.
func (s *Sampler) OldestBuffered() []byte {
	if len(s.buffer) == 0 {
		return nil
	}
	return s.buffer[0]
}

// Buffered returns how many sampled frames are currently retained.
func (s *Sampler) Buffered() int {
	return len(s.buffer)
}

func (s *Sampler) push(frame []byte) {
	kept := make([]byte, len(frame))
	copy(kept, frame)

	if len(s.buffer) == s.capacity {
		s.buffer = append(s.buffer[1:], kept)
		return
	}
	s.buffer = append(s.buffer, kept)
}
