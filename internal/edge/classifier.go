package edge

import "fallguard/internal/models"

// FallPolicy decides whether a box of the given dimensions looks like a
// person lying down. It must be a total, side-effect-free function of the
// geometry; the pipeline does not assume it is accurate.
type FallPolicy func(height, width int) bool

// AspectRatioPolicy flags a box as a fall when it is as wide as or wider
// than it is tall. Crude, but cheap: a standing person is taller than wide.
// Zero-area boxes classify as fall, a known artifact of the heuristic.
func AspectRatioPolicy(height, width int) bool {
	return height-width <= 0
}

// Classify applies the fall policy to one frame's tracked boxes. Pure
// function of its inputs.
func Classify(boxes []models.TrackedBox, policy FallPolicy) []models.ClassifiedDetection {
	detections := make([]models.ClassifiedDetection, 0, len(boxes))
	for _, box := range boxes {
		h := box.Height()
		w := box.Width()
		detections = append(detections, models.ClassifiedDetection{
			TrackedBox: box,
			IsFall:     policy(h, w),
			Height:     h,
			Width:      w,
		})
	}
	return detections
}
