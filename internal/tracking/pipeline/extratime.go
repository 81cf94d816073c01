package pipeline

import (
	"github.com/banshee-data/pitch.report/internal/monitoring"
	"github.com/banshee-data/pitch.report/internal/tracking"
)

// ExtraTimeCorrector reconciles extra-time coordinates with the rest of the
// match. Extra-time frames are the one segment that must be buffered in
// full: their orientation verdict is only known once the inference window
// has been seen, and a disagreeing verdict rewrites every buffered frame.
type ExtraTimeCorrector struct {
	inferencer *DirectionInferencer
}

// NewExtraTimeCorrector creates a corrector sharing the pipeline's
// inference window configuration.
func NewExtraTimeCorrector(inferencer *DirectionInferencer) *ExtraTimeCorrector {
	return &ExtraTimeCorrector{inferencer: inferencer}
}

// Correct re-runs direction inference over the buffered extra-time frames
// and point-reflects their coordinates through the pitch centre when the
// verdict disagrees with the first period's direction, so all periods share
// one coordinate convention. Frames are mutated in place, preserving their
// original time order.
func (c *ExtraTimeCorrector) Correct(frames []*tracking.Frame, firstPeriodDirection tracking.AttackingDirection) {
	if len(frames) == 0 {
		return
	}
	if firstPeriodDirection == tracking.DirectionNotSet {
		monitoring.Logf("extra-time correction skipped: first-period direction unresolved")
		return
	}

	verdict := c.inferencer.Infer(frames)
	if verdict == tracking.DirectionNotSet {
		monitoring.Logf("extra-time correction skipped: no usable frames to infer direction from")
		return
	}
	if verdict == firstPeriodDirection {
		return
	}

	for _, frame := range frames {
		frame.MirrorCoordinates()
	}
	monitoring.Logf("mirrored %d extra-time frames to match first-period direction %s",
		len(frames), firstPeriodDirection)
}
