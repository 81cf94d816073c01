package pipeline

import (
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/pitch.report/internal/monitoring"
	"github.com/banshee-data/pitch.report/internal/tracking"
)

// DefaultDirectionWindow is the number of frames an inference window spans.
// It is a heuristic, not a load-bearing constant; callers may configure a
// different window.
const DefaultDirectionWindow = 25

// FrameAttackingDirection estimates the home side's attacking direction
// from a single frame by comparing team centroids: the side whose centroid
// sits deeper in the left half defends the left goal and attacks left to
// right. Frames without tracked players on both sides return
// DirectionNotSet.
func FrameAttackingDirection(frame *tracking.Frame) tracking.AttackingDirection {
	var homeX, awayX []float64
	for player, data := range frame.PlayersData {
		if data.Coordinates == nil || player.Team == nil {
			continue
		}
		switch player.Team.Ground {
		case tracking.GroundHome:
			homeX = append(homeX, data.Coordinates.X)
		case tracking.GroundAway:
			awayX = append(awayX, data.Coordinates.X)
		}
	}
	if len(homeX) == 0 || len(awayX) == 0 {
		return tracking.DirectionNotSet
	}
	if stat.Mean(homeX, nil) < stat.Mean(awayX, nil) {
		return tracking.DirectionLeftToRight
	}
	return tracking.DirectionRightToLeft
}

// DirectionInferencer takes a majority vote of per-frame direction
// estimates across an initial window of one contiguous segment.
type DirectionInferencer struct {
	window int
}

// NewDirectionInferencer creates an inferencer. A window of 0 or less uses
// DefaultDirectionWindow.
func NewDirectionInferencer(window int) *DirectionInferencer {
	if window <= 0 {
		window = DefaultDirectionWindow
	}
	return &DirectionInferencer{window: window}
}

// Window returns the configured window size.
func (di *DirectionInferencer) Window() int { return di.window }

// Infer produces the segment's verdict. Frames beyond the window are
// ignored. A tie breaks toward the first counted estimate, keeping the
// verdict deterministic. A segment with no usable frames yields
// DirectionNotSet.
func (di *DirectionInferencer) Infer(frames []*tracking.Frame) tracking.AttackingDirection {
	votes := map[tracking.AttackingDirection]int{}
	first := tracking.DirectionNotSet

	n := len(frames)
	if n > di.window {
		n = di.window
	}
	for _, frame := range frames[:n] {
		estimate := FrameAttackingDirection(frame)
		if estimate == tracking.DirectionNotSet {
			continue
		}
		if first == tracking.DirectionNotSet {
			first = estimate
		}
		votes[estimate]++
	}

	if first == tracking.DirectionNotSet {
		return tracking.DirectionNotSet
	}
	if votes[tracking.DirectionLeftToRight] > votes[tracking.DirectionRightToLeft] {
		return tracking.DirectionLeftToRight
	}
	if votes[tracking.DirectionRightToLeft] > votes[tracking.DirectionLeftToRight] {
		return tracking.DirectionRightToLeft
	}
	return first
}

// ResolveOrientation chooses the dataset-level orientation. Explicit
// provider metadata wins; otherwise the first period's inferred direction
// decides. When neither is available the orientation stays unresolved,
// which is non-fatal.
func ResolveOrientation(meta *tracking.MatchMeta, firstPeriodDirection tracking.AttackingDirection) tracking.Orientation {
	if meta.HomeStartsLeft != nil {
		if *meta.HomeStartsLeft {
			return tracking.OrientationHomeAway
		}
		return tracking.OrientationAwayHome
	}

	switch firstPeriodDirection {
	case tracking.DirectionLeftToRight:
		return tracking.OrientationHomeAway
	case tracking.DirectionRightToLeft:
		return tracking.OrientationAwayHome
	default:
		monitoring.Logf("could not determine dataset orientation, leaving it not-set")
		return tracking.OrientationNotSet
	}
}
