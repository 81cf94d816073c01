package pipeline

import (
	"time"

	"github.com/banshee-data/pitch.report/internal/tracking"
)

// RawPlayer is one player entry in a raw tick record, normalized from the
// provider-native encoding. Players are keyed either by jersey number or by
// a persistent provider id, depending on the feed.
type RawPlayer struct {
	Ground      tracking.Ground
	PlayerID    string // provider persistent id; empty when jersey-keyed
	JerseyNo    int    // 0 when the feed only carries persistent ids
	Coordinates *tracking.Point
	Speed       *float64
}

// RawTickRecord is one time tick as produced by a feed reader. Every reader
// variant normalizes into this shape; nothing provider-specific leaks past
// it.
type RawTickRecord struct {
	FrameID   int64
	PeriodID  int // 0 when the provider supplies period bounds out of band
	Timestamp time.Duration

	BallCoordinates *tracking.Point3D
	BallSpeed       *float64
	BallState       tracking.BallState
	BallOwning      *tracking.Ground // nil when possession is unspecified this tick

	Players []RawPlayer
}

// RecordReader is the shared contract of the three feed variants: produce an
// ordered sequence of raw tick records, lazily, from the underlying byte
// source. Next returns io.EOF when the stream is exhausted.
type RecordReader interface {
	Next() (*RawTickRecord, error)

	// Provider names the feed variant for dataset metadata.
	Provider() string

	// Flags reports which optional per-tick facts this feed supplies.
	Flags() tracking.DatasetFlag
}
