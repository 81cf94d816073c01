package tracking

import "time"

// DatasetFlag records which optional per-tick facts a provider supplies.
type DatasetFlag uint8

const (
	FlagBallState DatasetFlag = 1 << iota
	FlagBallOwningTeam
)

// Has reports whether all the given flags are set.
func (f DatasetFlag) Has(flags DatasetFlag) bool {
	return f&flags == flags
}

// MatchMeta is the shape of the roster/metadata collaborator's output.
// Extraction from side-channel metadata files is owned externally; the
// pipeline only consumes this.
type MatchMeta struct {
	Home      *Team
	Away      *Team
	FrameRate float64
	Pitch     PitchDimensions

	// HomeStartsLeft states which half the home side defends first. Optional;
	// providers that depend on it fail the load when it is absent.
	HomeStartsLeft *bool

	// Date is the kick-off date. Optional and tolerated when absent.
	Date *time.Time

	// Periods carries explicitly supplied period boundaries for providers
	// that furnish them out of band. Nil when periods are discovered from
	// the raw stream itself.
	Periods []*Period
}

// TeamByGround returns the home or away team.
func (m *MatchMeta) TeamByGround(ground Ground) *Team {
	if ground == GroundHome {
		return m.Home
	}
	return m.Away
}

// Metadata describes a deserialized dataset as a whole.
type Metadata struct {
	Provider         string
	Teams            [2]*Team
	Periods          []*Period
	FrameRate        float64
	Orientation      Orientation
	Flags            DatasetFlag
	CoordinateSystem CoordinateSystem
	Date             *time.Time
}

// Dataset is the merged, time-ordered frame sequence produced by one
// deserialize invocation, plus its metadata.
type Dataset struct {
	Metadata Metadata
	Frames   []*Frame
}
