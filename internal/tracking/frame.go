package tracking

import "time"

// PlayerData is one player's positional sample at a tick. A nil Coordinates
// means the player was not tracked this tick; it is never an implicit origin.
type PlayerData struct {
	Coordinates *Point
	Speed       *float64
}

// Frame is one canonical positional snapshot at a single time tick. It
// belongs to exactly one period and its timestamp always falls within that
// period's bounds.
type Frame struct {
	FrameID         int64
	Timestamp       time.Duration
	Period          *Period
	BallCoordinates *Point3D
	BallSpeed       *float64
	BallState       BallState
	BallOwningTeam  *Team
	PlayersData     map[*Player]PlayerData
}

// MirrorCoordinates point-reflects the frame's ball and player coordinates
// through the pitch centre, in place. Applying it twice restores the
// original coordinates.
func (f *Frame) MirrorCoordinates() {
	if f.BallCoordinates != nil {
		mirrored := f.BallCoordinates.Mirror()
		f.BallCoordinates = &mirrored
	}
	for player, data := range f.PlayersData {
		if data.Coordinates == nil {
			continue
		}
		mirrored := data.Coordinates.Mirror()
		data.Coordinates = &mirrored
		f.PlayersData[player] = data
	}
}
