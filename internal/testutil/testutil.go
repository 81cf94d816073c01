// Package testutil provides shared test fixtures for the tracking pipeline.
//
// This package centralises common fixture builders to reduce duplication
// across feed and pipeline test files.
package testutil

import (
	"strconv"
	"testing"

	"github.com/banshee-data/pitch.report/internal/monitoring"
	"github.com/banshee-data/pitch.report/internal/tracking"
)

// MuteLogs silences the package logger for the duration of the test.
func MuteLogs(t *testing.T) {
	t.Helper()
	prev := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.SetLogger(prev) })
}

// TwoTeamMeta builds match metadata with two rostered teams at the given
// frame rate, the standard fixture for pipeline and feed tests.
func TwoTeamMeta(frameRate float64) *tracking.MatchMeta {
	home := &tracking.Team{TeamID: "T-HOME", Name: "Home FC", Ground: tracking.GroundHome}
	away := &tracking.Team{TeamID: "T-AWAY", Name: "Away FC", Ground: tracking.GroundAway}
	for _, jersey := range []int{1, 7, 9, 10} {
		RosterPlayer(home, jersey)
		RosterPlayer(away, jersey)
	}
	return &tracking.MatchMeta{
		Home:      home,
		Away:      away,
		FrameRate: frameRate,
		Pitch:     tracking.PitchDimensions{Length: 105, Width: 68},
	}
}

// RosterPlayer appends a listed player with a deterministic id to a team.
func RosterPlayer(team *tracking.Team, jerseyNo int) *tracking.Player {
	p := &tracking.Player{
		PlayerID: string(team.Ground) + "-listed-" + strconv.Itoa(jerseyNo),
		Team:     team,
		JerseyNo: jerseyNo,
	}
	team.Players = append(team.Players, p)
	return p
}

// FloatPtr returns a pointer to v, for optional numeric fields.
func FloatPtr(v float64) *float64 { return &v }

// BoolPtr returns a pointer to v, for optional flags.
func BoolPtr(v bool) *bool { return &v }
