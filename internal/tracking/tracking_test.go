package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamRoster(t *testing.T) {
	t.Parallel()

	t.Run("jersey lookup", func(t *testing.T) {
		t.Parallel()
		team := &Team{TeamID: "T1", Ground: GroundHome}
		listed := &Player{PlayerID: "p1", Team: team, JerseyNo: 10}
		team.Players = append(team.Players, listed)

		assert.Same(t, listed, team.PlayerByJersey(10))
		assert.Nil(t, team.PlayerByJersey(11))
	})

	t.Run("synthesized player identity is side plus jersey", func(t *testing.T) {
		t.Parallel()
		team := &Team{TeamID: "T2", Ground: GroundAway}
		p := team.SynthesizePlayer(23)

		assert.Equal(t, "away_23", p.PlayerID)
		assert.Same(t, team, p.Team)
		assert.Same(t, p, team.PlayerByJersey(23))
	})

	t.Run("id lookup", func(t *testing.T) {
		t.Parallel()
		team := &Team{TeamID: "T3", Ground: GroundHome}
		listed := &Player{PlayerID: "obj-1", Team: team, JerseyNo: 4}
		team.Players = append(team.Players, listed)

		assert.Same(t, listed, team.PlayerByID("obj-1"))
		assert.Nil(t, team.PlayerByID("obj-2"))
	})
}

func TestPeriod(t *testing.T) {
	t.Parallel()

	t.Run("bounds containment", func(t *testing.T) {
		t.Parallel()
		p := &Period{ID: 1, Start: time.Minute, End: 46 * time.Minute}
		assert.True(t, p.Contains(time.Minute))
		assert.True(t, p.Contains(20*time.Minute))
		assert.True(t, p.Contains(46*time.Minute))
		assert.False(t, p.Contains(50*time.Minute))
	})

	t.Run("extra time ids", func(t *testing.T) {
		t.Parallel()
		assert.False(t, (&Period{ID: PeriodFirstHalf}).ExtraTime())
		assert.False(t, (&Period{ID: PeriodSecondHalf}).ExtraTime())
		assert.True(t, (&Period{ID: PeriodFirstHalfExtra}).ExtraTime())
		assert.True(t, (&Period{ID: PeriodSecondHalfExtra}).ExtraTime())
	})

	t.Run("attacking direction is set once", func(t *testing.T) {
		t.Parallel()
		p := &Period{ID: 1}
		require.Equal(t, DirectionNotSet, p.AttackingDirection())

		p.SetAttackingDirection(DirectionLeftToRight)
		p.SetAttackingDirection(DirectionRightToLeft) // ignored
		assert.Equal(t, DirectionLeftToRight, p.AttackingDirection())
	})
}

func TestMirror(t *testing.T) {
	t.Parallel()

	t.Run("point reflection negates both axes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, Point{X: -1, Y: 2}, Point{X: 1, Y: -2}.Mirror())
		assert.Equal(t, Point3D{X: -1, Y: 2, Z: 0.5}, Point3D{X: 1, Y: -2, Z: 0.5}.Mirror())
	})

	t.Run("frame mirror skips untracked players", func(t *testing.T) {
		t.Parallel()
		player := &Player{PlayerID: "p1"}
		ghost := &Player{PlayerID: "p2"}
		frame := &Frame{
			BallCoordinates: &Point3D{X: 3, Y: 4, Z: 1},
			PlayersData: map[*Player]PlayerData{
				player: {Coordinates: &Point{X: 1, Y: 1}},
				ghost:  {}, // not tracked this tick
			},
		}
		frame.MirrorCoordinates()

		assert.Equal(t, Point3D{X: -3, Y: -4, Z: 1}, *frame.BallCoordinates)
		assert.Equal(t, Point{X: -1, Y: -1}, *frame.PlayersData[player].Coordinates)
		assert.Nil(t, frame.PlayersData[ghost].Coordinates)
	})
}

func TestDatasetFlag(t *testing.T) {
	t.Parallel()

	flags := FlagBallState | FlagBallOwningTeam
	assert.True(t, flags.Has(FlagBallState))
	assert.True(t, flags.Has(FlagBallState|FlagBallOwningTeam))
	assert.False(t, DatasetFlag(0).Has(FlagBallState))
}

func TestEnumStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ltr", DirectionLeftToRight.String())
	assert.Equal(t, "rtl", DirectionRightToLeft.String())
	assert.Equal(t, "not-set", DirectionNotSet.String())
	assert.Equal(t, "home-away", OrientationHomeAway.String())
	assert.Equal(t, "away-home", OrientationAwayHome.String())
	assert.Equal(t, "not-set", OrientationNotSet.String())
}
