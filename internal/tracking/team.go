package tracking

import "fmt"

// Ground identifies which side of the fixture a team occupies.
type Ground string

const (
	GroundHome Ground = "home"
	GroundAway Ground = "away"
)

// Player is one member of a team's roster.
type Player struct {
	PlayerID string
	Team     *Team
	JerseyNo int
	Name     string
}

// String returns the player id, which is stable across a deserialization.
func (p *Player) String() string {
	if p.Name != "" {
		return p.Name
	}
	return p.PlayerID
}

// Team holds one side's identity and its current roster. The roster may be
// extended during frame assembly when an unlisted jersey number appears; it
// is never shrunk or reordered.
type Team struct {
	TeamID  string
	Name    string
	Ground  Ground
	Players []*Player
}

// PlayerByJersey returns the rostered player wearing the given jersey
// number, or nil when no such player is known yet.
func (t *Team) PlayerByJersey(jerseyNo int) *Player {
	for _, p := range t.Players {
		if p.JerseyNo == jerseyNo {
			return p
		}
	}
	return nil
}

// PlayerByID returns the rostered player with the given provider id, or nil.
func (t *Team) PlayerByID(playerID string) *Player {
	for _, p := range t.Players {
		if p.PlayerID == playerID {
			return p
		}
	}
	return nil
}

// SynthesizePlayer appends a placeholder player for a jersey number that was
// never listed in the roster metadata (a late, unlisted substitute). Identity
// is derived from the team side and jersey number so a repeat occurrence of
// the same number resolves to the same player.
func (t *Team) SynthesizePlayer(jerseyNo int) *Player {
	p := &Player{
		PlayerID: fmt.Sprintf("%s_%d", t.Ground, jerseyNo),
		Team:     t,
		JerseyNo: jerseyNo,
	}
	t.Players = append(t.Players, p)
	return p
}
