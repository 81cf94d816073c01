package pipeline

import (
	"github.com/banshee-data/pitch.report/internal/monitoring"
	"github.com/banshee-data/pitch.report/internal/tracking"
)

// FrameAssembler maps one raw tick record plus its resolved period onto a
// canonical frame, resolving player identity against the rosters held by
// the invocation context.
type FrameAssembler struct {
	ctx *Context
}

// NewFrameAssembler creates an assembler bound to one invocation context.
func NewFrameAssembler(ctx *Context) *FrameAssembler {
	return &FrameAssembler{ctx: ctx}
}

// Assemble builds the frame for one record. Missing coordinates propagate
// as explicit absence and possession follows last-known-value carry-forward.
func (a *FrameAssembler) Assemble(rec *RawTickRecord, period *tracking.Period) *tracking.Frame {
	playersData := make(map[*tracking.Player]tracking.PlayerData, len(rec.Players))
	for _, raw := range rec.Players {
		player := a.resolvePlayer(raw)
		if player == nil {
			a.ctx.CorruptTicks++
			monitoring.Logf("frame %d: unresolvable player entry (team=%s id=%q jersey=%d), dropped",
				rec.FrameID, raw.Ground, raw.PlayerID, raw.JerseyNo)
			continue
		}
		playersData[player] = tracking.PlayerData{
			Coordinates: raw.Coordinates,
			Speed:       raw.Speed,
		}
	}

	return &tracking.Frame{
		FrameID:         rec.FrameID,
		Timestamp:       rec.Timestamp,
		Period:          period,
		BallCoordinates: rec.BallCoordinates,
		BallSpeed:       rec.BallSpeed,
		BallState:       rec.BallState,
		BallOwningTeam:  a.ctx.ResolveBallOwning(rec.BallOwning),
		PlayersData:     playersData,
	}
}

// resolvePlayer finds the roster entry for a raw player. Persistent ids win
// when present; otherwise the jersey number is looked up within the acting
// team, synthesizing a placeholder for a number never seen before.
func (a *FrameAssembler) resolvePlayer(raw RawPlayer) *tracking.Player {
	team := a.ctx.Meta.TeamByGround(raw.Ground)
	if team == nil {
		return nil
	}

	if raw.PlayerID != "" {
		if player := team.PlayerByID(raw.PlayerID); player != nil {
			return player
		}
	}
	if raw.JerseyNo > 0 {
		if player := team.PlayerByJersey(raw.JerseyNo); player != nil {
			return player
		}
		return team.SynthesizePlayer(raw.JerseyNo)
	}
	return nil
}
