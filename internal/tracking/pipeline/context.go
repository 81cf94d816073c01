package pipeline

import (
	"github.com/google/uuid"

	"github.com/banshee-data/pitch.report/internal/tracking"
)

// Context carries per-invocation mutable state through the pipeline. Each
// deserialize call creates its own context; two invocations must never share
// one, because possession carry-forward would bleed between datasets.
type Context struct {
	ID   uuid.UUID
	Meta *tracking.MatchMeta

	// CorruptTicks counts recoverable records that were dropped with a
	// diagnostic rather than aborting the load.
	CorruptTicks int

	ballOwning *tracking.Team
}

// NewContext creates a fresh context for one deserialize invocation.
func NewContext(meta *tracking.MatchMeta) *Context {
	return &Context{
		ID:   uuid.New(),
		Meta: meta,
	}
}

// ResolveBallOwning applies last-known-value carry-forward to possession.
// An explicit ground updates the carried value; nil reuses the most recently
// observed one. The carried value is never reset to unknown mid-stream.
func (c *Context) ResolveBallOwning(ground *tracking.Ground) *tracking.Team {
	if ground != nil {
		c.ballOwning = c.Meta.TeamByGround(*ground)
	}
	return c.ballOwning
}
