package tracking

import "time"

// Period ids follow the provider convention: 1 and 2 are the normal halves,
// 3 and 4 are the extra-time halves.
const (
	PeriodFirstHalf       = 1
	PeriodSecondHalf      = 2
	PeriodFirstHalfExtra  = 3
	PeriodSecondHalfExtra = 4
)

// Period is a contiguous match segment with explicit time bounds on the
// match clock. A period is created the first time its id is observed in the
// raw stream and is never recreated.
type Period struct {
	ID    int
	Start time.Duration
	End   time.Duration

	attackingDirection AttackingDirection
}

// ExtraTime reports whether the period is an extra-time half.
func (p *Period) ExtraTime() bool {
	return p.ID == PeriodFirstHalfExtra || p.ID == PeriodSecondHalfExtra
}

// Contains reports whether ts falls within the period's time bounds.
func (p *Period) Contains(ts time.Duration) bool {
	return p.Start <= ts && ts <= p.End
}

// AttackingDirection returns the home side's attacking direction for this
// period, or DirectionNotSet when inference has not resolved it.
func (p *Period) AttackingDirection() AttackingDirection {
	return p.attackingDirection
}

// SetAttackingDirection records the inferred direction. The first verdict
// wins; later calls are ignored so the value is set at most once.
func (p *Period) SetAttackingDirection(d AttackingDirection) {
	if p.attackingDirection == DirectionNotSet {
		p.attackingDirection = d
	}
}
