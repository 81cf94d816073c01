package tracking

// BallState indicates whether play is active at a tick.
type BallState string

const (
	BallStateUnset BallState = ""
	BallStateAlive BallState = "alive"
	BallStateDead  BallState = "dead"
)
