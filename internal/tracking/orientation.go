package tracking

// AttackingDirection is the screen-direction a team is moving toward its
// target goal within one match segment.
type AttackingDirection int

const (
	DirectionNotSet AttackingDirection = iota
	DirectionLeftToRight
	DirectionRightToLeft
)

func (d AttackingDirection) String() string {
	switch d {
	case DirectionLeftToRight:
		return "ltr"
	case DirectionRightToLeft:
		return "rtl"
	default:
		return "not-set"
	}
}

// Orientation is the dataset-level convention describing which side attacks
// which direction across the whole match.
type Orientation int

const (
	OrientationNotSet Orientation = iota
	// OrientationHomeAway means the home side attacks left to right.
	OrientationHomeAway
	// OrientationAwayHome means the away side attacks left to right.
	OrientationAwayHome
)

func (o Orientation) String() string {
	switch o {
	case OrientationHomeAway:
		return "home-away"
	case OrientationAwayHome:
		return "away-home"
	default:
		return "not-set"
	}
}
