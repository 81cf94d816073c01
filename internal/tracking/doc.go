// Package tracking defines the canonical domain model for positional
// match data: frames, periods, teams, players, and the orientation and
// ball-state enumerations shared by every feed variant.
//
// The model is built once per deserialization and is immutable afterwards,
// with two exceptions: a period's attacking direction is set exactly once
// when inference resolves it, and extra-time frame coordinates may be
// rewritten at most once by the extra-time correction pass.
package tracking
