package tracking

// PitchDimensions describes the playing surface extents in the coordinate
// system's units.
type PitchDimensions struct {
	Length float64
	Width  float64
}

// CoordinateSystem names a coordinate convention and its pitch dimensions.
type CoordinateSystem struct {
	Name            string
	PitchDimensions PitchDimensions
}

// Transformer converts frames from a provider's native coordinate system to
// a target system. The math itself is owned by an external service; the
// pipeline consumes it opaquely, frame by frame.
type Transformer interface {
	TransformFrame(frame *Frame) *Frame
	TargetCoordinateSystem() CoordinateSystem
}

// IdentityTransformer leaves coordinates untouched. It stands in when no
// external transformer is supplied, keeping the provider's native system.
type IdentityTransformer struct {
	System CoordinateSystem
}

// TransformFrame returns the frame unchanged.
func (t IdentityTransformer) TransformFrame(frame *Frame) *Frame { return frame }

// TargetCoordinateSystem returns the configured system.
func (t IdentityTransformer) TargetCoordinateSystem() CoordinateSystem { return t.System }
