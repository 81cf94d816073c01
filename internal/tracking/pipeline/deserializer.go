package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/banshee-data/pitch.report/internal/monitoring"
	"github.com/banshee-data/pitch.report/internal/tracking"
)

// DeserializerConfig configures one deserialization pipeline.
type DeserializerConfig struct {
	// SampleRate is the fraction of eligible records to retain. Values
	// outside (0, 1] retain everything.
	SampleRate float64

	// Limit stops the stream after this many retained frames. 0 = no limit.
	Limit int

	// IncludeDead keeps ticks where the ball is out of play. By default,
	// dead-ball ticks are filtered before the sampling counter. Feeds that
	// carry no ball state are unaffected.
	IncludeDead bool

	// DirectionWindow is the inference window size in frames
	// (default: DefaultDirectionWindow).
	DirectionWindow int

	// Transformer converts assembled frames to the target coordinate
	// system. Nil keeps the provider's native system unchanged.
	Transformer tracking.Transformer
}

// Deserializer drives the whole pipeline for one feed reader: period
// resolution, eligibility filtering, sampling, frame assembly, coordinate
// transformation, direction inference, and extra-time correction.
type Deserializer struct {
	cfg DeserializerConfig
}

// NewDeserializer creates a deserializer with the given configuration.
func NewDeserializer(cfg DeserializerConfig) *Deserializer {
	if cfg.DirectionWindow <= 0 {
		cfg.DirectionWindow = DefaultDirectionWindow
	}
	return &Deserializer{cfg: cfg}
}

// Deserialize consumes the reader to exhaustion (or the retained-frame
// limit) and returns the merged, time-ordered dataset. Fatal errors unwind
// with no partial dataset.
func (d *Deserializer) Deserialize(reader RecordReader, meta *tracking.MatchMeta) (*tracking.Dataset, error) {
	if err := validateMeta(meta); err != nil {
		return nil, err
	}

	ctx := NewContext(meta)
	periods := NewPeriodBuilder(meta.Periods)
	sampler := NewSampler(d.cfg.SampleRate, d.cfg.Limit)
	assembler := NewFrameAssembler(ctx)
	inferencer := NewDirectionInferencer(d.cfg.DirectionWindow)
	corrector := NewExtraTimeCorrector(inferencer)

	transformer := d.cfg.Transformer
	if transformer == nil {
		transformer = tracking.IdentityTransformer{System: tracking.CoordinateSystem{
			Name:            reader.Provider(),
			PitchDimensions: meta.Pitch,
		}}
	}

	var frames, etFrames []*tracking.Frame
	windows := make(map[*tracking.Period][]*tracking.Frame)

	for !sampler.Done() {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		period, err := periods.Resolve(rec)
		if err != nil {
			return nil, err
		}
		if period == nil {
			continue
		}

		// Possession is observed on every in-period record, not just the
		// retained ones: a change landing on a sampled-out or dead-ball tick
		// must still carry forward to every later frame.
		ctx.ResolveBallOwning(rec.BallOwning)

		if !d.cfg.IncludeDead && rec.BallState == tracking.BallStateDead {
			continue
		}
		if !sampler.Keep() {
			continue
		}

		frame := assembler.Assemble(rec, period)
		frame = transformer.TransformFrame(frame)

		if w := windows[period]; len(w) < inferencer.Window() {
			windows[period] = append(w, frame)
		}
		if period.ExtraTime() {
			etFrames = append(etFrames, frame)
		} else {
			frames = append(frames, frame)
		}
	}

	for period, window := range windows {
		period.SetAttackingDirection(inferencer.Infer(window))
	}

	// The extra-time reference direction comes from provider metadata when
	// the feed states which half the home side defends first; centroid
	// inference over period 1 is the fallback.
	var firstPeriodDirection tracking.AttackingDirection
	allPeriods := periods.Periods()
	if meta.HomeStartsLeft != nil {
		if *meta.HomeStartsLeft {
			firstPeriodDirection = tracking.DirectionLeftToRight
		} else {
			firstPeriodDirection = tracking.DirectionRightToLeft
		}
	} else {
		for _, period := range allPeriods {
			if period.ID == tracking.PeriodFirstHalf {
				firstPeriodDirection = period.AttackingDirection()
			}
		}
	}

	corrector.Correct(etFrames, firstPeriodDirection)
	frames = append(frames, etFrames...)

	if ctx.CorruptTicks > 0 {
		monitoring.Logf("deserialization %s: dropped %d corrupt entries", ctx.ID, ctx.CorruptTicks)
	}

	return &tracking.Dataset{
		Metadata: tracking.Metadata{
			Provider:         reader.Provider(),
			Teams:            [2]*tracking.Team{meta.Home, meta.Away},
			Periods:          allPeriods,
			FrameRate:        meta.FrameRate,
			Orientation:      ResolveOrientation(meta, firstPeriodDirection),
			Flags:            reader.Flags(),
			CoordinateSystem: transformer.TargetCoordinateSystem(),
			Date:             meta.Date,
		},
		Frames: frames,
	}, nil
}

func validateMeta(meta *tracking.MatchMeta) error {
	if meta == nil || meta.Home == nil || meta.Away == nil {
		return fmt.Errorf("match metadata must supply both teams: %w", tracking.ErrMissingField)
	}
	if meta.FrameRate <= 0 {
		return fmt.Errorf("match metadata must supply a frame rate: %w", tracking.ErrMissingField)
	}
	return nil
}
