package pipeline

import (
	"fmt"
	"sort"

	"github.com/banshee-data/pitch.report/internal/tracking"
)

// PeriodBuilder groups raw records into match periods. Two modes:
//
//   - Preset: the provider supplies period boundaries out of band and each
//     record is attributed by timestamp containment.
//   - Lazy: records carry a period id; a period is created the first time
//     its id is observed and its end bound extends with each later record.
//
// Period ids are assumed monotonically non-decreasing in the stream; an id
// reappearing after a later id has been seen makes attribution ambiguous
// and fails the load.
type PeriodBuilder struct {
	preset  []*tracking.Period
	periods map[int]*tracking.Period
	maxSeen int
}

// NewPeriodBuilder creates a builder. Pass the provider's explicit period
// boundaries when it supplies them, or nil to discover periods from the
// stream.
func NewPeriodBuilder(preset []*tracking.Period) *PeriodBuilder {
	return &PeriodBuilder{
		preset:  preset,
		periods: make(map[int]*tracking.Period),
	}
}

// Resolve returns the period a record belongs to. A nil period with nil
// error means the record falls outside every known period and is not
// eligible for the dataset.
func (b *PeriodBuilder) Resolve(rec *RawTickRecord) (*tracking.Period, error) {
	if b.preset != nil {
		for _, period := range b.preset {
			if period.Contains(rec.Timestamp) {
				b.periods[period.ID] = period
				return period, nil
			}
		}
		return nil, nil
	}

	if rec.PeriodID <= 0 {
		return nil, nil
	}

	if period, ok := b.periods[rec.PeriodID]; ok {
		if rec.PeriodID < b.maxSeen {
			return nil, fmt.Errorf("period %d reappeared after period %d: %w",
				rec.PeriodID, b.maxSeen, tracking.ErrFormat)
		}
		if rec.Timestamp > period.End {
			period.End = rec.Timestamp
		}
		return period, nil
	}

	period := &tracking.Period{
		ID:    rec.PeriodID,
		Start: rec.Timestamp,
		End:   rec.Timestamp,
	}
	b.periods[rec.PeriodID] = period
	if rec.PeriodID > b.maxSeen {
		b.maxSeen = rec.PeriodID
	}
	return period, nil
}

// Periods returns every period observed so far, ordered by id.
func (b *PeriodBuilder) Periods() []*tracking.Period {
	out := make([]*tracking.Period, 0, len(b.periods))
	for _, period := range b.periods {
		out = append(out, period)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
