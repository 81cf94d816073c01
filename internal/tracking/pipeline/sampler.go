package pipeline

import "math"

// Sampler applies deterministic downsampling over the eligible record
// stream: every k-th record is retained, k = round(1/sampleRate). A single
// running counter spans the whole stream and is never reset at period or
// possession boundaries, so a fixed (sampleRate, limit) pair yields a
// reproducible subset of the same input.
//
// Eligibility filtering happens upstream of Keep; records skipped before
// the counter increments do not perturb the retained subset.
type Sampler struct {
	every int
	limit int
	count int
	kept  int
}

// NewSampler creates a sampler. A sampleRate outside (0, 1] retains every
// record; limit 0 means unlimited.
func NewSampler(sampleRate float64, limit int) *Sampler {
	every := 1
	if sampleRate > 0 && sampleRate <= 1 {
		every = int(math.Round(1 / sampleRate))
	}
	if every < 1 {
		every = 1
	}
	return &Sampler{every: every, limit: limit}
}

// Keep reports whether the next eligible record is retained.
func (s *Sampler) Keep() bool {
	n := s.count
	s.count++
	if n%s.every != 0 {
		return false
	}
	s.kept++
	return true
}

// Done reports whether the retained-frame limit has been reached. The
// caller must stop consuming the underlying source once Done is true.
func (s *Sampler) Done() bool {
	return s.limit > 0 && s.kept >= s.limit
}

// ReadCap returns the number of raw records a reader needs to produce
// before limit retained frames are guaranteed, or 0 when there is no cap.
// Readers may use it to stop decoding the underlying source early; it is a
// bounded-read optimization, not a correctness requirement.
func ReadCap(limit int, sampleRate float64) int {
	if limit <= 0 {
		return 0
	}
	if sampleRate <= 0 || sampleRate > 1 {
		sampleRate = 1
	}
	return int(math.Ceil(float64(limit) / sampleRate))
}
