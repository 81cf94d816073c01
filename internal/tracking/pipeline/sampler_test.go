package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSamplerRetention(t *testing.T) {
	t.Parallel()

	t.Run("rate 1.0 retains every eligible record", func(t *testing.T) {
		t.Parallel()
		s := NewSampler(1.0, 0)
		kept := 0
		for i := 0; i < 100; i++ {
			if s.Keep() {
				kept++
			}
		}
		assert.Equal(t, 100, kept)
	})

	t.Run("rate 0.1 retains every 10th eligible record", func(t *testing.T) {
		t.Parallel()
		s := NewSampler(0.1, 0)
		var kept []int
		for i := 1; i <= 30; i++ {
			if s.Keep() {
				kept = append(kept, i)
			}
		}
		if diff := cmp.Diff([]int{1, 11, 21}, kept); diff != "" {
			t.Errorf("retained records mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("identical subset across repeated runs", func(t *testing.T) {
		t.Parallel()
		run := func() []int {
			s := NewSampler(0.25, 0)
			var kept []int
			for i := 1; i <= 50; i++ {
				if s.Keep() {
					kept = append(kept, i)
				}
			}
			return kept
		}
		assert.Equal(t, run(), run())
	})

	t.Run("counter spans the whole stream", func(t *testing.T) {
		t.Parallel()
		// Skipping ineligible records upstream of Keep must not perturb
		// which eligible records are retained.
		s := NewSampler(0.5, 0)
		var kept []int
		eligible := 0
		for i := 1; i <= 20; i++ {
			if i%3 == 0 {
				continue // filtered upstream, counter untouched
			}
			eligible++
			if s.Keep() {
				kept = append(kept, eligible)
			}
		}
		if diff := cmp.Diff([]int{1, 3, 5, 7, 9, 11, 13}, kept); diff != "" {
			t.Errorf("retained eligible indexes mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("invalid rate retains everything", func(t *testing.T) {
		t.Parallel()
		for _, rate := range []float64{0, -1, 1.5} {
			s := NewSampler(rate, 0)
			assert.True(t, s.Keep())
			assert.True(t, s.Keep())
		}
	})
}

func TestSamplerLimit(t *testing.T) {
	t.Parallel()

	s := NewSampler(1.0, 3)
	for i := 0; i < 3; i++ {
		assert.False(t, s.Done())
		assert.True(t, s.Keep())
	}
	assert.True(t, s.Done())
}

func TestReadCap(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, ReadCap(0, 0.1))
	assert.Equal(t, 100, ReadCap(100, 1.0))
	assert.Equal(t, 1000, ReadCap(100, 0.1))
	assert.Equal(t, 50, ReadCap(50, -1))
}
