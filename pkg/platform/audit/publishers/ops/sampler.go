package ops

import "math/rand/v2"

// Sampler provides configurable sampling for ops events.
// High-volume events can be sampled down to reduce log volume.
type Sampler struct {
	rate float64
	draw func() float64
}

// NewSampler creates a sampler keeping the given fraction of events.
// Rate is clamped to 0.0 (sample nothing) .. 1.0 (sample everything).
func NewSampler(rate float64) *Sampler {
	return &Sampler{
		rate: clampRate(rate),
		draw: rand.Float64,
	}
}

// ShouldSample returns true if the event should be sampled (kept).
func (s *Sampler) ShouldSample() bool {
	switch s.rate {
	case 0:
		return false
	case 1:
		return true
	}
	return s.draw() < s.rate
}

func clampRate(rate float64) float64 {
	return min(max(rate, 0), 1)
}
