package fallingsky

import (
	"math/rand"

	"github.com/vovakirdan/fallingsky/internal/config"
)

// History counts spawned shapes since the last board reset.
type History [NumShapes]int

// Record counts one spawn of s.
func (h *History) Record(s Shape) {
	h[s]++
}

// Total returns the number of spawns recorded.
func (h History) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// Rate returns the fraction of spawns that were s, or 0 with no history.
func (h History) Rate(s Shape) float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}
	return float64(h[s]) / float64(total)
}

// Reset zeroes all counts.
func (h *History) Reset() {
	*h = History{}
}

// NextShape picks the next shape uniformly, then once warmup spawns have been
// recorded rerolls any pick whose share of the history is above
// 1/(NumShapes-1). Rerolls are capped at cfg.RerollLimit. The caller records
// the result.
func NextShape(rng *rand.Rand, h *History, cfg config.GeneratorConfig) Shape {
	roll := func() Shape { return Shape(rng.Intn(NumShapes)) }

	s := roll()
	if h.Total() < cfg.Warmup {
		return s
	}

	ceiling := 1.0 / float64(NumShapes-1)
	for i := 0; i < cfg.RerollLimit && h.Rate(s) > ceiling; i++ {
		s = roll()
	}
	return s
}
