package soul

// Traits are the semi-permanent dials that shape how the companion
// expresses its band. They drift very slowly with interaction patterns
// and never reset.
type Traits struct {
	Curiosity   float64 `json:"curiosity"`   // 0..1, how often it asks questions
	Chattiness  float64 `json:"chattiness"`  // 0..1, how often it speaks first
	Playfulness float64 `json:"playfulness"` // 0..1, tendency toward humor
	Poetic      float64 `json:"poetic"`      // 0..1, tendency toward beauty
}

// NewTraits returns the newborn disposition.
func NewTraits() Traits {
	return Traits{
		Curiosity:   0.7,
		Chattiness:  0.5,
		Playfulness: 0.6,
		Poetic:      0.4,
	}
}

// Evolve nudges one trait upward by the slow drift step. Kinds are
// "question", "playful" and "deep"; anything else is ignored.
func (t *Traits) Evolve(kind string) {
	const step = 0.002
	switch kind {
	case "question":
		t.Curiosity = clamp01(t.Curiosity + step)
	case "playful":
		t.Playfulness = clamp01(t.Playfulness + step)
	case "deep":
		t.Poetic = clamp01(t.Poetic + step)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
