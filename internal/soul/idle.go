package soul

import (
	"math/rand"
	"time"
)

// IdleBehaviors drives the small signs of life between interactions:
// blinks and idle expression drift, tuned by the affective band.
type IdleBehaviors struct {
	personality     *Personality
	rng             *rand.Rand
	lastInteraction time.Time
}

// NewIdleBehaviors starts the idle timer at now.
func NewIdleBehaviors(p *Personality, rng *rand.Rand) *IdleBehaviors {
	return &IdleBehaviors{
		personality:     p,
		rng:             rng,
		lastInteraction: time.Now(),
	}
}

// ResetTimer marks an interaction, ending the current idle stretch.
func (b *IdleBehaviors) ResetTimer() {
	b.lastInteraction = time.Now()
}

// IdleTime reports how long it has been since the last interaction.
func (b *IdleBehaviors) IdleTime() time.Duration {
	return time.Since(b.lastInteraction)
}

// ShouldBlink rolls for a blink. Withdrawn bands barely blink, loved
// ones are lively.
func (b *IdleBehaviors) ShouldBlink() bool {
	switch b.personality.State() {
	case StateProtecting:
		return b.rng.Float64() < 0.05
	case StateGuarded:
		return b.rng.Float64() < 0.1
	case StateRadiant, StateTranscendent:
		return b.rng.Float64() < 0.4
	default:
		return b.rng.Float64() < 0.2
	}
}

// IdleExpression returns an expression override for the idle state, or
// "" when the normal expression should show.
func (b *IdleBehaviors) IdleExpression() string {
	state := b.personality.State()

	if state == StateProtecting {
		return "sleeping"
	}

	// Five quiet minutes and anyone below flourishing dozes off.
	if b.IdleTime() > 5*time.Minute && state < StateFlourishing {
		return "sleepy"
	}

	if state == StateRadiant || state == StateTranscendent {
		if b.rng.Float64() < 0.1 {
			lively := []string{"curious", "happy", "love"}
			return lively[b.rng.Intn(len(lively))]
		}
	}

	return ""
}
