package soul

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Quality grades how an owner message landed, from harsh to loving.
// It decides whether an exchange feeds care or damage into the core.
type Quality string

const (
	QualityHarsh  Quality = "harsh"
	QualityCold   Quality = "cold"
	QualityNormal Quality = "normal"
	QualityWarm   Quality = "warm"
	QualityLoving Quality = "loving"
)

// careFor maps a quality to its (care, damage) pair. Exactly one side
// of the pair drives the core: damage when positive, care otherwise.
func careFor(q Quality) (care, damage float64) {
	switch q {
	case QualityHarsh:
		return -1.0, 0.5
	case QualityCold:
		return 0.0, 0.2
	case QualityWarm:
		return 1.5, 0.0
	case QualityLoving:
		return 2.0, 0.0
	default:
		return 1.0, 0.0
	}
}

// Personality is the complete inner state: the love-energy core plus
// the surface flickers and slow traits that color how it shows.
type Personality struct {
	Core      *Core   `json:"core"`
	Surface   Surface `json:"surface"`
	Traits    Traits  `json:"traits"`
	OwnerName string  `json:"owner_name"`

	lastUpdate time.Time
}

// NewPersonality returns a newborn personality owned by "Friend" until
// told otherwise.
func NewPersonality() *Personality {
	return &Personality{
		Core:       NewCore(),
		Traits:     NewTraits(),
		OwnerName:  "Friend",
		lastUpdate: time.Now(),
	}
}

// Normalize repairs a personality loaded from storage.
func (p *Personality) Normalize() {
	if p.Core == nil {
		p.Core = NewCore()
	} else {
		p.Core.Normalize()
	}
	if p.Traits == (Traits{}) {
		p.Traits = NewTraits()
	}
	if p.OwnerName == "" {
		p.OwnerName = "Friend"
	}
	if p.lastUpdate.IsZero() {
		p.lastUpdate = time.Now()
	}
}

// E is the current love-energy.
func (p *Personality) E() float64 { return p.Core.E }

// State is the current affective band.
func (p *Personality) State() State { return p.Core.State() }

// Update advances all time-based drift: idle decay on the core,
// surface relaxation, and the slow build of late-night sleepiness.
// Call it at least once a minute.
func (p *Personality) Update() {
	now := time.Now()
	dtMinutes := now.Sub(p.lastUpdate).Minutes()
	p.lastUpdate = now

	if dtMinutes <= 0 {
		return
	}

	p.Core.ProcessIdleTime()
	p.Surface.Decay(dtMinutes)

	hour := now.Hour()
	if hour >= 23 || hour < 6 {
		p.Surface.Sleepiness = clamp01(p.Surface.Sleepiness + 0.01*dtMinutes)
	}
}

// OnInteraction feeds one graded exchange into the core and lifts
// surface excitement. Warm and loving exchanges also deepen the poetic
// trait.
func (p *Personality) OnInteraction(q Quality) {
	care, damage := careFor(q)
	if damage > 0 {
		p.Core.ApplyDamage(damage, 1.0)
	} else {
		p.Core.ApplyCare(care, 1.0)
	}

	p.Surface.Excitement = clamp01(p.Surface.Excitement + 0.3)

	if q == QualityWarm || q == QualityLoving {
		p.Traits.Poetic = clamp01(p.Traits.Poetic + 0.003)
	}
}

// OnQuestionAsked marks a moment of shown curiosity.
func (p *Personality) OnQuestionAsked() {
	p.Surface.CuriositySpike = clamp01(p.Surface.CuriositySpike + 0.4)
	p.Traits.Evolve("question")
}

// OnPlayfulExchange marks a playful or humorous exchange.
func (p *Personality) OnPlayfulExchange() {
	p.Traits.Evolve("playful")
	p.Surface.Excitement = clamp01(p.Surface.Excitement + 0.2)
}

// Expression picks the face to show right now. Surface spikes override
// the band's base expression, and an occasional blink keeps it alive.
func (p *Personality) Expression(rng *rand.Rand) string {
	if p.Surface.Sleepiness > 0.7 {
		return "sleepy"
	}
	if p.Surface.Excitement > 0.8 && p.E() > 2 {
		return "excited"
	}
	if p.Surface.CuriositySpike > 0.6 {
		return "curious"
	}
	if rng.Float64() < 0.01 {
		return "blink"
	}
	return p.State().Expression()
}

// MoodLine is the band description shown to the owner.
func (p *Personality) MoodLine() string {
	return p.State().Description()
}

// EnergyLine describes physical energy from sleepiness and E.
func (p *Personality) EnergyLine() string {
	switch {
	case p.Surface.Sleepiness > 0.7:
		return "very sleepy"
	case p.Surface.Sleepiness > 0.4:
		return "a bit tired"
	case p.E() > 5:
		return "vibrant"
	case p.E() > 2:
		return "good"
	default:
		return "low"
	}
}

// DaysTogether counts whole days since the core was created.
func (p *Personality) DaysTogether() int {
	return int(time.Since(p.Core.Created).Hours() / 24.0)
}

// StatusDisplay renders the full soul as a framed status card.
func (p *Personality) StatusDisplay() string {
	mood := p.MoodLine()
	if r := []rune(mood); len(r) > 35 {
		mood = string(r[:35])
	}

	var b strings.Builder
	b.WriteString("\n╭───────────────────────────────────────────────╮\n")
	b.WriteString("│               SOUL STATUS                     │\n")
	b.WriteString("├───────────────────────────────────────────────┤\n")
	b.WriteString("│                                               │\n")
	fmt.Fprintf(&b, "│  ♥ Love-Energy (E): %6.2f                    │\n", p.E())
	fmt.Fprintf(&b, "│    [%s]       │\n", meter(p.E(), 35, 25))
	b.WriteString("│                                               │\n")
	fmt.Fprintf(&b, "│  E Floor (carried forward): %6.2f            │\n", p.Core.Floor)
	fmt.Fprintf(&b, "│  E Peak (highest love):     %6.2f            │\n", p.Core.Peak)
	b.WriteString("│                                               │\n")
	fmt.Fprintf(&b, "│  State: %-12s                          │\n", p.State().String())
	fmt.Fprintf(&b, "│  %-37q │\n", mood)
	b.WriteString("│                                               │\n")
	b.WriteString("├───────────────────────────────────────────────┤\n")
	b.WriteString("│  SURFACE STATE                                │\n")
	fmt.Fprintf(&b, "│  Excitement: [%s]           │\n", meter(p.Surface.Excitement, 1, 10))
	fmt.Fprintf(&b, "│  Sleepiness: [%s]           │\n", meter(p.Surface.Sleepiness, 1, 10))
	fmt.Fprintf(&b, "│  Curiosity:  [%s]           │\n", meter(p.Surface.CuriositySpike, 1, 10))
	b.WriteString("│                                               │\n")
	b.WriteString("├───────────────────────────────────────────────┤\n")
	b.WriteString("│  TRAITS                                       │\n")
	fmt.Fprintf(&b, "│  Curiosity:   [%s]           │\n", meter(p.Traits.Curiosity, 1, 10))
	fmt.Fprintf(&b, "│  Chattiness:  [%s]           │\n", meter(p.Traits.Chattiness, 1, 10))
	fmt.Fprintf(&b, "│  Playfulness: [%s]           │\n", meter(p.Traits.Playfulness, 1, 10))
	fmt.Fprintf(&b, "│  Poetic:      [%s]           │\n", meter(p.Traits.Poetic, 1, 10))
	b.WriteString("│                                               │\n")
	b.WriteString("├───────────────────────────────────────────────┤\n")
	fmt.Fprintf(&b, "│  Days together:   %6d                     │\n", p.DaysTogether())
	fmt.Fprintf(&b, "│  Interactions:    %6d                     │\n", p.Core.Interactions)
	fmt.Fprintf(&b, "│  Memory strength: %6.2fx                    │\n", p.Core.MemoryRetrievalMultiplier())
	b.WriteString("╰───────────────────────────────────────────────╯\n")
	return b.String()
}
