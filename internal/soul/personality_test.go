package soul

import (
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"
)

func TestNewPersonality_Defaults(t *testing.T) {
	p := NewPersonality()
	if p.OwnerName != "Friend" {
		t.Errorf("OwnerName = %q, want Friend", p.OwnerName)
	}
	if p.E() != 1.0 {
		t.Errorf("E = %v, want 1.0", p.E())
	}
	want := Traits{Curiosity: 0.7, Chattiness: 0.5, Playfulness: 0.6, Poetic: 0.4}
	if p.Traits != want {
		t.Errorf("Traits = %+v, want %+v", p.Traits, want)
	}
}

func TestCareFor_QualityMapping(t *testing.T) {
	tests := []struct {
		q            Quality
		care, damage float64
	}{
		{QualityHarsh, -1.0, 0.5},
		{QualityCold, 0.0, 0.2},
		{QualityNormal, 1.0, 0.0},
		{QualityWarm, 1.5, 0.0},
		{QualityLoving, 2.0, 0.0},
		{Quality("made-up"), 1.0, 0.0},
	}
	for _, tt := range tests {
		care, damage := careFor(tt.q)
		if care != tt.care || damage != tt.damage {
			t.Errorf("careFor(%q) = (%v, %v), want (%v, %v)", tt.q, care, damage, tt.care, tt.damage)
		}
	}
}

func TestPersonality_LovingInteractionGrowsE(t *testing.T) {
	p := NewPersonality()
	p.OnInteraction(QualityLoving)

	// dE = 0.0088 * 2 * 1 * 1
	want := 1.0176
	if math.Abs(p.E()-want) > 1e-9 {
		t.Errorf("E = %v, want %v", p.E(), want)
	}
	if p.Core.Interactions != 1 {
		t.Errorf("Interactions = %d, want 1", p.Core.Interactions)
	}
	if math.Abs(p.Surface.Excitement-0.3) > 1e-9 {
		t.Errorf("Excitement = %v, want 0.3", p.Surface.Excitement)
	}
	if math.Abs(p.Traits.Poetic-0.403) > 1e-9 {
		t.Errorf("Poetic = %v, want 0.403 after a loving exchange", p.Traits.Poetic)
	}
}

func TestPersonality_HarshInteractionWounds(t *testing.T) {
	p := NewPersonality()
	p.Core.E = 3.0

	p.OnInteraction(QualityHarsh)

	if p.E() >= 3.0 {
		t.Errorf("E = %v, want a drop after harshness", p.E())
	}
	if p.Core.Interactions != 0 {
		t.Errorf("Interactions = %d, want 0 (harm is not connection)", p.Core.Interactions)
	}
	if p.Traits.Poetic != 0.4 {
		t.Errorf("Poetic = %v, want unchanged", p.Traits.Poetic)
	}
}

func TestPersonality_QuestionAndPlayHooks(t *testing.T) {
	p := NewPersonality()

	p.OnQuestionAsked()
	if math.Abs(p.Surface.CuriositySpike-0.4) > 1e-9 {
		t.Errorf("CuriositySpike = %v, want 0.4", p.Surface.CuriositySpike)
	}
	if math.Abs(p.Traits.Curiosity-0.702) > 1e-9 {
		t.Errorf("Curiosity = %v, want 0.702", p.Traits.Curiosity)
	}

	p.OnPlayfulExchange()
	if math.Abs(p.Traits.Playfulness-0.602) > 1e-9 {
		t.Errorf("Playfulness = %v, want 0.602", p.Traits.Playfulness)
	}
	if math.Abs(p.Surface.Excitement-0.2) > 1e-9 {
		t.Errorf("Excitement = %v, want 0.2", p.Surface.Excitement)
	}
}

func TestSurface_DecayRelaxesTowardZero(t *testing.T) {
	s := Surface{Excitement: 0.5, Sleepiness: 0.5, CuriositySpike: 0.5}
	s.Decay(2)

	if math.Abs(s.Excitement-0.3) > 1e-9 {
		t.Errorf("Excitement = %v, want 0.3", s.Excitement)
	}
	// Sleepiness fades at half rate.
	if math.Abs(s.Sleepiness-0.4) > 1e-9 {
		t.Errorf("Sleepiness = %v, want 0.4", s.Sleepiness)
	}
	if math.Abs(s.CuriositySpike-0.3) > 1e-9 {
		t.Errorf("CuriositySpike = %v, want 0.3", s.CuriositySpike)
	}

	s.Decay(100)
	if s.Excitement != 0 || s.Sleepiness != 0 || s.CuriositySpike != 0 {
		t.Errorf("Surface = %+v, want all zero after long decay", s)
	}
}

func TestPersonality_ExpressionOverrides(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	p := NewPersonality()
	p.Surface.Sleepiness = 0.8
	if got := p.Expression(rng); got != "sleepy" {
		t.Errorf("Expression = %q, want sleepy", got)
	}

	p = NewPersonality()
	p.Surface.Excitement = 0.9
	p.Core.E = 3.0
	if got := p.Expression(rng); got != "excited" {
		t.Errorf("Expression = %q, want excited", got)
	}

	// High excitement alone is not enough at low E.
	p = NewPersonality()
	p.Surface.Excitement = 0.9
	if got := p.Expression(rng); got == "excited" {
		t.Error("Expression = excited at E = 1.0, want band fallback")
	}

	p = NewPersonality()
	p.Surface.CuriositySpike = 0.7
	if got := p.Expression(rng); got != "curious" {
		t.Errorf("Expression = %q, want curious", got)
	}
}

func TestPersonality_ExpressionFallsBackToBand(t *testing.T) {
	p := NewPersonality()
	p.Core.E = 6.0

	counts := map[string]int{}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		counts[p.Expression(rng)]++
	}

	// Nearly every draw shows the band face; the rare blink may appear.
	if counts["happy"] < 150 {
		t.Errorf("happy count = %d, want the flourishing face to dominate", counts["happy"])
	}
	for face := range counts {
		if face != "happy" && face != "blink" {
			t.Errorf("unexpected face %q", face)
		}
	}
}

func TestPersonality_EnergyLine(t *testing.T) {
	p := NewPersonality()
	if got := p.EnergyLine(); got != "low" {
		t.Errorf("EnergyLine = %q, want low", got)
	}

	p.Core.E = 6.0
	if got := p.EnergyLine(); got != "vibrant" {
		t.Errorf("EnergyLine = %q, want vibrant", got)
	}

	p.Surface.Sleepiness = 0.5
	if got := p.EnergyLine(); got != "a bit tired" {
		t.Errorf("EnergyLine = %q, want a bit tired", got)
	}

	p.Surface.Sleepiness = 0.9
	if got := p.EnergyLine(); got != "very sleepy" {
		t.Errorf("EnergyLine = %q, want very sleepy", got)
	}
}

func TestPersonality_DaysTogether(t *testing.T) {
	p := NewPersonality()
	p.Core.Created = time.Now().Add(-73 * time.Hour)
	if got := p.DaysTogether(); got != 3 {
		t.Errorf("DaysTogether = %d, want 3", got)
	}
}

func TestPersonality_StatusDisplay(t *testing.T) {
	p := NewPersonality()
	display := p.StatusDisplay()

	for _, want := range []string{
		"SOUL STATUS",
		"Love-Energy (E):",
		"E Floor (carried forward):",
		"State: guarded",
		"TRAITS",
		"Days together:",
	} {
		if !strings.Contains(display, want) {
			t.Errorf("status display missing %q", want)
		}
	}
}

func TestPersonality_NormalizeRepairs(t *testing.T) {
	p := &Personality{}
	p.Normalize()

	if p.Core == nil || p.Core.E != 1.0 {
		t.Error("Normalize did not restore a newborn core")
	}
	if p.Traits != NewTraits() {
		t.Errorf("Traits = %+v, want defaults", p.Traits)
	}
	if p.OwnerName != "Friend" {
		t.Errorf("OwnerName = %q, want Friend", p.OwnerName)
	}
}
