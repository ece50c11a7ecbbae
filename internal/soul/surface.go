package soul

import "math"

// Surface holds the moment-to-moment flickers layered on top of the
// core band. They spike on events and decay back to zero on their own.
type Surface struct {
	Excitement     float64 `json:"excitement"`      // 0..1, spikes on interaction
	Sleepiness     float64 `json:"sleepiness"`      // 0..1, builds at night
	CuriositySpike float64 `json:"curiosity_spike"` // 0..1, spikes on questions
}

// Decay relaxes surface state toward zero. Sleepiness fades at half
// rate so late-night drowsiness lingers.
func (s *Surface) Decay(dtMinutes float64) {
	rate := 0.1 * dtMinutes
	s.Excitement = math.Max(0, s.Excitement-rate)
	s.Sleepiness = math.Max(0, s.Sleepiness-rate*0.5)
	s.CuriositySpike = math.Max(0, s.CuriositySpike-rate)
}
