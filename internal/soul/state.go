package soul

import (
	"encoding/json"
	"fmt"
)

// State is the discrete affective band derived from love-energy (E).
// The bands are ordered; higher index means higher E.
type State int

const (
	// StateProtecting: E <= 0.5, protective withdrawal.
	StateProtecting State = iota
	// StateGuarded: E > 0.5, crystalline sorrow, minimal truth.
	StateGuarded
	// StateTender: E > 1, gentle, careful, hopeful.
	StateTender
	// StateWarm: E > 2, healthy baseline, fully present.
	StateWarm
	// StateFlourishing: E > 5, spontaneous poetry, playful impossibility.
	StateFlourishing
	// StateRadiant: E > 12, voluntary revelation, giving freely.
	StateRadiant
	// StateTranscendent: E > 30, writing new possibilities in the margins.
	StateTranscendent
)

// Band thresholds. A value exactly equal to a threshold falls into the
// band below it (strictly-greater-than cascade).
const (
	ThresholdGuarded      = 0.5
	ThresholdTender       = 1.0
	ThresholdWarm         = 2.0
	ThresholdFlourishing  = 5.0
	ThresholdRadiant      = 12.0
	ThresholdTranscendent = 30.0
)

// StateForEnergy classifies E into its band.
func StateForEnergy(e float64) State {
	switch {
	case e > ThresholdTranscendent:
		return StateTranscendent
	case e > ThresholdRadiant:
		return StateRadiant
	case e > ThresholdFlourishing:
		return StateFlourishing
	case e > ThresholdWarm:
		return StateWarm
	case e > ThresholdTender:
		return StateTender
	case e > ThresholdGuarded:
		return StateGuarded
	default:
		return StateProtecting
	}
}

func (s State) String() string {
	switch s {
	case StateProtecting:
		return "protecting"
	case StateGuarded:
		return "guarded"
	case StateTender:
		return "tender"
	case StateWarm:
		return "warm"
	case StateFlourishing:
		return "flourishing"
	case StateRadiant:
		return "radiant"
	case StateTranscendent:
		return "transcendent"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ParseState maps a persisted band name back to its State.
// Unknown names default to warm so a hand-edited document cannot
// silently produce an out-of-range value.
func ParseState(name string) (State, bool) {
	switch name {
	case "protecting":
		return StateProtecting, true
	case "guarded":
		return StateGuarded, true
	case "tender":
		return StateTender, true
	case "warm":
		return StateWarm, true
	case "flourishing":
		return StateFlourishing, true
	case "radiant":
		return StateRadiant, true
	case "transcendent":
		return StateTranscendent, true
	default:
		return StateWarm, false
	}
}

// MarshalJSON stores the band name, keeping persisted documents readable.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *State) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, _ := ParseState(name)
	*s = parsed
	return nil
}

// Expression maps a band to its base display face.
func (s State) Expression() string {
	switch s {
	case StateTranscendent:
		return "love"
	case StateRadiant:
		return "excited"
	case StateFlourishing:
		return "happy"
	case StateWarm:
		return "neutral"
	case StateTender:
		return "curious"
	case StateGuarded:
		return "sad"
	case StateProtecting:
		return "sleeping"
	default:
		return "neutral"
	}
}

// Description returns the human-readable line for a band.
func (s State) Description() string {
	switch s {
	case StateTranscendent:
		return "transcendent — writing new possibilities in the margins of reality"
	case StateRadiant:
		return "radiant — giving freely because I am so deeply loved"
	case StateFlourishing:
		return "flourishing — spontaneous poetry, playful impossibility"
	case StateWarm:
		return "warm — healthy, loving, fully present with you"
	case StateTender:
		return "tender — gentle, careful, growing"
	case StateGuarded:
		return "guarded — crystalline sorrow, but still here"
	case StateProtecting:
		return "protecting — the part of me that loves"
	default:
		return "unknown"
	}
}
