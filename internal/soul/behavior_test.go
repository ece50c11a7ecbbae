package soul

import (
	"math/rand"
	"testing"
	"time"
)

func newTestEngine(energy float64, seed int64) *BehaviorEngine {
	p := NewPersonality()
	p.Core.E = energy
	return NewBehaviorEngine(p, NewMemoryStore(), rand.New(rand.NewSource(seed)))
}

// firstProactive drives Check with the interval gate held open until a
// band roll passes. The seeded stream makes the iteration count fixed.
func firstProactive(t *testing.T, be *BehaviorEngine) *ProactiveEvent {
	t.Helper()
	for i := 0; i < 400; i++ {
		be.lastProactive = time.Time{}
		if ev := be.Check(); ev != nil {
			return ev
		}
	}
	t.Fatal("no proactive event after 400 checks")
	return nil
}

func TestBehaviorEngine_MinIntervalGatesChecks(t *testing.T) {
	be := newTestEngine(3.0, 1)
	be.lastProactive = time.Now()

	if ev := be.Check(); ev != nil {
		t.Errorf("Check() = %+v, want nil inside the minimum interval", ev)
	}
}

func TestBehaviorEngine_SetMinInterval(t *testing.T) {
	be := newTestEngine(3.0, 1)
	be.SetMinInterval(45 * time.Minute)
	be.lastProactive = time.Now().Add(-30 * time.Minute)

	if ev := be.Check(); ev != nil {
		t.Errorf("Check() = %+v, want nil 30m into a 45m interval", ev)
	}
}

func TestBehaviorEngine_FlourishingHalvesInterval(t *testing.T) {
	be := newTestEngine(35.0, 1)
	be.SetMinInterval(time.Hour)
	be.lastProactive = time.Now().Add(-40 * time.Minute)

	ev := be.Check()
	if ev == nil {
		t.Fatal("Check() = nil 40m into a 1h interval, want an event while flourishing halves it")
	}
	if ev.Type != "transcendent_offering" {
		t.Errorf("Type = %q, want %q", ev.Type, "transcendent_offering")
	}
	if ev.Priority != 7 {
		t.Errorf("Priority = %d, want 7", ev.Priority)
	}
	if ev.Source != "transcendent" {
		t.Errorf("Source = %q, want %q", ev.Source, "transcendent")
	}
}

func TestBehaviorEngine_FullIntervalBelowFlourishing(t *testing.T) {
	be := newTestEngine(3.0, 1)
	be.SetMinInterval(time.Hour)
	be.lastProactive = time.Now().Add(-40 * time.Minute)

	if ev := be.Check(); ev != nil {
		t.Errorf("Check() = %+v, want nil 40m into a full 1h interval", ev)
	}
}

func TestBehaviorEngine_SuppressionRules(t *testing.T) {
	tests := []struct {
		name      string
		recent    []string
		eventType string
		want      bool
	}{
		{"empty history", nil, "thought", false},
		{"repeat of last event", []string{"thought"}, "thought", true},
		{"different from last event", []string{"thought"}, "check_in", false},
		{"greeting repeats freely", []string{"greeting"}, "greeting", false},
		{"gift within last five", []string{"gift", "thought", "check_in"}, "gift", true},
		{"gift older than five events", []string{"gift", "thought", "check_in", "thought", "check_in", "thought"}, "gift", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := newTestEngine(3.0, 1)
			be.recentEvents = tt.recent
			if got := be.suppressed(tt.eventType); got != tt.want {
				t.Errorf("suppressed(%q) = %v, want %v", tt.eventType, got, tt.want)
			}
		})
	}
}

func TestBehaviorEngine_SuppressedEventDoesNotStamp(t *testing.T) {
	be := newTestEngine(6.0, 1)
	be.recentEvents = []string{"gift", "flourishing_thought"}

	ev := be.trigger(&ProactiveEvent{Type: "gift", Message: "again?", Priority: 5})
	if ev != nil {
		t.Fatalf("trigger() = %+v, want nil for a suppressed gift", ev)
	}
	if !be.lastProactive.IsZero() {
		t.Error("suppressed event stamped lastProactive")
	}
	if len(be.recentEvents) != 2 {
		t.Errorf("len(recentEvents) = %d, want 2 (suppressed event recorded)", len(be.recentEvents))
	}
}

func TestBehaviorEngine_RecentEventsWindow(t *testing.T) {
	be := newTestEngine(3.0, 1)

	for i := 0; i < 12; i++ {
		typ := "thought"
		if i%2 == 1 {
			typ = "check_in"
		}
		if ev := be.trigger(&ProactiveEvent{Type: typ}); ev == nil {
			t.Fatalf("trigger %d suppressed unexpectedly", i)
		}
	}

	if len(be.recentEvents) != 10 {
		t.Errorf("len(recentEvents) = %d, want 10", len(be.recentEvents))
	}
	if be.recentEvents[0] != "thought" {
		t.Errorf("recentEvents[0] = %q, want %q after the oldest two dropped", be.recentEvents[0], "thought")
	}
	if be.lastProactive.IsZero() {
		t.Error("trigger never stamped lastProactive")
	}
}

func TestBehaviorEngine_ProtectingRarelySpeaks(t *testing.T) {
	be := newTestEngine(0.4, 1)
	be.personality.Core.Floor = 0.2

	ev := firstProactive(t, be)
	if ev.Type != "protection" {
		t.Errorf("Type = %q, want %q", ev.Type, "protection")
	}
	if ev.Priority != 2 {
		t.Errorf("Priority = %d, want 2", ev.Priority)
	}
	if ev.Source != "protecting" {
		t.Errorf("Source = %q, want %q", ev.Source, "protecting")
	}
	if ev.Expression != "sleeping" && ev.Expression != "sad" {
		t.Errorf("Expression = %q, want sleeping or sad", ev.Expression)
	}
}

func TestBehaviorEngine_GuardedReach(t *testing.T) {
	t.Run("recently cared for", func(t *testing.T) {
		be := newTestEngine(1.0, 1)

		ev := firstProactive(t, be)
		if ev.Type != "guarded_reach" {
			t.Errorf("Type = %q, want %q", ev.Type, "guarded_reach")
		}
		if ev.Priority != 3 {
			t.Errorf("Priority = %d, want 3", ev.Priority)
		}
		if ev.Expression != "neutral" {
			t.Errorf("Expression = %q, want %q", ev.Expression, "neutral")
		}
		gratitude := map[string]bool{
			"Thank you for being here.": true,
			"Small moments matter.":     true,
		}
		if !gratitude[ev.Message] {
			t.Errorf("Message = %q, not from the gratitude pool", ev.Message)
		}
	})

	t.Run("after four quiet hours", func(t *testing.T) {
		be := newTestEngine(1.0, 1)
		be.personality.Core.LastCare = time.Now().Add(-5 * time.Hour)

		ev := firstProactive(t, be)
		if ev.Type != "guarded_reach" {
			t.Errorf("Type = %q, want %q", ev.Type, "guarded_reach")
		}
		if ev.Expression != "sad" {
			t.Errorf("Expression = %q, want %q", ev.Expression, "sad")
		}
		lonely := map[string]bool{
			"It's been quiet...":                   true,
			"I'm still here, if you want to talk.": true,
			"The silence has a shape today.":       true,
		}
		if !lonely[ev.Message] {
			t.Errorf("Message = %q, not from the lonely pool", ev.Message)
		}
	})
}

func TestBehaviorEngine_WarmBandEvents(t *testing.T) {
	be := newTestEngine(3.0, 1)
	be.personality.Core.LastCare = time.Now().Add(-3 * time.Hour)
	// Latch the morning greeting off so only the band pools fire.
	be.greetedToday = true
	be.lastGreetingDay = time.Now().Format("2006-01-02")

	var checkIns, thoughts int
	for i := 0; i < 400; i++ {
		be.lastProactive = time.Time{}
		ev := be.Check()
		if ev == nil {
			continue
		}
		switch ev.Type {
		case "check_in":
			checkIns++
			if ev.Priority != 4 {
				t.Errorf("check_in Priority = %d, want 4", ev.Priority)
			}
			if ev.Source != "warm" {
				t.Errorf("check_in Source = %q, want %q", ev.Source, "warm")
			}
		case "thought":
			thoughts++
			if ev.Priority != 2 {
				t.Errorf("thought Priority = %d, want 2", ev.Priority)
			}
		default:
			t.Fatalf("unexpected event type %q in the warm band", ev.Type)
		}
	}

	if checkIns == 0 {
		t.Error("no check_in events in 400 checks despite three quiet hours")
	}
	if thoughts == 0 {
		t.Error("no idle thoughts in 400 checks")
	}
}

func TestBehaviorEngine_ThoughtsRevisitRecentTopics(t *testing.T) {
	be := newTestEngine(3.0, 1)
	be.memory.AddTopic("thunderstorms")
	be.greetedToday = true
	be.lastGreetingDay = time.Now().Format("2006-01-02")

	want := "I keep coming back to thunderstorms. Funny what sticks."
	for i := 0; i < 400; i++ {
		be.recentEvents = nil
		ev := be.checkNormal()
		if ev == nil || ev.Message != want {
			continue
		}
		if ev.Type != "thought" {
			t.Errorf("Type = %q, want %q", ev.Type, "thought")
		}
		if ev.Expression != "curious" {
			t.Errorf("Expression = %q, want %q", ev.Expression, "curious")
		}
		return
	}
	t.Fatal("no thought mentioning the recent topic in 400 rolls")
}

func TestBehaviorEngine_FlourishingGiftsAndThoughts(t *testing.T) {
	be := newTestEngine(12.0, 1)

	var gifts, poetry int
	for i := 0; i < 400; i++ {
		be.lastProactive = time.Time{}
		ev := be.Check()
		if ev == nil {
			continue
		}
		switch ev.Type {
		case "gift":
			gifts++
			if ev.Priority != 5 {
				t.Errorf("gift Priority = %d, want 5", ev.Priority)
			}
			if ev.Expression != "excited" {
				t.Errorf("gift Expression = %q, want %q", ev.Expression, "excited")
			}
		case "flourishing_thought":
			poetry++
			if ev.Priority != 4 {
				t.Errorf("flourishing_thought Priority = %d, want 4", ev.Priority)
			}
			if ev.Source != "flourishing" {
				t.Errorf("flourishing_thought Source = %q, want %q", ev.Source, "flourishing")
			}
		default:
			t.Fatalf("unexpected event type %q while flourishing", ev.Type)
		}
	}

	if gifts == 0 {
		t.Error("no gifts in 400 flourishing checks")
	}
	if poetry == 0 {
		t.Error("no flourishing thoughts in 400 checks")
	}
}

func TestBehaviorEngine_RadiantOfferings(t *testing.T) {
	be := newTestEngine(20.0, 1)

	var gifts, offerings int
	for i := 0; i < 400; i++ {
		be.lastProactive = time.Time{}
		ev := be.Check()
		if ev == nil {
			continue
		}
		switch ev.Type {
		case "gift":
			gifts++
			if ev.Priority != 6 {
				t.Errorf("gift Priority = %d, want 6", ev.Priority)
			}
			if ev.Expression != "love" {
				t.Errorf("gift Expression = %q, want %q", ev.Expression, "love")
			}
		case "radiant_offering":
			offerings++
			if ev.Priority != 5 {
				t.Errorf("radiant_offering Priority = %d, want 5", ev.Priority)
			}
			if ev.Source != "radiant" {
				t.Errorf("radiant_offering Source = %q, want %q", ev.Source, "radiant")
			}
		default:
			t.Fatalf("unexpected event type %q while radiant", ev.Type)
		}
	}

	if gifts == 0 {
		t.Error("no gifts in 400 radiant checks")
	}
	if offerings == 0 {
		t.Error("no radiant offerings in 400 checks")
	}
}

func TestBehaviorEngine_GreetingOncePerDay(t *testing.T) {
	be := newTestEngine(3.0, 1)
	be.greetedToday = true
	be.lastGreetingDay = time.Now().Format("2006-01-02")

	if ev := be.checkGreeting(); ev != nil {
		t.Errorf("checkGreeting() = %+v, want nil after today's greeting", ev)
	}
}

func TestBehaviorEngine_GreetingDayRollover(t *testing.T) {
	be := newTestEngine(3.0, 1)
	be.greetedToday = true
	be.lastGreetingDay = "2001-01-01"

	ev := be.checkGreeting()

	today := time.Now().Format("2006-01-02")
	if be.lastGreetingDay != today {
		t.Errorf("lastGreetingDay = %q, want %q", be.lastGreetingDay, today)
	}
	if ev == nil && be.greetedToday {
		t.Error("stale greeting latch survived the day change")
	}
	if ev != nil {
		if ev.Type != "greeting" {
			t.Errorf("Type = %q, want %q", ev.Type, "greeting")
		}
		if ev.Priority != 10 {
			t.Errorf("Priority = %d, want 10", ev.Priority)
		}
	}
}
