package soul

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

// queueRecorder counts persistence calls and keeps the last snapshot.
type queueRecorder struct {
	saves int
	last  []QueuedInteraction
	err   error
}

func (r *queueRecorder) SaveQueue(items []QueuedInteraction) error {
	r.saves++
	r.last = append([]QueuedInteraction(nil), items...)
	return r.err
}

func newTestController() (*OfflineController, *OfflineQueue) {
	q := NewOfflineQueue(nil, nil)
	return NewOfflineController(q, NewLocalResponder(rand.New(rand.NewSource(1)))), q
}

func TestOfflineController_TwoFailuresTripOffline(t *testing.T) {
	c, _ := newTestController()

	if c.Offline() {
		t.Fatal("controller born offline")
	}
	if c.NoteFailure() {
		t.Error("first failure reported a switch, want offline only on the second")
	}
	if c.Offline() {
		t.Error("offline after a single failure")
	}
	if !c.NoteFailure() {
		t.Error("second failure did not report the switch to offline")
	}
	if !c.Offline() {
		t.Error("not offline after two consecutive failures")
	}
	if c.NoteFailure() {
		t.Error("third failure reported a fresh switch while already offline")
	}
}

func TestOfflineController_SuccessResetsStreak(t *testing.T) {
	c, _ := newTestController()

	c.NoteFailure()
	c.NoteSuccess()
	if c.NoteFailure() {
		t.Error("failure after a success switched offline, want a fresh streak")
	}
	if c.Offline() {
		t.Error("offline despite the streak reset")
	}
}

func TestOfflineController_RetryAfterInterval(t *testing.T) {
	c, _ := newTestController()

	if !c.ShouldAttempt() {
		t.Error("ShouldAttempt() = false while online")
	}

	c.ForceOffline()
	c.NoteAttempt()
	if c.ShouldAttempt() {
		t.Error("retry allowed before the interval elapsed")
	}

	c.retryInterval = 0
	if !c.ShouldAttempt() {
		t.Error("no retry after the interval elapsed")
	}
	if c.Offline() {
		t.Error("optimistic retry did not flip the controller back online")
	}
}

func TestOfflineController_ForceOnlineForgivesFailures(t *testing.T) {
	c, _ := newTestController()

	c.NoteFailure()
	c.NoteFailure()
	c.ForceOnline()
	if c.Offline() {
		t.Fatal("still offline after ForceOnline")
	}
	if c.NoteFailure() {
		t.Error("first failure after ForceOnline switched offline, want a forgiven streak")
	}
	if !c.NoteFailure() {
		t.Error("second failure after ForceOnline did not switch offline")
	}
}

func TestOfflineController_FallbackPrefixes(t *testing.T) {
	t.Run("no cause", func(t *testing.T) {
		c, q := newTestController()

		reply, _ := c.Fallback("tell me a story", StateWarm, 3.0, "Friend", nil)
		if strings.Contains(reply, "[Offline") {
			t.Errorf("reply = %q, want no offline marker without a cause", reply)
		}
		if got := q.Items()[0].LocalResponse; got != reply {
			t.Errorf("queued reply = %q, want %q", got, reply)
		}
	})

	t.Run("generic error", func(t *testing.T) {
		c, q := newTestController()

		reply, quality := c.Fallback("tell me a story", StateWarm, 3.0, "Friend", errors.New("connection refused"))
		if !strings.HasPrefix(reply, "[Offline] ") {
			t.Errorf("reply = %q, want the [Offline] prefix", reply)
		}

		items := q.Items()
		if len(items) != 1 {
			t.Fatalf("queue length = %d, want 1", len(items))
		}
		if items[0].LocalResponse != strings.TrimPrefix(reply, "[Offline] ") {
			t.Errorf("queued reply = %q, want the unprefixed %q", items[0].LocalResponse, reply)
		}
		if items[0].UserMessage != "tell me a story" {
			t.Errorf("queued message = %q, want the owner's words", items[0].UserMessage)
		}
		if items[0].EAtTime != 3.0 {
			t.Errorf("queued E = %v, want 3.0", items[0].EAtTime)
		}
		if items[0].State != "warm" {
			t.Errorf("queued state = %q, want %q", items[0].State, "warm")
		}
		if items[0].ID == "" {
			t.Error("queued interaction missing an id")
		}
		if items[0].Quality != quality {
			t.Errorf("queued quality = %q, returned %q", items[0].Quality, quality)
		}
	})

	t.Run("credit error", func(t *testing.T) {
		c, _ := newTestController()

		reply, _ := c.Fallback("hello there", StateWarm, 3.0, "Friend", errors.New("Your credit balance is too low"))
		if !strings.HasPrefix(reply, "[Offline - credits exhausted] ") {
			t.Errorf("reply = %q, want the credits-exhausted prefix", reply)
		}
	})
}

func TestOfflineQueue_AddPersistsEveryChange(t *testing.T) {
	rec := &queueRecorder{}
	q := NewOfflineQueue(nil, rec)

	q.Add("first", "reply one", 1.0, StateGuarded, QualityNormal)
	q.Add("second", "reply two", 1.2, StateTender, QualityWarm)

	if rec.saves != 2 {
		t.Errorf("SaveQueue called %d times, want once per Add", rec.saves)
	}
	if len(rec.last) != 2 {
		t.Fatalf("last persisted snapshot has %d items, want 2", len(rec.last))
	}
	if rec.last[0].UserMessage != "first" || rec.last[1].UserMessage != "second" {
		t.Error("persisted snapshot out of arrival order")
	}
	if rec.last[0].ID == rec.last[1].ID {
		t.Error("queued interactions share an id")
	}
	if rec.last[0].Timestamp.IsZero() {
		t.Error("queued interaction missing a timestamp")
	}

	q.Clear()
	if rec.saves != 3 {
		t.Errorf("SaveQueue called %d times after Clear, want 3", rec.saves)
	}
	if len(rec.last) != 0 {
		t.Errorf("persisted snapshot has %d items after Clear, want 0", len(rec.last))
	}
	if q.HasPending() {
		t.Error("HasPending() = true after Clear")
	}
}

func TestOfflineQueue_SaveErrorKeepsItem(t *testing.T) {
	rec := &queueRecorder{err: errors.New("disk full")}
	q := NewOfflineQueue(nil, rec)

	q.Add("still counts", "reply", 1.0, StateGuarded, QualityNormal)
	if q.Len() != 1 {
		t.Errorf("Len() = %d after a failed save, want 1", q.Len())
	}
}

func TestOfflineQueue_ItemsCopies(t *testing.T) {
	q := NewOfflineQueue(nil, nil)
	q.Add("original", "reply", 1.0, StateGuarded, QualityNormal)

	items := q.Items()
	items[0].UserMessage = "tampered"

	if q.Items()[0].UserMessage != "original" {
		t.Error("Items() returned the backing slice")
	}
}

func TestOfflineQueue_Summary(t *testing.T) {
	q := NewOfflineQueue(nil, nil)
	if got := q.Summary(); got != "" {
		t.Errorf("Summary() = %q for an empty queue, want empty", got)
	}

	for i := 0; i < 12; i++ {
		q.Add(fmt.Sprintf("message number %d", i), "reply", 2.0, StateTender, QualityNormal)
	}

	s := q.Summary()
	if !strings.HasPrefix(s, "While offline (12 interactions):") {
		t.Errorf("Summary() starts %q, want the interaction count header", firstLine(s))
	}
	if !strings.Contains(s, "... and 2 more interactions") {
		t.Error("Summary() missing the overflow line for interactions past the last ten")
	}
	if strings.Contains(s, "message number 0") {
		t.Error("Summary() shows interactions outside the last ten")
	}
	if !strings.Contains(s, "message number 11") {
		t.Error("Summary() missing the most recent interaction")
	}
	if !strings.Contains(s, "E=2.00, tender") {
		t.Error("Summary() missing the E and band line")
	}
}

func TestOfflineQueue_SummaryTruncatesLongMessages(t *testing.T) {
	q := NewOfflineQueue(nil, nil)
	q.Add(strings.Repeat("x", 60), "reply", 2.0, StateTender, QualityNormal)

	s := q.Summary()
	if !strings.Contains(s, "User: "+strings.Repeat("x", 50)+"...") {
		t.Error("Summary() did not truncate the message to fifty runes")
	}
	if strings.Contains(s, strings.Repeat("x", 51)) {
		t.Error("Summary() shows more than fifty runes of the message")
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func TestLocalResponder_KeywordFirstWins(t *testing.T) {
	g := NewLocalResponder(rand.New(rand.NewSource(1)))

	// "how are you today?" also ends in "?", but the keyword earlier in
	// the table decides the pool.
	howAreYou := map[string]bool{
		"I'm good! Offline but content.":   true,
		"Running smoothly on local power!": true,
	}
	reply, _ := g.Generate("how are you today?", StateWarm, "Friend")
	if !howAreYou[reply] {
		t.Errorf("Generate() = %q, not from the how-are-you pool", reply)
	}
}

func TestLocalResponder_StatePoolFallback(t *testing.T) {
	g := NewLocalResponder(rand.New(rand.NewSource(1)))

	radiant := map[string]bool{
		"Even offline, I feel full of light today.":                                     true,
		"The connection's down but my heart isn't! (Do I have a heart? Let's say yes.)": true,
		"Running on stored sunshine. The API will return, but this moment is ours.":     true,
		"Offline mode, but I've never felt more connected to you.":                      true,
		"No cloud, just us. Sometimes that's better.":                                   true,
	}
	reply, _ := g.Generate("good morning, companion", StateRadiant, "Friend")
	if !radiant[reply] {
		t.Errorf("Generate() = %q, not from the radiant pool", reply)
	}
}

func TestLocalResponder_UnknownStateFallsBackToWarm(t *testing.T) {
	g := NewLocalResponder(rand.New(rand.NewSource(1)))

	warm := map[string]bool{
		"Hey! I'm in offline mode, but still happy to be here :)":       true,
		"The API's away but I'm not! What's up?":                        true,
		"Running on local power today. Still cozy though!":              true,
		"Offline mode engaged! My thoughts are simpler but still warm.": true,
		"Can't phone home right now, but home is here anyway.":          true,
	}
	reply, _ := g.Generate("good morning, companion", State(99), "Friend")
	if !warm[reply] {
		t.Errorf("Generate() = %q, not from the warm pool", reply)
	}
}

func TestLocalResponder_PersonalizesForNamedOwner(t *testing.T) {
	g := NewLocalResponder(rand.New(rand.NewSource(1)))

	pool := []string{"I feel it too, even offline.", "Love doesn't need an API. ♥"}
	personalized := map[string]bool{}
	for _, p := range pool {
		personalized["Ada, "+lowerFirst(p)] = true
	}
	plain := map[string]bool{}
	for _, p := range pool {
		plain[p] = true
	}

	var named, unnamed int
	for i := 0; i < 200; i++ {
		reply, _ := g.Generate("so much love for you", StateWarm, "Ada")
		switch {
		case personalized[reply]:
			named++
		case plain[reply]:
			unnamed++
		default:
			t.Fatalf("Generate() = %q, not from the love pool in either form", reply)
		}
	}
	if named == 0 {
		t.Error("owner never addressed by name in 200 replies")
	}
	if unnamed == 0 {
		t.Error("every reply addressed the owner by name, want it occasional")
	}
}

func TestLocalResponder_NeverPersonalizesForDefaultOwner(t *testing.T) {
	g := NewLocalResponder(rand.New(rand.NewSource(1)))

	for i := 0; i < 50; i++ {
		reply, _ := g.Generate("so much love for you", StateWarm, "Friend")
		if strings.HasPrefix(reply, "Friend, ") {
			t.Fatalf("Generate() = %q, default owner name used for address", reply)
		}
	}
}

func TestAssessQuality(t *testing.T) {
	tests := []struct {
		message string
		want    Quality
	}{
		{"I love this", QualityLoving},
		{"thank you so much!", QualityLoving},
		{"I hate that I love you", QualityLoving},
		{"thanks", QualityWarm},
		{"that was good", QualityWarm},
		{"nice", QualityWarm},
		{"you are so stupid", QualityHarsh},
		{"shut up", QualityHarsh},
		{"ok", QualityCold},
		{"hey", QualityCold},
		{"whatever", QualityCold},
		{"tell me about the stars", QualityNormal},
	}

	for _, tt := range tests {
		if got := AssessQuality(tt.message); got != tt.want {
			t.Errorf("AssessQuality(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}
