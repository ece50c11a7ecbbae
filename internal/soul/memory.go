package soul

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Memory decay and retention limits.
const (
	memoryHalfLifeDays = 14.0 // unreferenced memories fade over ~2 weeks
	maxMemories        = 100
	maxConversation    = 20
	forgetThreshold    = 0.1 // below this a memory is gone
	similarityCutoff   = 0.6
)

// MemoryKind labels what a memory is about.
type MemoryKind string

const (
	KindFact       MemoryKind = "fact"
	KindPreference MemoryKind = "preference"
	KindMoment     MemoryKind = "moment"
	KindTopic      MemoryKind = "topic"
)

// memoryKinds in display order.
var memoryKinds = []MemoryKind{KindFact, KindPreference, KindMoment, KindTopic}

// Memory is a single thing the companion has learned or lived through.
// Strength decays with time and grows again when the memory is touched.
type Memory struct {
	Kind           MemoryKind `json:"type"`
	Content        string     `json:"content"`
	Strength       float64    `json:"strength"` // 0..1
	Emotion        string     `json:"emotion,omitempty"`
	Created        time.Time  `json:"created"`
	LastReferenced time.Time  `json:"last_referenced"`
	ReferenceCount int        `json:"reference_count"`
}

// Reinforce strengthens a memory that just came up again.
func (m *Memory) Reinforce(boost float64) {
	m.Strength = math.Min(1.0, m.Strength+boost)
	m.LastReferenced = time.Now()
	m.ReferenceCount++
}

// Decay applies exponential fade for the given elapsed days.
func (m *Memory) Decay(daysElapsed float64) {
	m.Strength *= math.Exp(-daysElapsed / memoryHalfLifeDays)
}

// Exchange is one back-and-forth of conversation.
type Exchange struct {
	Timestamp        time.Time `json:"timestamp"`
	UserMessage      string    `json:"user_message"`
	AssistantMessage string    `json:"assistant_message"`
	MoodAfter        float64   `json:"mood_after"` // E at the time
}

// MemoryStore keeps everything the companion remembers: weighted
// memories, the recent conversation ring and the trail of topics.
type MemoryStore struct {
	Memories     []*Memory  `json:"memories"`
	Conversation []Exchange `json:"conversation_history"`
	OwnerName    string     `json:"owner_name"`
	LastTopics   []string   `json:"last_topics"`
}

// NewMemoryStore returns an empty store owned by "Friend".
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{OwnerName: "Friend"}
}

// Normalize repairs a store loaded from storage.
func (s *MemoryStore) Normalize() {
	if s.OwnerName == "" {
		s.OwnerName = "Friend"
	}
	kept := s.Memories[:0]
	for _, m := range s.Memories {
		if m != nil && m.Content != "" {
			kept = append(kept, m)
		}
	}
	s.Memories = kept
	if len(s.Conversation) > maxConversation {
		s.Conversation = s.Conversation[len(s.Conversation)-maxConversation:]
	}
	if len(s.LastTopics) > 5 {
		s.LastTopics = s.LastTopics[:5]
	}
}

// Add records a memory, or reinforces an existing one of the same kind
// that already says much the same thing. New memories above the cap
// push the weakest out.
func (s *MemoryStore) Add(kind MemoryKind, content, emotion string, strength float64) {
	for _, m := range s.Memories {
		if m.Kind == kind && similar(m.Content, content) {
			m.Reinforce(0.2)
			return
		}
	}

	now := time.Now()
	s.Memories = append(s.Memories, &Memory{
		Kind:           kind,
		Content:        content,
		Strength:       strength,
		Emotion:        emotion,
		Created:        now,
		LastReferenced: now,
		ReferenceCount: 1,
	})

	if len(s.Memories) > maxMemories {
		s.pruneWeakest()
	}
}

// AddFact records something learned about the owner.
func (s *MemoryStore) AddFact(fact string) {
	s.Add(KindFact, fact, "", 0.8)
}

// AddPreference records something the owner likes or dislikes.
func (s *MemoryStore) AddPreference(pref string) {
	s.Add(KindPreference, pref, "", 0.8)
}

// AddMoment records a memorable moment and how it felt.
func (s *MemoryStore) AddMoment(desc, emotion string) {
	s.Add(KindMoment, desc, emotion, 0.8)
}

// AddTopic tracks a discussed topic. Repeat topics move to the front
// of the recent list and gently reinforce their memory.
func (s *MemoryStore) AddTopic(topic string) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return
	}

	for i, t := range s.LastTopics {
		if t == topic {
			s.LastTopics = append(s.LastTopics[:i], s.LastTopics[i+1:]...)
			break
		}
	}
	s.LastTopics = append([]string{topic}, s.LastTopics...)
	if len(s.LastTopics) > 5 {
		s.LastTopics = s.LastTopics[:5]
	}

	for _, m := range s.Memories {
		if m.Kind == KindTopic && strings.EqualFold(m.Content, topic) {
			m.Reinforce(0.1)
			return
		}
	}
	s.Add(KindTopic, topic, "", 0.5)
}

// similar is a token-set overlap check, deliberately simple.
func similar(a, b string) bool {
	aw := tokenSet(a)
	bw := tokenSet(b)
	if len(aw) == 0 || len(bw) == 0 {
		return false
	}
	both := 0
	for w := range aw {
		if _, ok := bw[w]; ok {
			both++
		}
	}
	union := len(aw) + len(bw) - both
	return float64(both)/float64(union) > similarityCutoff
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}

// DecayAll fades every memory by its time since last reference and
// forgets the ones that dropped below the threshold.
func (s *MemoryStore) DecayAll() {
	now := time.Now()
	kept := s.Memories[:0]
	for _, m := range s.Memories {
		days := now.Sub(m.LastReferenced).Hours() / 24.0
		m.Decay(days)
		if m.Strength >= forgetThreshold {
			kept = append(kept, m)
		}
	}
	s.Memories = kept
}

func (s *MemoryStore) pruneWeakest() {
	sort.SliceStable(s.Memories, func(i, j int) bool {
		return s.Memories[i].Strength > s.Memories[j].Strength
	})
	s.Memories = s.Memories[:maxMemories]
}

// Strongest returns up to n memories sorted by strength, optionally
// filtered by kind. An empty kind matches everything.
func (s *MemoryStore) Strongest(n int, kind MemoryKind) []*Memory {
	var filtered []*Memory
	for _, m := range s.Memories {
		if kind == "" || m.Kind == kind {
			filtered = append(filtered, m)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Strength > filtered[j].Strength
	})
	if len(filtered) > n {
		filtered = filtered[:n]
	}
	return filtered
}

// Search returns memories sharing at least one word with the query,
// strongest first.
func (s *MemoryStore) Search(query string) []*Memory {
	qw := tokenSet(query)
	var results []*Memory
	for _, m := range s.Memories {
		for w := range tokenSet(m.Content) {
			if _, ok := qw[w]; ok {
				results = append(results, m)
				break
			}
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Strength > results[j].Strength
	})
	return results
}

// RecordConversation appends an exchange to the ring, dropping the
// oldest past the cap.
func (s *MemoryStore) RecordConversation(userMsg, assistantMsg string, mood float64) {
	s.Conversation = append(s.Conversation, Exchange{
		Timestamp:        time.Now(),
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
		MoodAfter:        mood,
	})
	if len(s.Conversation) > maxConversation {
		s.Conversation = s.Conversation[len(s.Conversation)-maxConversation:]
	}
}

// Recent returns the last n exchanges, oldest first.
func (s *MemoryStore) Recent(n int) []Exchange {
	if n <= 0 || len(s.Conversation) == 0 {
		return nil
	}
	if n > len(s.Conversation) {
		n = len(s.Conversation)
	}
	return s.Conversation[len(s.Conversation)-n:]
}

// BuildContext renders the relationship snapshot injected into the
// generation system prompt: who the owner is, how things stand, and
// the strongest of what the companion knows.
func (s *MemoryStore) BuildContext(p *Personality) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("Owner's name: %s", s.OwnerName))
	lines = append(lines, fmt.Sprintf("Days together: %d", p.DaysTogether()))
	lines = append(lines, fmt.Sprintf("Total conversations: %d", p.Core.Interactions))
	lines = append(lines, fmt.Sprintf("Love-energy (E): %.2f", p.E()))

	lines = append(lines, fmt.Sprintf("\nCurrent mood: %s", p.MoodLine()))
	lines = append(lines, fmt.Sprintf("Current energy: %s", p.EnergyLine()))

	if facts := s.Strongest(5, KindFact); len(facts) > 0 {
		lines = append(lines, "\nThings I know about my owner:")
		for _, m := range facts {
			lines = append(lines, fmt.Sprintf("  - %s", m.Content))
		}
	}

	if prefs := s.Strongest(3, KindPreference); len(prefs) > 0 {
		lines = append(lines, "\nOwner's preferences:")
		for _, m := range prefs {
			lines = append(lines, fmt.Sprintf("  - %s", m.Content))
		}
	}

	if moments := s.Strongest(3, KindMoment); len(moments) > 0 {
		lines = append(lines, "\nMemorable moments:")
		for _, m := range moments {
			lines = append(lines, fmt.Sprintf("  - %s (felt %s)", m.Content, m.Emotion))
		}
	}

	if len(s.LastTopics) > 0 {
		lines = append(lines, fmt.Sprintf("\nRecently discussed: %s", strings.Join(s.LastTopics, ", ")))
	}

	return strings.Join(lines, "\n")
}

// MemoriesDisplay renders the memory box shown by the /memories command.
func (s *MemoryStore) MemoriesDisplay() string {
	lines := []string{
		"╭─────────────────────────────────────╮",
		"│             MEMORIES                │",
		"├─────────────────────────────────────┤",
	}

	if len(s.Memories) == 0 {
		lines = append(lines, "│  No memories yet!                   │")
	} else {
		for _, kind := range memoryKinds {
			var mems []*Memory
			for _, m := range s.Memories {
				if m.Kind == kind {
					mems = append(mems, m)
				}
			}
			if len(mems) == 0 {
				continue
			}
			lines = append(lines, fmt.Sprintf("│  %sS:", strings.ToUpper(string(kind))))
			sort.SliceStable(mems, func(i, j int) bool {
				return mems[i].Strength > mems[j].Strength
			})
			if len(mems) > 3 {
				mems = mems[:3]
			}
			for _, m := range mems {
				dots := strings.Repeat("●", int(m.Strength*5))
				content := m.Content
				if r := []rune(content); len(r) > 28 {
					content = string(r[:28]) + "..."
				}
				lines = append(lines, fmt.Sprintf("│    [%-5s] %s", dots, content))
			}
		}
	}

	lines = append(lines, "╰─────────────────────────────────────╯")
	return strings.Join(lines, "\n")
}
