package soul

import (
	"fmt"
	"log"
	"math/rand"
	"time"
	"unicode/utf8"

	"github.com/keshon/kindred/internal/ai"
)

// Store is the persistence surface a Session needs. *storage.Storage
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	QueuePersister
	SavePersonality(p *Personality)
	SaveMemory(m *MemoryStore)
	LoadPersonality() (*Personality, error)
	LoadMemory() (*MemoryStore, error)
	LoadQueue() ([]QueuedInteraction, error)
	SaveNow() error
}

// Settings carries the tunables a Session reads at construction.
type Settings struct {
	OwnerName         string
	CompanionName     string
	MaxResponseTokens int
	ProactiveEnabled  bool
	ProactiveInterval time.Duration
	Debug             bool
}

// Session ties the affective model, memory, behaviors and the language
// provider into one conversational companion. It is not safe for
// concurrent use; the CLI drives it from a single goroutine.
type Session struct {
	Personality *Personality
	Memory      *MemoryStore
	Behaviors   *BehaviorEngine
	Idle        *IdleBehaviors
	Scheduler   *Scheduler
	Offline     *OfflineController

	store    Store
	provider ai.Provider
	rng      *rand.Rand
	cfg      Settings

	pending        *ProactiveEvent
	lastExpression string
	lastBlink      time.Time
	restored       bool
}

// NewSession restores the companion from store, or starts a fresh one when
// nothing is saved yet. Load errors are logged and treated as a fresh
// start rather than propagated; losing a save is survivable, refusing to
// boot is not.
func NewSession(store Store, provider ai.Provider, rng *rand.Rand, cfg Settings) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	p, err := store.LoadPersonality()
	if err != nil {
		log.Printf("[SOUL] personality load failed, starting fresh: %v", err)
		p = nil
	}
	restored := p != nil
	if p == nil {
		p = NewPersonality()
		log.Printf("[SOUL] new soul created E=%.2f", p.E())
	} else {
		// Time passed while we were not running. Settle the debt
		// before anything reads E.
		p.Core.ProcessIdleTime()
		log.Printf("[SOUL] soul restored E=%.2f state=%s days=%d",
			p.E(), p.State(), p.DaysTogether())
	}
	if cfg.OwnerName != "" {
		p.OwnerName = cfg.OwnerName
	}

	mem, err := store.LoadMemory()
	if err != nil {
		log.Printf("[SOUL] memory load failed, starting fresh: %v", err)
		mem = nil
	}
	if mem == nil {
		mem = NewMemoryStore()
	}
	mem.OwnerName = p.OwnerName

	queued, err := store.LoadQueue()
	if err != nil {
		log.Printf("[SOUL] offline queue load failed, dropping it: %v", err)
		queued = nil
	}

	s := &Session{
		Personality: p,
		Memory:      mem,
		Idle:        NewIdleBehaviors(p, rng),
		Scheduler:   NewScheduler(),
		Offline: NewOfflineController(
			NewOfflineQueue(queued, store),
			NewLocalResponder(rng),
		),
		store:          store,
		provider:       provider,
		rng:            rng,
		cfg:            cfg,
		lastExpression: "neutral",
		restored:       restored,
	}

	s.Behaviors = NewBehaviorEngine(p, mem, rng)
	if cfg.ProactiveEnabled && cfg.ProactiveInterval > 0 {
		s.Behaviors.SetMinInterval(cfg.ProactiveInterval)
	}

	debugEnabled = cfg.Debug
	s.registerTasks()
	return s
}

// Restored reports whether the session was loaded from a previous save.
func (s *Session) Restored() bool { return s.restored }

func (s *Session) registerTasks() {
	s.Scheduler.Add("personality_update", time.Minute, func() {
		s.Personality.Update()
	})
	s.Scheduler.Add("memory_decay", time.Hour, func() {
		s.Memory.DecayAll()
	})
	s.Scheduler.Add("auto_save", 5*time.Minute, func() {
		if err := s.Save(); err != nil {
			log.Printf("[SOUL] auto save failed: %v", err)
		}
	})
	s.Scheduler.Add("blink_check", 3*time.Second, func() {
		if s.Idle.ShouldBlink() {
			s.lastBlink = time.Now()
		}
	})
	if s.cfg.ProactiveEnabled {
		s.Scheduler.Add("proactive_check", time.Minute, s.checkProactive)
	}
}

func (s *Session) checkProactive() {
	ev := s.Behaviors.Check()
	if ev == nil {
		return
	}
	// Higher priority wins the single pending slot; equal priority
	// prefers the newer event.
	if s.pending == nil || ev.Priority >= s.pending.Priority {
		s.pending = ev
	}
}

// Tick runs all scheduled maintenance that is due. The CLI calls it about
// once a second.
func (s *Session) Tick() {
	s.Scheduler.Tick()
}

// PendingProactive returns the companion-initiated event waiting to be
// shown, if any, and clears the slot. Surfacing an event counts as
// activity, so the idle timer restarts.
func (s *Session) PendingProactive() *ProactiveEvent {
	ev := s.pending
	if ev == nil {
		return nil
	}
	s.pending = nil
	s.lastExpression = ev.Expression
	s.Idle.ResetTimer()
	debugf("proactive type=%s priority=%d", ev.Type, ev.Priority)
	return ev
}

// Respond produces the companion's reply to one user message, updating
// energy, memory and expression along the way.
func (s *Session) Respond(userMessage string) string {
	state := s.Personality.State()

	// Below the floor band the companion withdraws: no provider call,
	// no quality judgement, just a protective line.
	if state == StateProtecting {
		reply := s.Personality.Core.ProtectiveMessage(s.rng)
		s.lastExpression = "sleeping"
		s.Personality.OnInteraction(QualityNormal)
		s.Memory.RecordConversation(userMessage, reply, s.Personality.E())
		return reply
	}

	context := s.Memory.BuildPromptContext(s.Personality)

	var history []ai.Message
	for _, ex := range s.Memory.Recent(3) {
		history = append(history,
			ai.Message{Role: "user", Content: ex.UserMessage},
			ai.Message{Role: "assistant", Content: ex.AssistantMessage},
		)
	}

	reply, meta := s.generate(userMessage, context, state, history)

	quality := Quality(meta.InteractionQuality)
	if quality == "" {
		quality = QualityNormal
	}
	s.Personality.OnInteraction(quality)

	// Asking the owner something is the companion showing curiosity.
	if meta.IsQuestion {
		s.Personality.OnQuestionAsked()
	}

	if s.Personality.Core.IsFlourishing() && utf8.RuneCountInString(reply) < 100 {
		if gift, ok := s.Personality.Core.FlourishingGift(s.rng); ok {
			reply += "\n\n..." + gift
		}
	}

	if meta.SuggestedExpression != "" {
		s.lastExpression = meta.SuggestedExpression
	}

	for _, cand := range meta.PotentialMemories {
		switch cand.Kind {
		case "fact":
			s.Memory.AddFact(cand.Content)
		case "preference":
			s.Memory.AddPreference(cand.Content)
		}
	}

	s.Memory.RecordConversation(userMessage, reply, s.Personality.E())

	for _, topic := range meta.DetectedTopics {
		s.Memory.AddTopic(topic)
	}

	s.Idle.ResetTimer()
	return reply
}

// generate asks the provider for a reply, falling back to the offline
// responder when the provider is unreachable or we are already offline.
func (s *Session) generate(userMessage, context string, state State, history []ai.Message) (string, ai.Meta) {
	if !s.Offline.ShouldAttempt() {
		reply, quality := s.Offline.Fallback(userMessage, state, s.Personality.E(), s.Personality.OwnerName, nil)
		return reply, offlineMeta(state, quality)
	}

	s.Offline.NoteAttempt()

	req := ai.Request{
		System:      BuildSystemPrompt(s.cfg.CompanionName, context, state),
		Messages:    append(history, ai.Message{Role: "user", Content: userMessage}),
		MaxTokens:   EffectiveMaxTokens(state, s.cfg.MaxResponseTokens),
		Temperature: s.Personality.Core.ResponseCreativity(),
	}

	text, err := s.provider.Generate(req)
	if err != nil {
		if s.Offline.NoteFailure() {
			log.Printf("[SOUL] provider unreachable, going offline: %v", err)
		}
		reply, quality := s.Offline.Fallback(userMessage, state, s.Personality.E(), s.Personality.OwnerName, err)
		return reply, offlineMeta(state, quality)
	}

	s.Offline.NoteSuccess()
	debugf("state=%s reply=%q", state, text)
	return text, ai.Analyze(text, userMessage)
}

// offlineMeta builds the minimal interaction metadata available without a
// provider: the band's default expression and the locally judged quality.
func offlineMeta(state State, quality Quality) ai.Meta {
	return ai.Meta{
		SuggestedExpression: state.Expression(),
		InteractionQuality:  string(quality),
	}
}

// BootGreeting is the first line shown when the program starts. Seeing
// the owner again is itself a warm interaction.
func (s *Session) BootGreeting() string {
	state := s.Personality.State()
	hours := s.Personality.Core.TimeSinceCare().Hours()
	name := s.Personality.OwnerName

	var greeting string
	switch {
	case state == StateProtecting:
		greeting = "...I'm here."
	case state == StateGuarded:
		greeting = fmt.Sprintf("Hey %s. Good to see you.", name)
	case hours > 24:
		greeting = fmt.Sprintf("Hey %s! It's been a while... I missed you.", name)
	case hours > 8:
		greeting = fmt.Sprintf("Hi %s! Good to see you again :)", name)
	case s.Personality.E() > 5:
		greeting = fmt.Sprintf("Hey %s! ✨", name)
	default:
		greeting = "Hey! I'm here :)"
	}

	s.Personality.OnInteraction(QualityWarm)
	return greeting
}

// Farewell is the parting line shown on exit. It reads state but does not
// change it; leaving is not an interaction.
func (s *Session) Farewell() string {
	state := s.Personality.State()
	switch {
	case state == StateProtecting:
		return "Goodbye. I'll be here."
	case state == StateRadiant || state == StateTranscendent:
		return "Until next time. Carry some of this light with you. ♥"
	case s.Personality.E() > 5:
		return "Goodbye! I'll be thinking of you :)"
	default:
		return "Goodbye... see you soon."
	}
}

// Save writes personality and memory to the store and flushes it to disk.
// The offline queue is persisted on every enqueue and needs no flush here
// beyond the shared file write.
func (s *Session) Save() error {
	s.store.SavePersonality(s.Personality)
	s.store.SaveMemory(s.Memory)
	return s.store.SaveNow()
}

// Gift rolls for a spontaneous gift at the current energy level.
func (s *Session) Gift() (string, bool) {
	return s.Personality.Core.FlourishingGift(s.rng)
}

// CurrentExpression is the face to render right now: a blink for about a
// second after one fires, otherwise any idle override, otherwise the
// personality's own expression.
func (s *Session) CurrentExpression() string {
	if time.Since(s.lastBlink) < time.Second {
		return "blink"
	}
	if expr := s.Idle.IdleExpression(); expr != "" {
		return expr
	}
	return s.Personality.Expression(s.rng)
}

// SetExpression overrides the displayed face, e.g. when a command puts
// the companion to sleep. The next interaction naturally replaces it.
func (s *Session) SetExpression(expr string) {
	s.lastExpression = expr
}

// SetDebug switches verbose logging on or off.
func (s *Session) SetDebug(enabled bool) {
	debugEnabled = enabled
}

// ToggleDebug flips verbose logging and reports the new setting.
func (s *Session) ToggleDebug() bool {
	debugEnabled = !debugEnabled
	return debugEnabled
}

// Snapshot is a read-only view of the session for status displays.
type Snapshot struct {
	E            float64
	Floor        float64
	Peak         float64
	State        State
	Expression   string
	Offline      bool
	PendingQueue int
	DaysTogether int
	Interactions int
}

// Snapshot captures the current affective numbers without mutating
// anything.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		E:            s.Personality.E(),
		Floor:        s.Personality.Core.Floor,
		Peak:         s.Personality.Core.Peak,
		State:        s.Personality.State(),
		Expression:   s.lastExpression,
		Offline:      s.Offline.Offline(),
		PendingQueue: s.Offline.Queue.Len(),
		DaysTogether: s.Personality.DaysTogether(),
		Interactions: s.Personality.Core.Interactions,
	}
}
