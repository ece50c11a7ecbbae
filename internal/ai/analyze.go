package ai

import (
	"regexp"
	"sort"
	"strings"
)

// Meta is everything mined from one exchange: how the reply should
// look on screen, what the owner revealed, and how the message landed.
type Meta struct {
	SuggestedExpression string
	DetectedTopics      []string
	IsQuestion          bool
	Sentiment           string
	PotentialMemories   []MemoryCandidate
	InteractionQuality  string
}

// MemoryCandidate is a fact or preference spotted in the owner's
// message, ready for the memory store.
type MemoryCandidate struct {
	Kind    string // "fact" or "preference"
	Content string
	Subtype string
}

// Analyze mines a reply and the message that prompted it.
func Analyze(response, userMessage string) Meta {
	return Meta{
		SuggestedExpression: DetectExpression(response),
		DetectedTopics:      DetectTopics(userMessage + " " + response),
		IsQuestion:          strings.Contains(response, "?"),
		Sentiment:           DetectSentiment(response),
		PotentialMemories:   ExtractMemories(userMessage),
		InteractionQuality:  AssessInteractionQuality(userMessage),
	}
}

// DetectExpression picks a face from keywords in the reply. Tiers are
// checked in order; the first hit wins.
func DetectExpression(text string) string {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, "love", "adore", "<3", "heart", "cherish"):
		return "love"
	case containsAny(lower, "excited", "amazing", "wonderful", "!!", "wow"):
		return "excited"
	case containsAny(lower, "happy", "glad", "great", ":)", "yay", "joy"):
		return "happy"
	case containsAny(lower, "sad", "sorry", "miss", ":(", "sorrow", "protect"):
		return "sad"
	case containsAny(lower, "tired", "sleepy", "exhausted", "quiet"):
		return "sleepy"
	case containsAny(lower, "wonder", "curious", "interesting", "hmm", "what if"):
		return "curious"
	case containsAny(lower, "surprised", "whoa", "really?"):
		return "surprised"
	default:
		return "neutral"
	}
}

var topicWord = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "i": {}, "me": {},
	"my": {}, "you": {}, "your": {}, "we": {}, "they": {}, "it": {},
	"this": {}, "that": {}, "what": {}, "which": {}, "who": {}, "how": {},
	"just": {}, "like": {}, "really": {}, "think": {}, "know": {},
	"feel": {}, "want": {}, "about": {},
}

// DetectTopics returns the three most frequent non-stopword words of
// four letters or more. Ties keep first-seen order.
func DetectTopics(text string) []string {
	words := topicWord.FindAllString(strings.ToLower(text), -1)

	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > 3 {
		order = order[:3]
	}
	return order
}

// DetectSentiment scores keyword hits on both sides and reports the
// winner.
func DetectSentiment(text string) string {
	lower := strings.ToLower(text)

	positive := []string{"happy", "love", "great", "wonderful", "excited", "glad", "good", ":)", "!"}
	negative := []string{"sad", "sorry", "miss", "tired", "difficult", ":(", "protect"}

	pos := 0
	for _, w := range positive {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	neg := 0
	for _, w := range negative {
		if strings.Contains(lower, w) {
			neg++
		}
	}

	switch {
	case pos > neg:
		return "positive"
	case neg > pos:
		return "negative"
	default:
		return "neutral"
	}
}

var factPatterns = []struct {
	re      *regexp.Regexp
	subtype string
}{
	{regexp.MustCompile(`i(?:'m| am) (?:a |an )?(\w+)`), "identity"},
	{regexp.MustCompile(`i work (?:as |at |in )?(.+?)(?:\.|$)`), "work"},
	{regexp.MustCompile(`i live in (.+?)(?:\.|$)`), "location"},
	{regexp.MustCompile(`my name is (\w+)`), "name"},
}

var prefPatterns = []struct {
	re      *regexp.Regexp
	subtype string
}{
	{regexp.MustCompile(`i (?:really )?(?:like|love|enjoy) (.+?)(?:\.|$)`), "like"},
	{regexp.MustCompile(`i (?:don't like|hate|dislike) (.+?)(?:\.|$)`), "dislike"},
}

// ExtractMemories spots self-disclosures worth remembering. The whole
// matched phrase is stored, not just the captured fragment.
func ExtractMemories(userMessage string) []MemoryCandidate {
	text := strings.ToLower(userMessage)
	var out []MemoryCandidate

	for _, p := range factPatterns {
		if m := p.re.FindString(text); m != "" {
			out = append(out, MemoryCandidate{Kind: "fact", Content: m, Subtype: p.subtype})
		}
	}
	for _, p := range prefPatterns {
		if m := p.re.FindString(text); m != "" {
			out = append(out, MemoryCandidate{Kind: "preference", Content: m, Subtype: p.subtype})
		}
	}
	return out
}

// AssessInteractionQuality grades the owner's message for the
// affective update. Harsh outranks everything; loving beats warm; a
// terse message reads as cold.
func AssessInteractionQuality(userMessage string) string {
	text := strings.ToLower(userMessage)

	if containsAny(text, "shut up", "stupid", "hate you", "useless", "annoying") {
		return "harsh"
	}
	if containsAny(text, "love you", "thank you so much", "you're amazing", "you're wonderful", "appreciate you", "care about you") {
		return "loving"
	}
	if containsAny(text, "thanks", "thank you", "appreciate", "glad", "happy", "like you", "good") {
		return "warm"
	}
	if len([]rune(text)) < 10 || text == "ok" || text == "k" || text == "fine" || text == "whatever" || text == "sure" {
		return "cold"
	}

	return "normal"
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
