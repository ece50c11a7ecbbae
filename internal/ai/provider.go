// Package ai is the generation transport: a provider interface, an
// OpenAI-style HTTP client, a deterministic mock, and text heuristics
// for mining replies. It knows nothing about the affective model
// beyond the band marker embedded in the system prompt.
package ai

// Message is one turn of chat history on the wire.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request carries everything a provider needs for one generation.
type Request struct {
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Provider generates one reply for a request.
type Provider interface {
	Generate(req Request) (string, error)
}
