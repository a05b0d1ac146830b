package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// ProviderMeta holds operational metadata for a single provider call.
type ProviderMeta struct {
	Provider string
	Usage    TokenUsage
	Latency  time.Duration
}
