package llm

import (
	"context"

	"grocery-planner/internal/shared"
)

// systemRole is the fixed persona every suggestion prompt is issued under.
const systemRole = "You are a nutritionist helpful assistant for diet planning."

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
