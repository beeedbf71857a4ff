package llm

import "context"

// Message is a single turn sent to the completion endpoint
type Message struct {
	Role    string
	Content string
}

// Provider abstracts the remote completion endpoint: ordered turns in, raw
// reply text out. Implementations must honor context cancellation.
type Provider interface {
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}
