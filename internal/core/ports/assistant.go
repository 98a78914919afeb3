package ports

import "context"

// Reply is the assistant's answer to a free-text question.
type Reply struct {
	Text string

	// Confidence is in [0,1]; zero means the assistant found nothing.
	Confidence float64

	// Source identifies the knowledge entry used, empty for fallbacks.
	Source string
}

// Assistant answers customer-service questions.
type Assistant interface {
	Ask(ctx context.Context, question string) (Reply, error)
}
