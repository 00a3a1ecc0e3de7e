package llm

import "context"

type Provider interface {
	// GenerateText returns the full completion for a prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateJSON asks the model for a JSON document and unmarshals it into out.
	GenerateJSON(ctx context.Context, prompt string, out any) error
	// StreamAnswer returns a stream of text chunks (incremental).
	StreamAnswer(ctx context.Context, prompt string) (chunks <-chan string, errs <-chan error)
	// Embed returns an embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
	Close() error
}
