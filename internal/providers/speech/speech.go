package speech

import "context"

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (text string, confidence float64, err error)
	Close() error
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string) (audio []byte, err error)
	Close() error
}
