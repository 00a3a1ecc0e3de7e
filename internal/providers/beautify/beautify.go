package beautify

import "context"

// Formatter is the external resume-beautification service: raw text plus a
// template name in, stylistically formatted text out.
type Formatter interface {
	Format(ctx context.Context, rawText, template string) (string, error)
}
