// Package textgen provides the text-generation capability used to
// produce analysis and summary prose. The pipeline depends only on the
// Generator interface; a failing generator is an expected condition
// that callers handle with deterministic fallbacks.
package textgen

import (
	"context"

	"etlmap/internal/errors"
)

// Generator produces free-form text from a structured prompt. The
// returned text is treated as opaque; implementations may fail and
// callers must substitute their own fallback.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Disabled is a Generator that always fails. It backs runs with no
// configured provider, forcing every stage onto its deterministic
// fallback path.
type Disabled struct{}

// Generate always returns a GENERATOR_UNAVAILABLE error.
func (Disabled) Generate(ctx context.Context, prompt string) (string, error) {
	return "", errors.New(errors.GeneratorUnavailable, "text generation is disabled")
}

// Static is a Generator returning fixed text, for tests.
type Static struct {
	Text string
}

// Generate returns the fixed text.
func (s Static) Generate(ctx context.Context, prompt string) (string, error) {
	return s.Text, nil
}
