package translator

import (
	"context"
	"time"

	"golang.org/x/text/language"
)

// Translator translates an ordered list of texts. Implementations must
// return exactly one translation per input, in input order.
type Translator interface {
	Translate(
		ctx context.Context,
		texts []string,
		sourceLang language.Tag,
		targetLang language.Tag,
	) ([]string, error)
}

// BatchConfig bounds how cue text is partitioned and dispatched to the
// translation service.
type BatchConfig struct {
	// BatchSize is the maximum number of text items per request
	BatchSize int
	// MaxChars is the maximum total character count per request; a single
	// oversized item still forms a batch of one
	MaxChars int
	// MaxAttempts bounds retries of a batch that fails transiently
	MaxAttempts int
	// RetryBaseDelay is the backoff unit; retry n waits RetryBaseDelay << (n-1)
	RetryBaseDelay time.Duration
	// Concurrency is the number of batches in flight at once; values
	// below 1 mean sequential dispatch
	Concurrency int
}

// DefaultBatchConfig mirrors the limits of the original tool: ten lines
// per request, three attempts with exponential backoff.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		BatchSize:      10,
		MaxChars:       4000,
		MaxAttempts:    3,
		RetryBaseDelay: time.Second,
		Concurrency:    1,
	}
}

func (c BatchConfig) withDefaults() BatchConfig {
	if c.BatchSize <= 0 {
		c.BatchSize = 10
	}
	if c.MaxChars <= 0 {
		c.MaxChars = 4000
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = time.Second
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
	return c
}
