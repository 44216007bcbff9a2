package translator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/MimeLyc/vtt-batch-translator/internal/subtitle"
	"github.com/MimeLyc/vtt-batch-translator/pkg/log"
)

// batchItem is the back-reference from one batched text to its
// originating cue and line, so results can be scattered back in place.
type batchItem struct {
	cue  int
	line int
	text string
}

// Engine gathers cue text into bounded batches, dispatches them to a
// Translator and scatters the results back by back-reference. Cue text is
// only mutated after every batch has succeeded, so a failed run leaves the
// subtitle file untouched.
type Engine struct {
	translator Translator
	cfg        BatchConfig
}

// NewEngine creates a batch translation engine
func NewEngine(translator Translator, cfg BatchConfig) *Engine {
	return &Engine{
		translator: translator,
		cfg:        cfg.withDefaults(),
	}
}

// TranslateFile translates every cue text line of the file in place.
// Timestamps, cue count and per-cue line counts are never changed.
func (e *Engine) TranslateFile(
	ctx context.Context,
	file *subtitle.File,
	sourceLang language.Tag,
	targetLang language.Tag,
) error {
	items := gatherItems(file)
	if len(items) == 0 {
		return nil
	}

	batches := partitionItems(items, e.cfg)
	log.Info("Translating %d lines in %d batches (%s -> %s)",
		len(items), len(batches), sourceLang, targetLang)

	results := make([][]string, len(batches))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.cfg.Concurrency)

	for bi, batch := range batches {
		bi, batch := bi, batch
		group.Go(func() error {
			translations, err := e.translateBatch(groupCtx, bi, batch, sourceLang, targetLang)
			if err != nil {
				return err
			}
			results[bi] = translations
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	// All batches succeeded; scatter results back by back-reference,
	// never by completion order.
	for bi, batch := range batches {
		for ii, item := range batch {
			file.Cues[item.cue].Lines[item.line] = reconcileLine(results[bi][ii])
		}
	}

	return nil
}

// translateBatch issues one request for a batch, retrying transient
// failures with exponential backoff. A response of the wrong length is
// fatal immediately; exhausted retries escalate to a fatal error.
func (e *Engine) translateBatch(
	ctx context.Context,
	batchIndex int,
	batch []batchItem,
	sourceLang language.Tag,
	targetLang language.Tag,
) ([]string, error) {
	texts := make([]string, len(batch))
	for i, item := range batch {
		texts[i] = item.text
	}

	var lastErr error
	for attempt := 0; attempt < e.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := e.cfg.RetryBaseDelay << (attempt - 1)
			log.Warn("Batch %d attempt %d/%d failed (%v), retrying in %s",
				batchIndex, attempt, e.cfg.MaxAttempts, lastErr, delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		translations, err := e.translator.Translate(ctx, texts, sourceLang, targetLang)
		if err != nil {
			if IsTransient(err) {
				lastErr = err
				continue
			}
			return nil, &FatalError{BatchIndex: batchIndex, Cause: err}
		}

		if len(translations) != len(texts) {
			return nil, &BatchMismatchError{
				BatchIndex: batchIndex,
				Want:       len(texts),
				Got:        len(translations),
			}
		}

		return translations, nil
	}

	return nil, &FatalError{
		BatchIndex: batchIndex,
		Cause:      fmt.Errorf("retries exhausted after %d attempts: %w", e.cfg.MaxAttempts, lastErr),
	}
}

// gatherItems collects all cue text lines in file order with their
// back-references.
func gatherItems(file *subtitle.File) []batchItem {
	var items []batchItem
	for ci, cue := range file.Cues {
		for li, line := range cue.Lines {
			items = append(items, batchItem{cue: ci, line: li, text: line})
		}
	}
	return items
}

// partitionItems splits items into batches bounded by item count and total
// character length. An item larger than MaxChars still forms a batch of
// one; order is preserved.
func partitionItems(items []batchItem, cfg BatchConfig) [][]batchItem {
	var batches [][]batchItem
	var current []batchItem
	currentChars := 0

	for _, item := range items {
		itemChars := len([]rune(item.text))
		if len(current) > 0 &&
			(len(current) >= cfg.BatchSize || currentChars+itemChars > cfg.MaxChars) {
			batches = append(batches, current)
			current = nil
			currentChars = 0
		}
		current = append(current, item)
		currentChars += itemChars
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}

	return batches
}

// reconcileLine flattens any line breaks the service introduced into a
// single line, so the per-cue line count never drifts from the source.
func reconcileLine(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(text)
}
