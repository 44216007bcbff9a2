package translator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/MimeLyc/vtt-batch-translator/internal/llm"
)

// completionClient is the slice of the LLM client the translator needs,
// kept narrow so tests can substitute a stub.
type completionClient interface {
	SimpleChat(ctx context.Context, prompt string, systemPrompt string) (string, error)
}

// llmTranslator translates batches through an OpenAI-compatible chat
// completion API using a numbered-list contract.
type llmTranslator struct {
	client completionClient
}

// NewLLMTranslator creates a Translator backed by the given LLM client
func NewLLMTranslator(client *llm.Client) Translator {
	return &llmTranslator{client: client}
}

func (t *llmTranslator) Translate(
	ctx context.Context,
	texts []string,
	sourceLang language.Tag,
	targetLang language.Tag,
) ([]string, error) {
	prompt := buildUserPrompt(texts)
	systemPrompt := buildSystemPrompt(sourceLang, targetLang, len(texts))

	content, err := t.client.SimpleChat(ctx, prompt, systemPrompt)
	if err != nil {
		return nil, classifyServiceError(err)
	}

	return parseNumberedList(content), nil
}

// buildUserPrompt formats the batch as a numbered list, one item per line
func buildUserPrompt(texts []string) string {
	var b strings.Builder
	for i, text := range texts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, text)
	}
	return b.String()
}

// buildSystemPrompt instructs the model to keep the numbered-list shape:
// same count, same order, nothing but the translations.
func buildSystemPrompt(sourceLang, targetLang language.Tag, count int) string {
	source := languageName(sourceLang)
	target := languageName(targetLang)

	var prompt strings.Builder
	prompt.WriteString("You are a professional subtitle translator. Translate the following numbered subtitle lines from " + source + " into " + target + ".\n\n")
	prompt.WriteString("Rules:\n")
	prompt.WriteString("1. Return ONLY the translated lines as a numbered list, one per line.\n")
	prompt.WriteString(fmt.Sprintf("2. The output must contain exactly %d numbered lines, in the same order as the input.\n", count))
	prompt.WriteString("3. Keep the translations concise and suitable for on-screen reading.\n")
	prompt.WriteString("4. Do not merge, split, drop or reorder lines.\n")
	prompt.WriteString("5. Do not add explanations, notes or any other text.\n")
	return prompt.String()
}

// languageName renders a tag as an English language name for the prompt,
// falling back to the tag itself for undetermined languages.
func languageName(tag language.Tag) string {
	if tag == language.Und {
		return "the source language"
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return tag.String()
}

var listNumberRe = regexp.MustCompile(`^\s*\d+[.)]\s*`)

// parseNumberedList strips list numbering from the response and returns
// the translated lines in order. Blank lines are dropped; the caller
// verifies the count against the request.
func parseNumberedList(content string) []string {
	var translations []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		translations = append(translations, listNumberRe.ReplaceAllString(line, ""))
	}
	return translations
}

// classifyServiceError marks retryable API and network failures as
// transient; everything else stays fatal.
func classifyServiceError(err error) error {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Retryable() {
			return &TransientError{Cause: err}
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &TransientError{Cause: err}
	}

	return err
}
