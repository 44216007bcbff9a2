package translator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/MimeLyc/vtt-batch-translator/internal/subtitle"
)

// stubTranslator runs a function per batch and counts invocations
type stubTranslator struct {
	calls int64
	fn    func(texts []string) ([]string, error)
}

func (s *stubTranslator) Translate(
	_ context.Context,
	texts []string,
	_ language.Tag,
	_ language.Tag,
) ([]string, error) {
	atomic.AddInt64(&s.calls, 1)
	return s.fn(texts)
}

func testFile() *subtitle.File {
	return &subtitle.File{
		Cues: []subtitle.Cue{
			{Index: 1, TimingLine: "00:00:01.000 --> 00:00:03.000", Lines: []string{"Привет"}},
			{Index: 2, TimingLine: "00:00:03.000 --> 00:00:05.000", Lines: []string{"Как дела?", "Хорошо."}},
		},
	}
}

func TestEngineScattersInOrder(t *testing.T) {
	stub := &stubTranslator{fn: func(texts []string) ([]string, error) {
		out := make([]string, len(texts))
		for i, text := range texts {
			out[i] = "tr:" + text
		}
		return out, nil
	}}

	file := testFile()
	engine := NewEngine(stub, BatchConfig{BatchSize: 2, RetryBaseDelay: time.Millisecond})
	require.NoError(t, engine.TranslateFile(context.Background(), file, language.Russian, language.Kazakh))

	assert.Equal(t, []string{"tr:Привет"}, file.Cues[0].Lines)
	assert.Equal(t, []string{"tr:Как дела?", "tr:Хорошо."}, file.Cues[1].Lines)
	// timestamps untouched
	assert.Equal(t, "00:00:01.000 --> 00:00:03.000", file.Cues[0].TimingLine)
	// 3 lines with batch size 2 means 2 requests
	assert.EqualValues(t, 2, stub.calls)
}

func TestEngineStubExample(t *testing.T) {
	stub := &stubTranslator{fn: func(texts []string) ([]string, error) {
		out := make([]string, len(texts))
		for i, text := range texts {
			if text == "Привет" {
				out[i] = "Сәлем"
			} else {
				out[i] = text
			}
		}
		return out, nil
	}}

	file := testFile()
	engine := NewEngine(stub, BatchConfig{})
	require.NoError(t, engine.TranslateFile(context.Background(), file, language.Russian, language.Kazakh))
	assert.Equal(t, []string{"Сәлем"}, file.Cues[0].Lines)
}

func TestEngineBatchMismatchFatal(t *testing.T) {
	stub := &stubTranslator{fn: func(texts []string) ([]string, error) {
		return texts[:len(texts)-1], nil
	}}

	file := testFile()
	engine := NewEngine(stub, BatchConfig{RetryBaseDelay: time.Millisecond})
	err := engine.TranslateFile(context.Background(), file, language.Und, language.Kazakh)

	var mismatch *BatchMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 3, mismatch.Want)
	assert.Equal(t, 2, mismatch.Got)
	// mismatch is not retried
	assert.EqualValues(t, 1, stub.calls)
	// source text must stay untouched
	assert.Equal(t, []string{"Привет"}, file.Cues[0].Lines)
	assert.Equal(t, []string{"Как дела?", "Хорошо."}, file.Cues[1].Lines)
}

func TestEngineRetriesTransientThenSucceeds(t *testing.T) {
	var failures int64
	stub := &stubTranslator{fn: nil}
	stub.fn = func(texts []string) ([]string, error) {
		if atomic.AddInt64(&failures, 1) == 1 {
			return nil, &TransientError{Cause: errors.New("rate limited")}
		}
		return texts, nil
	}

	file := testFile()
	engine := NewEngine(stub, BatchConfig{MaxAttempts: 3, RetryBaseDelay: time.Millisecond})
	require.NoError(t, engine.TranslateFile(context.Background(), file, language.Und, language.Kazakh))
	assert.EqualValues(t, 2, stub.calls)
}

func TestEngineTransientExhaustedEscalatesFatal(t *testing.T) {
	stub := &stubTranslator{fn: func(texts []string) ([]string, error) {
		return nil, &TransientError{Cause: errors.New("timeout")}
	}}

	engine := NewEngine(stub, BatchConfig{MaxAttempts: 3, RetryBaseDelay: time.Millisecond})
	err := engine.TranslateFile(context.Background(), testFile(), language.Und, language.Kazakh)

	var fatal *FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Contains(t, err.Error(), "retries exhausted")
	assert.EqualValues(t, 3, stub.calls)
}

func TestEngineFatalNotRetried(t *testing.T) {
	stub := &stubTranslator{fn: func(texts []string) ([]string, error) {
		return nil, errors.New("invalid api key")
	}}

	engine := NewEngine(stub, BatchConfig{MaxAttempts: 3, RetryBaseDelay: time.Millisecond})
	err := engine.TranslateFile(context.Background(), testFile(), language.Und, language.Kazakh)

	var fatal *FatalError
	require.ErrorAs(t, err, &fatal)
	assert.EqualValues(t, 1, stub.calls)
}

func TestEngineConcurrentDispatchScattersDeterministically(t *testing.T) {
	file := &subtitle.File{}
	for i := 1; i <= 40; i++ {
		file.Cues = append(file.Cues, subtitle.Cue{
			Index: i,
			Lines: []string{"line " + strconv.Itoa(i)},
		})
	}

	stub := &stubTranslator{fn: func(texts []string) ([]string, error) {
		out := make([]string, len(texts))
		for i, text := range texts {
			out[i] = "tr:" + text
		}
		return out, nil
	}}

	engine := NewEngine(stub, BatchConfig{BatchSize: 3, Concurrency: 4, RetryBaseDelay: time.Millisecond})
	require.NoError(t, engine.TranslateFile(context.Background(), file, language.Und, language.Kazakh))

	for i, cue := range file.Cues {
		assert.Equal(t, fmt.Sprintf("tr:line %d", i+1), cue.Lines[0])
	}
}

func TestEngineEmptyFile(t *testing.T) {
	stub := &stubTranslator{fn: func(texts []string) ([]string, error) { return texts, nil }}
	engine := NewEngine(stub, BatchConfig{})
	require.NoError(t, engine.TranslateFile(context.Background(), &subtitle.File{}, language.Und, language.Kazakh))
	assert.EqualValues(t, 0, stub.calls)
}

func TestPartitionItems(t *testing.T) {
	items := []batchItem{
		{text: "aaaa"},
		{text: "bbbb"},
		{text: "cccc"},
		{text: "dddd"},
		{text: "eeee"},
	}

	t.Run("bounded by item count", func(t *testing.T) {
		batches := partitionItems(items, BatchConfig{BatchSize: 2, MaxChars: 1000}.withDefaults())
		require.Len(t, batches, 3)
		assert.Len(t, batches[0], 2)
		assert.Len(t, batches[2], 1)
	})

	t.Run("bounded by character budget", func(t *testing.T) {
		batches := partitionItems(items, BatchConfig{BatchSize: 100, MaxChars: 8}.withDefaults())
		require.Len(t, batches, 3)
		assert.Len(t, batches[0], 2)
	})

	t.Run("oversized item forms batch of one", func(t *testing.T) {
		big := []batchItem{{text: "0123456789"}, {text: "x"}}
		batches := partitionItems(big, BatchConfig{BatchSize: 100, MaxChars: 4}.withDefaults())
		require.Len(t, batches, 2)
		assert.Len(t, batches[0], 1)
	})
}

func TestReconcileLine(t *testing.T) {
	assert.Equal(t, "one two", reconcileLine("one\ntwo"))
	assert.Equal(t, "one two", reconcileLine("one\r\ntwo\n"))
	assert.Equal(t, "plain", reconcileLine("plain"))
}
