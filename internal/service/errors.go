package service

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MimeLyc/vtt-batch-translator/internal/media"
	"github.com/MimeLyc/vtt-batch-translator/internal/subtitle"
	"github.com/MimeLyc/vtt-batch-translator/internal/translator"
	"github.com/MimeLyc/vtt-batch-translator/pkg/log"
)

type ErrorType int

const (
	ErrFileNotFound ErrorType = iota
	ErrDecode
	ErrParse
	ErrBatchMismatch
	ErrTransient
	ErrService
	ErrEmbed
	ErrFileWrite
	ErrConfig
	ErrUnknown
)

// TransError tags an underlying failure with its pipeline stage and
// arbitrary context (file path, batch index, line number) so the caller
// always learns which stage and which input failed.
type TransError struct {
	Type    ErrorType
	Stage   string
	Message string
	Context map[string]any
	Cause   error
}

func NewError(errorType ErrorType, stage, message string) *TransError {
	return &TransError{
		Type:    errorType,
		Stage:   stage,
		Message: message,
		Context: make(map[string]any),
	}
}

func NewErrorWithCause(errorType ErrorType, stage, message string, cause error) *TransError {
	return &TransError{
		Type:    errorType,
		Stage:   stage,
		Message: message,
		Context: make(map[string]any),
		Cause:   cause,
	}
}

func (e *TransError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s] stage %s: %s", e.Type.String(), e.Stage, e.Message))

	if len(e.Context) > 0 {
		var ctxParts []string
		for k, v := range e.Context {
			ctxParts = append(ctxParts, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, fmt.Sprintf("context: %s", strings.Join(ctxParts, ", ")))
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause: %v", e.Cause))
	}

	return strings.Join(parts, " | ")
}

func (e *TransError) Unwrap() error {
	return e.Cause
}

func (e *TransError) WithContext(key string, value any) *TransError {
	e.Context[key] = value
	return e
}

func (t ErrorType) String() string {
	switch t {
	case ErrFileNotFound:
		return "FileNotFound"
	case ErrDecode:
		return "Decode"
	case ErrParse:
		return "Parse"
	case ErrBatchMismatch:
		return "BatchMismatch"
	case ErrTransient:
		return "Transient"
	case ErrService:
		return "Service"
	case ErrEmbed:
		return "Embed"
	case ErrFileWrite:
		return "FileWrite"
	case ErrConfig:
		return "Config"
	default:
		return "Unknown"
	}
}

// Classify wraps a component error into a stage-tagged TransError. Already
// classified errors pass through unchanged.
func Classify(err error, stage string) *TransError {
	var transErr *TransError
	if errors.As(err, &transErr) {
		return transErr
	}

	var decodeErr *subtitle.DecodeError
	if errors.As(err, &decodeErr) {
		return NewErrorWithCause(ErrDecode, stage, "subtitle file could not be decoded", err).
			WithContext("path", decodeErr.Path)
	}

	var parseErr *subtitle.ParseError
	if errors.As(err, &parseErr) {
		return NewErrorWithCause(ErrParse, stage, "subtitle file is malformed", err).
			WithContext("path", parseErr.Path).
			WithContext("line", parseErr.Line)
	}

	var mismatchErr *translator.BatchMismatchError
	if errors.As(err, &mismatchErr) {
		return NewErrorWithCause(ErrBatchMismatch, stage, "translation response shape violation", err).
			WithContext("batch", mismatchErr.BatchIndex)
	}

	var fatalErr *translator.FatalError
	if errors.As(err, &fatalErr) {
		return NewErrorWithCause(ErrService, stage, "translation service failure", err).
			WithContext("batch", fatalErr.BatchIndex)
	}

	var transientErr *translator.TransientError
	if errors.As(err, &transientErr) {
		return NewErrorWithCause(ErrTransient, stage, "translation service unavailable", err)
	}

	var embedErr *media.EmbedError
	if errors.As(err, &embedErr) {
		classified := NewErrorWithCause(ErrEmbed, stage, "subtitle embedding failed", err)
		if embedErr.MissingPath != "" {
			classified.WithContext("path", embedErr.MissingPath)
		}
		if embedErr.ExitCode != 0 {
			classified.WithContext("exit_code", embedErr.ExitCode)
		}
		return classified
	}

	if errors.Is(err, os.ErrNotExist) {
		return NewErrorWithCause(ErrFileNotFound, stage, "input file does not exist", err)
	}

	if errors.Is(err, subtitle.ErrUnsupportedFormat) {
		return NewErrorWithCause(ErrParse, stage, "unsupported subtitle format", err)
	}

	return NewErrorWithCause(ErrUnknown, stage, "unexpected failure", err)
}

type ErrorHandler interface {
	Handle(err error) bool
	GetAdvice(err *TransError) string
}

type DefaultErrorHandler struct{}

func NewDefaultErrorHandler() ErrorHandler {
	return &DefaultErrorHandler{}
}

func (h *DefaultErrorHandler) Handle(err error) bool {
	var transErr *TransError
	if !errors.As(err, &transErr) {
		log.Error("Unknown Error: %v", err)
		return false
	}

	advice := h.GetAdvice(transErr)
	log.Error("Error Detail: %v\n advice: %s", err, advice)

	return true
}

// GetAdvice returns error handling advice
func (h *DefaultErrorHandler) GetAdvice(err *TransError) string {
	switch err.Type {
	case ErrFileNotFound:
		return "Please check that the file path is correct and ensure the file exists with read permissions"
	case ErrDecode:
		return "The subtitle file uses an unreadable character encoding; convert it to UTF-8 manually and retry"
	case ErrParse:
		return "Please verify the subtitle file is well-formed VTT; the reported line breaks the cue structure"
	case ErrBatchMismatch:
		return "The translation service returned the wrong number of lines; retry, or reduce BATCH_SIZE"
	case ErrTransient:
		return "The translation service is temporarily unavailable; check network connectivity and retry later"
	case ErrService:
		return "Please check if the API key is correct and review the API service status"
	case ErrEmbed:
		return "Please check that ffmpeg is installed and the video and subtitle paths exist"
	case ErrFileWrite:
		return "Please ensure the output directory exists and has write permissions"
	case ErrConfig:
		return "Please check that configuration files or environment variables are set correctly"
	default:
		return "Please review detailed error information and check relevant configuration and files"
	}
}

func IsErrorType(err error, errorType ErrorType) bool {
	var transErr *TransError
	if errors.As(err, &transErr) {
		return transErr.Type == errorType
	}
	return false
}
