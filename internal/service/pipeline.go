package service

import (
	"context"
	"path/filepath"
	"time"

	"golang.org/x/text/language"

	"github.com/MimeLyc/vtt-batch-translator/internal/media"
	"github.com/MimeLyc/vtt-batch-translator/internal/subtitle"
	"github.com/MimeLyc/vtt-batch-translator/internal/translator"
	"github.com/MimeLyc/vtt-batch-translator/pkg/file"
	"github.com/MimeLyc/vtt-batch-translator/pkg/log"
)

// PipelineConfig contains per-run pipeline configuration
type PipelineConfig struct {
	InputPath      string
	OutputDir      string
	OutputName     string
	SourceLanguage language.Tag // Und means auto-detect from cue text
	TargetLanguage language.Tag
}

// OutputPath is where the translated subtitle file goes: next to the
// input as <base>.<lang>.vtt unless overridden.
func (c PipelineConfig) OutputPath() string {
	outputDir := c.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(c.InputPath)
	}
	outputName := c.OutputName
	if outputName == "" {
		base := filepath.Base(c.InputPath)
		ext := filepath.Ext(base)
		langBase, _ := c.TargetLanguage.Base()
		outputName = file.ReplaceExt(base, "") + "." + langBase.String() + ext
	}
	return filepath.Join(outputDir, outputName)
}

// Result summarizes one completed pipeline run
type Result struct {
	InputPath      string
	OutputPath     string
	VideoPath      string // set when the subtitles were embedded
	SourceLanguage language.Tag
	TargetLanguage language.Tag
	CueCount       int
	CharCount      int
	Duration       time.Duration
}

// Pipeline runs the translation flow: read with encoding detection, batch
// translate, write atomically. Each stage failure is classified so the
// caller knows which stage and which input broke.
type Pipeline struct {
	engine *translator.Engine
	writer subtitle.Writer
	config PipelineConfig
}

func NewPipeline(
	config PipelineConfig,
	engine *translator.Engine,
) *Pipeline {
	return &Pipeline{
		engine: engine,
		writer: subtitle.NewWriter(),
		config: config,
	}
}

// Translate runs the subtitle translation stages and returns the result.
// On any failure no output file is written.
func (p *Pipeline) Translate(ctx context.Context) (*Result, error) {
	start := time.Now()

	subFile, err := subtitle.NewReader(p.config.InputPath).Read()
	if err != nil {
		return nil, Classify(err, "read").WithContext("input", p.config.InputPath)
	}

	sourceLang := p.config.SourceLanguage
	if sourceLang == language.Und {
		sourceLang = subFile.Language
		log.Info("Detected source language %s for %s", sourceLang, p.config.InputPath)
	}

	cueCount := len(subFile.Cues)
	charCount := subFile.CharCount()

	if err := p.engine.TranslateFile(ctx, subFile, sourceLang, p.config.TargetLanguage); err != nil {
		return nil, Classify(err, "translate").WithContext("input", p.config.InputPath)
	}

	outputPath := p.config.OutputPath()
	if err := p.writer.Write(outputPath, subFile); err != nil {
		return nil, NewErrorWithCause(ErrFileWrite, "write", "failed to write translated subtitle file", err).
			WithContext("output", outputPath)
	}

	log.Info("Translated %s (%d cues) -> %s in %s",
		p.config.InputPath, cueCount, outputPath, time.Since(start).Round(time.Millisecond))

	return &Result{
		InputPath:      p.config.InputPath,
		OutputPath:     outputPath,
		SourceLanguage: sourceLang,
		TargetLanguage: p.config.TargetLanguage,
		CueCount:       cueCount,
		CharCount:      charCount,
		Duration:       time.Since(start),
	}, nil
}

// TranslateAndEmbed runs the translation stages and then burns the
// translated subtitles into the video via the given operator.
func (p *Pipeline) TranslateAndEmbed(
	ctx context.Context,
	operator media.Operator,
) (*Result, error) {
	result, err := p.Translate(ctx)
	if err != nil {
		return nil, err
	}

	videoPath, err := operator.DefEmbed(ctx, result.OutputPath)
	if err != nil {
		return nil, Classify(err, "embed").WithContext("subtitle", result.OutputPath)
	}
	result.VideoPath = videoPath

	return result, nil
}
