package service

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/MimeLyc/vtt-batch-translator/internal/config"
	"github.com/MimeLyc/vtt-batch-translator/internal/library"
	"github.com/MimeLyc/vtt-batch-translator/internal/media"
	"github.com/MimeLyc/vtt-batch-translator/internal/persistence"
	"github.com/MimeLyc/vtt-batch-translator/internal/translator"
	"github.com/MimeLyc/vtt-batch-translator/pkg/icron"
	"github.com/MimeLyc/vtt-batch-translator/pkg/log"
)

// WatchService periodically scans the configured media directories and
// translates every sidecar subtitle file that has no translated
// counterpart yet.
type WatchService struct {
	cfg        config.Config
	cron       *cron.Cron
	scanner    *library.Scanner
	history    *persistence.SQLiteStore
	translator translator.Translator

	// newOperator is swapped out in tests
	newOperator func(videoPath string) media.Operator
}

func NewWatchService(
	cfg config.Config,
	c *cron.Cron,
	history *persistence.SQLiteStore,
	trans translator.Translator,
) *WatchService {
	sources := make([]library.SourceConfig, 0, len(cfg.Watch.Dirs))
	for _, dir := range cfg.Watch.Dirs {
		sources = append(sources, library.SourceConfig{Dir: dir})
	}

	return &WatchService{
		cfg:         cfg,
		cron:        c,
		scanner:     library.NewScanner(sources, cfg.Translate.TargetLanguage),
		history:     history,
		translator:  trans,
		newOperator: media.NewOperator,
	}
}

var singleflightGroup singleflight.Group

// Schedule registers the scan on the cron schedule. Overlapping ticks are
// collapsed through singleflight.
func (s *WatchService) Schedule(ctx context.Context) error {
	log.Info("Run WatchService on schedule %q for %v", s.cfg.Watch.CronExpr, s.cfg.Watch.Dirs)

	runFunc := func() {
		_, _, _ = singleflightGroup.Do("run", func() (any, error) {
			if err := s.RunOnce(ctx); err != nil {
				log.Error("Scheduled scan failed: %v", err)
			}
			return nil, nil
		})
	}
	if _, err := s.cron.AddFunc(s.cfg.Watch.CronExpr, runFunc); err != nil {
		return err
	}

	if info, err := icron.GetTriggerInfo(s.cfg.Watch.CronExpr, time.Now()); err == nil {
		log.Info("Next scan at %s (in %s)", info.Next.Format(time.RFC3339), info.TimeUntilNext.Round(time.Second))
	}

	return nil
}

// RunOnce scans all watch directories and translates what it finds.
// Failures of one bundle do not stop the others.
func (s *WatchService) RunOnce(ctx context.Context) error {
	bundles, err := s.scanner.Scan(ctx)
	if err != nil {
		return err
	}
	log.Info("Found %d subtitle files to translate", len(bundles))

	var errs []error
	for _, bundle := range bundles {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.shouldSkip(ctx, bundle) {
			continue
		}

		pipeline := NewPipeline(
			PipelineConfig{
				InputPath:      bundle.SubtitlePath,
				SourceLanguage: s.cfg.Translate.SourceLanguage,
				TargetLanguage: s.cfg.Translate.TargetLanguage,
			},
			translator.NewEngine(s.translator, translator.BatchConfig{
				BatchSize:   s.cfg.Translate.BatchSize,
				MaxChars:    s.cfg.Translate.MaxBatchChars,
				MaxAttempts: s.cfg.Translate.MaxAttempts,
				Concurrency: s.cfg.Translate.Concurrency,
			}),
		)

		result, err := pipeline.Translate(ctx)
		if err != nil {
			log.Error("Failed to translate %s: %v", bundle.SubtitlePath, err)
			errs = append(errs, err)
			continue
		}

		s.recordRun(ctx, result)
	}

	return errors.Join(errs...)
}

// shouldSkip filters bundles already handled: recorded in history, or
// whose video already carries an embedded subtitle stream in the target
// language.
func (s *WatchService) shouldSkip(ctx context.Context, bundle library.MediaBundle) bool {
	if s.history != nil {
		done, err := s.history.HasRun(ctx, bundle.SubtitlePath, s.cfg.Translate.TargetLanguage.String())
		if err != nil {
			log.Warn("History lookup failed for %s: %v", bundle.SubtitlePath, err)
		} else if done {
			log.Debug("Skipping %s: already translated", bundle.SubtitlePath)
			return true
		}
	}

	if bundle.MediaFile != "" {
		// best effort; a probe failure never blocks translation
		descriptions, err := s.newOperator(bundle.MediaFile).ReadSubtitleDescription(ctx)
		if err == nil && descriptions.HasLanguage(s.cfg.Translate.TargetLanguage) {
			log.Debug("Skipping %s: %s already has embedded %s subtitles",
				bundle.SubtitlePath, bundle.MediaFile, s.cfg.Translate.TargetLanguage)
			return true
		}
	}

	return false
}

func (s *WatchService) recordRun(ctx context.Context, result *Result) {
	if s.history == nil {
		return
	}
	err := s.history.RecordRun(ctx, persistence.Run{
		InputPath:      result.InputPath,
		OutputPath:     result.OutputPath,
		SourceLanguage: result.SourceLanguage.String(),
		TargetLanguage: result.TargetLanguage.String(),
		CueCount:       result.CueCount,
		CharCount:      result.CharCount,
		Duration:       result.Duration,
	})
	if err != nil {
		log.Warn("Failed to record run for %s: %v", result.InputPath, err)
	}
}
