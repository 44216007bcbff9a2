package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/vtt-batch-translator/internal/config"
	"github.com/MimeLyc/vtt-batch-translator/internal/llm"
	"github.com/MimeLyc/vtt-batch-translator/internal/persistence"
	"github.com/MimeLyc/vtt-batch-translator/internal/service"
	"github.com/MimeLyc/vtt-batch-translator/internal/translator"
	"github.com/MimeLyc/vtt-batch-translator/pkg/log"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "vttrans",
		Short:         "Batch-translate VTT subtitles and burn them into videos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newTranslateCommand())
	root.AddCommand(newBurnCommand())
	root.AddCommand(newWatchCommand())
	root.AddCommand(newHistoryCommand())

	return root
}

// loadConfig initializes configuration and logging for a command run
func loadConfig() (*config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, service.NewErrorWithCause(service.ErrConfig, "config", "failed to load configuration", err)
	}
	log.InitLogger(log.ParseLevel(cfg.System.LogLevel))
	return cfg, nil
}

// newEngine wires the LLM client and batch engine from configuration
func newEngine(cfg *config.Config) (*translator.Engine, error) {
	client, err := llm.NewClient(&llm.Config{
		APIKey:      cfg.LLM.APIKey,
		APIURL:      cfg.LLM.APIURL,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
		SiteURL:     cfg.LLM.SiteURL,
		AppName:     cfg.LLM.AppName,
	})
	if err != nil {
		return nil, service.NewErrorWithCause(service.ErrConfig, "config", "failed to create LLM client", err)
	}

	return translator.NewEngine(
		translator.NewLLMTranslator(client),
		translator.BatchConfig{
			BatchSize:   cfg.Translate.BatchSize,
			MaxChars:    cfg.Translate.MaxBatchChars,
			MaxAttempts: cfg.Translate.MaxAttempts,
			Concurrency: cfg.Translate.Concurrency,
		},
	), nil
}

// recordHistory stores a successful run, best effort
func recordHistory(cfg *config.Config, result *service.Result) {
	store, err := persistence.NewSQLiteStore(cfg.Watch.HistoryDB)
	if err != nil {
		log.Warn("History store unavailable: %v", err)
		return
	}
	defer store.Close()

	err = store.RecordRun(context.Background(), persistence.Run{
		InputPath:      result.InputPath,
		OutputPath:     result.OutputPath,
		SourceLanguage: result.SourceLanguage.String(),
		TargetLanguage: result.TargetLanguage.String(),
		CueCount:       result.CueCount,
		CharCount:      result.CharCount,
		Duration:       result.Duration,
	})
	if err != nil {
		log.Warn("Failed to record run: %v", err)
	}
}
