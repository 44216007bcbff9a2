package main

import (
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/MimeLyc/vtt-batch-translator/internal/llm"
	"github.com/MimeLyc/vtt-batch-translator/internal/persistence"
	"github.com/MimeLyc/vtt-batch-translator/internal/service"
	"github.com/MimeLyc/vtt-batch-translator/internal/translator"
	"github.com/MimeLyc/vtt-batch-translator/pkg/log"
)

func newWatchCommand() *cobra.Command {
	var runNow bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Scan media directories on a schedule and translate new subtitles",
		Long: `Scan the configured media directories (WATCH_DIRS) on the CRON_EXPR
schedule and translate every sidecar VTT file that has no translated
counterpart yet. Completed runs are recorded in the history database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

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
				return service.NewErrorWithCause(service.ErrConfig, "config", "failed to create LLM client", err)
			}

			history, err := persistence.NewSQLiteStore(cfg.Watch.HistoryDB)
			if err != nil {
				return service.NewErrorWithCause(service.ErrConfig, "config", "failed to open history database", err)
			}
			defer history.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			c := cron.New()
			watcher := service.NewWatchService(*cfg, c, history, translator.NewLLMTranslator(client))
			if err := watcher.Schedule(ctx); err != nil {
				return err
			}

			if runNow {
				if err := watcher.RunOnce(ctx); err != nil {
					log.Error("Initial scan failed: %v", err)
				}
			}

			c.Start()
			<-ctx.Done()
			<-c.Stop().Done()
			return nil
		},
	}

	cmd.Flags().BoolVar(&runNow, "run-now", false, "run one scan immediately before scheduling")

	return cmd
}
