package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/MimeLyc/vtt-batch-translator/internal/persistence"
	"github.com/MimeLyc/vtt-batch-translator/internal/service"
)

func newHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent translation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := persistence.NewSQLiteStore(cfg.Watch.HistoryDB)
			if err != nil {
				return service.NewErrorWithCause(service.ErrConfig, "config", "failed to open history database", err)
			}
			defer store.Close()

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No translation runs recorded yet")
				return nil
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"When", "Input", "Output", "Lang", "Cues", "Duration"})
			for _, run := range runs {
				tw.AppendRow(table.Row{
					run.CreatedAt.Local().Format(time.DateTime),
					run.InputPath,
					run.OutputPath,
					run.SourceLanguage + ">" + run.TargetLanguage,
					run.CueCount,
					run.Duration.Round(time.Millisecond),
				})
			}
			tw.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to list")

	return cmd
}
