package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/vtt-batch-translator/internal/service"
)

func newTranslateCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "translate <subtitle.vtt>",
		Short: "Translate a VTT subtitle file",
		Long: `Translate a VTT subtitle file into the configured target language.

The output keeps every timestamp and cue untouched and is written next to
the input as <name>.<lang>.vtt unless -o is given.

Example:
  vttrans translate recording.transcript.vtt
  vttrans translate -o out.vtt recording.transcript.vtt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			engine, err := newEngine(cfg)
			if err != nil {
				return err
			}

			pipelineCfg := service.PipelineConfig{
				InputPath:      args[0],
				SourceLanguage: cfg.Translate.SourceLanguage,
				TargetLanguage: cfg.Translate.TargetLanguage,
			}
			if outputPath != "" {
				pipelineCfg.OutputDir = filepath.Dir(outputPath)
				pipelineCfg.OutputName = filepath.Base(outputPath)
			}

			result, err := service.NewPipeline(pipelineCfg, engine).Translate(cmd.Context())
			if err != nil {
				return err
			}

			recordHistory(cfg, result)
			fmt.Fprintf(cmd.OutOrStdout(), "Translated %d cues to %s\n", result.CueCount, result.OutputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output subtitle path")

	return cmd
}
