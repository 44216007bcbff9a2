package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/vtt-batch-translator/internal/media"
	"github.com/MimeLyc/vtt-batch-translator/internal/service"
)

func newBurnCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "burn <video> <subtitle.vtt>",
		Short: "Translate subtitles and burn them into a video",
		Long: `Translate a VTT subtitle file and burn the translation into the video
with ffmpeg, producing <video>_subtitled.<ext> next to the original.

Example:
  vttrans burn recording.mp4 recording.transcript.vtt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoPath, subtitlePath := args[0], args[1]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			engine, err := newEngine(cfg)
			if err != nil {
				return err
			}

			pipeline := service.NewPipeline(service.PipelineConfig{
				InputPath:      subtitlePath,
				SourceLanguage: cfg.Translate.SourceLanguage,
				TargetLanguage: cfg.Translate.TargetLanguage,
			}, engine)

			result, err := pipeline.TranslateAndEmbed(cmd.Context(), media.NewOperator(videoPath))
			if err != nil {
				return err
			}

			recordHistory(cfg, result)
			fmt.Fprintf(cmd.OutOrStdout(), "Video with subtitles saved as %s\n", result.VideoPath)
			return nil
		},
	}

	return cmd
}
