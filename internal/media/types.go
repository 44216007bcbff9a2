package media

import (
	"context"

	"github.com/MimeLyc/vtt-batch-translator/internal/subtitle"
)

// Operator is the capability boundary around the external media tool.
// It can burn a subtitle file into a video and inspect embedded
// subtitle streams, and is substituted with a double in tests.
type Operator interface {
	// Embed overlays the subtitle file onto the video and writes a new
	// video file, returning the output path.
	Embed(ctx context.Context, subtitlePath, outputPath string) (string, error)

	// DefEmbed embeds with the default output naming next to the video
	DefEmbed(ctx context.Context, subtitlePath string) (string, error)

	// ReadSubtitleDescription lists the subtitle streams embedded in the video
	ReadSubtitleDescription(ctx context.Context) (subtitle.Descriptions, error)
}

func NewOperator(
	videoPath string,
) Operator {
	return NewFfmpeg(videoPath)
}
