package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/MimeLyc/vtt-batch-translator/internal/subtitle"
	"github.com/MimeLyc/vtt-batch-translator/pkg/file"
	"github.com/MimeLyc/vtt-batch-translator/pkg/log"
	"golang.org/x/text/language"
)

type ffmpeg struct {
	ffmpegCmd  string
	ffprobeCmd string
	filePath   string
	fileDir    string
	fileName   string
}

func NewFfmpeg(
	videoPath string,
) ffmpeg {
	// deal with video path
	videoPath = filepath.Clean(videoPath)
	videoDir := filepath.Dir(videoPath)
	videoName := filepath.Base(videoPath)

	return ffmpeg{
		ffmpegCmd:  "ffmpeg",
		ffprobeCmd: "ffprobe",
		filePath:   videoPath,
		fileDir:    videoDir,
		fileName:   videoName,
	}
}

// Embed burns the subtitle file into the video, writing a new video file.
// Input preconditions are checked before the tool is invoked, so a missing
// file never launches ffmpeg.
func (ff ffmpeg) Embed(
	ctx context.Context,
	subtitlePath string,
	outputPath string,
) (string, error) {
	if _, err := os.Stat(ff.filePath); os.IsNotExist(err) {
		return "", &EmbedError{MissingPath: ff.filePath}
	}
	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return "", &EmbedError{MissingPath: subtitlePath}
	}

	cmdPath, err := exec.LookPath(ff.ffmpegCmd)
	if err != nil {
		return "", &EmbedError{Tool: ff.ffmpegCmd, Cause: err}
	}

	log.Info("Embedding %s into %s -> %s", subtitlePath, ff.filePath, outputPath)

	cmd := exec.CommandContext(ctx, cmdPath, ff.embedArgs(subtitlePath, outputPath)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		exitCode := -1
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return "", &EmbedError{
			ExitCode: exitCode,
			Output:   strings.TrimSpace(stderr.String()),
			Cause:    err,
		}
	}

	return outputPath, nil
}

// DefEmbed embeds with the default output name next to the video:
// <name>_subtitled.<ext>
func (ff ffmpeg) DefEmbed(
	ctx context.Context,
	subtitlePath string,
) (string, error) {
	ext := filepath.Ext(ff.fileName)
	output := filepath.Join(
		ff.fileDir,
		file.ReplaceExt(ff.fileName, "")+"_subtitled"+ext)

	return ff.Embed(ctx, subtitlePath, output)
}

// ReadSubtitleDescription lists the subtitle streams embedded in the video
func (ff ffmpeg) ReadSubtitleDescription(ctx context.Context) (subtitle.Descriptions, error) {
	cmdPath, err := exec.LookPath(ff.ffprobeCmd)
	if err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, cmdPath, ff.readProbeArgs(ff.filePath)...)

	output, err := cmd.Output()
	if err != nil {
		log.Error("Failed to run ffprobe: %v", err)
		return nil, err
	}

	var probeResult struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			CodecName string `json:"codec_name"`
			Tags      struct {
				Language string `json:"language"`
				Title    string `json:"title"`
			} `json:"tags"`
		} `json:"streams"`
	}

	if err := json.Unmarshal(output, &probeResult); err != nil {
		log.Error("Failed to parse ffprobe output: %v", err)
		return nil, err
	}

	descriptions := make(subtitle.Descriptions, 0)
	for _, stream := range probeResult.Streams {
		if stream.CodecType == "subtitle" {
			desc := subtitle.Description{
				Language:    stream.Tags.Language,
				SubLanguage: stream.Tags.Title,
				LangTag:     language.All.Make(stream.Tags.Language),
			}
			if desc.Language == "" {
				desc.Language = "und" // undefined
				desc.LangTag = language.Und
			}
			descriptions = append(descriptions, desc)
		}
	}

	return descriptions, nil
}

func (ffmpeg) readProbeArgs(path string) []string {
	return []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams",
		"s",
		path,
	}
}

func (ff ffmpeg) embedArgs(subtitlePath, outputPath string) []string {
	return []string{
		"-y",
		"-i", ff.filePath,
		"-vf", fmt.Sprintf("subtitles='%s'", escapeFilterPath(subtitlePath)),
		"-c:a", "copy",
		outputPath,
	}
}

// escapeFilterPath escapes a path for use inside an ffmpeg filter
// expression, where backslashes and colons are delimiters.
func escapeFilterPath(path string) string {
	escaped := strings.ReplaceAll(path, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, ":", `\:`)
	return escaped
}
