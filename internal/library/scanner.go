package library

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	"github.com/MimeLyc/vtt-batch-translator/pkg/file"
	"github.com/MimeLyc/vtt-batch-translator/pkg/log"
)

// Scanner walks the configured source directories and pairs video files
// with sidecar subtitle files that have no translated counterpart yet.
type Scanner struct {
	sources        []SourceConfig
	targetLanguage language.Tag
}

func NewScanner(
	sources []SourceConfig,
	targetLanguage language.Tag,
) *Scanner {
	return &Scanner{
		sources:        sources,
		targetLanguage: targetLanguage,
	}
}

// Scan returns the bundles that still need translating, in path order
func (s *Scanner) Scan(ctx context.Context) ([]MediaBundle, error) {
	var bundles []MediaBundle

	for _, source := range s.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		found, err := s.scanDir(source.Dir)
		if err != nil {
			log.Error("Failed to scan %s: %v", source.Dir, err)
			return nil, err
		}
		bundles = append(bundles, found...)
	}

	return bundles, nil
}

func (s *Scanner) scanDir(dir string) ([]MediaBundle, error) {
	subtitles, err := file.FindWithExt(dir, subtitleExtensions...)
	if err != nil {
		return nil, err
	}
	videos, err := file.FindWithExt(dir, videoExtensions...)
	if err != nil {
		return nil, err
	}

	target := s.targetSuffix()

	var bundles []MediaBundle
	for _, sub := range subtitles {
		// skip files this tool produced
		if strings.HasSuffix(strings.ToLower(sub), target) {
			continue
		}
		// skip subtitles whose translated counterpart already exists
		translated := file.ReplaceExt(sub, "") + target
		if _, err := os.Stat(translated); err == nil {
			continue
		}

		bundles = append(bundles, MediaBundle{
			MediaFile:    matchVideo(sub, videos),
			SubtitlePath: sub,
		})
	}

	return bundles, nil
}

// targetSuffix is the naming convention of translated output files:
// <base>.<lang>.vtt
func (s *Scanner) targetSuffix() string {
	base, _ := s.targetLanguage.Base()
	return "." + base.String() + ".vtt"
}

// matchVideo finds the video a subtitle belongs to: same directory, and
// one base name is a prefix of the other (Zoom-style transcripts keep the
// recording prefix but drop the resolution suffix).
func matchVideo(subtitlePath string, videos []string) string {
	subDir := filepath.Dir(subtitlePath)
	subBase := trimAllExt(filepath.Base(subtitlePath))

	for _, video := range videos {
		if filepath.Dir(video) != subDir {
			continue
		}
		videoBase := trimAllExt(filepath.Base(video))
		if strings.HasPrefix(videoBase, subBase) || strings.HasPrefix(subBase, videoBase) {
			return video
		}
	}

	return ""
}

// trimAllExt strips every extension-like suffix: "a.transcript.vtt" -> "a"
func trimAllExt(name string) string {
	if i := strings.Index(name, "."); i > 0 {
		return name[:i]
	}
	return name
}
