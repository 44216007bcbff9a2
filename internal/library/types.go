package library

// SourceConfig names one directory to scan for media
type SourceConfig struct {
	Dir string
}

// MediaBundle pairs a video file with the sidecar subtitle file that
// still needs translating. MediaFile is empty for an orphan subtitle.
type MediaBundle struct {
	MediaFile    string
	SubtitlePath string
}

var videoExtensions = []string{".mp4", ".mkv", ".avi", ".mov", ".webm"}

var subtitleExtensions = []string{".vtt"}
