package media

import "fmt"

// EmbedError reports why embedding failed: a missing input file, a
// missing tool binary, or the external tool exiting non-zero.
type EmbedError struct {
	MissingPath string // set when an input precondition failed
	Tool        string // set when the tool binary was not found
	ExitCode    int    // set when the tool exited non-zero
	Output      string // captured diagnostic output of the tool
	Cause       error
}

func (e *EmbedError) Error() string {
	switch {
	case e.MissingPath != "":
		return fmt.Sprintf("cannot embed subtitles: input file does not exist: %s", e.MissingPath)
	case e.Tool != "":
		return fmt.Sprintf("cannot embed subtitles: %s not found in PATH: %v", e.Tool, e.Cause)
	case e.ExitCode != 0:
		return fmt.Sprintf("subtitle embedding failed: ffmpeg exited with code %d: %s", e.ExitCode, e.Output)
	default:
		return fmt.Sprintf("subtitle embedding failed: %v", e.Cause)
	}
}

func (e *EmbedError) Unwrap() error {
	return e.Cause
}
