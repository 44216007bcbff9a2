package file

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// FindWithExt walks dir and returns all regular files whose extension
// matches one of exts (case-insensitive, with or without leading dot).
func FindWithExt(dir string, exts ...string) ([]string, error) {
	want := make(map[string]bool, len(exts))
	for _, ext := range exts {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		want[strings.ToLower(ext)] = true
	}

	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if want[strings.ToLower(filepath.Ext(path))] {
			found = append(found, path)
		}
		return nil
	})

	return found, err
}
