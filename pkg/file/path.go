package file

import (
	"path/filepath"
	"strings"
)

// ReplaceExt swaps the extension of path for ext. An empty ext strips the
// extension; a leading dot on ext is optional. Dotfiles keep their name:
// ReplaceExt(".env", "bak") == ".env.bak".
func ReplaceExt(path, ext string) string {
	if path == "" {
		return path
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	dir, name := filepath.Dir(path), filepath.Base(path)
	if dot := strings.LastIndex(name, "."); dot > 0 {
		name = name[:dot]
	}

	return filepath.Join(dir, name+ext)
}
