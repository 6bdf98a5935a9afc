package util

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

func DirExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || err != nil {
		return false
	}
	return info.IsDir()
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || err != nil {
		return false
	}
	return !info.IsDir()
}

// EnsureDir creates dir (and parents) if missing.
func EnsureDir(dir string) error {
	if DirExists(dir) {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

var unsafeFileChars = regexp.MustCompile(`[/\\:*?"<>|\x00]`)

// SafeFilename replaces path separators and reserved characters so a
// download name built from gene names cannot escape the output directory.
func SafeFilename(name string) string {
	return filepath.Base(unsafeFileChars.ReplaceAllString(name, "_"))
}
