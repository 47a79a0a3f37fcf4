package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const prefix = "tracksmith"

// LegalizeFilename strips illegal characters out
// of a filename, easing cross-filesystem support
func LegalizeFilename(filename string) string {
	for _, illegal := range []string{"/", "?", "\\", "*", "|", "<", ">"} {
		filename = strings.ReplaceAll(filename, illegal, "")
	}
	filename = strings.ReplaceAll(filename, "\"", "'")
	filename = strings.ReplaceAll(filename, ":", "-")
	return filename
}

// CacheFile returns the path for the given filename
// within the application cache directory
func CacheFile(filename string) string {
	path, err := xdg.CacheFile(filepath.Join(prefix, filename))
	if err != nil {
		return filepath.Join(os.TempDir(), filename)
	}
	return path
}

// ErrorsFile returns the path for the given filename
// within the application errors state directory
func ErrorsFile(filename string) string {
	path, err := xdg.StateFile(filepath.Join(prefix, "errors", filename))
	if err != nil {
		return filepath.Join(os.TempDir(), filename)
	}
	return path
}

// FileMoveOrCopy moves (or copies, in case of
// cross-device operations) source file to destination
func FileMoveOrCopy(source, destination string, overwrite ...bool) error {
	if _, err := os.Stat(destination); err == nil &&
		(len(overwrite) == 0 || !overwrite[0]) {
		return fmt.Errorf("destination %s already exists", destination)
	}

	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return err
	}

	if err := os.Rename(source, destination); err == nil {
		return nil
	}

	// rename failures usually mean source and destination
	// lay on different filesystems: fallback to copy
	input, err := os.Open(source)
	if err != nil {
		return err
	}
	defer input.Close()

	output, err := os.Create(destination)
	if err != nil {
		return err
	}
	defer output.Close()

	if _, err := io.Copy(output, input); err != nil {
		return err
	}
	return os.Remove(source)
}
