// Package converter transcodes fetched audio blobs into
// the requested output format through an ffmpeg subprocess.
package converter

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/thanhpk/randstr"

	"github.com/streambinder/tracksmith/util"
)

// Convert transcodes input into output, the target format
// being implied by the output extension. On failure it
// returns the ffmpeg diagnostic output alongside.
func Convert(input, output string) (bool, string) {
	var (
		diagnostic bytes.Buffer
		cmd        = exec.Command("ffmpeg",
			"-y",
			"-i", input,
			"-vn",
			"-qscale:a", "0",
			output,
		)
	)
	cmd.Stdout = &diagnostic
	cmd.Stderr = &diagnostic

	if err := cmd.Run(); err != nil {
		return false, diagnostic.String()
	}
	return true, ""
}

// ErrorReport persists a conversion diagnostic to a dated
// file under the errors directory, returning its path so
// failure messages can reference it
func ErrorReport(diagnostic string) (string, error) {
	path := util.ErrorsFile(fmt.Sprintf("ffmpeg_%s_%s.log",
		time.Now().Format("2006-01-02"), randstr.Hex(4)))
	if err := os.WriteFile(path, []byte(diagnostic), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Ensure fails early when ffmpeg is not installed
func Ensure() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}
	return nil
}
