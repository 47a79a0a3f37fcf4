package downloader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Hook is invoked as download progress advances
type Hook func(downloadedBytes, totalBytes int64)

const progressTemplate = "download:%(progress.downloaded_bytes)s/%(progress.total_bytes)s"

// format maps the desired audio extension to the
// corresponding yt-dlp stream selector
func format(ext string) string {
	switch ext {
	case "m4a":
		return "bestaudio[ext=m4a]/bestaudio/best"
	case "opus":
		return "bestaudio[ext=webm]/bestaudio/best"
	default:
		return "bestaudio"
	}
}

// YouTubeDl fetches the audio stream behind the given URL
// into path, whose extension drives both stream selection
// and extraction format. The optional hook receives byte
// counters as the transfer advances.
func YouTubeDl(url, path string, hook Hook) error {
	var (
		output bytes.Buffer
		ext    = strings.TrimPrefix(filepath.Ext(path), ".")
		stem   = strings.TrimSuffix(path, filepath.Ext(path))
		cmd    = exec.Command("yt-dlp",
			"--format", format(ext),
			"--extract-audio",
			"--audio-format", ext,
			"--audio-quality", "0",
			"--output", stem+".%(ext)s",
			"--continue",
			"--no-overwrites",
			"--newline",
			"--progress-template", progressTemplate,
			"--retry-sleep", "exp=1::2",
			"--sleep-interval", "5",
			url,
		)
	)
	cmd.Stderr = &output

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()
		output.WriteString(line + "\n")
		if hook != nil {
			if downloaded, total, ok := parseProgress(line); ok {
				hook(downloaded, total)
			}
		}
	}

	if err := cmd.Wait(); err != nil {
		return errors.New(output.String())
	}
	return nil
}

// parseProgress decodes a "download:<done>/<total>" line
// emitted through the progress template
func parseProgress(line string) (downloaded, total int64, ok bool) {
	if !strings.HasPrefix(line, "download:") {
		return 0, 0, false
	}
	payload := strings.TrimPrefix(line, "download:")

	chunks := strings.SplitN(payload, "/", 2)
	if len(chunks) != 2 {
		return 0, 0, false
	}

	downloaded, errDownloaded := strconv.ParseInt(strings.TrimSpace(chunks[0]), 10, 64)
	total, errTotal := strconv.ParseInt(strings.TrimSpace(chunks[1]), 10, 64)
	if errDownloaded != nil || errTotal != nil {
		return 0, 0, false
	}
	return downloaded, total, true
}

// Ensure fails early when yt-dlp is not installed
func Ensure() error {
	if _, err := exec.LookPath("yt-dlp"); err != nil {
		return fmt.Errorf("yt-dlp not found in PATH: %w", err)
	}
	return nil
}
