// Package downloader retrieves remote blobs: audio streams
// through yt-dlp, plain HTTP assets (such as artworks)
// directly.
package downloader

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// Processor transforms a downloaded blob
// before it gets persisted
type Processor interface {
	Do(data []byte) ([]byte, error)
}

// Download fetches the blob at the given URL into path,
// piping it through the processor (if any) and mirroring
// the final bytes onto every given channel
func Download(url, path string, processor Processor, channels ...chan []byte) error {
	response, err := http.Get(url)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: unexpected status %d", url, response.StatusCode)
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if processor != nil {
		data, err = processor.Do(data)
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	for _, channel := range channels {
		channel <- data
	}
	return nil
}
