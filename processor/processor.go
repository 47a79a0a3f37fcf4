// Package processor post-processes downloaded blobs:
// artwork normalization and metadata embedding, the
// latter dispatched through a strategy table keyed by
// output format.
package processor

import (
	"github.com/streambinder/tracksmith/entity"
)

// Embedder writes track metadata (and lyrics)
// into an audio file of a specific format
type Embedder interface {
	Embed(path string, track *entity.Track, lyrics string) error
}

var embedders = map[string]Embedder{
	"mp3": id3Embedder{},
}

// Embed dispatches to the embedder registered for the
// given format. An unknown format is a no-op, not an
// error: the file simply stays untagged.
func Embed(path string, track *entity.Track, format, lyrics string) error {
	embedder, ok := embedders[format]
	if !ok {
		return nil
	}
	return embedder.Embed(path, track, lyrics)
}
