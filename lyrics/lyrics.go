// Package lyrics fetches song lyrics from a chain of
// providers. A track without lyrics anywhere is not an
// error: the chain just yields an empty string.
package lyrics

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/streambinder/tracksmith/entity"
)

type Provider interface {
	Name() string
	Lyrics(track *entity.Track) (string, error)
}

var providers = []Provider{
	genius{},
	musixmatch{},
}

// Search walks the provider chain and returns the first
// lyrics text found. Provider failures only disqualify
// that provider: the chain moves on to the next one.
func Search(track *entity.Track) (string, error) {
	for _, provider := range providers {
		lyrics, err := provider.Lyrics(track)
		if err != nil {
			continue
		}
		if lyrics != "" {
			return lyrics, nil
		}
	}
	return "", nil
}

// queryArtists drops the artists already spelled in the
// track title, so queries don't repeat themselves
func queryArtists(track *entity.Track) string {
	var artists []string
	for _, artist := range track.Artists {
		if !strings.Contains(strings.ToLower(track.Title), strings.ToLower(artist)) {
			artists = append(artists, artist)
		}
	}
	return strings.Join(artists, ", ")
}

func request(url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.164 Safari/537.36")
	req.Header.Set("Accept", "*/*")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	response, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, errStatus(response.StatusCode)
	}
	return io.ReadAll(response.Body)
}

type errStatus int

func (err errStatus) Error() string {
	return fmt.Sprintf("unexpected status %d", int(err))
}
