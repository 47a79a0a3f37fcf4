package spotify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zmb3/spotify/v2"
)

func TestID(t *testing.T) {
	assert.Equal(t, "123", ID("123"))
	assert.Equal(t, "123", ID("spotify:track:123"))
	assert.Equal(t, "123", ID("https://open.spotify.com/track/123"))
	assert.Equal(t, "123", ID("https://open.spotify.com/track/123?si=abcdef"))
	assert.Equal(t, "123", ID(" 123 "))
}

func TestReleaseYear(t *testing.T) {
	assert.Equal(t, 2023, releaseYear("2023-05-01"))
	assert.Equal(t, 2023, releaseYear("2023"))
	assert.Equal(t, 0, releaseYear(""))
	assert.Equal(t, 0, releaseYear("n/a"))
}

func TestTrackEntity(t *testing.T) {
	track := trackEntity(&spotify.FullTrack{
		SimpleTrack: spotify.SimpleTrack{
			ID:          "123",
			Name:        "Title",
			Artists:     []spotify.SimpleArtist{{Name: "Artist"}, {Name: "Featured"}},
			Duration:    200000,
			TrackNumber: 7,
		},
		Album: spotify.SimpleAlbum{
			Name:        "Album",
			ReleaseDate: "2023-05-01",
			Images:      []spotify.Image{{URL: "http://ima.ge/123"}},
		},
		ExternalIDs: map[string]string{"isrc": "USUG11904206"},
	})

	assert.Equal(t, "123", track.ID)
	assert.Equal(t, "USUG11904206", track.ISRC)
	assert.Equal(t, "Title", track.Title)
	assert.Equal(t, []string{"Artist", "Featured"}, track.Artists)
	assert.Equal(t, "Album", track.Album)
	assert.Equal(t, 200, track.Duration)
	assert.Equal(t, 7, track.Number)
	assert.Equal(t, 2023, track.Year)
	assert.Equal(t, "http://ima.ge/123", track.Artwork.URL)
}

func TestAlbumTrackEntity(t *testing.T) {
	track := albumTrackEntity(
		&spotify.SimpleTrack{
			ID:          "123",
			Name:        "Title",
			Artists:     []spotify.SimpleArtist{{Name: "Artist"}},
			Duration:    200000,
			TrackNumber: 7,
		},
		&spotify.SimpleAlbum{
			Name:        "Album",
			ReleaseDate: "2023-05-01",
			Images:      []spotify.Image{{URL: "http://ima.ge/123"}},
		})

	assert.Equal(t, "Album", track.Album)
	assert.Equal(t, 2023, track.Year)
	assert.Equal(t, "http://ima.ge/123", track.Artwork.URL)
}
