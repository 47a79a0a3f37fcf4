// Package spotify implements the upstream catalog lookup,
// wrapping the Web API behind entity-level accessors. The
// client is explicitly constructed and passed around: no
// package-level singleton, no hidden initialization order.
package spotify

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/streambinder/tracksmith/entity"
)

type Client struct {
	*spotify.Client
}

// Authenticate builds a client through the client-credentials
// flow, reading the application keys from the environment
func Authenticate(ctx context.Context) (*Client, error) {
	var (
		id  = os.Getenv("SPOTIFY_ID")
		key = os.Getenv("SPOTIFY_KEY")
	)
	if id == "" || key == "" {
		return nil, errors.New("SPOTIFY_ID and SPOTIFY_KEY environment variables must be set")
	}

	token, err := (&clientcredentials.Config{
		ClientID:     id,
		ClientSecret: key,
		TokenURL:     spotifyauth.TokenURL,
	}).Token(ctx)
	if err != nil {
		return nil, err
	}

	return &Client{spotify.New(spotifyauth.New().Client(ctx, token))}, nil
}

// Track looks a single track up by ID, URI or share URL
func (client *Client) Track(ctx context.Context, id string) (*entity.Track, error) {
	fullTrack, err := client.GetTrack(ctx, spotify.ID(ID(id)))
	if err != nil {
		return nil, err
	}
	return trackEntity(fullTrack), nil
}

// Album returns every track of the given album
func (client *Client) Album(ctx context.Context, id string) ([]*entity.Track, error) {
	album, err := client.GetAlbum(ctx, spotify.ID(ID(id)))
	if err != nil {
		return nil, err
	}

	var tracks []*entity.Track
	for {
		for index := range album.Tracks.Tracks {
			tracks = append(tracks, albumTrackEntity(&album.Tracks.Tracks[index], &album.SimpleAlbum))
		}
		if err := client.NextPage(ctx, &album.Tracks); errors.Is(err, spotify.ErrNoMorePages) {
			break
		} else if err != nil {
			return nil, err
		}
	}
	return tracks, nil
}

// Playlist returns every track of the given playlist,
// along with the playlist display name
func (client *Client) Playlist(ctx context.Context, id string) (string, []*entity.Track, error) {
	playlist, err := client.GetPlaylist(ctx, spotify.ID(ID(id)))
	if err != nil {
		return "", nil, err
	}

	var tracks []*entity.Track
	for {
		for index := range playlist.Tracks.Tracks {
			tracks = append(tracks, trackEntity(&playlist.Tracks.Tracks[index].Track))
		}
		if err := client.NextPage(ctx, &playlist.Tracks); errors.Is(err, spotify.ErrNoMorePages) {
			break
		} else if err != nil {
			return "", nil, err
		}
	}
	return playlist.Name, tracks, nil
}

// ID extracts the bare resource identifier out of
// share URLs ("https://open.spotify.com/track/<id>?si=..."),
// URIs ("spotify:track:<id>") and plain identifiers alike
func ID(resource string) string {
	resource = strings.TrimSpace(resource)
	if index := strings.LastIndex(resource, ":"); index >= 0 {
		resource = resource[index+1:]
	}
	if index := strings.LastIndex(resource, "/"); index >= 0 {
		resource = resource[index+1:]
	}
	if index := strings.Index(resource, "?"); index >= 0 {
		resource = resource[:index]
	}
	return resource
}

func trackEntity(fullTrack *spotify.FullTrack) *entity.Track {
	track := &entity.Track{
		ID:       fullTrack.ID.String(),
		ISRC:     fullTrack.ExternalIDs["isrc"],
		Title:    fullTrack.Name,
		Album:    fullTrack.Album.Name,
		Duration: int(fullTrack.Duration) / 1000,
		Number:   int(fullTrack.TrackNumber),
		Year:     releaseYear(fullTrack.Album.ReleaseDate),
	}
	for _, artist := range fullTrack.Artists {
		track.Artists = append(track.Artists, artist.Name)
	}
	if len(fullTrack.Album.Images) > 0 {
		track.Artwork.URL = fullTrack.Album.Images[0].URL
	}
	return track
}

func albumTrackEntity(simpleTrack *spotify.SimpleTrack, album *spotify.SimpleAlbum) *entity.Track {
	track := &entity.Track{
		ID:       simpleTrack.ID.String(),
		Title:    simpleTrack.Name,
		Album:    album.Name,
		Duration: int(simpleTrack.Duration) / 1000,
		Number:   int(simpleTrack.TrackNumber),
		Year:     releaseYear(album.ReleaseDate),
	}
	for _, artist := range simpleTrack.Artists {
		track.Artists = append(track.Artists, artist.Name)
	}
	if len(album.Images) > 0 {
		track.Artwork.URL = album.Images[0].URL
	}
	return track
}

func releaseYear(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}
