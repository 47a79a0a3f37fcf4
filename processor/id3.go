package processor

import (
	"strconv"

	"github.com/bogem/id3v2/v2"

	"github.com/streambinder/tracksmith/entity"
	"github.com/streambinder/tracksmith/entity/id3"
)

// id3Embedder writes ID3v2 frames into MP3 files
type id3Embedder struct{}

func (id3Embedder) Embed(path string, track *entity.Track, lyrics string) error {
	tag, err := id3.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetTitle(track.Title)
	if len(track.Artists) > 0 {
		tag.SetArtist(track.Artists[0])
	}
	tag.SetAlbum(track.Album)
	tag.SetSpotifyID(track.ID)
	tag.SetDuration(strconv.Itoa(track.Duration))
	tag.SetTrackNumber(strconv.Itoa(track.Number))
	if track.Year > 0 {
		tag.SetYear(strconv.Itoa(track.Year))
	}
	if track.UpstreamURL != "" {
		tag.SetUpstreamURL(track.UpstreamURL)
	}
	if track.Artwork.URL != "" {
		tag.SetArtworkURL(track.Artwork.URL)
	}
	if len(track.Artwork.Data) > 0 {
		tag.SetAttachedPicture(track.Artwork.Data)
	}
	tag.SetUnsynchronizedLyrics(lyrics)

	return tag.Save()
}
