// Package id3 wraps bogem/id3v2 tags with the
// custom frames the application relies upon.
package id3

import (
	"github.com/bogem/id3v2/v2"
)

const (
	frameSpotifyID   = "Spotify ID"
	frameArtworkURL  = "Artwork URL"
	frameUpstreamURL = "Upstream URL"
	frameDuration    = "Duration"
)

type Tag struct {
	*id3v2.Tag
}

func Open(path string, options id3v2.Options) (*Tag, error) {
	tag, err := id3v2.Open(path, options)
	if err != nil {
		return nil, err
	}
	return &Tag{tag}, nil
}

func (tag *Tag) userDefinedText(description string) string {
	for _, frame := range tag.GetFrames(tag.CommonID("User defined text information frame")) {
		userDefinedText, ok := frame.(id3v2.UserDefinedTextFrame)
		if !ok {
			continue
		}
		if userDefinedText.Description == description {
			return userDefinedText.Value
		}
	}
	return ""
}

func (tag *Tag) setUserDefinedText(description, value string) {
	tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    id3v2.EncodingUTF8,
		Description: description,
		Value:       value,
	})
}

func (tag *Tag) SpotifyID() string {
	return tag.userDefinedText(frameSpotifyID)
}

func (tag *Tag) SetSpotifyID(id string) {
	tag.setUserDefinedText(frameSpotifyID, id)
}

func (tag *Tag) SetArtworkURL(url string) {
	tag.setUserDefinedText(frameArtworkURL, url)
}

func (tag *Tag) SetUpstreamURL(url string) {
	tag.setUserDefinedText(frameUpstreamURL, url)
}

func (tag *Tag) SetDuration(duration string) {
	tag.setUserDefinedText(frameDuration, duration)
}

func (tag *Tag) SetTrackNumber(number string) {
	tag.AddTextFrame(tag.CommonID("Track number/Position in set"), id3v2.EncodingUTF8, number)
}

func (tag *Tag) SetAttachedPicture(data []byte) {
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Front cover",
		Picture:     data,
	})
}

func (tag *Tag) SetUnsynchronizedLyrics(lyrics string) {
	if lyrics == "" {
		return
	}
	tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
		Encoding:          id3v2.EncodingUTF8,
		Language:          "eng",
		ContentDescriptor: "Lyrics",
		Lyrics:            lyrics,
	})
}
