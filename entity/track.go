package entity

import (
	"fmt"
	"path"
	"strings"

	"github.com/gosimple/slug"
	"github.com/streambinder/tracksmith/util"
)

type Artwork struct {
	URL  string
	Data []byte
}

type Track struct {
	ID          string
	ISRC        string // universal recording identifier, if any
	Title       string
	Artists     []string
	Album       string
	Artwork     Artwork
	Duration    int // in seconds
	Lyrics      string
	Number      int // track number within the album
	Year        int
	UpstreamURL string // URL to the upstream blob the song's been downloaded from
}

type TrackPath struct {
	track *Track
}

const (
	DefaultFormat = "mp3"
	ArtworkFormat = "jpg"
	LyricsFormat  = "txt"
)

// certain track titles include the variant description,
// this functions aims to strip out that part:
// > Title: Name - Acoustic
// > Song:  Name
func (track *Track) Song() (song string) {
	// it can very easily happen to encounter tracks
	// that contains artifacts in the title which do not
	// really define them as songs, rather indicate
	// the variant of the song
	song = track.Title
	song = strings.Split(song+" - ", " - ")[0]
	song = strings.Split(song+" (", " (")[0]
	song = strings.Split(song+" [", " [")[0]
	return
}

// SearchQuery composes the "artists - title" form
// used to look the track up on upstream providers
func (track *Track) SearchQuery() string {
	if len(track.Artists) == 0 {
		return track.Title
	}
	return fmt.Sprintf("%s - %s", strings.Join(track.Artists, ", "), track.Title)
}

func (track *Track) Path() TrackPath {
	return TrackPath{track}
}

// Final returns the name the track file goes
// by once installed in the output directory:
// "Artist - Title (Remix Info) (ft Other1, Other2).ext"
func (trackPath TrackPath) Final(format string) string {
	title := trackPath.track.Title
	if index := strings.Index(title, " - "); index > 0 {
		baseName := strings.TrimSpace(title[:index])
		remixInfo := strings.TrimSpace(title[index+3:])
		title = fmt.Sprintf("%s (%s)", baseName, remixInfo)
	}

	// tracks with no artist at all still deserve a file name
	if len(trackPath.track.Artists) == 0 {
		return util.LegalizeFilename(fmt.Sprintf("%s.%s", title, format))
	}
	primaryArtist := strings.ReplaceAll(trackPath.track.Artists[0], ".", "")

	if len(trackPath.track.Artists) > 1 {
		featuredArtists := make([]string, 0, len(trackPath.track.Artists)-1)
		for _, artist := range trackPath.track.Artists[1:] {
			featuredArtists = append(featuredArtists, strings.ReplaceAll(artist, ".", ""))
		}
		title = fmt.Sprintf("%s (ft %s)", title, strings.Join(featuredArtists, ", "))
	}

	return util.LegalizeFilename(fmt.Sprintf("%s - %s.%s", primaryArtist, title, format))
}

// Download returns the temporary path the track blob
// gets fetched to, unique per track identifier so that
// concurrent downloads never contend on the same file
func (trackPath TrackPath) Download(format string) string {
	return util.CacheFile(
		util.LegalizeFilename(fmt.Sprintf("%s.%s", slug.Make(trackPath.track.ID), format)),
	)
}

func (trackPath TrackPath) Artwork() string {
	return util.CacheFile(
		util.LegalizeFilename(fmt.Sprintf("%s.%s", slug.Make(path.Base(trackPath.track.Artwork.URL)), ArtworkFormat)),
	)
}

func (trackPath TrackPath) Lyrics() string {
	return util.CacheFile(
		util.LegalizeFilename(fmt.Sprintf("%s.%s", slug.Make(trackPath.track.ID), LyricsFormat)),
	)
}
