package lyrics

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/streambinder/tracksmith/entity"
)

var musixmatchBaseURL = "https://www.musixmatch.com"

// musixmatch scrapes lyrics off the Musixmatch search pages,
// falling back to the tracks-only page when the all-results
// one comes back empty
type musixmatch struct{}

func (musixmatch) Name() string {
	return "musixmatch"
}

func (provider musixmatch) Lyrics(track *entity.Track) (string, error) {
	return provider.lyrics(track, false)
}

func (provider musixmatch) lyrics(track *entity.Track, trackSearch bool) (string, error) {
	query := url.QueryEscape(fmt.Sprintf("%s - %s", track.Song(), queryArtists(track)))
	if trackSearch {
		query += "/tracks"
	}

	searchBody, err := request(fmt.Sprintf("%s/search/%s", musixmatchBaseURL, query), nil)
	if err != nil {
		return "", err
	}

	searchDocument, err := goquery.NewDocumentFromReader(strings.NewReader(string(searchBody)))
	if err != nil {
		return "", err
	}

	songAnchor := searchDocument.Find("a[href^='/lyrics/']").First()
	if songAnchor.Length() == 0 {
		if trackSearch {
			return "", nil
		}
		return provider.lyrics(track, true)
	}

	href, _ := songAnchor.Attr("href")
	pageBody, err := request(musixmatchBaseURL+href, nil)
	if err != nil {
		return "", err
	}

	pageDocument, err := goquery.NewDocumentFromReader(strings.NewReader(string(pageBody)))
	if err != nil {
		return "", err
	}

	var chunks []string
	pageDocument.Find("p.mxm-lyrics__content").Each(func(_ int, paragraph *goquery.Selection) {
		chunks = append(chunks, paragraph.Text())
	})
	return strings.TrimSpace(strings.Join(chunks, "\n")), nil
}
