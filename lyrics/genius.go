package lyrics

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	jsoniter "github.com/json-iterator/go"

	"github.com/streambinder/tracksmith/entity"
)

var geniusBaseURL = "https://api.genius.com"

// genius resolves lyrics through the Genius API: search for
// the song, fetch its page, scrape the lyrics containers.
// It needs a GENIUS_TOKEN in the environment and quietly
// steps aside when none is set.
type genius struct{}

func (genius) Name() string {
	return "genius"
}

func (provider genius) Lyrics(track *entity.Track) (string, error) {
	token := os.Getenv("GENIUS_TOKEN")
	if token == "" {
		return "", nil
	}
	headers := map[string]string{"Authorization": "Bearer " + token}

	// variant suffixes ("- Acoustic", "(Live)") only hurt
	// lyrics lookups: query by the bare song name
	query := url.QueryEscape(fmt.Sprintf("%s %s", track.Song(), queryArtists(track)))
	searchBody, err := request(fmt.Sprintf("%s/search?q=%s", geniusBaseURL, query), headers)
	if err != nil {
		return "", err
	}

	songID := jsoniter.Get(searchBody, "response", "hits", 0, "result", "id").ToInt()
	if songID == 0 {
		return "", nil
	}

	songBody, err := request(fmt.Sprintf("%s/songs/%d", geniusBaseURL, songID), headers)
	if err != nil {
		return "", err
	}

	songURL := jsoniter.Get(songBody, "response", "song", "url").ToString()
	if songURL == "" {
		return "", nil
	}

	pageBody, err := request(songURL, headers)
	if err != nil {
		return "", err
	}

	return scrapeGeniusPage(string(pageBody))
}

func scrapeGeniusPage(page string) (string, error) {
	document, err := goquery.NewDocumentFromReader(
		strings.NewReader(strings.ReplaceAll(page, "<br/>", "\n")))
	if err != nil {
		return "", err
	}

	if lyrics := document.Find("div.lyrics").First(); lyrics.Length() > 0 {
		return strings.TrimSpace(lyrics.Text()), nil
	}

	var chunks []string
	document.Find("div[class^=Lyrics__Container]").Each(func(_ int, container *goquery.Selection) {
		chunks = append(chunks, container.Text())
	})
	return strings.TrimSpace(strings.Join(chunks, "\n")), nil
}
