package provider

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	jsoniter "github.com/json-iterator/go"
)

var youTubeBaseURL = "https://www.youtube.com"

const (
	payloadPrefix = "var ytInitialData = "
	topicSuffix   = " - Topic"
)

// YouTube searches the YouTube results page, scraping the
// embedded ytInitialData payload. Results published on
// auto-generated "- Topic" channels carry official track
// semantics and map to KindSong, everything else to KindVideo.
type YouTube struct {
	client *http.Client
}

func NewYouTube() *YouTube {
	return &YouTube{http.DefaultClient}
}

func (youTube *YouTube) Search(query string, kind Kind) ([]*Candidate, error) {
	response, err := youTube.client.Get(
		fmt.Sprintf("%s/results?search_query=%s", youTubeBaseURL, url.QueryEscape(query)))
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube search responded with %d", response.StatusCode)
	}

	document, err := goquery.NewDocumentFromReader(response.Body)
	if err != nil {
		return nil, err
	}

	var payload string
	document.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := script.Text()
		index := strings.Index(text, payloadPrefix)
		if index < 0 {
			return true
		}
		payload = strings.TrimSuffix(strings.TrimSpace(text[index+len(payloadPrefix):]), ";")
		return false
	})
	if payload == "" {
		return nil, errors.New("no result payload in youtube response")
	}

	return parseResults(payload, kind), nil
}

func parseResults(payload string, kind Kind) []*Candidate {
	var (
		candidates []*Candidate
		sections   = jsoniter.Get([]byte(payload),
			"contents", "twoColumnSearchResultsRenderer", "primaryContents",
			"sectionListRenderer", "contents")
	)
	for sectionIndex := 0; sectionIndex < sections.Size(); sectionIndex++ {
		entries := sections.Get(sectionIndex, "itemSectionRenderer", "contents")
		for entryIndex := 0; entryIndex < entries.Size(); entryIndex++ {
			renderer := entries.Get(entryIndex, "videoRenderer")

			id := renderer.Get("videoId").ToString()
			if id == "" {
				continue
			}

			candidate := &Candidate{
				Title:    renderer.Get("title", "runs", 0, "text").ToString(),
				Artists:  renderer.Get("ownerText", "runs", 0, "text").ToString(),
				Duration: parseDuration(renderer.Get("lengthText", "simpleText").ToString()),
				Kind:     KindVideo,
				URL:      fmt.Sprintf("%s/watch?v=%s", youTubeBaseURL, id),
			}
			if strings.HasSuffix(candidate.Artists, topicSuffix) {
				candidate.Kind = KindSong
				candidate.Artists = strings.TrimSuffix(candidate.Artists, topicSuffix)
			}

			if kind == KindSong && candidate.Kind != KindSong {
				continue
			}
			candidates = append(candidates, candidate)
		}
	}
	return candidates
}
