package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubSearcher struct {
	calls   []string
	results map[string][]*Candidate
	failure map[string]error
}

func (searcher *stubSearcher) Search(query string, kind Kind) ([]*Candidate, error) {
	key := query
	if kind == KindVideo {
		key = query + "/video"
	}
	searcher.calls = append(searcher.calls, key)
	if err, ok := searcher.failure[key]; ok {
		return nil, err
	}
	return searcher.results[key], nil
}

func TestResolveIdentifier(t *testing.T) {
	subject := track()
	subject.ISRC = "USUG11904206"
	searcher := &stubSearcher{results: map[string][]*Candidate{
		subject.ISRC: {{
			Title:    "blinding lights",
			Artists:  "The Weeknd",
			Duration: 200,
			Kind:     KindSong,
			URL:      "https://youtube.com/watch?v=isrc",
		}},
	}}

	resolution, err := NewResolver(searcher).Resolve(subject)
	assert.Nil(t, err)
	assert.NotNil(t, resolution)
	assert.Equal(t, "https://youtube.com/watch?v=isrc", resolution.URL)
	assert.Equal(t, 100.0, resolution.Score)
	// no fallthrough to the broader search phases
	assert.Equal(t, []string{subject.ISRC}, searcher.calls)
}

func TestResolveIdentifierAmbiguous(t *testing.T) {
	subject := track()
	subject.ISRC = "USUG11904206"
	searcher := &stubSearcher{results: map[string][]*Candidate{
		subject.ISRC: {
			{Title: "blinding lights", Duration: 200, Kind: KindSong, URL: "https://youtube.com/watch?v=1"},
			{Title: "blinding lights", Duration: 200, Kind: KindSong, URL: "https://youtube.com/watch?v=2"},
		},
		"the weeknd - blinding lights": {{
			Title:    "blinding lights",
			Artists:  "The Weeknd",
			Duration: 200,
			Kind:     KindSong,
			URL:      "https://youtube.com/watch?v=song",
		}},
	}}

	resolution, err := NewResolver(searcher).Resolve(subject)
	assert.Nil(t, err)
	assert.NotNil(t, resolution)
	assert.Equal(t, "https://youtube.com/watch?v=song", resolution.URL)
}

func TestResolveIdentifierFailure(t *testing.T) {
	subject := track()
	subject.ISRC = "USUG11904206"
	searcher := &stubSearcher{failure: map[string]error{
		subject.ISRC: errors.New("ko"),
	}}

	resolution, err := NewResolver(searcher).Resolve(subject)
	assert.Nil(t, resolution)
	assert.EqualError(t, err, "identifier search: ko")
	assert.Len(t, searcher.calls, 1)
}

func TestResolveSongPhase(t *testing.T) {
	searcher := &stubSearcher{results: map[string][]*Candidate{
		"the weeknd - blinding lights": {{
			Title:    "blinding lights",
			Artists:  "The Weeknd",
			Duration: 200,
			Kind:     KindSong,
			URL:      "https://youtube.com/watch?v=song",
		}},
	}}

	resolution, err := NewResolver(searcher).Resolve(track())
	assert.Nil(t, err)
	assert.NotNil(t, resolution)
	assert.Equal(t, "https://youtube.com/watch?v=song", resolution.URL)
	// a confident official-track hit saves the video round-trip
	assert.Equal(t, []string{"the weeknd - blinding lights"}, searcher.calls)
}

func TestResolveVideoFallback(t *testing.T) {
	searcher := &stubSearcher{results: map[string][]*Candidate{
		"the weeknd - blinding lights/video": {{
			Title:    "The Weeknd - Blinding Lights (Official Video)",
			Artists:  "TheWeekndVEVO",
			Duration: 201,
			Kind:     KindVideo,
			URL:      "https://youtube.com/watch?v=video",
		}},
	}}

	resolution, err := NewResolver(searcher).Resolve(track())
	assert.Nil(t, err)
	assert.NotNil(t, resolution)
	assert.Equal(t, "https://youtube.com/watch?v=video", resolution.URL)
	assert.Equal(t, []string{
		"the weeknd - blinding lights",
		"the weeknd - blinding lights/video",
	}, searcher.calls)
}

func TestResolveMergePrefersHigherScore(t *testing.T) {
	searcher := &stubSearcher{results: map[string][]*Candidate{
		"the weeknd - blinding lights": {{
			Title:    "blinding lights",
			Artists:  "The Weeknd",
			Duration: 215,
			Kind:     KindSong,
			URL:      "https://youtube.com/watch?v=shared",
		}},
		"the weeknd - blinding lights/video": {{
			Title:    "The Weeknd - Blinding Lights",
			Artists:  "TheWeekndVEVO",
			Duration: 200,
			Kind:     KindVideo,
			URL:      "https://youtube.com/watch?v=shared",
		}},
	}}

	resolution, err := NewResolver(searcher).Resolve(track())
	assert.Nil(t, err)
	assert.NotNil(t, resolution)
	assert.Equal(t, "https://youtube.com/watch?v=shared", resolution.URL)
	assert.Equal(t, 100.0, resolution.Score)
}

func TestResolveNotFound(t *testing.T) {
	searcher := &stubSearcher{}

	resolution, err := NewResolver(searcher).Resolve(track())
	assert.Nil(t, err)
	assert.Nil(t, resolution)
	assert.Len(t, searcher.calls, 2)
}

func TestResolveSongFailure(t *testing.T) {
	searcher := &stubSearcher{failure: map[string]error{
		"the weeknd - blinding lights": errors.New("ko"),
	}}

	resolution, err := NewResolver(searcher).Resolve(track())
	assert.Nil(t, resolution)
	assert.EqualError(t, err, "song search: ko")
}

func TestResolveVideoFailure(t *testing.T) {
	searcher := &stubSearcher{failure: map[string]error{
		"the weeknd - blinding lights/video": errors.New("ko"),
	}}

	resolution, err := NewResolver(searcher).Resolve(track())
	assert.Nil(t, resolution)
	assert.EqualError(t, err, "video search: ko")
}

func TestResolveDeterministic(t *testing.T) {
	searcher := &stubSearcher{results: map[string][]*Candidate{
		"the weeknd - blinding lights/video": {
			{
				Title:    "The Weeknd - Blinding Lights",
				Artists:  "ChannelOne",
				Duration: 200,
				Kind:     KindVideo,
				URL:      "https://youtube.com/watch?v=first",
			},
			{
				Title:    "The Weeknd - Blinding Lights",
				Artists:  "ChannelTwo",
				Duration: 200,
				Kind:     KindVideo,
				URL:      "https://youtube.com/watch?v=second",
			},
		},
	}}

	for iteration := 0; iteration < 5; iteration++ {
		resolution, err := NewResolver(searcher).Resolve(track())
		assert.Nil(t, err)
		assert.NotNil(t, resolution)
		assert.Equal(t, "https://youtube.com/watch?v=first", resolution.URL)
	}
}
