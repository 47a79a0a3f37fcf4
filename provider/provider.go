// Package provider selects the most likely upstream audio
// source for a track, scoring fuzzy search results against
// the track metadata.
package provider

// Kind is the category a search result belongs to:
// official tracks are scored with higher precision
// than generic videos.
type Kind int

const (
	KindSong Kind = iota
	KindVideo
)

// Candidate is a single raw search hit, as
// returned by an upstream search provider
type Candidate struct {
	Title    string
	Artists  string // artist names as a single string, as reported upstream
	Album    string
	Duration int // in seconds
	Kind     Kind
	URL      string
}

// Scored pairs a candidate with its match
// score against a given track
type Scored struct {
	Candidate *Candidate
	Score     float64
}

// Resolution points at the upstream source
// elected as best match for a track
type Resolution struct {
	URL   string
	Score float64
}

// Searcher is the upstream search contract: an empty
// result list is a legitimate outcome, while transport
// failures must surface as errors
type Searcher interface {
	Search(query string, kind Kind) ([]*Candidate, error)
}
