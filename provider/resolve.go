package provider

import (
	"fmt"
	"strings"

	"github.com/streambinder/tracksmith/entity"
)

const (
	// official-track results with a score this high are
	// trusted without issuing the broader video search
	scoreThreshold = 80
	// identifier lookups additionally require a near-exact
	// duration before being accepted blindly
	identifierTimeThreshold = 90
)

// Resolver elects the best upstream source for a track
// through a staged search strategy: exact-identifier
// lookup first, then official tracks, then generic videos.
type Resolver struct {
	searcher Searcher
}

func NewResolver(searcher Searcher) *Resolver {
	return &Resolver{searcher}
}

// Resolve returns the best source for the given track, or
// (nil, nil) when nothing matched. A transport failure on any
// phase aborts resolution with an error: a broken lookup is
// not the same as an empty one.
func (resolver *Resolver) Resolve(track *entity.Track) (*Resolution, error) {
	if track.ISRC != "" {
		resolution, err := resolver.resolveIdentifier(track)
		if err != nil {
			return nil, err
		}
		if resolution != nil {
			return resolution, nil
		}
	}

	query := strings.ToLower(track.SearchQuery())

	// official tracks have higher precision: a confident hit
	// here saves the second round-trip and the rate-limit
	// exposure that comes with it
	songs, err := resolver.searcher.Search(query, KindSong)
	if err != nil {
		return nil, fmt.Errorf("song search: %w", err)
	}
	ranked := Rank(songs, track)
	if len(ranked) > 0 && ranked[0].Score >= scoreThreshold {
		return &Resolution{ranked[0].Candidate.URL, ranked[0].Score}, nil
	}

	videos, err := resolver.searcher.Search(query, KindVideo)
	if err != nil {
		return nil, fmt.Errorf("video search: %w", err)
	}

	merged := merge(ranked, Rank(videos, track))
	if len(merged) == 0 {
		return nil, nil
	}
	return &Resolution{merged[0].Candidate.URL, merged[0].Score}, nil
}

// resolveIdentifier issues an exact-identifier search and
// accepts its result only when unambiguous: a single hit
// whose title equals the track's and whose duration match
// clears a high bar
func (resolver *Resolver) resolveIdentifier(track *entity.Track) (*Resolution, error) {
	candidates, err := resolver.searcher.Search(track.ISRC, KindSong)
	if err != nil {
		return nil, fmt.Errorf("identifier search: %w", err)
	}
	if len(candidates) != 1 {
		return nil, nil
	}

	candidate := candidates[0]
	if candidate.URL == "" || !strings.EqualFold(candidate.Title, track.Title) {
		return nil, nil
	}
	if timeMatch := TimeMatch(candidate, track); timeMatch > identifierTimeThreshold {
		return &Resolution{candidate.URL, timeMatch}, nil
	}
	return nil, nil
}

// merge combines two ranked sets: on URL collision the
// higher score wins, so a strong official-track hit is
// never shadowed by a weaker video one
func merge(first, second []Scored) []Scored {
	var (
		combined []Scored
		position = map[string]int{}
	)
	for _, scored := range append(append([]Scored{}, first...), second...) {
		index, ok := position[scored.Candidate.URL]
		if !ok {
			position[scored.Candidate.URL] = len(combined)
			combined = append(combined, scored)
			continue
		}
		if scored.Score > combined[index].Score {
			combined[index] = scored
		}
	}

	best := 0
	for index, scored := range combined {
		if scored.Score > combined[best].Score {
			best = index
		}
	}
	if len(combined) > 1 && best != 0 {
		combined[0], combined[best] = combined[best], combined[0]
	}
	return combined
}
