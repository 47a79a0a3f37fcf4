package provider

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/gosimple/slug"
	"github.com/streambinder/tracksmith/entity"
)

const (
	artistMatchThreshold = 70
	nameMatchThreshold   = 50
	albumSelfReference   = 95
)

// similarity is a levenshtein-based percentage
// in [0, 100] between two strings
func similarity(first, second string) float64 {
	if first == second {
		return 100
	}

	longest := len([]rune(first))
	if length := len([]rune(second)); length > longest {
		longest = length
	}
	if longest == 0 {
		return 100
	}

	distance := levenshtein.ComputeDistance(first, second)
	return float64(longest-distance) / float64(longest) * 100
}

// matchPercentage measures how well the shorter string
// matches within the longer one, sliding a window over
// it and keeping the best alignment: "blinding-lights"
// scores 100 against "the-weeknd-blinding-lights"
func matchPercentage(first, second string) float64 {
	needle, haystack := first, second
	if len(needle) > len(haystack) {
		needle, haystack = haystack, needle
	}

	if needle == "" {
		if haystack == "" {
			return 100
		}
		return 0
	}
	if strings.Contains(haystack, needle) {
		return 100
	}

	best := similarity(needle, haystack)
	for offset := 0; offset+len(needle) <= len(haystack); offset++ {
		if score := similarity(needle, haystack[offset:offset+len(needle)]); score > best {
			best = score
		}
	}
	return best
}

// TimeMatch computes the duration-match term: 100 minus a
// quadratic penalty normalized by the track duration. It can
// go negative for large mismatches, which callers must accept
// as "very poor but not rejected". A non-positive track
// duration violates the scoring precondition and floors the
// term to zero rather than dividing by it.
func TimeMatch(candidate *Candidate, track *entity.Track) float64 {
	if track.Duration <= 0 {
		return 0
	}
	delta := float64(candidate.Duration - track.Duration)
	return 100 - (delta*delta)/float64(track.Duration)*100
}

// Score computes the overall match confidence between a
// candidate and a track, in a 0-100-ish range. The boolean
// reports whether the candidate passed the rejection gates
// at all: gated-out candidates are excluded from ranking
// altogether rather than scored zero.
func Score(candidate *Candidate, track *entity.Track) (float64, bool) {
	if track.Duration <= 0 || len(track.Artists) == 0 {
		return 0, false
	}

	var (
		slugTitle  = slug.Make(track.Title)
		slugResult = slug.Make(candidate.Title)
	)

	// reject candidates sharing no word with the track title
	common := false
	for _, word := range strings.Split(strings.ReplaceAll(slugTitle, "-", " "), " ") {
		if word != "" && strings.Contains(slugResult, word) {
			common = true
			break
		}
	}
	if !common {
		return 0, false
	}

	var artistMatch float64
	if candidate.Kind == KindSong {
		for _, artist := range track.Artists {
			artistMatch += matchPercentage(slug.Make(artist), slug.Make(candidate.Artists))
		}
	} else {
		// videos rarely carry a proper artist field: match against
		// the title first, then fall back to the channel name
		for _, artist := range track.Artists {
			artistMatch += matchPercentage(slug.Make(artist), slugResult)
		}
		if artistMatch == 0 {
			for _, artist := range track.Artists {
				artistMatch += matchPercentage(slug.Make(artist), slug.Make(candidate.Artists))
			}
		}
	}
	artistMatch /= float64(len(track.Artists))
	if artistMatch < artistMatchThreshold {
		return 0, false
	}

	var nameMatch float64
	if candidate.Kind == KindSong {
		nameMatch = matchPercentage(slugResult, slugTitle)
	} else {
		nameMatch = matchPercentage(slugResult, slug.Make(track.SearchQuery()))
	}
	if nameMatch < nameMatchThreshold {
		return 0, false
	}

	timeMatch := TimeMatch(candidate, track)

	// album semantics only apply to official tracks; a candidate
	// whose own title near-matches its claimed album while that
	// album differs from the track's is a spurious self-reference
	// and the album term gets discarded
	if candidate.Kind == KindSong && candidate.Album != "" && track.Album != "" {
		selfReferential := matchPercentage(strings.ToLower(candidate.Album), strings.ToLower(candidate.Title)) > albumSelfReference &&
			!strings.EqualFold(candidate.Album, track.Album)
		if !selfReferential {
			albumMatch := matchPercentage(slug.Make(candidate.Album), slug.Make(track.Album))
			return (artistMatch + albumMatch + nameMatch + timeMatch) / 4, true
		}
	}

	return (artistMatch + nameMatch + timeMatch) / 3, true
}

// Rank filters and orders candidates by match score,
// descending. The sort is stable, so ties preserve the
// original candidate order and ranking stays deterministic
// for identical inputs.
func Rank(candidates []*Candidate, track *entity.Track) []Scored {
	var scored []Scored
	for _, candidate := range candidates {
		if candidate.URL == "" {
			continue
		}
		if score, ok := Score(candidate, track); ok {
			scored = append(scored, Scored{candidate, score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
