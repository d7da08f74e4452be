package vocab

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// codesForTokens builds one phonetic code set covering every token of a
// surface form. A multi-word alias like "zoll off" therefore matches on
// any of its words' codes, which is what lets a two-word misrecognition
// land on a one-word drug name.
func codesForTokens(tokens []string) map[string]struct{} {
	codes := make(map[string]struct{}, len(tokens)*2)
	for _, t := range tokens {
		p, s := matchr.DoubleMetaphone(t)
		if p != "" {
			codes[p] = struct{}{}
		}
		if s != "" {
			codes[s] = struct{}{}
		}
	}
	return codes
}

func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}

// bestJWScore scores a span against an alias. Word boundaries in speech
// recognition output are unreliable, so three comparisons run and the
// best wins: the raw strings, the strings with spaces removed (catches
// "met form in" for "metformin"), and every span-token against every
// alias-token (catches a single misheard word inside a longer span).
func bestJWScore(spanTokens, aliasTokens []string, spanFull, aliasFull string) float64 {
	score := matchr.JaroWinkler(spanFull, aliasFull, false)

	if len(spanTokens) > 1 || len(aliasTokens) > 1 {
		concat1 := strings.Join(spanTokens, "")
		concat2 := strings.Join(aliasTokens, "")
		if s := matchr.JaroWinkler(concat1, concat2, false); s > score {
			score = s
		}
	}

	for _, st := range spanTokens {
		for _, at := range aliasTokens {
			if s := matchr.JaroWinkler(st, at, false); s > score {
				score = s
			}
		}
	}

	return score
}
