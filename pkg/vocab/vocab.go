// Package vocab implements phonetic matching over a clinician's custom
// vocabulary using Double Metaphone encoding combined with Jaro-Winkler
// string similarity.
//
// The engine serves three call sites in the surrounding application:
//
//  1. Insert-time validation: [FindCollision] detects when a new term is
//     phonetically indistinguishable from one already saved, so the
//     settings layer can reject near-duplicates before they degrade
//     recognition.
//  2. Transcript correction: [Matcher.CorrectTranscript] replaces
//     misrecognized spans in transcript text with the canonical term,
//     testing both the term itself and its declared sound-alike variants,
//     longest n-gram first.
//  3. Keyword-boost export: [KeywordBoosts] renders entries in the
//     "term:intensifier" form speech-to-text keyword boosting expects.
//
// All functions are pure and safe for concurrent use.
package vocab

import (
	"strconv"
	"strings"

	"github.com/emberhealth/notekit/pkg/notes"
)

const (
	defaultPhoneticThreshold = 0.70
	defaultFuzzyThreshold    = 0.85

	// boostedThresholdDelta is subtracted from the phonetic threshold once
	// per intensifier step above 1, capped at intensifier 3. A strongly
	// boosted term is accepted on weaker evidence.
	boostedThresholdDelta = 0.05

	maxBoostIntensifier = 3
)

// Option is a functional option for configuring a [Matcher].
type Option func(*Matcher)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score required for a
// phonetically-matched term to be accepted. Default: 0.70.
func WithPhoneticThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.phoneticThreshold = threshold
	}
}

// WithFuzzyThreshold sets the minimum Jaro-Winkler score required when no
// phonetic match is found and the matcher falls back to pure string
// similarity. Default: 0.85.
func WithFuzzyThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.fuzzyThreshold = threshold
	}
}

// Matcher matches spoken spans against a custom vocabulary. Read-only
// after construction and safe for concurrent use.
type Matcher struct {
	phoneticThreshold float64
	fuzzyThreshold    float64
}

// New returns a [Matcher] configured with the supplied options.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Correction records a single span substitution made by
// [Matcher.CorrectTranscript].
type Correction struct {
	// Original is the span as it appeared in the transcript.
	Original string

	// Corrected is the canonical vocabulary term that replaced it.
	Corrected string

	// Confidence is the Jaro-Winkler similarity of the accepted match.
	Confidence float64
}

// alias is one searchable surface form of a vocabulary entry: the term
// itself or one of its declared sound-alike variants.
type alias struct {
	entry  notes.VocabularyEntry
	tokens []string
	full   string
	codes  map[string]struct{}
}

// prepare expands entries into their alias forms with phonetic codes
// precomputed. Entries with empty terms are skipped.
func prepare(entries []notes.VocabularyEntry) []alias {
	aliases := make([]alias, 0, len(entries))
	for _, e := range entries {
		surfaces := append([]string{e.Term}, e.SoundsLike...)
		for _, s := range surfaces {
			lower := strings.ToLower(strings.TrimSpace(s))
			if lower == "" {
				continue
			}
			tokens := strings.Fields(lower)
			aliases = append(aliases, alias{
				entry:  e,
				tokens: tokens,
				full:   lower,
				codes:  codesForTokens(tokens),
			})
		}
	}
	return aliases
}

// maxAliasWords returns the largest token count across all aliases.
// Returns 0 when there are no aliases.
func maxAliasWords(aliases []alias) int {
	max := 0
	for _, a := range aliases {
		if len(a.tokens) > max {
			max = len(a.tokens)
		}
	}
	return max
}

// Match tests a single span against the vocabulary. When matched is true,
// corrected holds the canonical term (never a sound-alike variant) and
// confidence the accepted similarity score. When matched is false,
// corrected equals span unchanged and confidence is 0.
func (m *Matcher) Match(span string, entries []notes.VocabularyEntry) (corrected string, confidence float64, matched bool) {
	return m.match(span, prepare(entries))
}

func (m *Matcher) match(span string, aliases []alias) (string, float64, bool) {
	spanLower := strings.ToLower(strings.TrimSpace(span))
	if spanLower == "" || len(aliases) == 0 {
		return span, 0, false
	}
	spanTokens := strings.Fields(spanLower)
	spanCodes := codesForTokens(spanTokens)

	type candidate struct {
		term     string
		score    float64
		phonetic bool
	}
	var best candidate

	for _, a := range aliases {
		// An exact (case-insensitive) hit on the canonical term is not a
		// correction at all.
		if spanLower == strings.ToLower(a.entry.Term) {
			return span, 0, false
		}

		jwScore := bestJWScore(spanTokens, a.tokens, spanLower, a.full)

		if codesOverlap(spanCodes, a.codes) {
			if jwScore >= m.acceptThreshold(a.entry) {
				if !best.phonetic || jwScore > best.score {
					best = candidate{term: a.entry.Term, score: jwScore, phonetic: true}
				}
			}
		} else if !best.phonetic {
			if jwScore >= m.fuzzyThreshold && jwScore > best.score {
				best = candidate{term: a.entry.Term, score: jwScore, phonetic: false}
			}
		}
	}

	if best.term != "" {
		return best.term, best.score, true
	}
	return span, 0, false
}

// acceptThreshold lowers the phonetic threshold for boosted entries.
func (m *Matcher) acceptThreshold(e notes.VocabularyEntry) float64 {
	intensifier := e.Intensifier
	if intensifier < 1 {
		intensifier = 1
	}
	if intensifier > maxBoostIntensifier {
		intensifier = maxBoostIntensifier
	}
	return m.phoneticThreshold - float64(intensifier-1)*boostedThresholdDelta
}

// CorrectTranscript replaces misrecognized spans in text with canonical
// vocabulary terms and returns the corrected text plus the corrections
// applied, in input order.
//
// The scan walks whitespace tokens with a forward cursor, trying n-gram
// windows from the widest alias down to a single token at each position,
// so multi-word sound-alikes ("zoll off") take precedence over partial
// single-word matches. The corrections slice is never nil.
func (m *Matcher) CorrectTranscript(text string, entries []notes.VocabularyEntry) (string, []Correction) {
	corrections := []Correction{}

	tokens := strings.Fields(text)
	aliases := prepare(entries)
	maxWords := maxAliasWords(aliases)
	if len(tokens) == 0 || maxWords == 0 {
		return text, corrections
	}

	var output []string
	i := 0
	for i < len(tokens) {
		maxN := maxWords
		if i+maxN > len(tokens) {
			maxN = len(tokens) - i
		}

		matched := false
		for n := maxN; n >= 1; n-- {
			window := strings.Join(tokens[i:i+n], " ")
			term, conf, ok := m.match(window, aliases)
			if !ok {
				continue
			}
			output = append(output, strings.Fields(term)...)
			corrections = append(corrections, Correction{
				Original:   window,
				Corrected:  term,
				Confidence: conf,
			})
			i += n
			matched = true
			break
		}

		if !matched {
			output = append(output, tokens[i])
			i++
		}
	}

	return strings.Join(output, " "), corrections
}

// Collides reports whether two entries are phonetically indistinguishable:
// their terms share a Double Metaphone code and score at least the default
// fuzzy threshold on Jaro-Winkler, or are equal ignoring case.
func Collides(a, b notes.VocabularyEntry) bool {
	aLower := strings.ToLower(strings.TrimSpace(a.Term))
	bLower := strings.ToLower(strings.TrimSpace(b.Term))
	if aLower == "" || bLower == "" {
		return false
	}
	if aLower == bLower {
		return true
	}
	aTokens := strings.Fields(aLower)
	bTokens := strings.Fields(bLower)
	if !codesOverlap(codesForTokens(aTokens), codesForTokens(bTokens)) {
		return false
	}
	return bestJWScore(aTokens, bTokens, aLower, bLower) >= defaultFuzzyThreshold
}

// FindCollision returns the first existing entry that [Collides] with
// candidate. The second return is false when no collision exists.
func FindCollision(candidate notes.VocabularyEntry, existing []notes.VocabularyEntry) (notes.VocabularyEntry, bool) {
	for _, e := range existing {
		if Collides(candidate, e) {
			return e, true
		}
	}
	return notes.VocabularyEntry{}, false
}

// KeywordBoosts renders entries for speech-to-text keyword boosting.
// Entries with intensifier 2 or higher emit "term:intensifier"; an
// intensifier of 1 (or unset) emits the bare term. Empty terms are skipped.
func KeywordBoosts(entries []notes.VocabularyEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		term := strings.TrimSpace(e.Term)
		if term == "" {
			continue
		}
		if e.Intensifier >= 2 {
			out = append(out, term+":"+strconv.Itoa(e.Intensifier))
			continue
		}
		out = append(out, term)
	}
	return out
}
