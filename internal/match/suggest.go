package match

import (
	"sort"

	"visibility-mapper/internal/common"
)

// MinSuggestionScore is the lowest similarity still offered as a suggestion.
const MinSuggestionScore = 0.5

// Suggestion is a known key ranked against an unknown one.
type Suggestion struct {
	Key   string
	Score float64
}

// Suggestions is a list of ranked suggestions, best first.
type Suggestions []Suggestion

// Keys returns the suggested keys in rank order.
func (s Suggestions) Keys() []string {
	keys := make([]string, len(s))
	for i := range s {
		keys[i] = s[i].Key
	}

	return keys
}

// Suggest ranks known keys by similarity to key and returns at most limit
// of them scoring at least MinSuggestionScore. A negative limit means no limit.
func Suggest(key string, known []string, limit int) Suggestions {
	target := NormalizeIdent(key)

	var out Suggestions
	for _, k := range known {
		score := Similarity(target, NormalizeIdent(k))
		if score < MinSuggestionScore {
			continue
		}

		out = append(out, Suggestion{Key: k, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}

		return out[i].Key < out[j].Key
	})

	return common.Take(out, limit)
}
