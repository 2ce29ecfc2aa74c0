package relation

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// minSuggestScore is the lowest Jaro-Winkler similarity reported by Suggest.
const minSuggestScore = 0.85

// Suggestion is the roster title closest to an unmatched title.
type Suggestion struct {
	Title string
	Score float64
}

// Suggest finds the roster title most similar to title. It is used only to
// explain unmatched credits in logs and never affects Build.
func Suggest(title string, roster []string) (Suggestion, bool) {
	needle := strings.ToLower(title)

	var best Suggestion
	for _, candidate := range roster {
		score := float64(edlib.JaroWinklerSimilarity(needle, strings.ToLower(candidate)))
		if score > best.Score {
			best = Suggestion{Title: candidate, Score: score}
		}
	}
	if best.Score < minSuggestScore {
		return Suggestion{}, false
	}
	return best, true
}
