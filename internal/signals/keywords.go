package signals

import (
	"strings"
	"unicode"
)

// Keywords ending in '*' match any word starting with the stem; the rest
// match whole words only ("ban" must not hit "bank").
var (
	bullishKeywords = []string{
		"surge*", "rally*", "rallie*", "bull*", "buy*", "gain*", "record*",
		"inflow*", "moon*", "soar*", "breakout*", "adopt*", "pump*",
		"rise", "rises", "rising", "high", "highs", "approv*",
	}
	bearishKeywords = []string{
		"plunge*", "crash*", "collapse*", "hack*", "bear*", "dump*", "sell*",
		"drop*", "fall*", "threat*", "fraud*", "lawsuit*", "outflow*", "liquidat*",
		"ban", "bans", "banned", "fear", "fears",
	}
)

// ScoreText returns +1 for a bullish text, -1 for a bearish one and 0 when it
// has neither or both.
func ScoreText(text string) int {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	bullish := containsKeyword(words, bullishKeywords)
	bearish := containsKeyword(words, bearishKeywords)
	switch {
	case bullish && !bearish:
		return 1
	case bearish && !bullish:
		return -1
	default:
		return 0
	}
}

// ScoreHeadlines is the mean text score clamped to [-1,1]; 0 for no texts.
func ScoreHeadlines(texts []string) float64 {
	if len(texts) == 0 {
		return 0
	}
	var score int
	for _, t := range texts {
		score += ScoreText(t)
	}
	return clamp(float64(score)/float64(len(texts)), -1, 1)
}

func containsKeyword(words, keywords []string) bool {
	for _, w := range words {
		for _, kw := range keywords {
			if stem, ok := strings.CutSuffix(kw, "*"); ok {
				if strings.HasPrefix(w, stem) {
					return true
				}
			} else if w == kw {
				return true
			}
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
