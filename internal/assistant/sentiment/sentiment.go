// Package sentiment scores text polarity with a fixed financial-news lexicon.
// Scores live in [-1, 1]; classification uses strict ±0.1 thresholds.
package sentiment

import (
	"regexp"
	"strings"
)

// Classification thresholds. Both boundary values classify as neutral.
const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1
)

// Sentiment class labels.
const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
)

var (
	htmlTagRe = regexp.MustCompile(`<[^>]*>`)
	wordRe    = regexp.MustCompile(`[\p{L}]+`)
)

// Turkish and English financial-news polarity lexicon. Weights are word
// polarities in [-1, 1]; the text score is their average over matches.
var lexicon = map[string]float64{
	// positive
	"yükseliş":    0.7,
	"yükseldi":    0.6,
	"yükselir":    0.5,
	"artış":       0.6,
	"arttı":       0.5,
	"kazanç":      0.6,
	"kâr":         0.6,
	"kar":         0.4,
	"rekor":       0.8,
	"büyüme":      0.6,
	"güçlü":       0.5,
	"olumlu":      0.6,
	"başarı":      0.6,
	"başarılı":    0.6,
	"yatırım":     0.2,
	"anlaşma":     0.3,
	"temettü":     0.4,
	"alım":        0.3,
	"toparlanma":  0.5,
	"iyileşme":    0.5,
	"fırsat":      0.4,
	"prim":        0.4,
	"zirve":       0.7,
	"gain":        0.6,
	"growth":      0.6,
	"profit":      0.6,
	"record":      0.7,
	"strong":      0.5,
	"positive":    0.6,
	"rally":       0.7,
	"upgrade":     0.6,
	"surge":       0.7,
	"beat":        0.5,

	// negative
	"düşüş":       -0.7,
	"düştü":       -0.6,
	"düşer":       -0.5,
	"kayıp":       -0.6,
	"zarar":       -0.7,
	"gerileme":    -0.6,
	"geriledi":    -0.5,
	"kriz":        -0.8,
	"risk":        -0.4,
	"zayıf":       -0.5,
	"olumsuz":     -0.6,
	"endişe":      -0.5,
	"belirsizlik": -0.5,
	"satış baskısı": -0.6,
	"iflas":       -0.9,
	"ceza":        -0.6,
	"soruşturma":  -0.5,
	"dava":        -0.4,
	"enflasyon":   -0.3,
	"devalüasyon": -0.7,
	"loss":        -0.6,
	"decline":     -0.6,
	"drop":        -0.6,
	"weak":        -0.5,
	"negative":    -0.6,
	"crisis":      -0.8,
	"downgrade":   -0.6,
	"lawsuit":     -0.5,
	"fraud":       -0.9,
	"miss":        -0.4,
}

// StripHTML removes markup tags from text.
func StripHTML(text string) string {
	return htmlTagRe.ReplaceAllString(text, " ")
}

// Polarity computes a lexical polarity score in [-1, 1] for the given text.
// Single words are matched on whole-token boundaries; multi-word lexicon
// phrases are matched as substrings. Text with no matches scores 0.
func Polarity(text string) float64 {
	cleaned := strings.ToLower(StripHTML(text))

	var sum float64
	var matches int
	for _, token := range wordRe.FindAllString(cleaned, -1) {
		if weight, ok := lexicon[token]; ok {
			sum += weight
			matches++
		}
	}
	for phrase, weight := range lexicon {
		if !strings.Contains(phrase, " ") {
			continue
		}
		if n := strings.Count(cleaned, phrase); n > 0 {
			sum += weight * float64(n)
			matches += n
		}
	}
	if matches == 0 {
		return 0
	}

	score := sum / float64(matches)
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	return score
}

// Classify maps a polarity score to a sentiment class. The comparisons are
// strict: scores of exactly ±0.1 are neutral.
func Classify(score float64) string {
	switch {
	case score > PositiveThreshold:
		return Positive
	case score < NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}
