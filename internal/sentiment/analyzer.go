package sentiment

import (
	"math"
	"sync"

	"github.com/jonreiter/govader"
)

// Scores holds the proportions of positive, negative and neutral content
// and the normalised compound score.
type Scores struct {
	Positive float64
	Negative float64
	Neutral  float64
	Compound float64
}

// Analyzer scores text with VADER over its full lexicon, which covers
// boosters, negation, capitalisation, "but" contrast, punctuation and
// emoticons. It is safe for concurrent use.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

var (
	defaultOnce  sync.Once
	defaultVader *govader.SentimentIntensityAnalyzer
)

// NewAnalyzer returns an Analyzer over the stock VADER lexicon. The
// lexicon is loaded once per process and shared.
func NewAnalyzer() *Analyzer {
	defaultOnce.Do(func() {
		defaultVader = govader.NewSentimentIntensityAnalyzer()
	})
	return &Analyzer{vader: defaultVader}
}

// NewAnalyzerWithLexicon replaces the word valences; keys must be lower
// case. Booster and negation rules are unchanged.
func NewAnalyzerWithLexicon(lexicon map[string]float64) *Analyzer {
	v := govader.NewSentimentIntensityAnalyzer()
	v.Lexicon = lexicon
	return &Analyzer{vader: v}
}

func (a *Analyzer) Classify(text string) Label {
	return LabelFor(a.Score(text).Compound)
}

// Score never fails; input the scorer cannot handle counts as neutral.
func (a *Analyzer) Score(text string) (scores Scores) {
	defer func() {
		if recover() != nil {
			scores = Scores{}
		}
	}()

	s := a.vader.PolarityScores(text)
	if math.IsNaN(s.Compound) {
		return Scores{}
	}

	return Scores{
		Positive: round(s.Positive, 3),
		Negative: round(s.Negative, 3),
		Neutral:  round(s.Neutral, 3),
		Compound: round(s.Compound, 4),
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
