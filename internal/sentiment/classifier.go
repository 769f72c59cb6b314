// Package sentiment labels review text as positive, negative or neutral
// from a lexicon-based compound polarity score.
package sentiment

// Label is the outcome of classifying a piece of text.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Compound score cut-offs. Both bounds are inclusive.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// Classifier maps text to a label. Implementations must be deterministic
// and must accept any string, including the empty one.
type Classifier interface {
	Classify(text string) Label
}

// LabelFor applies the thresholds to a compound score in [-1, 1].
func LabelFor(compound float64) Label {
	switch {
	case compound >= PositiveThreshold:
		return Positive
	case compound <= NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// ClassifierFunc adapts a plain function to Classifier.
type ClassifierFunc func(text string) Label

func (f ClassifierFunc) Classify(text string) Label {
	return f(text)
}
