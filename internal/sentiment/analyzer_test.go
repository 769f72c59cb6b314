package sentiment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzer_Classify(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		name string
		text string
		want Label
	}{
		{"glowing review", "This movie was absolutely wonderful, brilliant, and amazing!", Positive},
		{"scathing review", "This movie was terrible, awful, and a complete waste of time.", Negative},
		{"factual statement", "The movie was released on a Tuesday in the spring.", Neutral},
		{"negated positive", "The film was not good at all", Negative},
		{"contraction negation", "I didn't enjoy the second half", Negative},
		{"contrast after but", "The plot was good but the acting was terrible", Negative},
		{"emoticon", "Saw it with friends :)", Positive},
		{"empty", "", Neutral},
		{"whitespace only", "   \t\n ", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Classify(tt.text))
		})
	}
}

func TestAnalyzer_ScoreBounds(t *testing.T) {
	a := NewAnalyzer()

	s := a.Score("This movie was absolutely wonderful, brilliant, and amazing!")
	assert.Greater(t, s.Compound, 0.9)
	assert.LessOrEqual(t, s.Compound, 1.0)
	assert.InDelta(t, 1.0, s.Positive+s.Negative+s.Neutral, 0.01)

	s = a.Score(strings.Repeat("awful terrible horrible ", 200))
	assert.GreaterOrEqual(t, s.Compound, -1.0)
	assert.Less(t, s.Compound, -0.99)
}

func TestAnalyzer_Modifiers(t *testing.T) {
	a := NewAnalyzer()

	plain := a.Score("the ending was good").Compound

	t.Run("booster raises intensity", func(t *testing.T) {
		assert.Greater(t, a.Score("the ending was very good").Compound, plain)
	})

	t.Run("dampener lowers intensity", func(t *testing.T) {
		assert.Less(t, a.Score("the ending was slightly good").Compound, plain)
	})

	t.Run("caps emphasis in mixed case", func(t *testing.T) {
		assert.Greater(t, a.Score("the ending was GOOD").Compound, plain)
	})

	t.Run("all caps is not emphasis", func(t *testing.T) {
		assert.Equal(t, plain, a.Score("THE ENDING WAS GOOD").Compound)
	})

	t.Run("exclamation amplifies", func(t *testing.T) {
		assert.Greater(t, a.Score("the ending was good!!").Compound, plain)
	})

	t.Run("exclamations are capped", func(t *testing.T) {
		assert.Equal(t,
			a.Score("the ending was good!!!!").Compound,
			a.Score("the ending was good!!!!!!!!").Compound,
		)
	})

	t.Run("never so intensifies", func(t *testing.T) {
		assert.Greater(t, a.Score("never so good").Compound, 0.0)
	})
}

func TestAnalyzer_Deterministic(t *testing.T) {
	a := NewAnalyzer()
	text := "Decent cast, but the script is a mess and the pacing is tedious."
	first := a.Score(text)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, a.Score(text))
	}
}

func TestAnalyzer_ArbitraryInput(t *testing.T) {
	a := NewAnalyzer()
	inputs := []string{
		"!!!!", "????", "🎬🍿", "日本語のレビュー", "\x00\xff", "a", "n't", "but", "not not not",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			got := a.Classify(in)
			assert.Contains(t, []Label{Positive, Negative, Neutral}, got)
		})
	}
}

func TestAnalyzer_CustomLexicon(t *testing.T) {
	a := NewAnalyzerWithLexicon(map[string]float64{"meh": -1.0})
	assert.Equal(t, Negative, a.Classify("honestly meh"))
	assert.Equal(t, Neutral, a.Classify("wonderful"))
}

func TestLabelFor(t *testing.T) {
	tests := []struct {
		compound float64
		want     Label
	}{
		{1, Positive},
		{0.05, Positive},
		{0.0499, Neutral},
		{0, Neutral},
		{-0.0499, Neutral},
		{-0.05, Negative},
		{-1, Negative},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LabelFor(tt.compound), "compound %v", tt.compound)
	}
}

func TestClassifierFunc(t *testing.T) {
	var c Classifier = ClassifierFunc(func(string) Label { return Negative })
	assert.Equal(t, Negative, c.Classify("anything"))
}

func TestAnalyzer_EverydayNegativeReviews(t *testing.T) {
	a := NewAnalyzer()

	reviews := []string{
		"I really disliked this film, it was slow, dreary and underwhelming.",
		"The cast is talented but the script is a total bore.",
		"I disliked the whole thing, it felt dreary from start to finish.",
	}
	for _, text := range reviews {
		s := a.Score(text)
		assert.LessOrEqual(t, s.Compound, NegativeThreshold, text)
		assert.Equal(t, Negative, a.Classify(text), text)
	}
}

func TestAnalyzer_FullLexicon(t *testing.T) {
	a := NewAnalyzer()

	assert.Equal(t, Positive, a.Classify("I adored the talented cast."))
	assert.Equal(t, Negative, a.Classify("disliked"))
	assert.Equal(t, Negative, a.Classify("dreary"))
	assert.Same(t, a.vader, NewAnalyzer().vader, "lexicon is loaded once")
}
