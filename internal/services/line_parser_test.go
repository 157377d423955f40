package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLineBasic(t *testing.T) {
	p := NewIngredientLineParser()

	parsed := p.ParseLine("2 cups all-purpose flour")
	assert.InDelta(t, 2, parsed.Amount, 0.001)
	assert.Equal(t, "cups", parsed.Unit)
	assert.Equal(t, "all-purpose flour", parsed.Name)
	assert.Equal(t, "2 cups all-purpose flour", parsed.Original)
}

func TestParseLineDecimalQuantity(t *testing.T) {
	p := NewIngredientLineParser()

	parsed := p.ParseLine("1.5 lbs chicken breast")
	assert.InDelta(t, 1.5, parsed.Amount, 0.001)
	assert.Equal(t, "lbs", parsed.Unit)
	assert.Equal(t, "chicken breast", parsed.Name)
}

func TestParseLineFractions(t *testing.T) {
	p := NewIngredientLineParser()

	parsed := p.ParseLine("1/2 cup sugar")
	assert.InDelta(t, 0.5, parsed.Amount, 0.001)
	assert.Equal(t, "cup", parsed.Unit)
	assert.Equal(t, "sugar", parsed.Name)

	parsed = p.ParseLine("1 1/2 cups milk")
	assert.InDelta(t, 1.5, parsed.Amount, 0.001)
	assert.Equal(t, "cups", parsed.Unit)
	assert.Equal(t, "milk", parsed.Name)
}

func TestParseLineUnicodeFractions(t *testing.T) {
	p := NewIngredientLineParser()

	parsed := p.ParseLine("½ cup butter")
	assert.InDelta(t, 0.5, parsed.Amount, 0.001)
	assert.Equal(t, "cup", parsed.Unit)
	assert.Equal(t, "butter", parsed.Name)

	parsed = p.ParseLine("1 ½ cups flour")
	assert.InDelta(t, 1.5, parsed.Amount, 0.001)
	assert.Equal(t, "cups", parsed.Unit)

	parsed = p.ParseLine("¾ tsp salt")
	assert.InDelta(t, 0.75, parsed.Amount, 0.001)
	assert.Equal(t, "tsp", parsed.Unit)
}

func TestParseLineSuperscriptFraction(t *testing.T) {
	p := NewIngredientLineParser()

	parsed := p.ParseLine("¹⁄₂ cup cream")
	assert.InDelta(t, 0.5, parsed.Amount, 0.001)
	assert.Equal(t, "cup", parsed.Unit)
	assert.Equal(t, "cream", parsed.Name)
}

func TestParseLineRange(t *testing.T) {
	p := NewIngredientLineParser()

	parsed := p.ParseLine("2 - 3 cups broth")
	assert.InDelta(t, 2.5, parsed.Amount, 0.001)
	assert.Equal(t, "cups", parsed.Unit)
	assert.Equal(t, "broth", parsed.Name)
}

func TestParseLineNoQuantity(t *testing.T) {
	p := NewIngredientLineParser()

	parsed := p.ParseLine("salt to taste")
	assert.InDelta(t, 1, parsed.Amount, 0.001)
	assert.Equal(t, "", parsed.Unit)
	assert.Equal(t, "salt to taste", parsed.Name)
}

func TestParseLineCountWordsStayInName(t *testing.T) {
	p := NewIngredientLineParser()

	// "cloves" is a count word, not a measurement unit; the
	// normalizer strips it later
	parsed := p.ParseLine("3 cloves garlic")
	assert.InDelta(t, 3, parsed.Amount, 0.001)
	assert.Equal(t, "", parsed.Unit)
	assert.Equal(t, "cloves garlic", parsed.Name)

	parsed = p.ParseLine("2 large eggs")
	assert.InDelta(t, 2, parsed.Amount, 0.001)
	assert.Equal(t, "", parsed.Unit)
	assert.Equal(t, "large eggs", parsed.Name)
}

func TestParseLineTrailingPunctuation(t *testing.T) {
	p := NewIngredientLineParser()

	parsed := p.ParseLine("1 cup rice.")
	assert.Equal(t, "rice", parsed.Name)
}

func TestParseLinesSkipsBlanks(t *testing.T) {
	p := NewIngredientLineParser()

	parsed := p.ParseLines([]string{"2 cups flour", "", "   ", "1 cup milk"})
	assert.Len(t, parsed, 2)
	assert.Equal(t, "flour", parsed[0].Name)
	assert.Equal(t, "milk", parsed[1].Name)
}
