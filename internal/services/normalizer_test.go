package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIngredientText(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"2 cups all-purpose flour", "flour"},
		{"1 cup granulated sugar", "granulated sugar"},
		{"3 large eggs", "eggs"},
		{"1/2 tsp salt", "salt"},
		{"1 to 2 jalapeños", "jalapeños"},
		{"2 tablespoons olive oil", "olive oil"},
		{"1.5 lbs boneless skinless chicken breast", "boneless skinless chicken breast"},
		{"fresh chopped cilantro", "cilantro"},
		{"Juice of 1 lemon", "lemon"},
		{"Zest of 2 limes", "limes"},
		{"optional: 1 pinch cayenne", "cayenne"},
		{"1 cup milk (room temperature)", "milk"},
		{"BUTTER", "butter"},
		{"", ""},
		{"2 1/2", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeIngredientText(tt.text), "NormalizeIngredientText(%q)", tt.text)
	}
}

func TestNormalizeIngredientTextIdempotent(t *testing.T) {
	inputs := []string{
		"2 cups all-purpose flour",
		"1 to 2 jalapeños",
		"Juice of 1 lemon",
		"3 large eggs",
		"fresh chopped cilantro",
	}
	for _, in := range inputs {
		once := NormalizeIngredientText(in)
		assert.Equal(t, once, NormalizeIngredientText(once), "normalizing %q twice changed the result", in)
	}
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, isNumeric("2"))
	assert.True(t, isNumeric("1.5"))
	assert.True(t, isNumeric("1/2"))
	assert.True(t, isNumeric("2.5/3"))
	assert.False(t, isNumeric("flour"))
	assert.False(t, isNumeric("2lbs"))
	assert.False(t, isNumeric("/"))
	assert.False(t, isNumeric(""))
}
