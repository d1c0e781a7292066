package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDietaryLabels(t *testing.T) {
	set, err := ParseDietaryLabels([]string{"vegan", "gluten-free", "vegan"})
	require.NoError(t, err)
	// Duplicates collapse; order of first appearance is kept.
	assert.Equal(t, DietaryLabelSet{DietaryVegan, DietaryGlutenFree}, set)
}

func TestParseDietaryLabelsRejectsUnknown(t *testing.T) {
	// One bad value fails the whole field; good entries are not kept.
	set, err := ParseDietaryLabels([]string{"vegan", "pescatarian"})
	assert.Error(t, err)
	assert.Nil(t, set)
}

func TestParseDietaryLabelsEmpty(t *testing.T) {
	set, err := ParseDietaryLabels(nil)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestDietaryLabelSetRoundTrip(t *testing.T) {
	set := DietaryLabelSet{DietaryVegetarian, DietaryNutFree}

	value, err := set.Value()
	require.NoError(t, err)

	var decoded DietaryLabelSet
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, set, decoded)
}

func TestDietaryLabelSetScanNil(t *testing.T) {
	var decoded DietaryLabelSet
	require.NoError(t, decoded.Scan(nil))
	assert.Empty(t, decoded)
}

func TestValidTheme(t *testing.T) {
	assert.True(t, ValidTheme(ThemeClassic))
	assert.True(t, ValidTheme(ThemeMinimal))
	assert.False(t, ValidTheme(Theme("neon")))
}

func TestSlugPattern(t *testing.T) {
	for _, slug := range []string{"pizza-place", "cafe-42", "a"} {
		assert.True(t, SlugPattern.MatchString(slug), slug)
	}
	for _, slug := range []string{"", "Pizza-Place", "pizza place", "pizza_place", "crêpe"} {
		assert.False(t, SlugPattern.MatchString(slug), slug)
	}
}
