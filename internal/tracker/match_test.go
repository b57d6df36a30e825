package tracker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNames = []string{
	"Cassette (Chapter 1: Forsaken City A-Side)",
	"Completion (Chapter 1: Forsaken City A-Side)",
	"Completion (Chapter 2: Old Site A-Side)",
	"Crystal Heart (Chapter 1: Forsaken City A-Side)",
	"Strawberry",
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exact", "Strawberry", "Strawberry"},
		{"case and spacing", "  completion (chapter 2:   old site a-side) ", "Completion (Chapter 2: Old Site A-Side)"},
		{"unique substring", "crystal heart", "Crystal Heart (Chapter 1: Forsaken City A-Side)"},
		{"typo", "Cassete (Chapter 1: Forsaken City A-Side)", "Cassette (Chapter 1: Forsaken City A-Side)"},
		{"short typo", "strawbery", "Strawberry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := match(tt.input, testNames)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch_Ambiguous(t *testing.T) {
	_, err := match("forsaken city", testNames)

	var unknown *UnknownItemError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []string{
		"Cassette (Chapter 1: Forsaken City A-Side)",
		"Completion (Chapter 1: Forsaken City A-Side)",
		"Crystal Heart (Chapter 1: Forsaken City A-Side)",
	}, unknown.Suggestions)
}

func TestMatch_Unknown(t *testing.T) {
	_, err := match("moon berry", testNames)

	var unknown *UnknownItemError
	require.True(t, errors.As(err, &unknown))
	assert.Len(t, unknown.Suggestions, 3)
	assert.Equal(t, "Strawberry", unknown.Suggestions[0])
	assert.Contains(t, err.Error(), "did you mean")

	_, err = match("   ", testNames)
	require.True(t, errors.As(err, &unknown))
	assert.Empty(t, unknown.Suggestions)
}
