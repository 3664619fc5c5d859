package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name string
		hint string
		want Result
	}{
		{name: "coconut mixed case", hint: "My_Coconut_Photo.png", want: Result{"Coconut Shell", 95}},
		{name: "glass", hint: "GLASS-bottles.jpg", want: Result{"Glass Bottle", 92}},
		{name: "cardboard", hint: "old_cardboard.webp", want: Result{"Cardboard", 89}},
		{name: "first match wins", hint: "glass_and_coconut.png", want: Result{"Coconut Shell", 95}},
		{name: "glass before cardboard", hint: "cardboard_glass.png", want: Result{"Glass Bottle", 92}},
		{name: "no match", hint: "random.png", want: Result{"Other", 75}},
		{name: "empty", hint: "", want: Result{"Other", 75}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.hint))
		})
	}
}

func TestKeywordClassifier(t *testing.T) {
	var c Classifier = NewKeywordClassifier()

	res, err := c.Classify(context.Background(), "random.png")
	require.NoError(t, err)
	assert.Equal(t, "Other", res.Label)
	assert.Equal(t, 75, res.Confidence)
}
