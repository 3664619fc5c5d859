package classify

import (
	"context"
	"strings"
)

// Result is a material label with a confidence percentage.
type Result struct {
	Label      string `json:"label"`
	Confidence int    `json:"confidence"`
}

// Classifier labels a material from a hint about the submitted photo,
// typically its file name.
type Classifier interface {
	Classify(ctx context.Context, hint string) (*Result, error)
}

// Fallback is returned when no keyword matches.
var Fallback = Result{Label: "Other", Confidence: 75}

// keywords are checked in order; the first one contained in the hint wins.
var keywords = []struct {
	keyword string
	result  Result
}{
	{"coconut", Result{Label: "Coconut Shell", Confidence: 95}},
	{"glass", Result{Label: "Glass Bottle", Confidence: 92}},
	{"cardboard", Result{Label: "Cardboard", Confidence: 89}},
}

// KeywordClassifier is a placeholder for a real image model: it matches the
// lower-cased hint against a fixed keyword table.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

func (c *KeywordClassifier) Classify(_ context.Context, hint string) (*Result, error) {
	r := Match(hint)
	return &r, nil
}

// Match is the keyword lookup behind KeywordClassifier.
func Match(hint string) Result {
	lower := strings.ToLower(hint)
	for _, kw := range keywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.result
		}
	}
	return Fallback
}
