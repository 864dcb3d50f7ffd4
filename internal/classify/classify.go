package classify

import (
	"context"
	"errors"

	"github.com/phishguard-ai/phishguard/internal/features"
)

// ErrModelUnavailable signals that a classifier capability could not produce
// a result, typically because its model never loaded. Callers treat it as
// "no signal from this classifier", not as a fatal error.
var ErrModelUnavailable = errors.New("classifier model unavailable")

// Label is the predicted class of one signal.
type Label string

const (
	Legitimate Label = "legitimate"
	Phishing   Label = "phishing"
)

// Kind distinguishes what a result classified.
type Kind string

const (
	KindText Kind = "text"
	KindURL  Kind = "url"
)

// Prediction is the raw output of a classifier capability. The meaning of
// Label depends on the model: the text model uses 1 = phishing, the URL model
// uses 1 = legitimate. The adapters below own those conventions.
type Prediction struct {
	Label         int
	Probabilities []float64
}

// TextClassifier scores a full message body.
type TextClassifier interface {
	Classify(ctx context.Context, text string) (Prediction, error)
}

// URLClassifier scores a lexical feature vector built against the schema the
// model was trained with.
type URLClassifier interface {
	Classify(ctx context.Context, featureVector []float64) (Prediction, error)
}

// Result is the outcome of classifying one signal. Immutable once built.
type Result struct {
	Kind           Kind      `json:"kind"`
	Subject        string    `json:"subject"`
	Label          Label     `json:"label"`
	ProbPhishing   float64   `json:"probability_phishing"`
	ProbLegitimate float64   `json:"probability_legitimate"`
	FeatureVector  []float64 `json:"feature_vector,omitempty"`
}

const subjectSnippetLen = 50

// Text classifies a message body. The text model reports probabilities as
// [legitimate, phishing] and predicts label 1 for phishing.
func Text(ctx context.Context, tc TextClassifier, text string) (*Result, error) {
	if tc == nil {
		return nil, ErrModelUnavailable
	}
	pred, err := tc.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	label := Legitimate
	if pred.Label == 1 {
		label = Phishing
	}
	return &Result{
		Kind:           KindText,
		Subject:        snippet(text),
		Label:          label,
		ProbPhishing:   probAt(pred.Probabilities, 1),
		ProbLegitimate: probAt(pred.Probabilities, 0),
	}, nil
}

// URL extracts lexical features from rawURL and classifies them. The URL
// model's convention is inverted relative to the text model: it reports
// probabilities as [phishing, legitimate] and label 1 means legitimate.
func URL(ctx context.Context, uc URLClassifier, rawURL string, schema features.Schema) (*Result, error) {
	if uc == nil {
		return nil, ErrModelUnavailable
	}
	vec := features.Extract(rawURL, schema)
	pred, err := uc.Classify(ctx, vec)
	if err != nil {
		return nil, err
	}

	label := Phishing
	if pred.Label == 1 {
		label = Legitimate
	}
	return &Result{
		Kind:           KindURL,
		Subject:        rawURL,
		Label:          label,
		ProbPhishing:   probAt(pred.Probabilities, 0),
		ProbLegitimate: probAt(pred.Probabilities, 1),
		FeatureVector:  vec,
	}, nil
}

func probAt(probs []float64, i int) float64 {
	if i < len(probs) {
		return probs[i]
	}
	return 0
}

func snippet(text string) string {
	if len(text) > subjectSnippetLen {
		return text[:subjectSnippetLen] + "..."
	}
	return text
}
