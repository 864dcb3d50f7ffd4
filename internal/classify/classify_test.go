package classify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/phishguard-ai/phishguard/internal/features"
)

type fakeTextClassifier struct {
	pred Prediction
	err  error
}

func (f *fakeTextClassifier) Classify(_ context.Context, _ string) (Prediction, error) {
	return f.pred, f.err
}

type fakeURLClassifier struct {
	pred    Prediction
	err     error
	lastVec []float64
}

func (f *fakeURLClassifier) Classify(_ context.Context, vec []float64) (Prediction, error) {
	f.lastVec = vec
	return f.pred, f.err
}

func TestTextLabelConvention(t *testing.T) {
	// Text model: label 1 = phishing, probabilities [legitimate, phishing].
	tc := &fakeTextClassifier{pred: Prediction{Label: 1, Probabilities: []float64{0.2, 0.8}}}
	res, err := Text(context.Background(), tc, "verify your account now")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if res.Label != Phishing {
		t.Fatalf("label = %s, want phishing", res.Label)
	}
	if res.ProbPhishing != 0.8 || res.ProbLegitimate != 0.2 {
		t.Fatalf("probabilities = (%v, %v), want (0.8, 0.2)", res.ProbPhishing, res.ProbLegitimate)
	}
	if res.Kind != KindText {
		t.Fatalf("kind = %s, want text", res.Kind)
	}
	if res.FeatureVector != nil {
		t.Fatalf("text result should carry no feature vector")
	}
}

func TestTextLabelZeroIsLegitimate(t *testing.T) {
	tc := &fakeTextClassifier{pred: Prediction{Label: 0, Probabilities: []float64{0.95, 0.05}}}
	res, err := Text(context.Background(), tc, "hi team")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if res.Label != Legitimate {
		t.Fatalf("label = %s, want legitimate", res.Label)
	}
	if res.ProbPhishing != 0.05 {
		t.Fatalf("probability_phishing = %v, want 0.05", res.ProbPhishing)
	}
}

func TestTextSubjectSnippet(t *testing.T) {
	tc := &fakeTextClassifier{pred: Prediction{Label: 0, Probabilities: []float64{1, 0}}}
	long := strings.Repeat("a", 80)
	res, err := Text(context.Background(), tc, long)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if want := long[:50] + "..."; res.Subject != want {
		t.Fatalf("subject = %q, want %q", res.Subject, want)
	}
}

func TestURLLabelConventionInverted(t *testing.T) {
	// URL model: label 1 = legitimate, probabilities [phishing, legitimate].
	uc := &fakeURLClassifier{pred: Prediction{Label: 1, Probabilities: []float64{0.1, 0.9}}}
	res, err := URL(context.Background(), uc, "https://example.com", features.DefaultSchema())
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if res.Label != Legitimate {
		t.Fatalf("label = %s, want legitimate for model label 1", res.Label)
	}
	if res.ProbPhishing != 0.1 || res.ProbLegitimate != 0.9 {
		t.Fatalf("probabilities = (%v, %v), want (0.1, 0.9)", res.ProbPhishing, res.ProbLegitimate)
	}
}

func TestURLNonOneLabelIsPhishing(t *testing.T) {
	uc := &fakeURLClassifier{pred: Prediction{Label: 0, Probabilities: []float64{0.95, 0.05}}}
	res, err := URL(context.Background(), uc, "http://bit.ly/x", features.DefaultSchema())
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if res.Label != Phishing {
		t.Fatalf("label = %s, want phishing for model label 0", res.Label)
	}
	if res.ProbPhishing != 0.95 {
		t.Fatalf("probability_phishing = %v, want 0.95", res.ProbPhishing)
	}
}

func TestURLPassesExtractedFeatures(t *testing.T) {
	schema := features.DefaultSchema()
	uc := &fakeURLClassifier{pred: Prediction{Label: 1, Probabilities: []float64{0, 1}}}
	res, err := URL(context.Background(), uc, "http://bit.ly/fake-login-123", schema)
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if len(uc.lastVec) != len(schema) {
		t.Fatalf("classifier got %d features, want %d", len(uc.lastVec), len(schema))
	}
	if len(res.FeatureVector) != len(schema) {
		t.Fatalf("result carries %d features, want %d", len(res.FeatureVector), len(schema))
	}
}

func TestNilClassifiersUnavailable(t *testing.T) {
	if _, err := Text(context.Background(), nil, "x"); !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("Text with nil classifier: err = %v, want ErrModelUnavailable", err)
	}
	if _, err := URL(context.Background(), nil, "x", features.DefaultSchema()); !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("URL with nil classifier: err = %v, want ErrModelUnavailable", err)
	}
}

func TestClassifierErrorsPassThrough(t *testing.T) {
	tc := &fakeTextClassifier{err: ErrModelUnavailable}
	if _, err := Text(context.Background(), tc, "x"); !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("err = %v, want ErrModelUnavailable", err)
	}
}
