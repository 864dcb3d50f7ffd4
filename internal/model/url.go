package model

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/phishguard-ai/phishguard/internal/classify"
)

// URLModel scores lexical URL feature vectors with a binary ONNX classifier.
// Its label convention is inverted relative to the text model: label 1 means
// legitimate, probabilities are [phishing, legitimate]. Read-only after load
// and safe for concurrent use.
type URLModel struct {
	session *binaryClassifierSession
}

// LoadURLModel loads the classifier from dir. dims is the length of the
// feature schema the model was trained against.
func LoadURLModel(dir, modelFile string, dims int) (*URLModel, error) {
	if err := initRuntime(dir); err != nil {
		return nil, err
	}

	session, err := newBinaryClassifierSession(filepath.Join(dir, modelFile), dims)
	if err != nil {
		return nil, fmt.Errorf("load url model: %w", err)
	}
	return &URLModel{session: session}, nil
}

// Classify implements classify.URLClassifier.
func (m *URLModel) Classify(ctx context.Context, featureVector []float64) (classify.Prediction, error) {
	if m == nil || m.session == nil {
		return classify.Prediction{}, classify.ErrModelUnavailable
	}
	if err := ctx.Err(); err != nil {
		return classify.Prediction{}, err
	}

	vec := make([]float32, len(featureVector))
	for i, v := range featureVector {
		vec[i] = float32(v)
	}

	label, probs, err := m.session.run(vec)
	if err != nil {
		return classify.Prediction{}, fmt.Errorf("%w: %w", classify.ErrModelUnavailable, err)
	}
	return classify.Prediction{Label: label, Probabilities: probs}, nil
}

// Close releases the ONNX session.
func (m *URLModel) Close() {
	if m != nil {
		m.session.destroy()
	}
}
