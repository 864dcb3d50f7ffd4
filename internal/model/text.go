package model

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/phishguard-ai/phishguard/internal/classify"
)

// TextModel scores message bodies: a TF-IDF vectorizer feeding a binary ONNX
// classifier. Label 1 means phishing, probabilities are [legitimate, phishing].
// Read-only after load and safe for concurrent use.
type TextModel struct {
	vectorizer *Vectorizer
	session    *binaryClassifierSession
}

// LoadTextModel loads the classifier and its companion vectorizer from dir.
func LoadTextModel(dir, modelFile, vectorizerName string) (*TextModel, error) {
	if err := initRuntime(dir); err != nil {
		return nil, err
	}

	vectorizer, err := LoadVectorizer(filepath.Join(dir, vectorizerName))
	if err != nil {
		return nil, fmt.Errorf("load text vectorizer: %w", err)
	}

	session, err := newBinaryClassifierSession(filepath.Join(dir, modelFile), vectorizer.Dims())
	if err != nil {
		return nil, fmt.Errorf("load text model: %w", err)
	}

	return &TextModel{vectorizer: vectorizer, session: session}, nil
}

// Classify implements classify.TextClassifier.
func (m *TextModel) Classify(ctx context.Context, text string) (classify.Prediction, error) {
	if m == nil || m.session == nil || m.vectorizer == nil {
		return classify.Prediction{}, classify.ErrModelUnavailable
	}
	if err := ctx.Err(); err != nil {
		return classify.Prediction{}, err
	}

	label, probs, err := m.session.run(m.vectorizer.Transform(text))
	if err != nil {
		return classify.Prediction{}, fmt.Errorf("%w: %w", classify.ErrModelUnavailable, err)
	}
	return classify.Prediction{Label: label, Probabilities: probs}, nil
}

// Close releases the ONNX session.
func (m *TextModel) Close() {
	if m != nil {
		m.session.destroy()
	}
}
