package model

import (
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// binaryClassifierSession wraps a binary sklearn classifier exported to ONNX
// with zipmap disabled: one "float_input" [1, dims], outputs "label" int64 [1]
// and "probabilities" float32 [1, 2]. The tensors are reused between runs, so
// calls are serialized with a mutex.
type binaryClassifierSession struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	label   *ort.Tensor[int64]
	probs   *ort.Tensor[float32]
	dims    int

	mu sync.Mutex
}

func newBinaryClassifierSession(modelPath string, dims int) (*binaryClassifierSession, error) {
	if dims <= 0 {
		return nil, fmt.Errorf("model input size must be positive, got %d", dims)
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file missing at %s: %w", modelPath, err)
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(dims)))
	if err != nil {
		return nil, fmt.Errorf("allocate input tensor: %w", err)
	}
	label, err := ort.NewEmptyTensor[int64](ort.NewShape(1))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("allocate label tensor: %w", err)
	}
	probs, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 2))
	if err != nil {
		input.Destroy()
		label.Destroy()
		return nil, fmt.Errorf("allocate probabilities tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{"float_input"},
		[]string{"label", "probabilities"},
		[]ort.Value{input},
		[]ort.Value{label, probs},
		nil,
	)
	if err != nil {
		input.Destroy()
		label.Destroy()
		probs.Destroy()
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	return &binaryClassifierSession{
		session: session,
		input:   input,
		label:   label,
		probs:   probs,
		dims:    dims,
	}, nil
}

func (s *binaryClassifierSession) run(vec []float32) (int, []float64, error) {
	if len(vec) != s.dims {
		return 0, nil, fmt.Errorf("feature vector has %d entries, model expects %d", len(vec), s.dims)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copy(s.input.GetData(), vec)
	if err := s.session.Run(); err != nil {
		return 0, nil, fmt.Errorf("onnx run: %w", err)
	}

	label := int(s.label.GetData()[0])
	raw := s.probs.GetData()
	probs := make([]float64, len(raw))
	for i, p := range raw {
		probs[i] = float64(p)
	}
	return label, probs, nil
}

func (s *binaryClassifierSession) destroy() {
	if s == nil {
		return
	}
	if s.session != nil {
		s.session.Destroy()
	}
	if s.input != nil {
		s.input.Destroy()
	}
	if s.label != nil {
		s.label.Destroy()
	}
	if s.probs != nil {
		s.probs.Destroy()
	}
}
