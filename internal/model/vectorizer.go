package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
)

// Vectorizer reproduces a fitted TF-IDF vectorizer from its exported
// vocabulary and idf weights: tokenize, count, weight by idf, l2-normalize.
// It must match the vectorizer the text model was trained with, which uses
// the default sklearn token pattern (word characters, length >= 2).
type Vectorizer struct {
	vocab     map[string]int
	idf       []float64
	lowercase bool
}

var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

type vectorizerFile struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	Lowercase  *bool          `json:"lowercase"`
}

// LoadVectorizer reads the JSON sidecar exported alongside the text model.
func LoadVectorizer(path string) (*Vectorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vectorizer: %w", err)
	}

	var raw vectorizerFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode vectorizer: %w", err)
	}
	if len(raw.Vocabulary) == 0 {
		return nil, fmt.Errorf("vectorizer vocabulary is empty")
	}
	if len(raw.IDF) != len(raw.Vocabulary) {
		return nil, fmt.Errorf("vectorizer idf has %d weights for %d terms", len(raw.IDF), len(raw.Vocabulary))
	}
	for term, idx := range raw.Vocabulary {
		if idx < 0 || idx >= len(raw.IDF) {
			return nil, fmt.Errorf("vocabulary index %d for term %q out of range", idx, term)
		}
	}

	lowercase := true
	if raw.Lowercase != nil {
		lowercase = *raw.Lowercase
	}

	return &Vectorizer{
		vocab:     raw.Vocabulary,
		idf:       raw.IDF,
		lowercase: lowercase,
	}, nil
}

// Dims is the width of the vectors Transform produces.
func (v *Vectorizer) Dims() int {
	return len(v.idf)
}

// Transform turns text into a dense TF-IDF vector. Unknown tokens are
// dropped, matching inference against a fixed training vocabulary.
func (v *Vectorizer) Transform(text string) []float32 {
	if v.lowercase {
		text = strings.ToLower(text)
	}

	counts := make(map[int]float64)
	for _, tok := range tokenPattern.FindAllString(text, -1) {
		if idx, ok := v.vocab[tok]; ok {
			counts[idx]++
		}
	}

	vec := make([]float32, len(v.idf))
	var sumSq float64
	for idx, count := range counts {
		w := count * v.idf[idx]
		vec[idx] = float32(w)
		sumSq += w * w
	}

	if sumSq > 0 {
		norm := math.Sqrt(sumSq)
		for idx := range counts {
			vec[idx] = float32(float64(vec[idx]) / norm)
		}
	}
	return vec
}
