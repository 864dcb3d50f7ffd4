package model

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeVectorizer(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vectorizer.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write vectorizer: %v", err)
	}
	return path
}

func TestLoadVectorizerValidatesShape(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty vocabulary", `{"vocabulary": {}, "idf": []}`},
		{"idf length mismatch", `{"vocabulary": {"verify": 0, "account": 1}, "idf": [1.0]}`},
		{"index out of range", `{"vocabulary": {"verify": 5}, "idf": [1.0]}`},
		{"not json", `vocab`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadVectorizer(writeVectorizer(t, tc.content)); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestTransformTFIDF(t *testing.T) {
	path := writeVectorizer(t, `{
		"vocabulary": {"verify": 0, "account": 1, "meeting": 2},
		"idf": [2.0, 1.0, 1.0]
	}`)
	v, err := LoadVectorizer(path)
	if err != nil {
		t.Fatalf("LoadVectorizer: %v", err)
	}
	if v.Dims() != 3 {
		t.Fatalf("dims = %d, want 3", v.Dims())
	}

	// "verify" twice (idf 2.0 -> weight 4), "account" once (weight 1),
	// unknown tokens dropped; l2 norm = sqrt(17).
	vec := v.Transform("Verify your ACCOUNT, verify now please")
	norm := math.Sqrt(17)
	want := []float64{4 / norm, 1 / norm, 0}
	for i, w := range want {
		if math.Abs(float64(vec[i])-w) > 1e-6 {
			t.Fatalf("vec[%d] = %v, want %v", i, vec[i], w)
		}
	}
}

func TestTransformEmptyAndUnknownText(t *testing.T) {
	path := writeVectorizer(t, `{"vocabulary": {"verify": 0}, "idf": [1.5]}`)
	v, err := LoadVectorizer(path)
	if err != nil {
		t.Fatalf("LoadVectorizer: %v", err)
	}

	for _, text := range []string{"", "completely unrelated words", "a b c"} {
		vec := v.Transform(text)
		if len(vec) != 1 {
			t.Fatalf("vector length %d, want 1", len(vec))
		}
		if vec[0] != 0 {
			t.Fatalf("Transform(%q)[0] = %v, want 0", text, vec[0])
		}
	}
}

func TestTransformRespectsLowercaseFlag(t *testing.T) {
	path := writeVectorizer(t, `{"vocabulary": {"Verify": 0}, "idf": [1.0], "lowercase": false}`)
	v, err := LoadVectorizer(path)
	if err != nil {
		t.Fatalf("LoadVectorizer: %v", err)
	}

	if vec := v.Transform("Verify"); vec[0] == 0 {
		t.Fatal("case-sensitive vectorizer should match exact-case token")
	}
	if vec := v.Transform("verify"); vec[0] != 0 {
		t.Fatal("case-sensitive vectorizer should not match lowercased token")
	}
}
