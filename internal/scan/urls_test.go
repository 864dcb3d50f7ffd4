package scan

import (
	"reflect"
	"testing"
)

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			"no urls",
			"hello there, nothing suspicious here",
			nil,
		},
		{
			"plain http url",
			"URGENT: verify now http://bit.ly/fake-login-123",
			[]string{"http://bit.ly/fake-login-123"},
		},
		{
			"https url with path",
			"Hi team, see notes: https://docs.google.com/document/d/legit-id/edit",
			[]string{"https://docs.google.com/document/d/legit-id/edit"},
		},
		{
			"two urls in order",
			"first http://a.example.com/x then https://b.example.com/y",
			[]string{"http://a.example.com/x", "https://b.example.com/y"},
		},
		{
			"duplicates kept",
			"click http://x.co/a or http://x.co/a",
			[]string{"http://x.co/a", "http://x.co/a"},
		},
		{
			"percent escapes",
			"go to https://example.com/p%20q now",
			[]string{"https://example.com/p%20q"},
		},
		{
			"scheme-less host ignored",
			"visit www.example.com today",
			nil,
		},
		{
			"stops at whitespace",
			"http://example.com/path rest of sentence",
			[]string{"http://example.com/path"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractURLs(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ExtractURLs(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}
