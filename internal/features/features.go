package features

import (
	"regexp"
	"strings"
)

// Feature names recognized by Extract. The URL model is trained against a
// fixed ordering of these, declared by its Schema.
const (
	UsingIP     = "UsingIP"
	LongURL     = "LongURL"
	ShortURL    = "ShortURL"
	SymbolAt    = "Symbol@"
	HTTPS       = "HTTPS"
	Redirecting = "Redirecting//"
)

// Schema is the ordered list of feature names a URL model expects its input
// vector to follow. Vectors built against different schemas are not comparable.
type Schema []string

// DefaultSchema matches the feature ordering of the bundled URL model.
func DefaultSchema() Schema {
	return Schema{UsingIP, LongURL, ShortURL, SymbolAt, HTTPS, Redirecting}
}

const longURLThreshold = 75

var ipPattern = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

var shortenerDomains = []string{"bit.ly", "tinyurl", "t.co", "goo.gl"}

// Extract computes one signed entry per schema feature, in schema order:
// +1 when the lexical trait is present, -1 when absent. Any string is a valid
// input, including empty and malformed URLs.
func Extract(rawURL string, schema Schema) []float64 {
	vec := make([]float64, len(schema))
	set := func(name string, present bool) {
		for i, n := range schema {
			if n == name {
				if present {
					vec[i] = 1
				} else {
					vec[i] = -1
				}
			}
		}
	}

	set(UsingIP, ipPattern.MatchString(rawURL))
	set(LongURL, len(rawURL) > longURLThreshold)
	set(ShortURL, containsShortener(rawURL))
	set(SymbolAt, strings.Contains(rawURL, "@"))
	set(HTTPS, strings.HasPrefix(strings.ToLower(rawURL), "https"))
	set(Redirecting, strings.Count(rawURL, "//") > 1)

	return vec
}

func containsShortener(rawURL string) bool {
	for _, d := range shortenerDomains {
		if strings.Contains(rawURL, d) {
			return true
		}
	}
	return false
}
