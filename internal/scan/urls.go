package scan

import "regexp"

// urlPattern matches http/https URL literals embedded in free text. The
// character class set mirrors what the URL model was trained against, so it
// stays as-is even though it is looser than a strict RFC parse ($-_ is a
// range and also covers digits, uppercase letters and '/').
var urlPattern = regexp.MustCompile(`http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\\(),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)

// ExtractURLs returns every URL occurrence in order of first appearance.
// Duplicates are kept: aggregation is max-based so they change nothing there,
// but per-URL result lists are expected to reflect literal occurrence count.
func ExtractURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}
