package risk

// Bucket is the coarse category derived from a phishing probability. It is
// recomputed on demand and never stored apart from the probability itself.
type Bucket string

const (
	Low    Bucket = "LOW"
	Medium Bucket = "MEDIUM"
	High   Bucket = "HIGH"
)

// Bucket cutoffs, on a 0-100 percent scale. These are a different scale from
// the scanner's SUSPICIOUS upgrade threshold and must stay separate constants.
const (
	mediumThreshold = 30.0
	highThreshold   = 70.0
)

// BucketFor maps a phishing probability percentage to its bucket.
// Total over the input domain: < 30 is Low, [30, 70) is Medium, >= 70 is High.
func BucketFor(percent float64) Bucket {
	switch {
	case percent < mediumThreshold:
		return Low
	case percent < highThreshold:
		return Medium
	default:
		return High
	}
}
