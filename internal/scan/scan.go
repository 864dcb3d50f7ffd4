package scan

import (
	"context"
	"strings"
	"time"

	"github.com/phishguard-ai/phishguard/internal/classify"
	"github.com/phishguard-ai/phishguard/internal/features"
	"github.com/phishguard-ai/phishguard/internal/telemetry"
)

// Verdict is the three-level outcome of a completed scan.
type Verdict string

const (
	VerdictSafe       Verdict = "SAFE"
	VerdictSuspicious Verdict = "SUSPICIOUS"
	VerdictDangerous  Verdict = "DANGEROUS"
)

// suspiciousThreshold is the risk score above which an otherwise clean scan
// is upgraded to SUSPICIOUS. Not the same scale as the bucket cutoffs in
// internal/risk; the two constants are independent and must stay separate.
const suspiciousThreshold = 40.0

// Result is the outcome of one Scan call. Immutable once returned; the sole
// interface exposed to any presentation layer.
type Result struct {
	Timestamp  time.Time         `json:"timestamp"`
	InputText  string            `json:"input_text"`
	Verdict    Verdict           `json:"overall_verdict"`
	RiskScore  float64           `json:"risk_score"`
	TextResult *classify.Result  `json:"text_result,omitempty"`
	URLResults []classify.Result `json:"url_results"`
}

// Config wires a Scanner's collaborators. Text and URL may be nil; a nil
// classifier contributes no signal and the scan still succeeds.
type Config struct {
	Text      classify.TextClassifier
	URL       classify.URLClassifier
	Schema    features.Schema     // defaults to features.DefaultSchema()
	Telemetry *telemetry.Provider // optional
	Now       func() time.Time    // defaults to time.Now
}

// Scanner runs the dual-signal pipeline: the full input text through the text
// classifier, every embedded URL through the URL classifier, then a
// deterministic aggregation of the individual results.
type Scanner struct {
	text      classify.TextClassifier
	url       classify.URLClassifier
	schema    features.Schema
	telemetry *telemetry.Provider
	now       func() time.Time
}

// New builds a Scanner. The classifiers are read-only after construction, so
// one Scanner is safe for concurrent Scan calls.
func New(cfg Config) *Scanner {
	s := &Scanner{
		text:      cfg.Text,
		url:       cfg.URL,
		schema:    cfg.Schema,
		telemetry: cfg.Telemetry,
		now:       cfg.Now,
	}
	if s.schema == nil {
		s.schema = features.DefaultSchema()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Scan classifies input and every URL embedded in it, and aggregates the
// available signals into one verdict and risk score. A classifier failure
// drops that signal only; Scan itself never fails. With no signals at all the
// result is SAFE with a risk score of 0.
func (s *Scanner) Scan(ctx context.Context, input string) Result {
	start := time.Now()
	res := Result{
		Timestamp:  s.now(),
		InputText:  input,
		Verdict:    VerdictSafe,
		URLResults: []classify.Result{},
	}

	for _, u := range ExtractURLs(input) {
		inferStart := time.Now()
		r, err := classify.URL(ctx, s.url, u, s.schema)
		if err != nil {
			continue
		}
		s.telemetry.RecordInference("url", time.Since(inferStart))
		res.URLResults = append(res.URLResults, *r)
	}

	var textResult *classify.Result
	if strings.TrimSpace(input) != "" {
		inferStart := time.Now()
		if r, err := classify.Text(ctx, s.text, input); err == nil {
			s.telemetry.RecordInference("text", time.Since(inferStart))
			textResult = r
		}
	}

	// Aggregation order is fixed: URLs in extraction order, then the text
	// result, so identical inputs and classifier outputs reproduce the same
	// verdict and score.
	for i := range res.URLResults {
		applySignal(&res, &res.URLResults[i])
	}
	if textResult != nil {
		res.TextResult = textResult
		applySignal(&res, textResult)
	}

	if res.Verdict == VerdictSafe && res.RiskScore > suspiciousThreshold {
		res.Verdict = VerdictSuspicious
	}

	s.telemetry.RecordScan(string(res.Verdict), res.RiskScore, time.Since(start))
	return res
}

// applySignal folds one classification into the running aggregate: the risk
// score tracks the max phishing probability, and any phishing label upgrades
// the verdict to DANGEROUS. The upgrade is one-way within a scan.
func applySignal(res *Result, r *classify.Result) {
	if score := r.ProbPhishing * 100; score > res.RiskScore {
		res.RiskScore = score
	}
	if r.Label == classify.Phishing {
		res.Verdict = VerdictDangerous
	}
}
