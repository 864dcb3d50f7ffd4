package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/phishguard-ai/phishguard/internal/classify"
	"github.com/phishguard-ai/phishguard/internal/config"
	"github.com/phishguard-ai/phishguard/internal/features"
	"github.com/phishguard-ai/phishguard/internal/model"
	"github.com/phishguard-ai/phishguard/internal/scan"
)

func main() {
	cfgPath := flag.String("config", "", "path to config yaml (required)")
	n := flag.Int("n", 200, "number of iterations")
	text := flag.String("text", "URGENT: Your account is compromised. Click here immediately: http://bit.ly/fake-login-123 to verify.", "input to scan")
	flag.Parse()

	if *cfgPath == "" {
		log.Fatalf("config flag is required")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	var textClf classify.TextClassifier
	if m, err := model.LoadTextModel(cfg.Models.Dir, cfg.Models.TextModel, cfg.Models.TextVectorizer); err != nil {
		log.Printf("text model unavailable: %v", err)
	} else {
		defer m.Close()
		textClf = m
	}

	schema := features.DefaultSchema()
	var urlClf classify.URLClassifier
	if m, err := model.LoadURLModel(cfg.Models.Dir, cfg.Models.URLModel, len(schema)); err != nil {
		log.Printf("url model unavailable: %v", err)
	} else {
		defer m.Close()
		urlClf = m
	}

	scanner := scan.New(scan.Config{Text: textClf, URL: urlClf, Schema: schema})
	ctx := context.Background()

	// Warmup
	for i := 0; i < 5; i++ {
		scanner.Scan(ctx, *text)
	}

	if *n <= 0 {
		*n = 1
	}

	durations := make([]time.Duration, 0, *n)
	var last scan.Result
	for i := 0; i < *n; i++ {
		start := time.Now()
		last = scanner.Scan(ctx, *text)
		durations = append(durations, time.Since(start))
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	var total time.Duration
	for _, d := range durations {
		total += d
	}

	avg := float64(total.Microseconds()) / 1000.0 / float64(len(durations))
	p50 := float64(durations[len(durations)/2].Microseconds()) / 1000.0
	p95 := float64(durations[int(float64(len(durations))*0.95)].Microseconds()) / 1000.0

	fmt.Printf("bench: n=%d avg_ms=%.2f p50_ms=%.2f p95_ms=%.2f verdict=%s risk=%.1f urls=%d\n",
		len(durations),
		avg,
		p50,
		p95,
		last.Verdict,
		last.RiskScore,
		len(last.URLResults),
	)
}
