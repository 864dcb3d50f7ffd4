package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/phishguard-ai/phishguard/internal/bundle"
	"github.com/phishguard-ai/phishguard/internal/classify"
	"github.com/phishguard-ai/phishguard/internal/config"
	"github.com/phishguard-ai/phishguard/internal/features"
	"github.com/phishguard-ai/phishguard/internal/history"
	"github.com/phishguard-ai/phishguard/internal/model"
	"github.com/phishguard-ai/phishguard/internal/risk"
	"github.com/phishguard-ai/phishguard/internal/scan"
	"github.com/phishguard-ai/phishguard/internal/telemetry"
)

const version = "0.3.0"

func main() {
	configPath := flag.String("config", "phishguard.yaml", "path to config file")
	text := flag.String("text", "", "text to scan (reads stdin when empty)")
	file := flag.String("file", "", "file with text to scan")
	jsonOut := flag.Bool("json", false, "print the scan result as JSON")
	interactive := flag.Bool("interactive", false, "scan one message per stdin line, print session stats on EOF")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx := context.Background()

	if cfg.Bundle.Download {
		required := []string{cfg.Models.TextModel, cfg.Models.TextVectorizer, cfg.Models.URLModel}
		timeout := time.Duration(cfg.Bundle.TimeoutSeconds) * time.Second
		if err := bundle.Ensure(ctx, cfg.Models.Dir, cfg.Bundle.Archives, required, timeout); err != nil {
			// The scan degrades to whatever signals are loadable.
			log.Printf("bundle download incomplete: %v", err)
		}
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

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:  cfg.Telemetry.Enabled,
		Endpoint: cfg.Telemetry.Endpoint,
		Protocol: cfg.Telemetry.Protocol,
		Service:  "phishguard",
		Version:  version,
	})
	if err != nil {
		log.Fatalf("telemetry setup: %v", err)
	}
	defer tp.Shutdown(ctx)

	scanner := scan.New(scan.Config{
		Text:      textClf,
		URL:       urlClf,
		Schema:    schema,
		Telemetry: tp,
	})

	if *interactive {
		runInteractive(ctx, scanner, history.NewLog(cfg.Scanner.HistorySize), *jsonOut)
		return
	}

	input, err := readInput(*text, *file)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	if strings.TrimSpace(input) == "" {
		log.Fatalf("nothing to scan; pass -text, -file, or pipe content on stdin")
	}

	printResult(scanner.Scan(ctx, input), *jsonOut)
}

func readInput(text, file string) (string, error) {
	if text != "" {
		return text, nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func runInteractive(ctx context.Context, scanner *scan.Scanner, hist *history.Log, jsonOut bool) {
	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		res := scanner.Scan(ctx, line)
		hist.Add(res)
		printResult(res, jsonOut)
	}
	if err := sc.Err(); err != nil {
		log.Fatalf("read stdin: %v", err)
	}

	stats := hist.Stats()
	fmt.Printf("session: scans=%d dangerous=%d last_verdict=%s\n",
		stats.TotalScans, stats.DangerousCount, stats.LastVerdict)
}

func printResult(res scan.Result, jsonOut bool) {
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			log.Fatalf("encode result: %v", err)
		}
		return
	}

	fmt.Printf("verdict: %s  risk: %.1f%% (%s)  urls: %d\n",
		res.Verdict, res.RiskScore, risk.BucketFor(res.RiskScore), len(res.URLResults))

	if res.TextResult != nil {
		fmt.Printf("  text   %-10s p_phish=%.3f  %q\n",
			res.TextResult.Label, res.TextResult.ProbPhishing, res.TextResult.Subject)
	}
	for _, u := range res.URLResults {
		fmt.Printf("  url    %-10s p_phish=%.3f  %s\n", u.Label, u.ProbPhishing, u.Subject)
		if flags := raisedFlags(u); len(flags) > 0 {
			fmt.Printf("         flags: %s\n", strings.Join(flags, ", "))
		}
	}
}

// raisedFlags names the URL traits that fired, for human-readable output.
func raisedFlags(r classify.Result) []string {
	schema := features.DefaultSchema()
	if len(r.FeatureVector) != len(schema) {
		return nil
	}
	descriptions := map[string]string{
		features.UsingIP:     "raw IP in domain",
		features.LongURL:     "very long URL",
		features.ShortURL:    "URL shortener used",
		features.SymbolAt:    "'@' in URL",
		features.Redirecting: "multiple '//' redirections",
	}
	var flags []string
	for i, name := range schema {
		if r.FeatureVector[i] != 1 {
			continue
		}
		if desc, ok := descriptions[name]; ok {
			flags = append(flags, desc)
		}
	}
	return flags
}
