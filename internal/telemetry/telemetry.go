package telemetry

import (
	"context"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Config controls telemetry setup.
type Config struct {
	Enabled  bool
	Endpoint string
	Protocol string // grpc | http
	Service  string
	Version  string
}

// Provider wires tracer/meter providers and exposes recording helpers.
// A nil or disabled Provider is safe to use and records nothing.
type Provider struct {
	Enabled bool
	tracer  trace.Tracer
	meter   metric.Meter

	scansCounter      metric.Int64Counter
	scanDuration      metric.Float64Histogram
	riskScore         metric.Float64Histogram
	inferenceDuration metric.Float64Histogram

	shutdownFuncs []func(context.Context) error
}

// NewProvider configures OTLP exporters and providers. When disabled it
// returns a no-op provider.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !cfg.Enabled {
		p := &Provider{
			Enabled: false,
			tracer:  trace.NewNoopTracerProvider().Tracer(""),
			meter:   noop.NewMeterProvider().Meter(""),
		}
		p.initInstruments()
		return p, nil
	}

	log.Printf("telemetry enabled (OTLP %s) endpoint=%s", strings.ToLower(cfg.Protocol), cfg.Endpoint)

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			attribute.String("service.name", cfg.Service),
			attribute.String("service.version", cfg.Version),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExp, metricReader, err := newExporters(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(traceExp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(metricReader))
	otel.SetMeterProvider(mp)

	p := &Provider{
		Enabled:       true,
		tracer:        tp.Tracer("phishguard"),
		meter:         mp.Meter("phishguard"),
		shutdownFuncs: []func(context.Context) error{tp.Shutdown, mp.Shutdown},
	}
	p.initInstruments()
	return p, nil
}

func newExporters(ctx context.Context, cfg Config) (sdktrace.SpanExporter, sdkmetric.Reader, error) {
	switch strings.ToLower(cfg.Protocol) {
	case "http":
		traceExp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(cfg.Endpoint), otlptracehttp.WithInsecure())
		if err != nil {
			return nil, nil, err
		}
		metricExp, err := otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpoint(cfg.Endpoint), otlpmetrichttp.WithInsecure())
		if err != nil {
			return nil, nil, err
		}
		return traceExp, sdkmetric.NewPeriodicReader(metricExp), nil
	default: // grpc
		traceExp, err := otlptracegrpc.New(ctx, otlptracegrpc.WithEndpoint(cfg.Endpoint), otlptracegrpc.WithInsecure())
		if err != nil {
			return nil, nil, err
		}
		metricExp, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithEndpoint(cfg.Endpoint), otlpmetricgrpc.WithInsecure())
		if err != nil {
			return nil, nil, err
		}
		return traceExp, sdkmetric.NewPeriodicReader(metricExp), nil
	}
}

func (p *Provider) initInstruments() {
	if p == nil {
		return
	}
	// Telemetry is best-effort; instrument creation errors are ignored.
	p.scansCounter, _ = p.meter.Int64Counter("phishguard_scans_total")
	p.scanDuration, _ = p.meter.Float64Histogram("phishguard_scan_duration_ms")
	p.riskScore, _ = p.meter.Float64Histogram("phishguard_risk_score")
	p.inferenceDuration, _ = p.meter.Float64Histogram("phishguard_inference_duration_ms")
}

// Tracer returns the tracer.
func (p *Provider) Tracer() trace.Tracer {
	if p == nil {
		return trace.NewNoopTracerProvider().Tracer("")
	}
	return p.tracer
}

// RecordScan emits the per-scan counter and histograms.
func (p *Provider) RecordScan(verdict string, riskScore float64, dur time.Duration) {
	if p == nil {
		return
	}
	labels := metric.WithAttributes(attribute.String("phishguard.verdict", verdict))
	p.scansCounter.Add(context.Background(), 1, labels)
	p.scanDuration.Record(context.Background(), float64(dur.Microseconds())/1000.0, labels)
	p.riskScore.Record(context.Background(), riskScore, labels)
}

// RecordInference emits one classifier invocation duration.
func (p *Provider) RecordInference(model string, dur time.Duration) {
	if p == nil {
		return
	}
	p.inferenceDuration.Record(context.Background(), float64(dur.Microseconds())/1000.0,
		metric.WithAttributes(attribute.String("phishguard.model", model)))
}

// Shutdown flushes providers.
func (p *Provider) Shutdown(ctx context.Context) {
	if p == nil {
		return
	}
	for _, fn := range p.shutdownFuncs {
		_ = fn(ctx)
	}
}
