package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const (
	defaultServiceName = "matrix-screener"
	meterName          = "github.com/preston-bernstein/matrix-screener"
	otlpPushInterval   = 15 * time.Second
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup builds a meter provider that always serves Prometheus and additionally
// pushes over OTLP/HTTP when an endpoint is configured. When telemetry is
// disabled the Recorder keeps only its in-memory counters and the handler is nil.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		return NewRecorder(), nil, noop, nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}
	readers := []sdkmetric.Reader{promReader}
	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		readers = append(readers, otlpReader)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, r := range readers {
		opts = append(opts, sdkmetric.WithReader(r))
	}
	provider := sdkmetric.NewMeterProvider(opts...)

	inst, err := instrumentFactory(provider)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, nil, nil, err
	}
	return newRecorder(inst), promHandler, provider.Shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(otlpPushInterval)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	exp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return exp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}), nil
}

type otelInstruments struct {
	requests         metric.Int64Counter
	requestLatency   metric.Float64Histogram
	providerCalls    metric.Int64Counter
	providerFailures metric.Int64Counter
	providerLatency  metric.Float64Histogram
	rateLimitHits    metric.Int64Counter
	retryAfter       metric.Float64Histogram
	pollerCycles     metric.Int64Counter
	pollerLatency    metric.Float64Histogram
	frames           metric.Int64Counter
	frameColumns     metric.Int64Histogram
	streamClients    metric.Int64UpDownCounter
}

// instrumentBuilder collects creation errors so instruments can be declared in one block.
type instrumentBuilder struct {
	meter metric.Meter
	errs  []error
}

func (b *instrumentBuilder) counter(name, desc string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc))
	b.errs = append(b.errs, err)
	return c
}

func (b *instrumentBuilder) millis(name, desc string) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name, metric.WithDescription(desc))
	b.errs = append(b.errs, err)
	return h
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	b := &instrumentBuilder{meter: provider.Meter(meterName)}

	inst := &otelInstruments{
		requests:         b.counter("http_requests_total", "HTTP requests served"),
		requestLatency:   b.millis("http_request_duration_ms", "HTTP request latency"),
		providerCalls:    b.counter("provider_calls_total", "Upstream match provider calls"),
		providerFailures: b.counter("provider_failures_total", "Upstream match provider calls that failed"),
		providerLatency:  b.millis("provider_call_duration_ms", "Upstream match provider latency"),
		rateLimitHits:    b.counter("provider_rate_limit_hits_total", "Upstream 429 responses"),
		retryAfter:       b.millis("provider_retry_after_ms", "Retry-After advertised on 429 responses"),
		pollerCycles:     b.counter("poller_cycles_total", "Match load cycles by outcome"),
		pollerLatency:    b.millis("poller_cycle_duration_ms", "Match load cycle latency"),
		frames:           b.counter("matrix_frames_total", "Background frames rendered"),
	}

	columns, err := b.meter.Int64Histogram("matrix_frame_columns", metric.WithDescription("Glyph columns per frame"))
	b.errs = append(b.errs, err)
	inst.frameColumns = columns

	clients, err := b.meter.Int64UpDownCounter("stream_clients", metric.WithDescription("Connected websocket clients"))
	b.errs = append(b.errs, err)
	inst.streamClients = clients

	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}
	return inst, nil
}

func outcome(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String(AttrOutcome, "error")
	}
	return attribute.String(AttrOutcome, "ok")
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	set := metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	)
	ctx := context.Background()
	o.requests.Add(ctx, 1, set)
	o.requestLatency.Record(ctx, float64(duration.Milliseconds()), set)
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	set := metric.WithAttributes(attribute.String(AttrProvider, provider))
	ctx := context.Background()
	o.providerCalls.Add(ctx, 1, set)
	o.providerLatency.Record(ctx, float64(duration.Milliseconds()), set)
	if err != nil {
		o.providerFailures.Add(ctx, 1, set)
	}
}

func (o *otelInstruments) recordRateLimit(provider string, retryAfter time.Duration) {
	set := metric.WithAttributes(attribute.String(AttrProvider, provider))
	ctx := context.Background()
	o.rateLimitHits.Add(ctx, 1, set)
	if retryAfter > 0 {
		o.retryAfter.Record(ctx, float64(retryAfter.Milliseconds()), set)
	}
}

func (o *otelInstruments) recordPoller(league string, duration time.Duration, err error) {
	ctx := context.Background()
	o.pollerCycles.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrLeague, league), outcome(err)))
	o.pollerLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attribute.String(AttrLeague, league)))
}

func (o *otelInstruments) recordFrame(columns int) {
	ctx := context.Background()
	o.frames.Add(ctx, 1)
	o.frameColumns.Record(ctx, int64(columns))
}

func (o *otelInstruments) recordStreamClients(delta int) {
	o.streamClients.Add(context.Background(), int64(delta))
}
