package metrics

import (
	"context"
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

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// DefaultServiceName is reported when no service name is configured.
const DefaultServiceName = "league-sim-service"

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

type otelInstruments struct {
	ctx              context.Context
	meter            metric.Meter
	requests         metric.Int64Counter
	requestLatencyMs metric.Float64Histogram
	weeks            metric.Int64Counter
	games            metric.Int64Counter
	phaseTransitions metric.Int64Counter
	dispatches       metric.Int64Counter
	saves            metric.Int64Counter
	saveErrors       metric.Int64Counter
	saveLatencyMs    metric.Float64Histogram
	autopilotCycles  metric.Int64Counter
	autopilotErrors  metric.Int64Counter
	autopilotMs      metric.Float64Histogram
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter(DefaultServiceName)
	inst := &otelInstruments{ctx: context.Background(), meter: meter}

	counters := []struct {
		name string
		dst  *metric.Int64Counter
	}{
		{"http_requests_total", &inst.requests},
		{"league_weeks_simulated_total", &inst.weeks},
		{"league_games_simulated_total", &inst.games},
		{"league_phase_transitions_total", &inst.phaseTransitions},
		{"offseason_dispatches_total", &inst.dispatches},
		{"save_writes_total", &inst.saves},
		{"save_errors_total", &inst.saveErrors},
		{"autopilot_cycles_total", &inst.autopilotCycles},
		{"autopilot_errors_total", &inst.autopilotErrors},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name)
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}

	histograms := []struct {
		name string
		dst  *metric.Float64Histogram
	}{
		{"http_request_duration_ms", &inst.requestLatencyMs},
		{"save_write_duration_ms", &inst.saveLatencyMs},
		{"autopilot_cycle_duration_ms", &inst.autopilotMs},
	}
	for _, h := range histograms {
		hist, err := meter.Float64Histogram(h.name)
		if err != nil {
			return nil, err
		}
		*h.dst = hist
	}
	return inst, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.recordCounter(o.requests, 1, attrs...)
	o.recordHistogram(o.requestLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordWeek(phase string, games int, noOp bool) {
	if o == nil {
		return
	}
	outcome := OutcomeOK
	if noOp {
		outcome = OutcomeRejected
	}
	o.recordCounter(o.weeks, 1, attribute.String(AttrPhase, phase), attribute.String(AttrOutcome, outcome))
	if games > 0 {
		o.recordCounter(o.games, int64(games), attribute.String(AttrPhase, phase))
	}
}

func (o *otelInstruments) recordPhaseTransition(phase string) {
	if o == nil {
		return
	}
	o.recordCounter(o.phaseTransitions, 1, attribute.String(AttrPhase, phase))
}

func (o *otelInstruments) recordDispatch(action, outcome string) {
	if o == nil {
		return
	}
	o.recordCounter(o.dispatches, 1, attribute.String(AttrAction, action), attribute.String(AttrOutcome, outcome))
}

func (o *otelInstruments) recordSave(backend string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrBackend, backend)}
	o.recordCounter(o.saves, 1, attrs...)
	o.recordHistogram(o.saveLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.saveErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordAutopilot(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.autopilotCycles, 1)
	o.recordHistogram(o.autopilotMs, float64(duration.Milliseconds()))
	if err != nil {
		o.recordCounter(o.autopilotErrors, 1)
	}
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
