package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider   *metric.MeterProvider
	meter           otelmetric.Meter
	analysisCounter otelmetric.Int64Counter
	analysisTimer   otelmetric.Float64Histogram
	reviewsScored   otelmetric.Int64Counter
	degradations    otelmetric.Int64Counter
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	analysisCounter, _ := meter.Int64Counter(
		"analyses.processed",
		otelmetric.WithDescription("Number of analysis requests processed"),
	)

	analysisTimer, _ := meter.Float64Histogram(
		"analyses.duration",
		otelmetric.WithDescription("Analysis request duration"),
		otelmetric.WithUnit("ms"),
	)

	reviewsScored, _ := meter.Int64Counter(
		"reviews.scored",
		otelmetric.WithDescription("Number of reviews submitted for scoring"),
	)

	degradations, _ := meter.Int64Counter(
		"service.degradations",
		otelmetric.WithDescription("Downstream failures recovered with defaults"),
	)

	return &Observability{
		meterProvider:   provider,
		meter:           meter,
		analysisCounter: analysisCounter,
		analysisTimer:   analysisTimer,
		reviewsScored:   reviewsScored,
		degradations:    degradations,
	}
}

func (o *Observability) RecordAnalysis(ctx context.Context, flow, status string) {
	if o.analysisCounter != nil {
		o.analysisCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("flow", flow),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordAnalysisDuration(ctx context.Context, duration time.Duration, flow string) {
	if o.analysisTimer != nil {
		o.analysisTimer.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("flow", flow),
		))
	}
}

func (o *Observability) RecordReviewsScored(ctx context.Context, count int) {
	if o.reviewsScored != nil {
		o.reviewsScored.Add(ctx, int64(count))
	}
}

func (o *Observability) RecordDegradation(ctx context.Context, stage string) {
	if o.degradations != nil {
		o.degradations.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("stage", stage),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
