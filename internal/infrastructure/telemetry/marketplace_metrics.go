package telemetry

import (
	"context"
	"strconv"
	"time"

	"github.com/sellaids/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "sellaids-backend"

// Meter returns the application meter from mp
func Meter(mp *MeterProvider) metric.Meter {
	return mp.Meter(meterName)
}

// MarketplaceMetrics counts domain events crossing the event bus. It
// subscribes to every event type, so new events are counted as they appear.
type MarketplaceMetrics struct {
	events metric.Int64Counter
}

var _ shared.EventHandler = (*MarketplaceMetrics)(nil)

func NewMarketplaceMetrics(meter metric.Meter) (*MarketplaceMetrics, error) {
	events, err := meter.Int64Counter("sellaids.domain_events",
		metric.WithDescription("Domain events published, by type"),
		metric.WithUnit("{event}"))
	if err != nil {
		return nil, err
	}
	return &MarketplaceMetrics{events: events}, nil
}

func (m *MarketplaceMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	m.events.Add(ctx, 1, metric.WithAttributes(
		AttrEventType.String(event.EventType()),
		AttrAggregateType.String(event.AggregateType())))
	return nil
}

func (m *MarketplaceMetrics) EventTypes() []string { return nil }

// HTTPMetrics backs the request metrics middleware
type HTTPMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func NewHTTPMetrics(meter metric.Meter) (*HTTPMetrics, error) {
	requests, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("HTTP requests served"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(HTTPDurationBuckets...))
	if err != nil {
		return nil, err
	}
	return &HTTPMetrics{requests: requests, duration: duration}, nil
}

// Record counts one request. route is the matched gin route template, so
// ids in the path do not explode cardinality.
func (m *HTTPMetrics) Record(ctx context.Context, method, route string, status int, d time.Duration) {
	attrs := metric.WithAttributes(
		AttrHTTPMethod.String(method),
		AttrHTTPRoute.String(route),
		AttrHTTPStatusCode.String(strconv.Itoa(status)))
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, d.Seconds(), attrs)
}
