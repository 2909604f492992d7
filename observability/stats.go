package observability

import (
	"context"
	"runtime"
	"strings"
	"sync"

	"github.com/samber/lo"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var appStatsOnce sync.Once

// InitAppStats registers the process level gauges (goroutines and
// usable processors) under the meter "xlist/app/<name>" and starts the
// OpenTelemetry runtime collector on the current global provider. It
// is a one-shot; later calls are no-ops.
func InitAppStats(name string) {
	appStatsOnce.Do(func() {
		if name = strings.TrimSpace(name); name == "" {
			name = "default"
		}
		meter := otel.Meter(
			"xlist/app/"+name,
			metric.WithInstrumentationVersion(otelruntime.Version()),
		)
		lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
			"app.core.goroutines",
			metric.WithDescription(`The application goroutines' info.`),
			metric.WithInt64Callback(func(_ context.Context, ob metric.Int64Observer) error {
				ob.Observe(int64(runtime.NumGoroutine()))
				return nil
			}),
		))
		lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
			"app.core.processes",
			metric.WithDescription(`The application processes' info.`),
			metric.WithInt64Callback(func(_ context.Context, ob metric.Int64Observer) error {
				ob.Observe(int64(runtime.GOMAXPROCS(0)))
				return nil
			}),
		))
		_ = otelruntime.Start()
	})
}
