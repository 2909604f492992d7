package observability

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
)

func TestInitConsoleMetricsExporter(t *testing.T) {
	buf := &bytes.Buffer{}
	shutdown, err := InitConsoleMetricsExporter(time.Hour, time.Second, stdoutmetric.WithWriter(buf))
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	counter, err := otel.Meter("xlist/console-test").Int64Counter("console.test.count")
	require.NoError(t, err)
	counter.Add(context.Background(), 3)

	// Shutdown flushes the pending batch through the periodic reader.
	require.NoError(t, shutdown(context.Background()))
	require.Contains(t, buf.String(), "console.test.count")
}

func TestInitPrometheusMetricsExporter(t *testing.T) {
	shutdown, err := InitPrometheusMetricsExporter()
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(context.Background()))
}
