package list

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// newListStatsReader installs a fresh manual-reader provider so that
// the instruments created by the lists under test bind to it.
func newListStatsReader() *sdkmetric.ManualReader {
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	return reader
}

func collectListMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return &rm
}

func findListMetric(t *testing.T, rm *metricdata.ResourceMetrics, name string) metricdata.Metrics {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		if sm.Scope.Name != listStatsMeterName {
			continue
		}
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m
			}
		}
	}
	t.Fatalf("metric %q not collected", name)
	return metricdata.Metrics{}
}

func sumValue(t *testing.T, m metricdata.Metrics, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %q carries no int64 sum", m.Name)
	want := attribute.NewSet(attrs...)
	for _, dp := range sum.DataPoints {
		if dp.Attributes.Equals(&want) {
			return dp.Value
		}
	}
	t.Fatalf("metric %q has no data point for %v", m.Name, attrs)
	return 0
}

func histogramPoint(t *testing.T, m metricdata.Metrics, attrs ...attribute.KeyValue) metricdata.HistogramDataPoint[int64] {
	t.Helper()
	hist, ok := m.Data.(metricdata.Histogram[int64])
	require.True(t, ok, "metric %q carries no int64 histogram", m.Name)
	want := attribute.NewSet(attrs...)
	for _, dp := range hist.DataPoints {
		if dp.Attributes.Equals(&want) {
			return dp
		}
	}
	t.Fatalf("metric %q has no data point for %v", m.Name, attrs)
	return metricdata.HistogramDataPoint[int64]{}
}

func TestListStats_ScanStepsFollowNearerEnd(t *testing.T) {
	reader := newListStatsReader()

	dl := NewDoublyLinkedList[int](WithDListStats[int]())
	for i := 0; i < 10; i++ {
		dl.PushBack(i)
	}
	require.Equal(t, 9, dl.Get(9)) // tail is adjacent, zero hops
	require.Equal(t, 5, dl.Get(5)) // still nearer to the tail, four hops

	sl := NewSinglyLinkedList[int](WithSListStats[int]())
	for i := 0; i < 10; i++ {
		sl.PushBack(i)
	}
	require.Equal(t, 9, sl.Get(9)) // head walk only, nine hops

	rm := collectListMetrics(t, reader)
	scans := findListMetric(t, rm, "xlist.scan.steps")

	doublyGet := histogramPoint(t, scans,
		attribute.String("kind", listKindDoubly), attribute.String("op", statsOpGet))
	require.Equal(t, uint64(2), doublyGet.Count)
	require.Equal(t, int64(4), doublyGet.Sum)

	singlyGet := histogramPoint(t, scans,
		attribute.String("kind", listKindSingly), attribute.String("op", statsOpGet))
	require.Equal(t, uint64(1), singlyGet.Count)
	require.Equal(t, int64(9), singlyGet.Sum)
}

func TestListStats_ElementCountTracksLen(t *testing.T) {
	reader := newListStatsReader()

	l := NewDoublyLinkedList[int](WithDListStats[int]())
	for i := 0; i < 6; i++ {
		l.PushBack(i)
	}
	_, _ = l.PopFront()
	_, _ = l.Remove(2)
	require.True(t, l.Insert(1, 42))
	require.Equal(t, int64(5), l.Len())

	rm := collectListMetrics(t, reader)
	elements := findListMetric(t, rm, "xlist.element.count")
	require.Equal(t, l.Len(), sumValue(t, elements, attribute.String("kind", listKindDoubly)))
}

func TestListStats_OpCount(t *testing.T) {
	reader := newListStatsReader()

	l := NewDoublyLinkedList[int](WithDListStats[int]())
	l.PushBack(1)
	l.PushBack(2)
	l.PushFront(0)
	_, _ = l.PopBack()
	l.Clear()

	rm := collectListMetrics(t, reader)
	ops := findListMetric(t, rm, "xlist.op.count")
	kind := attribute.String("kind", listKindDoubly)
	require.Equal(t, int64(2), sumValue(t, ops, kind, attribute.String("op", statsOpPushBack)))
	require.Equal(t, int64(1), sumValue(t, ops, kind, attribute.String("op", statsOpPushFront)))
	require.Equal(t, int64(1), sumValue(t, ops, kind, attribute.String("op", statsOpPopBack)))
	require.Equal(t, int64(1), sumValue(t, ops, kind, attribute.String("op", statsOpClear)))
}

func TestListStats_BulkOpsCountOnce(t *testing.T) {
	reader := newListStatsReader()

	src := NewDoublyLinkedList[int](WithDListStats[int]())
	for i := 0; i < 4; i++ {
		src.PushBack(i)
	}
	dup := src.Clone()
	require.Equal(t, int64(4), dup.Len())

	rm := collectListMetrics(t, reader)
	ops := findListMetric(t, rm, "xlist.op.count")
	kind := attribute.String("kind", listKindDoubly)
	// the clone counts as one copy, its internal appends are not pushes
	require.Equal(t, int64(1), sumValue(t, ops, kind, attribute.String("op", statsOpCopy)))
	require.Equal(t, int64(4), sumValue(t, ops, kind, attribute.String("op", statsOpPushBack)))

	elements := findListMetric(t, rm, "xlist.element.count")
	require.Equal(t, int64(8), sumValue(t, elements, kind))
}

func TestListStats_MoveFromDrainsDonorCount(t *testing.T) {
	reader := newListStatsReader()

	src := NewDoublyLinkedList[int](WithDListStats[int]())
	for i := 0; i < 4; i++ {
		src.PushBack(i)
	}
	dst := NewDoublyLinkedList[int]()
	require.True(t, dst.MoveFrom(src))

	rm := collectListMetrics(t, reader)
	elements := findListMetric(t, rm, "xlist.element.count")
	require.Zero(t, sumValue(t, elements, attribute.String("kind", listKindDoubly)))
}

func TestListStats_DisabledByDefault(t *testing.T) {
	reader := newListStatsReader()

	l := NewDoublyLinkedList[int]()
	l.PushBack(1)
	_ = l.Get(0)
	_, _ = l.PopFront()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Empty(t, rm.ScopeMetrics)
}
