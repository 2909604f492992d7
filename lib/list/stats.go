package list

import (
	"context"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const listStatsMeterName = "xlist/list"

const (
	listKindDoubly = "doubly"
	listKindSingly = "singly"
)

const (
	statsOpPushFront = "push_front"
	statsOpPushBack  = "push_back"
	statsOpPopFront  = "pop_front"
	statsOpPopBack   = "pop_back"
	statsOpInsert    = "insert"
	statsOpRemove    = "remove"
	statsOpClear     = "clear"
	statsOpCopy      = "copy"
	statsOpMove      = "move"
	statsOpGet       = "get"
	statsOpSet       = "set"
	statsOpAt        = "at"
)

// listStats publishes the OpenTelemetry instruments of one container.
// It is opt-in through the stats options and every recording method
// tolerates a nil receiver, so the call sites stay branch-free.
type listStats struct {
	kindAttr attribute.KeyValue
	elements metric.Int64UpDownCounter
	ops      metric.Int64Counter
	scans    metric.Int64Histogram
}

func newListStats(kind string) *listStats {
	meter := otel.Meter(listStatsMeterName)
	return &listStats{
		kindAttr: attribute.String("kind", kind),
		elements: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"xlist.element.count",
			metric.WithDescription("The live element count of the list."),
		)),
		ops: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xlist.op.count",
			metric.WithDescription("The completed list mutations grouped by op."),
		)),
		scans: lo.Must[metric.Int64Histogram](meter.Int64Histogram(
			"xlist.scan.steps",
			metric.WithDescription("The link hops spent per indexed seek."),
			metric.WithUnit("{hop}"),
		)),
	}
}

func (s *listStats) recordOp(op string) {
	if s == nil {
		return
	}
	s.ops.Add(context.Background(), 1,
		metric.WithAttributes(s.kindAttr, attribute.String("op", op)))
}

func (s *listStats) recordLen(delta int64) {
	if s == nil || delta == 0 {
		return
	}
	s.elements.Add(context.Background(), delta, metric.WithAttributes(s.kindAttr))
}

func (s *listStats) recordScan(op string, steps int64) {
	if s == nil {
		return
	}
	s.scans.Record(context.Background(), steps,
		metric.WithAttributes(s.kindAttr, attribute.String("op", op)))
}
