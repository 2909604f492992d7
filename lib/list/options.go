package list

type DListOption[T comparable] func(*xDList[T])

// WithDListStats enables the OpenTelemetry instruments for this list.
// Disabled by default.
func WithDListStats[T comparable]() DListOption[T] {
	return func(l *xDList[T]) {
		l.stats = newListStats(listKindDoubly)
	}
}

// WithDListArenaCapacity pre-sizes the node arena for an expected
// element count to avoid growth reallocations.
func WithDListArenaCapacity[T comparable](capHint int32) DListOption[T] {
	return func(l *xDList[T]) {
		l.arena = newIdxArena[dNode[T]](capHint)
	}
}

type SListOption[T comparable] func(*xSList[T])

// WithSListStats enables the OpenTelemetry instruments for this list.
// Disabled by default.
func WithSListStats[T comparable]() SListOption[T] {
	return func(l *xSList[T]) {
		l.stats = newListStats(listKindSingly)
	}
}

// WithSListArenaCapacity pre-sizes the node arena for an expected
// element count to avoid growth reallocations.
func WithSListArenaCapacity[T comparable](capHint int32) SListOption[T] {
	return func(l *xSList[T]) {
		l.arena = newIdxArena[sNode[T]](capHint)
	}
}
