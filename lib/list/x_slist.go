package list

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/multierr"

	"github.com/benz9527/xlist/lib/infra"
)

// sNode is one element of the singly linked chain.
type sNode[T comparable] struct {
	next  int32
	value T
}

// xSList is the arena backed singly linked list. It keeps a tail slot
// for O(1) appends, but with no back links every other tail-side
// operation degrades to a head walk: PopBack is O(n) and indexed
// operations always scan from the front.
// It is not a thread-safe data structure.
type xSList[T comparable] struct {
	arena *idxArena[sNode[T]]
	stats *listStats
	head  int32
	tail  int32
	len   atomic.Int64
}

var _ SinglyLinkedList[struct{}] = (*xSList[struct{}])(nil)

func NewSinglyLinkedList[T comparable](opts ...SListOption[T]) SinglyLinkedList[T] {
	l := &xSList[T]{
		head: nilIdx,
		tail: nilIdx,
	}
	for _, o := range opts {
		if o != nil {
			o(l)
		}
	}
	if l.arena == nil {
		l.arena = newIdxArena[sNode[T]](defaultArenaCapacity)
	}
	return l
}

// NewSinglyLinkedListOf builds a list holding values in the given order.
func NewSinglyLinkedListOf[T comparable](values ...T) SinglyLinkedList[T] {
	l := &xSList[T]{
		head:  nilIdx,
		tail:  nilIdx,
		arena: newIdxArena[sNode[T]](int32(len(values))),
	}
	for _, v := range values {
		l.pushBack(v)
	}
	return l
}

func (l *xSList[T]) Len() int64 {
	return l.len.Load()
}

func (l *xSList[T]) Empty() bool {
	return l.len.Load() <= 0
}

func (l *xSList[T]) Front() T {
	if l.head == nilIdx {
		panic("[x-slist] front of an empty list")
	}
	return l.arena.at(l.head).value
}

func (l *xSList[T]) Back() T {
	if l.tail == nilIdx {
		panic("[x-slist] back of an empty list")
	}
	return l.arena.at(l.tail).value
}

// seek resolves the arena slot of the element at position index and
// reports the link hops it spent. The caller guarantees that index is
// in range. A forward chain can only start at the head.
func (l *xSList[T]) seek(index int64) (int32, int64) {
	idx := l.head
	var steps int64
	for i := int64(0); i < index; i++ {
		idx = l.arena.at(idx).next
		steps++
	}
	return idx, steps
}

func (l *xSList[T]) Get(index int64) T {
	if index < 0 || index >= l.Len() {
		panic(fmt.Sprintf("[x-slist] get index %d out of range (size: %d)", index, l.Len()))
	}
	idx, steps := l.seek(index)
	l.stats.recordScan(statsOpGet, steps)
	return l.arena.at(idx).value
}

func (l *xSList[T]) Set(index int64, v T) {
	if index < 0 || index >= l.Len() {
		panic(fmt.Sprintf("[x-slist] set index %d out of range (size: %d)", index, l.Len()))
	}
	idx, steps := l.seek(index)
	l.stats.recordScan(statsOpSet, steps)
	l.arena.at(idx).value = v
}

func (l *xSList[T]) At(index int64) (T, error) {
	size := l.Len()
	if index < 0 || index >= size {
		return *new(T), infra.WrapErrorStackWithMessage(ErrListIndexOutOfRange,
			fmt.Sprintf("(index: %d, size: %d)", index, size))
	}
	idx, steps := l.seek(index)
	l.stats.recordScan(statsOpAt, steps)
	return l.arena.at(idx).value, nil
}

func (l *xSList[T]) SetAt(index int64, v T) error {
	size := l.Len()
	if index < 0 || index >= size {
		return infra.WrapErrorStackWithMessage(ErrListIndexOutOfRange,
			fmt.Sprintf("(index: %d, size: %d)", index, size))
	}
	idx, steps := l.seek(index)
	l.stats.recordScan(statsOpAt, steps)
	l.arena.at(idx).value = v
	return nil
}

func (l *xSList[T]) pushFront(v T) {
	n := l.arena.allocate()
	node := l.arena.at(n)
	node.value = v
	node.next = l.head
	if l.tail == nilIdx {
		l.tail = n
	}
	l.head = n
	l.len.Add(1)
}

func (l *xSList[T]) pushBack(v T) {
	n := l.arena.allocate()
	node := l.arena.at(n)
	node.value = v
	node.next = nilIdx
	if l.tail == nilIdx {
		l.head = n
	} else {
		l.arena.at(l.tail).next = n
	}
	l.tail = n
	l.len.Add(1)
}

func (l *xSList[T]) PushFront(v T) {
	l.pushFront(v)
	l.stats.recordOp(statsOpPushFront)
	l.stats.recordLen(1)
}

func (l *xSList[T]) PushBack(v T) {
	l.pushBack(v)
	l.stats.recordOp(statsOpPushBack)
	l.stats.recordLen(1)
}

func (l *xSList[T]) PopFront() (T, bool) {
	if l.head == nilIdx {
		return *new(T), false
	}
	old := l.head
	node := l.arena.at(old)
	v := node.value
	l.head = node.next
	if l.head == nilIdx {
		l.tail = nilIdx
	}
	l.arena.release(old)
	l.len.Add(-1)
	l.stats.recordOp(statsOpPopFront)
	l.stats.recordLen(-1)
	return v, true
}

// PopBack removes the last element. Finding its predecessor costs a
// full head walk.
func (l *xSList[T]) PopBack() (T, bool) {
	if l.tail == nilIdx {
		return *new(T), false
	}
	old := l.tail
	v := l.arena.at(old).value
	if l.head == old {
		l.head, l.tail = nilIdx, nilIdx
	} else {
		pred := l.head
		var steps int64
		for l.arena.at(pred).next != old {
			pred = l.arena.at(pred).next
			steps++
		}
		l.stats.recordScan(statsOpPopBack, steps)
		l.arena.at(pred).next = nilIdx
		l.tail = pred
	}
	l.arena.release(old)
	l.len.Add(-1)
	l.stats.recordOp(statsOpPopBack)
	l.stats.recordLen(-1)
	return v, true
}

func (l *xSList[T]) Insert(index int64, v T) bool {
	size := l.Len()
	switch {
	case index < 0 || index > size:
		return false
	case index == 0:
		l.PushFront(v)
		return true
	case index == size:
		l.PushBack(v)
		return true
	}
	pred, steps := l.seek(index - 1)
	l.stats.recordScan(statsOpInsert, steps)
	n := l.arena.allocate()
	node := l.arena.at(n)
	node.value = v
	predNode := l.arena.at(pred)
	node.next = predNode.next
	predNode.next = n
	l.len.Add(1)
	l.stats.recordOp(statsOpInsert)
	l.stats.recordLen(1)
	return true
}

func (l *xSList[T]) Remove(index int64) (T, bool) {
	size := l.Len()
	switch {
	case index < 0 || index >= size:
		return *new(T), false
	case index == 0:
		return l.PopFront()
	case index == size-1:
		return l.PopBack()
	}
	pred, steps := l.seek(index - 1)
	l.stats.recordScan(statsOpRemove, steps)
	predNode := l.arena.at(pred)
	at := predNode.next
	node := l.arena.at(at)
	v := node.value
	predNode.next = node.next
	l.arena.release(at)
	l.len.Add(-1)
	l.stats.recordOp(statsOpRemove)
	l.stats.recordLen(-1)
	return v, true
}

func (l *xSList[T]) clearNodes() int64 {
	removed := l.Len()
	for idx := l.head; idx != nilIdx; {
		next := l.arena.at(idx).next
		l.arena.release(idx)
		idx = next
	}
	l.head, l.tail = nilIdx, nilIdx
	l.len.Store(0)
	return removed
}

func (l *xSList[T]) Clear() {
	removed := l.clearNodes()
	l.stats.recordOp(statsOpClear)
	l.stats.recordLen(-removed)
}

func (l *xSList[T]) Clone() SinglyLinkedList[T] {
	dst := &xSList[T]{
		arena: newIdxArena[sNode[T]](int32(l.Len())),
		stats: l.stats,
		head:  nilIdx,
		tail:  nilIdx,
	}
	for idx := l.head; idx != nilIdx; {
		node := l.arena.at(idx)
		next := node.next
		dst.pushBack(node.value)
		idx = next
	}
	dst.stats.recordOp(statsOpCopy)
	dst.stats.recordLen(dst.Len())
	return dst
}

func (l *xSList[T]) CopyFrom(src SinglyLinkedList[T]) {
	if src == nil {
		return
	}
	if other, ok := src.(*xSList[T]); ok && (other == nil || other == l) {
		return
	}
	oldLen := l.clearNodes()
	src.Foreach(func(_ int64, v T) bool {
		l.pushBack(v)
		return true
	})
	l.stats.recordOp(statsOpCopy)
	l.stats.recordLen(l.Len() - oldLen)
}

func (l *xSList[T]) MoveFrom(src SinglyLinkedList[T]) bool {
	other, ok := src.(*xSList[T])
	if !ok || other == nil || other == l {
		return false
	}
	oldLen := l.clearNodes()
	moved := other.Len()
	l.arena = other.arena
	l.head, l.tail = other.head, other.tail
	l.len.Store(moved)
	other.arena = newIdxArena[sNode[T]](defaultArenaCapacity)
	other.head, other.tail = nilIdx, nilIdx
	other.len.Store(0)
	l.stats.recordOp(statsOpMove)
	l.stats.recordLen(moved - oldLen)
	other.stats.recordLen(-moved)
	return true
}

func (l *xSList[T]) Foreach(fn func(idx int64, v T) bool) {
	if fn == nil {
		return
	}
	var i int64
	for idx := l.head; idx != nilIdx; i++ {
		node := l.arena.at(idx)
		next := node.next
		if !fn(i, node.value) {
			return
		}
		idx = next
	}
}

func (l *xSList[T]) FindFirst(v T, compareFn ...func(v T) bool) (int64, bool) {
	match := func(x T) bool { return x == v }
	if len(compareFn) > 0 && compareFn[0] != nil {
		match = compareFn[0]
	}
	var i int64
	for idx := l.head; idx != nilIdx; i++ {
		node := l.arena.at(idx)
		if match(node.value) {
			return i, true
		}
		idx = node.next
	}
	return -1, false
}

func (l *xSList[T]) ToSlice() []T {
	values := make([]T, 0, l.Len())
	for idx := l.head; idx != nilIdx; {
		node := l.arena.at(idx)
		values = append(values, node.value)
		idx = node.next
	}
	return values
}

func (l *xSList[T]) CheckIntegrity() error {
	var merr error
	violation := func(format string, args ...any) {
		merr = multierr.Append(merr, infra.WrapErrorStackWithMessage(
			ErrListIntegrityViolation, fmt.Sprintf(format, args...)))
	}
	size := l.Len()
	if l.head == nilIdx || l.tail == nilIdx {
		if l.head != l.tail {
			violation("one endpoint is detached (head: %d, tail: %d)", l.head, l.tail)
		}
		if size != 0 {
			violation("no endpoints but the recorded length is %d", size)
		}
		return merr
	}
	if next := l.arena.at(l.tail).next; next != nilIdx {
		violation("tail holds a forward link to slot %d", next)
	}
	var (
		count int64
		last  = nilIdx
	)
	for idx := l.head; idx != nilIdx; {
		count++
		last = idx
		if count > size {
			violation("forward walk exceeds the recorded length %d, possible cycle", size)
			break
		}
		idx = l.arena.at(idx).next
	}
	if count != size {
		violation("forward walk visited %d nodes, recorded length is %d", count, size)
	}
	if last != l.tail {
		violation("forward walk ended at slot %d instead of the tail slot %d", last, l.tail)
	}
	return merr
}
