package list

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/multierr"

	"github.com/benz9527/xlist/lib/infra"
)

// dNode is one element of the doubly linked chain. The links address
// arena slots, not memory.
type dNode[T comparable] struct {
	prev  int32
	next  int32
	value T
}

// xDList is the arena backed doubly linked list.
//
//	head                                  tail
//	 |                                     |
//	 v                                     v
//	+---------+ --> +---------+ --> +---------+ --> nilIdx
//	| slot 4  |     | slot 0  |     | slot 2  |
//	+---------+ <-- +---------+ <-- +---------+
//	   nilIdx <--
//
// Element order lives purely in the links; slot numbers carry no
// meaning beyond addressing. Indexed operations walk from whichever
// endpoint is nearer to the requested position.
// It is not a thread-safe data structure.
type xDList[T comparable] struct {
	arena *idxArena[dNode[T]]
	stats *listStats
	head  int32
	tail  int32
	len   atomic.Int64
}

var _ DoublyLinkedList[struct{}] = (*xDList[struct{}])(nil)

func NewDoublyLinkedList[T comparable](opts ...DListOption[T]) DoublyLinkedList[T] {
	l := &xDList[T]{
		head: nilIdx,
		tail: nilIdx,
	}
	for _, o := range opts {
		if o != nil {
			o(l)
		}
	}
	if l.arena == nil {
		l.arena = newIdxArena[dNode[T]](defaultArenaCapacity)
	}
	return l
}

// NewDoublyLinkedListOf builds a list holding values in the given order.
func NewDoublyLinkedListOf[T comparable](values ...T) DoublyLinkedList[T] {
	l := &xDList[T]{
		head:  nilIdx,
		tail:  nilIdx,
		arena: newIdxArena[dNode[T]](int32(len(values))),
	}
	for _, v := range values {
		l.pushBack(v)
	}
	return l
}

func (l *xDList[T]) Len() int64 {
	return l.len.Load()
}

func (l *xDList[T]) Empty() bool {
	return l.len.Load() <= 0
}

func (l *xDList[T]) Front() T {
	if l.head == nilIdx {
		panic("[x-dlist] front of an empty list")
	}
	return l.arena.at(l.head).value
}

func (l *xDList[T]) Back() T {
	if l.tail == nilIdx {
		panic("[x-dlist] back of an empty list")
	}
	return l.arena.at(l.tail).value
}

// seek resolves the arena slot of the element at position index and
// reports the link hops it spent. The caller guarantees that index is
// in range. The walk starts from whichever end is strictly nearer, so
// it never hops more than half the chain.
func (l *xDList[T]) seek(index int64) (int32, int64) {
	var (
		idx   int32
		steps int64
	)
	if size := l.Len(); size-1-index < index {
		idx = l.tail
		for i := size - 1; i > index; i-- {
			idx = l.arena.at(idx).prev
			steps++
		}
	} else {
		idx = l.head
		for i := int64(0); i < index; i++ {
			idx = l.arena.at(idx).next
			steps++
		}
	}
	return idx, steps
}

func (l *xDList[T]) Get(index int64) T {
	if index < 0 || index >= l.Len() {
		panic(fmt.Sprintf("[x-dlist] get index %d out of range (size: %d)", index, l.Len()))
	}
	idx, steps := l.seek(index)
	l.stats.recordScan(statsOpGet, steps)
	return l.arena.at(idx).value
}

func (l *xDList[T]) Set(index int64, v T) {
	if index < 0 || index >= l.Len() {
		panic(fmt.Sprintf("[x-dlist] set index %d out of range (size: %d)", index, l.Len()))
	}
	idx, steps := l.seek(index)
	l.stats.recordScan(statsOpSet, steps)
	l.arena.at(idx).value = v
}

func (l *xDList[T]) At(index int64) (T, error) {
	size := l.Len()
	if index < 0 || index >= size {
		return *new(T), infra.WrapErrorStackWithMessage(ErrListIndexOutOfRange,
			fmt.Sprintf("(index: %d, size: %d)", index, size))
	}
	idx, steps := l.seek(index)
	l.stats.recordScan(statsOpAt, steps)
	return l.arena.at(idx).value, nil
}

func (l *xDList[T]) SetAt(index int64, v T) error {
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

// pushBack splices a fresh node behind tail without touching the stats.
// Bulk loaders reuse it so that a clone counts as one op, not n pushes.
func (l *xDList[T]) pushBack(v T) int32 {
	n := l.arena.allocate()
	node := l.arena.at(n)
	node.value = v
	node.prev, node.next = l.tail, nilIdx
	if l.tail == nilIdx {
		l.head = n
	} else {
		l.arena.at(l.tail).next = n
	}
	l.tail = n
	l.len.Add(1)
	return n
}

func (l *xDList[T]) pushFront(v T) int32 {
	n := l.arena.allocate()
	node := l.arena.at(n)
	node.value = v
	node.prev, node.next = nilIdx, l.head
	if l.head == nilIdx {
		l.tail = n
	} else {
		l.arena.at(l.head).prev = n
	}
	l.head = n
	l.len.Add(1)
	return n
}

func (l *xDList[T]) PushBack(v T) Cursor[T] {
	n := l.pushBack(v)
	l.stats.recordOp(statsOpPushBack)
	l.stats.recordLen(1)
	return l.cursorAt(n, cursorForward)
}

func (l *xDList[T]) PushFront(v T) Cursor[T] {
	n := l.pushFront(v)
	l.stats.recordOp(statsOpPushFront)
	l.stats.recordLen(1)
	return l.cursorAt(n, cursorForward)
}

func (l *xDList[T]) PopFront() (T, bool) {
	if l.head == nilIdx {
		return *new(T), false
	}
	old := l.head
	node := l.arena.at(old)
	v := node.value
	l.head = node.next
	if l.head == nilIdx {
		l.tail = nilIdx
	} else {
		l.arena.at(l.head).prev = nilIdx
	}
	l.arena.release(old)
	l.len.Add(-1)
	l.stats.recordOp(statsOpPopFront)
	l.stats.recordLen(-1)
	return v, true
}

func (l *xDList[T]) PopBack() (T, bool) {
	if l.tail == nilIdx {
		return *new(T), false
	}
	old := l.tail
	node := l.arena.at(old)
	v := node.value
	l.tail = node.prev
	if l.tail == nilIdx {
		l.head = nilIdx
	} else {
		l.arena.at(l.tail).next = nilIdx
	}
	l.arena.release(old)
	l.len.Add(-1)
	l.stats.recordOp(statsOpPopBack)
	l.stats.recordLen(-1)
	return v, true
}

func (l *xDList[T]) Insert(index int64, v T) bool {
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
	at, steps := l.seek(index)
	l.stats.recordScan(statsOpInsert, steps)
	n := l.arena.allocate()
	node := l.arena.at(n)
	node.value = v
	prev := l.arena.at(at).prev
	node.prev, node.next = prev, at
	l.arena.at(prev).next = n
	l.arena.at(at).prev = n
	l.len.Add(1)
	l.stats.recordOp(statsOpInsert)
	l.stats.recordLen(1)
	return true
}

func (l *xDList[T]) Remove(index int64) (T, bool) {
	size := l.Len()
	switch {
	case index < 0 || index >= size:
		return *new(T), false
	case index == 0:
		return l.PopFront()
	case index == size-1:
		return l.PopBack()
	}
	at, steps := l.seek(index)
	l.stats.recordScan(statsOpRemove, steps)
	node := l.arena.at(at)
	v := node.value
	prev, next := node.prev, node.next
	l.arena.at(prev).next = next
	l.arena.at(next).prev = prev
	l.arena.release(at)
	l.len.Add(-1)
	l.stats.recordOp(statsOpRemove)
	l.stats.recordLen(-1)
	return v, true
}

// clearNodes releases every node and reports how many there were.
func (l *xDList[T]) clearNodes() int64 {
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

func (l *xDList[T]) Clear() {
	removed := l.clearNodes()
	l.stats.recordOp(statsOpClear)
	l.stats.recordLen(-removed)
}

func (l *xDList[T]) Clone() DoublyLinkedList[T] {
	dst := &xDList[T]{
		arena: newIdxArena[dNode[T]](int32(l.Len())),
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

func (l *xDList[T]) CopyFrom(src DoublyLinkedList[T]) {
	if src == nil {
		return
	}
	if other, ok := src.(*xDList[T]); ok && (other == nil || other == l) {
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

func (l *xDList[T]) MoveFrom(src DoublyLinkedList[T]) bool {
	other, ok := src.(*xDList[T])
	if !ok || other == nil || other == l {
		return false
	}
	oldLen := l.clearNodes()
	moved := other.Len()
	l.arena = other.arena
	l.head, l.tail = other.head, other.tail
	l.len.Store(moved)
	other.arena = newIdxArena[dNode[T]](defaultArenaCapacity)
	other.head, other.tail = nilIdx, nilIdx
	other.len.Store(0)
	l.stats.recordOp(statsOpMove)
	l.stats.recordLen(moved - oldLen)
	other.stats.recordLen(-moved)
	return true
}

func (l *xDList[T]) Foreach(fn func(idx int64, v T) bool) {
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

// ReverseForeach walks from tail to head. idx is the iteration ordinal
// starting at 0, not the element position.
func (l *xDList[T]) ReverseForeach(fn func(idx int64, v T) bool) {
	if fn == nil {
		return
	}
	var i int64
	for idx := l.tail; idx != nilIdx; i++ {
		node := l.arena.at(idx)
		prev := node.prev
		if !fn(i, node.value) {
			return
		}
		idx = prev
	}
}

func (l *xDList[T]) FindFirst(v T, compareFn ...func(v T) bool) (Cursor[T], bool) {
	match := func(x T) bool { return x == v }
	if len(compareFn) > 0 && compareFn[0] != nil {
		match = compareFn[0]
	}
	for idx := l.head; idx != nilIdx; {
		node := l.arena.at(idx)
		if match(node.value) {
			return l.cursorAt(idx, cursorForward), true
		}
		idx = node.next
	}
	return l.End(), false
}

func (l *xDList[T]) ToSlice() []T {
	values := make([]T, 0, l.Len())
	for idx := l.head; idx != nilIdx; {
		node := l.arena.at(idx)
		values = append(values, node.value)
		idx = node.next
	}
	return values
}

func (l *xDList[T]) CheckIntegrity() error {
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
	if prev := l.arena.at(l.head).prev; prev != nilIdx {
		violation("head holds a back link to slot %d", prev)
	}
	if next := l.arena.at(l.tail).next; next != nilIdx {
		violation("tail holds a forward link to slot %d", next)
	}
	var (
		count int64
		last  = nilIdx
	)
	for idx := l.head; idx != nilIdx; {
		node := l.arena.at(idx)
		if node.next != nilIdx && l.arena.at(node.next).prev != idx {
			violation("forward link of position %d is not mirrored by a back link", count)
		}
		count++
		last = idx
		if count > size {
			violation("forward walk exceeds the recorded length %d, possible cycle", size)
			break
		}
		idx = node.next
	}
	if count != size {
		violation("forward walk visited %d nodes, recorded length is %d", count, size)
	}
	if last != l.tail {
		violation("forward walk ended at slot %d instead of the tail slot %d", last, l.tail)
	}
	count = 0
	for idx := l.tail; idx != nilIdx; {
		count++
		if count > size {
			violation("backward walk exceeds the recorded length %d, possible cycle", size)
			break
		}
		idx = l.arena.at(idx).prev
	}
	if count != size {
		violation("backward walk visited %d nodes, recorded length is %d", count, size)
	}
	return merr
}
