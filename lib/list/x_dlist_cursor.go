package list

type cursorDirection int8

const (
	cursorForward cursorDirection = 1 + iota
	cursorBackward
)

func (d cursorDirection) flip() cursorDirection {
	if d == cursorBackward {
		return cursorForward
	}
	return cursorBackward
}

// Cursor is a mutable traversal handle of a DoublyLinkedList. It pairs
// the list with an arena slot index, the slot generation captured at
// creation and a travel direction, so it stays a small value that can
// be copied freely.
//
// A cursor either references a live node or is absent. End, REnd, a
// zero value Cursor, a cursor stepped past either terminal node and a
// cursor whose node has been removed are all absent. Stepping an
// absent cursor keeps it absent; in particular Prev of End does not
// recover the tail. Dereferencing an absent cursor panics.
//
// Direction and mutability convert along this matrix:
//
//	Cursor         --Reversed()-> Cursor          (flipped direction)
//	Cursor         --ReadOnly()-> ReadOnlyCursor  (same direction)
//	ReadOnlyCursor --Reversed()-> ReadOnlyCursor  (flipped direction)
//	ReadOnlyCursor --/          -> Cursor         (does not compile)
//
// Regaining mutability from a read-only cursor is rejected by the
// compiler because no such method exists.
type Cursor[T comparable] struct {
	list *xDList[T]
	idx  int32
	gen  uint32
	dir  cursorDirection
}

// ReadOnlyCursor is the non-mutating counterpart of Cursor: same
// traversal surface, no SetValue and no way back to a Cursor.
type ReadOnlyCursor[T comparable] struct {
	list *xDList[T]
	idx  int32
	gen  uint32
	dir  cursorDirection
}

func cursorAlive[T comparable](l *xDList[T], idx int32, gen uint32) bool {
	return l != nil && idx != nilIdx && l.arena.alive(idx, gen)
}

// cursorStep resolves one link hop. followPrev picks the back link,
// already adjusted for the cursor's travel direction by the caller.
// Absent and stale handles stay absent.
func cursorStep[T comparable](l *xDList[T], idx int32, gen uint32, followPrev bool) (int32, uint32) {
	if !cursorAlive(l, idx, gen) {
		return nilIdx, 0
	}
	node := l.arena.at(idx)
	to := node.next
	if followPrev {
		to = node.prev
	}
	if to == nilIdx {
		return nilIdx, 0
	}
	return to, l.arena.generation(to)
}

func cursorDeref[T comparable](l *xDList[T], idx int32, gen uint32) *dNode[T] {
	if !cursorAlive(l, idx, gen) {
		panic("[x-dlist] cursor references no node")
	}
	return l.arena.at(idx)
}

// Valid reports whether the cursor references a live node.
func (c Cursor[T]) Valid() bool {
	return cursorAlive(c.list, c.idx, c.gen)
}

// Value returns the referenced element's value. It panics if the
// cursor is absent.
func (c Cursor[T]) Value() T {
	return cursorDeref(c.list, c.idx, c.gen).value
}

// SetValue overwrites the referenced element's value in place. It
// panics if the cursor is absent. Writing through a cursor never
// invalidates other cursors.
func (c Cursor[T]) SetValue(v T) {
	cursorDeref(c.list, c.idx, c.gen).value = v
}

// Next moves one element along the cursor's travel direction: forward
// cursors walk head to tail, reverse cursors tail to head.
func (c Cursor[T]) Next() Cursor[T] {
	c.idx, c.gen = cursorStep(c.list, c.idx, c.gen, c.dir == cursorBackward)
	return c
}

// Prev moves one element against the cursor's travel direction. An
// absent cursor stays absent, so Prev cannot re-enter the chain from
// End or REnd.
func (c Cursor[T]) Prev() Cursor[T] {
	c.idx, c.gen = cursorStep(c.list, c.idx, c.gen, c.dir == cursorForward)
	return c
}

// Advance applies Next n times, or Prev -n times when n is negative.
func (c Cursor[T]) Advance(n int64) Cursor[T] {
	for ; n > 0 && c.Valid(); n-- {
		c = c.Next()
	}
	for ; n < 0 && c.Valid(); n++ {
		c = c.Prev()
	}
	return c
}

// Retreat applies Prev n times, or Next -n times when n is negative.
func (c Cursor[T]) Retreat(n int64) Cursor[T] {
	return c.Advance(-n)
}

// Equal compares node identity. All absent cursors compare equal to
// each other; direction never participates.
func (c Cursor[T]) Equal(other Cursor[T]) bool {
	cv, ov := c.Valid(), other.Valid()
	if !cv || !ov {
		return cv == ov
	}
	return c.list == other.list && c.idx == other.idx && c.gen == other.gen
}

// Reversed keeps the referenced node and flips the travel direction.
func (c Cursor[T]) Reversed() Cursor[T] {
	c.dir = c.dir.flip()
	return c
}

// ReadOnly drops mutability, keeping node and direction. There is no
// inverse conversion.
func (c Cursor[T]) ReadOnly() ReadOnlyCursor[T] {
	return ReadOnlyCursor[T]{list: c.list, idx: c.idx, gen: c.gen, dir: c.dir}
}

// Valid reports whether the cursor references a live node.
func (c ReadOnlyCursor[T]) Valid() bool {
	return cursorAlive(c.list, c.idx, c.gen)
}

// Value returns the referenced element's value. It panics if the
// cursor is absent.
func (c ReadOnlyCursor[T]) Value() T {
	return cursorDeref(c.list, c.idx, c.gen).value
}

// Next moves one element along the cursor's travel direction.
func (c ReadOnlyCursor[T]) Next() ReadOnlyCursor[T] {
	c.idx, c.gen = cursorStep(c.list, c.idx, c.gen, c.dir == cursorBackward)
	return c
}

// Prev moves one element against the cursor's travel direction, with
// the same absent rules as Cursor.Prev.
func (c ReadOnlyCursor[T]) Prev() ReadOnlyCursor[T] {
	c.idx, c.gen = cursorStep(c.list, c.idx, c.gen, c.dir == cursorForward)
	return c
}

// Advance applies Next n times, or Prev -n times when n is negative.
func (c ReadOnlyCursor[T]) Advance(n int64) ReadOnlyCursor[T] {
	for ; n > 0 && c.Valid(); n-- {
		c = c.Next()
	}
	for ; n < 0 && c.Valid(); n++ {
		c = c.Prev()
	}
	return c
}

// Retreat applies Prev n times, or Next -n times when n is negative.
func (c ReadOnlyCursor[T]) Retreat(n int64) ReadOnlyCursor[T] {
	return c.Advance(-n)
}

// Equal compares node identity under the same rules as Cursor.Equal.
func (c ReadOnlyCursor[T]) Equal(other ReadOnlyCursor[T]) bool {
	cv, ov := c.Valid(), other.Valid()
	if !cv || !ov {
		return cv == ov
	}
	return c.list == other.list && c.idx == other.idx && c.gen == other.gen
}

// Reversed keeps the referenced node and flips the travel direction.
func (c ReadOnlyCursor[T]) Reversed() ReadOnlyCursor[T] {
	c.dir = c.dir.flip()
	return c
}

func (l *xDList[T]) cursorAt(idx int32, dir cursorDirection) Cursor[T] {
	c := Cursor[T]{list: l, idx: idx, dir: dir}
	if idx != nilIdx {
		c.gen = l.arena.generation(idx)
	}
	return c
}

// Begin references the first element, absent when the list is empty.
func (l *xDList[T]) Begin() Cursor[T] {
	return l.cursorAt(l.head, cursorForward)
}

// End is the absent past-the-end marker of forward traversal.
func (l *xDList[T]) End() Cursor[T] {
	return l.cursorAt(nilIdx, cursorForward)
}

// RBegin references the last element for reverse traversal, absent
// when the list is empty.
func (l *xDList[T]) RBegin() Cursor[T] {
	return l.cursorAt(l.tail, cursorBackward)
}

// REnd is the absent past-the-end marker of reverse traversal.
func (l *xDList[T]) REnd() Cursor[T] {
	return l.cursorAt(nilIdx, cursorBackward)
}

func (l *xDList[T]) ReadOnlyBegin() ReadOnlyCursor[T] {
	return l.Begin().ReadOnly()
}

func (l *xDList[T]) ReadOnlyEnd() ReadOnlyCursor[T] {
	return l.End().ReadOnly()
}

func (l *xDList[T]) ReadOnlyRBegin() ReadOnlyCursor[T] {
	return l.RBegin().ReadOnly()
}

func (l *xDList[T]) ReadOnlyREnd() ReadOnlyCursor[T] {
	return l.REnd().ReadOnly()
}
