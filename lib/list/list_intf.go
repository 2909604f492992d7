package list

import "errors"

var (
	ErrListIndexOutOfRange    = errors.New("[x-list] index out of range")
	ErrListIntegrityViolation = errors.New("[x-list] chain integrity violation")
)

// SequentialList is the operation surface shared by both chain layouts.
// All implementations keep permissive mutation semantics: out-of-range
// positional mutations and pops on an empty list are defined no-ops
// reported through the return values, never through errors or panics.
// The unchecked accessors (Front, Back, Get, Set) are the opposite: a
// violated precondition panics right away instead of handing back a
// zero value that looks like real data.
type SequentialList[T comparable] interface {
	// Len reports how many elements the list holds. O(1).
	Len() int64
	// Empty reports whether the list holds no elements.
	Empty() bool
	// Front returns the first element's value.
	// It panics if the list is empty.
	Front() T
	// Back returns the last element's value.
	// It panics if the list is empty.
	Back() T
	// Get returns the value at index without range checking.
	// It panics if index is out of range.
	Get(index int64) T
	// Set overwrites the value at index without range checking.
	// It panics if index is out of range.
	Set(index int64, v T)
	// At returns the value at index. An out-of-range index yields an
	// error wrapping ErrListIndexOutOfRange that reports both the
	// requested index and the current size.
	At(index int64) (T, error)
	// SetAt overwrites the value at index with the same range contract
	// as At.
	SetAt(index int64, v T) error
	// PopFront removes and returns the first element. On an empty list
	// it is a no-op returning the zero value and false.
	PopFront() (T, bool)
	// PopBack removes and returns the last element. On an empty list it
	// is a no-op returning the zero value and false.
	PopBack() (T, bool)
	// Insert places v before the element at index, so that v occupies
	// index afterwards. index 0 prepends and index Len() appends. Any
	// index outside [0, Len()] is a silent no-op returning false.
	Insert(index int64, v T) bool
	// Remove deletes and returns the element at index. Any index
	// outside [0, Len()-1] is a no-op returning the zero value and
	// false.
	Remove(index int64) (T, bool)
	// Clear releases every node. The list stays usable and a second
	// Clear on an empty list is a no-op.
	Clear()
	// Foreach walks the list from front to back until fn returns false.
	Foreach(fn func(idx int64, v T) bool)
	// ToSlice snapshots the values from front to back.
	ToSlice() []T
	// CheckIntegrity walks the whole chain and verifies its structural
	// soundness: link symmetry, terminal nodes, and that the recorded
	// length matches the reachable node count. Every violation found is
	// wrapped around ErrListIntegrityViolation and all of them are
	// combined into the returned error. A healthy list yields nil.
	CheckIntegrity() error
}

// DoublyLinkedList is a bidirectional chain with index access served
// from the nearer end and cursor traversal in four flavors, namely
// mutable or read-only crossed with forward or reverse.
//
// The container owns its nodes through a slab arena, so the zero cost
// move (MoveFrom) hands the whole storage over and leaves the source
// empty but reusable. None of the operations are safe for concurrent
// mutation.
type DoublyLinkedList[T comparable] interface {
	SequentialList[T]

	// PushFront prepends v and returns a forward cursor of the new
	// element. O(1).
	PushFront(v T) Cursor[T]
	// PushBack appends v and returns a forward cursor of the new
	// element. O(1).
	PushBack(v T) Cursor[T]
	// Clone builds a structurally independent deep copy preserving
	// element order.
	Clone() DoublyLinkedList[T]
	// CopyFrom clears the receiver and deep-copies src into it, the
	// same algorithm Clone uses. Copying from a nil source or from
	// itself is a no-op.
	CopyFrom(src DoublyLinkedList[T])
	// MoveFrom clears the receiver, then adopts src's storage in O(1)
	// and leaves src valid but empty. Only another instance created by
	// this package can donate storage; a foreign implementation, a nil
	// source or a self move is a no-op returning false.
	MoveFrom(src DoublyLinkedList[T]) bool
	// ReverseForeach walks the list from back to front until fn
	// returns false.
	ReverseForeach(fn func(idx int64, v T) bool)
	// FindFirst locates the first element equal to v, or, when a
	// compareFn is supplied, the first element it approves. The cursor
	// is absent when nothing matches.
	FindFirst(v T, compareFn ...func(v T) bool) (Cursor[T], bool)

	// Begin references the first element, or is absent on an empty
	// list. End is the absent past-the-end marker. RBegin references
	// the last element for reverse traversal and REnd is its absent
	// marker. The ReadOnly variants hand out cursors that cannot
	// mutate and cannot be converted back to mutable ones.
	Begin() Cursor[T]
	End() Cursor[T]
	RBegin() Cursor[T]
	REnd() Cursor[T]
	ReadOnlyBegin() ReadOnlyCursor[T]
	ReadOnlyEnd() ReadOnlyCursor[T]
	ReadOnlyRBegin() ReadOnlyCursor[T]
	ReadOnlyREnd() ReadOnlyCursor[T]
}

// SinglyLinkedList is a forward chain with the same operation surface
// and policies as the doubly linked variant, minus anything that needs
// back links: indexed operations always walk from the head, PopBack
// costs O(n), and traversal is exposed through Foreach and FindFirst
// instead of cursors.
type SinglyLinkedList[T comparable] interface {
	SequentialList[T]

	// PushFront prepends v. O(1).
	PushFront(v T)
	// PushBack appends v. O(1).
	PushBack(v T)
	// Clone builds a structurally independent deep copy preserving
	// element order.
	Clone() SinglyLinkedList[T]
	// CopyFrom clears the receiver and deep-copies src into it.
	// Copying from a nil source or from itself is a no-op.
	CopyFrom(src SinglyLinkedList[T])
	// MoveFrom adopts src's storage in O(1) under the same rules as
	// the doubly linked variant.
	MoveFrom(src SinglyLinkedList[T]) bool
	// FindFirst reports the position of the first element equal to v,
	// or approved by compareFn. It returns -1 and false when nothing
	// matches.
	FindFirst(v T, compareFn ...func(v T) bool) (int64, bool)
}
