package list

import "reflect"

// References:
// https://github.com/dgraph-io/badger/blob/master/skl/arena.go
// https://github.com/boltdb/bolt/blob/master/freelist.go

// nilIdx is the arena's null. Links and endpoints carry it instead of a
// nil pointer.
const nilIdx int32 = -1

const defaultArenaCapacity int32 = 8

type arenaSlot[N any] struct {
	gen uint32
	obj N
}

// idxArena is a slab allocator addressed by slot index instead of by
// pointer. Growth happens by append, so object addresses may change but
// slot indexes never do, which is what makes an (index, generation)
// pair a safe long-lived handle. The generation counts how many times a
// slot has been recycled; a handle whose generation lags behind is
// stale and must be treated as referencing nothing.
//
// Raw *N pointers obtained through at are only valid until the next
// allocate call.
type idxArena[N any] struct {
	slots []arenaSlot[N]
	free  []int32
}

func newIdxArena[N any](capHint int32) *idxArena[N] {
	if kind := reflect.TypeOf((*N)(nil)).Elem().Kind(); kind == reflect.Ptr || kind == reflect.UnsafePointer {
		panic("[x-arena] forbid to hold pointer generic type in arena slots")
	}
	if capHint < 0 {
		capHint = 0
	}
	return &idxArena[N]{
		slots: make([]arenaSlot[N], 0, capHint),
	}
}

// allocate hands out a slot index, preferring recycled slots over
// growth. The slot content is zeroed; links inside it are the caller's
// to initialize.
func (a *idxArena[N]) allocate() int32 {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		return idx
	}
	a.slots = append(a.slots, arenaSlot[N]{})
	return int32(len(a.slots) - 1)
}

// release zeroes the slot so any references inside the object are
// dropped for the GC, bumps the generation to invalidate outstanding
// handles, and queues the slot for reuse.
func (a *idxArena[N]) release(idx int32) {
	slot := &a.slots[idx]
	slot.obj = *new(N)
	slot.gen++
	a.free = append(a.free, idx)
}

func (a *idxArena[N]) at(idx int32) *N {
	return &a.slots[idx].obj
}

func (a *idxArena[N]) generation(idx int32) uint32 {
	return a.slots[idx].gen
}

// alive reports whether the handle (idx, gen) still references the
// object it was created for.
func (a *idxArena[N]) alive(idx int32, gen uint32) bool {
	return idx >= 0 && int64(idx) < int64(len(a.slots)) && a.slots[idx].gen == gen
}

// liveObjects is the number of slots currently lent out.
func (a *idxArena[N]) liveObjects() int {
	return len(a.slots) - len(a.free)
}
