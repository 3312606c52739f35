package list

import (
	"math"
)

// nodeRef is the slot index of a node inside its arena.
// The slot 0 is reserved, so the zero nodeRef means no node (non-zero offset).
type nodeRef uint32

const nilNodeRef nodeRef = 0

// listNode links are non-owning, the arena owns all the nodes.
type listNode[T comparable] struct {
	prev, next nodeRef
	value      T
}

// nodeArena is the only owner of the linked list nodes.
// A released slot is recycled and reused by the next allocation.
// The pointer returned by node() must not be kept across allocate(),
// the slots may be moved while growing.
type nodeArena[T comparable] struct {
	slots    []listNode[T]
	recycled []nodeRef
}

func newNodeArena[T comparable](capHint int64) *nodeArena[T] {
	capHint = max(0, min(capHint, MaxInitialCapacity))
	slots := make([]listNode[T], 1, capHint+1)
	return &nodeArena[T]{
		slots:    slots,
		recycled: make([]nodeRef, 0, 8),
	}
}

func (arena *nodeArena[T]) allocate(v T) nodeRef {
	if rl := len(arena.recycled); rl > 0 {
		ref := arena.recycled[rl-1]
		arena.recycled = arena.recycled[:rl-1]
		arena.slots[ref] = listNode[T]{value: v}
		return ref
	}
	if uint64(len(arena.slots)) > math.MaxUint32 {
		panic("[x-list] node arena exhausted")
	}
	arena.slots = append(arena.slots, listNode[T]{value: v})
	return nodeRef(len(arena.slots) - 1)
}

func (arena *nodeArena[T]) node(ref nodeRef) *listNode[T] {
	return &arena.slots[ref]
}

func (arena *nodeArena[T]) recycle(ref nodeRef) {
	if ref == nilNodeRef {
		return
	}
	arena.slots[ref] = listNode[T]{}
	arena.recycled = append(arena.recycled, ref)
}

func (arena *nodeArena[T]) reset() {
	clear(arena.slots)
	arena.slots = arena.slots[:1]
	arena.recycled = arena.recycled[:0]
}

// live returns the number of allocated but not recycled nodes.
func (arena *nodeArena[T]) live() int64 {
	return int64(len(arena.slots) - 1 - len(arena.recycled))
}
