package list

// References:
// https://github.com/openjdk/jdk/blob/master/src/java.base/share/classes/java/util/LinkedList.java
// https://github.com/ortuman/nuke

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xlist/lib/infra"
)

var _ List[struct{}] = (*LinkedList[struct{}])(nil) // Type check assertion

// LinkedList is a doubly linked list whose nodes are stored in an arena.
// The first, last and the node links are arena slot indices instead of pointers.
type LinkedList[T comparable] struct {
	arena *nodeArena[T]
	first nodeRef
	last  nodeRef
	size  int64
}

func NewLinkedList[T comparable](opts ...ListOption) *LinkedList[T] {
	o := applyListOptions(opts...)
	return &LinkedList[T]{
		arena: newNodeArena[T](o.initialCapacity),
	}
}

func NewLinkedListOf[T comparable](values ...T) *LinkedList[T] {
	l := &LinkedList[T]{
		arena: newNodeArena[T](int64(len(values))),
	}
	l.Append(values...)
	return l
}

// locate walks from the nearer end to the element at index.
// The index must have been checked.
func (l *LinkedList[T]) locate(index int64) nodeRef {
	if index < l.size>>1 {
		ref := l.first
		for i := int64(0); i < index; i++ {
			ref = l.arena.node(ref).next
		}
		return ref
	}
	ref := l.last
	for i := l.size - 1; i > index; i-- {
		ref = l.arena.node(ref).prev
	}
	return ref
}

func (l *LinkedList[T]) linkLast(v T) {
	ref := l.arena.allocate(v)
	n := l.arena.node(ref)
	n.prev = l.last
	if l.last == nilNodeRef {
		l.first = ref
	} else {
		l.arena.node(l.last).next = ref
	}
	l.last = ref
	l.size++
}

func (l *LinkedList[T]) linkBefore(v T, succ nodeRef) {
	ref := l.arena.allocate(v)
	pred := l.arena.node(succ).prev
	n := l.arena.node(ref)
	n.prev, n.next = pred, succ
	l.arena.node(succ).prev = ref
	if pred == nilNodeRef {
		l.first = ref
	} else {
		l.arena.node(pred).next = ref
	}
	l.size++
}

func (l *LinkedList[T]) unlink(ref nodeRef) T {
	n := l.arena.node(ref)
	prev, next, v := n.prev, n.next, n.value

	if prev == nilNodeRef {
		l.first = next
	} else {
		l.arena.node(prev).next = next
	}

	if next == nilNodeRef {
		l.last = prev
	} else {
		l.arena.node(next).prev = prev
	}

	l.arena.recycle(ref)
	l.size--
	return v
}

func (l *LinkedList[T]) Len() int64 {
	return l.size
}

func (l *LinkedList[T]) IsEmpty() bool {
	return l.size == 0
}

func (l *LinkedList[T]) Add(v T) {
	l.linkLast(v)
}

func (l *LinkedList[T]) Insert(index int64, v T) error {
	if err := checkPositionIndex("insert", index, l.size); err != nil {
		return err
	}
	if index == l.size {
		l.linkLast(v)
		return nil
	}
	l.linkBefore(v, l.locate(index))
	return nil
}

func (l *LinkedList[T]) Set(index int64, v T) error {
	if err := checkElementIndex("set", index, l.size); err != nil {
		return err
	}
	l.arena.node(l.locate(index)).value = v
	return nil
}

func (l *LinkedList[T]) Get(index int64) (T, error) {
	if err := checkElementIndex("get", index, l.size); err != nil {
		return *new(T), err
	}
	return l.arena.node(l.locate(index)).value, nil
}

func (l *LinkedList[T]) Remove(v T) int64 {
	removed := int64(0)
	for ref := l.first; ref != nilNodeRef; {
		// The slot is recycled by unlink, fetch the successor first.
		next := l.arena.node(ref).next
		if l.arena.node(ref).value == v {
			l.unlink(ref)
			removed++
		}
		ref = next
	}
	return removed
}

func (l *LinkedList[T]) RemoveAt(index int64) (T, error) {
	if err := checkElementIndex("removeAt", index, l.size); err != nil {
		return *new(T), err
	}
	return l.unlink(l.locate(index)), nil
}

func (l *LinkedList[T]) Clear() {
	l.arena.reset()
	l.first, l.last = nilNodeRef, nilNodeRef
	l.size = 0
}

func (l *LinkedList[T]) IndexOf(v T) int64 {
	idx := int64(0)
	for ref := l.first; ref != nilNodeRef; idx++ {
		n := l.arena.node(ref)
		if n.value == v {
			return idx
		}
		ref = n.next
	}
	return -1
}

func (l *LinkedList[T]) ToSlice() []T {
	res := make([]T, 0, l.size)
	for ref := l.first; ref != nilNodeRef; {
		n := l.arena.node(ref)
		res = append(res, n.value)
		ref = n.next
	}
	return res
}

func (l *LinkedList[T]) Append(values ...T) {
	for _, v := range values {
		l.linkLast(v)
	}
}

func (l *LinkedList[T]) RemoveValues(values ...T) int64 {
	removed := int64(0)
	for _, v := range values {
		removed += l.Remove(v)
	}
	return removed
}

// verifyChain checks the structural invariants and reports all the violations.
func (l *LinkedList[T]) verifyChain() error {
	var merr error
	if (l.first == nilNodeRef) != (l.last == nilNodeRef) || (l.first == nilNodeRef) != (l.size == 0) {
		merr = multierr.Append(merr, infra.NewErrorStack(
			fmt.Sprintf("[x-list] first %d, last %d and len %d disagree", l.first, l.last, l.size),
		))
	}
	if live := l.arena.live(); live != l.size {
		merr = multierr.Append(merr, infra.NewErrorStack(
			fmt.Sprintf("[x-list] arena holds %d live nodes but len is %d", live, l.size),
		))
	}

	forward := make([]nodeRef, 0, l.size)
	prev := nilNodeRef
	for ref := l.first; ref != nilNodeRef; ref = l.arena.node(ref).next {
		if int64(len(forward)) > l.size {
			merr = multierr.Append(merr, infra.NewErrorStack("[x-list] forward chain is longer than len"))
			break
		}
		if p := l.arena.node(ref).prev; p != prev {
			merr = multierr.Append(merr, infra.NewErrorStack(
				fmt.Sprintf("[x-list] node %d prev is %d, expected %d", ref, p, prev),
			))
		}
		forward = append(forward, ref)
		prev = ref
	}
	if int64(len(forward)) != l.size {
		merr = multierr.Append(merr, infra.NewErrorStack(
			fmt.Sprintf("[x-list] forward chain has %d nodes but len is %d", len(forward), l.size),
		))
	}
	if prev != l.last {
		merr = multierr.Append(merr, infra.NewErrorStack(
			fmt.Sprintf("[x-list] forward chain ends at %d but last is %d", prev, l.last),
		))
	}

	i := len(forward) - 1
	for ref := l.last; ref != nilNodeRef; ref = l.arena.node(ref).prev {
		if i < 0 || forward[i] != ref {
			merr = multierr.Append(merr, infra.NewErrorStack("[x-list] backward chain is not the reverse of forward chain"))
			break
		}
		i--
	}
	if i >= 0 {
		merr = multierr.Append(merr, infra.NewErrorStack("[x-list] backward chain is shorter than forward chain"))
	}
	return merr
}
