package list

import (
	"github.com/samber/lo"
)

var _ List[struct{}] = (*ArrayList[struct{}])(nil) // Type check assertion

// ArrayList stores the elements in a contiguous buffer.
// len(buffer) is the capacity, the logical elements are buffer[:size].
type ArrayList[T comparable] struct {
	buffer []T
	size   int64
}

// NewArrayList creates an empty array list with the default capacity 16.
func NewArrayList[T comparable](opts ...ListOption) *ArrayList[T] {
	o := applyListOptions(opts...)
	return &ArrayList[T]{
		buffer: make([]T, o.initialCapacity),
	}
}

// NewArrayListOf creates an array list whose capacity is exactly len(values).
func NewArrayListOf[T comparable](values ...T) *ArrayList[T] {
	buffer := make([]T, len(values))
	copy(buffer, values)
	return &ArrayList[T]{
		buffer: buffer,
		size:   int64(len(values)),
	}
}

func (l *ArrayList[T]) capacity() int64 {
	return int64(len(l.buffer))
}

// Linear growth below 64 slots, then 1.5x.
func nextArrayListCapacity(capacity int64) int64 {
	if capacity < 64 {
		return capacity + arrayListInitialCapacity
	}
	return capacity + capacity/2
}

func (l *ArrayList[T]) growIfFull() {
	if l.size < l.capacity() {
		return
	}
	nbuf := make([]T, nextArrayListCapacity(l.capacity()))
	copy(nbuf, l.buffer[:l.size])
	l.buffer = nbuf
}

func (l *ArrayList[T]) Len() int64 {
	return l.size
}

func (l *ArrayList[T]) IsEmpty() bool {
	return l.size == 0
}

func (l *ArrayList[T]) Add(v T) {
	l.growIfFull()
	l.buffer[l.size] = v
	l.size++
}

func (l *ArrayList[T]) Insert(index int64, v T) error {
	if err := checkPositionIndex("insert", index, l.size); err != nil {
		return err
	}
	l.growIfFull()
	// Overlapped copy moves the rightmost element first.
	copy(l.buffer[index+1:l.size+1], l.buffer[index:l.size])
	l.buffer[index] = v
	l.size++
	return nil
}

func (l *ArrayList[T]) Set(index int64, v T) error {
	if err := checkElementIndex("set", index, l.size); err != nil {
		return err
	}
	l.buffer[index] = v
	return nil
}

func (l *ArrayList[T]) Get(index int64) (T, error) {
	if err := checkElementIndex("get", index, l.size); err != nil {
		return *new(T), err
	}
	return l.buffer[index], nil
}

// Remove compacts the buffer in place with a read and a write cursor,
// so the adjacent duplicates are all dropped in one pass.
func (l *ArrayList[T]) Remove(v T) int64 {
	w := int64(0)
	for r := int64(0); r < l.size; r++ {
		if l.buffer[r] == v {
			continue
		}
		if w != r {
			l.buffer[w] = l.buffer[r]
		}
		w++
	}
	removed := l.size - w
	clear(l.buffer[w:l.size]) // Release the references held by vacated slots.
	l.size = w
	return removed
}

func (l *ArrayList[T]) RemoveAt(index int64) (T, error) {
	if err := checkElementIndex("removeAt", index, l.size); err != nil {
		return *new(T), err
	}
	v := l.buffer[index]
	copy(l.buffer[index:l.size-1], l.buffer[index+1:l.size])
	l.size--
	l.buffer[l.size] = *new(T)
	return v, nil
}

func (l *ArrayList[T]) Clear() {
	clear(l.buffer[:l.size])
	l.size = 0
}

func (l *ArrayList[T]) IndexOf(v T) int64 {
	return int64(lo.IndexOf(l.buffer[:l.size], v))
}

func (l *ArrayList[T]) ToSlice() []T {
	res := make([]T, l.size)
	copy(res, l.buffer[:l.size])
	return res
}

func (l *ArrayList[T]) Append(values ...T) {
	for _, v := range values {
		l.Add(v)
	}
}

func (l *ArrayList[T]) RemoveValues(values ...T) int64 {
	removed := int64(0)
	for _, v := range values {
		removed += l.Remove(v)
	}
	return removed
}
