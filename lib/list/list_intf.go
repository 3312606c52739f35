package list

import (
	"errors"
)

// Note that the lists are not thread safe.
// The caller has to serialize the access by itself.

var ErrIndexOutOfRange = errors.New("[x-list] index out of range")

// List is the ordered sequence interface shared by the array list and the linked list.
// The logical positions are zero-based, from 0 to Len()-1.
// All the index checks are done before any mutation, a failed call leaves the list untouched.
type List[T comparable] interface {
	Len() int64
	IsEmpty() bool
	// Add appends the value v to the end of list.
	Add(v T)
	// Insert inserts the value v before the element at index.
	// The index equals to Len() is the same as Add.
	Insert(index int64, v T) error
	// Set overwrites the element at index.
	Set(index int64, v T) error
	// Get returns the element at index.
	Get(index int64) (T, error)
	// Remove removes all the elements equal to v and returns the removed count.
	Remove(v T) int64
	// RemoveAt removes the element at index and returns it.
	RemoveAt(index int64) (T, error)
	// Clear removes all the elements.
	Clear()
	// IndexOf returns the index of the first element equal to v, or -1 if absent.
	IndexOf(v T) int64
	// ToSlice returns an independent copy of all the elements in order.
	ToSlice() []T
	// Append adds the values one by one in order.
	Append(values ...T)
	// RemoveValues removes all the occurrences of each value and returns the total removed count.
	RemoveValues(values ...T) int64
}
