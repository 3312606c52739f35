package list

import (
	"fmt"

	"github.com/benz9527/xlist/lib/infra"
)

const arrayListInitialCapacity = 16

// MaxInitialCapacity bounds the preallocation of WithInitialCapacity.
// The lists keep growing past it on demand.
const MaxInitialCapacity int64 = 1 << 20

type listOptions struct {
	initialCapacity int64
}

type ListOption func(opts *listOptions)

// WithInitialCapacity presets the number of elements the list could hold
// without growing. Non-positive values are ignored and values above
// MaxInitialCapacity are clamped to it.
func WithInitialCapacity(n int64) ListOption {
	return func(opts *listOptions) {
		if n <= 0 {
			return
		}
		opts.initialCapacity = min(n, MaxInitialCapacity)
	}
}

func applyListOptions(opts ...ListOption) *listOptions {
	o := &listOptions{
		initialCapacity: arrayListInitialCapacity,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(o)
	}
	return o
}

// Element index must be in [0, size).
func checkElementIndex(op string, index, size int64) error {
	if index < 0 || index >= size {
		return outOfRange(op, index, size)
	}
	return nil
}

// Position index must be in [0, size].
func checkPositionIndex(op string, index, size int64) error {
	if index < 0 || index > size {
		return outOfRange(op, index, size)
	}
	return nil
}

func outOfRange(op string, index, size int64) error {
	return infra.WrapErrorStackWithMessage(
		ErrIndexOutOfRange,
		fmt.Sprintf("%s index %d with len %d", op, index, size),
	)
}
