package beanmorph

import "fmt"

// IdentityMapper passes a T through unchanged.
type IdentityMapper[T any] struct {
	TypeMap[T, T]
}

func (m IdentityMapper[T]) From(source any) (any, error) {
	if source == nil {
		var zero T
		return zero, nil
	}
	v, ok := source.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: expected %T, got %T", ErrTypeMismatch, zero, source)
	}
	return v, nil
}
