// Package resolver provides the value wrappers handed out by containers and
// custom providers.
//
// A ValueResolver calls its producer on every Get. A FinalValueResolver calls
// it once and memoizes the result.
package resolver

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/km-arc/go-odin/framework/logging"
)

// Producer builds the value behind a resolver.
type Producer func() (any, error)

// Resolver produces a value on demand.
type Resolver interface {
	Get() (any, error)
}

// ValueResolver resolves every time Get is invoked.
type ValueResolver struct {
	produce Producer
}

// NewValue wraps a producer that is re-invoked on every Get.
func NewValue(produce Producer) *ValueResolver {
	return &ValueResolver{produce: produce}
}

// Get invokes the producer.
func (r *ValueResolver) Get() (any, error) {
	if r.produce == nil {
		return nil, nil
	}
	return r.produce()
}

// FinalValueResolver resolves once and caches the value.
//
// Memoization is tracked with an explicit flag, so a producer whose
// legitimate result is nil is still called only once. A failed call is not
// memoized.
type FinalValueResolver struct {
	produce  Producer
	computed bool
	value    any
}

// NewFinal wraps a producer that is invoked at most once successfully.
func NewFinal(produce Producer) *FinalValueResolver {
	return &FinalValueResolver{produce: produce}
}

// Constant returns an already computed resolver for value.
func Constant(value any) *FinalValueResolver {
	return &FinalValueResolver{computed: true, value: value}
}

// Get returns the cached value, producing it on the first call.
func (r *FinalValueResolver) Get() (any, error) {
	if r.computed {
		return r.value, nil
	}
	if r.produce == nil {
		r.computed = true
		return nil, nil
	}
	value, err := r.produce()
	if err != nil {
		return nil, err
	}
	r.value, r.computed = value, true
	return value, nil
}

// Computed reports whether the value has been produced.
func (r *FinalValueResolver) Computed() bool { return r.computed }

// Typed resolves r and asserts the value to T.
// A nil resolver or a nil value yields the zero T.
func Typed[T any](r Resolver) (T, error) {
	var zero T
	if r == nil {
		return zero, nil
	}
	value, err := r.Get()
	if err != nil {
		return zero, err
	}
	return As[T](value)
}

// As asserts value to T, treating nil as the zero T.
func As[T any](value any) (T, error) {
	var zero T
	if value == nil {
		return zero, nil
	}
	typed, ok := value.(T)
	if !ok {
		return zero, errors.New(logging.Message(fmt.Sprintf("Resolved a %T where a %v was expected.", value, reflect.TypeFor[T]())))
	}
	return typed, nil
}
