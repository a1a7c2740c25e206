// Package component holds the component types stored in the ECS world and
// the typed kinds that address their stores.
package component

import (
	"errors"
	"reflect"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID numbers a component store. Zero is never issued.
type ComponentID uint32

var lastComponentID atomic.Uint32

// ComponentKind addresses one store of T values. Every call to
// NewComponentKind issues a fresh store, even for a Go type seen before.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{
		id:   ComponentID(lastComponentID.Add(1)),
		name: reflect.TypeFor[T]().String(),
	}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

// Valid is false for the zero kind.
func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// String names the stored type, for logs.
func (k ComponentKind[T]) String() string {
	if k.name == "" {
		return "<invalid component>"
	}
	return k.name
}

// ComponentHandle is the package-level declaration form used by every
// component file: `var XComponent = NewComponent[X]()`.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
