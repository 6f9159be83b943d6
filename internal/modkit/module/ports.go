package module

import (
	"fmt"
	"reflect"
)

// PortsOf finds a T in m's port set
// the set matches when it is a T itself or when one of its exported fields holds a T,
// so pagefilters can export Ports{Reader} and callers ask for the Reader type directly
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	if m == nil || m.Ports() == nil {
		return zero, false
	}
	set := m.Ports()
	if v, ok := set.(T); ok {
		return v, true
	}
	return fieldOf[T](reflect.Indirect(reflect.ValueOf(set)))
}

func fieldOf[T any](rv reflect.Value) (T, bool) {
	var zero T
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for boot wiring, a missing port panics with both names
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if ok {
		return v
	}
	owner := "<nil>"
	if m != nil {
		owner = m.Name()
	}
	panic(fmt.Sprintf("module %s exports no %v", owner, reflect.TypeFor[T]()))
}
