package fastener

import (
	"fmt"
	"reflect"
)

type PropertyHooks[T any] struct {
	WillSetState func(newState, oldState T)
	DidSetState  func(newState, oldState T)
	WillSetValue func(newValue, oldValue T)
	DidSetValue  func(newValue, oldValue T)
}

type PropertyConfig[T any] struct {
	Options

	// Initial is the state and value of a new property.
	Initial T
	// Equal decides whether a write changes the property. It defaults to
	// reflect.DeepEqual.
	Equal func(a, b T) bool
	// FromAny converts loosely typed input for SetStateFrom.
	FromAny func(v any) (T, error)
	// UpdateFlags are passed to the owner's RequireUpdate when the value
	// changes.
	UpdateFlags UpdateFlags
	Hooks       PropertyHooks[T]
}

// Property holds a state and the value currently presented for it. For a
// plain property the two move together; Animator lets the value trail the
// state over time.
type Property[T any] struct {
	Base

	state       T
	value       T
	equal       func(a, b T) bool
	fromAny     func(v any) (T, error)
	updateFlags UpdateFlags
	hooks       PropertyHooks[T]
}

func NewProperty[T any](owner Context, name string, cfg PropertyConfig[T]) *Property[T] {
	p := &Property[T]{}
	p.initProperty(p, owner, name, KindProperty, cfg)
	return p
}

func DeclareProperty[T any](name string, cfg PropertyConfig[T]) *Decl[*Property[T]] {
	return newDecl(name, KindProperty, cfg.Eager, func(owner Context, name string) *Property[T] {
		return NewProperty(owner, name, cfg)
	})
}

func (p *Property[T]) initProperty(self fastenerImpl, owner Context, name string, kind Kind, cfg PropertyConfig[T]) {
	p.Base.init(self, owner, name, kind, cfg.Options)
	p.state = cfg.Initial
	p.value = cfg.Initial
	p.equal = cfg.Equal
	if p.equal == nil {
		p.equal = func(a, b T) bool { return reflect.DeepEqual(a, b) }
	}
	p.fromAny = cfg.FromAny
	p.updateFlags = cfg.UpdateFlags
	p.hooks = cfg.Hooks
}

func (p *Property[T]) State() T {
	return p.state
}

func (p *Property[T]) Value() T {
	return p.value
}

// GetState returns the state, or ErrUndefinedState when it is nil.
func (p *Property[T]) GetState() (T, error) {
	if isNil(p.state) {
		return p.state, &Error{Op: "GetState", Name: p.name, Err: ErrUndefinedState}
	}
	return p.state, nil
}

// GetValue returns the value, or ErrUndefinedValue when it is nil.
func (p *Property[T]) GetValue() (T, error) {
	if isNil(p.value) {
		return p.value, &Error{Op: "GetValue", Name: p.name, Err: ErrUndefinedValue}
	}
	return p.value, nil
}

func (p *Property[T]) StateOr(elseState T) T {
	if isNil(p.state) {
		return elseState
	}
	return p.state
}

func (p *Property[T]) ValueOr(elseValue T) T {
	if isNil(p.value) {
		return elseValue
	}
	return p.value
}

// Equal compares two values the way the property detects changes.
func (p *Property[T]) Equal(a, b T) bool {
	return p.equal(a, b)
}

// FromAny converts v to T, using the configured conversion for values that
// are not already a T.
func (p *Property[T]) FromAny(v any) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}
	if p.fromAny != nil {
		return p.fromAny(v)
	}
	var zero T
	return zero, fmt.Errorf("%w: cannot convert %T to %T", ErrParse, v, zero)
}

// Set writes state and value at Extrinsic affinity.
func (p *Property[T]) Set(state T) {
	p.SetState(state, Extrinsic)
}

func (p *Property[T]) SetState(newState T, affinity Affinity) {
	if !p.MinAffinity(affinity) {
		return
	}
	oldState := p.state
	if p.equal(newState, oldState) {
		return
	}
	p.assignState(newState, oldState, func() {
		p.writeValue(newState)
	})
}

// SetStateFrom converts v and writes it as the new state. Conversion errors
// are returned before anything changes.
func (p *Property[T]) SetStateFrom(v any, affinity Affinity) error {
	state, err := p.FromAny(v)
	if err != nil {
		return &Error{Op: "SetState", Name: p.name, Err: err}
	}
	p.SetState(state, affinity)
	return nil
}

func (p *Property[T]) SetValue(newValue T, affinity Affinity) {
	if p.MinAffinity(affinity) {
		p.writeValue(newValue)
	}
}

// assignState replaces the state, running apply between the state hooks.
func (p *Property[T]) assignState(newState, oldState T, apply func()) {
	if p.hooks.WillSetState != nil {
		p.hooks.WillSetState(newState, oldState)
	}
	p.state = newState
	if apply != nil {
		apply()
	}
	if p.hooks.DidSetState != nil {
		p.hooks.DidSetState(newState, oldState)
	}
}

func (p *Property[T]) writeValue(newValue T) {
	oldValue := p.value
	if p.equal(newValue, oldValue) {
		return
	}
	if p.hooks.WillSetValue != nil {
		p.hooks.WillSetValue(newValue, oldValue)
	}
	p.value = newValue
	if p.updateFlags != 0 {
		if u, ok := p.owner.(Updater); ok {
			u.RequireUpdate(p.updateFlags)
		}
	}
	p.notifySubFasteners()
	if p.hooks.DidSetValue != nil {
		p.hooks.DidSetValue(newValue, oldValue)
	}
}

// mirror copies the super fastener's state and value without touching the
// affinity.
func (p *Property[T]) mirror(superFastener Fastener) {
	src, ok := superFastener.(valueSource[T])
	if !ok {
		return
	}
	if newState, oldState := src.State(), p.state; !p.equal(newState, oldState) {
		p.assignState(newState, oldState, nil)
	}
	p.writeValue(src.Value())
}

func (p *Property[T]) onSetInherited(inherited bool, superFastener Fastener) {
	if inherited {
		p.mirror(superFastener)
	}
}

func (p *Property[T]) superChanged() {
	if p.Inherited() {
		p.mirror(p.superFastener)
	}
}

func (p *Property[T]) onRecohere(t float64) {
	if p.Inherited() {
		p.mirror(p.superFastener)
	}
}

type valueSource[T any] interface {
	State() T
	Value() T
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
