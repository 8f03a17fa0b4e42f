package fastener_test

import (
	"testing"

	"github.com/delaneyj/fasteners/component"
	"github.com/delaneyj/fasteners/fastener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// should accept writes at or above the current affinity only
func TestPropertyPrecedence(t *testing.T) {
	p := fastener.NewProperty(newPlainContext(), "width", fastener.PropertyConfig[int]{})

	p.SetState(1, fastener.Intrinsic)
	assert.Equal(t, 1, p.Value())
	assert.Equal(t, fastener.Intrinsic, p.Affinity())

	p.SetState(2, fastener.Transient)
	assert.Equal(t, 1, p.Value())
	assert.Equal(t, fastener.Intrinsic, p.Affinity())

	p.SetState(3, fastener.Intrinsic)
	assert.Equal(t, 3, p.Value())

	p.SetState(4, fastener.Reflexive)
	assert.Equal(t, 4, p.Value())
	assert.Equal(t, fastener.Intrinsic, p.Affinity())

	p.Set(5)
	assert.Equal(t, 5, p.State())
	assert.Equal(t, fastener.Extrinsic, p.Affinity())

	p.SetValue(6, fastener.Intrinsic)
	assert.Equal(t, 5, p.Value())
	p.SetValue(6, fastener.Extrinsic)
	assert.Equal(t, 6, p.Value())
	assert.Equal(t, 5, p.State())
}

// should run state and value hooks around a change
func TestPropertyHooks(t *testing.T) {
	var calls []string
	p := fastener.NewProperty(newPlainContext(), "label", fastener.PropertyConfig[string]{
		Initial: "a",
		Hooks: fastener.PropertyHooks[string]{
			WillSetState: func(newState, oldState string) { calls = append(calls, "willSetState "+oldState+">"+newState) },
			DidSetState:  func(newState, oldState string) { calls = append(calls, "didSetState "+oldState+">"+newState) },
			WillSetValue: func(newValue, oldValue string) { calls = append(calls, "willSetValue "+oldValue+">"+newValue) },
			DidSetValue:  func(newValue, oldValue string) { calls = append(calls, "didSetValue "+oldValue+">"+newValue) },
		},
	})

	p.Set("a")
	assert.Empty(t, calls)

	p.Set("b")
	assert.Equal(t, []string{
		"willSetState a>b",
		"willSetValue a>b",
		"didSetValue a>b",
		"didSetState a>b",
	}, calls)
}

// should report undefined values and states
func TestPropertyUndefined(t *testing.T) {
	p := fastener.NewProperty(newPlainContext(), "target", fastener.PropertyConfig[*int]{})

	_, err := p.GetValue()
	assert.ErrorIs(t, err, fastener.ErrUndefinedValue)
	assert.EqualError(t, err, "GetValue target: undefined value")
	_, err = p.GetState()
	assert.ErrorIs(t, err, fastener.ErrUndefinedState)

	fallback := 7
	assert.Same(t, &fallback, p.ValueOr(&fallback))
	assert.Same(t, &fallback, p.StateOr(&fallback))

	n := 1
	p.Set(&n)
	v, err := p.GetValue()
	require.NoError(t, err)
	assert.Same(t, &n, v)
	assert.Same(t, &n, p.ValueOr(&fallback))
}

// should convert loose input before gating on affinity
func TestPropertySetStateFrom(t *testing.T) {
	size := fastener.DeclareNumberProperty("size", fastener.PropertyConfig[float64]{})
	n := component.New(fastener.NewClass("text", nil, size), "n")
	p := size.Get(n)

	require.NoError(t, p.SetStateFrom("42", fastener.Intrinsic))
	assert.Equal(t, 42.0, p.Value())

	require.NoError(t, p.SetStateFrom(" 1.5 ", fastener.Intrinsic))
	assert.Equal(t, 1.5, p.Value())

	require.NoError(t, p.SetStateFrom(int8(3), fastener.Intrinsic))
	assert.Equal(t, 3.0, p.Value())

	err := p.SetStateFrom("wide", fastener.Extrinsic)
	assert.ErrorIs(t, err, fastener.ErrParse)
	assert.Equal(t, 3.0, p.Value())
	assert.Equal(t, fastener.Intrinsic, p.Affinity())

	plain := fastener.NewProperty(newPlainContext(), "plain", fastener.PropertyConfig[int]{})
	assert.ErrorIs(t, plain.SetStateFrom("1", fastener.Extrinsic), fastener.ErrParse)
	require.NoError(t, plain.SetStateFrom(2, fastener.Extrinsic))
	assert.Equal(t, 2, plain.Value())
}

// should report value changes to the owner
func TestPropertyUpdateFlags(t *testing.T) {
	width := fastener.DeclareNumberProperty("width", fastener.PropertyConfig[float64]{
		UpdateFlags: component.NeedsLayout,
	})
	n := component.New(fastener.NewClass("box", nil, width), "n")

	width.Get(n).Set(0)
	assert.Zero(t, n.UpdateFlags())

	width.Get(n).Set(10)
	assert.Equal(t, component.NeedsLayout, n.UpdateFlags())
}

// should follow the super property until overridden locally
func TestPropertyInheritance(t *testing.T) {
	color := fastener.DeclareProperty("color", fastener.PropertyConfig[string]{
		Initial: "black",
		Options: fastener.Options{Inherits: true, Eager: true},
	})
	class := fastener.NewClass("styled", nil, color)

	root := mounted(class, "root")
	child := component.New(class, "child")
	grandchild := component.New(class, "grandchild")
	root.AppendChild(child)
	child.AppendChild(grandchild)

	rootColor, childColor, leafColor := color.Get(root), color.Get(child), color.Get(grandchild)
	assert.True(t, childColor.Inherited())
	assert.True(t, leafColor.Inherited())

	rootColor.SetState("red", fastener.Intrinsic)
	assert.Equal(t, "red", childColor.Value())
	assert.Equal(t, "red", leafColor.Value())
	assert.Equal(t, fastener.Transient, leafColor.Affinity())

	childColor.Set("blue")
	assert.False(t, childColor.Inherited())
	assert.Equal(t, "blue", childColor.Value())
	assert.Equal(t, "blue", leafColor.Value())

	rootColor.SetState("green", fastener.Intrinsic)
	assert.Equal(t, "blue", childColor.Value())
	assert.Equal(t, "blue", leafColor.Value())

	childColor.SetAffinity(fastener.Transient)
	assert.True(t, childColor.Inherited())
	assert.Equal(t, "green", childColor.Value())
	assert.Equal(t, "green", leafColor.Value())
}

// should stop inheriting when the super fastener's affinity drops below
func TestPropertySuperAffinityDrop(t *testing.T) {
	color := fastener.DeclareProperty("color", fastener.PropertyConfig[string]{
		Options: fastener.Options{Inherits: true},
	})
	class := fastener.NewClass("styled", nil, color)
	root := mounted(class, "root")
	child := component.New(class, "child")
	root.AppendChild(child)

	rootColor := color.Get(root)
	rootColor.SetState("red", fastener.Intrinsic)
	childColor := color.Get(child)
	childColor.SetState("red", fastener.Inherited)
	assert.True(t, childColor.Inherited())

	rootColor.SetAffinity(fastener.Transient)
	assert.False(t, childColor.Inherited())
	assert.Same(t, rootColor, childColor.SuperFastener())

	rootColor.SetAffinity(fastener.Intrinsic)
	assert.True(t, childColor.Inherited())
}

// should keep a local write made at the super property's affinity
func TestPropertyInheritedTie(t *testing.T) {
	size := fastener.DeclareNumberProperty("size", fastener.PropertyConfig[float64]{
		Options: fastener.Options{Inherits: true, Eager: true},
	})
	class := fastener.NewClass("sized", nil, size)
	root := mounted(class, "root")
	child := component.New(class, "child")
	root.AppendChild(child)
	rootSize, childSize := size.Get(root), size.Get(child)

	rootSize.Set(1)
	require.True(t, childSize.Inherited())
	assert.Equal(t, 1.0, childSize.Value())

	childSize.Set(5)
	assert.False(t, childSize.Inherited())
	assert.Equal(t, 5.0, childSize.Value())

	rootSize.Set(2)
	assert.Equal(t, 5.0, childSize.Value())
	assert.Equal(t, 2.0, rootSize.Value())
}

// should take an Intrinsic tie back only when the super affinity changes
func TestPropertyIntrinsicTie(t *testing.T) {
	size := fastener.DeclareNumberProperty("size", fastener.PropertyConfig[float64]{
		Options: fastener.Options{Inherits: true, Eager: true},
	})
	class := fastener.NewClass("sized", nil, size)
	root := mounted(class, "root")
	child := component.New(class, "child")
	root.AppendChild(child)
	rootSize, childSize := size.Get(root), size.Get(child)

	rootSize.SetState(1, fastener.Intrinsic)
	childSize.SetState(5, fastener.Intrinsic)
	assert.False(t, childSize.Inherited())

	rootSize.SetState(2, fastener.Intrinsic)
	assert.Equal(t, 5.0, childSize.Value())

	rootSize.SetState(3, fastener.Extrinsic)
	assert.True(t, childSize.Inherited())
	assert.Equal(t, 3.0, childSize.Value())

	childSize.Set(7)
	assert.False(t, childSize.Inherited())
	rootSize.SetAffinity(fastener.Intrinsic)
	assert.False(t, childSize.Inherited())
	assert.Equal(t, 7.0, childSize.Value())
}
