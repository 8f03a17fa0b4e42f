package component_test

import (
	"testing"

	"github.com/delaneyj/fasteners/component"
	"github.com/delaneyj/fasteners/fastener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	opacity = fastener.DeclareNumberAnimator("opacity", fastener.AnimatorConfig[float64]{
		PropertyConfig: fastener.PropertyConfig[float64]{
			Initial:     1,
			Options:     fastener.Options{Inherits: true, Eager: true},
			UpdateFlags: component.NeedsPaint,
		},
	})
	width = fastener.DeclareNumberProperty("width", fastener.PropertyConfig[float64]{
		UpdateFlags: component.NeedsLayout,
	})
	viewClass = fastener.NewClass("view", nil, opacity, width)
)

// should mount children appended to a mounted parent
func TestAppendChildMounts(t *testing.T) {
	root := component.New(viewClass, "root")
	child := component.New(viewClass, "child")

	root.AppendChild(child)
	assert.False(t, child.Mounted())
	assert.Same(t, root, child.Parent())
	assert.Equal(t, []*component.Node{child}, root.Children())

	root.Mount()
	assert.True(t, child.Mounted())
	assert.True(t, opacity.Get(child).Inherited())

	late := component.New(viewClass, "late")
	child.AppendChild(late)
	assert.True(t, late.Mounted())
	assert.Same(t, opacity.Get(child), opacity.Get(late).SuperFastener())
}

// should panic when removing a node that is not a child
func TestRemoveChildNotParent(t *testing.T) {
	root := component.New(viewClass, "root")
	stranger := component.New(viewClass, "stranger")

	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, fastener.ErrNotParent)
		assert.EqualError(t, err, "RemoveChild stranger: owner is not the parent")
	}()
	root.RemoveChild(stranger)
}

// should rebind inherited fasteners when moved between parents
func TestReparent(t *testing.T) {
	a := component.New(viewClass, "a")
	b := component.New(viewClass, "b")
	root := component.New(nil, "root")
	root.AppendChild(a)
	root.AppendChild(b)
	root.Mount()

	opacity.Get(a).SetState(0.5, fastener.Immediate, fastener.Intrinsic)
	opacity.Get(b).SetState(0.25, fastener.Immediate, fastener.Intrinsic)

	child := component.New(viewClass, "child")
	a.AppendChild(child)
	assert.Equal(t, 0.5, opacity.Get(child).Value())

	b.AppendChild(child)
	assert.Empty(t, a.Children())
	assert.Same(t, b, child.Parent())
	assert.Same(t, opacity.Get(b), opacity.Get(child).SuperFastener())
	assert.Equal(t, 0.25, opacity.Get(child).Value())

	b.RemoveChild(child)
	assert.Nil(t, child.Parent())
	assert.False(t, child.Mounted())
	assert.Nil(t, opacity.Get(child).SuperFastener())
}

// should raise NeedsRecohere on every ancestor of a decoherent node
func TestRequireUpdatePropagates(t *testing.T) {
	root := component.New(nil, "root")
	middle := component.New(nil, "middle")
	leaf := component.New(viewClass, "leaf")
	root.AppendChild(middle)
	middle.AppendChild(leaf)
	root.Mount()

	width.Get(leaf).Set(10)
	assert.Equal(t, component.NeedsLayout, leaf.UpdateFlags())
	assert.Zero(t, middle.UpdateFlags())

	opacity.Get(leaf).SetState(0, fastener.NewTiming(fastener.Linear, 10), fastener.Extrinsic)
	assert.Equal(t, component.NeedsLayout|component.NeedsRecohere, leaf.UpdateFlags())
	assert.Equal(t, component.NeedsRecohere, middle.UpdateFlags())
	assert.Equal(t, component.NeedsRecohere, root.UpdateFlags())

	leaf.ClearUpdateFlags(component.NeedsLayout)
	root.Recohere(0)
	root.Recohere(5)
	assert.Equal(t, 0.5, opacity.Get(leaf).Value())
	assert.Equal(t, component.NeedsPaint|component.NeedsRecohere, leaf.UpdateFlags())

	root.Recohere(10)
	assert.Equal(t, 0.0, opacity.Get(leaf).Value())
	assert.Zero(t, root.UpdateFlags())
	assert.Zero(t, middle.UpdateFlags())
	assert.Equal(t, component.NeedsPaint, leaf.UpdateFlags())
}

// should queue a transition started before mount once the node is appended
func TestAppendDecoherentChild(t *testing.T) {
	root := component.New(nil, "root")
	root.Mount()

	child := component.New(viewClass, "child")
	opacity.Get(child).SetState(0, fastener.NewTiming(fastener.Linear, 10), fastener.Extrinsic)
	require.True(t, opacity.Get(child).Tweening())
	assert.Zero(t, child.Decoherent())
	assert.Zero(t, root.UpdateFlags())

	root.AppendChild(child)
	assert.Equal(t, 1, child.Decoherent())
	assert.Equal(t, component.NeedsRecohere, root.UpdateFlags())

	root.Recohere(0)
	root.Recohere(5)
	assert.Equal(t, 0.5, opacity.Get(child).Value())
}

// should unmount children before their parent
func TestUnmountOrder(t *testing.T) {
	var order []string
	hooks := func(name string) fastener.Options {
		return fastener.Options{
			Eager: true,
			Lifecycle: fastener.FastenerHooks{
				DidUnmount: func() { order = append(order, name) },
			},
		}
	}
	marker := func(name string) *fastener.Class {
		return fastener.NewClass(name, nil, fastener.DeclareProperty("marker", fastener.PropertyConfig[int]{Options: hooks(name)}))
	}
	root := component.New(marker("root"), "root")
	first := component.New(marker("first"), "first")
	second := component.New(marker("second"), "second")
	root.AppendChild(first)
	root.AppendChild(second)
	root.Mount()

	root.Unmount()
	assert.Equal(t, []string{"second", "first", "root"}, order)

	var names []string
	root.Walk(func(n *component.Node) { names = append(names, n.Name()) })
	assert.Equal(t, []string{"root", "first", "second"}, names)
}
