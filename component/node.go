// Package component provides Node, a minimal owner tree for fasteners.
package component

import (
	"slices"

	"github.com/delaneyj/fasteners/fastener"
)

// Owner-specific update flags. Property declarations name them in their
// UpdateFlags; Node accumulates them until cleared.
const (
	NeedsRecohere                      = fastener.NeedsRecohere
	NeedsLayout   fastener.UpdateFlags = 1 << iota
	NeedsPaint
)

// Node is a tree node hosting fasteners. Children look up super fasteners
// on their ancestors.
type Node struct {
	*fastener.Host

	name     string
	parent   *Node
	children []*Node
	updates  fastener.UpdateFlags
}

func New(class *fastener.Class, name string) *Node {
	n := &Node{name: name}
	n.Host = fastener.NewHost(n, class)
	return n
}

func (n *Node) Name() string {
	return n.name
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// AppendChild moves child under n. A mounted child is unmounted first and
// mounted again only if n is mounted, so its fasteners rebind under n.
func (n *Node) AppendChild(child *Node) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	} else if child.Mounted() {
		child.Unmount()
	}
	child.parent = n
	child.SetParent(n)
	n.children = append(n.children, child)
	if child.updates&NeedsRecohere != 0 {
		n.RequireUpdate(NeedsRecohere)
	}
	if n.Mounted() {
		child.Mount()
	}
}

// RemoveChild detaches child, unmounting it first. It panics when child is
// not a child of n.
func (n *Node) RemoveChild(child *Node) {
	i := slices.Index(n.children, child)
	if i < 0 {
		panic(&fastener.Error{Op: "RemoveChild", Name: child.name, Err: fastener.ErrNotParent})
	}
	if child.Mounted() {
		child.Unmount()
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	child.SetParent(nil)
}

// Mount mounts n's fasteners, then its children's, so that every child
// binds to fasteners already mounted above it.
func (n *Node) Mount() {
	n.MountFasteners()
	for _, child := range n.Children() {
		child.Mount()
	}
}

// Unmount unmounts children first, then n's own fasteners.
func (n *Node) Unmount() {
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Unmount()
	}
	n.UnmountFasteners()
}

// RequireUpdate records flags on n. NeedsRecohere is also raised on every
// ancestor so a flush from the root reaches n.
func (n *Node) RequireUpdate(flags fastener.UpdateFlags) {
	n.updates |= flags
	if flags&NeedsRecohere == 0 {
		return
	}
	for p := n.parent; p != nil && p.updates&NeedsRecohere == 0; p = p.parent {
		p.updates |= NeedsRecohere
	}
}

func (n *Node) UpdateFlags() fastener.UpdateFlags {
	return n.updates
}

func (n *Node) ClearUpdateFlags(flags fastener.UpdateFlags) {
	n.updates &^= flags
}

// Recohere flushes the recoherence queues of n's subtree at time t, parents
// before children so inherited fasteners see this tick's ancestor values.
func (n *Node) Recohere(t float64) {
	if n.updates&NeedsRecohere == 0 {
		return
	}
	n.updates &^= NeedsRecohere
	n.RecohereFasteners(t)
	for _, child := range n.Children() {
		child.Recohere(t)
	}
}

// Walk calls fn for n and each descendant, depth first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.children {
		child.Walk(fn)
	}
}
