package fastener

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

type hostFlags uint8

const (
	hostMounted hostFlags = 1 << iota
	hostInitialized
)

// Host is the per-instance fastener storage of an owner. Owner types embed
// a *Host created with NewHost and so satisfy Context and Decoherer.
type Host struct {
	owner  Context
	class  *Class
	parent Context
	flags  hostFlags

	fasteners map[string]Fastener
	order     []string

	decoherent []Fastener
}

// NewHost returns the fastener storage for owner, whose declarations come
// from class. class may be nil for owners that only install fasteners
// explicitly.
func NewHost(owner Context, class *Class) *Host {
	return &Host{
		owner:     owner,
		class:     class,
		fasteners: map[string]Fastener{},
	}
}

func (h *Host) Class() *Class {
	return h.class
}

func (h *Host) ParentContext() Context {
	return h.parent
}

// SetParent links the host to the context super fasteners are looked up in.
// Callers re-parent before mounting.
func (h *Host) SetParent(parent Context) {
	h.parent = parent
}

func (h *Host) Mounted() bool {
	return h.flags&hostMounted != 0
}

func (h *Host) HasFastener(name string, bound Kind) bool {
	return h.GetFastener(name, bound) != nil
}

func (h *Host) GetFastener(name string, bound Kind) Fastener {
	f, ok := h.fasteners[name]
	if !ok || !f.Kind().Is(bound) {
		return nil
	}
	return f
}

// Fasteners returns the installed fasteners in installation order.
func (h *Host) Fasteners() []Fastener {
	fasteners := make([]Fastener, 0, len(h.order))
	for _, name := range h.order {
		fasteners = append(fasteners, h.fasteners[name])
	}
	return fasteners
}

func (h *Host) SetFastener(name string, f Fastener) {
	if f != nil && f.Owner() != h.owner {
		fail("SetFastener", name, ErrNotOwner)
	}
	old := h.fasteners[name]
	if old == f {
		return
	}
	if old != nil {
		if old.Mounted() {
			old.Unmount()
		}
		delete(h.fasteners, name)
		h.order = slices.DeleteFunc(h.order, func(n string) bool { return n == name })
	}
	if f != nil {
		h.fasteners[name] = f
		h.order = append(h.order, name)
		if h.Mounted() && !f.Mounted() {
			f.Mount()
		}
	}
}

func (h *Host) GetLazyFastener(name string, bound Kind) Fastener {
	if f, ok := h.fasteners[name]; ok {
		if !f.Kind().Is(bound) {
			return nil
		}
		return f
	}
	if h.class == nil {
		return nil
	}
	decl := h.class.Lookup(name, bound)
	if decl == nil {
		return nil
	}
	f := decl.New(h.owner)
	h.SetFastener(name, f)
	return f
}

func (h *Host) GetSuperFastener(name string, bound Kind) Fastener {
	parent := h.parent
	if parent == nil {
		return nil
	}
	if f := parent.GetLazyFastener(name, bound); f != nil {
		return f
	}
	return parent.GetSuperFastener(name, bound)
}

// InitFasteners constructs every eager declaration not yet installed. It
// runs once; MountFasteners calls it.
func (h *Host) InitFasteners() {
	if h.flags&hostInitialized != 0 {
		return
	}
	h.flags |= hostInitialized
	if h.class == nil {
		return
	}
	for _, decl := range h.class.EagerDeclarations() {
		if _, ok := h.fasteners[decl.Name()]; !ok {
			h.SetFastener(decl.Name(), decl.New(h.owner))
		}
	}
}

func (h *Host) MountFasteners() {
	if h.Mounted() {
		fail("MountFasteners", h.className(), ErrAlreadyMounted)
	}
	h.flags |= hostMounted
	h.InitFasteners()
	for _, f := range h.Fasteners() {
		if !f.Mounted() {
			f.Mount()
		}
	}
}

func (h *Host) UnmountFasteners() {
	if !h.Mounted() {
		fail("UnmountFasteners", h.className(), ErrAlreadyUnmounted)
	}
	h.flags &^= hostMounted
	fasteners := h.Fasteners()
	for i := len(fasteners) - 1; i >= 0; i-- {
		if f := fasteners[i]; f.Mounted() {
			f.Unmount()
		}
	}
	h.decoherent = nil
}

// DecohereFastener queues f for the next RecohereFasteners call.
func (h *Host) DecohereFastener(f Fastener) {
	h.decoherent = append(h.decoherent, f)
	if u, ok := h.owner.(Updater); ok {
		u.RequireUpdate(NeedsRecohere)
	}
}

// Decoherent reports how many fasteners wait for the next flush.
func (h *Host) Decoherent() int {
	return len(h.decoherent)
}

// RecohereFasteners drains the queue as it stood when the call began, in
// insertion order. Fasteners that decohere again while recohering wait for
// the next call, so each advances at most once per flush.
func (h *Host) RecohereFasteners(t float64) {
	queue := h.decoherent
	if len(queue) == 0 {
		return
	}
	h.decoherent = nil
	seen := mapset.NewThreadUnsafeSet[Fastener]()
	for _, f := range queue {
		if f.Flags()&DecoherentFlag == 0 || !seen.Add(f) {
			continue
		}
		f.Recohere(t)
	}
}

func (h *Host) className() string {
	if h.class == nil {
		return ""
	}
	return h.class.Name
}
