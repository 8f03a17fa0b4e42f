package fastener

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Fastener is a named binding unit owned by a Context. Fasteners of the
// same name on an owner and one of its ancestors are linked through
// BindSuperFastener, letting the descendant inherit the ancestor's value.
type Fastener interface {
	Name() string
	Owner() Context
	Kind() Kind
	Flags() Flags

	Affinity() Affinity
	HasAffinity(affinity Affinity) bool
	MinAffinity(affinity Affinity) bool
	SetAffinity(affinity Affinity)

	Inherits() bool
	SetInherits(inherits bool)
	Inherited() bool
	SuperName() string
	SuperFastener() Fastener
	SubFasteners() []Fastener

	Mounted() bool
	Mount()
	Unmount()
	BindSuperFastener()
	UnbindSuperFastener()

	Decohere()
	Recohere(t float64)

	base() *Base
}

// behavior is the set of overridable steps. Base supplies the defaults;
// Property, Animator and Provider shadow the ones they refine.
type behavior interface {
	onMount()
	onUnmount()
	onSetAffinity(newAffinity, oldAffinity Affinity)
	onSetInherited(inherited bool, superFastener Fastener)
	onRecohere(t float64)
	superChanged()
}

type fastenerImpl interface {
	Fastener
	behavior
}

// Options configures the parts of a fastener shared by every kind.
type Options struct {
	// Affinity is the initial affinity. Zero is Transient.
	Affinity Affinity
	// Inherits binds the fastener to a same-named ancestor fastener on mount.
	Inherits bool
	// SuperName inherits from a differently named ancestor fastener.
	SuperName string
	// Eager fasteners are constructed when their owner is first mounted
	// instead of on first access.
	Eager     bool
	Lifecycle FastenerHooks
}

// FastenerHooks are optional lifecycle callbacks.
type FastenerHooks struct {
	WillMount   func()
	DidMount    func()
	WillUnmount func()
	DidUnmount  func()

	DidBindSuperFastener   func(superFastener Fastener)
	DidUnbindSuperFastener func(superFastener Fastener)
	DidSetInherited        func(inherited bool)
	DidSetAffinity         func(newAffinity, oldAffinity Affinity)
}

// Base implements Fastener. It is embedded by every concrete fastener kind.
type Base struct {
	self  fastenerImpl
	name  string
	owner Context
	kind  Kind
	flags Flags
	hooks FastenerHooks

	superName     string
	superFastener Fastener
	// subFasteners are the fasteners currently bound to this one. It is a
	// notification list, the subs own the binding.
	subFasteners mapset.Set[Fastener]
}

func (b *Base) init(self fastenerImpl, owner Context, name string, kind Kind, opts Options) {
	if !opts.Affinity.Valid() {
		fail("init", name, ErrInvalidAffinity)
	}
	b.self = self
	b.name = name
	b.owner = owner
	b.kind = kind
	b.hooks = opts.Lifecycle
	b.superName = opts.SuperName
	b.flags = Flags(opts.Affinity)
	if opts.Inherits {
		b.flags |= InheritsFlag
	}
}

func (b *Base) base() *Base {
	return b
}

func (b *Base) Name() string {
	return b.name
}

func (b *Base) Owner() Context {
	return b.owner
}

func (b *Base) Kind() Kind {
	return b.kind
}

func (b *Base) Flags() Flags {
	return b.flags
}

func (b *Base) Affinity() Affinity {
	return b.flags.Affinity()
}

// HasAffinity reports whether a write at affinity would be accepted.
func (b *Base) HasAffinity(affinity Affinity) bool {
	return affinity >= b.Affinity()
}

// MinAffinity raises the affinity floor to affinity, treating Reflexive as
// the current affinity, and reports whether a write at that level may proceed.
// An accepted write at or above the super fastener's affinity ends
// inheritance, so the local write is the one that shows.
func (b *Base) MinAffinity(affinity Affinity) bool {
	oldAffinity := b.Affinity()
	reflexive := affinity == Reflexive
	if reflexive {
		affinity = oldAffinity
	} else if !affinity.Valid() {
		fail("MinAffinity", b.name, ErrInvalidAffinity)
	}
	if affinity > oldAffinity {
		b.SetAffinity(affinity)
	}
	if affinity < b.Affinity() {
		return false
	}
	if superFastener := b.superFastener; !reflexive && b.Inherited() && affinity >= superFastener.Affinity() {
		b.setInherited(false, superFastener)
	}
	return true
}

func (b *Base) SetAffinity(affinity Affinity) {
	if !affinity.Valid() {
		fail("SetAffinity", b.name, ErrInvalidAffinity)
	}
	oldAffinity := b.Affinity()
	if affinity == oldAffinity {
		return
	}
	b.flags = b.flags&^Flags(AffinityMask) | Flags(affinity)
	b.self.onSetAffinity(affinity, oldAffinity)
	if b.hooks.DidSetAffinity != nil {
		b.hooks.DidSetAffinity(affinity, oldAffinity)
	}
}

func (b *Base) onSetAffinity(newAffinity, oldAffinity Affinity) {
	b.reconcileInherited()
	for _, sub := range b.SubFasteners() {
		sub.base().reconcileInherited()
	}
}

// reconcileInherited flips the inherited state to match the current
// affinities: local control wins once it rises above the super fastener.
func (b *Base) reconcileInherited() {
	superFastener := b.superFastener
	if superFastener == nil {
		return
	}
	if outranks(b.Affinity(), superFastener.Affinity()) {
		b.setInherited(false, superFastener)
	} else if b.Inherits() {
		b.setInherited(true, superFastener)
	}
}

// outranks reports whether a fastener at affinity keeps local control over a
// super fastener at superAffinity. The super side counts as at most Intrinsic,
// so an Extrinsic fastener is never taken over.
func outranks(affinity, superAffinity Affinity) bool {
	return affinity > min(superAffinity, Intrinsic)
}

func (b *Base) Inherits() bool {
	return b.flags&InheritsFlag != 0
}

func (b *Base) SetInherits(inherits bool) {
	if inherits == b.Inherits() {
		return
	}
	mounted := b.Mounted()
	if mounted {
		b.UnbindSuperFastener()
	}
	if inherits {
		b.flags |= InheritsFlag
	} else {
		b.flags &^= InheritsFlag
	}
	if mounted && inherits {
		b.BindSuperFastener()
	}
}

func (b *Base) Inherited() bool {
	return b.flags&InheritedFlag != 0
}

func (b *Base) setInherited(inherited bool, superFastener Fastener) {
	if inherited == b.Inherited() {
		return
	}
	if inherited {
		b.flags |= InheritedFlag
	} else {
		b.flags &^= InheritedFlag
	}
	b.self.onSetInherited(inherited, superFastener)
	if b.hooks.DidSetInherited != nil {
		b.hooks.DidSetInherited(inherited)
	}
}

func (b *Base) onSetInherited(inherited bool, superFastener Fastener) {}

// SuperName is the name looked up on ancestors, or "" when the fastener
// does not inherit.
func (b *Base) SuperName() string {
	if !b.Inherits() {
		return ""
	}
	if b.superName != "" {
		return b.superName
	}
	return b.name
}

func (b *Base) SuperFastener() Fastener {
	return b.superFastener
}

func (b *Base) SubFasteners() []Fastener {
	if b.subFasteners == nil {
		return nil
	}
	return b.subFasteners.ToSlice()
}

func (b *Base) attachSubFastener(sub Fastener) {
	if b.subFasteners == nil {
		b.subFasteners = mapset.NewThreadUnsafeSet[Fastener]()
	}
	b.subFasteners.Add(sub)
}

func (b *Base) detachSubFastener(sub Fastener) {
	if b.subFasteners != nil {
		b.subFasteners.Remove(sub)
	}
}

// notifySubFasteners tells every bound sub fastener that this one changed.
func (b *Base) notifySubFasteners() {
	for _, sub := range b.SubFasteners() {
		sub.base().self.superChanged()
	}
}

func (b *Base) superChanged() {}

func (b *Base) BindSuperFastener() {
	if !b.Mounted() || b.superFastener != nil {
		return
	}
	superName := b.SuperName()
	if superName == "" {
		return
	}
	superFastener := b.owner.GetSuperFastener(superName, b.kind.family())
	if superFastener == nil || superFastener == Fastener(b.self) {
		return
	}
	b.superFastener = superFastener
	superFastener.base().attachSubFastener(b.self)
	b.reconcileInherited()
	if b.hooks.DidBindSuperFastener != nil {
		b.hooks.DidBindSuperFastener(superFastener)
	}
}

func (b *Base) UnbindSuperFastener() {
	superFastener := b.superFastener
	if superFastener == nil {
		return
	}
	superFastener.base().detachSubFastener(b.self)
	b.superFastener = nil
	b.setInherited(false, superFastener)
	if b.hooks.DidUnbindSuperFastener != nil {
		b.hooks.DidUnbindSuperFastener(superFastener)
	}
}

func (b *Base) Mounted() bool {
	return b.flags&MountedFlag != 0
}

func (b *Base) Mount() {
	if b.Mounted() {
		fail("Mount", b.name, ErrAlreadyMounted)
	}
	if b.hooks.WillMount != nil {
		b.hooks.WillMount()
	}
	b.flags |= MountedFlag
	b.self.onMount()
	if b.hooks.DidMount != nil {
		b.hooks.DidMount()
	}
}

func (b *Base) onMount() {
	b.BindSuperFastener()
}

func (b *Base) Unmount() {
	if !b.Mounted() {
		fail("Unmount", b.name, ErrAlreadyUnmounted)
	}
	if b.hooks.WillUnmount != nil {
		b.hooks.WillUnmount()
	}
	// A stale queue entry is skipped once Decoherent is clear.
	b.flags &^= MountedFlag | DecoherentFlag
	b.self.onUnmount()
	if b.hooks.DidUnmount != nil {
		b.hooks.DidUnmount()
	}
}

func (b *Base) onUnmount() {
	b.UnbindSuperFastener()
}

// Decohere queues the fastener for the owner's next recoherence flush.
// It is a no-op when the fastener is unmounted or the owner has no
// decoherence queue.
func (b *Base) Decohere() {
	if b.flags&(DecoherentFlag|MountedFlag) != MountedFlag {
		return
	}
	if d, ok := b.owner.(Decoherer); ok {
		b.flags |= DecoherentFlag
		d.DecohereFastener(b.self)
	}
}

func (b *Base) Recohere(t float64) {
	b.flags &^= DecoherentFlag
	b.self.onRecohere(t)
}

func (b *Base) onRecohere(t float64) {}
