package fastener

import "reflect"

// ServiceAttacher is implemented by services that track the fasteners
// providing them.
type ServiceAttacher interface {
	AttachFastener(f Fastener)
	DetachFastener(f Fastener)
}

type ProviderConfig[S any] struct {
	Options

	// Create builds the service the first time it is needed and neither a
	// service was set nor one is inherited.
	Create        func(owner Context) S
	DidSetService func(newService, oldService S)
}

// Provider binds a singleton service to its owner. An inheriting provider
// hands out the service of its super provider until a service is set at a
// higher affinity.
type Provider[S any] struct {
	Base

	service       S
	hasService    bool
	attached      ServiceAttacher
	create        func(owner Context) S
	didSetService func(newService, oldService S)
}

func NewProvider[S any](owner Context, name string, cfg ProviderConfig[S]) *Provider[S] {
	p := &Provider[S]{
		create:        cfg.Create,
		didSetService: cfg.DidSetService,
	}
	p.Base.init(p, owner, name, KindProvider, cfg.Options)
	return p
}

func DeclareProvider[S any](name string, cfg ProviderConfig[S]) *Decl[*Provider[S]] {
	return newDecl(name, KindProvider, cfg.Eager, func(owner Context, name string) *Provider[S] {
		return NewProvider(owner, name, cfg)
	})
}

// Service returns the inherited service, the provider's own service, or a
// newly created one, in that order.
func (p *Provider[S]) Service() S {
	if s, ok := p.inheritedService(); ok {
		return s
	}
	if !p.hasService && p.create != nil {
		p.assignService(p.create(p.owner))
		p.flags |= OwnsServiceFlag
	}
	return p.service
}

// OwnsService reports whether the provider created its service itself.
func (p *Provider[S]) OwnsService() bool {
	return p.flags&OwnsServiceFlag != 0
}

func (p *Provider[S]) SetService(service S, affinity Affinity) {
	if !p.MinAffinity(affinity) {
		return
	}
	p.flags &^= OwnsServiceFlag
	p.assignService(service)
}

func (p *Provider[S]) assignService(service S) {
	oldService := p.service
	p.service = service
	p.hasService = true
	p.reattach()
	p.notifySubFasteners()
	if p.didSetService != nil {
		p.didSetService(service, oldService)
	}
}

func (p *Provider[S]) inheritedService() (S, bool) {
	if p.Inherited() {
		if src, ok := p.superFastener.(serviceSource[S]); ok {
			return src.Service(), true
		}
	}
	var zero S
	return zero, false
}

// reattach moves the provider's registration to the service it currently
// hands out.
func (p *Provider[S]) reattach() {
	var service any
	if p.Mounted() {
		if s, ok := p.inheritedService(); ok {
			service = s
		} else if p.hasService {
			service = p.service
		}
	}
	var next ServiceAttacher
	if !isNil(service) {
		next, _ = service.(ServiceAttacher)
	}
	prev := p.attached
	if sameAttacher(prev, next) {
		return
	}
	if prev != nil {
		p.attached = nil
		prev.DetachFastener(p)
	}
	if next != nil {
		p.attached = next
		next.AttachFastener(p)
	}
}

func (p *Provider[S]) onMount() {
	p.Base.onMount()
	p.reattach()
}

func (p *Provider[S]) onUnmount() {
	p.Base.onUnmount()
	p.reattach()
}

func (p *Provider[S]) onSetInherited(inherited bool, superFastener Fastener) {
	p.reattach()
	p.notifySubFasteners()
}

func (p *Provider[S]) superChanged() {
	if p.Inherited() {
		p.reattach()
		p.notifySubFasteners()
	}
}

func sameAttacher(a, b ServiceAttacher) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.TypeOf(a).Comparable() && a == b
}

type serviceSource[S any] interface {
	Service() S
}
