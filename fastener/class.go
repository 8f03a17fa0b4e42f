package fastener

import (
	"fmt"
	"maps"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
)

// Kind identifies the family a fastener belongs to. It replaces class
// checks when resolving a fastener by name with an expected bound.
type Kind uint8

const (
	// KindFastener matches every kind when used as a bound.
	KindFastener Kind = iota
	KindProperty
	KindAnimator
	KindProvider
)

// Is reports whether a fastener of kind k satisfies bound.
func (k Kind) Is(bound Kind) bool {
	switch bound {
	case KindFastener:
		return true
	case KindProperty:
		return k == KindProperty || k == KindAnimator
	default:
		return k == bound
	}
}

// family is the bound used when looking up a super fastener: animators and
// properties inherit from one another.
func (k Kind) family() Kind {
	if k == KindAnimator {
		return KindProperty
	}
	return k
}

func (k Kind) String() string {
	switch k {
	case KindFastener:
		return "fastener"
	case KindProperty:
		return "property"
	case KindAnimator:
		return "animator"
	case KindProvider:
		return "provider"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Declaration describes a named fastener an owner class provides.
type Declaration interface {
	Name() string
	Kind() Kind
	Eager() bool
	New(owner Context) Fastener
}

// Decl is a typed Declaration. Get is the accessor owners expose for the
// declared fastener.
type Decl[F Fastener] struct {
	name  string
	kind  Kind
	eager bool
	build func(owner Context, name string) F
}

func newDecl[F Fastener](name string, kind Kind, eager bool, build func(owner Context, name string) F) *Decl[F] {
	return &Decl[F]{name: name, kind: kind, eager: eager, build: build}
}

func (d *Decl[F]) Name() string {
	return d.name
}

func (d *Decl[F]) Kind() Kind {
	return d.kind
}

func (d *Decl[F]) Eager() bool {
	return d.eager
}

func (d *Decl[F]) New(owner Context) Fastener {
	return d.build(owner, d.name)
}

// Get returns the fastener declared by d on ctx, constructing and storing it
// on first access. It returns the zero F when ctx resolves the name to a
// fastener of another type, e.g. one redeclared by a subclass.
func (d *Decl[F]) Get(ctx Context) F {
	f, _ := ctx.GetLazyFastener(d.name, d.kind).(F)
	return f
}

// Class is the fastener table of an owner type. Its table is computed once
// from the parent's table with the class's own declarations laid over it,
// so a redeclared name shadows the parent's declaration.
type Class struct {
	Name   string
	ID     uint64
	Parent *Class

	own   map[string]Declaration
	table map[string]Declaration
	names []string
	eager []Declaration
}

func NewClass(name string, parent *Class, decls ...Declaration) *Class {
	c := &Class{
		Name:   name,
		ID:     classHash(name),
		Parent: parent,
		own:    make(map[string]Declaration, len(decls)),
		table:  make(map[string]Declaration, len(decls)),
	}

	var seen mapset.Set[string]
	if parent != nil {
		maps.Copy(c.table, parent.table)
		c.names = append(c.names, parent.names...)
		seen = mapset.NewThreadUnsafeSet(parent.names...)
	} else {
		seen = mapset.NewThreadUnsafeSet[string]()
	}
	for _, d := range decls {
		c.own[d.Name()] = d
		c.table[d.Name()] = d
		if seen.Add(d.Name()) {
			c.names = append(c.names, d.Name())
		}
	}
	for _, name := range c.names {
		if d := c.table[name]; d.Eager() {
			c.eager = append(c.eager, d)
		}
	}
	return c
}

// Lookup returns the declaration of name visible from c, or nil when there
// is none or it does not satisfy bound.
func (c *Class) Lookup(name string, bound Kind) Declaration {
	d, ok := c.table[name]
	if !ok || !d.Kind().Is(bound) {
		return nil
	}
	return d
}

// Declares reports whether c itself, not an ancestor, declares name.
func (c *Class) Declares(name string) bool {
	_, ok := c.own[name]
	return ok
}

// Names lists every visible declaration name, ancestors' first.
func (c *Class) Names() []string {
	return append([]string(nil), c.names...)
}

func (c *Class) EagerDeclarations() []Declaration {
	return append([]Declaration(nil), c.eager...)
}

func (c *Class) String() string {
	return c.Name
}

// classHash derives Class.ID from the class name.
var classHash = xxhash.Sum64String

// classes buckets registered classes by ID. Names decide identity, so two
// names that hash alike share a bucket.
var classes = map[uint64][]*Class{}

// RegisterClass adds c to the process-wide class registry. Registering two
// classes with the same name panics.
func RegisterClass(c *Class) *Class {
	for _, other := range classes[c.ID] {
		if other.Name == c.Name {
			fail("RegisterClass", c.Name, ErrDuplicateClass)
		}
	}
	classes[c.ID] = append(classes[c.ID], c)
	return c
}

func LookupClass(name string) *Class {
	for _, c := range classes[classHash(name)] {
		if c.Name == name {
			return c
		}
	}
	return nil
}
