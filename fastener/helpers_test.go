package fastener_test

import (
	"testing"

	"github.com/delaneyj/fasteners/component"
	"github.com/delaneyj/fasteners/fastener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linear(duration float64) *fastener.Timing {
	return fastener.NewTiming(fastener.Linear, duration)
}

func mounted(class *fastener.Class, name string) *component.Node {
	n := component.New(class, name)
	n.Mount()
	return n
}

func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.ErrorIs(t, err, target)
	}()
	fn()
}

// plainContext hosts fasteners without a recoherence queue. Super fasteners
// resolve through parent.
type plainContext struct {
	parent    *plainContext
	fasteners map[string]fastener.Fastener
}

func newPlainContext() *plainContext {
	return &plainContext{fasteners: map[string]fastener.Fastener{}}
}

func (c *plainContext) child() *plainContext {
	sub := newPlainContext()
	sub.parent = c
	return sub
}

func (c *plainContext) HasFastener(name string, bound fastener.Kind) bool {
	return c.GetFastener(name, bound) != nil
}

func (c *plainContext) GetFastener(name string, bound fastener.Kind) fastener.Fastener {
	f, ok := c.fasteners[name]
	if !ok || !f.Kind().Is(bound) {
		return nil
	}
	return f
}

func (c *plainContext) SetFastener(name string, f fastener.Fastener) {
	if f == nil {
		delete(c.fasteners, name)
		return
	}
	c.fasteners[name] = f
}

func (c *plainContext) GetLazyFastener(name string, bound fastener.Kind) fastener.Fastener {
	return c.GetFastener(name, bound)
}

func (c *plainContext) GetSuperFastener(name string, bound fastener.Kind) fastener.Fastener {
	for p := c.parent; p != nil; p = p.parent {
		if f := p.GetLazyFastener(name, bound); f != nil {
			return f
		}
	}
	return nil
}
