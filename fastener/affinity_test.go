package fastener_test

import (
	"testing"

	"github.com/delaneyj/fasteners/fastener"
	"github.com/stretchr/testify/assert"
)

// should order affinities from weakest to strongest
func TestAffinityOrder(t *testing.T) {
	assert.Less(t, fastener.Transient, fastener.Inherited)
	assert.Less(t, fastener.Inherited, fastener.Intrinsic)
	assert.Less(t, fastener.Intrinsic, fastener.Extrinsic)
	assert.True(t, fastener.Extrinsic.Valid())
	assert.False(t, fastener.Reflexive.Valid())
	assert.Equal(t, "intrinsic", fastener.Intrinsic.String())
	assert.Equal(t, "Affinity(9)", fastener.Affinity(9).String())
}

// should keep every flag layer clear of the layers below it
func TestFlagLayout(t *testing.T) {
	affinityBits := fastener.Flags(fastener.AffinityMask)
	fastenerBits := []fastener.Flags{
		fastener.MountedFlag,
		fastener.InheritsFlag,
		fastener.InheritedFlag,
		fastener.DecoherentFlag,
	}
	animatorBits := []fastener.Flags{
		fastener.TweeningFlag,
		fastener.DivergedFlag,
		fastener.InterruptFlag,
	}

	var seen fastener.Flags
	for _, f := range fastenerBits {
		assert.Zero(t, f&affinityBits)
		assert.Zero(t, f&seen)
		assert.NotZero(t, f&fastener.FastenerFlagMask)
		seen |= f
	}
	for _, f := range animatorBits {
		assert.Zero(t, f&fastener.FastenerFlagMask)
		assert.Zero(t, f&seen)
		assert.NotZero(t, f&fastener.AnimatorFlagMask)
		seen |= f
	}
	assert.Zero(t, fastener.OwnsServiceFlag&fastener.FastenerFlagMask)
	assert.Equal(t, fastener.FastenerFlagShift, fastener.PropertyFlagShift)
	assert.Equal(t, fastener.PropertyFlagShift+3, fastener.AnimatorFlagShift)
	assert.Equal(t, fastener.Intrinsic, (fastener.MountedFlag | fastener.Flags(fastener.Intrinsic)).Affinity())
}

// should raise the affinity floor and reject weaker writes
func TestMinAffinity(t *testing.T) {
	p := fastener.NewProperty(newPlainContext(), "width", fastener.PropertyConfig[int]{})

	assert.True(t, p.MinAffinity(fastener.Transient))
	assert.Equal(t, fastener.Transient, p.Affinity())

	assert.True(t, p.MinAffinity(fastener.Intrinsic))
	assert.Equal(t, fastener.Intrinsic, p.Affinity())

	assert.False(t, p.MinAffinity(fastener.Inherited))
	assert.Equal(t, fastener.Intrinsic, p.Affinity())

	assert.True(t, p.MinAffinity(fastener.Reflexive))
	assert.Equal(t, fastener.Intrinsic, p.Affinity())

	assert.True(t, p.HasAffinity(fastener.Extrinsic))
	assert.False(t, p.HasAffinity(fastener.Transient))
}

// should panic on affinities outside the mask
func TestInvalidAffinityPanics(t *testing.T) {
	p := fastener.NewProperty(newPlainContext(), "width", fastener.PropertyConfig[int]{})

	requirePanicsWith(t, fastener.ErrInvalidAffinity, func() {
		p.MinAffinity(fastener.Affinity(5))
	})
	requirePanicsWith(t, fastener.ErrInvalidAffinity, func() {
		p.SetAffinity(fastener.Reflexive)
	})
	requirePanicsWith(t, fastener.ErrInvalidAffinity, func() {
		fastener.NewProperty(newPlainContext(), "width", fastener.PropertyConfig[int]{
			Options: fastener.Options{Affinity: fastener.Affinity(8)},
		})
	})
}

// should report affinity changes through the lifecycle hook
func TestDidSetAffinityHook(t *testing.T) {
	type change struct{ newAffinity, oldAffinity fastener.Affinity }
	var changes []change
	p := fastener.NewProperty(newPlainContext(), "width", fastener.PropertyConfig[int]{
		Options: fastener.Options{
			Lifecycle: fastener.FastenerHooks{
				DidSetAffinity: func(newAffinity, oldAffinity fastener.Affinity) {
					changes = append(changes, change{newAffinity, oldAffinity})
				},
			},
		},
	})

	p.SetState(1, fastener.Intrinsic)
	p.SetState(2, fastener.Intrinsic)
	p.SetAffinity(fastener.Transient)

	assert.Equal(t, []change{
		{fastener.Intrinsic, fastener.Transient},
		{fastener.Transient, fastener.Intrinsic},
	}, changes)
}

func TestParseAffinity(t *testing.T) {
	for _, a := range []fastener.Affinity{fastener.Transient, fastener.Inherited, fastener.Intrinsic, fastener.Extrinsic, fastener.Reflexive} {
		got, err := fastener.ParseAffinity(a.String())
		assert.NoError(t, err)
		assert.Equal(t, a, got)
	}
	got, err := fastener.ParseAffinity(" Intrinsic ")
	assert.NoError(t, err)
	assert.Equal(t, fastener.Intrinsic, got)

	_, err = fastener.ParseAffinity("loud")
	assert.ErrorIs(t, err, fastener.ErrParse)
}
