package fastener

type Flags uint32

// Fastener bits sit directly above the affinity bits. Every layer below
// reserves its bits starting at its parent's shift, so the ranges never overlap.
const (
	MountedFlag Flags = 1 << (AffinityShift + iota)
	InheritsFlag
	InheritedFlag
	DecoherentFlag
	fastenerFlagCount = iota
)

const (
	FastenerFlagShift       = AffinityShift + fastenerFlagCount
	FastenerFlagMask  Flags = 1<<FastenerFlagShift - 1
)

// Property declares no bits of its own yet.
const (
	propertyFlagCount       = 0
	PropertyFlagShift       = FastenerFlagShift + propertyFlagCount
	PropertyFlagMask  Flags = 1<<PropertyFlagShift - 1
)

const (
	TweeningFlag Flags = 1 << (PropertyFlagShift + iota)
	DivergedFlag
	InterruptFlag
	animatorFlagCount = iota
)

const (
	AnimatorFlagShift       = PropertyFlagShift + animatorFlagCount
	AnimatorFlagMask  Flags = 1<<AnimatorFlagShift - 1
)

const (
	// OwnsServiceFlag is set when a provider created its service itself.
	OwnsServiceFlag Flags = 1 << (FastenerFlagShift + iota)
	providerFlagCount = iota
)

const (
	ProviderFlagShift       = FastenerFlagShift + providerFlagCount
	ProviderFlagMask  Flags = 1<<ProviderFlagShift - 1
)

func (f Flags) Affinity() Affinity {
	return Affinity(f) & AffinityMask
}

func (f Flags) Has(mask Flags) bool {
	return f&mask != 0
}
