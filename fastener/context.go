package fastener

// Context is implemented by objects that host fasteners. Most owners get
// it by embedding a *Host.
type Context interface {
	// HasFastener reports whether a fastener named name satisfying bound
	// is installed.
	HasFastener(name string, bound Kind) bool
	// GetFastener returns the installed fastener or nil. It never constructs.
	GetFastener(name string, bound Kind) Fastener
	// SetFastener installs f under name, or removes the fastener when f is
	// nil, mounting or unmounting it to match the owner.
	SetFastener(name string, f Fastener)
	// GetLazyFastener returns the installed fastener, constructing it from
	// the owner's class on first access.
	GetLazyFastener(name string, bound Kind) Fastener
	// GetSuperFastener searches the owner's ancestors, nearest first, for a
	// fastener named name. Ancestors that do not declare it are skipped.
	GetSuperFastener(name string, bound Kind) Fastener
}

// Decoherer is implemented by contexts with a recoherence queue.
type Decoherer interface {
	DecohereFastener(f Fastener)
}

// UpdateFlags are owner-specific invalidation bits.
type UpdateFlags uint32

// NeedsRecohere is raised on an owner whose recoherence queue is not empty.
// Owners define their own flags above it.
const NeedsRecohere UpdateFlags = 1 << 0

// Updater is implemented by contexts that react to fastener changes.
type Updater interface {
	RequireUpdate(flags UpdateFlags)
}
