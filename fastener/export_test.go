package fastener

// SetClassHash swaps the hash behind Class.ID until restore is called.
func SetClassHash(hash func(string) uint64) (restore func()) {
	old := classHash
	classHash = hash
	return func() { classHash = old }
}
