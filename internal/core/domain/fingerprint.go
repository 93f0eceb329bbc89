package domain

// Fingerprint maps each eligible filename in the storage directory to its
// last-modification time in unix nanoseconds. It decides whether a cached
// corpus may be reused: two fingerprints are equal iff they cover the same
// files with the same timestamps.
type Fingerprint map[string]int64

// Equal reports exact equality of key sets and values.
func (f Fingerprint) Equal(other Fingerprint) bool {
	if len(f) != len(other) {
		return false
	}
	for name, mtime := range f {
		got, ok := other[name]
		if !ok || got != mtime {
			return false
		}
	}
	return true
}
