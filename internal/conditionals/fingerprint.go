package conditionals

import (
	"encoding/json"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the canonical JSON encoding of b. Builds with equal
// fields have equal fingerprints.
func Fingerprint(b *Build) uint64 {
	mustBuild(b)

	h := xxhash.New()
	// Encoding a struct of strings and bools cannot fail.
	_ = json.NewEncoder(h).Encode(b)
	return h.Sum64()
}
