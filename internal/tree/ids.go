package tree

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits of space.
func newRandomID(prefix string) string {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// fixed suffix rather than propagating an error through every op.
		return prefix + "-00000000"
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return prefix + "-" + strings.ToLower(enc.EncodeToString(b[:]))
}

// newUniqueID draws ids until one is unused across the whole tree. Ids are
// unique per type by invariant, but cross-type uniqueness keeps URLs and CLI
// arguments unambiguous.
func (s *Snapshot) newUniqueID(prefix string) string {
	for {
		id := newRandomID(prefix)
		if !s.idInUse(id) {
			return id
		}
	}
}
