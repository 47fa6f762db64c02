package blob

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"hash"
	"hash/crc32"
	"sort"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// Digest is a named digest family used to checksum container blocks.
// The container header carries only the digest size, so families of
// equal width need out-of-band agreement with the reader.
type Digest struct {
	// Name is the family's registry name ("sha256").
	Name string

	// Size is the digest width in bytes.
	Size int

	// New returns a fresh incremental hasher.
	New func() hash.Hash
}

var digests = map[string]Digest{
	"md5":    {Name: "md5", Size: md5.Size, New: func() hash.Hash { return md5.New() }},
	"sha1":   {Name: "sha1", Size: sha1.Size, New: func() hash.Hash { return sha1.New() }},
	"sha256": {Name: "sha256", Size: sha256.Size, New: func() hash.Hash { return sha256.New() }},
	"crc32":  {Name: "crc32", Size: crc32.Size, New: func() hash.Hash { return crc32.NewIEEE() }},
	"blake2b-256": {Name: "blake2b-256", Size: blake2b.Size256, New: func() hash.Hash {
		h, _ := blake2b.New256(nil)
		return h
	}},
	"blake3": {Name: "blake3", Size: 32, New: func() hash.Hash { return blake3.New() }},
}

// LookupDigest resolves a digest family by name.
func LookupDigest(name string) (Digest, error) {
	d, ok := digests[strings.ToLower(name)]
	if !ok {
		return Digest{}, fmt.Errorf("unknown digest %q (have %s)", name, strings.Join(DigestNames(), ", "))
	}
	return d, nil
}

// DigestNames returns the registered family names in sorted order.
func DigestNames() []string {
	names := make([]string, 0, len(digests))
	for name := range digests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
