package saltbloom

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-metro"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
	"github.com/zhenjl/cityhash"
)

// Hasher is the digest primitive a filter salts once per round.
//
// Sum appends the digest of data to dst and returns the extended slice.
// The digest must be at least 4 bytes long for every input; a filter
// checks this once at construction and panics in Contains if it is later
// broken. Only the first 4 bytes of the digest are consumed, so they must
// carry good avalanche. Implementations must be safe for concurrent use and
// must not retain data.
//
// A Hasher that holds a resource may also implement io.Closer; the filter
// that owns it closes it exactly once from Close.
type Hasher interface {
	Sum(dst, data []byte) []byte
}

// HasherFunc adapts an ordinary function to the Hasher interface.
type HasherFunc func(dst, data []byte) []byte

// Sum calls f(dst, data).
func (f HasherFunc) Sum(dst, data []byte) []byte {
	return f(dst, data)
}

// digestHasher runs a streaming hash.Hash. Instances carry scratch state,
// so each call takes one from the pool and resets it.
type digestHasher struct {
	pool sync.Pool
}

// Digest returns a Hasher backed by the streaming hash built by newHash,
// such as sha256.New or fnv.New32a.
func Digest(newHash func() hash.Hash) Hasher {
	return &digestHasher{
		pool: sync.Pool{New: func() any { return newHash() }},
	}
}

func (d *digestHasher) Sum(dst, data []byte) []byte {
	h := d.pool.Get().(hash.Hash)
	h.Reset()
	h.Write(data)
	dst = h.Sum(dst)
	d.pool.Put(h)
	return dst
}

// SHA256 returns the default, cryptographic Hasher.
func SHA256() Hasher {
	return Digest(sha256.New)
}

// Murmur3 returns a fast 32-bit non-cryptographic Hasher.
func Murmur3() Hasher {
	return HasherFunc(func(dst, data []byte) []byte {
		return binary.BigEndian.AppendUint32(dst, murmur3.Sum32(data))
	})
}

// XXH3 returns a Hasher using the 64-bit xxh3 hash.
func XXH3() Hasher {
	return HasherFunc(func(dst, data []byte) []byte {
		return binary.BigEndian.AppendUint64(dst, xxh3.Hash(data))
	})
}

// XXHash64 returns a Hasher using the 64-bit xxHash.
func XXHash64() Hasher {
	return HasherFunc(func(dst, data []byte) []byte {
		return binary.BigEndian.AppendUint64(dst, xxhash.Sum64(data))
	})
}

// Metro returns a Hasher using the 64-bit metro hash with the given seed.
func Metro(seed uint64) Hasher {
	return HasherFunc(func(dst, data []byte) []byte {
		return binary.BigEndian.AppendUint64(dst, metro.Hash64(data, seed))
	})
}

// CityHash returns a Hasher using the 64-bit CityHash.
func CityHash() Hasher {
	return HasherFunc(func(dst, data []byte) []byte {
		return binary.BigEndian.AppendUint64(dst, cityhash.CityHash64(data, uint32(len(data))))
	})
}

// HasherByName returns the built-in Hasher registered under name.
// Known names are sha256, murmur3, xxh3, xxhash64, metro and cityhash.
func HasherByName(name string) (Hasher, bool) {
	switch name {
	case "sha256":
		return SHA256(), true
	case "murmur3":
		return Murmur3(), true
	case "xxh3":
		return XXH3(), true
	case "xxhash64":
		return XXHash64(), true
	case "metro":
		return Metro(0), true
	case "cityhash":
		return CityHash(), true
	}
	return nil, false
}

// HasherNames lists the names accepted by HasherByName.
func HasherNames() []string {
	return []string{"sha256", "murmur3", "xxh3", "xxhash64", "metro", "cityhash"}
}
