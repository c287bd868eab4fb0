// Package saltbloom provides a generic, capacity-bounded bloom filter.
//
// A bloom filter is a space-efficient probabilistic data structure that tests
// whether an element is a member of a set. False positive matches are possible,
// but false negatives are not – if the filter says an element is not present,
// it definitely is not. If it says an element might be present, it could be a
// false positive.
//
// # Sizing
//
// [New] takes the number of items the filter must hold and the false positive
// rate it should reach when full, and derives the bit array length m and the
// number of hash rounds k with [Size]:
//
//	m = ceil(-n * ln(p) / ln(2)²)
//	k = round(ln(2) * m / n)
//
// Example: 1 million items at 0.1% FP rate ≈ 1.8 MB and k = 10.
//
// # Salted Rounds
//
// Rather than k independent hash functions, saltbloom runs one [Hasher] k
// times. Every item is serialized, prefixed with 4 bytes, and for round i
// those bytes are set to i in little-endian order before hashing. The first
// 4 bytes of each digest, read as a little-endian uint32, modulo m give the
// bit position for that round. Only those 4 bytes are used, so the hasher
// must spread its input well across them.
//
// # Hashers
//
// [SHA256] is the default. [Murmur3] is a fast 32-bit alternative, and
// [XXH3], [XXHash64], [Metro] and [CityHash] offer fast 64-bit digests. Any
// streaming hash.Hash can be plugged in with [Digest].
//
// # Serializers
//
// Items of any type are turned into bytes by a [Serializer]. [Bytes],
// [String] and [Uint64] cover plain keys; [CBOR] encodes arbitrary values
// deterministically so structurally equal values collide on purpose.
//
// # Capacity
//
// A filter accepts exactly Capacity items. Further calls to [Filter.Add]
// return [ErrCapacityExceeded] and leave the filter untouched. Items cannot
// be removed.
//
// # Thread Safety
//
// [Filter] is NOT thread-safe. [SyncFilter] wraps one with a read-write
// mutex so that concurrent Add calls cannot overfill it.
//
// # Resources
//
// If the Hasher implements io.Closer, [Filter.Close] closes it exactly once.
// A closed filter rejects Add with [ErrClosed] and panics in Contains:
//
//	f, err := saltbloom.New(1000, 0.01, saltbloom.String(), saltbloom.WithHasher(h))
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//
// # References
//
//   - Space/Time Trade-offs in Hash Coding with Allowable Errors: https://dl.acm.org/doi/10.1145/362686.362692
//   - Less Hashing, Same Performance: https://www.eecs.harvard.edu/~michaelm/postscripts/rsa2008.pdf
package saltbloom
