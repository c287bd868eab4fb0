package saltbloom

import (
	"encoding/binary"
	"fmt"
)

// saltBytes is the size of the round counter prefixed to every item.
const saltBytes = 4

// SaltedBuffer returns a buffer holding 4 zero bytes followed by data.
// The leading 4 bytes are overwritten with the round number before each
// digest, so the round counter never clobbers item bytes.
func SaltedBuffer(data []byte) []byte {
	buf := make([]byte, saltBytes+len(data))
	copy(buf[saltBytes:], data)
	return buf
}

// saltRound writes round into the first 4 bytes of buf, little-endian.
func saltRound(buf []byte, round uint32) {
	binary.LittleEndian.PutUint32(buf[:saltBytes], round)
}

// ComputeIndices derives rounds bit positions in [0, bitCount) for data.
//
// Round i digests the salted buffer with i in its first 4 bytes and reduces
// the little-endian uint32 in the first 4 bytes of the digest modulo
// bitCount. The same hasher, data and round always give the same index.
func ComputeIndices(h Hasher, data []byte, bitCount uint64, rounds uint32) ([]uint64, error) {
	return AppendIndices(make([]uint64, 0, rounds), h, data, bitCount, rounds)
}

// AppendIndices is like ComputeIndices but appends to dst.
func AppendIndices(dst []uint64, h Hasher, data []byte, bitCount uint64, rounds uint32) ([]uint64, error) {
	if bitCount == 0 {
		return dst, fmt.Errorf("%w: bit count must be at least 1", ErrInvalidArgument)
	}

	buf := SaltedBuffer(data)
	var scratch [64]byte
	for i := uint32(0); i < rounds; i++ {
		saltRound(buf, i)
		digest := h.Sum(scratch[:0], buf)
		if len(digest) < saltBytes {
			return dst, fmt.Errorf("%w: got %d bytes", ErrShortDigest, len(digest))
		}
		v := binary.LittleEndian.Uint32(digest[:saltBytes])
		dst = append(dst, uint64(v)%bitCount)
	}
	return dst, nil
}
