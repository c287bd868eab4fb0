package saltbloom

import (
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
)

// Filter is a non-thread-safe, capacity-bounded bloom filter over items
// of type T.
//
// Each item is serialized once and hashed rounds times with a single Hasher,
// salting the buffer with the round number so one digest stands in for k
// independent hash functions. Bits are only ever set, so an item that was
// added always tests present.
type Filter[T any] struct {
	capacity  uint64         // Maximum number of items
	fpRate    float64        // Target false positive rate at capacity
	bitCount  uint64         // Length of the bit array
	rounds    uint32         // Number of hash rounds (k)
	bits      *bitset.BitSet // The bit array
	count     uint64         // Number of items added
	hasher    Hasher
	serialize Serializer[T]
	closed    bool
}

// Option configures a Filter at construction.
type Option func(*options)

type options struct {
	hasher Hasher
}

// WithHasher sets the digest primitive. The default is SHA256.
func WithHasher(h Hasher) Option {
	return func(o *options) {
		o.hasher = h
	}
}

// New creates a filter sized for capacity items at the given false
// positive rate. serialize turns items into the bytes that are hashed.
//
// It returns ErrInvalidArgument when capacity is zero, fpRate is outside
// (0, 1), serialize or the hasher is nil, or the hasher's digest is shorter
// than 4 bytes.
func New[T any](capacity uint64, fpRate float64, serialize Serializer[T], opts ...Option) (*Filter[T], error) {
	o := options{hasher: SHA256()}
	for _, opt := range opts {
		opt(&o)
	}

	bitCount, rounds, err := Size(capacity, fpRate)
	if err != nil {
		return nil, err
	}
	if serialize == nil {
		return nil, fmt.Errorf("%w: nil serializer", ErrInvalidArgument)
	}
	if o.hasher == nil {
		return nil, fmt.Errorf("%w: nil hasher", ErrInvalidArgument)
	}
	if n := len(o.hasher.Sum(nil, make([]byte, saltBytes))); n < saltBytes {
		return nil, fmt.Errorf("%w: %w: got %d bytes", ErrInvalidArgument, ErrShortDigest, n)
	}

	return &Filter[T]{
		capacity:  capacity,
		fpRate:    fpRate,
		bitCount:  bitCount,
		rounds:    rounds,
		bits:      bitset.New(uint(bitCount)),
		hasher:    o.hasher,
		serialize: serialize,
	}, nil
}

// NewDefault creates a filter at DefaultFalsePositiveRate.
func NewDefault[T any](capacity uint64, serialize Serializer[T], opts ...Option) (*Filter[T], error) {
	return New(capacity, DefaultFalsePositiveRate, serialize, opts...)
}

// NewBytes creates a filter over byte slices.
func NewBytes(capacity uint64, fpRate float64, opts ...Option) (*Filter[[]byte], error) {
	return New(capacity, fpRate, Bytes(), opts...)
}

// indices serializes item and derives its bit positions.
func (f *Filter[T]) indices(item T) ([]uint64, error) {
	return ComputeIndices(f.hasher, f.serialize(item), f.bitCount, f.rounds)
}

// Add inserts item into the filter.
//
// It returns ErrCapacityExceeded, without modifying the filter, when
// Count already equals Capacity, and ErrClosed after Close.
func (f *Filter[T]) Add(item T) error {
	if f.closed {
		return ErrClosed
	}
	if f.count >= f.capacity {
		return fmt.Errorf("%w: filter holds %d of %d items", ErrCapacityExceeded, f.count, f.capacity)
	}

	idx, err := f.indices(item)
	if err != nil {
		return err
	}

	f.count++
	for _, i := range idx {
		f.bits.Set(uint(i))
	}
	return nil
}

// Contains reports whether item might be in the filter. A false result
// means the item was definitely never added.
//
// Contains panics if the filter has been closed, since its hasher may
// already be released, or if the hasher breaks its contract by returning
// a digest shorter than 4 bytes.
func (f *Filter[T]) Contains(item T) bool {
	if f.closed {
		panic("saltbloom: Contains called on a closed filter")
	}
	idx, err := f.indices(item)
	if err != nil {
		panic(fmt.Sprintf("saltbloom: Contains: %v", err))
	}
	return f.test(idx)
}

func (f *Filter[T]) test(idx []uint64) bool {
	for _, i := range idx {
		if !f.bits.Test(uint(i)) {
			return false
		}
	}
	return true
}

// TestAndAdd reports whether item might already be present and then adds
// it. The add counts against capacity even when item was present. On error
// the filter is unchanged and the returned bool is still the membership
// result.
func (f *Filter[T]) TestAndAdd(item T) (bool, error) {
	if f.closed {
		return false, ErrClosed
	}

	idx, err := f.indices(item)
	if err != nil {
		return false, err
	}

	present := f.test(idx)
	if f.count >= f.capacity {
		return present, fmt.Errorf("%w: filter holds %d of %d items", ErrCapacityExceeded, f.count, f.capacity)
	}

	f.count++
	for _, i := range idx {
		f.bits.Set(uint(i))
	}
	return present, nil
}

// Close releases the hasher if it implements io.Closer. Only the first
// call has an effect. Afterwards Add and TestAndAdd fail with ErrClosed and
// Contains panics.
func (f *Filter[T]) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if c, ok := f.hasher.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Capacity returns the maximum number of items the filter accepts.
func (f *Filter[T]) Capacity() uint64 {
	return f.capacity
}

// FalsePositiveRate returns the configured target false positive rate.
func (f *Filter[T]) FalsePositiveRate() float64 {
	return f.fpRate
}

// BitCount returns the length of the bit array.
func (f *Filter[T]) BitCount() uint64 {
	return f.bitCount
}

// Rounds returns the number of hash rounds per item.
func (f *Filter[T]) Rounds() uint32 {
	return f.rounds
}

// Count returns the number of items added.
func (f *Filter[T]) Count() uint64 {
	return f.count
}

// Remaining returns how many more items Add will accept.
func (f *Filter[T]) Remaining() uint64 {
	return f.capacity - f.count
}

// Full reports whether the filter has reached capacity.
func (f *Filter[T]) Full() bool {
	return f.count >= f.capacity
}

// EstimatedFillRatio returns the proportion of bits that are set.
func (f *Filter[T]) EstimatedFillRatio() float64 {
	return float64(f.bits.Count()) / float64(f.bitCount)
}

// EstimatedFalsePositiveRate estimates the current false positive rate
// based on the number of items added.
func (f *Filter[T]) EstimatedFalsePositiveRate() float64 {
	return EstimateFalsePositiveRate(f.bitCount, f.rounds, f.count)
}
