package saltbloom

import "sync"

// SyncFilter is a Filter guarded by a read-write mutex, safe for
// concurrent use.
//
// Add holds the write lock across the capacity check and the bit updates,
// so concurrent writers can never admit more than Capacity items. Contains
// only reads and runs under the read lock. The Hasher must itself be safe
// for concurrent use, which all built-in hashers are.
type SyncFilter[T any] struct {
	mu sync.RWMutex
	f  *Filter[T]
}

// NewSync creates a thread-safe filter. Arguments are as for New.
func NewSync[T any](capacity uint64, fpRate float64, serialize Serializer[T], opts ...Option) (*SyncFilter[T], error) {
	f, err := New(capacity, fpRate, serialize, opts...)
	if err != nil {
		return nil, err
	}
	return &SyncFilter[T]{f: f}, nil
}

// Add inserts item. See Filter.Add.
func (s *SyncFilter[T]) Add(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Add(item)
}

// Contains reports whether item might be present. See Filter.Contains.
func (s *SyncFilter[T]) Contains(item T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.Contains(item)
}

// TestAndAdd tests and adds item as a single critical section.
func (s *SyncFilter[T]) TestAndAdd(item T) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.TestAndAdd(item)
}

// Close releases the hasher. See Filter.Close.
func (s *SyncFilter[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}

// Capacity returns the maximum number of items the filter accepts.
func (s *SyncFilter[T]) Capacity() uint64 {
	return s.f.Capacity()
}

// FalsePositiveRate returns the configured target false positive rate.
func (s *SyncFilter[T]) FalsePositiveRate() float64 {
	return s.f.FalsePositiveRate()
}

// BitCount returns the length of the bit array.
func (s *SyncFilter[T]) BitCount() uint64 {
	return s.f.BitCount()
}

// Rounds returns the number of hash rounds per item.
func (s *SyncFilter[T]) Rounds() uint32 {
	return s.f.Rounds()
}

// Count returns the number of items added.
func (s *SyncFilter[T]) Count() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.Count()
}

// EstimatedFillRatio returns the proportion of bits that are set.
func (s *SyncFilter[T]) EstimatedFillRatio() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.EstimatedFillRatio()
}

// Remaining returns how many more items Add will accept.
func (s *SyncFilter[T]) Remaining() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.Remaining()
}

// Full reports whether the filter has reached capacity.
func (s *SyncFilter[T]) Full() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.Full()
}

// EstimatedFalsePositiveRate estimates the current false positive rate.
func (s *SyncFilter[T]) EstimatedFalsePositiveRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f.EstimatedFalsePositiveRate()
}
