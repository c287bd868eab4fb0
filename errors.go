package saltbloom

import "errors"

var (
	// ErrInvalidArgument is returned at construction when the capacity,
	// false positive rate or a capability is out of its valid domain.
	ErrInvalidArgument = errors.New("saltbloom: invalid argument")

	// ErrCapacityExceeded is returned by Add once the filter holds its
	// configured number of items. The rejected item is not inserted.
	ErrCapacityExceeded = errors.New("saltbloom: capacity exceeded")

	// ErrShortDigest is returned when a Hasher produces fewer than 4 bytes.
	ErrShortDigest = errors.New("saltbloom: digest shorter than 4 bytes")

	// ErrClosed is returned by Add after the filter has been closed.
	ErrClosed = errors.New("saltbloom: filter closed")
)
