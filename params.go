package saltbloom

import (
	"fmt"
	"math"
)

const (
	// DefaultFalsePositiveRate is the target rate used by [NewDefault].
	DefaultFalsePositiveRate = 0.001
	// ln2 is the natural logarithm of 2.
	ln2 = 0.6931471805599453
	// ln2Squared is ln(2)^2.
	ln2Squared = 0.4804530139182014
	// maxBitCount is the largest bit array a 4-byte digest index can
	// address, kept within a 32-bit uint.
	maxBitCount = math.MaxUint32
)

// Size calculates the bit array length and number of hash rounds for a
// filter holding capacity items at the given false positive rate.
//
//	bitCount = ceil(-capacity * ln(fpRate) / ln(2)^2)
//	rounds   = round(ln(2) * bitCount / capacity)
//
// ln(1/2^ln2) equals -ln(2)^2, so this is the same sizing as
// ceil(capacity * ln(fpRate) / ln(1/2^ln2)). Both results are at least 1.
//
// Indices are drawn from 32-bit digest values, so a configuration needing
// more than math.MaxUint32 bits is rejected with ErrInvalidArgument.
func Size(capacity uint64, fpRate float64) (bitCount uint64, rounds uint32, err error) {
	if err := checkArgs(capacity, fpRate); err != nil {
		return 0, 0, err
	}

	n := float64(capacity)
	m := math.Ceil(-n * math.Log(fpRate) / ln2Squared)
	if m > maxBitCount {
		return 0, 0, fmt.Errorf("%w: %.0f bits exceeds the supported maximum of %d", ErrInvalidArgument, m, uint64(maxBitCount))
	}
	bitCount = max(uint64(m), 1)

	rounds = uint32(math.Round(ln2 * float64(bitCount) / n))
	rounds = max(rounds, 1)

	return bitCount, rounds, nil
}

func checkArgs(capacity uint64, fpRate float64) error {
	if capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", ErrInvalidArgument)
	}
	// The negated comparison also rejects NaN.
	if !(fpRate > 0 && fpRate < 1) {
		return fmt.Errorf("%w: false positive rate %v not in (0, 1)", ErrInvalidArgument, fpRate)
	}
	return nil
}

// BitsPerItem returns the number of bits Size allots to each item.
func BitsPerItem(fpRate float64) float64 {
	return -math.Log(fpRate) / ln2Squared
}

// EstimateFalsePositiveRate estimates the false positive rate for given parameters.
// Formula: (1 - e^(-kn/m))^k
func EstimateFalsePositiveRate(bitCount uint64, rounds uint32, itemsAdded uint64) float64 {
	m := float64(bitCount)
	n := float64(itemsAdded)
	k := float64(rounds)

	if m == 0 || n == 0 {
		return 0
	}

	return math.Pow(1-math.Exp(-k*n/m), k)
}
