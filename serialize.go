package saltbloom

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// Serializer converts an item into the canonical bytes that are hashed.
// It must be deterministic: equal items must always produce equal bytes.
// Items that differ only in data the serializer leaves out collide in the
// filter.
type Serializer[T any] func(item T) []byte

// Bytes returns the identity Serializer for byte slices.
func Bytes() Serializer[[]byte] {
	return func(b []byte) []byte { return b }
}

// String returns a Serializer for strings.
func String() Serializer[string] {
	return func(s string) []byte { return []byte(s) }
}

// Uint64 returns a Serializer encoding integers as 8 little-endian bytes.
func Uint64() Serializer[uint64] {
	return func(v uint64) []byte {
		return binary.LittleEndian.AppendUint64(nil, v)
	}
}

// CBOR returns a Serializer that encodes values with CBOR core
// deterministic encoding, so structurally equal values (including maps
// with the same entries) serialize to the same bytes.
//
// Interface types such as any are rejected, since the dynamic value decides
// whether encoding succeeds. The zero value of T is encoded once up front to
// reject other types CBOR cannot represent. If a later value still fails to
// encode, for example through an interface-typed field, the Serializer
// panics.
func CBOR[T any]() (Serializer[T], error) {
	if typ := reflect.TypeFor[T](); typ.Kind() == reflect.Interface {
		return nil, fmt.Errorf("%w: CBOR item type %v is an interface", ErrInvalidArgument, typ)
	}

	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}

	var zero T
	if _, err := em.Marshal(zero); err != nil {
		return nil, fmt.Errorf("%w: type %T cannot be CBOR encoded: %v", ErrInvalidArgument, zero, err)
	}

	return func(item T) []byte {
		b, err := em.Marshal(item)
		if err != nil {
			panic(fmt.Sprintf("saltbloom: cbor encode %T: %v", item, err))
		}
		return b
	}, nil
}
