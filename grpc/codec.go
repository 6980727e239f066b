// Package sapigrpc provides the gRPC transport between a client and a
// node, using cramberry for deterministic binary serialization.
//
// No protobuf code generation is required. Wire types from sapi/types
// are serialized directly via cramberry struct tags; SCALE payloads
// such as storage values and extrinsics travel as opaque bytes.
package sapigrpc

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/blockberries/cramberry/pkg/cramberry"
	"google.golang.org/grpc/encoding"
)

// ContentSubtype names the codec on the wire: application/grpc+cramberry.
const ContentSubtype = "cramberry"

// ErrMessage is returned for a message the codec cannot carry.
var ErrMessage = errors.New("sapigrpc: unsupported message")

// Codec carries the wire messages of the node service. Both ends must
// use it; Dial forces it on every call and the server finds it by
// content subtype.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: encode nil", ErrMessage)
	}
	data, err := cramberry.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("sapigrpc: encode %T: %w", v, err)
	}
	return data, nil
}

// Unmarshal decodes data into v, which must be a non-nil pointer.
func (Codec) Unmarshal(data []byte, v any) error {
	if rv := reflect.ValueOf(v); rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: decode into %T", ErrMessage, v)
	}
	if err := cramberry.Unmarshal(data, v); err != nil {
		return fmt.Errorf("sapigrpc: decode %T from %d bytes: %w", v, len(data), err)
	}
	return nil
}

func (Codec) Name() string { return ContentSubtype }

func init() {
	encoding.RegisterCodec(Codec{})
}
