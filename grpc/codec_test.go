package sapigrpc_test

import (
	"errors"
	"strings"
	"testing"

	sapigrpc "github.com/blockberries/sapi/grpc"
	"github.com/blockberries/sapi/types"
)

func TestCodecRoundTrip(t *testing.T) {
	var c sapigrpc.Codec
	if c.Name() != sapigrpc.ContentSubtype {
		t.Fatalf("codec named %q", c.Name())
	}
	in := &sapigrpc.ReadStorageRequest{Key: types.StorageKey{1, 2, 3}, At: types.Hash{0xaa}}
	data, err := c.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := new(sapigrpc.ReadStorageRequest)
	if err := c.Unmarshal(data, out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if string(out.Key) != string(in.Key) || out.At != in.At {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestCodecRejectsUnusableMessages(t *testing.T) {
	var c sapigrpc.Codec
	if _, err := c.Marshal(nil); !errors.Is(err, sapigrpc.ErrMessage) {
		t.Errorf("Marshal(nil): expected ErrMessage, got %v", err)
	}

	var nilReq *sapigrpc.ReadStorageRequest
	for _, v := range []any{sapigrpc.ReadStorageRequest{}, nilReq} {
		err := c.Unmarshal([]byte{0x00}, v)
		if !errors.Is(err, sapigrpc.ErrMessage) {
			t.Errorf("Unmarshal into %T: expected ErrMessage, got %v", v, err)
		}
		if err != nil && !strings.Contains(err.Error(), "ReadStorageRequest") {
			t.Errorf("error does not name the message type: %v", err)
		}
	}
}
