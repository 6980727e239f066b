package sapitest

import (
	"context"
	"errors"
	"testing"

	"github.com/blockberries/sapi"
	"github.com/blockberries/sapi/client"
	"github.com/blockberries/sapi/config"
	"github.com/blockberries/sapi/events"
	"github.com/blockberries/sapi/extrinsic"
	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/pallets/balances"
	"github.com/blockberries/sapi/pallets/preimage"
	"github.com/blockberries/sapi/pallets/system"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/storage"
	"github.com/blockberries/sapi/types"
)

// SubstrateClient is a client of the Substrate profile.
type SubstrateClient = client.Client[types.AccountID32, types.MultiAddress, types.MultiSignature]

// Signer signs for the Substrate profile.
type Signer = extrinsic.Signer[types.AccountID32, types.MultiSignature]

// Harness provides a convenient test harness around a client of the
// Substrate profile. Every failure fails the test.
type Harness struct {
	t    *testing.T
	conn sapi.Connection
	c    *SubstrateClient
}

// NewHarness builds a client over conn with the events of the System,
// Balances and Preimage pallets registered. Pallets the runtime does
// not declare are skipped.
func NewHarness(t *testing.T, conn sapi.Connection, opts ...client.Option) *Harness {
	t.Helper()
	opts = append([]client.Option{client.WithEvents(optional(system.RegisterEvents), optional(balances.RegisterEvents), optional(preimage.RegisterEvents))}, opts...)
	c, err := client.New(context.Background(), conn, config.Substrate(), opts...)
	if err != nil {
		t.Fatalf("client.New failed: %v", err)
	}
	return &Harness{t: t, conn: conn, c: c}
}

func optional(r client.Registrar) client.Registrar {
	return func(reg *events.Registry, meta *metadata.Metadata) error {
		if err := r(reg, meta); err != nil && !errors.Is(err, metadata.ErrUnknownPallet) {
			return err
		}
		return nil
	}
}

// Client returns the underlying client.
func (h *Harness) Client() *SubstrateClient { return h.c }

// Conn returns the connection the harness was built on.
func (h *Harness) Conn() sapi.Connection { return h.conn }

// Sign builds and signs call.
func (h *Harness) Sign(call extrinsic.Call, signer Signer, opts ...extrinsic.SignOption) *extrinsic.Submittable[types.AccountID32, types.MultiAddress, types.MultiSignature] {
	h.t.Helper()
	tx, err := h.c.Tx(call)
	if err != nil {
		h.t.Fatalf("Tx(%s) failed: %v", call.Info().Name, err)
	}
	if err := tx.Sign(context.Background(), signer, opts...); err != nil {
		h.t.Fatalf("Sign(%s) failed: %v", call.Info().Name, err)
	}
	return tx
}

// Submit signs and submits call and returns its progress.
func (h *Harness) Submit(call extrinsic.Call, signer Signer, opts ...extrinsic.SignOption) *extrinsic.Progress {
	h.t.Helper()
	progress, err := h.Sign(call, signer, opts...).Submit(context.Background())
	if err != nil {
		h.t.Fatalf("Submit(%s) failed: %v", call.Info().Name, err)
	}
	return progress
}

// MustFinalize submits call and waits for it to be finalized.
func (h *Harness) MustFinalize(call extrinsic.Call, signer Signer, opts ...extrinsic.SignOption) types.TxStatus {
	h.t.Helper()
	st, err := h.Submit(call, signer, opts...).WaitForFinalized(context.Background())
	if err != nil {
		h.t.Fatalf("%s not finalized: %v", call.Info().Name, err)
	}
	return st
}

// MustReject submits call and asserts that it ends in a failure state.
func (h *Harness) MustReject(call extrinsic.Call, signer Signer, opts ...extrinsic.SignOption) types.TxStatus {
	h.t.Helper()
	_, err := h.Submit(call, signer, opts...).WaitForFinalized(context.Background())
	serr, ok := sapi.IsSubmission(err)
	if !ok {
		h.t.Fatalf("expected %s to be rejected, got %v", call.Info().Name, err)
	}
	return serr.Status
}

// Events returns the decoded events of block at, or of the best block
// when at is zero.
func (h *Harness) Events(at types.Hash) []events.Record {
	h.t.Helper()
	records, err := h.c.BlockEvents(context.Background(), at)
	if err != nil {
		h.t.Fatalf("BlockEvents failed: %v", err)
	}
	return records
}

// Account reads the account information of id.
func (h *Harness) Account(id types.AccountID32) system.AccountInfo {
	h.t.Helper()
	info, err := storage.FetchOrDefault(context.Background(), h.c.Storage(), system.Account(id))
	if err != nil {
		h.t.Fatalf("Account(%s) failed: %v", id, err)
	}
	return info
}

// Free returns the free balance of id.
func (h *Harness) Free(id types.AccountID32) scale.U128 {
	h.t.Helper()
	return h.Account(id).Data.Free
}

// Nonce returns the nonce of id.
func (h *Harness) Nonce(id types.AccountID32) uint64 {
	h.t.Helper()
	n, err := h.c.AccountNonce(context.Background(), id)
	if err != nil {
		h.t.Fatalf("AccountNonce(%s) failed: %v", id, err)
	}
	return n
}
