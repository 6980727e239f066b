package devnode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockberries/sapi/client"
	"github.com/blockberries/sapi/config"
	"github.com/blockberries/sapi/local"
	"github.com/blockberries/sapi/pallets/balances"
	"github.com/blockberries/sapi/pallets/system"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/signer"
	"github.com/blockberries/sapi/types"
)

func TestSealBlockDiscardsFailedApply(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.BaseFee = "1000"
	cfg.InstantSeal = false
	n, err := New(cfg)
	require.NoError(err)
	defer n.Close()

	conn, err := local.NewConnection(n)
	require.NoError(err)
	c, err := client.New(ctx, conn, config.Substrate())
	require.NoError(err)

	alice := signer.Dev("Alice")
	bob := signer.Dev("Bob").AccountID()
	before, err := accountOf(n.state, alice.AccountID())
	require.NoError(err)
	issuance, _, err := load(n.state, balances.TotalIssuance())
	require.NoError(err)

	// The transfer passes admission and pays its fee, then trips over an
	// undecodable destination account.
	require.NoError(n.state.db.Put(system.Account(bob).Key(), []byte{0xff}, nil))
	tx, err := c.Tx(&balances.TransferKeepAlive{Dest: types.NewAddressID(bob), Value: scale.NewU128(1)})
	require.NoError(err)
	require.NoError(tx.Sign(ctx, alice))
	ch, err := n.SubmitAndWatch(ctx, tx.Encoded())
	require.NoError(err)

	_, err = n.SealBlock()
	require.NoError(err)
	var last types.TxStatus
	for st := range ch {
		last = st
	}
	require.Equal(types.TxError, last.State)
	require.NotEmpty(last.Reason)

	after, err := accountOf(n.state, alice.AccountID())
	require.NoError(err)
	require.Equal(before, after)
	left, _, err := load(n.state, balances.TotalIssuance())
	require.NoError(err)
	require.Equal(issuance, left)
}

func TestStateHistoryMustBePositive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StateHistory = 0
	_, err := New(cfg)
	require.ErrorContains(t, err, "state_history")
}
