package extrinsic_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/blockberries/sapi"
	"github.com/blockberries/sapi/config"
	"github.com/blockberries/sapi/extrinsic"
	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/signer"
	"github.com/blockberries/sapi/types"
)

var (
	genesis = types.Hash{0x91, 0xb1}
	runtime = types.RuntimeVersion{SpecName: "dev", SpecVersion: 100, TransactionVersion: 7}
)

type fakeChain struct {
	conn     sapi.Connection
	genesis  types.Hash
	nonce    uint64
	nonceErr error
	params   config.ParamsSpec
}

func newFakeChain(conn sapi.Connection) *fakeChain {
	return &fakeChain{conn: conn, genesis: genesis, nonce: 3, params: config.PlainTip{}}
}

func (f *fakeChain) Config() config.SubstrateConfig { return config.Substrate() }
func (f *fakeChain) Params() config.ParamsSpec      { return f.params }
func (f *fakeChain) Runtime() types.RuntimeVersion  { return runtime }
func (f *fakeChain) GenesisHash() types.Hash        { return f.genesis }
func (f *fakeChain) Conn() sapi.Connection          { return f.conn }
func (f *fakeChain) AccountNonce(context.Context, types.AccountID32) (uint64, error) {
	return f.nonce, f.nonceErr
}

type remark struct{ data []byte }

func (remark) Info() types.CallInfo {
	return types.CallInfo{Pallet: "System", Name: "remark", PalletIndex: 0, CallIndex: 0}
}
func (r remark) EncodeArgs(e *scale.Encoder) { e.EncodeBytes(r.data) }

func testMetadata(t *testing.T) *metadata.Metadata {
	m, err := metadata.New(metadata.ExtrinsicInfo{Version: 4, SignedExtensions: config.PlainTip{}.Identifiers()},
		metadata.Pallet{Name: "System", Index: 0, Calls: []metadata.Variant{{Name: "remark", Index: 0}}},
		metadata.Pallet{Name: "Balances", Index: 5, Calls: []metadata.Variant{{Name: "transfer_keep_alive", Index: 3}}},
	)
	require.NoError(t, err)
	return m
}

func TestEncodeCall(t *testing.T) {
	require := require.New(t)

	require.Equal([]byte{0, 0, 0x0c, 'a', 'b', 'c'}, extrinsic.EncodeCall(remark{[]byte("abc")}))

	raw, err := extrinsic.NewRawCall(testMetadata(t), "Balances", "transfer_keep_alive", []byte{9})
	require.NoError(err)
	require.Equal([]byte{5, 3, 9}, extrinsic.EncodeCall(raw))

	_, err = extrinsic.NewRawCall(testMetadata(t), "Balances", "burn", nil)
	_, ok := sapi.IsConstruction(err)
	require.True(ok)
}

func TestCheckCall(t *testing.T) {
	meta := testMetadata(t)
	require.NoError(t, extrinsic.CheckCall(meta, remark{}.Info()))

	for _, info := range []types.CallInfo{
		{Pallet: "Sudo", Name: "sudo"},
		{Pallet: "System", Name: "remark", PalletIndex: 1},
		{Pallet: "System", Name: "remark_with_event"},
		{Pallet: "Balances", Name: "transfer_keep_alive", PalletIndex: 5, CallIndex: 0},
	} {
		err := extrinsic.CheckCall(meta, info)
		_, ok := sapi.IsConstruction(err)
		require.True(t, ok, "%s: expected ConstructionError, got %v", info, err)
	}
}

func TestUnsignedEnvelope(t *testing.T) {
	require := require.New(t)

	call := []byte{0, 0, 0}
	ext := extrinsic.EncodeUnsigned(call)
	require.Equal(types.Extrinsic{0x10, 0x04, 0, 0, 0}, ext)

	env, err := extrinsic.DecodeEnvelope(ext, nil)
	require.NoError(err)
	require.False(env.Signed)
	require.Equal(call, env.Call)
}

func TestSigningPayloadHashesLongPayloads(t *testing.T) {
	require := require.New(t)

	params, err := config.PlainTip{}.Build(config.ParamsInput{GenesisHash: genesis})
	require.NoError(err)
	e := scale.NewEncoder()
	params.EncodeExtra(e)
	params.EncodeAdditional(e)
	tail := e.Bytes()

	short := bytes.Repeat([]byte{1}, 256-len(tail))
	require.Equal(append(append([]byte{}, short...), tail...), extrinsic.SigningPayload(short, params))

	long := bytes.Repeat([]byte{1}, 257-len(tail))
	sum := hasher.Blake2b256(append(append([]byte{}, long...), tail...))
	require.Equal(sum[:], extrinsic.SigningPayload(long, params))
}

func TestSignProducesVerifiableEnvelope(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	alice := signer.Dev("Alice")
	chain := newFakeChain(sapi.NewMockConnection(ctrl))
	call := remark{bytes.Repeat([]byte{7}, 300)}
	tx := extrinsic.New[types.AccountID32, types.MultiAddress, types.MultiSignature](chain, call)
	require.Equal(extrinsic.Unsigned, tx.State())

	require.NoError(tx.Sign(context.Background(), alice, extrinsic.WithTip(scale.NewU128(5))))
	require.Equal(extrinsic.Signed, tx.State())
	require.Equal(types.HashFromBytes(hasher.BlakeTwo256.Hash(tx.Encoded())), tx.Hash())

	var extra config.PlainTipParams
	env, err := extrinsic.DecodeEnvelope(tx.Encoded(), &extra)
	require.NoError(err)
	require.True(env.Signed)
	require.Equal(types.NewAddressID(alice.AccountID()), env.Address)
	require.Equal(types.SigEd25519, env.Signature.Kind)
	require.Equal(extrinsic.EncodeCall(call), env.Call)
	require.EqualValues(3, extra.Nonce)
	require.Equal("5", extra.Tip.String())
	require.False(extra.Era.Mortal)

	// Rebuild the additional part the node knows and check the signature.
	extra.SpecVersion, extra.TxVersion = runtime.SpecVersion, runtime.TransactionVersion
	extra.Genesis, extra.Checkpoint = genesis, genesis
	require.True(signer.Verify(alice.AccountID(), extrinsic.SigningPayload(env.Call, &extra), env.Signature))
}

func TestSignWithMortality(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	head := types.Hash{0xee}
	reader := sapi.NewMockChainReader(ctrl)
	reader.EXPECT().FinalizedHead(gomock.Any()).Return(head, nil)
	reader.EXPECT().Header(gomock.Any(), head).Return(types.Header{Number: 42}, nil)
	conn := sapi.NewMockConnection(ctrl)
	conn.EXPECT().AsChainReader().Return(reader)

	tx := extrinsic.New[types.AccountID32, types.MultiAddress, types.MultiSignature](newFakeChain(conn), remark{})
	require.NoError(tx.Sign(context.Background(), signer.Dev("Alice"), extrinsic.WithMortality(64), extrinsic.WithNonce(9)))

	var extra config.PlainTipParams
	env, err := extrinsic.DecodeEnvelope(tx.Encoded(), &extra)
	require.NoError(err)
	require.Equal(types.NewMortalEra(64, 42), extra.Era)
	require.EqualValues(9, extra.Nonce)

	extra.SpecVersion, extra.TxVersion = runtime.SpecVersion, runtime.TransactionVersion
	extra.Genesis, extra.Checkpoint = genesis, head
	require.True(signer.Verify(signer.Dev("Alice").AccountID(), extrinsic.SigningPayload(env.Call, &extra), env.Signature))
}

func TestSignConstructionErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	alice := signer.Dev("Alice")
	terr := sapi.NewTransportError("ReadStorage", io.ErrUnexpectedEOF)

	tests := []struct {
		name  string
		chain func() *fakeChain
		opts  []extrinsic.SignOption
	}{
		{"nonce read fails", func() *fakeChain {
			c := newFakeChain(sapi.NewMockConnection(ctrl))
			c.nonceErr = terr
			return c
		}, nil},
		{"missing genesis", func() *fakeChain {
			c := newFakeChain(sapi.NewMockConnection(ctrl))
			c.genesis = types.Hash{}
			return c
		}, nil},
		{"mortal without chain reader", func() *fakeChain {
			conn := sapi.NewMockConnection(ctrl)
			conn.EXPECT().AsChainReader().Return(nil)
			return newFakeChain(conn)
		}, []extrinsic.SignOption{extrinsic.WithMortality(64)}},
		{"asset tip on plain tip chain", func() *fakeChain {
			return newFakeChain(sapi.NewMockConnection(ctrl))
		}, []extrinsic.SignOption{extrinsic.WithAssetTip(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := extrinsic.New[types.AccountID32, types.MultiAddress, types.MultiSignature](tt.chain(), remark{})
			err := tx.Sign(context.Background(), alice, tt.opts...)
			_, ok := sapi.IsConstruction(err)
			require.True(t, ok, "expected ConstructionError, got %v", err)
			require.Equal(t, extrinsic.Unsigned, tx.State())
			require.Nil(t, tx.Encoded())
		})
	}

	// The transport failure stays reachable through the construction error.
	c := newFakeChain(sapi.NewMockConnection(ctrl))
	c.nonceErr = terr
	tx := extrinsic.New[types.AccountID32, types.MultiAddress, types.MultiSignature](c, remark{})
	err := tx.Sign(context.Background(), alice)
	_, ok := sapi.IsTransport(err)
	require.True(t, ok)

	// A failed Sign leaves the extrinsic signable.
	c.nonceErr = nil
	require.NoError(t, tx.Sign(context.Background(), alice))
}

func TestSubmitOrderIsEnforced(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	conn := sapi.NewMockConnection(ctrl)
	tx := extrinsic.New[types.AccountID32, types.MultiAddress, types.MultiSignature](newFakeChain(conn), remark{})

	require.Panics(func() { _, _ = tx.Submit(context.Background()) })

	require.NoError(tx.Sign(context.Background(), signer.Dev("Alice")))
	require.Panics(func() { _ = tx.Sign(context.Background(), signer.Dev("Alice")) })

	ch := make(chan types.TxStatus)
	close(ch)
	conn.EXPECT().SubmitAndWatch(gomock.Any(), tx.Encoded()).Return(ch, nil)
	_, err := tx.Submit(context.Background())
	require.NoError(err)
	require.Equal(extrinsic.Submitted, tx.State())
	require.Panics(func() { _, _ = tx.Submit(context.Background()) })
}

func TestSubmitFailureAllowsRetry(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	conn := sapi.NewMockConnection(ctrl)
	tx := extrinsic.New[types.AccountID32, types.MultiAddress, types.MultiSignature](newFakeChain(conn), remark{})
	require.NoError(tx.Sign(context.Background(), signer.Dev("Alice")))

	terr := sapi.NewTransportError("SubmitAndWatch", errors.New("unavailable"))
	ch := make(chan types.TxStatus)
	gomock.InOrder(
		conn.EXPECT().SubmitAndWatch(gomock.Any(), gomock.Any()).Return(nil, terr),
		conn.EXPECT().SubmitAndWatch(gomock.Any(), gomock.Any()).Return(ch, nil),
	)

	_, err := tx.Submit(context.Background())
	require.Same(terr, err)
	require.Equal(extrinsic.Signed, tx.State())

	p, err := tx.Submit(context.Background())
	require.NoError(err)
	require.Equal(tx.Hash(), p.Hash())
	p.Close()
}

func submitWith(t *testing.T, statuses ...types.TxStatus) (*extrinsic.Progress, *context.Context) {
	t.Helper()
	ctrl := gomock.NewController(t)
	conn := sapi.NewMockConnection(ctrl)

	ch := make(chan types.TxStatus, len(statuses))
	for _, s := range statuses {
		ch <- s
	}
	close(ch)
	var watchCtx context.Context
	conn.EXPECT().SubmitAndWatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ types.Extrinsic) (<-chan types.TxStatus, error) {
			watchCtx = ctx
			return ch, nil
		})

	tx := extrinsic.New[types.AccountID32, types.MultiAddress, types.MultiSignature](newFakeChain(conn), remark{})
	p, err := tx.SignAndSubmit(context.Background(), signer.Dev("Alice"))
	require.NoError(t, err)
	return p, &watchCtx
}

func TestProgressDeduplicates(t *testing.T) {
	require := require.New(t)

	h1, h2 := types.Hash{1}, types.Hash{2}
	p, _ := submitWith(t,
		types.TxStatus{State: types.TxSubmitted},
		types.TxStatus{State: types.TxSubmitted},
		types.TxStatus{State: types.TxInBlock, Block: h1},
		types.TxStatus{State: types.TxInBlock, Block: h1},
		types.TxStatus{State: types.TxInBlock, Block: h2},
		types.TxStatus{State: types.TxFinalized, Block: h2},
		types.TxStatus{State: types.TxInBlock, Block: types.Hash{3}},
	)

	var got []types.TxStatus
	for {
		st, err := p.Next(context.Background())
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(err)
		got = append(got, st)
	}
	require.Equal([]types.TxStatus{
		{State: types.TxSubmitted},
		{State: types.TxInBlock, Block: h1},
		{State: types.TxInBlock, Block: h2},
		{State: types.TxFinalized, Block: h2},
	}, got)
}

func TestWaitForFinalized(t *testing.T) {
	require := require.New(t)

	block := types.Hash{9}
	p, watchCtx := submitWith(t,
		types.TxStatus{State: types.TxSubmitted},
		types.TxStatus{State: types.TxInBlock, Block: block},
		types.TxStatus{State: types.TxFinalized, Block: block},
	)
	st, err := p.WaitForInBlock(context.Background())
	require.NoError(err)
	require.Equal(block, st.Block)

	st, err = p.WaitForFinalized(context.Background())
	require.NoError(err)
	require.Equal(types.TxFinalized, st.State)

	// A terminal status releases the watch.
	require.Error((*watchCtx).Err())
}

func TestWaitReportsFailures(t *testing.T) {
	require := require.New(t)

	p, _ := submitWith(t,
		types.TxStatus{State: types.TxSubmitted},
		types.TxStatus{State: types.TxInvalid, Reason: "stale nonce"},
	)
	_, err := p.WaitForFinalized(context.Background())
	se, ok := sapi.IsSubmission(err)
	require.True(ok, "expected SubmissionError, got %v", err)
	require.Equal("stale nonce", se.Status.Reason)

	p, _ = submitWith(t, types.TxStatus{State: types.TxSubmitted})
	_, err = p.WaitForInBlock(context.Background())
	require.ErrorIs(err, extrinsic.ErrStreamEnded)
}

func TestProgressCloseStopsWatching(t *testing.T) {
	require := require.New(t)

	p, watchCtx := submitWith(t, types.TxStatus{State: types.TxSubmitted})
	require.NoError((*watchCtx).Err())

	p.Close()
	require.ErrorIs((*watchCtx).Err(), context.Canceled)
	_, err := p.Next(context.Background())
	require.ErrorIs(err, io.EOF)
}

func TestProgressHonoursContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := sapi.NewMockConnection(ctrl)
	conn.EXPECT().SubmitAndWatch(gomock.Any(), gomock.Any()).Return(make(chan types.TxStatus), nil)

	tx := extrinsic.New[types.AccountID32, types.MultiAddress, types.MultiSignature](newFakeChain(conn), remark{})
	p, err := tx.SignAndSubmit(context.Background(), signer.Dev("Alice"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Next(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDecodeEnvelopeRejectsMalformed(t *testing.T) {
	require := require.New(t)

	_, err := extrinsic.DecodeEnvelope(types.Extrinsic{0x08, 0x05, 0x00}, nil)
	require.ErrorIs(err, scale.ErrInvalidVariant)

	_, err = extrinsic.DecodeEnvelope(types.Extrinsic{0x0c, 0x04, 0x00, 0x00, 0xff}, nil)
	require.ErrorIs(err, scale.ErrTrailingBytes)

	_, err = extrinsic.DecodeEnvelope(types.Extrinsic{0x08, 0x04, 0x00}, nil)
	require.ErrorIs(err, scale.ErrUnexpectedEOF)

	_, err = extrinsic.DecodeEnvelope(types.Extrinsic{0x40, 0x04}, nil)
	require.ErrorIs(err, scale.ErrLengthExceedsInput)
}
