package extrinsic

import (
	"context"

	"github.com/blockberries/sapi"
	"github.com/blockberries/sapi/config"
	"github.com/blockberries/sapi/types"
)

// Signer signs payloads for an account.
type Signer[A config.AccountID, S config.Signature] interface {
	AccountID() A
	Sign(payload []byte) (S, error)
}

// Chain is what a Submittable needs from the client that issued it.
type Chain[A config.AccountID, Ad config.Address, S config.Signature] interface {
	Config() config.Config[A, Ad, S]
	Params() config.ParamsSpec
	Runtime() types.RuntimeVersion
	GenesisHash() types.Hash
	Conn() sapi.Connection
	AccountNonce(ctx context.Context, account A) (uint64, error)
}

// Submittable is one extrinsic on its way to the node. It is owned by
// the caller until submission and is not safe for concurrent use.
type Submittable[A config.AccountID, Ad config.Address, S config.Signature] struct {
	chain Chain[A, Ad, S]
	call  Call
	data  []byte
	guard guard

	ext  types.Extrinsic
	hash types.Hash
}

// New wraps call for submission through chain. The call is encoded
// immediately.
func New[A config.AccountID, Ad config.Address, S config.Signature](chain Chain[A, Ad, S], call Call) *Submittable[A, Ad, S] {
	return &Submittable[A, Ad, S]{chain: chain, call: call, data: EncodeCall(call)}
}

// Call returns the wrapped call.
func (s *Submittable[A, Ad, S]) Call() Call { return s.call }

// CallData returns the encoded call.
func (s *Submittable[A, Ad, S]) CallData() []byte { return s.data }

// State returns the construction state.
func (s *Submittable[A, Ad, S]) State() State { return s.guard.load() }

// Encoded returns the signed envelope. It is nil before signing.
func (s *Submittable[A, Ad, S]) Encoded() types.Extrinsic { return s.ext }

// Hash returns the extrinsic hash. It is zero before signing.
func (s *Submittable[A, Ad, S]) Hash() types.Hash { return s.hash }

// Sign builds the signed envelope. The nonce is read from storage
// unless WithNonce is given, and a mortal era is anchored at the
// finalized head. Every failure is a *sapi.ConstructionError and leaves
// the extrinsic unsigned.
func (s *Submittable[A, Ad, S]) Sign(ctx context.Context, signer Signer[A, S], opts ...SignOption) error {
	s.guard.acquire("Sign", Unsigned, Signing)
	ext, err := s.sign(ctx, signer, opts)
	if err != nil {
		s.guard.fail(Unsigned)
		return err
	}
	s.ext = ext
	s.hash = s.chain.Config().Hash(ext)
	s.guard.complete(Signed)
	return nil
}

func (s *Submittable[A, Ad, S]) sign(ctx context.Context, signer Signer[A, S], opts []SignOption) (types.Extrinsic, error) {
	var o signOptions
	for _, opt := range opts {
		opt(&o)
	}
	account := signer.AccountID()
	rt := s.chain.Runtime()
	in := config.ParamsInput{
		SpecVersion: rt.SpecVersion,
		TxVersion:   rt.TransactionVersion,
		GenesisHash: s.chain.GenesisHash(),
		Era:         types.ImmortalEra,
		Tip:         o.tip,
		AssetID:     o.assetID,
	}

	if o.nonce != nil {
		in.Nonce = *o.nonce
	} else {
		nonce, err := s.chain.AccountNonce(ctx, account)
		if err != nil {
			return nil, sapi.NewConstructionError("sign", "cannot read account nonce", err)
		}
		in.Nonce = nonce
	}

	if o.period > 0 {
		reader := s.chain.Conn().AsChainReader()
		if reader == nil {
			return nil, sapi.NewConstructionError("sign", "mortal era needs a node with the ChainReader capability", nil)
		}
		head, err := reader.FinalizedHead(ctx)
		if err != nil {
			return nil, sapi.NewConstructionError("sign", "cannot read finalized head", err)
		}
		header, err := reader.Header(ctx, head)
		if err != nil {
			return nil, sapi.NewConstructionError("sign", "cannot read finalized header", err)
		}
		in.Era = types.NewMortalEra(o.period, header.Number)
		in.Checkpoint = head
	}

	params, err := s.chain.Params().Build(in)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(SigningPayload(s.data, params))
	if err != nil {
		return nil, sapi.NewConstructionError("sign", "signer failed", err)
	}
	address := s.chain.Config().ToAddress(account)
	return EncodeSigned(address, sig, params, s.data), nil
}

// Unsigned builds an unsigned envelope instead of signing.
func (s *Submittable[A, Ad, S]) Unsigned() {
	s.guard.acquire("Unsigned", Unsigned, Signing)
	s.ext = EncodeUnsigned(s.data)
	s.hash = s.chain.Config().Hash(s.ext)
	s.guard.complete(Signed)
}

// Submit hands the envelope to the node and returns its status stream.
// It does not wait for inclusion. Cancelling ctx, or closing the
// Progress, stops observation only.
func (s *Submittable[A, Ad, S]) Submit(ctx context.Context) (*Progress, error) {
	s.guard.acquire("Submit", Signed, Submitting)
	watchCtx, cancel := context.WithCancel(ctx)
	ch, err := s.chain.Conn().SubmitAndWatch(watchCtx, s.ext)
	if err != nil {
		cancel()
		s.guard.fail(Signed)
		return nil, err
	}
	s.guard.complete(Submitted)
	return newProgress(s.hash, ch, cancel), nil
}

// SignAndSubmit signs and then submits.
func (s *Submittable[A, Ad, S]) SignAndSubmit(ctx context.Context, signer Signer[A, S], opts ...SignOption) (*Progress, error) {
	if err := s.Sign(ctx, signer, opts...); err != nil {
		return nil, err
	}
	return s.Submit(ctx)
}
