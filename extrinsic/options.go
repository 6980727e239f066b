package extrinsic

import "github.com/blockberries/sapi/scale"

type signOptions struct {
	nonce   *uint64
	tip     scale.U128
	period  uint64
	assetID *uint32
}

// SignOption adjusts how a Submittable is signed.
type SignOption func(*signOptions)

// WithNonce uses n instead of the account nonce read from storage.
func WithNonce(n uint64) SignOption {
	return func(o *signOptions) { o.nonce = &n }
}

// WithTip adds a tip for the block author.
func WithTip(tip scale.U128) SignOption {
	return func(o *signOptions) { o.tip = tip }
}

// WithMortality makes the extrinsic valid for about period blocks after
// the current finalized block. Zero means immortal.
func WithMortality(period uint64) SignOption {
	return func(o *signOptions) { o.period = period }
}

// WithAssetTip pays the tip in the given asset. The chain's extension
// set must support asset payment.
func WithAssetTip(asset uint32) SignOption {
	return func(o *signOptions) { o.assetID = &asset }
}
