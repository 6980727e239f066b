package config

import (
	"slices"

	"github.com/blockberries/sapi"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/types"
)

// Signed extension identifiers as they appear in metadata.
const (
	CheckNonZeroSender       = "CheckNonZeroSender"
	CheckSpecVersion         = "CheckSpecVersion"
	CheckTxVersion           = "CheckTxVersion"
	CheckGenesis             = "CheckGenesis"
	CheckMortality           = "CheckMortality"
	CheckNonce               = "CheckNonce"
	CheckWeight              = "CheckWeight"
	ChargeTransactionPayment = "ChargeTransactionPayment"
	ChargeAssetTxPayment     = "ChargeAssetTxPayment"
)

// ExtrinsicParams is the chain-specific data bound into a signature.
// Extra is carried on the wire; Additional is only signed.
type ExtrinsicParams interface {
	EncodeExtra(e *scale.Encoder)
	EncodeAdditional(e *scale.Encoder)
}

// ParamsInput is everything a ParamsSpec may draw on to build params.
type ParamsInput struct {
	Nonce       uint64
	SpecVersion uint32
	TxVersion   uint32
	GenesisHash types.Hash
	// Checkpoint is the block a mortal era is anchored to. It is
	// ignored for immortal eras.
	Checkpoint types.Hash
	Era        types.Era
	Tip        scale.U128
	AssetID    *uint32
}

// ParamsSpec describes a signed-extension set.
type ParamsSpec interface {
	// Identifiers lists the extensions in the order the runtime declares
	// them.
	Identifiers() []string
	Build(in ParamsInput) (ExtrinsicParams, error)
}

// PlainTip is the extension set of runtimes that charge fees with
// ChargeTransactionPayment.
type PlainTip struct{}

func (PlainTip) Identifiers() []string {
	return []string{
		CheckNonZeroSender, CheckSpecVersion, CheckTxVersion, CheckGenesis,
		CheckMortality, CheckNonce, CheckWeight, ChargeTransactionPayment,
	}
}

func (PlainTip) Build(in ParamsInput) (ExtrinsicParams, error) {
	if in.AssetID != nil {
		return nil, sapi.NewConstructionError("params", ChargeTransactionPayment+" cannot pay in an asset", nil)
	}
	base, err := buildBase(in)
	if err != nil {
		return nil, err
	}
	return &PlainTipParams{base}, nil
}

// AssetTip is the extension set of runtimes that accept tips in an
// asset through ChargeAssetTxPayment.
type AssetTip struct{}

func (AssetTip) Identifiers() []string {
	return []string{
		CheckNonZeroSender, CheckSpecVersion, CheckTxVersion, CheckGenesis,
		CheckMortality, CheckNonce, CheckWeight, ChargeAssetTxPayment,
	}
}

func (AssetTip) Build(in ParamsInput) (ExtrinsicParams, error) {
	base, err := buildBase(in)
	if err != nil {
		return nil, err
	}
	p := &AssetTipParams{BaseParams: base}
	if in.AssetID != nil {
		id := *in.AssetID
		p.AssetID = &id
	}
	return p, nil
}

func buildBase(in ParamsInput) (BaseParams, error) {
	if in.GenesisHash.IsZero() {
		return BaseParams{}, sapi.NewConstructionError("params", "genesis hash not set", nil)
	}
	checkpoint := in.GenesisHash
	if in.Era.Mortal {
		if in.Checkpoint.IsZero() {
			return BaseParams{}, sapi.NewConstructionError("params", "mortal era without checkpoint block", nil)
		}
		checkpoint = in.Checkpoint
	}
	return BaseParams{
		Era:         in.Era,
		Nonce:       in.Nonce,
		Tip:         in.Tip,
		SpecVersion: in.SpecVersion,
		TxVersion:   in.TxVersion,
		Genesis:     in.GenesisHash,
		Checkpoint:  checkpoint,
	}, nil
}

// BaseParams holds the extension values shared by the tip variants.
type BaseParams struct {
	Era   types.Era
	Nonce uint64
	Tip   scale.U128

	SpecVersion uint32
	TxVersion   uint32
	Genesis     types.Hash
	Checkpoint  types.Hash
}

func (p *BaseParams) encodeExtra(e *scale.Encoder) {
	p.Era.EncodeTo(e)
	e.EncodeCompact(p.Nonce)
	e.EncodeCompactU128(p.Tip)
}

func (p *BaseParams) decodeExtra(d *scale.Decoder) (err error) {
	if err = p.Era.DecodeFrom(d); err != nil {
		return err
	}
	if p.Nonce, err = d.DecodeCompact(); err != nil {
		return err
	}
	p.Tip, err = d.DecodeCompactU128()
	return err
}

// EncodeAdditional writes spec version, transaction version, genesis
// hash and checkpoint hash.
func (p *BaseParams) EncodeAdditional(e *scale.Encoder) {
	e.EncodeU32(p.SpecVersion)
	e.EncodeU32(p.TxVersion)
	p.Genesis.EncodeTo(e)
	p.Checkpoint.EncodeTo(e)
}

// PlainTipParams encode era, nonce and tip as extra.
type PlainTipParams struct {
	BaseParams
}

func (p *PlainTipParams) EncodeExtra(e *scale.Encoder) { p.encodeExtra(e) }

// DecodeExtra reads the extra part back from an envelope. The
// additional fields stay zero.
func (p *PlainTipParams) DecodeExtra(d *scale.Decoder) error { return p.decodeExtra(d) }

// AssetTipParams append an optional asset id to the plain tip extra.
type AssetTipParams struct {
	BaseParams
	AssetID *uint32
}

func (p *AssetTipParams) EncodeExtra(e *scale.Encoder) {
	p.encodeExtra(e)
	if p.AssetID == nil {
		e.PushByte(0)
		return
	}
	e.PushByte(1)
	e.EncodeU32(*p.AssetID)
}

func (p *AssetTipParams) DecodeExtra(d *scale.Decoder) error {
	if err := p.decodeExtra(d); err != nil {
		return err
	}
	id, err := scale.DecodeOption(d, (*scale.Decoder).DecodeU32)
	if err != nil {
		return err
	}
	p.AssetID = id
	return nil
}

// MissingExtensions returns the identifiers of spec that the runtime
// does not declare.
func MissingExtensions(spec ParamsSpec, declared []string) []string {
	var missing []string
	for _, id := range spec.Identifiers() {
		if !slices.Contains(declared, id) {
			missing = append(missing, id)
		}
	}
	return missing
}
