// Package staking is the typed façade of the storage of the Staking
// pallet that a client reads: the current era and the per-era exposure
// of validators.
package staking

import (
	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/storage"
	"github.com/blockberries/sapi/types"
)

const (
	PalletName        = "Staking"
	PalletIndex uint8 = 7
)

var (
	stakersHashers  = []hasher.StorageHasher{hasher.Twox64Concat, hasher.Twox64Concat}
	stakersSkippers = []scale.Skipper{scale.SkipFixed(4), scale.SkipFixed(32)}
)

// Metadata describes the pallet as the runtime declares it.
func Metadata() metadata.Pallet {
	return metadata.Pallet{
		Name:  PalletName,
		Index: PalletIndex,
		Storage: []metadata.StorageEntry{
			{Name: "CurrentEra", Modifier: metadata.Optional, ValueType: "EraIndex", Docs: "The current era index."},
			{
				Name: "ErasStakers", Modifier: metadata.Default,
				Hashers: stakersHashers, KeyTypes: []string{"EraIndex", "AccountId"},
				ValueType: "Exposure", Default: scale.Encode(Exposure{}),
				Docs: "Exposure of validator at era.",
			},
		},
	}
}

// CurrentEra addresses the current era index.
func CurrentEra() storage.Address[scale.U32] {
	return storage.Plain[scale.U32](PalletName, "CurrentEra")
}

// ErasStakers addresses the exposure of validator in era.
func ErasStakers(era uint32, validator types.AccountID32) storage.Address[Exposure] {
	return storage.Map[Exposure](PalletName, "ErasStakers", stakersHashers, stakersSkippers, scale.U32(era), validator)
}

// ErasStakersOf addresses every exposure of era.
func ErasStakersOf(era uint32) storage.Address[Exposure] {
	return storage.Map[Exposure](PalletName, "ErasStakers", stakersHashers, stakersSkippers, scale.U32(era))
}

// AllErasStakers addresses the whole double map.
func AllErasStakers() storage.Address[Exposure] {
	return storage.Map[Exposure](PalletName, "ErasStakers", stakersHashers, stakersSkippers)
}

// IndividualExposure is the stake of one nominator behind a validator.
type IndividualExposure struct {
	Who   types.AccountID32
	Value scale.U128
}

func (x IndividualExposure) EncodeTo(e *scale.Encoder) {
	x.Who.EncodeTo(e)
	e.EncodeCompactU128(x.Value)
}

func (x *IndividualExposure) DecodeFrom(d *scale.Decoder) (err error) {
	if err = x.Who.DecodeFrom(d); err != nil {
		return err
	}
	x.Value, err = d.DecodeCompactU128()
	return err
}

// Exposure is the stake backing a validator in an era.
type Exposure struct {
	Total  scale.U128
	Own    scale.U128
	Others []IndividualExposure
}

func (x Exposure) EncodeTo(e *scale.Encoder) {
	e.EncodeCompactU128(x.Total)
	e.EncodeCompactU128(x.Own)
	scale.EncodeSlice(e, x.Others)
}

func (x *Exposure) DecodeFrom(d *scale.Decoder) (err error) {
	if x.Total, err = d.DecodeCompactU128(); err != nil {
		return err
	}
	if x.Own, err = d.DecodeCompactU128(); err != nil {
		return err
	}
	x.Others, err = scale.DecodeSlice(d, scale.DecodeValue[IndividualExposure])
	return err
}
