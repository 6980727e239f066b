// Package system is the typed façade of the System pallet: remarks,
// extrinsic outcome events, accounts and block bookkeeping.
package system

import (
	"github.com/blockberries/sapi/events"
	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/scale"
)

const (
	PalletName        = "System"
	PalletIndex uint8 = 0
)

// Metadata describes the pallet as the runtime declares it.
func Metadata() metadata.Pallet {
	return metadata.Pallet{
		Name:  PalletName,
		Index: PalletIndex,
		Calls: []metadata.Variant{
			{Name: "remark", Index: remarkIndex, Fields: []metadata.Field{{Name: "remark", TypeName: "Vec<u8>"}}, Docs: "Make some on-chain remark."},
			{Name: "remark_with_event", Index: remarkWithEventIndex, Fields: []metadata.Field{{Name: "remark", TypeName: "Vec<u8>"}}, Docs: "Make some on-chain remark and emit an event."},
		},
		Events: []metadata.Variant{
			{Name: "ExtrinsicSuccess", Index: extrinsicSuccessIndex, Fields: []metadata.Field{{Name: "dispatch_info", TypeName: "DispatchInfo"}}},
			{Name: "ExtrinsicFailed", Index: extrinsicFailedIndex, Fields: []metadata.Field{{Name: "dispatch_error", TypeName: "DispatchError"}, {Name: "dispatch_info", TypeName: "DispatchInfo"}}},
			{Name: "NewAccount", Index: newAccountIndex, Fields: []metadata.Field{{Name: "account", TypeName: "AccountId"}}},
			{Name: "Remarked", Index: remarkedIndex, Fields: []metadata.Field{{Name: "sender", TypeName: "AccountId"}, {Name: "hash", TypeName: "Hash"}}},
		},
		Storage: []metadata.StorageEntry{
			{
				Name: "Account", Modifier: metadata.Default,
				Hashers: []hasher.StorageHasher{hasher.Blake2_128Concat}, KeyTypes: []string{"AccountId"},
				ValueType: "AccountInfo", Default: scale.Encode(AccountInfo{}),
				Docs: "The full account information for a particular account ID.",
			},
			{Name: "Number", Modifier: metadata.Default, ValueType: "BlockNumber", Default: scale.Encode(scale.U32(0)), Docs: "The current block number being processed."},
			{Name: "Events", Modifier: metadata.Default, ValueType: "Vec<EventRecord>", Default: []byte{0}, Docs: "Events deposited for the current block."},
			{
				Name: "BlockHash", Modifier: metadata.Default,
				Hashers: []hasher.StorageHasher{hasher.Twox64Concat}, KeyTypes: []string{"BlockNumber"},
				ValueType: "Hash", Default: make([]byte, 32),
				Docs: "Map of block numbers to block hashes.",
			},
		},
	}
}

// RegisterEvents registers the pallet's events with r.
func RegisterEvents(r *events.Registry, meta *metadata.Metadata) error {
	for _, f := range []events.Factory{
		func() events.Event { return new(ExtrinsicSuccess) },
		func() events.Event { return new(ExtrinsicFailed) },
		func() events.Event { return new(NewAccount) },
		func() events.Event { return new(Remarked) },
	} {
		if err := r.Register(meta, f); err != nil {
			return err
		}
	}
	return nil
}
