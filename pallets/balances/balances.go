// Package balances is the typed façade of the Balances pallet.
package balances

import (
	"github.com/blockberries/sapi/events"
	"github.com/blockberries/sapi/extrinsic"
	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/pallets/system"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/storage"
	"github.com/blockberries/sapi/types"
)

const (
	PalletName        = "Balances"
	PalletIndex uint8 = 5
)

const (
	transferAllowDeathIndex uint8 = 0
	forceTransferIndex      uint8 = 2
	transferKeepAliveIndex  uint8 = 3

	endowedIndex  uint8 = 0
	transferIndex uint8 = 2
	withdrawIndex uint8 = 8
)

// Module error indices, as carried in system.ModuleError.
const (
	ErrInsufficientBalance uint8 = 2
	ErrExistentialDeposit  uint8 = 3
	ErrExpendability       uint8 = 4
)

// ModuleError returns the dispatch error the pallet raises for idx.
func ModuleError(idx uint8) system.DispatchError {
	return system.DispatchError{Kind: system.ErrModule, Module: system.ModuleError{Index: PalletIndex, Error: [4]byte{idx}}}
}

var transferFields = []metadata.Field{{Name: "dest", TypeName: "MultiAddress"}, {Name: "value", TypeName: "Compact<Balance>"}}

// Metadata describes the pallet as the runtime declares it.
func Metadata() metadata.Pallet {
	return metadata.Pallet{
		Name:  PalletName,
		Index: PalletIndex,
		Calls: []metadata.Variant{
			{Name: "transfer_allow_death", Index: transferAllowDeathIndex, Fields: transferFields, Docs: "Transfer some liquid free balance to another account."},
			{Name: "force_transfer", Index: forceTransferIndex, Fields: append([]metadata.Field{{Name: "source", TypeName: "MultiAddress"}}, transferFields...)},
			{Name: "transfer_keep_alive", Index: transferKeepAliveIndex, Fields: transferFields, Docs: "Same as transfer_allow_death, but the sender is never reaped."},
		},
		Events: []metadata.Variant{
			{Name: "Endowed", Index: endowedIndex, Fields: []metadata.Field{{Name: "account", TypeName: "AccountId"}, {Name: "free_balance", TypeName: "Balance"}}},
			{Name: "Transfer", Index: transferIndex, Fields: []metadata.Field{{Name: "from", TypeName: "AccountId"}, {Name: "to", TypeName: "AccountId"}, {Name: "amount", TypeName: "Balance"}}},
			{Name: "Withdraw", Index: withdrawIndex, Fields: []metadata.Field{{Name: "who", TypeName: "AccountId"}, {Name: "amount", TypeName: "Balance"}}},
		},
		Storage: []metadata.StorageEntry{
			{Name: "TotalIssuance", Modifier: metadata.Default, ValueType: "Balance", Default: scale.Encode(scale.U128{}), Docs: "The total units issued in the system."},
		},
	}
}

// RegisterEvents registers the pallet's events with r.
func RegisterEvents(r *events.Registry, meta *metadata.Metadata) error {
	for _, f := range []events.Factory{
		func() events.Event { return new(Endowed) },
		func() events.Event { return new(Transfer) },
		func() events.Event { return new(Withdraw) },
	} {
		if err := r.Register(meta, f); err != nil {
			return err
		}
	}
	return nil
}

// TotalIssuance addresses the total units issued.
func TotalIssuance() storage.Address[scale.U128] {
	return storage.Plain[scale.U128](PalletName, "TotalIssuance")
}

func callInfo(name string, idx uint8) types.CallInfo {
	return types.CallInfo{Pallet: PalletName, Name: name, PalletIndex: PalletIndex, CallIndex: idx}
}

type transferArgs struct {
	Dest  types.MultiAddress
	Value scale.U128
}

func (a transferArgs) encode(e *scale.Encoder) {
	a.Dest.EncodeTo(e)
	e.EncodeCompactU128(a.Value)
}

func (a *transferArgs) decode(d *scale.Decoder) (err error) {
	if err = a.Dest.DecodeFrom(d); err != nil {
		return err
	}
	a.Value, err = d.DecodeCompactU128()
	return err
}

// TransferAllowDeath transfers Value to Dest, reaping the sender if its
// balance falls below the existential deposit.
type TransferAllowDeath struct {
	Dest  types.MultiAddress
	Value scale.U128
}

func (TransferAllowDeath) Info() types.CallInfo {
	return callInfo("transfer_allow_death", transferAllowDeathIndex)
}

func (c TransferAllowDeath) EncodeArgs(e *scale.Encoder) { transferArgs(c).encode(e) }

func (c *TransferAllowDeath) DecodeArgs(d *scale.Decoder) error {
	return (*transferArgs)(c).decode(d)
}

// TransferKeepAlive transfers Value to Dest and fails rather than reap
// the sender.
type TransferKeepAlive struct {
	Dest  types.MultiAddress
	Value scale.U128
}

func (TransferKeepAlive) Info() types.CallInfo {
	return callInfo("transfer_keep_alive", transferKeepAliveIndex)
}

func (c TransferKeepAlive) EncodeArgs(e *scale.Encoder) { transferArgs(c).encode(e) }

func (c *TransferKeepAlive) DecodeArgs(d *scale.Decoder) error {
	return (*transferArgs)(c).decode(d)
}

// ForceTransfer moves Value from Source to Dest. It requires root.
type ForceTransfer struct {
	Source types.MultiAddress
	Dest   types.MultiAddress
	Value  scale.U128
}

func (ForceTransfer) Info() types.CallInfo { return callInfo("force_transfer", forceTransferIndex) }

func (c ForceTransfer) EncodeArgs(e *scale.Encoder) {
	c.Source.EncodeTo(e)
	transferArgs{Dest: c.Dest, Value: c.Value}.encode(e)
}

func (c *ForceTransfer) DecodeArgs(d *scale.Decoder) error {
	if err := c.Source.DecodeFrom(d); err != nil {
		return err
	}
	var a transferArgs
	if err := a.decode(d); err != nil {
		return err
	}
	c.Dest, c.Value = a.Dest, a.Value
	return nil
}

// DecodeCall decodes the arguments of the call with the given index.
func DecodeCall(callIndex uint8, d *scale.Decoder) (extrinsic.Call, error) {
	switch callIndex {
	case transferAllowDeathIndex:
		c := new(TransferAllowDeath)
		return c, c.DecodeArgs(d)
	case forceTransferIndex:
		c := new(ForceTransfer)
		return c, c.DecodeArgs(d)
	case transferKeepAliveIndex:
		c := new(TransferKeepAlive)
		return c, c.DecodeArgs(d)
	default:
		return nil, &scale.DecodeError{Err: scale.ErrInvalidVariant, Detail: "unknown Balances call"}
	}
}

func eventInfo(name string, idx uint8) types.EventInfo {
	return types.EventInfo{Pallet: PalletName, Name: name, PalletIndex: PalletIndex, EventIndex: idx}
}

// Endowed: an account was created with some free balance.
type Endowed struct {
	Account     types.AccountID32
	FreeBalance scale.U128
}

func (*Endowed) Info() types.EventInfo { return eventInfo("Endowed", endowedIndex) }

func (ev *Endowed) EncodeTo(e *scale.Encoder) {
	ev.Account.EncodeTo(e)
	ev.FreeBalance.EncodeTo(e)
}

func (ev *Endowed) DecodeFrom(d *scale.Decoder) error {
	if err := ev.Account.DecodeFrom(d); err != nil {
		return err
	}
	return ev.FreeBalance.DecodeFrom(d)
}

// Transfer: a transfer succeeded.
type Transfer struct {
	From   types.AccountID32
	To     types.AccountID32
	Amount scale.U128
}

func (*Transfer) Info() types.EventInfo { return eventInfo("Transfer", transferIndex) }

func (ev *Transfer) EncodeTo(e *scale.Encoder) {
	ev.From.EncodeTo(e)
	ev.To.EncodeTo(e)
	ev.Amount.EncodeTo(e)
}

func (ev *Transfer) DecodeFrom(d *scale.Decoder) error {
	if err := ev.From.DecodeFrom(d); err != nil {
		return err
	}
	if err := ev.To.DecodeFrom(d); err != nil {
		return err
	}
	return ev.Amount.DecodeFrom(d)
}

// Withdraw: some amount was withdrawn from the account, e.g. for fees.
type Withdraw struct {
	Who    types.AccountID32
	Amount scale.U128
}

func (*Withdraw) Info() types.EventInfo { return eventInfo("Withdraw", withdrawIndex) }

func (ev *Withdraw) EncodeTo(e *scale.Encoder) {
	ev.Who.EncodeTo(e)
	ev.Amount.EncodeTo(e)
}

func (ev *Withdraw) DecodeFrom(d *scale.Decoder) error {
	if err := ev.Who.DecodeFrom(d); err != nil {
		return err
	}
	return ev.Amount.DecodeFrom(d)
}
