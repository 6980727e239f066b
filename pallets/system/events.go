package system

import (
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/types"
)

const (
	extrinsicSuccessIndex uint8 = 0
	extrinsicFailedIndex  uint8 = 1
	newAccountIndex       uint8 = 3
	remarkedIndex         uint8 = 5
)

func eventInfo(name string, idx uint8) types.EventInfo {
	return types.EventInfo{Pallet: PalletName, Name: name, PalletIndex: PalletIndex, EventIndex: idx}
}

// ExtrinsicSuccess: an extrinsic completed successfully.
type ExtrinsicSuccess struct {
	DispatchInfo DispatchInfo
}

func (*ExtrinsicSuccess) Info() types.EventInfo {
	return eventInfo("ExtrinsicSuccess", extrinsicSuccessIndex)
}
func (ev *ExtrinsicSuccess) EncodeTo(e *scale.Encoder)         { ev.DispatchInfo.EncodeTo(e) }
func (ev *ExtrinsicSuccess) DecodeFrom(d *scale.Decoder) error { return ev.DispatchInfo.DecodeFrom(d) }

// ExtrinsicFailed: an extrinsic failed. It was still included and its
// fee was paid.
type ExtrinsicFailed struct {
	DispatchError DispatchError
	DispatchInfo  DispatchInfo
}

func (*ExtrinsicFailed) Info() types.EventInfo {
	return eventInfo("ExtrinsicFailed", extrinsicFailedIndex)
}

func (ev *ExtrinsicFailed) EncodeTo(e *scale.Encoder) {
	ev.DispatchError.EncodeTo(e)
	ev.DispatchInfo.EncodeTo(e)
}

func (ev *ExtrinsicFailed) DecodeFrom(d *scale.Decoder) error {
	if err := ev.DispatchError.DecodeFrom(d); err != nil {
		return err
	}
	return ev.DispatchInfo.DecodeFrom(d)
}

// NewAccount: a new account was created.
type NewAccount struct {
	Account types.AccountID32
}

func (*NewAccount) Info() types.EventInfo                { return eventInfo("NewAccount", newAccountIndex) }
func (ev *NewAccount) EncodeTo(e *scale.Encoder)         { ev.Account.EncodeTo(e) }
func (ev *NewAccount) DecodeFrom(d *scale.Decoder) error { return ev.Account.DecodeFrom(d) }

// Remarked: on-chain remark happened.
type Remarked struct {
	Sender types.AccountID32
	Hash   types.Hash
}

func (*Remarked) Info() types.EventInfo { return eventInfo("Remarked", remarkedIndex) }

func (ev *Remarked) EncodeTo(e *scale.Encoder) {
	ev.Sender.EncodeTo(e)
	ev.Hash.EncodeTo(e)
}

func (ev *Remarked) DecodeFrom(d *scale.Decoder) error {
	if err := ev.Sender.DecodeFrom(d); err != nil {
		return err
	}
	return ev.Hash.DecodeFrom(d)
}
