package system

import (
	"fmt"

	"github.com/blockberries/sapi/scale"
)

// AccountData is the balance part of AccountInfo.
type AccountData struct {
	Free     scale.U128
	Reserved scale.U128
	Frozen   scale.U128
	Flags    scale.U128
}

func (a AccountData) EncodeTo(e *scale.Encoder) {
	a.Free.EncodeTo(e)
	a.Reserved.EncodeTo(e)
	a.Frozen.EncodeTo(e)
	a.Flags.EncodeTo(e)
}

func (a *AccountData) DecodeFrom(d *scale.Decoder) error {
	for _, f := range []*scale.U128{&a.Free, &a.Reserved, &a.Frozen, &a.Flags} {
		if err := f.DecodeFrom(d); err != nil {
			return err
		}
	}
	return nil
}

// AccountInfo is the value of System.Account.
type AccountInfo struct {
	Nonce       uint32
	Consumers   uint32
	Providers   uint32
	Sufficients uint32
	Data        AccountData
}

func (a AccountInfo) EncodeTo(e *scale.Encoder) {
	e.EncodeU32(a.Nonce)
	e.EncodeU32(a.Consumers)
	e.EncodeU32(a.Providers)
	e.EncodeU32(a.Sufficients)
	a.Data.EncodeTo(e)
}

func (a *AccountInfo) DecodeFrom(d *scale.Decoder) (err error) {
	for _, f := range []*uint32{&a.Nonce, &a.Consumers, &a.Providers, &a.Sufficients} {
		if *f, err = d.DecodeU32(); err != nil {
			return err
		}
	}
	return a.Data.DecodeFrom(d)
}

// Weight is the two-dimensional execution weight of a dispatch.
type Weight struct {
	RefTime   uint64
	ProofSize uint64
}

func (w Weight) EncodeTo(e *scale.Encoder) {
	e.EncodeCompact(w.RefTime)
	e.EncodeCompact(w.ProofSize)
}

func (w *Weight) DecodeFrom(d *scale.Decoder) (err error) {
	if w.RefTime, err = d.DecodeCompact(); err != nil {
		return err
	}
	w.ProofSize, err = d.DecodeCompact()
	return err
}

// DispatchClass is the weight class of a dispatch.
type DispatchClass uint8

const (
	ClassNormal DispatchClass = iota
	ClassOperational
	ClassMandatory
)

// DispatchInfo describes a dispatched call.
type DispatchInfo struct {
	Weight  Weight
	Class   DispatchClass
	PaysFee bool
}

func (i DispatchInfo) EncodeTo(e *scale.Encoder) {
	i.Weight.EncodeTo(e)
	e.EncodeVariant(uint8(i.Class))
	// Pays::Yes is variant 0.
	if i.PaysFee {
		e.EncodeVariant(0)
	} else {
		e.EncodeVariant(1)
	}
}

func (i *DispatchInfo) DecodeFrom(d *scale.Decoder) error {
	if err := i.Weight.DecodeFrom(d); err != nil {
		return err
	}
	class, err := d.DecodeVariant(3)
	if err != nil {
		return err
	}
	pays, err := d.DecodeVariant(2)
	if err != nil {
		return err
	}
	i.Class, i.PaysFee = DispatchClass(class), pays == 0
	return nil
}

// DispatchErrorKind is the discriminant of DispatchError.
type DispatchErrorKind uint8

const (
	ErrOther DispatchErrorKind = iota
	ErrCannotLookup
	ErrBadOrigin
	ErrModule
	ErrConsumerRemaining
	ErrNoProviders
	ErrTooManyConsumers
	ErrToken
	ErrArithmetic
	ErrTransactional
	ErrExhausted
	ErrCorruption
	ErrUnavailable
	ErrRootNotAllowed
	numDispatchErrors
)

// Token error variants.
const (
	TokenFundsUnavailable uint8 = iota
	TokenOnlyProvider
	TokenBelowMinimum
	TokenCannotCreate
	TokenUnknownAsset
	TokenFrozen
	TokenUnsupported
	TokenCannotCreateHold
	TokenNotExpendable
	TokenBlocked
	numTokenErrors
)

// Arithmetic error variants.
const (
	ArithmeticUnderflow uint8 = iota
	ArithmeticOverflow
	ArithmeticDivisionByZero
	numArithmeticErrors
)

// ModuleError is an error raised by a pallet.
type ModuleError struct {
	Index uint8
	Error [4]byte
}

// DispatchError is why a dispatched call failed.
type DispatchError struct {
	Kind   DispatchErrorKind
	Module ModuleError
	// Detail is the inner variant of Token, Arithmetic and
	// Transactional errors.
	Detail uint8
}

func (e DispatchError) String() string {
	switch e.Kind {
	case ErrModule:
		return fmt.Sprintf("Module(%d, %x)", e.Module.Index, e.Module.Error)
	case ErrToken:
		return fmt.Sprintf("Token(%d)", e.Detail)
	case ErrArithmetic:
		return fmt.Sprintf("Arithmetic(%d)", e.Detail)
	default:
		return fmt.Sprintf("DispatchError(%d)", uint8(e.Kind))
	}
}

func (e DispatchError) EncodeTo(enc *scale.Encoder) {
	enc.EncodeVariant(uint8(e.Kind))
	switch e.Kind {
	case ErrModule:
		enc.EncodeU8(e.Module.Index)
		enc.Write(e.Module.Error[:])
	case ErrToken, ErrArithmetic, ErrTransactional:
		enc.EncodeVariant(e.Detail)
	}
}

func (e *DispatchError) DecodeFrom(d *scale.Decoder) error {
	kind, err := d.DecodeVariant(uint8(numDispatchErrors))
	if err != nil {
		return err
	}
	*e = DispatchError{Kind: DispatchErrorKind(kind)}
	switch e.Kind {
	case ErrModule:
		if e.Module.Index, err = d.DecodeU8(); err != nil {
			return err
		}
		return d.ReadInto(e.Module.Error[:])
	case ErrToken:
		e.Detail, err = d.DecodeVariant(numTokenErrors)
	case ErrArithmetic:
		e.Detail, err = d.DecodeVariant(numArithmeticErrors)
	case ErrTransactional:
		e.Detail, err = d.DecodeVariant(2)
	}
	return err
}
