package devnode

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/blockberries/sapi/config"
	"github.com/blockberries/sapi/events"
	"github.com/blockberries/sapi/extrinsic"
	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/pallets/balances"
	"github.com/blockberries/sapi/pallets/preimage"
	"github.com/blockberries/sapi/pallets/staking"
	"github.com/blockberries/sapi/pallets/system"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/signer"
	"github.com/blockberries/sapi/types"
)

// Metadata returns the pallet table of the dev runtime.
func Metadata() *metadata.Metadata {
	m, err := metadata.New(
		metadata.ExtrinsicInfo{Version: extrinsic.Version, SignedExtensions: config.PlainTip{}.Identifiers()},
		system.Metadata(),
		balances.Metadata(),
		staking.Metadata(),
		preimage.Metadata(),
	)
	if err != nil {
		panic(err)
	}
	return m
}

type callDecoder func(callIndex uint8, d *scale.Decoder) (extrinsic.Call, error)

var callDecoders = map[uint8]callDecoder{
	system.PalletIndex:   system.DecodeCall,
	balances.PalletIndex: balances.DecodeCall,
	preimage.PalletIndex: preimage.DecodeCall,
}

// decodeCall decodes an encoded call, tags included. All of data must
// be consumed.
func decodeCall(data []byte) (extrinsic.Call, error) {
	d := scale.NewDecoder(data)
	pallet, err := d.DecodeU8()
	if err != nil {
		return nil, err
	}
	idx, err := d.DecodeU8()
	if err != nil {
		return nil, err
	}
	decode, ok := callDecoders[pallet]
	if !ok {
		return nil, &scale.DecodeError{Err: scale.ErrInvalidVariant, Detail: "unknown pallet"}
	}
	call, err := decode(idx, d)
	if err != nil {
		return nil, err
	}
	if d.Len() != 0 {
		return nil, &scale.DecodeError{Offset: d.Offset(), Err: scale.ErrTrailingBytes, Detail: "call"}
	}
	return call, nil
}

// runtime executes calls against an overlay.
type runtime struct {
	params chainParams
}

func accountOf(r reader, id types.AccountID32) (system.AccountInfo, error) {
	info, _, err := load(r, system.Account(id))
	return info, err
}

func moduleError(pallet, idx uint8) *system.DispatchError {
	return &system.DispatchError{Kind: system.ErrModule, Module: system.ModuleError{Index: pallet, Error: [4]byte{idx}}}
}

// dispatch applies call by sender to o. A non-nil dispatch error leaves
// o to be discarded by the caller; err is reserved for storage
// failures.
func (rt *runtime) dispatch(o *overlay, sender types.AccountID32, call extrinsic.Call) ([]events.Event, *system.DispatchError, error) {
	switch c := call.(type) {
	case *system.Remark:
		return nil, nil, nil
	case *system.RemarkWithEvent:
		return []events.Event{&system.Remarked{Sender: sender, Hash: types.Hash(hasher.Blake2b256(c.Remark))}}, nil, nil
	case *balances.TransferAllowDeath:
		return rt.transfer(o, sender, c.Dest, c.Value, false)
	case *balances.TransferKeepAlive:
		return rt.transfer(o, sender, c.Dest, c.Value, true)
	case *balances.ForceTransfer:
		return nil, &system.DispatchError{Kind: system.ErrBadOrigin}, nil
	case *preimage.NotePreimage:
		return rt.notePreimage(o, c.Bytes)
	default:
		return nil, &system.DispatchError{Kind: system.ErrUnavailable}, nil
	}
}

func (rt *runtime) transfer(o *overlay, from types.AccountID32, dest types.MultiAddress, value scale.U128, keepAlive bool) ([]events.Event, *system.DispatchError, error) {
	if dest.Kind != types.AddressID {
		return nil, &system.DispatchError{Kind: system.ErrCannotLookup}, nil
	}
	to := dest.ID

	src, err := accountOf(o, from)
	if err != nil {
		return nil, nil, err
	}
	remaining, ok := src.Data.Free.Sub(value)
	if !ok {
		return nil, moduleError(balances.PalletIndex, balances.ErrInsufficientBalance), nil
	}
	if keepAlive && remaining.Cmp(rt.params.ed) < 0 {
		return nil, moduleError(balances.PalletIndex, balances.ErrExpendability), nil
	}
	transferred := &balances.Transfer{From: from, To: to, Amount: value}
	if from == to {
		return []events.Event{transferred}, nil, nil
	}

	dst, err := accountOf(o, to)
	if err != nil {
		return nil, nil, err
	}
	created := dst.Providers == 0
	if created && value.Cmp(rt.params.ed) < 0 {
		return nil, moduleError(balances.PalletIndex, balances.ErrExistentialDeposit), nil
	}
	credited, ok := dst.Data.Free.Add(value)
	if !ok {
		return nil, &system.DispatchError{Kind: system.ErrArithmetic, Detail: system.ArithmeticOverflow}, nil
	}
	src.Data.Free = remaining
	dst.Data.Free = credited
	if created {
		dst.Providers = 1
	}
	o.put(system.Account(from).Key(), src)
	o.put(system.Account(to).Key(), dst)

	var evs []events.Event
	if created {
		evs = append(evs, &system.NewAccount{Account: to}, &balances.Endowed{Account: to, FreeBalance: value})
	}
	return append(evs, transferred), nil, nil
}

func (rt *runtime) notePreimage(o *overlay, data []byte) ([]events.Event, *system.DispatchError, error) {
	if len(data) > preimage.MaxSize {
		return nil, moduleError(preimage.PalletIndex, preimage.ErrTooBig), nil
	}
	hash := types.Hash(hasher.Blake2b256(data))
	addr := preimage.PreimageFor(hash)
	_, noted, err := o.get(addr.Key())
	if err != nil {
		return nil, nil, err
	}
	if noted {
		return nil, moduleError(preimage.PalletIndex, preimage.ErrAlreadyNoted), nil
	}
	o.put(addr.Key(), scale.Bytes(data))
	return []events.Event{&preimage.Noted{Hash: hash}}, nil, nil
}

// preDispatch bumps the nonce of who and withdraws fee from it. It
// reports false if the free balance cannot cover the fee.
func preDispatch(o *overlay, who types.AccountID32, fee scale.U128) (bool, error) {
	info, err := accountOf(o, who)
	if err != nil {
		return false, err
	}
	free, ok := info.Data.Free.Sub(fee)
	if !ok {
		return false, nil
	}
	info.Data.Free = free
	info.Nonce++
	o.put(system.Account(who).Key(), info)
	if fee.IsZero() {
		return true, nil
	}
	issuance, _, err := load(o, balances.TotalIssuance())
	if err != nil {
		return false, err
	}
	issuance, _ = issuance.Sub(fee)
	o.put(balances.TotalIssuance().Key(), issuance)
	return true, nil
}

// genesis writes the initial state described by cfg.
func genesis(o *overlay, cfg Config) error {
	var issuance scale.U128
	endowed := map[types.AccountID32]scale.U128{}
	for _, a := range cfg.Accounts {
		id, err := a.AccountID()
		if err != nil {
			return err
		}
		balance, err := parseAmount(a.Balance)
		if err != nil {
			return errors.Wrapf(err, "account %s", a.Name)
		}
		if _, dup := endowed[id]; dup {
			return errors.Errorf("account %s (%s) endowed twice", a.Name, a.Scheme)
		}
		endowed[id] = balance
		var ok bool
		if issuance, ok = issuance.Add(balance); !ok {
			return errors.New("total issuance overflows")
		}
		o.put(system.Account(id).Key(), system.AccountInfo{Providers: 1, Data: system.AccountData{Free: balance}})
	}
	o.put(balances.TotalIssuance().Key(), issuance)
	o.put(system.Number().Key(), scale.U32(0))

	const era = 1
	o.put(staking.CurrentEra().Key(), scale.U32(era))
	for _, v := range cfg.Validators {
		validator := signer.Dev(v).AccountID()
		own, ok := endowed[validator]
		if !ok {
			return errors.Errorf("validator %s is not endowed", v)
		}
		own = tenth(own)
		exposure := staking.Exposure{Total: own, Own: own}
		for _, n := range cfg.Nominators {
			nominator := signer.Dev(n).AccountID()
			stake, ok := endowed[nominator]
			if !ok {
				return errors.Errorf("nominator %s is not endowed", n)
			}
			stake = tenth(stake)
			exposure.Others = append(exposure.Others, staking.IndividualExposure{Who: nominator, Value: stake})
			if exposure.Total, ok = exposure.Total.Add(stake); !ok {
				return errors.Errorf("exposure of %s overflows", v)
			}
		}
		for e := uint32(0); e <= era; e++ {
			o.put(staking.ErasStakers(e, validator).Key(), exposure)
		}
	}
	return nil
}

var tenBig = big.NewInt(10)

func tenth(v scale.U128) scale.U128 {
	q := v.Big()
	q.Quo(q, tenBig)
	r, _ := scale.U128FromBig(q)
	return r
}
