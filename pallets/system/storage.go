package system

import (
	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/storage"
	"github.com/blockberries/sapi/types"
)

var (
	accountHashers   = []hasher.StorageHasher{hasher.Blake2_128Concat}
	accountSkippers  = []scale.Skipper{scale.SkipFixed(32)}
	blockHashHashers = []hasher.StorageHasher{hasher.Twox64Concat}
	blockHashSkipper = []scale.Skipper{scale.SkipFixed(4)}
)

// Account addresses the account information of id.
func Account(id types.AccountID32) storage.Address[AccountInfo] {
	return storage.Map[AccountInfo](PalletName, "Account", accountHashers, accountSkippers, id)
}

// Accounts addresses the whole account map for iteration.
func Accounts() storage.Address[AccountInfo] {
	return storage.Map[AccountInfo](PalletName, "Account", accountHashers, accountSkippers)
}

// Number addresses the current block number.
func Number() storage.Address[scale.U32] {
	return storage.Plain[scale.U32](PalletName, "Number")
}

// Events addresses the encoded event records of the current block.
// Decode them with an events.Registry.
func Events() storage.Address[EventRecords] {
	return storage.Plain[EventRecords](PalletName, "Events")
}

// BlockHash addresses the hash of block n.
func BlockHash(n uint32) storage.Address[types.Hash] {
	return storage.Map[types.Hash](PalletName, "BlockHash", blockHashHashers, blockHashSkipper, scale.U32(n))
}

// BlockHashes addresses the whole block hash map for iteration.
func BlockHashes() storage.Address[types.Hash] {
	return storage.Map[types.Hash](PalletName, "BlockHash", blockHashHashers, blockHashSkipper)
}

// EventRecords is an encoded Vec<EventRecord>, kept raw because its
// elements can only be decoded with a registry.
type EventRecords []byte

func (r EventRecords) EncodeTo(e *scale.Encoder) { e.Write(r) }

func (r *EventRecords) DecodeFrom(d *scale.Decoder) error {
	b, err := d.Read(d.Len())
	if err != nil {
		return err
	}
	*r = append(EventRecords(nil), b...)
	return nil
}
