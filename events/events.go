// Package events decodes the event records a runtime deposits in
// System.Events into typed pallet events.
package events

import (
	"fmt"
	"sync"

	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/types"
)

// Event is a typed pallet event. Implementations are pointer types.
type Event interface {
	Info() types.EventInfo
	scale.Encodable
	scale.Decodable
}

// Factory returns a new zero event ready to be decoded into.
type Factory func() Event

// Record is one entry of System.Events.
type Record struct {
	Phase  types.Phase
	Event  Event
	Topics []types.Hash
}

func (r Record) EncodeTo(e *scale.Encoder) {
	r.Phase.EncodeTo(e)
	info := r.Event.Info()
	e.EncodeU8(info.PalletIndex)
	e.EncodeU8(info.EventIndex)
	r.Event.EncodeTo(e)
	scale.EncodeSlice(e, r.Topics)
}

// EncodeRecords encodes records as Vec<EventRecord>.
func EncodeRecords(records []Record) []byte {
	e := scale.NewEncoder()
	scale.EncodeSlice(e, records)
	return e.Bytes()
}

type tag struct{ pallet, event uint8 }

// Registry maps (pallet index, event index) to event factories. It is
// safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	byTag   map[tag]Factory
	infoFor map[tag]types.EventInfo
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byTag: make(map[tag]Factory), infoFor: make(map[tag]types.EventInfo)}
}

// Register resolves the names of the factory's event against meta and
// registers it under the indices meta declares.
func (r *Registry) Register(meta *metadata.Metadata, f Factory) error {
	info := f().Info()
	p, err := meta.Pallet(info.Pallet)
	if err != nil {
		return err
	}
	v, err := p.Event(info.Name)
	if err != nil {
		return err
	}
	t := tag{p.Index, v.Index}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, dup := r.infoFor[t]; dup && (prev.Pallet != info.Pallet || prev.Name != info.Name) {
		return fmt.Errorf("events: %s.%s and %s.%s share tag (%d,%d)", prev.Pallet, prev.Name, info.Pallet, info.Name, t.pallet, t.event)
	}
	info.PalletIndex, info.EventIndex = t.pallet, t.event
	r.byTag[t] = f
	r.infoFor[t] = info
	return nil
}

// Lookup returns the event registered under a tag.
func (r *Registry) Lookup(palletIndex, eventIndex uint8) (types.EventInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.infoFor[tag{palletIndex, eventIndex}]
	return info, ok
}

// DecodeEvent decodes one tagged event.
func (r *Registry) DecodeEvent(d *scale.Decoder) (Event, error) {
	start := d.Offset()
	pi, err := d.DecodeU8()
	if err != nil {
		return nil, err
	}
	ei, err := d.DecodeU8()
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	f, ok := r.byTag[tag{pi, ei}]
	r.mu.RUnlock()
	if !ok {
		return nil, &scale.DecodeError{Offset: start, Err: scale.ErrInvalidVariant, Detail: fmt.Sprintf("unknown event (%d,%d)", pi, ei)}
	}
	ev := f()
	if err := ev.DecodeFrom(d); err != nil {
		return nil, err
	}
	return ev, nil
}

// DecodeRecords decodes a Vec<EventRecord>. An event whose tag is not
// registered fails the whole decode, since its length is unknown.
func (r *Registry) DecodeRecords(data []byte) ([]Record, error) {
	d := scale.NewDecoder(data)
	records, err := scale.DecodeSlice(d, r.decodeRecord)
	if err != nil {
		return nil, err
	}
	if d.Len() != 0 {
		return nil, &scale.DecodeError{Offset: d.Offset(), Err: scale.ErrTrailingBytes}
	}
	return records, nil
}

func (r *Registry) decodeRecord(d *scale.Decoder) (Record, error) {
	var rec Record
	if err := rec.Phase.DecodeFrom(d); err != nil {
		return rec, err
	}
	ev, err := r.DecodeEvent(d)
	if err != nil {
		return rec, err
	}
	rec.Event = ev
	rec.Topics, err = scale.DecodeSlice(d, scale.DecodeValue[types.Hash])
	return rec, err
}

// Find returns the events of type T, in order.
func Find[T Event](records []Record) []T {
	var out []T
	for _, r := range records {
		if ev, ok := r.Event.(T); ok {
			out = append(out, ev)
		}
	}
	return out
}

// ForExtrinsic returns the records deposited while applying the
// extrinsic at index idx of its block.
func ForExtrinsic(records []Record, idx uint32) []Record {
	var out []Record
	for _, r := range records {
		if r.Phase.Kind == types.PhaseApplyExtrinsic && r.Phase.Extrinsic == idx {
			out = append(out, r)
		}
	}
	return out
}
