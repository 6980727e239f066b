package types

import "strings"

// Capabilities is a bitfield declaring which optional interfaces a node
// supports.
type Capabilities uint8

const (
	CapChainReader Capabilities = 1 << iota // 0b01
	CapValidation                           // 0b10
)

// Has returns true if all bits in cap are set.
func (c Capabilities) Has(cap Capabilities) bool {
	return c&cap == cap
}

// String returns a human-readable representation.
func (c Capabilities) String() string {
	var caps []string
	if c.Has(CapChainReader) {
		caps = append(caps, "ChainReader")
	}
	if c.Has(CapValidation) {
		caps = append(caps, "Validation")
	}
	if len(caps) == 0 {
		return "none"
	}
	return strings.Join(caps, "|")
}
