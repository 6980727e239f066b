package types

// RuntimeVersion identifies the runtime a node is executing. Spec and
// transaction versions are bound into every signature.
type RuntimeVersion struct {
	SpecName           string `cramberry:"1"`
	ImplName           string `cramberry:"2"`
	AuthoringVersion   uint32 `cramberry:"3"`
	SpecVersion        uint32 `cramberry:"4"`
	ImplVersion        uint32 `cramberry:"5"`
	TransactionVersion uint32 `cramberry:"6"`
}

// TransactionSource tells the node where a transaction being validated
// came from.
type TransactionSource uint8

const (
	SourceInBlock TransactionSource = iota
	SourceLocal
	SourceExternal
)

// TransactionValidity is a node's verdict on whether an extrinsic would
// be admitted to its pool.
type TransactionValidity struct {
	Valid bool `cramberry:"1"`
	// Priority for ordering within the pool. Higher goes first.
	Priority uint64 `cramberry:"2"`
	// Longevity is the number of blocks the verdict stays valid for.
	Longevity uint64 `cramberry:"3"`
	// Reason for an invalid verdict (debugging only).
	Reason string `cramberry:"4"`
}
