package txid

import (
	"encoding/hex"

	"github.com/pion/stun"
)

// Size is the length in bytes of a STUN transaction identifier.
const Size = stun.TransactionIDSize

// ID is a 96-bit opaque value used as the demultiplexing key between an
// outbound request and the response the registry later dispatches to it.
// It is a plain byte array so equality and use as a map key are both
// byte-wise and free, satisfying spec.md's equals/hash requirement without
// any extra machinery.
type ID = [stun.TransactionIDSize]byte

// New draws a fresh identifier from a cryptographically adequate source of
// randomness. It delegates to pion/stun's generator rather than rolling a
// second crypto/rand call, since the wire codec already needs one and this
// keeps a single source of transaction-id entropy for the whole stack.
func New() (ID, error) {
	return stun.NewTransactionID(), nil
}

// String renders the identifier as lowercase hex, useful for log fields.
func String(id ID) string {
	return hex.EncodeToString(id[:])
}

// Equal reports whether two identifiers carry the same bytes.
func Equal(a, b ID) bool {
	return a == b
}
