// Package txid wraps the 96-bit STUN transaction identifier used to
// demultiplex responses to in-flight client transactions.
package txid
