// Package limits provides centralized STUN message size constants and
// validation functions, used by message and netaccess before a payload
// ever reaches the wire or is handed to a transaction.
//
// # Message Size Hierarchy
//
//   - HeaderSize (20 bytes): the fixed STUN message header, present on
//     every request and response.
//
//   - MaxAttributesSize (65515 bytes): the largest attribute section that
//     keeps a whole message, header included, within 65535 bytes.
//
//   - MaxMessageSize (65535 bytes): HeaderSize + MaxAttributesSize, the
//     ceiling applied to any whole STUN message.
//
//   - RecommendedDatagramSize (548 bytes): the conventional STUN-over-UDP
//     budget (576-byte minimum IPv4 reassembly guarantee minus IP/UDP
//     headers), used as the default sanity cap for outbound requests so a
//     misconfigured attribute set fails fast instead of fragmenting.
//
// # Validation Functions
//
//	err := limits.ValidateMessageSize(payload, limits.RecommendedDatagramSize)
//	if err != nil {
//	    // ErrMessageEmpty or ErrMessageTooLarge
//	}
package limits
