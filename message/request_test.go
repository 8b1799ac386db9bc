package message

import (
	"testing"

	"github.com/pion/stun"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonbt56/ice4j/txid"
)

func TestRawBeforeStampFails(t *testing.T) {
	req, err := NewRequest(stun.MethodBinding)
	require.NoError(t, err)

	_, err = req.Raw()
	assert.ErrorIs(t, err, ErrNotYetEncoded)
}

func TestStampThenRawRoundTrips(t *testing.T) {
	req, err := NewRequest(stun.MethodBinding)
	require.NoError(t, err)

	id, err := txid.New()
	require.NoError(t, err)

	require.NoError(t, req.Stamp(id))
	assert.True(t, txid.Equal(id, req.TransactionID()))

	raw, err := req.Raw()
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	resp, err := DecodeResponse(raw)
	require.NoError(t, err)
	assert.True(t, txid.Equal(id, resp.TransactionID()))
}

func TestDecodeResponseRejectsGarbage(t *testing.T) {
	_, err := DecodeResponse([]byte{0x00, 0x01, 0x02})
	assert.Error(t, err)
}

func TestDecodeResponseRejectsOversizedPayload(t *testing.T) {
	_, err := DecodeResponse(make([]byte, 70000))
	assert.Error(t, err)
}
