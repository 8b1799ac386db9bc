package netaccess

import (
	"net"
	"testing"

	"github.com/pion/transport/v2/stdnet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoopbackLayer(t *testing.T) *UDPAccessLayer {
	t.Helper()
	n, err := stdnet.NewNet()
	require.NoError(t, err)
	return NewUDPAccessLayer(n, nil)
}

func TestBindIsIdempotent(t *testing.T) {
	layer := newLoopbackLayer(t)
	ap := NewPointDescriptor("a")

	require.NoError(t, layer.Bind(ap, "127.0.0.1:0"))
	require.NoError(t, layer.Bind(ap, "127.0.0.1:0"))
	assert.NoError(t, layer.Close())
}

func TestSendToUnknownAccessPointFails(t *testing.T) {
	layer := newLoopbackLayer(t)
	err := layer.Send([]byte("hi"), NewPointDescriptor("never-bound"), Address{Host: "127.0.0.1", Port: 1, Kind: UDP})
	assert.Error(t, err)
}

func TestSendRoundTrip(t *testing.T) {
	sender := newLoopbackLayer(t)
	receiverNet, err := stdnet.NewNet()
	require.NoError(t, err)
	receiverConn, err := receiverNet.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer receiverConn.Close()

	local := receiverConn.LocalAddr().(*net.UDPAddr)

	ap := NewPointDescriptor("sender")
	require.NoError(t, sender.Bind(ap, "127.0.0.1:0"))
	defer sender.Close()

	dest := Address{Host: local.IP.String(), Port: local.Port, Kind: UDP}
	require.NoError(t, sender.Send([]byte("ping"), ap, dest))

	buf := make([]byte, 16)
	n, _, err := receiverConn.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf[:n]))
}

func TestSendRejectsOversizedPayload(t *testing.T) {
	layer := newLoopbackLayer(t)
	ap := NewPointDescriptor("a")
	require.NoError(t, layer.Bind(ap, "127.0.0.1:0"))
	defer layer.Close()

	err := layer.Send(make([]byte, 10000), ap, Address{Host: "127.0.0.1", Port: 1, Kind: UDP})
	assert.Error(t, err)
}
