package quiccid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quicforge/quic-cid/internal/protocol"
)

func TestHashedGeneratorRoundTrip(t *testing.T) {
	g := NewHashedConnectionIDGenerator()
	require.Equal(t, 8, g.ConnectionIDLen())
	for i := 0; i < 1000; i++ {
		c, err := g.GenerateConnectionID()
		require.NoError(t, err)
		require.Equal(t, 8, c.Len())
		require.NoError(t, g.Validate(c))
	}
}

func TestHashedGeneratorRejectsCorruptedSignature(t *testing.T) {
	g := NewHashedConnectionIDGeneratorWithKey(0x1234567890abcdef)
	c, err := g.GenerateConnectionID()
	require.NoError(t, err)
	// flip every single bit of the 5-byte signature in turn
	for byteIdx := 3; byteIdx < 8; byteIdx++ {
		for bit := 0; bit < 8; bit++ {
			corrupted := make([]byte, c.Len())
			copy(corrupted, c.Bytes())
			corrupted[byteIdx] ^= 1 << bit
			err := g.Validate(protocol.ParseConnectionID(corrupted))
			require.ErrorIs(t, err, ErrInvalidConnectionID,
				"accepted connection ID with bit %d of byte %d flipped", bit, byteIdx)
		}
	}
}

func TestHashedGeneratorRejectsWrongLength(t *testing.T) {
	g := NewHashedConnectionIDGenerator()
	require.ErrorIs(t, g.Validate(ConnectionID{}), ErrInvalidConnectionID)
	require.ErrorIs(t, g.Validate(protocol.ParseConnectionID([]byte{1, 2, 3})), ErrInvalidConnectionID)
	require.ErrorIs(t, g.Validate(protocol.ParseConnectionID(make([]byte, 20))), ErrInvalidConnectionID)
	c, err := g.GenerateConnectionID()
	require.NoError(t, err)
	// truncating an otherwise valid connection ID invalidates it
	require.ErrorIs(t, g.Validate(protocol.ParseConnectionID(c.Bytes()[:7])), ErrInvalidConnectionID)
}

func TestHashedGeneratorKeySeparation(t *testing.T) {
	g1 := NewHashedConnectionIDGeneratorWithKey(0x1234)
	g2 := NewHashedConnectionIDGeneratorWithKey(0x5678)
	c, err := g1.GenerateConnectionID()
	require.NoError(t, err)
	require.NoError(t, g1.Validate(c))
	// truncated signatures collide at a rate of ~2^-40
	require.ErrorIs(t, g2.Validate(c), ErrInvalidConnectionID)
}

func TestHashedGeneratorRestartContinuity(t *testing.T) {
	const key = 0xfeedface0ddba11
	g1 := NewHashedConnectionIDGeneratorWithKey(key)
	g2 := NewHashedConnectionIDGeneratorWithKey(key)
	for i := 0; i < 100; i++ {
		c, err := g1.GenerateConnectionID()
		require.NoError(t, err)
		require.NoError(t, g2.Validate(c))
		c, err = g2.GenerateConnectionID()
		require.NoError(t, err)
		require.NoError(t, g1.Validate(c))
	}
}

func TestHashedGeneratorFromSecret(t *testing.T) {
	secret := []byte("a long-lived secret shared across the fleet")
	g1, err := NewHashedConnectionIDGeneratorFromSecret(secret)
	require.NoError(t, err)
	g2, err := NewHashedConnectionIDGeneratorFromSecret(secret)
	require.NoError(t, err)
	c, err := g1.GenerateConnectionID()
	require.NoError(t, err)
	require.NoError(t, g2.Validate(c))

	g3, err := NewHashedConnectionIDGeneratorFromSecret([]byte("a different secret"))
	require.NoError(t, err)
	require.ErrorIs(t, g3.Validate(c), ErrInvalidConnectionID)
}

func TestHashedGeneratorLifetime(t *testing.T) {
	g := NewHashedConnectionIDGenerator()
	require.Zero(t, g.ConnectionIDLifetime())
	g.SetLifetime(time.Minute)
	require.Equal(t, time.Minute, g.ConnectionIDLifetime())
}
