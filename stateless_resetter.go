package quiccid

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"hash"
	"sync"

	"github.com/quicforge/quic-cid/internal/protocol"
)

// A StatelessResetToken identifies a stateless reset for the connection ID
// it was issued with.
type StatelessResetToken = protocol.StatelessResetToken

// A StatelessResetKey is the secret from which stateless reset tokens are
// derived. Deriving tokens from a fixed key lets an endpoint send a valid
// stateless reset for a connection ID even after losing all connection state.
type StatelessResetKey [32]byte

// A StatelessResetter derives stateless reset tokens from connection IDs.
type StatelessResetter struct {
	enabled bool
	mx      sync.Mutex
	hasher  hash.Hash
}

// NewStatelessResetter creates a new StatelessResetter.
// If key is nil, keyed derivation is disabled and every token is random.
func NewStatelessResetter(key *StatelessResetKey) *StatelessResetter {
	r := &StatelessResetter{
		enabled: key != nil,
	}
	if r.enabled {
		r.hasher = hmac.New(sha256.New, key[:])
	}
	return r
}

// Enabled reports whether tokens are derived from a key.
// If not, tokens are random and can't be reproduced after a restart.
func (r *StatelessResetter) Enabled() bool {
	return r.enabled
}

// GetStatelessResetToken returns the stateless reset token for a connection ID.
func (r *StatelessResetter) GetStatelessResetToken(connID ConnectionID) StatelessResetToken {
	var token StatelessResetToken
	if !r.enabled {
		// Return a random stateless reset token.
		// By using a random token, an off-path attacker won't be able to
		// disrupt the connection.
		rand.Read(token[:])
		return token
	}
	r.mx.Lock()
	r.hasher.Write(connID.Bytes())
	copy(token[:], r.hasher.Sum(nil))
	r.hasher.Reset()
	r.mx.Unlock()
	return token
}
