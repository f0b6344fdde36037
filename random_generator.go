package quiccid

import (
	"fmt"
	"time"

	"github.com/quicforge/quic-cid/internal/protocol"
)

// A RandomConnectionIDGenerator issues purely random connection IDs of a
// fixed length.
//
// Random connection IDs can be shorter than those issued by the
// HashedConnectionIDGenerator, but can't be usefully validated: Validate
// accepts everything.
type RandomConnectionIDGenerator struct {
	DefaultValidation

	connIDLen int
	lifetime  time.Duration
}

var _ ConnectionIDGenerator = &RandomConnectionIDGenerator{}

// NewRandomConnectionIDGenerator creates a generator for connection IDs of
// the given length. A length of 0 selects the default of 8 bytes.
// It panics if the length exceeds 20 bytes, the maximum the protocol allows.
func NewRandomConnectionIDGenerator(connIDLen int) *RandomConnectionIDGenerator {
	if connIDLen == 0 {
		connIDLen = protocol.DefaultConnectionIDLength
	}
	if connIDLen < 0 || connIDLen > protocol.MaxConnectionIDLen {
		panic(fmt.Sprintf("invalid connection ID length: %d", connIDLen))
	}
	return &RandomConnectionIDGenerator{connIDLen: connIDLen}
}

// SetLifetime sets the lifetime of connection IDs issued by this generator.
// It must be called before the first call to GenerateConnectionID.
func (g *RandomConnectionIDGenerator) SetLifetime(d time.Duration) *RandomConnectionIDGenerator {
	g.lifetime = d
	return g
}

// GenerateConnectionID generates a connection ID using cryptographic random.
func (g *RandomConnectionIDGenerator) GenerateConnectionID() (ConnectionID, error) {
	return protocol.GenerateConnectionID(g.connIDLen)
}

// ConnectionIDLen returns the length of connection IDs issued by this generator.
func (g *RandomConnectionIDGenerator) ConnectionIDLen() int { return g.connIDLen }

// ConnectionIDLifetime returns the configured lifetime, or zero if none was set.
func (g *RandomConnectionIDGenerator) ConnectionIDLifetime() time.Duration { return g.lifetime }
