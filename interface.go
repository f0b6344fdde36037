// Package quiccid issues and recognizes QUIC connection IDs.
//
// A connection ID tags packets as belonging to one logical connection, even
// as that connection migrates across network paths. IDs must not let an
// observer correlate them with each other, yet the endpoint that issued them
// should be able to recognize its own IDs cheaply, before any per-connection
// work is done.
package quiccid

import (
	"errors"
	"io"
	"time"

	"github.com/quicforge/quic-cid/internal/protocol"
)

// A ConnectionID is an opaque byte string identifying a QUIC connection.
type ConnectionID = protocol.ConnectionID

// MaxConnectionIDLen is the maximum length of a connection ID in QUIC v1.
const MaxConnectionIDLen = protocol.MaxConnectionIDLen

// ParseConnectionID interprets b as a ConnectionID.
// It panics if b is longer than 20 bytes.
func ParseConnectionID(b []byte) ConnectionID {
	return protocol.ParseConnectionID(b)
}

// ReadConnectionID reads a connection ID of length l from the given
// io.Reader, e.g. from the connection ID field of a packet header.
// It returns io.EOF if there are not enough bytes to read.
func ReadConnectionID(r io.Reader, l int) (ConnectionID, error) {
	return protocol.ReadConnectionID(r, l)
}

// ErrInvalidConnectionID is returned by Validate for connection IDs that
// weren't issued by this generator. It carries no detail: validation runs on
// the packet receive path, and the reason for a rejection must not be
// observable.
var ErrInvalidConnectionID = errors.New("invalid connection ID")

// A ConnectionIDGenerator issues the connection IDs used by one endpoint.
//
// GenerateConnectionID may consume shared randomness or per-generator state
// and is not safe for concurrent use. Validate, ConnectionIDLen and
// ConnectionIDLifetime don't modify the generator and can be called
// concurrently, without synchronization.
type ConnectionIDGenerator interface {
	// GenerateConnectionID generates a new connection ID.
	// Connection IDs must not contain any information that can be used by
	// an external observer (that is, one that does not cooperate with the
	// issuer) to correlate them with other connection IDs for the same
	// connection. They must have high entropy, e.g. due to encrypted data
	// or cryptographic-grade random data.
	// It only fails if the random source fails; in that case generation is
	// aborted. There is no low-entropy fallback.
	GenerateConnectionID() (ConnectionID, error)

	// Validate quickly determines whether the connection ID could have been
	// issued by this generator, returning ErrInvalidConnectionID if not.
	// False positives are permitted, but increase the cost of handling
	// invalid packets. Connection IDs issued by this generator are never
	// rejected.
	Validate(ConnectionID) error

	// ConnectionIDLen returns the length of connection IDs issued by this
	// generator. Every connection ID returned by GenerateConnectionID has
	// exactly this length, for the lifetime of the generator.
	ConnectionIDLen() int

	// ConnectionIDLifetime returns how long issued connection IDs remain
	// valid before they are retired. Zero means no automatic expiry.
	// Assumed to be constant.
	ConnectionIDLifetime() time.Duration
}

// DefaultValidation accepts every connection ID.
// Generator implementations that can't recognize their own connection IDs
// embed it instead of repeating the accept-everything Validate.
type DefaultValidation struct{}

// Validate accepts cid, regardless of its content or length.
func (DefaultValidation) Validate(ConnectionID) error { return nil }
