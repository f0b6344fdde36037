package protocol

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	// MaxConnectionIDLen is the maximum length of a connection ID in QUIC v1.
	MaxConnectionIDLen = 20
	// DefaultConnectionIDLength is the connection ID length used when the
	// endpoint doesn't configure one.
	DefaultConnectionIDLength = 8
	// MinConnectionIDLenInitial is the minimum length of the destination
	// connection ID on an Initial packet.
	MinConnectionIDLenInitial = 8
)

// A ConnectionID in QUIC.
//
// It is a value type: copying a ConnectionID copies the ID, and two
// ConnectionIDs with the same length and content compare equal with ==.
type ConnectionID struct {
	b [MaxConnectionIDLen]byte
	l uint8
}

// GenerateConnectionID generates a connection ID using cryptographic random.
func GenerateConnectionID(l int) (ConnectionID, error) {
	var c ConnectionID
	c.l = uint8(l)
	_, err := rand.Read(c.b[:l])
	return c, err
}

// GenerateConnectionIDForInitial generates a connection ID for the Initial packet.
// It uses a length randomly chosen between 8 and 20 bytes.
func GenerateConnectionIDForInitial() (ConnectionID, error) {
	r := make([]byte, 1)
	if _, err := rand.Read(r); err != nil {
		return ConnectionID{}, err
	}
	l := MinConnectionIDLenInitial + int(r[0])%(MaxConnectionIDLen-MinConnectionIDLenInitial+1)
	return GenerateConnectionID(l)
}

// ParseConnectionID interprets b as a ConnectionID.
// It panics if b is longer than 20 bytes.
func ParseConnectionID(b []byte) ConnectionID {
	if len(b) > MaxConnectionIDLen {
		panic("invalid conn id length")
	}
	var c ConnectionID
	c.l = uint8(len(b))
	copy(c.b[:], b)
	return c
}

// ReadConnectionID reads a connection ID of length l from the given io.Reader.
// It returns io.EOF if there are not enough bytes to read.
func ReadConnectionID(r io.Reader, l int) (ConnectionID, error) {
	var c ConnectionID
	if l == 0 {
		return c, nil
	}
	if l > MaxConnectionIDLen {
		return c, fmt.Errorf("connection ID exceeds maximum length (%d bytes)", MaxConnectionIDLen)
	}
	c.l = uint8(l)
	if _, err := io.ReadFull(r, c.b[:l]); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return ConnectionID{}, err
	}
	return c, nil
}

// Len returns the length of the connection ID in bytes.
func (c ConnectionID) Len() int {
	return int(c.l)
}

// Bytes returns the byte representation.
func (c ConnectionID) Bytes() []byte {
	return c.b[:c.l]
}

func (c ConnectionID) String() string {
	if c.Len() == 0 {
		return "(empty)"
	}
	return fmt.Sprintf("%x", c.Bytes())
}
