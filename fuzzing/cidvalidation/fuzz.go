// Package cidvalidation fuzzes connection ID validation.
package cidvalidation

import (
	"encoding/binary"

	quiccid "github.com/quicforge/quic-cid"
	"github.com/quicforge/quic-cid/internal/protocol"
)

// PrefixLen is the number of bytes used for configuration:
// 8 bytes for the generator key, 1 byte selecting the signature bit to flip.
const PrefixLen = 9

// Fuzz fuzzes connection ID generation and validation.
//
//go:generate go run ./cmd/corpus.go
func Fuzz(data []byte) int {
	if len(data) < PrefixLen {
		return 0
	}
	key := binary.LittleEndian.Uint64(data[:8])
	bitToFlip := int(data[8]) % 40
	data = data[PrefixLen:]
	if len(data) > protocol.MaxConnectionIDLen {
		data = data[:protocol.MaxConnectionIDLen]
	}

	g := quiccid.NewHashedConnectionIDGeneratorWithKey(key)
	if err := g.Validate(protocol.ParseConnectionID(data)); err == nil && len(data) != g.ConnectionIDLen() {
		panic("accepted connection ID of wrong length")
	}

	c, err := g.GenerateConnectionID()
	if err != nil {
		return 0
	}
	if err := g.Validate(c); err != nil {
		panic("rejected self-issued connection ID")
	}
	corrupted := make([]byte, c.Len())
	copy(corrupted, c.Bytes())
	corrupted[3+bitToFlip/8] ^= 1 << (bitToFlip % 8)
	if err := g.Validate(protocol.ParseConnectionID(corrupted)); err == nil {
		panic("accepted connection ID with corrupted signature")
	}
	return 1
}
