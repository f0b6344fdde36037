package quiccid

import (
	"bytes"
	"crypto/hkdf"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/quicforge/quic-cid/internal/protocol"
)

const (
	// nonceLen bounds how many connection IDs can be issued per key before
	// nonce collisions become a concern: 3 bytes are good for more than
	// 16 million connections.
	nonceLen        = 3
	signatureLen    = 5
	hashedConnIDLen = nonceLen + signatureLen
)

const hashedKeyHKDFInfo = "quic-cid hashed generator key"

// A HashedConnectionIDGenerator issues 8-byte connection IDs that it can
// efficiently recognize as its own: a 3-byte random nonce, followed by a
// 5-byte signature obtained by truncating the keyed hash of the nonce.
//
// The hash is not cryptographic, so the signature can still be spoofed.
// Validate exists to drop stray and non-QUIC packets at very low cost before
// any per-connection work, not to authenticate traffic.
type HashedConnectionIDGenerator struct {
	key      uint64
	lifetime time.Duration
}

var _ ConnectionIDGenerator = &HashedConnectionIDGenerator{}

// NewHashedConnectionIDGenerator creates a generator with a random key.
func NewHashedConnectionIDGenerator() *HashedConnectionIDGenerator {
	var b [8]byte
	rand.Read(b[:])
	return NewHashedConnectionIDGeneratorWithKey(binary.LittleEndian.Uint64(b[:]))
}

// NewHashedConnectionIDGeneratorWithKey creates a generator with a specific
// key, allowing Validate to recognize a consistent set of connection IDs
// across restarts.
//
// The key must stay fixed for the lifetime of the generator. Switching keys
// means creating a new generator, and invalidates every previously issued
// connection ID.
func NewHashedConnectionIDGeneratorWithKey(key uint64) *HashedConnectionIDGenerator {
	return &HashedConnectionIDGenerator{key: key}
}

// NewHashedConnectionIDGeneratorFromSecret derives the generator key from a
// long-lived secret using HKDF-SHA256. Generators derived from the same
// secret accept each other's connection IDs, so a secret shared across a
// fleet (or persisted across restarts) yields a consistent recognition set.
func NewHashedConnectionIDGeneratorFromSecret(secret []byte) (*HashedConnectionIDGenerator, error) {
	prk, err := hkdf.Extract(sha256.New, secret, nil)
	if err != nil {
		return nil, err
	}
	expanded, err := hkdf.Expand(sha256.New, prk, hashedKeyHKDFInfo, 8)
	if err != nil {
		return nil, err
	}
	return NewHashedConnectionIDGeneratorWithKey(binary.LittleEndian.Uint64(expanded)), nil
}

// SetLifetime sets the lifetime of connection IDs issued by this generator.
// It must be called before the first call to GenerateConnectionID.
func (g *HashedConnectionIDGenerator) SetLifetime(d time.Duration) *HashedConnectionIDGenerator {
	g.lifetime = d
	return g
}

// GenerateConnectionID generates a new self-verifying connection ID.
func (g *HashedConnectionIDGenerator) GenerateConnectionID() (ConnectionID, error) {
	var b [hashedConnIDLen]byte
	if _, err := rand.Read(b[:nonceLen]); err != nil {
		return ConnectionID{}, err
	}
	g.sign(b[:nonceLen], b[nonceLen:])
	return protocol.ParseConnectionID(b[:]), nil
}

// Validate recomputes the signature for the connection ID's nonce and
// compares it against the signature the connection ID carries.
func (g *HashedConnectionIDGenerator) Validate(cid ConnectionID) error {
	if cid.Len() != hashedConnIDLen {
		return ErrInvalidConnectionID
	}
	b := cid.Bytes()
	var expected [signatureLen]byte
	g.sign(b[:nonceLen], expected[:])
	if !bytes.Equal(expected[:], b[nonceLen:]) {
		return ErrInvalidConnectionID
	}
	return nil
}

// ConnectionIDLen returns the length of connection IDs issued by this generator.
func (g *HashedConnectionIDGenerator) ConnectionIDLen() int { return hashedConnIDLen }

// ConnectionIDLifetime returns the configured lifetime, or zero if none was set.
func (g *HashedConnectionIDGenerator) ConnectionIDLifetime() time.Duration { return g.lifetime }

// sign writes the truncated keyed hash of nonce into out.
// out must be signatureLen bytes long.
func (g *HashedConnectionIDGenerator) sign(nonce, out []byte) {
	var b [8 + nonceLen]byte
	binary.LittleEndian.PutUint64(b[:8], g.key)
	copy(b[8:], nonce)
	var digest [8]byte
	binary.LittleEndian.PutUint64(digest[:], xxhash.Sum64(b[:]))
	copy(out, digest[:signatureLen])
}
