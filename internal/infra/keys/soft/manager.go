package soft

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"

	"licentia/internal/config"
)

// Manager holds the authority's ed25519 keypair in process memory. The
// private half never leaves this package.
type Manager struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// NewManagerFromConfig loads the signing key from config (seed hex or
// base64-encoded key) and generates a fresh keypair when neither is set.
func NewManagerFromConfig(cfg config.Config) (*Manager, error) {
	if cfg.SigningPrivateKeySeedHex != "" {
		raw, err := hex.DecodeString(cfg.SigningPrivateKeySeedHex)
		if err != nil {
			return nil, errors.New("invalid signing key seed hex")
		}
		return newManagerFromRaw(raw)
	}
	if cfg.SigningPrivateKeyBase64 != "" {
		raw, err := base64.StdEncoding.DecodeString(cfg.SigningPrivateKeyBase64)
		if err != nil {
			return nil, errors.New("invalid signing key base64")
		}
		return newManagerFromRaw(raw)
	}
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Manager{priv: priv, pub: pub}, nil
}

func NewManager(priv ed25519.PrivateKey) *Manager {
	key := append(ed25519.PrivateKey(nil), priv...)
	return &Manager{priv: key, pub: key.Public().(ed25519.PublicKey)}
}

func newManagerFromRaw(raw []byte) (*Manager, error) {
	switch len(raw) {
	case ed25519.SeedSize:
		return NewManager(ed25519.NewKeyFromSeed(raw)), nil
	case ed25519.PrivateKeySize:
		return NewManager(ed25519.PrivateKey(raw)), nil
	default:
		return nil, errors.New("invalid ed25519 private key length")
	}
}

func (m *Manager) Sign(payload []byte) []byte {
	return ed25519.Sign(m.priv, payload)
}

// PublicKey returns a copy of the 32-byte verification half.
func (m *Manager) PublicKey() []byte {
	return append([]byte(nil), m.pub...)
}
