package crypto

import (
	"crypto/ed25519"
	"fmt"

	"licentia/internal/domain"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) Encode(token domain.TrialToken) []byte {
	return Encode(token)
}

func (s *Service) Decode(encoded []byte) (domain.TrialToken, error) {
	return Decode(encoded)
}

// Verify checks a detached ed25519 signature over message. A wrong-length
// signature is a format error and a malformed public key a bootstrap
// error; both are distinct from a cryptographic mismatch.
func (s *Service) Verify(message, sig, pubKey []byte) error {
	if len(pubKey) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: invalid ed25519 public key length %d", domain.ErrPublicKeyInvalid, len(pubKey))
	}
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("%w: invalid ed25519 signature length %d", domain.ErrFormatInvalid, len(sig))
	}
	if !ed25519.Verify(pubKey, message, sig) {
		return domain.ErrSignatureInvalid
	}
	return nil
}
