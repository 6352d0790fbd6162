package statefile

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"licentia/internal/domain"
	"licentia/internal/usecase"
)

const (
	TokenFile     = "trial.token"
	SignatureFile = "trial.signature"
	LastCheckFile = ".last_license_check"
)

// Store persists the consumer-side grant artifacts and the last
// successful online-check timestamp under one directory.
type Store struct {
	Dir string
}

func New(dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{Dir: dir}
}

// LoadGrant reads the token and signature artifacts. The signature file
// holds 128 hex characters; whitespace around either artifact is
// tolerated, anything else is a format error.
func (s *Store) LoadGrant() (domain.SignedGrant, error) {
	token, err := s.readTrimmed(TokenFile)
	if err != nil {
		return domain.SignedGrant{}, err
	}
	sigHex, err := s.readTrimmed(SignatureFile)
	if err != nil {
		return domain.SignedGrant{}, err
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return domain.SignedGrant{}, fmt.Errorf("%w: invalid signature hex", domain.ErrFormatInvalid)
	}
	return domain.SignedGrant{Token: []byte(token), Signature: sig}, nil
}

func (s *Store) WriteGrant(token []byte, signatureHex string) error {
	if err := os.WriteFile(s.path(TokenFile), token, 0o644); err != nil {
		return err
	}
	return os.WriteFile(s.path(SignatureFile), []byte(signatureHex), 0o644)
}

func (s *Store) LoadLastCheck() (time.Time, bool, error) {
	content, err := os.ReadFile(s.path(LastCheckFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	seconds, err := strconv.ParseUint(strings.TrimSpace(string(content)), 10, 64)
	if err != nil {
		return time.Time{}, false, nil
	}
	return time.Unix(int64(seconds), 0).UTC(), true, nil
}

// StoreLastCheck writes the stamp atomically so a concurrent reader
// never observes a partial value.
func (s *Store) StoreLastCheck(t time.Time) error {
	payload := strconv.FormatInt(t.Unix(), 10)
	tmp, err := os.CreateTemp(s.Dir, LastCheckFile+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path(LastCheckFile))
}

func (s *Store) readTrimmed(name string) (string, error) {
	content, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrArtifactMissing, name)
		}
		return "", err
	}
	return strings.TrimSpace(string(content)), nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.Dir, name)
}

var _ usecase.CheckStamp = (*Store)(nil)
