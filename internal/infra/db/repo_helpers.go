package db

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"licentia/internal/domain"
)

func errStoreUnavailable() error {
	return fmt.Errorf("%w: db unavailable", domain.ErrAuthorityUnavailable)
}

func newUUID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	bytes[6] = (bytes[6] & 0x0f) | 0x40
	bytes[8] = (bytes[8] & 0x3f) | 0x80
	hexStr := hex.EncodeToString(bytes)
	return hexStr[0:8] + "-" + hexStr[8:12] + "-" + hexStr[12:16] + "-" + hexStr[16:20] + "-" + hexStr[20:32], nil
}

var errEmptySubject = errors.New("subject is required")
