package crypto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"licentia/internal/domain"
)

// Encode produces the canonical byte encoding of a token: a single JSON
// object with lexicographically ordered keys, no whitespace, and
// integers in shortest decimal form. The same logical token always
// encodes byte-identically; these are the exact bytes that get signed.
func Encode(token domain.TrialToken) []byte {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	buf.WriteString(`"expires_at":`)
	buf.WriteString(strconv.FormatUint(token.ExpiresAt, 10))
	buf.WriteString(`,"issued_at":`)
	buf.WriteString(strconv.FormatUint(token.IssuedAt, 10))
	buf.WriteString(`,"subject_id":`)
	writeString(buf, token.SubjectID)
	buf.WriteByte('}')
	return buf.Bytes()
}

// Decode parses a canonical token encoding. Unknown fields and trailing
// data are format errors; Decode(Encode(t)) == t for all tokens.
func Decode(encoded []byte) (domain.TrialToken, error) {
	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.DisallowUnknownFields()

	var token domain.TrialToken
	if err := dec.Decode(&token); err != nil {
		return domain.TrialToken{}, fmt.Errorf("%w: %v", domain.ErrFormatInvalid, err)
	}
	if err := ensureEOF(dec); err != nil {
		return domain.TrialToken{}, err
	}
	if token.SubjectID == "" {
		return domain.TrialToken{}, fmt.Errorf("%w: subject_id is required", domain.ErrFormatInvalid)
	}
	return token, nil
}

func ensureEOF(dec *json.Decoder) error {
	var extra any
	if err := dec.Decode(&extra); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", domain.ErrFormatInvalid, err)
	}
	return fmt.Errorf("%w: trailing data", domain.ErrFormatInvalid)
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			buf.WriteByte('\\')
			buf.WriteRune(r)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(hexLower[r>>4])
				buf.WriteByte(hexLower[r&0x0f])
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}

var hexLower = []byte("0123456789abcdef")
