// Package gameid generates the opaque ids handed to viewers when their
// connection is accepted. Ids are time-ordered (UUIDv7 layout) and encoded
// with Crockford base32 so they are short, sortable and safe in logs.
package gameid

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generate returns a new 26-character viewer id.
func Generate() string {
	var raw [16]byte

	// 48-bit millisecond timestamp prefix keeps ids ordered by connect time.
	now := time.Now().UnixMilli()
	raw[0] = byte(now >> 40)
	raw[1] = byte(now >> 32)
	raw[2] = byte(now >> 24)
	raw[3] = byte(now >> 16)
	raw[4] = byte(now >> 8)
	raw[5] = byte(now)

	if _, err := rand.Read(raw[6:]); err != nil {
		panic("gameid: failed to read random bytes: " + err.Error())
	}

	// UUIDv7 version and variant bits, so the raw form is a valid UUID too.
	raw[6] = (raw[6] & 0x0f) | 0x70
	raw[8] = (raw[8] & 0x3f) | 0x80

	return encoding.EncodeToString(raw[:])
}

// Validate checks that an id has the shape Generate produces.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("viewer id must be 26 characters, got %d", len(id))
	}
	if _, err := encoding.DecodeString(id); err != nil {
		return fmt.Errorf("viewer id is not valid base32: %w", err)
	}
	return nil
}
