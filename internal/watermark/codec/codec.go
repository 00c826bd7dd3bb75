// Package codec derives watermark markers. A marker is a keyed one-way digest of
// (partner, user, timestamp); it cannot be reversed, so attribution always goes
// through the stored marker table.
package codec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/crypto/hkdf"
)

const (
	Prefix        = "wm_"
	DefaultLength = 32
	hkdfInfo      = "datasentinel watermark v1"
)

var (
	ErrEmptySecret   = errors.New("watermark secret must not be empty")
	ErrInvalidLength = errors.New("watermark length must be an even number between 16 and 64")
)

// Codec is safe for concurrent use; it holds only the derived key.
type Codec struct {
	key    []byte
	length int
}

// New derives the HMAC key from secret with HKDF-SHA256. length is the number
// of hex characters after the prefix.
func New(secret string, length int) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if length == 0 {
		length = DefaultLength
	}
	if length < 16 || length > 64 || length%2 != 0 {
		return nil, ErrInvalidLength
	}
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("derive watermark key: %w", err)
	}
	return &Codec{key: key, length: length}, nil
}

// Encode returns the marker for the triple. Identical inputs always give the
// identical marker.
func (c *Codec) Encode(partnerID, userID string, ts time.Time) string {
	mac := hmac.New(sha256.New, c.key)
	writeField(mac, partnerID)
	writeField(mac, userID)
	writeField(mac, CanonicalTime(ts))
	sum := mac.Sum(nil)
	return Prefix + hex.EncodeToString(sum[:c.length/2])
}

// WellFormed reports whether s has the shape of a marker from this codec.
func (c *Codec) WellFormed(s string) bool {
	if !strings.HasPrefix(s, Prefix) {
		return false
	}
	body := s[len(Prefix):]
	if len(body) != c.length {
		return false
	}
	for _, r := range body {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}

// CanonicalTime is the string form timestamps are hashed and reported in.
// Precision stops at the microsecond, the finest a stored watermark keeps.
func CanonicalTime(ts time.Time) string {
	return ts.UTC().Truncate(time.Microsecond).Format(time.RFC3339Nano)
}

// writeField length-prefixes each field so ("ab","c") and ("a","bc") differ.
func writeField(w io.Writer, s string) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(s)))
	_, _ = w.Write(n[:])
	_, _ = io.WriteString(w, s)
}
