package models

import (
	"encoding/hex"
	"time"

	"golang.org/x/crypto/sha3"
)

// Metadata travels with a registration. The raw token value never leaves
// the service; only its hash does.
type Metadata struct {
	TokenID   string    `json:"token_id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Anchor is the registry state of one honeytoken.
type Anchor struct {
	TokenID    string
	Hash       string
	Registered bool
	// Created is true only on the call that first registered the hash.
	Created   bool
	CheckedAt time.Time
}

// Hash returns the 0x-prefixed Keccak-256 digest of value, matching what an
// EVM contract computes with keccak256(bytes(value)).
func Hash(value string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(value))
	return "0x" + hex.EncodeToString(h.Sum(nil))
}
