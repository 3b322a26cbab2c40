// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

// Package cursor encodes and decodes opaque keyset cursors for feed endpoints.
//
// # Overview
//
// A cursor captures the sort-key values of the last row on a page so the next
// page can resume with a WHERE clause instead of an OFFSET. The encoding is
// base64url over a compact JSON payload; clients must treat it as opaque.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// ErrInvalid is returned when a cursor cannot be decoded.
var ErrInvalid = errors.New("cursor: invalid or corrupted cursor")

// Key holds the keyset position of the last row seen by the client.
//
// Exactly one of the sort-value fields is populated depending on the feed's
// active sort; ID is always set as the tie-breaker.
type Key struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"ca,omitempty"`
	Count     int64     `json:"ct,omitempty"`
	Title     string    `json:"ti,omitempty"`
}

// Encode serializes a key into an opaque base64url cursor string.
func Encode(key Key) string {
	raw, err := json.Marshal(key)
	if err != nil {
		// Key contains only marshalable primitives; this cannot happen.
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode parses an opaque cursor string back into a key.
//
// Returns [ErrInvalid] for malformed input so callers can map it to a
// client-facing validation error.
func Decode(encoded string) (Key, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Key{}, ErrInvalid
	}

	var key Key
	if err := json.Unmarshal(raw, &key); err != nil {
		return Key{}, ErrInvalid
	}

	if key.ID == "" {
		return Key{}, ErrInvalid
	}

	return key, nil
}
