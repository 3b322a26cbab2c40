// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package cursor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crafiq/crafiq/pkg/cursor"
)

/*
TestCursor_RoundTrip verifies every key shape survives encode/decode intact.
*/
func TestCursor_RoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name string
		key  cursor.Key
	}{
		{"created_at_key", cursor.Key{ID: "w-1", CreatedAt: created}},
		{"count_key", cursor.Key{ID: "w-2", Count: 4021}},
		{"title_key", cursor.Key{ID: "w-3", Title: "Tower of Dawn"}},
		{"id_only", cursor.Key{ID: "w-4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := cursor.Encode(tt.key)
			require.NotEmpty(t, encoded)

			decoded, err := cursor.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.key.ID, decoded.ID)
			assert.True(t, tt.key.CreatedAt.Equal(decoded.CreatedAt))
			assert.Equal(t, tt.key.Count, decoded.Count)
			assert.Equal(t, tt.key.Title, decoded.Title)
		})
	}
}

/*
TestCursor_DecodeRejectsGarbage verifies malformed input maps to ErrInvalid.
*/
func TestCursor_DecodeRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not_base64", "!!definitely not base64!!"},
		{"base64_not_json", "bm90LWpzb24"},
		{"empty_string", ""},
		{"missing_id", cursor.Encode(cursor.Key{Count: 7})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cursor.Decode(tt.input)
			assert.ErrorIs(t, err, cursor.ErrInvalid)
		})
	}
}
