// Copyright (c) 2026 Crafiq. All rights reserved.
// Author: studio@crafiq.app

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crafiq/crafiq/pkg/pagination"
)

/*
TestFromRequest verifies query parsing and clamping of hostile input.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, pagination.DefaultLimit},
		{"explicit", "?page=3&limit=50", 3, 50},
		{"zero_page", "?page=0", 1, pagination.DefaultLimit},
		{"negative_values", "?page=-2&limit=-10", 1, pagination.DefaultLimit},
		{"over_max_limit", "?limit=5000", 1, pagination.DefaultLimit},
		{"garbage", "?page=abc&limit=xyz", 1, pagination.DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/works"+tt.query, nil)
			params := pagination.FromRequest(r)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

/*
TestParams_Offset verifies the page-to-offset conversion.
*/
func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 90, pagination.Params{Page: 10, Limit: 10}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 20}.Offset())
}

/*
TestNewMeta verifies total-page rounding and cursor attachment.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 20, 41)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Empty(t, meta.NextCursor)

	meta = pagination.NewMeta(1, 20, 0)
	assert.Equal(t, 0, meta.TotalPages)

	withCursor := meta.WithCursor("abc123")
	assert.Equal(t, "abc123", withCursor.NextCursor)
	assert.Empty(t, meta.NextCursor) // Original untouched
}
