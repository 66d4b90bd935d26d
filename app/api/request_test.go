package api

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Shoes"}`))
	require.NoError(t, DecodeJSON(httptest.NewRecorder(), req, &dst))
	assert.Equal(t, "Shoes", dst.Name)

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{invalid json`))
	err := DecodeJSON(httptest.NewRecorder(), req, &dst)
	require.Error(t, err)
	assert.Equal(t, KindBadRequest, AsError(err).Kind)
}

func TestQueryID(t *testing.T) {
	testCases := []struct {
		name        string
		url         string
		expectedID  uint
		expectedErr string
	}{
		{name: "valid", url: "/?review_id=12", expectedID: 12},
		{name: "missing", url: "/", expectedErr: "Missing review_id"},
		{name: "not a number", url: "/?review_id=abc", expectedErr: "Invalid review_id"},
		{name: "zero", url: "/?review_id=0", expectedErr: "Invalid review_id"},
		{name: "negative", url: "/?review_id=-3", expectedErr: "Invalid review_id"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := QueryID(httptest.NewRequest("GET", tc.url, nil), "review_id")
			if tc.expectedErr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.expectedErr, AsError(err).Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedID, id)
		})
	}
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest("GET", "/category/detail/7", nil)
	req.SetPathValue("category_id", "7")

	id, err := PathID(req, "category_id")
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}
