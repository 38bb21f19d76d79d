package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Username string `json:"username"`
}

func (b loginBody) Validate() []string {
	if b.Username == "" {
		return []string{"username is required"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantOK   bool
		wantCode int
		wantMsg  string
	}{
		{name: "valid", body: `{"username":"admin"}`, wantOK: true},
		{name: "malformed", body: `{`, wantCode: http.StatusBadRequest, wantMsg: "invalid request body"},
		{name: "unknown field", body: `{"username":"a","x":1}`, wantCode: http.StatusBadRequest, wantMsg: "unknown field"},
		{name: "fails validation", body: `{}`, wantCode: http.StatusBadRequest, wantMsg: "username is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			var dest loginBody
			ok := DecodeAndValidate(rr, req, &dest)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, "admin", dest.Username)
				return
			}
			assert.Equal(t, tt.wantCode, rr.Code)
			var apiErr APIError
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&apiErr))
			assert.Equal(t, ErrCodeBadRequest, apiErr.Code)
			assert.Contains(t, apiErr.Message, tt.wantMsg)
		})
	}
}

func TestWriteJSONError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONError(rr, http.StatusNotFound, ErrCodeNotFound, "event not found")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":"not_found","message":"event not found"}`, rr.Body.String())
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"?page=3", 3},
		{"?page=0", 1},
		{"?page=-2", 1},
		{"?page=abc", 1},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin"+tt.query, nil)
			p := ParsePage(req, 10)
			assert.Equal(t, tt.want, p.Page)
			assert.Equal(t, 10, p.PageSize)
		})
	}
}
