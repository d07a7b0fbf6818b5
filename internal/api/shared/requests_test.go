package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name string `json:"name" validate:"required,max=5"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"deck"}`, false},
		{"empty", ``, true},
		{"malformed", `{"name":`, true},
		{"unknown field", `{"name":"a","extra":1}`, true},
		{"trailing data", `{"name":"a"}{"name":"b"}`, true},
		{"too large", `{"name":"` + strings.Repeat("x", MaxRequestBodyBytes) + `"}`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var req sampleRequest
			err := DecodeJSON(httptest.NewRecorder(), r, &req)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "deck", req.Name)
		})
	}
}

func TestDecodeJSON_EmptyBody(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	var req sampleRequest
	assert.ErrorIs(t, DecodeJSON(httptest.NewRecorder(), r, &req), ErrEmptyBody)
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateRequest(&sampleRequest{Name: "ok"}))
	assert.Error(t, ValidateRequest(&sampleRequest{}))
	assert.Error(t, ValidateRequest(&sampleRequest{Name: "toolong"}))
}
