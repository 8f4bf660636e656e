package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/taskman-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	tests := []struct {
		name        string
		body        string
		wantErr     bool
		errContains string
	}{
		{name: "valid json", body: `{"name": "test", "age": 30}`},
		{name: "unknown fields are ignored", body: `{"name": "test", "status": "DONE"}`},
		{name: "invalid json", body: `{"name": "test", "age": 30,}`, wantErr: true, errContains: "invalid character"},
		{name: "empty body", body: "", wantErr: true, errContains: "EOF"},
		{
			name:        "oversized body",
			body:        `{"name": "` + strings.Repeat("a", MaxRequestBodyBytes) + `"}`,
			wantErr:     true,
			errContains: "too large",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			var got payload
			err := DecodeJSON(w, req, &got)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "test", got.Name)
		})
	}
}

type taggedRequest struct {
	Title  string `json:"title"  validate:"required,max=5"`
	Status string `json:"status" validate:"omitempty,oneof=A B"`
}

type selfValidating struct{ err error }

func (s selfValidating) Validate() error { return s.err }

func TestValidateRequest(t *testing.T) {
	t.Run("tagged struct passes", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(&taggedRequest{Title: "ok"}))
	})

	t.Run("tagged struct failures use json names", func(t *testing.T) {
		err := ValidateRequest(&taggedRequest{Title: "", Status: "C"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ElementsMatch(t, []domain.FieldError{
			{Field: "title", Message: "is required"},
			{Field: "status", Message: "must be one of: A, B"},
		}, verr.Errors)
	})

	t.Run("Validate method wins", func(t *testing.T) {
		sentinel := errors.New("custom")
		assert.Same(t, sentinel, ValidateRequest(selfValidating{err: sentinel}))
		assert.NoError(t, ValidateRequest(selfValidating{}))
	})
}

func TestCheckField(t *testing.T) {
	verr := &domain.ValidationError{}

	CheckField(verr, "title", "fine", "required,max=10")
	assert.False(t, verr.HasErrors())

	CheckField(verr, "title", "", "required,max=10")
	CheckField(verr, "description", strings.Repeat("x", 11), "max=10")

	assert.Equal(t, []domain.FieldError{
		{Field: "title", Message: "is required"},
		{Field: "description", Message: "must be at most 10 characters long"},
	}, verr.Errors)
}
