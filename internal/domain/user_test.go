package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("alice1", "Abcdef1!")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice1", user.Username)
	assert.Equal(t, "Abcdef1!", user.Password)
	assert.Empty(t, user.HashedPassword)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestNewUser_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		want     []FieldError
	}{
		{
			name:     "short username",
			username: "abc",
			password: "Abcdef1!",
			want:     []FieldError{{Field: "username", Message: "must be at least 4 characters long"}},
		},
		{
			name:     "long username",
			username: strings.Repeat("a", 21),
			password: "Abcdef1!",
			want:     []FieldError{{Field: "username", Message: "must be at most 20 characters long"}},
		},
		{
			name:     "empty username and password",
			username: "",
			password: "",
			want: []FieldError{
				{Field: "username", Message: "must not be empty"},
				{Field: "password", Message: "must not be empty"},
			},
		},
		{
			name:     "weak password",
			username: "alice1",
			password: "abcdefgh",
			want: []FieldError{
				{Field: "password", Message: "is too weak: needs a lowercase letter, an uppercase letter and a symbol"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.username, tt.password)
			require.Error(t, err)
			assert.Nil(t, user)
			assert.True(t, errors.Is(err, ErrValidation))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			if diff := cmp.Diff(tt.want, verr.Errors); diff != "" {
				t.Errorf("field errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUserValidate_StoredUser(t *testing.T) {
	user := User{
		ID:             uuid.New(),
		Username:       "alice1",
		HashedPassword: "$2a$10$hash",
	}
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), ErrValidation)

	user.HashedPassword = "$2a$10$hash"
	user.ID = uuid.Nil
	assert.ErrorIs(t, user.Validate(), ErrValidation)
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"Abcdef1!", true},
		{"aB_def", true},
		{"aBcdé1", true},
		{"Ab!", false},
		{"Abcdefgh", false},
		{"ABCDEF1!", false},
		{"abcdef1!", false},
		{"Abc def1!", false},
		{"Abc\fdef1!", false},
		{"Abcdef1!" + strings.Repeat("x", 25), false},
		{"Abcdef1!" + strings.Repeat("x", 24), true},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	verr := &ValidationError{}
	assert.False(t, verr.HasErrors())
	assert.NoError(t, verr.errOrNil())

	verr.Add("title", "must not be empty")
	verr.Add("status", "invalid task status")
	assert.Equal(t,
		"validation failed: title: must not be empty; status: invalid task status",
		verr.Error())
}
