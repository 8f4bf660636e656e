package domain

import (
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Credential length limits.
const (
	UsernameMinLength = 4
	UsernameMaxLength = 20
	PasswordMinLength = 6
	PasswordMaxLength = 32

	// bcrypt silently ignores input past 72 bytes.
	passwordMaxBytes = 72
)

// User represents a registered account. Tasks reference it by ID only.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given username and plaintext password.
// It generates a new UUID for the user ID and sets the creation/update timestamps.
//
// The caller is responsible for hashing the password before storing the user.
func NewUser(username, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// A plaintext password, when present, must satisfy the password policy;
// otherwise a hashed password is required.
func (u *User) Validate() error {
	verr := &ValidationError{}

	if u.ID == uuid.Nil {
		verr.Add("id", "must not be empty")
	}

	ValidateUsername(u.Username, verr)

	if u.Password != "" {
		checkPassword(u.Password, verr)
	} else if u.HashedPassword == "" {
		verr.Add("password", "must not be empty")
	}

	return verr.errOrNil()
}

// ValidateUsername records a field error on verr when the username length is out of range.
func ValidateUsername(username string, verr *ValidationError) {
	n := utf8.RuneCountInString(username)
	switch {
	case n == 0:
		verr.Add("username", "must not be empty")
	case n < UsernameMinLength:
		verr.Add("username", "must be at least 4 characters long")
	case n > UsernameMaxLength:
		verr.Add("username", "must be at most 20 characters long")
	}
}

// ValidatePassword checks a plaintext password against the password policy:
// 6 to 32 characters, at least one lowercase letter, one uppercase letter and
// one symbol, and no whitespace.
func ValidatePassword(password string) error {
	verr := &ValidationError{}
	checkPassword(password, verr)
	return verr.errOrNil()
}

func checkPassword(password string, verr *ValidationError) {
	n := utf8.RuneCountInString(password)
	if n < PasswordMinLength {
		verr.Add("password", "must be at least 6 characters long")
		return
	}
	if n > PasswordMaxLength || len(password) > passwordMaxBytes {
		verr.Add("password", "must be at most 32 characters long")
		return
	}

	var hasLower, hasUpper, hasSymbol, hasSpace bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
		case unicode.IsSpace(r):
			hasSpace = true
		default:
			// Underscore and anything outside [A-Za-z0-9] count as symbols.
			hasSymbol = true
		}
	}

	if hasSpace {
		verr.Add("password", "must not contain whitespace")
	}
	if !hasLower || !hasUpper || !hasSymbol {
		verr.Add("password", "is too weak: needs a lowercase letter, an uppercase letter and a symbol")
	}
}
