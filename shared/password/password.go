package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default cost for bcrypt hashing
	DefaultCost = bcrypt.DefaultCost
	// MaxLength is the longest input bcrypt accepts, in bytes.
	MaxLength = 72
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrTooLong         = fmt.Errorf("password cannot exceed %d bytes", MaxLength)
)

// Check reports whether password can be hashed. The limit counts bytes, not characters.
func Check(password string) error {
	switch {
	case password == "":
		return ErrEmptyPassword
	case len(password) > MaxLength:
		return ErrTooLong
	}

	return nil
}

// Hash generates a bcrypt hash of the password
func Hash(password string) (string, error) {
	if err := Check(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(bytes), nil
}

// Verify checks if the provided password matches the hash
func Verify(password, hash string) error {
	if password == "" || hash == "" || len(password) > MaxLength {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}

		return fmt.Errorf("failed to verify password: %w", err)
	}

	return nil
}

// Matches reports whether password fits hash. The error is set only when the
// hash itself is unusable.
func Matches(password, hash string) (bool, error) {
	err := Verify(password, hash)
	if errors.Is(err, ErrInvalidPassword) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}
