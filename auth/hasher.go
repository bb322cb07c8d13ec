package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultBcryptCost bcrypt cost used when none is configured
	DefaultBcryptCost = 12
	// MaxPasswordBytes longest password bcrypt accepts
	MaxPasswordBytes = 72
)

// PasswordHasher one way credential hashing
type PasswordHasher interface {
	/*
		Hash compute the hash of a plain text password

			@param password string - plain text password
			@returns the hash
	*/
	Hash(password string) (string, error)

	/*
		Compare verify a plain text password against its hash

			@param hash string - stored hash
			@param password string - plain text password
			@returns whether they match
	*/
	Compare(hash string, password string) (bool, error)
}

// BcryptHasher bcrypt based PasswordHasher
type BcryptHasher struct {
	// Cost bcrypt cost factor
	Cost int
}

// Hash compute the bcrypt hash of a plain text password
func (h BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	cost := h.Cost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password [%w]", err)
	}
	return string(hashed), nil
}

// Compare verify a plain text password against a bcrypt hash
func (h BcryptHasher) Compare(hash string, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("failed to compare password hash [%w]", err)
}
