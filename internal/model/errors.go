package model

import "errors"

var (
	// ErrNotFound is returned by backends for keys that were never set.
	ErrNotFound = errors.New("not found")

	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrNotLoggedIn         = errors.New("no user logged in")
	ErrAlreadyLoggedIn     = errors.New("user already logged in")
	ErrUserNotFound        = errors.New("user not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrFetch               = errors.New("failed to fetch catalog")
	ErrMalformedStoredData = errors.New("malformed stored data")
	ErrInvalidSortKey      = errors.New("invalid sort key")
)
