package model

import "github.com/google/uuid"

// User represents a registered account kept in the local store.
//
// Password is stored as entered; the store is local to one machine and
// there is no server to verify against.
type User struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
}
