package domain

import "time"

type ID string

// User is immutable after registration; there is no update or delete.
type User struct {
	ID           ID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
