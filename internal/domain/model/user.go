package model

import (
	"time"
)

// AnonymousUserID is the placeholder author stored when a question is
// submitted without an identified user. It does not correspond to a real
// users row, so author joins against it come back empty.
const AnonymousUserID = "00000000-0000-0000-0000-000000000001"

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	CreatedAt      time.Time `json:"created_at"`
}
