package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DefaultName derives a display name from the local part of an email.
func DefaultName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
