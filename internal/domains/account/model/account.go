package model

import (
	"time"

	"github.com/google/uuid"

	"vocalhub-backend/internal/shared/auth"
)

type Account struct {
	ID           uuid.UUID
	Email        string
	DisplayName  *string
	PasswordHash string
	Role         auth.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountDTO is the public view; it never carries the password hash
type AccountDTO struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"name,omitempty"`
	Role        auth.Role `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *Account) ToDTO() AccountDTO {
	return AccountDTO{
		ID:          a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		Role:        a.Role,
		CreatedAt:   a.CreatedAt,
	}
}
