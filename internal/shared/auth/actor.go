package auth

import "github.com/google/uuid"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Actor is the identity a request acts as. It is passed explicitly into
// services; the zero value is an anonymous visitor.
type Actor struct {
	AccountID uuid.UUID
	Email     string
	Role      Role
}

func Anonymous() Actor {
	return Actor{}
}

func (a Actor) IsAuthenticated() bool {
	return a.AccountID != uuid.Nil
}

func (a Actor) IsAdmin() bool {
	return a.IsAuthenticated() && a.Role == RoleAdmin
}

// Owns reports whether the actor is the given account
func (a Actor) Owns(accountID uuid.UUID) bool {
	return a.IsAuthenticated() && a.AccountID == accountID
}
