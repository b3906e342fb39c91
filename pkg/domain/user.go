package domain

import "github.com/google/uuid"

// UserID identifies the authenticated caller of the API. It is taken from the
// subject of the bearer token.
type UserID uuid.UUID

func (id UserID) String() string { return uuid.UUID(id).String() }
