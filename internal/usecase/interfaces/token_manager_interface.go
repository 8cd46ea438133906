package interfaces

import (
	"time"

	"proassignment/internal/domain/entities"
)

// ITokenManager issues and verifies bearer tokens carrying the user id and role.
type ITokenManager interface {
	Issue(u entities.User) (token string, expiresAt time.Time, err error)
	Verify(token string) (entities.Viewer, error)
}
