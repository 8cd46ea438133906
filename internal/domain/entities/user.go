package entities

import "time"

type Role string

const (
	RoleClient Role = "client"
	RoleWriter Role = "writer"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleWriter, RoleAdmin:
		return true
	}
	return false
}

// User is a client, writer or admin account.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI email-index: email
//   - GSI role-index: role
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Rating       float64   `json:"rating"`
	RatedCount   int       `json:"rated_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Viewer is the authenticated caller of a use case.
type Viewer struct {
	UserID string
	Role   Role
}

func (v Viewer) IsAdmin() bool  { return v.Role == RoleAdmin }
func (v Viewer) IsWriter() bool { return v.Role == RoleWriter }
func (v Viewer) IsClient() bool { return v.Role == RoleClient }
