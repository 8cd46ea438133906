package response

import (
	"time"

	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase"
)

type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Rating     float64   `json:"rating"`
	RatedCount int       `json:"rated_count"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromUser(u entities.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		Rating:     u.Rating,
		RatedCount: u.RatedCount,
		CreatedAt:  u.CreatedAt,
	}
}

func FromUsers(list []entities.User) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, FromUser(u))
	}
	return out
}

type TokenResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

func FromAuthToken(t usecase.AuthToken) TokenResponse {
	return TokenResponse{
		Token:     t.Token,
		TokenType: "Bearer",
		ExpiresAt: t.ExpiresAt,
		User:      FromUser(t.User),
	}
}
