package interfaces

import (
	"context"

	"proassignment/internal/domain/entities"
)

type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	GetByEmail(ctx context.Context, email string) (entities.User, error)
	ListByRole(ctx context.Context, role entities.Role) ([]entities.User, error)
	UpdateRating(ctx context.Context, id string, rating float64, ratedCount int) (entities.User, error)
}
