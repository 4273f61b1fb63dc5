package ports

import (
	"context"

	"github.com/simpleuser/user-directory/internal/core/domain"
)

type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	CreateUser(ctx context.Context, email, password string) (*domain.User, error)

	DeleteUserByID(ctx context.Context, id string) error
	DeleteUserByEmail(ctx context.Context, email string) error
}
