package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/simpleuser/user-directory/internal/auth/password"
	"github.com/simpleuser/user-directory/internal/core/domain"
	"github.com/simpleuser/user-directory/internal/core/ports"
	"github.com/simpleuser/user-directory/internal/metrics"
)

// UserService implements the directory CRUD operations. Accounts created
// through it always get role USER; privileged accounts only come from
// seeding. There is deliberately no update operation.
type UserService struct {
	repo   ports.UserRepository
	hasher *password.Hasher
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher *password.Hasher, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, log: log}
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.log.Debug().Msg("list users")
	return s.repo.FindAll(ctx)
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	s.log.Debug().Str("id", id).Msg("get user by id")
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.log.Debug().Str("email", email).Msg("get user by email")
	return s.repo.FindByEmail(ctx, email)
}

// CreateUser adds an account with a freshly hashed password. Email
// uniqueness is checked first and enforced again by the store's unique
// index, so a concurrent duplicate still fails with ErrUserExists.
func (s *UserService) CreateUser(ctx context.Context, email, plaintext string) (*domain.User, error) {
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()
	s.log.Info().Str("email", created.Email).Msg("user created")
	return created, nil
}

func (s *UserService) DeleteUserByID(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	metrics.UsersDeletedTotal.Inc()
	s.log.Info().Str("id", id).Msg("user deleted")
	return nil
}

func (s *UserService) DeleteUserByEmail(ctx context.Context, email string) error {
	if err := s.repo.DeleteByEmail(ctx, email); err != nil {
		return err
	}
	metrics.UsersDeletedTotal.Inc()
	s.log.Info().Str("email", email).Msg("user deleted")
	return nil
}
