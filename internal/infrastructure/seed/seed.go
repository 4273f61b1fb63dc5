// Package seed populates the directory at startup: two fixed accounts
// (admin/admin with role ADMIN, user/user with role USER) and a batch of
// random USER accounts for demo data. Existing emails are left untouched, so
// seeding is safe to run on every boot.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/simpleuser/user-directory/internal/auth/password"
	"github.com/simpleuser/user-directory/internal/core/domain"
	"github.com/simpleuser/user-directory/internal/core/ports"
)

const randomUsers = 25

type account struct {
	email    string
	password string
	role     string
}

type Seeder struct {
	repo   ports.UserRepository
	hasher *password.Hasher
	log    zerolog.Logger
}

func New(repo ports.UserRepository, hasher *password.Hasher, log zerolog.Logger) *Seeder {
	return &Seeder{repo: repo, hasher: hasher, log: log}
}

// Run inserts the seed accounts, skipping any email that already exists.
func (s *Seeder) Run(ctx context.Context) error {
	accounts := []account{
		{email: "admin", password: "admin", role: domain.RoleAdmin},
		{email: "user", password: "user", role: domain.RoleUser},
	}
	faker := gofakeit.New(0)
	for i := 0; i < randomUsers; i++ {
		accounts = append(accounts, account{
			email:    faker.Email(),
			password: faker.Password(true, true, true, false, false, 12),
			role:     domain.RoleUser,
		})
	}

	created := 0
	for _, a := range accounts {
		exists, err := s.repo.ExistsByEmail(ctx, a.email)
		if err != nil {
			return fmt.Errorf("seed %s: %w", a.email, err)
		}
		if exists {
			continue
		}

		hash, err := s.hasher.Hash(a.password)
		if err != nil {
			return fmt.Errorf("seed %s: %w", a.email, err)
		}

		if _, err := s.repo.Create(ctx, &domain.User{
			ID:           uuid.NewString(),
			Email:        a.email,
			PasswordHash: hash,
			Role:         a.role,
			CreatedAt:    time.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("seed %s: %w", a.email, err)
		}
		created++
	}

	s.log.Info().Int("created", created).Msg("directory seeded")
	return nil
}
