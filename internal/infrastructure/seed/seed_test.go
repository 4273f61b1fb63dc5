package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/simpleuser/user-directory/internal/auth/password"
	"github.com/simpleuser/user-directory/internal/core/domain"
)

type stubRepo struct {
	users map[string]*domain.User
}

func newStubRepo() *stubRepo {
	return &stubRepo{users: make(map[string]*domain.User)}
}

func (r *stubRepo) FindAll(context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *stubRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.users[user.Email] = user
	return user, nil
}

func (r *stubRepo) DeleteByID(_ context.Context, id string) error {
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubRepo) DeleteByEmail(_ context.Context, email string) error {
	if _, ok := r.users[email]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, email)
	return nil
}

func TestSeeder_Run(t *testing.T) {
	repo := newStubRepo()
	hasher := password.NewHasher(bcrypt.MinCost)
	seeder := New(repo, hasher, zerolog.Nop())

	if err := seeder.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	admin, err := repo.FindByEmail(context.Background(), "admin")
	if err != nil {
		t.Fatalf("admin not seeded: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("expected ADMIN role, got %s", admin.Role)
	}
	if !hasher.Verify("admin", admin.PasswordHash) {
		t.Fatalf("admin password not verifiable")
	}

	user, err := repo.FindByEmail(context.Background(), "user")
	if err != nil {
		t.Fatalf("user not seeded: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected USER role, got %s", user.Role)
	}

	all, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != randomUsers+2 {
		t.Fatalf("expected %d accounts, got %d", randomUsers+2, len(all))
	}
}

func TestSeeder_RunTwiceKeepsFixedAccounts(t *testing.T) {
	repo := newStubRepo()
	hasher := password.NewHasher(bcrypt.MinCost)
	seeder := New(repo, hasher, zerolog.Nop())

	if err := seeder.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	adminBefore, _ := repo.FindByEmail(context.Background(), "admin")

	if err := seeder.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	adminAfter, err := repo.FindByEmail(context.Background(), "admin")
	if err != nil {
		t.Fatalf("admin missing after reseed: %v", err)
	}
	if adminBefore.ID != adminAfter.ID {
		t.Fatalf("existing admin was replaced")
	}
}
