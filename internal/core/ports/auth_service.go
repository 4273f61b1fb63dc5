package ports

import "context"

// AuthService verifies credentials and issues bearer tokens.
type AuthService interface {
	// Authenticate returns a signed token on success. Unknown email and wrong
	// password are deliberately indistinguishable in the returned error.
	Authenticate(ctx context.Context, email, password string) (string, error)
}
