package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/simpleuser/user-directory/internal/auth/token"
)

func issueToken(t *testing.T, codec *token.Codec, subject, role string, ttl time.Duration) string {
	t.Helper()
	now := time.Now().UTC()
	signed, err := codec.Issue(subject, role, now, now.Add(ttl))
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return signed
}

func runIdentity(t *testing.T, codec *token.Codec, authHeader string) (*token.Identity, int) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *token.Identity
	handler := Identity(codec)(func(c echo.Context) error {
		seen = IdentityFrom(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return seen, rec.Code
}

func TestIdentity_ValidToken(t *testing.T) {
	codec := token.NewCodec("secret")
	signed := issueToken(t, codec, "alice@example.com", "ADMIN", time.Hour)

	id, code := runIdentity(t, codec, "Bearer "+signed)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if id == nil {
		t.Fatalf("expected identity to be attached")
	}
	if id.Subject != "alice@example.com" || id.Role != "ADMIN" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestIdentity_MissingHeaderPassesThrough(t *testing.T) {
	codec := token.NewCodec("secret")

	id, code := runIdentity(t, codec, "")
	if code != http.StatusOK {
		t.Fatalf("expected pass-through 200, got %d", code)
	}
	if id != nil {
		t.Fatalf("expected no identity, got %+v", id)
	}
}

func TestIdentity_WrongSchemePassesThrough(t *testing.T) {
	codec := token.NewCodec("secret")

	id, code := runIdentity(t, codec, "Basic dXNlcjpwYXNz")
	if code != http.StatusOK {
		t.Fatalf("expected pass-through 200, got %d", code)
	}
	if id != nil {
		t.Fatalf("expected no identity, got %+v", id)
	}
}

func TestIdentity_InvalidTokenPassesThroughWithoutIdentity(t *testing.T) {
	codec := token.NewCodec("secret")
	forged := issueToken(t, token.NewCodec("other"), "mallory@example.com", "ADMIN", time.Hour)

	for _, header := range []string{
		"Bearer not-a-token",
		"Bearer " + forged,
	} {
		id, code := runIdentity(t, codec, header)
		if code != http.StatusOK {
			t.Fatalf("header %q: expected pass-through 200, got %d", header, code)
		}
		if id != nil {
			t.Fatalf("header %q: expected no identity, got %+v", header, id)
		}
	}
}

func TestIdentity_ExpiredTokenPassesThroughWithoutIdentity(t *testing.T) {
	codec := token.NewCodec("secret")
	now := time.Now().UTC()
	signed, err := codec.Issue("alice@example.com", "USER", now.Add(-2*time.Hour), now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	id, code := runIdentity(t, codec, "Bearer "+signed)
	if code != http.StatusOK {
		t.Fatalf("expected pass-through 200, got %d", code)
	}
	if id != nil {
		t.Fatalf("expected no identity for expired token, got %+v", id)
	}
}
