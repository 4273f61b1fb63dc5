// Package policy holds the static endpoint-security table: which paths are
// public, which only need a valid identity, and which demand specific roles.
// The table is built once at startup and evaluated by a pure function, so the
// whole access policy is auditable and testable in one place.
package policy

import (
	"strings"

	"github.com/simpleuser/user-directory/internal/auth/token"
)

// Access classifies what a rule demands from the caller.
type Access int

const (
	// Public endpoints need no identity at all.
	Public Access = iota
	// Authenticated endpoints accept any valid identity.
	Authenticated
	// RoleRestricted endpoints require the identity's role to be in Roles.
	RoleRestricted
)

// Decision is the outcome of evaluating a request against the table.
type Decision int

const (
	Allow Decision = iota
	Unauthenticated
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "forbidden"
	}
}

// Rule maps a request target to a required access level. An empty Method
// matches every method. Prefix rules match any path underneath Path; exact
// rules match the path verbatim and always win over prefix rules.
type Rule struct {
	Method string
	Path   string
	Prefix bool
	Access Access
	Roles  []string
}

type Policy struct {
	rules []Rule
}

func New(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// Evaluate decides whether a request with the given identity (nil when
// unauthenticated) may proceed. Targets not covered by any rule require
// authentication. The decision is deterministic and side-effect free.
func (p *Policy) Evaluate(method, path string, id *token.Identity) Decision {
	rule, ok := p.match(method, path)
	if !ok {
		rule = Rule{Access: Authenticated}
	}

	switch rule.Access {
	case Public:
		return Allow
	case Authenticated:
		if id == nil {
			return Unauthenticated
		}
		return Allow
	default:
		if id == nil {
			return Unauthenticated
		}
		for _, r := range rule.Roles {
			if r == id.Role {
				return Allow
			}
		}
		return Forbidden
	}
}

// match returns the most specific rule for (method, path): exact path beats
// prefix, longer prefix beats shorter, and a method-specific rule beats an
// any-method rule of equal path specificity.
func (p *Policy) match(method, path string) (Rule, bool) {
	var (
		best      Rule
		bestScore = -1
	)
	for _, r := range p.rules {
		if r.Method != "" && r.Method != method {
			continue
		}
		score := -1
		switch {
		case !r.Prefix && r.Path == path:
			// Exact matches outrank every prefix match.
			score = 1 << 20
		case r.Prefix && strings.HasPrefix(path, r.Path):
			score = len(r.Path) << 1
		default:
			continue
		}
		if r.Method != "" {
			score++
		}
		if score > bestScore {
			best, bestScore = r, score
		}
	}
	return best, bestScore >= 0
}
