package auth

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/calibra-app/calibra/internal/platform/httpx"
)

// TokenHeader is the request header carrying the raw signed token. The SPA
// sends it as-is, without the Authorization Bearer scheme.
const TokenHeader = "X-Auth-Token"

// Guard is the request-level authentication and authorization middleware.
// It is stateless: each request is judged solely on its token.
type Guard struct {
	tokens *TokenManager
}

// NewGuard builds a Guard around a token verifier.
func NewGuard(tokens *TokenManager) *Guard {
	return &Guard{tokens: tokens}
}

// Require admits any authenticated identity.
func (g *Guard) Require() func(http.Handler) http.Handler {
	return g.middleware("")
}

// RequireRole admits only authenticated identities with the given role.
func (g *Guard) RequireRole(role Role) func(http.Handler) http.Handler {
	return g.middleware(role)
}

func (g *Guard) middleware(required Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(TokenHeader)
			if raw == "" {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing token")
				return
			}
			claims, err := g.tokens.Verify(raw)
			if err != nil {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
				return
			}
			userID, err := uuid.Parse(claims.User.ID)
			if err != nil {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
				return
			}
			if required != "" && claims.User.Role != required {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "insufficient role")
				return
			}
			ctx := ContextWithIdentity(r.Context(), Identity{ID: userID, Role: claims.User.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
