// Package guard protects mutating routes with a shared admin secret sent in a
// request header. There are no sessions, expiry or attempt throttling beyond
// the global rate limit.
package guard

import (
	"crypto/sha256"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/portfolio-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/portfolio-service/internal/domain"
	"github.com/jsamuelsen11/portfolio-service/internal/ports"
)

// DefaultHeader is the request header carrying the admin secret.
const DefaultHeader = "x-admin-token"

// Compile-time check that SharedSecret implements ports.Authorizer.
var _ ports.Authorizer = (*SharedSecret)(nil)

// SharedSecret authorizes requests whose header value equals a secret fixed
// at construction. An empty secret makes every decision Misconfigured.
type SharedSecret struct {
	header string
	digest [sha256.Size]byte
	unset  bool
}

// NewSharedSecret creates a SharedSecret that reads header and expects
// secret. An empty header selects DefaultHeader.
func NewSharedSecret(header, secret string) *SharedSecret {
	if header == "" {
		header = DefaultHeader
	}
	return &SharedSecret{
		header: header,
		digest: sha256.Sum256([]byte(secret)),
		unset:  secret == "",
	}
}

// Header returns the name of the header the secret is read from.
func (s *SharedSecret) Header() string {
	return s.header
}

// Authorize compares the request header against the secret. Both sides are
// hashed first so the comparison runs in constant time regardless of length.
func (s *SharedSecret) Authorize(r *http.Request) ports.Decision {
	if s.unset {
		return ports.Decision{Outcome: ports.Misconfigured, Reason: "admin token is not configured"}
	}

	provided := r.Header.Get(s.header)
	if provided == "" {
		return ports.Decision{Outcome: ports.Deny, Reason: "missing " + s.header + " header"}
	}

	got := sha256.Sum256([]byte(provided))
	if subtle.ConstantTimeCompare(got[:], s.digest[:]) != 1 {
		return ports.Decision{Outcome: ports.Deny, Reason: "admin token mismatch"}
	}

	return ports.Decision{Outcome: ports.Allow}
}

// Require returns middleware that lets a request through only when the
// authorizer allows it. A misconfigured authorizer yields a 500 and a
// denial a 403; neither response says why.
func Require(authz ports.Authorizer, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := authz.Authorize(r)

			switch d.Outcome {
			case ports.Allow:
				next.ServeHTTP(w, r)
			case ports.Misconfigured:
				logger.WarnContext(r.Context(), "admin guard misconfigured",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("reason", d.Reason),
				)
				dto.WriteErrorResponse(w, r, domain.ErrMisconfigured)
			default:
				logger.InfoContext(r.Context(), "admin access denied",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("reason", d.Reason),
				)
				dto.WriteErrorResponse(w, r, domain.ErrForbidden)
			}
		})
	}
}
