package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/iho/gopawn/internal/domain"
	"github.com/iho/gopawn/internal/infrastructure/auth"
	"github.com/iho/gopawn/internal/infrastructure/logger"
	"github.com/iho/gopawn/internal/infrastructure/metrics"
)

// Headers trusted when token verification is disabled, e.g. behind an
// authenticating proxy.
const (
	ActorIDHeader       = "X-Actor-ID"
	ActorUsernameHeader = "X-Actor-Username"
	ActorStaffHeader    = "X-Actor-Staff"
	ActorApprovedHeader = "X-Actor-Approved"
)

// TokenVerifier verifies bearer tokens. Implemented by *auth.JWTManager.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// ActorMiddleware resolves the acting user of a request and stores it with
// domain.ContextWithActor.
type ActorMiddleware struct {
	verifier TokenVerifier
	metrics  *metrics.Metrics
}

// NewActorMiddleware creates a new ActorMiddleware. A nil verifier trusts the
// X-Actor-* headers.
func NewActorMiddleware(verifier TokenVerifier, m *metrics.Metrics) *ActorMiddleware {
	return &ActorMiddleware{verifier: verifier, metrics: m}
}

// Wrap wraps an http.Handler with actor resolution.
func (m *ActorMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, reason := m.resolve(r)
		if actor == nil {
			if m.metrics != nil {
				m.metrics.AuthFailures.WithLabelValues(reason).Inc()
			}
			http.Error(w, reason, http.StatusUnauthorized)
			return
		}

		ctx := domain.ContextWithActor(r.Context(), actor)
		ctx = logger.WithRequest(ctx, *logger.FromContext(ctx), "", actor.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *ActorMiddleware) resolve(r *http.Request) (*domain.Actor, string) {
	if m.verifier == nil {
		return actorFromHeaders(r)
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, "missing authorization header"
	}

	// Parse Bearer token
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "invalid authorization header format"
	}

	claims, err := m.verifier.Verify(parts[1])
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, "expired token"
		}
		return nil, "invalid token"
	}

	return claims.Actor(), ""
}

func actorFromHeaders(r *http.Request) (*domain.Actor, string) {
	id := strings.TrimSpace(r.Header.Get(ActorIDHeader))
	if id == "" {
		return nil, "missing actor"
	}

	staff, _ := strconv.ParseBool(r.Header.Get(ActorStaffHeader))
	approved, _ := strconv.ParseBool(r.Header.Get(ActorApprovedHeader))

	return &domain.Actor{
		ID:         id,
		Username:   r.Header.Get(ActorUsernameHeader),
		IsStaff:    staff,
		IsApproved: approved,
	}, ""
}
