package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gopawn/internal/domain"
	"github.com/iho/gopawn/internal/infrastructure/auth"
	"github.com/iho/gopawn/internal/infrastructure/metrics"
)

func captureActor(t *testing.T, mw *ActorMiddleware, req *http.Request) (*domain.Actor, *httptest.ResponseRecorder) {
	t.Helper()

	var got *domain.Actor
	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = domain.ActorFromContext(r.Context())
	})).ServeHTTP(rr, req)

	return got, rr
}

func TestActorMiddleware_BearerToken(t *testing.T) {
	manager := auth.NewJWTManager("secret", "identity")
	want := &domain.Actor{ID: "user-1", Username: "meena", IsApproved: true}

	token, err := manager.Generate(want, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	got, rr := captureActor(t, NewActorMiddleware(manager, nil), req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, got)
	assert.Equal(t, *want, *got)
}

func TestActorMiddleware_RejectsBadTokens(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	mw := NewActorMiddleware(auth.NewJWTManager("secret", ""), m)

	expired, err := auth.NewJWTManager("secret", "").Generate(&domain.Actor{ID: "u"}, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		reason string
	}{
		{"missing header", "", "missing authorization header"},
		{"wrong scheme", "Basic abc", "invalid authorization header format"},
		{"garbage token", "Bearer abc", "invalid token"},
		{"expired token", "Bearer " + expired, "expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			got, rr := captureActor(t, mw, req)

			assert.Nil(t, got)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, float64(1), testutil.ToFloat64(m.AuthFailures.WithLabelValues(tt.reason)))
		})
	}
}

func TestActorMiddleware_TrustedHeaders(t *testing.T) {
	mw := NewActorMiddleware(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	req.Header.Set(ActorIDHeader, "staff-1")
	req.Header.Set(ActorUsernameHeader, "admin")
	req.Header.Set(ActorStaffHeader, "true")
	req.Header.Set(ActorApprovedHeader, "1")

	got, rr := captureActor(t, mw, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.Actor{ID: "staff-1", Username: "admin", IsStaff: true, IsApproved: true}, *got)

	missing := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	got, rr = captureActor(t, mw, missing)
	assert.Nil(t, got)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestActorMiddleware_HeadersDefaultToUnprivileged(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	req.Header.Set(ActorIDHeader, "user-2")
	req.Header.Set(ActorStaffHeader, "yes please")

	got, _ := captureActor(t, NewActorMiddleware(nil, nil), req)

	require.NotNil(t, got)
	assert.False(t, got.IsStaff)
	assert.False(t, got.IsApproved)
}
