package middleware_test

import (
	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/permissions"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const apiKey = "internal-key"

func newRouter(t *testing.T) (*jwtMocks.MockJWT, http.Handler) {
	t.Helper()

	jwtService := jwtMocks.NewMockJWT(gomock.NewController(t))

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	perms := permissions.Get()
	require.NotNil(t, perms)

	authRole := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), perms, cfg)

	identity := func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		w.Header().Set("X-User", userID)
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)
		r.Route("/v1/bookings", func(r chi.Router) {
			r.Post("/", identity)
			r.Get("/", identity)
			r.Get("/my-bookings", identity)
		})
	})

	return jwtService, router
}

func TestAuth(t *testing.T) {
	userClaims := &jwt.Claims{UserID: "u-1", Email: "ada@example.com", Role: constant.RoleUser}

	tests := []struct {
		name       string
		method     string
		path       string
		header     http.Header
		setupMock  func(jwtService *jwtMocks.MockJWT)
		wantStatus int
		wantUser   string
	}{
		{
			name:       "protected route without token",
			method:     http.MethodGet,
			path:       "/v1/bookings/my-bookings",
			setupMock:  func(*jwtMocks.MockJWT) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "protected route with token",
			method: http.MethodGet,
			path:   "/v1/bookings/my-bookings",
			header: http.Header{constant.RequestHeaderAuthorization: {"Bearer good"}},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).Return(userClaims, nil)
			},
			wantStatus: http.StatusOK,
			wantUser:   "u-1",
		},
		{
			name:   "claims without identity",
			method: http.MethodGet,
			path:   "/v1/bookings/my-bookings",
			header: http.Header{constant.RequestHeaderAuthorization: {"Bearer empty"}},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "empty", jwt.AccessToken).Return(&jwt.Claims{}, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			method: http.MethodGet,
			path:   "/v1/bookings/my-bookings",
			header: http.Header{constant.RequestHeaderAuthorization: {"Bearer old"}},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "old", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "public route stays anonymous",
			method:     http.MethodPost,
			path:       "/v1/bookings",
			setupMock:  func(*jwtMocks.MockJWT) {},
			wantStatus: http.StatusOK,
		},
		{
			name:   "public route attaches a valid caller",
			method: http.MethodPost,
			path:   "/v1/bookings",
			header: http.Header{constant.RequestHeaderAuthorization: {"Bearer good"}},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).Return(userClaims, nil)
			},
			wantStatus: http.StatusOK,
			wantUser:   "u-1",
		},
		{
			name:   "public route ignores a bad token",
			method: http.MethodPost,
			path:   "/v1/bookings",
			header: http.Header{constant.RequestHeaderAuthorization: {"Bearer bad"}},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "bad", jwt.AccessToken).Return(nil, jwt.ErrInvalidToken)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "user role on admin route",
			method: http.MethodGet,
			path:   "/v1/bookings",
			header: http.Header{constant.RequestHeaderAuthorization: {"Bearer good"}},
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).Return(userClaims, nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "internal api key skips auth",
			method:     http.MethodGet,
			path:       "/v1/bookings",
			header:     http.Header{constant.RequestHeaderAPIKey: {apiKey}},
			setupMock:  func(*jwtMocks.MockJWT) {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong api key",
			method:     http.MethodGet,
			path:       "/v1/bookings",
			header:     http.Header{constant.RequestHeaderAPIKey: {"nope"}},
			setupMock:  func(*jwtMocks.MockJWT) {},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jwtService, router := newRouter(t)
			tt.setupMock(jwtService)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, values := range tt.header {
				req.Header.Set(key, values[0])
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, rec.Header().Get("X-User"))
		})
	}
}
