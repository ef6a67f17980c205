package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/permissions"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type internalCallerKey struct{}

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type guard struct {
	jwtService jwt.JWT
	otel       otel.Otel
	table      *permissions.PermissionData
	apiKey     string
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, table *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &guard{
		jwtService: jwtService,
		otel:       otel,
		table:      table,
		apiKey:     cfg.App.APIKey,
	}
}

func internalCaller(ctx context.Context) bool {
	ok, _ := ctx.Value(internalCallerKey{}).(bool)

	return ok
}

// routePattern resolves the request to the chi pattern that permissions.json is keyed by.
func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil {
		return request.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
}

func (m *guard) lookup(request *http.Request) (permissions.Permission, string) {
	pattern := routePattern(request)
	if m.table == nil {
		return permissions.Permission{}, pattern
	}

	return m.table.FindPermissions(pattern, request.Method), pattern
}

// Auth validates bearer tokens.
// Public routes accept anonymous callers, but a valid token still attaches the caller identity.
func (m *guard) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		if internalCaller(ctx) {
			next.ServeHTTP(writer, request)

			return
		}

		permission, pattern := m.lookup(request)
		header := request.Header.Get(constant.RequestHeaderAuthorization)

		scope.SetAttributes(map[string]any{
			"http.route":  pattern,
			"http.method": request.Method,
			"auth.public": permission.Skip,
		})

		if permission.Skip && header == "" {
			next.ServeHTTP(writer, request)

			return
		}

		authCtx, err := m.authenticate(ctx, header)

		switch {
		case err == nil:
			next.ServeHTTP(writer, request.WithContext(authCtx))
		case permission.Skip:
			log.Debug().Err(err).Str("route", pattern).Msg("ignoring invalid credentials on public route")
			next.ServeHTTP(writer, request)
		default:
			scope.TraceError(err)
			response.WithError(writer, err)
		}
	})
}

func (m *guard) authenticate(ctx context.Context, header string) (context.Context, error) {
	if header == "" {
		return ctx, failure.Unauthorized("Missing authorization header")
	}

	token, err := jwt.ExtractTokenFromHeader(header)
	if err != nil {
		return ctx, failure.Unauthorized("Invalid authorization header format")
	}

	claims, err := m.jwtService.ValidateToken(ctx, token, jwt.AccessToken)
	if err != nil {
		return ctx, failure.Unauthorized(tokenMessage(err))
	}

	if claims.UserID == "" || claims.Email == "" {
		log.Error().Str("user_id", claims.UserID).Msg("access token carries no identity")

		return ctx, failure.Unauthorized("Invalid token claims")
	}

	ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

	return ctx, nil
}

func tokenMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, jwt.ErrRevokedToken):
		return "Token has been revoked"
	case errors.Is(err, jwt.ErrInvalidToken):
		return "Invalid token"
	case errors.Is(err, jwt.ErrInvalidClaim):
		return "Invalid token claims"
	default:
		return "Token validation failed"
	}
}

// RBAC checks the caller role against the route's allowed roles.
// Requires prior authentication via Auth.
func (m *guard) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if internalCaller(ctx) {
			next.ServeHTTP(writer, request)

			return
		}

		if m.table == nil {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		permission, _ := m.lookup(request)
		if m.table.Skip || permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
		if !permission.Allows(role) {
			scope.SetAttributes(map[string]any{
				"user_role":     role,
				"allowed_roles": permission.Permissions,
			})
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey marks requests carrying the configured service key as internal. Internal callers bypass Auth and RBAC.
func (m *guard) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		key := request.Header.Get(constant.RequestHeaderAPIKey)
		if key == "" {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.apiKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) != 1 {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, internalCallerKey{}, true)))
	})
}
