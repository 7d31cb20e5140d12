package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"pms/config"
	"pms/infras/jwt"
	"pms/infras/otel"
	"pms/permissions"
	"pms/shared/constant"
	"pms/shared/failure"
	"pms/transport/http/response"

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

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func isInternalCaller(ctx context.Context) bool {
	internal, _ := ctx.Value(internalCallerKey{}).(bool)

	return internal
}

// routePattern resolves the chi pattern of the request, empty when no route matches.
func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return ""
	}

	return rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
}

func deny(writer http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	response.WithError(writer, err)
}

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, jwt.ErrInvalidClaim):
		return "Invalid token claims"
	case errors.Is(err, jwt.ErrInvalidToken):
		return "Invalid token"
	default:
		return "Token validation failed"
	}
}

// Auth validates the bearer token and stores the operator identity in the context.
// Internal callers and endpoints marked skip pass through.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		if isInternalCaller(ctx) {
			next.ServeHTTP(writer, request)

			return
		}

		path := routePattern(request)
		if path == "" {
			next.ServeHTTP(writer, request)

			return
		}

		if permission, found := m.permission.FindPermissions(path, request.Method); found && permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			deny(writer, scope, failure.Unauthorized("Missing authorization header"))

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			deny(writer, scope, failure.Unauthorized("Invalid authorization header format"))

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("rejected access token")
			deny(writer, scope, failure.Unauthorized(unauthorizedMessage(err)))

			return
		}

		scope.SetAttribute("auth.token_id", claims.TokenID())

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID())
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID())

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks the role stored by Auth against the endpoint's allowed roles.
// Routes missing from the permissions document are denied.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if isInternalCaller(ctx) || m.permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		path := routePattern(request)
		if path == "" {
			next.ServeHTTP(writer, request)

			return
		}

		permission, found := m.permission.FindPermissions(path, request.Method)
		userRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !found || !permission.Allows(userRole) {
			scope.SetAttributes(map[string]any{
				"user_role":     userRole,
				"allowed_roles": permission.Permissions,
				"listed":        found,
			})
			deny(writer, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey lets internal services, such as the scheduler that triggers the night audit,
// bypass token authentication. Their operator is recorded as the system operator.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		expected := m.cfg.App.APIKey
		if expected == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			deny(writer, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, internalCallerKey{}, true)))
	})
}
