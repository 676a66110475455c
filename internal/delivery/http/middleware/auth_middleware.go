package middleware

import (
	"context"
	"net/http"
	"strings"

	"cleaning-service-scheduler/internal/domain/entity"
	"cleaning-service-scheduler/internal/service"
	"cleaning-service-scheduler/pkg/jwt"
	"cleaning-service-scheduler/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const TokenIDKey contextKey = "token_id"

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	tokenStore service.TokenStore
	log        *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, tokenStore service.TokenStore, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		tokenStore: tokenStore,
		log:        log,
	}
}

// Authenticate requires a live access token. A missing header is 401; a
// token that is malformed, expired or revoked is 403.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		ctx, status, message := m.authenticate(r.Context(), tokenString)
		if status != http.StatusOK {
			response.Error(w, status, message, nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthenticate attaches the actor when a valid token is present and
// otherwise lets the request through anonymously. A token that is present
// but invalid is still rejected.
func (m *AuthMiddleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx, status, message := m.authenticate(r.Context(), tokenString)
		if status != http.StatusOK {
			response.Error(w, status, message, nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) authenticate(ctx context.Context, tokenString string) (context.Context, int, string) {
	claims, err := m.jwtService.ValidateToken(tokenString)
	if err != nil {
		return ctx, http.StatusForbidden, "Invalid or expired token"
	}

	if claims.TokenType != jwt.AccessToken {
		return ctx, http.StatusForbidden, "Invalid token type"
	}

	role := entity.Role(claims.Role)
	if !role.Valid() {
		return ctx, http.StatusForbidden, "Invalid token role"
	}

	// Check if token exists in Redis (not revoked)
	exists, err := m.tokenStore.Exists(ctx, jwt.AccessToken, role, claims.SubjectID, claims.TokenID)
	if err != nil {
		m.log.Warnf("Failed to check access token in Redis: %+v", err)
		return ctx, http.StatusInternalServerError, "Failed to validate token"
	}
	if !exists {
		return ctx, http.StatusForbidden, "Token has been revoked"
	}

	ctx = entity.WithActor(ctx, entity.Actor{Role: role, ID: claims.SubjectID})
	ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)
	return ctx, http.StatusOK, ""
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetTokenIDFromContext extracts the access token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}

// RequireRole rejects actors whose role is not listed. It must run after
// Authenticate.
func RequireRole(roles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := entity.ActorFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}
