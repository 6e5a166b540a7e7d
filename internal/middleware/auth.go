package middleware

import (
	"context"
	"net/http"
	"strings"

	"dsny-backend/internal/models"
	"dsny-backend/pkg/utils"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserContextKey contextKey = "user"

type UserClaims struct {
	UserID   string `json:"user_id"`
	WorkerID string `json:"worker_id,omitempty"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the caller has the admin role.
func (c UserClaims) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// Auth validates the bearer JWT and adds user claims to the request context.
func Auth(jwtSecret string, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if jwtSecret == "" {
				logger.Error("❌ JWT secret not configured")
				utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				logger.Debug("🔐 Missing or malformed authorization header", "method", r.Method, "path", r.URL.Path)
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("❌ Invalid token", "path", r.URL.Path, "err", err)
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			userClaims := UserClaims{
				UserID:   stringClaim(claims, "user_id"),
				WorkerID: stringClaim(claims, "worker_id"),
				Email:    stringClaim(claims, "email"),
				Role:     stringClaim(claims, "role"),
			}
			if userClaims.UserID == "" || userClaims.Role == "" {
				logger.Warn("❌ Token is missing required claims", "path", r.URL.Path)
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			logger.Debug("✅ Authenticated", "email", userClaims.Email, "role", userClaims.Role)
			ctx := context.WithValue(r.Context(), UserContextKey, userClaims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole middleware checks if user has required role (must be used after Auth)
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := GetUserFromContext(r)
			if !ok {
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			if userClaims.Role != role {
				utils.RespondError(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext extracts user claims from request context
func GetUserFromContext(r *http.Request) (UserClaims, bool) {
	userClaims, ok := r.Context().Value(UserContextKey).(UserClaims)
	return userClaims, ok
}

// WithUser returns ctx carrying claims, as Auth would set them.
func WithUser(ctx context.Context, claims UserClaims) context.Context {
	return context.WithValue(ctx, UserContextKey, claims)
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
