package middleware

import (
	"context"
	"net/http"
	"strings"

	"oleo-backend/internal/auth"
	"oleo-backend/internal/repositories"
)

type contextKey string

const UserIDKey contextKey = "user_id"
const EmailKey contextKey = "email"
const RolKey contextKey = "rol"

type AuthMiddleware struct {
	jwtManager  *auth.JWTManager
	usuarioRepo *repositories.UsuarioRepository
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, usuarioRepo *repositories.UsuarioRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:  jwtManager,
		usuarioRepo: usuarioRepo,
	}
}

// Authenticate validates the bearer token and loads the current user state
// from the database so suspensions and role changes apply immediately.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := m.resolveUser(w, r)
		if !ok {
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, user.id)
		ctx = context.WithValue(ctx, EmailKey, user.email)
		ctx = context.WithValue(ctx, RolKey, user.rol)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRol ensures the authenticated user has one of the allowed roles.
func (m *AuthMiddleware) RequireRol(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := m.resolveUser(w, r)
			if !ok {
				return
			}

			hasRole := false
			for _, rol := range allowedRoles {
				if user.rol == rol {
					hasRole = true
					break
				}
			}
			if !hasRole {
				http.Error(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.id)
			ctx = context.WithValue(ctx, EmailKey, user.email)
			ctx = context.WithValue(ctx, RolKey, user.rol)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin ensures the user has the admin role.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireRol("admin")(next)
}

type resolvedUser struct {
	id    int
	email string
	rol   string
}

func (m *AuthMiddleware) resolveUser(w http.ResponseWriter, r *http.Request) (resolvedUser, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		http.Error(w, "Authorization header required", http.StatusUnauthorized)
		return resolvedUser{}, false
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
		return resolvedUser{}, false
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return resolvedUser{}, false
	}

	// Check database for current user status (for immediate permission updates)
	user, err := m.usuarioRepo.Get(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return resolvedUser{}, false
	}

	if !user.Activo {
		http.Error(w, "Account suspended. Please contact administrator.", http.StatusForbidden)
		return resolvedUser{}, false
	}

	return resolvedUser{id: user.ID, email: user.Email, rol: user.Rol}, true
}

// GetUserIDFromContext extracts user ID from request context
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

// GetRolFromContext extracts the role from request context
func GetRolFromContext(ctx context.Context) (string, bool) {
	rol, ok := ctx.Value(RolKey).(string)
	return rol, ok
}
