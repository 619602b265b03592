package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/DiegoDaher/TCA-APP/internal/models"
	"github.com/DiegoDaher/TCA-APP/internal/services"
)

type contextKey string

const ctxAuthUser contextKey = "authUser"

// AuthUser is the authenticated identity attached to the request context:
// the user row plus their roles (at most one under the assignment invariant,
// but the contract tolerates a list).
type AuthUser struct {
	Usuario   models.Usuario        `json:"user"`
	Roles     []services.UsuarioRol `json:"roles"`
	RoleSlugs []string              `json:"roleSlugs"`
}

func (a AuthUser) HasRole(slug string) bool {
	for _, s := range a.RoleSlugs {
		if s == slug {
			return true
		}
	}
	return false
}

// WithAuth verifies the bearer token, re-loads the user from the database
// and gates on the account status, so a deactivated user is cut off even
// while holding an unexpired token.
func WithAuth(db *sqlx.DB, tokens services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "Acceso denegado. No se proporcionó un token de autenticación.")
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			userID, err := tokens.ParseToken(tokenStr)
			if err != nil {
				WriteServiceError(w, err)
				return
			}

			user, err := services.GetUsuario(db, userID)
			if err != nil {
				if services.StatusOf(err) == http.StatusNotFound {
					WriteError(w, http.StatusUnauthorized, "Usuario no encontrado. Token inválido.")
					return
				}
				WriteServiceError(w, err)
				return
			}
			if user.Status != 1 {
				WriteError(w, http.StatusUnauthorized, "Usuario inactivo. Contacta al administrador.")
				return
			}

			roles, err := services.GetUserRoles(db, user.ID)
			if err != nil {
				WriteServiceError(w, err)
				return
			}
			slugs := make([]string, 0, len(roles))
			for _, role := range roles {
				slugs = append(slugs, role.Slug)
			}

			authUser := AuthUser{Usuario: user, Roles: roles, RoleSlugs: slugs}
			ctx := context.WithValue(r.Context(), ctxAuthUser, authUser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentUser(r *http.Request) (AuthUser, bool) {
	user, ok := r.Context().Value(ctxAuthUser).(AuthUser)
	return user, ok
}

func RequireRole(slug string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUser(r)
			if !ok || !user.HasRole(slug) {
				WriteError(w, http.StatusForbidden, "No tienes permisos para realizar esta acción.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
