package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/DiegoDaher/TCA-APP/internal/services"
)

type roleRequest struct {
	Nombre      *string `json:"nombre"`
	Slug        *string `json:"slug"`
	Descripcion *string `json:"descripcion"`
}

type assignmentRequest struct {
	UsuarioID   int   `json:"usuario_id"`
	RolID       int64 `json:"rol_id"`
	AsignadoPor *int  `json:"asignado_por"`
}

func pathInt64(r *http.Request, name string) (int64, bool) {
	value, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || value < 1 {
		return 0, false
	}
	return value, true
}

func (s *Server) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "El cuerpo de la petición debe ser un objeto JSON válido.")
		return
	}
	if req.Nombre == nil || *req.Nombre == "" || req.Slug == nil || *req.Slug == "" {
		WriteError(w, http.StatusBadRequest, "Los campos nombre y slug son obligatorios.")
		return
	}
	role, err := services.CreateRole(s.DB, *req.Nombre, *req.Slug, req.Descripcion)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Rol creado exitosamente",
		"role":    role,
	})
}

func (s *Server) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := services.ListRoles(s.DB)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Roles obtenidos exitosamente",
		"roles":   roles,
	})
}

func (s *Server) GetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "El ID debe ser un número entero.")
		return
	}
	role, err := services.GetRole(s.DB, id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Rol obtenido exitosamente",
		"role":    role,
	})
}

func (s *Server) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "El ID debe ser un número entero.")
		return
	}
	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "El cuerpo de la petición debe ser un objeto JSON válido.")
		return
	}
	if req.Nombre == nil && req.Slug == nil && req.Descripcion == nil {
		WriteError(w, http.StatusBadRequest, "No se proporcionaron campos para actualizar.")
		return
	}
	role, err := services.UpdateRole(s.DB, id, req.Nombre, req.Slug, req.Descripcion)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Rol actualizado exitosamente",
		"role":    role,
	})
}

func (s *Server) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		WriteError(w, http.StatusBadRequest, "El ID debe ser un número entero.")
		return
	}
	if err := services.DeleteRole(s.DB, id); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Rol eliminado exitosamente",
	})
}

// AssignRole gives a user their single role, replacing any different one
// they already held. Re-assigning the same role answers 200 without writing.
func (s *Server) AssignRole(w http.ResponseWriter, r *http.Request) {
	var req assignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "El cuerpo de la petición debe ser un objeto JSON válido.")
		return
	}
	if req.UsuarioID == 0 || req.RolID == 0 {
		WriteError(w, http.StatusBadRequest, "Los campos usuario_id y rol_id son obligatorios.")
		return
	}
	asignadoPor := req.AsignadoPor
	if asignadoPor == nil {
		if user, ok := CurrentUser(r); ok {
			id := user.Usuario.ID
			asignadoPor = &id
		}
	}

	result, err := services.AssignRole(s.DB, req.UsuarioID, req.RolID, asignadoPor)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	switch {
	case result.AlreadyHad:
		WriteJSON(w, http.StatusOK, map[string]any{
			"message":    "El usuario ya tiene este rol asignado",
			"assignment": result.Assignment,
		})
	case result.Created:
		WriteJSON(w, http.StatusCreated, map[string]any{
			"message":    "Rol asignado exitosamente",
			"assignment": result.Assignment,
		})
	default:
		WriteJSON(w, http.StatusOK, map[string]any{
			"message":    "Rol actualizado exitosamente",
			"assignment": result.Assignment,
		})
	}
}

func (s *Server) RemoveRole(w http.ResponseWriter, r *http.Request) {
	var req assignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "El cuerpo de la petición debe ser un objeto JSON válido.")
		return
	}
	if req.UsuarioID == 0 || req.RolID == 0 {
		WriteError(w, http.StatusBadRequest, "Los campos usuario_id y rol_id son obligatorios.")
		return
	}
	if err := services.RemoveRole(s.DB, req.UsuarioID, req.RolID); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Rol removido exitosamente del usuario",
	})
}

func (s *Server) GetUserRoles(w http.ResponseWriter, r *http.Request) {
	usuarioID, err := strconv.Atoi(chi.URLParam(r, "usuario_id"))
	if err != nil || usuarioID < 1 {
		WriteError(w, http.StatusBadRequest, "El ID debe ser un número entero.")
		return
	}
	roles, err := services.GetUserRoles(s.DB, usuarioID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message":    "Roles del usuario obtenidos exitosamente",
		"usuario_id": usuarioID,
		"roles":      roles,
	})
}

func (s *Server) GetUsersByRole(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	role, users, err := services.GetUsersByRole(s.DB, slug)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Usuarios con el rol obtenidos exitosamente",
		"role": map[string]any{
			"id":     role.ID,
			"nombre": role.Nombre,
			"slug":   role.Slug,
		},
		"users": users,
	})
}

func (s *Server) CheckUserRole(w http.ResponseWriter, r *http.Request) {
	usuarioID, err := strconv.Atoi(chi.URLParam(r, "usuario_id"))
	if err != nil || usuarioID < 1 {
		WriteError(w, http.StatusBadRequest, "El ID debe ser un número entero.")
		return
	}
	slug := chi.URLParam(r, "slug")
	user, err := services.GetUsuario(s.DB, usuarioID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	hasRole, err := services.UserHasRole(s.DB, user.ID, slug)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message":    "Verificación completada",
		"usuario_id": usuarioID,
		"slug":       slug,
		"tiene_rol":  hasRole,
	})
}

func (s *Server) UsersRoleCount(w http.ResponseWriter, r *http.Request) {
	counts, err := services.CountRolesPerUser(s.DB)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Usuarios con cantidad de roles obtenidos exitosamente",
		"users":   counts,
	})
}
