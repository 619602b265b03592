package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/DiegoDaher/TCA-APP/internal/services"
)

func (s *Server) MetricsHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 120)
	if limit > 500 {
		limit = 500
	}
	items, err := services.LatestMetrics(s.DB, limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}
	WriteData(w, http.StatusOK, "Métricas obtenidas exitosamente", items)
}

// MetricsSocket streams live samples to the admin dashboard. Browsers can't
// set headers on websocket upgrades, so the token rides in the query string.
func (s *Server) MetricsSocket(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		WriteError(w, http.StatusUnauthorized, "Acceso denegado. No se proporcionó un token de autenticación.")
		return
	}
	userID, err := s.Tokens.ParseToken(tokenStr)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	user, err := services.GetUsuario(s.DB, userID)
	if err != nil || user.Status != 1 {
		WriteError(w, http.StatusUnauthorized, "Usuario inactivo. Contacta al administrador.")
		return
	}
	isAdmin, err := services.UserHasRole(s.DB, user.ID, "administrador")
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if !isAdmin {
		WriteError(w, http.StatusForbidden, "No tienes permisos para realizar esta acción.")
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.MetricsHub.Add(conn)
	defer func() {
		s.MetricsHub.Remove(conn)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
