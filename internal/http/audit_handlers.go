package httpapi

import (
	"net/http"

	"github.com/DiegoDaher/TCA-APP/internal/services"
)

func auditListMessage(table string) string {
	if table == services.AuditEliminados {
		return "Registros eliminados de auditoría obtenidos exitosamente"
	}
	return "Registros de auditoría obtenidos exitosamente"
}

func auditGetMessage(table string) string {
	if table == services.AuditEliminados {
		return "Registro eliminado de auditoría obtenido exitosamente"
	}
	return "Registro de auditoría obtenido exitosamente"
}

func (s *Server) ListAuditoria(table string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		page, err := positiveParam(query.Get("page"), 1)
		if err != nil {
			WriteError(w, http.StatusBadRequest, `El parámetro "page" debe ser un número entero positivo.`)
			return
		}
		limit, err := positiveParam(query.Get("limit"), 10)
		if err != nil {
			WriteError(w, http.StatusBadRequest, `El parámetro "limit" debe ser un número entero positivo.`)
			return
		}

		result, err := services.ListAudit(s.DB, table, services.AuditListOptions{
			Page:          page,
			Limit:         limit,
			TablaAfectada: query.Get("tabla_afectada"),
			Usuario:       query.Get("usuario"),
			FechaDesde:    query.Get("fecha_desde"),
			FechaHasta:    query.Get("fecha_hasta"),
		})
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WritePaged(w, auditListMessage(table), result.Data, NewPagination(result.Total, page, limit))
	}
}

func (s *Server) GetAuditoria(table string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			WriteError(w, http.StatusBadRequest, "El ID debe ser un número entero.")
			return
		}
		entry, err := services.GetAudit(s.DB, table, id)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteData(w, http.StatusOK, auditGetMessage(table), entry)
	}
}

// ConsultarAuditoria resolves an audit entry back to the live row it points
// at, for the "view original record" action in the audit screens.
func (s *Server) ConsultarAuditoria(table string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			WriteError(w, http.StatusBadRequest, "El ID debe ser un número entero.")
			return
		}
		result, err := services.ConsultarRegistro(s.DB, table, id)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteData(w, http.StatusOK, "Registro consultado exitosamente", result)
	}
}
