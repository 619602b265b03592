package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/DiegoDaher/TCA-APP/internal/services"
)

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func decodeBody(r *http.Request) (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// actor returns the audit identity of the authenticated caller.
func actor(r *http.Request) string {
	if user, ok := CurrentUser(r); ok {
		return user.Usuario.CorreoElectronico
	}
	return ""
}

func (s *Server) CreateCollectionRecord(col services.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := decodeBody(r)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "El cuerpo de la petición debe ser un objeto JSON válido.")
			return
		}
		record, err := services.CreateRecord(s.DB, col, raw, actor(r))
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteData(w, http.StatusCreated, "Registro agregado exitosamente", record)
	}
}

func (s *Server) GetCollectionRecord(col services.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			WriteError(w, http.StatusBadRequest, "El ID debe ser un número entero.")
			return
		}
		record, err := services.FindRecord(s.DB, col, id)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteData(w, http.StatusOK, "Registro obtenido exitosamente", record)
	}
}

// ListCollection serves the public listing: active rows only, paginated,
// with either a column filter or a free-text search.
func (s *Server) ListCollection(col services.Collection) http.HandlerFunc {
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

		result, err := services.ListRecords(s.DB, col, services.ListOptions{
			Page:    page,
			Limit:   limit,
			Column:  query.Get("column"),
			Value:   query.Get("value"),
			Q:       query.Get("q"),
			Filters: map[string]any{"Status": true},
		})
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WritePaged(w, "Registros obtenidos exitosamente", result.Data, NewPagination(result.Total, page, limit))
	}
}

func (s *Server) CollectionColumns(col services.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]any{
			"message": "Columnas disponibles obtenidas exitosamente",
			"columns": col.ColumnNames(),
		})
	}
}

func (s *Server) UpdateCollectionRecord(col services.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			WriteError(w, http.StatusBadRequest, "El ID debe ser un número entero.")
			return
		}
		raw, err := decodeBody(r)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "El cuerpo de la petición debe ser un objeto JSON válido.")
			return
		}
		record, err := services.UpdateRecord(s.DB, col, id, raw, actor(r))
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteData(w, http.StatusOK, "Registro actualizado exitosamente", record)
	}
}

func (s *Server) DeactivateCollectionRecord(col services.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			WriteError(w, http.StatusBadRequest, "El ID debe ser un número entero.")
			return
		}
		record, err := services.SetRecordStatus(s.DB, col, id, false, actor(r))
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteData(w, http.StatusOK, "Registro dado de baja exitosamente (Status cambiado a 0)", record)
	}
}

func (s *Server) RestoreCollectionRecord(col services.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			WriteError(w, http.StatusBadRequest, "El ID debe ser un número entero.")
			return
		}
		record, err := services.SetRecordStatus(s.DB, col, id, true, actor(r))
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteData(w, http.StatusOK, "Registro restaurado exitosamente (Status cambiado a 1)", record)
	}
}

// positiveParam parses a page/limit query value, keeping the fallback when
// the parameter is absent and rejecting zero, negatives and garbage.
func positiveParam(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return 0, errInvalidParam
	}
	return parsed, nil
}

var errInvalidParam = errors.New("invalid parameter")
