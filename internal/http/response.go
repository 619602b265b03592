package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DiegoDaher/TCA-APP/internal/services"
)

// Pagination mirrors the shape the frontend tables consume.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

func NewPagination(total, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

type dataResponse struct {
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteData(w http.ResponseWriter, status int, message string, data interface{}) {
	WriteJSON(w, status, dataResponse{Message: message, Data: data})
}

func WritePaged(w http.ResponseWriter, message string, data interface{}, pagination Pagination) {
	WriteJSON(w, http.StatusOK, dataResponse{Message: message, Data: data, Pagination: &pagination})
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorResponse{Error: message})
}

// WriteServiceError maps a service failure to its HTTP status via the error
// kind, never by inspecting message text. Unexpected errors surface as a
// generic 500 so internals don't leak.
func WriteServiceError(w http.ResponseWriter, err error) {
	var svcErr services.ServiceError
	if errors.As(err, &svcErr) {
		WriteError(w, svcErr.Status, svcErr.Message)
		return
	}
	WriteError(w, http.StatusInternalServerError, "Error interno del servidor")
}
