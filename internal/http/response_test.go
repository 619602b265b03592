package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiegoDaher/TCA-APP/internal/services"
)

func TestNewPagination(t *testing.T) {
	pagination := NewPagination(25, 3, 10)
	assert.Equal(t, 25, pagination.Total)
	assert.Equal(t, 3, pagination.Page)
	assert.Equal(t, 3, pagination.TotalPages)

	assert.Equal(t, 0, NewPagination(0, 1, 10).TotalPages)
	assert.Equal(t, 1, NewPagination(10, 1, 10).TotalPages)
	assert.Equal(t, 2, NewPagination(11, 1, 10).TotalPages)
}

func TestWriteServiceErrorUsesErrorKind(t *testing.T) {
	recorder := httptest.NewRecorder()
	WriteServiceError(recorder, services.ErrNotFound("Registro no encontrado"))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	body := map[string]string{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Registro no encontrado", body["error"])
}

func TestWriteServiceErrorHidesInternals(t *testing.T) {
	recorder := httptest.NewRecorder()
	WriteServiceError(recorder, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	body := map[string]string{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Error interno del servidor", body["error"])
}

func TestWritePagedShape(t *testing.T) {
	recorder := httptest.NewRecorder()
	WritePaged(recorder, "Registros obtenidos exitosamente", []string{"a"}, NewPagination(1, 1, 10))

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Registros obtenidos exitosamente", body["message"])
	assert.Contains(t, body, "data")
	assert.Contains(t, body, "pagination")
}

func TestPositiveParam(t *testing.T) {
	value, err := positiveParam("", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, value)

	value, err = positiveParam("3", 10)
	require.NoError(t, err)
	assert.Equal(t, 3, value)

	_, err = positiveParam("0", 10)
	assert.Error(t, err)
	_, err = positiveParam("-2", 10)
	assert.Error(t, err)
	_, err = positiveParam("muchos", 10)
	assert.Error(t, err)
}
