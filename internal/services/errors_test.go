package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOfKnownKinds(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(ErrNotFound("Registro no encontrado")))
	assert.Equal(t, http.StatusBadRequest, StatusOf(ErrBadRequest("inválido")))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(ErrUnauthorized("sin sesión")))
	assert.Equal(t, http.StatusForbidden, StatusOf(ErrForbidden("prohibido")))
	assert.Equal(t, http.StatusConflict, StatusOf(ErrConflict("asignado")))
}

func TestStatusOfUnknownErrorIs500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("conexión perdida")))
}

func TestWrapErrorPreservesServiceError(t *testing.T) {
	original := ErrNotFound("Registro no encontrado")
	wrapped := WrapError(original, "Error al buscar el registro")
	assert.Equal(t, original, wrapped)
	assert.Equal(t, http.StatusNotFound, StatusOf(wrapped))
}

func TestWrapErrorAddsContext(t *testing.T) {
	wrapped := WrapError(errors.New("conexión perdida"), "Error al listar registros")
	assert.EqualError(t, wrapped, "Error al listar registros: conexión perdida")
	assert.Equal(t, http.StatusInternalServerError, StatusOf(wrapped))
}

func TestWrapErrorNil(t *testing.T) {
	assert.NoError(t, WrapError(nil, "lo que sea"))
}
