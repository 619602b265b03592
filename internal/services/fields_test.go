package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawBody(t *testing.T, payload string) map[string]json.RawMessage {
	t.Helper()
	raw := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return raw
}

func TestValidateFieldsRequiredMissing(t *testing.T) {
	_, err := ValidateFields(DiarioOficial.Fields, rawBody(t, `{"Tomo": 3}`), true)
	require.Error(t, err)
	assert.Equal(t, `El campo "Año" es requerido y debe ser una cadena de texto.`, err.Error())
}

func TestValidateFieldsRequiredEmptyString(t *testing.T) {
	_, err := ValidateFields(DiarioOficial.Fields, rawBody(t, `{"Año": "", "Tomo": 3}`), true)
	require.Error(t, err)
	assert.Equal(t, `El campo "Año" es requerido y debe ser una cadena de texto.`, err.Error())
}

func TestValidateFieldsRequiredWrongType(t *testing.T) {
	_, err := ValidateFields(DiarioOficial.Fields, rawBody(t, `{"Año": "1905", "Tomo": "tres"}`), true)
	require.Error(t, err)
	assert.Equal(t, `El campo "Tomo" debe ser un número entero.`, err.Error())
}

func TestValidateFieldsIntMustBeInteger(t *testing.T) {
	_, err := ValidateFields(DiarioOficial.Fields, rawBody(t, `{"Año": "1905", "Tomo": 3.5}`), true)
	require.Error(t, err)
	assert.Equal(t, `El campo "Tomo" debe ser un número entero.`, err.Error())
}

func TestValidateFieldsMaxLenRequiredField(t *testing.T) {
	_, err := ValidateFields(DiarioOficial.Fields,
		rawBody(t, `{"Año": "12345678901234567", "Tomo": 3}`), true)
	require.Error(t, err)
	assert.Equal(t, `El campo "Año" no puede exceder los 16 caracteres.`, err.Error())
}

func TestValidateFieldsMaxLenOptionalField(t *testing.T) {
	long := make([]byte, 0, 160)
	for i := 0; i < 151; i++ {
		long = append(long, 'x')
	}
	_, err := ValidateFields(DiarioOficial.Fields,
		rawBody(t, `{"Año": "1905", "Tomo": 3, "Periodo": "`+string(long)+`"}`), true)
	require.Error(t, err)
	assert.Equal(t, `El campo "Periodo" debe ser una cadena de texto de máximo 150 caracteres.`, err.Error())
}

func TestValidateFieldsMaxLenCountsRunes(t *testing.T) {
	// 16 multibyte characters fit exactly in a 16-char field
	values, err := ValidateFields(DiarioOficial.Fields,
		rawBody(t, `{"Año": "áéíóúáéíóúáéíóúá", "Tomo": 3}`), true)
	require.NoError(t, err)
	assert.Equal(t, "áéíóúáéíóúáéíóúá", values["Año"])
}

func TestValidateFieldsDate(t *testing.T) {
	values, err := ValidateFields(DiarioOficial.Fields,
		rawBody(t, `{"Año": "1905", "Tomo": 3, "Fecha_de_creacion": "1999-12-31"}`), true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC), values["Fecha_de_creacion"])

	_, err = ValidateFields(DiarioOficial.Fields,
		rawBody(t, `{"Año": "1905", "Tomo": 3, "Fecha_de_creacion": "ayer"}`), true)
	require.Error(t, err)
	assert.Equal(t, `El campo "Fecha_de_creacion" debe ser una fecha válida (formato YYYY-MM-DD).`, err.Error())
}

func TestValidateFieldsBoolStrict(t *testing.T) {
	_, err := ValidateFields(DiarioOficial.Fields,
		rawBody(t, `{"Año": "1905", "Tomo": 3, "Status": "true"}`), true)
	require.Error(t, err)
	assert.Equal(t, `El campo "Status" debe ser un booleano (true/false).`, err.Error())

	values, err := ValidateFields(DiarioOficial.Fields,
		rawBody(t, `{"Año": "1905", "Tomo": 3, "Status": false}`), true)
	require.NoError(t, err)
	assert.Equal(t, false, values["Status"])
}

func TestValidateFieldsUpdateSkipsAbsent(t *testing.T) {
	values, err := ValidateFields(Libros.Fields, rawBody(t, `{"Autor": "Cervantes"}`), false)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Autor": "Cervantes"}, values)
}

func TestValidateFieldsUpdateEmptyBody(t *testing.T) {
	values, err := ValidateFields(Libros.Fields, rawBody(t, `{}`), false)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestValidateFieldsIgnoresUnknownAndReadOnly(t *testing.T) {
	values, err := ValidateFields(Libros.Fields,
		rawBody(t, `{"Id": 99, "MFN": 42, "Inventado": "x", "Idioma": "Español"}`), true)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Idioma": "Español"}, values)
}

func TestValidateFieldsLibrosOptionalLimits(t *testing.T) {
	_, err := ValidateFields(Libros.Fields,
		rawBody(t, `{"Idioma": "una lengua con nombre demasiado largo"}`), true)
	require.Error(t, err)
	assert.Equal(t, `El campo "Idioma" debe ser una cadena de texto de máximo 20 caracteres.`, err.Error())
}

func TestValidateFieldsDurangoRequiredSet(t *testing.T) {
	values, err := ValidateFields(ColeccionDurango.Fields,
		rawBody(t, `{"Letra": "A", "Titulo": "Crónica", "Autor": "Anónimo", "Ejemplares": 2}`), true)
	require.NoError(t, err)
	assert.Equal(t, "A", values["Letra"])
	assert.Equal(t, 2, values["Ejemplares"])

	_, err = ValidateFields(ColeccionDurango.Fields,
		rawBody(t, `{"Titulo": "Crónica", "Autor": "Anónimo", "Ejemplares": 2}`), true)
	require.Error(t, err)
	assert.Equal(t, `El campo "Letra" es requerido y debe ser una cadena de texto.`, err.Error())
}
