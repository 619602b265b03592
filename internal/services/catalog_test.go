package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWhereUnfiltered(t *testing.T) {
	where, args := buildWhere(DiarioOficial, ListOptions{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildWhereStaticFilter(t *testing.T) {
	where, args := buildWhere(DiarioOficial, ListOptions{Filters: map[string]any{"Status": true}})
	assert.Equal(t, " WHERE status = $1", where)
	assert.Equal(t, []any{true}, args)
}

func TestBuildWhereColumnContains(t *testing.T) {
	where, args := buildWhere(DiarioOficial, ListOptions{
		Column:  "Periodo",
		Value:   "enero",
		Filters: map[string]any{"Status": true},
	})
	assert.Equal(t, " WHERE status = $1 AND periodo ILIKE $2", where)
	assert.Equal(t, []any{true, "%enero%"}, args)
}

func TestBuildWhereLibrosTituloPrefix(t *testing.T) {
	where, args := buildWhere(Libros, ListOptions{Column: "Titulo", Value: "Don"})
	assert.Equal(t, " WHERE titulo ILIKE $1", where)
	assert.Equal(t, []any{"Don%"}, args)
}

func TestBuildWhereIntColumn(t *testing.T) {
	where, args := buildWhere(DiarioOficial, ListOptions{Column: "Tomo", Value: "7"})
	assert.Equal(t, " WHERE tomo = $1", where)
	assert.Equal(t, []any{7}, args)
}

func TestBuildWhereUnparseableValueDropsFilter(t *testing.T) {
	where, args := buildWhere(DiarioOficial, ListOptions{Column: "Tomo", Value: "siete"})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildWhereUnknownColumnIgnored(t *testing.T) {
	where, _ := buildWhere(DiarioOficial, ListOptions{Column: "Inventada", Value: "x"})
	assert.Empty(t, where)
}

func TestBuildWhereBoolColumn(t *testing.T) {
	where, args := buildWhere(DiarioOficial, ListOptions{Column: "Status", Value: "1"})
	assert.Equal(t, " WHERE status = $1", where)
	assert.Equal(t, []any{true}, args)

	_, args = buildWhere(DiarioOficial, ListOptions{Column: "Status", Value: "no"})
	assert.Equal(t, []any{false}, args)
}

func TestBuildWhereQSearchesTextColumns(t *testing.T) {
	where, args := buildWhere(DiarioOficial, ListOptions{Q: "1905"})
	assert.Equal(t, " WHERE (anio ILIKE $1 OR periodo ILIKE $2)", where)
	assert.Equal(t, []any{"%1905%", "%1905%"}, args)
}

func TestBuildWhereColumnWinsOverQ(t *testing.T) {
	where, args := buildWhere(DiarioOficial, ListOptions{Column: "Periodo", Value: "enero", Q: "1905"})
	assert.Equal(t, " WHERE periodo ILIKE $1", where)
	assert.Equal(t, []any{"%enero%"}, args)
}

func TestColumnClauseDate(t *testing.T) {
	field, ok := DiarioOficial.FieldByName("Fecha_de_creacion")
	require.True(t, ok)

	clause, arg, ok := columnClause(field, "2024-05-01", 1)
	require.True(t, ok)
	assert.Equal(t, "fecha_de_creacion = $1", clause)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), arg)

	_, _, ok = columnClause(field, "mayo", 1)
	assert.False(t, ok)
}

func TestRemapRecordUsesAPINames(t *testing.T) {
	record := remapRecord(DiarioOficial, map[string]any{
		"id":                int64(12),
		"anio":              "1905",
		"tomo":              int64(3),
		"periodo":           []byte("Enero-Junio"),
		"fecha_de_creacion": time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		"status":            true,
	})
	assert.Equal(t, int64(12), record["Id"])
	assert.Equal(t, "1905", record["Año"])
	assert.Equal(t, "Enero-Junio", record["Periodo"])
	assert.Equal(t, "2024-05-01", record["Fecha_de_creacion"])
	assert.Equal(t, true, record["Status"])
	assert.NotContains(t, record, "anio")
}
