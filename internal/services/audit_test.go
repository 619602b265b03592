package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildAuditWhereEmpty(t *testing.T) {
	where, args := buildAuditWhere(AuditListOptions{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildAuditWhereSubstringFilters(t *testing.T) {
	where, args := buildAuditWhere(AuditListOptions{TablaAfectada: "libros", Usuario: "admin"})
	assert.Equal(t, " WHERE tabla_afectada ILIKE $1 AND usuario ILIKE $2", where)
	assert.Equal(t, []any{"%libros%", "%admin%"}, args)
}

func TestBuildAuditWhereDateRangeInclusive(t *testing.T) {
	where, args := buildAuditWhere(AuditListOptions{
		FechaDesde: "2024-01-01",
		FechaHasta: "2024-01-31",
	})
	assert.Equal(t, " WHERE fecha_auditoria >= $1 AND fecha_auditoria < $2", where)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), args[0])
	// upper bound covers the whole last day
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), args[1])
}

func TestBuildAuditWhereBadDatesIgnored(t *testing.T) {
	where, args := buildAuditWhere(AuditListOptions{FechaDesde: "ayer", FechaHasta: "31/01/2024"})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestSnapshotValue(t *testing.T) {
	record := map[string]any{"Titulo": "Crónica", "Tomo": 3}

	titulo := snapshotValue(record, "Titulo")
	if assert.NotNil(t, titulo) {
		assert.Equal(t, "Crónica", *titulo)
	}
	assert.Nil(t, snapshotValue(record, ""))
	assert.Nil(t, snapshotValue(record, "Tomo"))
	assert.Nil(t, snapshotValue(record, "Periodo"))
}
