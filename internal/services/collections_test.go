package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnNamesKeepDeclarationOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"Id", "Año", "Tomo", "Periodo", "Fecha_de_creacion", "Status"},
		DiarioOficial.ColumnNames())
}

func TestLibrosCarriesMFN(t *testing.T) {
	assert.True(t, Libros.SetMFN)
	field, ok := Libros.FieldByName("MFN")
	require.True(t, ok)
	assert.True(t, field.ReadOnly)
}

func TestAuditTablesColeccionAlias(t *testing.T) {
	assert.Equal(t, Libros.Table, AuditTables["coleccion"].Table)
	assert.Equal(t, Libros.Table, AuditTables["libros"].Table)
	assert.Equal(t, DiarioOficial.Table, AuditTables["diario_oficial"].Table)
	_, ok := AuditTables["usuarios"]
	assert.False(t, ok)
}

func TestSnapshotMappingsPerCollection(t *testing.T) {
	assert.Equal(t, Snapshot{Periodo: "Periodo", Anio: "Año"}, DiarioOficial.Snapshot)
	assert.Equal(t, Snapshot{Titulo: "Titulo", Anio: "Año"}, Periodicos.Snapshot)
	assert.Equal(t, Snapshot{Titulo: "Titulo", Anio: "Año"}, ColeccionDurango.Snapshot)
	assert.Equal(t, Snapshot{Titulo: "Titulo", TemaGeneral: "Tema_general"}, Libros.Snapshot)
}

func TestEveryFieldHasColumn(t *testing.T) {
	for _, col := range Collections {
		for _, field := range col.Fields {
			assert.NotEmpty(t, field.Column, "%s.%s", col.Table, field.Name)
		}
	}
}
