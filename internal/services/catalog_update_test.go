package services

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diarioRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "anio", "tomo", "periodo", "fecha_de_creacion", "status"}).
		AddRow(5, "2020", 3, "Enero-Junio", time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), true)
}

func TestUpdateRecordEmptyBodyIssuesNoUpdate(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM diario_oficial WHERE id = $1`)).
		WithArgs(5).
		WillReturnRows(diarioRows())
	mock.ExpectRollback()

	record, err := UpdateRecord(db, DiarioOficial, 5, map[string]json.RawMessage{}, "admin@tca.mx")
	require.NoError(t, err)
	assert.Equal(t, "2020", record["Año"])
	assert.Equal(t, "Enero-Junio", record["Periodo"])
	// no UPDATE and no audit insert were expected, and none ran
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRecordReadOnlyFieldsAreANoOp(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM diario_oficial WHERE id = $1`)).
		WithArgs(5).
		WillReturnRows(diarioRows())
	mock.ExpectRollback()

	body := map[string]json.RawMessage{"Id": json.RawMessage(`99`)}
	record, err := UpdateRecord(db, DiarioOficial, 5, body, "admin@tca.mx")
	require.NoError(t, err)
	assert.EqualValues(t, 5, record["Id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
