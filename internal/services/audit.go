package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/DiegoDaher/TCA-APP/internal/models"
)

const (
	AuditRegistros  = "auditoria_registros"
	AuditEliminados = "auditoria_eliminados"
)

// insertAudit appends one immutable audit row inside the caller's
// transaction, snapshotting the display fields named by the collection
// descriptor. Creates, updates and restorations land in auditoria_registros;
// deactivations in auditoria_eliminados.
func insertAudit(e sqlx.Execer, table string, col Collection, id int, record map[string]any, usuario string) error {
	snap := col.Snapshot
	_, err := e.Exec(fmt.Sprintf(`
INSERT INTO %s (tabla_afectada, id_registro, titulo, periodo, anio, tema_general, fecha_auditoria, usuario)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, table),
		col.Table, id,
		snapshotValue(record, snap.Titulo),
		snapshotValue(record, snap.Periodo),
		snapshotValue(record, snap.Anio),
		snapshotValue(record, snap.TemaGeneral),
		time.Now(), usuario)
	return err
}

func snapshotValue(record map[string]any, fieldName string) *string {
	if fieldName == "" {
		return nil
	}
	value, ok := record[fieldName].(string)
	if !ok {
		return nil
	}
	return &value
}

type AuditListOptions struct {
	Page          int
	Limit         int
	TablaAfectada string
	Usuario       string
	FechaDesde    string
	FechaHasta    string
}

type AuditListResult struct {
	Total int
	Data  []models.Auditoria
}

// ConsultaResult pairs an audit entry with the current state of the row it
// describes.
type ConsultaResult struct {
	Auditoria models.Auditoria `json:"auditoria"`
	Registro  map[string]any   `json:"registro"`
}

// GetAudit fetches one audit entry from auditoria_registros or
// auditoria_eliminados.
func GetAudit(db *sqlx.DB, table string, id int) (models.Auditoria, error) {
	var entry models.Auditoria
	err := db.Get(&entry, fmt.Sprintf(`SELECT * FROM %s WHERE id_auditoria = $1`, table), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Auditoria{}, ErrNotFound("Registro de auditoría no encontrado")
	}
	if err != nil {
		return models.Auditoria{}, WrapError(err, "Error al buscar el registro de auditoría")
	}
	return entry, nil
}

// ListAudit pages through an audit table, newest first. tabla_afectada and
// usuario filter by substring; fecha_desde/fecha_hasta bound the audit
// timestamp inclusively (whole days).
func ListAudit(db *sqlx.DB, table string, opts AuditListOptions) (AuditListResult, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}
	where, args := buildAuditWhere(opts)

	var total int
	if err := db.Get(&total, fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, table, where), args...); err != nil {
		return AuditListResult{}, WrapError(err, "Error al listar registros de auditoría")
	}

	offset := (opts.Page - 1) * opts.Limit
	query := fmt.Sprintf(`SELECT * FROM %s%s ORDER BY fecha_auditoria DESC LIMIT $%d OFFSET $%d`,
		table, where, len(args)+1, len(args)+2)
	data := []models.Auditoria{}
	if err := db.Select(&data, query, append(args, opts.Limit, offset)...); err != nil {
		return AuditListResult{}, WrapError(err, "Error al listar registros de auditoría")
	}
	return AuditListResult{Total: total, Data: data}, nil
}

// ConsultarRegistro resolves an audit entry back to the row it describes,
// via the tabla_afectada → collection mapping.
func ConsultarRegistro(db *sqlx.DB, table string, idAuditoria int) (ConsultaResult, error) {
	entry, err := GetAudit(db, table, idAuditoria)
	if err != nil {
		return ConsultaResult{}, err
	}
	if entry.TablaAfectada == nil || entry.IDRegistro == nil {
		return ConsultaResult{}, ErrBadRequest("Información insuficiente para consultar el registro (tabla_afectada o id_registro es nulo)")
	}

	tabla := strings.ToLower(*entry.TablaAfectada)
	col, ok := AuditTables[tabla]
	if !ok {
		return ConsultaResult{}, ErrNotFound(fmt.Sprintf("Tabla afectada '%s' no está soportada", *entry.TablaAfectada))
	}

	record, err := selectRecord(db, col, *entry.IDRegistro)
	if err != nil {
		return ConsultaResult{}, WrapError(err, "Error al consultar el registro")
	}
	if record == nil {
		return ConsultaResult{}, ErrNotFound(fmt.Sprintf("Registro con ID %d no encontrado en la tabla %s", *entry.IDRegistro, *entry.TablaAfectada))
	}
	return ConsultaResult{Auditoria: entry, Registro: record}, nil
}

func buildAuditWhere(opts AuditListOptions) (string, []any) {
	clauses := []string{}
	args := []any{}

	if opts.TablaAfectada != "" {
		args = append(args, "%"+opts.TablaAfectada+"%")
		clauses = append(clauses, fmt.Sprintf("tabla_afectada ILIKE $%d", len(args)))
	}
	if opts.Usuario != "" {
		args = append(args, "%"+opts.Usuario+"%")
		clauses = append(clauses, fmt.Sprintf("usuario ILIKE $%d", len(args)))
	}
	if desde, err := time.Parse(dateLayout, opts.FechaDesde); err == nil {
		args = append(args, desde)
		clauses = append(clauses, fmt.Sprintf("fecha_auditoria >= $%d", len(args)))
	}
	if hasta, err := time.Parse(dateLayout, opts.FechaHasta); err == nil {
		// whole-day inclusive upper bound
		args = append(args, hasta.AddDate(0, 0, 1))
		clauses = append(clauses, fmt.Sprintf("fecha_auditoria < $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
