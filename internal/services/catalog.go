package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// ListOptions carries the query parameters of a collection listing. Column
// filter and free-text search are mutually exclusive; Filters is always
// ANDed in (public listings pass {"Status": true}).
type ListOptions struct {
	Page    int
	Limit   int
	Column  string
	Value   string
	Q       string
	Filters map[string]any
}

type ListResult struct {
	Total int
	Data  []map[string]any
}

// CreateRecord validates the body against the collection's field table,
// inserts the row and writes the matching audit entry in one transaction.
func CreateRecord(db *sqlx.DB, col Collection, raw map[string]json.RawMessage, usuario string) (map[string]any, error) {
	values, err := ValidateFields(col.Fields, raw, true)
	if err != nil {
		return nil, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return nil, WrapError(err, "Error al crear el registro")
	}
	defer tx.Rollback()

	columns := []string{}
	placeholders := []string{}
	args := []any{}
	for _, field := range col.Fields {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		columns = append(columns, field.Column)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)+1))
		args = append(args, value)
	}

	var id int
	query := fmt.Sprintf(`INSERT INTO %s DEFAULT VALUES RETURNING id`, col.Table)
	if len(columns) > 0 {
		query = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING id`,
			col.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	}
	if err := tx.Get(&id, query, args...); err != nil {
		return nil, WrapError(err, "Error al crear el registro")
	}

	if col.SetMFN {
		if _, err := tx.Exec(fmt.Sprintf(`UPDATE %s SET mfn = id WHERE id = $1`, col.Table), id); err != nil {
			return nil, WrapError(err, "Error al crear el registro")
		}
	}

	record, err := selectRecord(tx, col, id)
	if err != nil {
		return nil, WrapError(err, "Error al crear el registro")
	}
	if err := insertAudit(tx, AuditRegistros, col, id, record, usuario); err != nil {
		return nil, WrapError(err, "Error al crear el registro")
	}
	if err := tx.Commit(); err != nil {
		return nil, WrapError(err, "Error al crear el registro")
	}
	return record, nil
}

// FindRecord returns one row by id, regardless of Status.
func FindRecord(db *sqlx.DB, col Collection, id int) (map[string]any, error) {
	record, err := selectRecord(db, col, id)
	if err != nil {
		return nil, WrapError(err, "Error al buscar el registro")
	}
	if record == nil {
		return nil, ErrNotFound("Registro no encontrado")
	}
	return record, nil
}

// ListRecords pages through a collection with optional column filter or
// free-text search. Rows come back newest first.
func ListRecords(db *sqlx.DB, col Collection, opts ListOptions) (ListResult, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}
	where, args := buildWhere(col, opts)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, col.Table, where)
	if err := db.Get(&total, countQuery, args...); err != nil {
		return ListResult{}, WrapError(err, "Error al listar registros")
	}

	offset := (opts.Page - 1) * opts.Limit
	listQuery := fmt.Sprintf(`SELECT * FROM %s%s ORDER BY id DESC LIMIT $%d OFFSET $%d`,
		col.Table, where, len(args)+1, len(args)+2)
	rows, err := db.Queryx(listQuery, append(args, opts.Limit, offset)...)
	if err != nil {
		return ListResult{}, WrapError(err, "Error al listar registros")
	}
	defer rows.Close()

	data := []map[string]any{}
	for rows.Next() {
		scanned := map[string]any{}
		if err := rows.MapScan(scanned); err != nil {
			return ListResult{}, WrapError(err, "Error al listar registros")
		}
		data = append(data, remapRecord(col, scanned))
	}
	if err := rows.Err(); err != nil {
		return ListResult{}, WrapError(err, "Error al listar registros")
	}
	return ListResult{Total: total, Data: data}, nil
}

// UpdateRecord applies a partial update: only fields present in the body
// change. An empty body is a read-only no-op.
func UpdateRecord(db *sqlx.DB, col Collection, id int, raw map[string]json.RawMessage, usuario string) (map[string]any, error) {
	values, err := ValidateFields(col.Fields, raw, false)
	if err != nil {
		return nil, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return nil, WrapError(err, "Error al actualizar el registro")
	}
	defer tx.Rollback()

	record, err := selectRecord(tx, col, id)
	if err != nil {
		return nil, WrapError(err, "Error al actualizar el registro")
	}
	if record == nil {
		return nil, ErrNotFound("Registro no encontrado")
	}
	if len(values) == 0 {
		return record, nil
	}

	assignments := []string{}
	args := []any{}
	for _, field := range col.Fields {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", field.Column, len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d`, col.Table, strings.Join(assignments, ", "), len(args))
	if _, err := tx.Exec(query, args...); err != nil {
		return nil, WrapError(err, "Error al actualizar el registro")
	}

	record, err = selectRecord(tx, col, id)
	if err != nil {
		return nil, WrapError(err, "Error al actualizar el registro")
	}
	if err := insertAudit(tx, AuditRegistros, col, id, record, usuario); err != nil {
		return nil, WrapError(err, "Error al actualizar el registro")
	}
	if err := tx.Commit(); err != nil {
		return nil, WrapError(err, "Error al actualizar el registro")
	}
	return record, nil
}

// SetRecordStatus flips the soft-delete flag. Deactivations are logged to
// auditoria_eliminados, restorations to auditoria_registros.
func SetRecordStatus(db *sqlx.DB, col Collection, id int, active bool, usuario string) (map[string]any, error) {
	tx, err := db.Beginx()
	if err != nil {
		return nil, WrapError(err, "Error al actualizar el registro")
	}
	defer tx.Rollback()

	result, err := tx.Exec(fmt.Sprintf(`UPDATE %s SET status = $1 WHERE id = $2`, col.Table), active, id)
	if err != nil {
		return nil, WrapError(err, "Error al actualizar el registro")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, WrapError(err, "Error al actualizar el registro")
	}
	if affected == 0 {
		return nil, ErrNotFound("Registro no encontrado")
	}

	record, err := selectRecord(tx, col, id)
	if err != nil {
		return nil, WrapError(err, "Error al actualizar el registro")
	}
	auditTable := AuditRegistros
	if !active {
		auditTable = AuditEliminados
	}
	if err := insertAudit(tx, auditTable, col, id, record, usuario); err != nil {
		return nil, WrapError(err, "Error al actualizar el registro")
	}
	if err := tx.Commit(); err != nil {
		return nil, WrapError(err, "Error al actualizar el registro")
	}
	return record, nil
}

func selectRecord(q sqlx.Queryer, col Collection, id int) (map[string]any, error) {
	rows, err := q.Queryx(fmt.Sprintf(`SELECT * FROM %s WHERE id = $1`, col.Table), id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	scanned := map[string]any{}
	if err := rows.MapScan(scanned); err != nil {
		return nil, err
	}
	return remapRecord(col, scanned), nil
}

// remapRecord converts a scanned row keyed by database column into the
// API shape keyed by field name, normalizing driver types along the way.
func remapRecord(col Collection, scanned map[string]any) map[string]any {
	record := make(map[string]any, len(col.Fields))
	for _, field := range col.Fields {
		value, ok := scanned[field.Column]
		if !ok {
			continue
		}
		record[field.Name] = normalizeValue(field, value)
	}
	return record
}

func normalizeValue(field Field, value any) any {
	switch v := value.(type) {
	case []byte:
		return string(v)
	case time.Time:
		if field.Kind == KindDate {
			return v.Format(dateLayout)
		}
		return v
	default:
		return value
	}
}

// buildWhere renders the WHERE clause for ListOptions. Filters are always
// ANDed; a column filter wins over q; unparseable values on typed columns
// drop the filter rather than erroring, matching the old listing behavior.
func buildWhere(col Collection, opts ListOptions) (string, []any) {
	clauses := []string{}
	args := []any{}
	next := func() int { return len(args) + 1 }

	for _, field := range col.Fields {
		value, ok := opts.Filters[field.Name]
		if !ok {
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s = $%d", field.Column, next()))
		args = append(args, value)
	}

	if opts.Column != "" && opts.Value != "" {
		if field, ok := col.FieldByName(strings.TrimSpace(opts.Column)); ok {
			if clause, arg, ok := columnClause(field, opts.Value, next()); ok {
				clauses = append(clauses, clause)
				args = append(args, arg)
			}
		}
	} else if opts.Q != "" {
		searches := []string{}
		for _, field := range col.Fields {
			if field.Kind != KindText {
				continue
			}
			searches = append(searches, fmt.Sprintf("%s ILIKE $%d", field.Column, next()))
			args = append(args, "%"+opts.Q+"%")
		}
		if len(searches) > 0 {
			clauses = append(clauses, "("+strings.Join(searches, " OR ")+")")
		}
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func columnClause(field Field, value string, placeholder int) (string, any, bool) {
	switch field.Kind {
	case KindText:
		pattern := "%" + value + "%"
		if field.Prefix {
			pattern = value + "%"
		}
		return fmt.Sprintf("%s ILIKE $%d", field.Column, placeholder), pattern, true
	case KindInt:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return "", nil, false
		}
		return fmt.Sprintf("%s = $%d", field.Column, placeholder), parsed, true
	case KindDate:
		parsed, err := time.Parse(dateLayout, strings.TrimSpace(value))
		if err != nil {
			return "", nil, false
		}
		return fmt.Sprintf("%s = $%d", field.Column, placeholder), parsed, true
	case KindBool:
		active := value == "true" || value == "1"
		return fmt.Sprintf("%s = $%d", field.Column, placeholder), active, true
	}
	return "", nil, false
}
