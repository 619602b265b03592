package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/DiegoDaher/TCA-APP/internal/models"
)

// UsuarioRol is one role held by a user, as returned by the /roles/user
// queries.
type UsuarioRol struct {
	ID          int64     `db:"id" json:"id"`
	Nombre      string    `db:"nombre" json:"nombre"`
	Slug        string    `db:"slug" json:"slug"`
	Descripcion *string   `db:"descripcion" json:"descripcion"`
	AsignadoEn  time.Time `db:"asignado_en" json:"asignado_en"`
}

// RolMiembro is one user holding a given role.
type RolMiembro struct {
	ID                int       `db:"id" json:"Id"`
	Nombres           *string   `db:"nombres" json:"Nombres"`
	Apellidos         *string   `db:"apellidos" json:"Apellidos"`
	CorreoElectronico string    `db:"correo_electronico" json:"Correo_Electronico"`
	AsignadoEn        time.Time `db:"asignado_en" json:"asignado_en"`
}

// ConteoRoles is the diagnostic role-count aggregate per user.
type ConteoRoles struct {
	UsuarioID         int     `db:"usuario_id" json:"usuario_id"`
	Nombres           *string `db:"nombres" json:"Nombres"`
	Apellidos         *string `db:"apellidos" json:"Apellidos"`
	CorreoElectronico string  `db:"correo_electronico" json:"Correo_Electronico"`
	CantidadRoles     int     `db:"cantidad_roles" json:"cantidad_roles"`
}

// AssignResult reports how an assignment request was resolved: a fresh
// assignment (Created), a replacement of a different role, or a no-op
// because the user already held exactly that role.
type AssignResult struct {
	Assignment models.RolUsuario
	Created    bool
	AlreadyHad bool
}

func CreateRole(db *sqlx.DB, nombre, slug string, descripcion *string) (models.Rol, error) {
	var role models.Rol
	err := db.Get(&role, `
INSERT INTO roles (nombre, slug, descripcion)
VALUES ($1, $2, $3)
RETURNING *
`, nombre, slug, descripcion)
	if err != nil {
		return models.Rol{}, WrapError(err, "Error al crear rol")
	}
	return role, nil
}

func ListRoles(db *sqlx.DB) ([]models.Rol, error) {
	roles := []models.Rol{}
	if err := db.Select(&roles, `SELECT * FROM roles ORDER BY id ASC`); err != nil {
		return nil, WrapError(err, "Error al obtener roles")
	}
	return roles, nil
}

func GetRole(db *sqlx.DB, id int64) (models.Rol, error) {
	var role models.Rol
	err := db.Get(&role, `SELECT * FROM roles WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Rol{}, ErrNotFound("Rol no encontrado")
	}
	if err != nil {
		return models.Rol{}, WrapError(err, "Error al obtener rol")
	}
	return role, nil
}

func GetRoleBySlug(db *sqlx.DB, slug string) (models.Rol, error) {
	var role models.Rol
	err := db.Get(&role, `SELECT * FROM roles WHERE slug = $1`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Rol{}, ErrNotFound("Rol no encontrado")
	}
	if err != nil {
		return models.Rol{}, WrapError(err, "Error al obtener rol")
	}
	return role, nil
}

// UpdateRole overwrites the provided fields and touches actualizado_en.
func UpdateRole(db *sqlx.DB, id int64, nombre, slug, descripcion *string) (models.Rol, error) {
	role, err := GetRole(db, id)
	if err != nil {
		return models.Rol{}, err
	}
	if nombre != nil {
		role.Nombre = *nombre
	}
	if slug != nil {
		role.Slug = *slug
	}
	if descripcion != nil {
		role.Descripcion = descripcion
	}
	var updated models.Rol
	err = db.Get(&updated, `
UPDATE roles
SET nombre = $1, slug = $2, descripcion = $3, actualizado_en = $4
WHERE id = $5
RETURNING *
`, role.Nombre, role.Slug, role.Descripcion, time.Now(), id)
	if err != nil {
		return models.Rol{}, WrapError(err, "Error al actualizar rol")
	}
	return updated, nil
}

// DeleteRole refuses to drop a role while any assignment still references
// it, reporting the blocking count.
func DeleteRole(db *sqlx.DB, id int64) error {
	if _, err := GetRole(db, id); err != nil {
		return err
	}
	var assigned int
	if err := db.Get(&assigned, `SELECT COUNT(*) FROM rol_usuarios WHERE rol_id = $1`, id); err != nil {
		return WrapError(err, "Error al eliminar rol")
	}
	if assigned > 0 {
		return ErrConflict(fmt.Sprintf("No se puede eliminar el rol. Está asignado a %d usuario(s).", assigned))
	}
	if _, err := db.Exec(`DELETE FROM roles WHERE id = $1`, id); err != nil {
		return WrapError(err, "Error al eliminar rol")
	}
	return nil
}

// AssignRole enforces the single-role invariant as an explicit replace:
// assigning the role the user already holds is a no-op, assigning a
// different one removes the previous assignment first.
func AssignRole(db *sqlx.DB, usuarioID int, rolID int64, asignadoPor *int) (AssignResult, error) {
	if err := requireUsuario(db, usuarioID); err != nil {
		return AssignResult{}, err
	}
	if _, err := GetRole(db, rolID); err != nil {
		return AssignResult{}, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return AssignResult{}, WrapError(err, "Error al asignar rol")
	}
	defer tx.Rollback()

	hadPrevious := false
	var existing models.RolUsuario
	err = tx.Get(&existing, `SELECT * FROM rol_usuarios WHERE usuario_id = $1`, usuarioID)
	switch {
	case err == nil:
		if existing.RolID == rolID {
			return AssignResult{Assignment: existing, AlreadyHad: true}, nil
		}
		hadPrevious = true
		if _, err := tx.Exec(`DELETE FROM rol_usuarios WHERE usuario_id = $1 AND rol_id = $2`,
			usuarioID, existing.RolID); err != nil {
			return AssignResult{}, WrapError(err, "Error al asignar rol")
		}
	case errors.Is(err, sql.ErrNoRows):
		// first assignment for this user
	default:
		return AssignResult{}, WrapError(err, "Error al asignar rol")
	}

	var assignment models.RolUsuario
	err = tx.Get(&assignment, `
INSERT INTO rol_usuarios (usuario_id, rol_id, asignado_por)
VALUES ($1, $2, $3)
RETURNING *
`, usuarioID, rolID, asignadoPor)
	if err != nil {
		return AssignResult{}, WrapError(err, "Error al asignar rol")
	}
	if err := tx.Commit(); err != nil {
		return AssignResult{}, WrapError(err, "Error al asignar rol")
	}
	return AssignResult{Assignment: assignment, Created: !hadPrevious}, nil
}

func RemoveRole(db *sqlx.DB, usuarioID int, rolID int64) error {
	result, err := db.Exec(`DELETE FROM rol_usuarios WHERE usuario_id = $1 AND rol_id = $2`, usuarioID, rolID)
	if err != nil {
		return WrapError(err, "Error al remover rol")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return WrapError(err, "Error al remover rol")
	}
	if affected == 0 {
		return ErrNotFound("Asignación de rol no encontrada")
	}
	return nil
}

func GetUserRoles(db *sqlx.DB, usuarioID int) ([]UsuarioRol, error) {
	if err := requireUsuario(db, usuarioID); err != nil {
		return nil, err
	}
	roles := []UsuarioRol{}
	err := db.Select(&roles, `
SELECT r.id, r.nombre, r.slug, r.descripcion, ru.asignado_en
FROM roles r
JOIN rol_usuarios ru ON r.id = ru.rol_id
WHERE ru.usuario_id = $1
`, usuarioID)
	if err != nil {
		return nil, WrapError(err, "Error al obtener roles del usuario")
	}
	return roles, nil
}

func GetUsersByRole(db *sqlx.DB, slug string) (models.Rol, []RolMiembro, error) {
	role, err := GetRoleBySlug(db, slug)
	if err != nil {
		return models.Rol{}, nil, err
	}
	users := []RolMiembro{}
	err = db.Select(&users, `
SELECT u.id, u.nombres, u.apellidos, u.correo_electronico, ru.asignado_en
FROM usuarios u
JOIN rol_usuarios ru ON u.id = ru.usuario_id
JOIN roles r ON r.id = ru.rol_id
WHERE r.slug = $1
`, slug)
	if err != nil {
		return models.Rol{}, nil, WrapError(err, "Error al obtener usuarios por rol")
	}
	return role, users, nil
}

func UserHasRole(db *sqlx.DB, usuarioID int, slug string) (bool, error) {
	var hasRole bool
	err := db.Get(&hasRole, `
SELECT EXISTS (
  SELECT 1 FROM rol_usuarios ru
  JOIN roles r ON r.id = ru.rol_id
  WHERE ru.usuario_id = $1 AND r.slug = $2
)
`, usuarioID, slug)
	if err != nil {
		return false, WrapError(err, "Error al verificar rol del usuario")
	}
	return hasRole, nil
}

// CountRolesPerUser lists every user with how many roles they hold, most
// roles first. Under the single-role invariant the count is 0 or 1; higher
// values flag rows inserted outside the API.
func CountRolesPerUser(db *sqlx.DB) ([]ConteoRoles, error) {
	counts := []ConteoRoles{}
	err := db.Select(&counts, `
SELECT u.id AS usuario_id, u.nombres, u.apellidos, u.correo_electronico,
       COUNT(ru.rol_id) AS cantidad_roles
FROM usuarios u
LEFT JOIN rol_usuarios ru ON u.id = ru.usuario_id
GROUP BY u.id, u.nombres, u.apellidos, u.correo_electronico
ORDER BY cantidad_roles DESC, u.id ASC
`)
	if err != nil {
		return nil, WrapError(err, "Error al obtener usuarios con conteo de roles")
	}
	return counts, nil
}

// EnsureRoles seeds the base roles on startup so a fresh database can
// authorize the first administrator.
func EnsureRoles(db *sqlx.DB) error {
	base := []struct {
		Nombre      string
		Slug        string
		Descripcion string
	}{
		{"Administrador", "administrador", "Acceso total al sistema y a la gestión de usuarios"},
		{"Bibliotecario", "bibliotecario", "Gestión de los registros de las colecciones"},
	}
	for _, role := range base {
		_, err := db.Exec(`
INSERT INTO roles (nombre, slug, descripcion)
VALUES ($1, $2, $3)
ON CONFLICT (slug) DO NOTHING
`, role.Nombre, role.Slug, role.Descripcion)
		if err != nil {
			return WrapError(err, "Error al inicializar roles")
		}
	}
	return nil
}

func requireUsuario(db *sqlx.DB, usuarioID int) error {
	var exists bool
	if err := db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM usuarios WHERE id = $1)`, usuarioID); err != nil {
		return WrapError(err, "Error al verificar usuario")
	}
	if !exists {
		return ErrNotFound("Usuario no encontrado")
	}
	return nil
}
