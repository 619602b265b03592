package services

import (
	"database/sql"
	"errors"
	"log"

	"github.com/jmoiron/sqlx"

	"github.com/DiegoDaher/TCA-APP/internal/models"
)

const usuarioActivo = 1

func GetUsuario(db *sqlx.DB, id int) (models.Usuario, error) {
	var user models.Usuario
	err := db.Get(&user, `SELECT * FROM usuarios WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Usuario{}, ErrNotFound("Usuario no encontrado")
	}
	if err != nil {
		return models.Usuario{}, WrapError(err, "Error al obtener usuario")
	}
	return user, nil
}

func GetUsuarioByCorreo(db *sqlx.DB, correo string) (models.Usuario, error) {
	var user models.Usuario
	err := db.Get(&user, `SELECT * FROM usuarios WHERE correo_electronico = $1`, correo)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Usuario{}, ErrNotFound("Usuario no encontrado")
	}
	if err != nil {
		return models.Usuario{}, WrapError(err, "Error al obtener usuario")
	}
	return user, nil
}

func ListUsuarios(db *sqlx.DB) ([]models.Usuario, error) {
	users := []models.Usuario{}
	if err := db.Select(&users, `SELECT * FROM usuarios ORDER BY id ASC`); err != nil {
		return nil, WrapError(err, "Error al obtener usuarios")
	}
	return users, nil
}

// RegisterUsuario creates an active account with the given password already
// validated by the caller.
func RegisterUsuario(db *sqlx.DB, tokens TokenService, nombres, apellidos *string, correo, contrasena string) (models.Usuario, error) {
	var exists bool
	if err := db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM usuarios WHERE correo_electronico = $1)`, correo); err != nil {
		return models.Usuario{}, WrapError(err, "Error al registrar usuario")
	}
	if exists {
		return models.Usuario{}, ErrConflict("El correo electrónico ya está registrado.")
	}

	hashed, err := tokens.HashPassword(contrasena)
	if err != nil {
		return models.Usuario{}, WrapError(err, "Error al registrar usuario")
	}

	var user models.Usuario
	err = db.Get(&user, `
INSERT INTO usuarios (nombres, apellidos, correo_electronico, contrasena)
VALUES ($1, $2, $3, $4)
RETURNING *
`, nombres, apellidos, correo, hashed)
	if err != nil {
		return models.Usuario{}, WrapError(err, "Error al registrar usuario")
	}
	return user, nil
}

// Login checks the credentials and the account gate and mints an access
// token carrying the user's role slugs.
func Login(db *sqlx.DB, tokens TokenService, correo, contrasena string) (models.Usuario, string, error) {
	var user models.Usuario
	err := db.Get(&user, `SELECT * FROM usuarios WHERE correo_electronico = $1`, correo)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Usuario{}, "", ErrUnauthorized("Credenciales inválidas.")
	}
	if err != nil {
		return models.Usuario{}, "", WrapError(err, "Error al iniciar sesión")
	}
	if !tokens.VerifyPassword(contrasena, user.Contrasena) {
		return models.Usuario{}, "", ErrUnauthorized("Credenciales inválidas.")
	}
	if user.Status != usuarioActivo {
		return models.Usuario{}, "", ErrUnauthorized("Usuario inactivo. Contacta al administrador.")
	}

	slugs, err := FetchRoleSlugs(db, user.ID)
	if err != nil {
		return models.Usuario{}, "", WrapError(err, "Error al iniciar sesión")
	}
	token, _, err := tokens.CreateAccessToken(user.ID, user.CorreoElectronico, slugs)
	if err != nil {
		return models.Usuario{}, "", WrapError(err, "Error al iniciar sesión")
	}
	return user, token, nil
}

func FetchRoleSlugs(db *sqlx.DB, usuarioID int) ([]string, error) {
	slugs := []string{}
	err := db.Select(&slugs, `
SELECT r.slug
FROM roles r
JOIN rol_usuarios ru ON ru.rol_id = r.id
WHERE ru.usuario_id = $1
ORDER BY r.slug
`, usuarioID)
	return slugs, err
}

// SetUsuarioStatus flips the account gate: 0 blocks authentication, 1
// restores it. Idempotent.
func SetUsuarioStatus(db *sqlx.DB, id, status int) (models.Usuario, error) {
	var user models.Usuario
	err := db.Get(&user, `UPDATE usuarios SET status = $1 WHERE id = $2 RETURNING *`, status, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Usuario{}, ErrNotFound("Usuario no encontrado")
	}
	if err != nil {
		return models.Usuario{}, WrapError(err, "Error al actualizar usuario")
	}
	return user, nil
}

func ChangePassword(db *sqlx.DB, tokens TokenService, userID int, actual, nueva string) error {
	user, err := GetUsuario(db, userID)
	if err != nil {
		return err
	}
	if !tokens.VerifyPassword(actual, user.Contrasena) {
		return ErrUnauthorized("La contraseña actual es incorrecta.")
	}
	hashed, err := tokens.HashPassword(nueva)
	if err != nil {
		return WrapError(err, "Error al cambiar la contraseña")
	}
	if _, err := db.Exec(`UPDATE usuarios SET contrasena = $1 WHERE id = $2`, hashed, userID); err != nil {
		return WrapError(err, "Error al cambiar la contraseña")
	}
	return nil
}

// ForgotPassword resets the account to a generated temporary password and
// mails it to the user. Mail delivery is best effort: the password change
// stands even if the notification fails, which only gets logged.
func ForgotPassword(db *sqlx.DB, tokens TokenService, mailer Mailer, correo string) error {
	user, err := GetUsuarioByCorreo(db, correo)
	if err != nil {
		return err
	}

	temporal, err := GenerateTemporaryPassword(10)
	if err != nil {
		return WrapError(err, "Error al restablecer la contraseña")
	}
	hashed, err := tokens.HashPassword(temporal)
	if err != nil {
		return WrapError(err, "Error al restablecer la contraseña")
	}
	if _, err := db.Exec(`UPDATE usuarios SET contrasena = $1 WHERE id = $2`, hashed, user.ID); err != nil {
		return WrapError(err, "Error al restablecer la contraseña")
	}

	nombre := user.CorreoElectronico
	if user.Nombres != nil && *user.Nombres != "" {
		nombre = *user.Nombres
	}
	if err := mailer.SendTemporaryPassword(user.CorreoElectronico, nombre, temporal); err != nil {
		log.Printf("forgot-password: no se pudo enviar el correo a %s: %v", user.CorreoElectronico, err)
	}
	return nil
}
