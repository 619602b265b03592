package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/DiegoDaher/TCA-APP/internal/services"
)

type registerRequest struct {
	Nombres           *string `json:"Nombres"`
	Apellidos         *string `json:"Apellidos"`
	CorreoElectronico string  `json:"Correo_Electronico"`
	Contrasena        string  `json:"Contraseña"`
}

type loginRequest struct {
	CorreoElectronico string `json:"Correo_Electronico"`
	Contrasena        string `json:"Contraseña"`
}

type changePasswordRequest struct {
	Actual string `json:"contrasena_actual"`
	Nueva  string `json:"contrasena_nueva"`
}

type forgotPasswordRequest struct {
	CorreoElectronico string `json:"Correo_Electronico"`
}

// Register creates an account. Without a password in the body the account is
// provisioned with a generated temporary password mailed to the new user,
// which is how administrators onboard staff.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "El cuerpo de la petición debe ser un objeto JSON válido.")
		return
	}
	correo := strings.TrimSpace(req.CorreoElectronico)
	if correo == "" {
		WriteError(w, http.StatusBadRequest, "El campo Correo_Electronico es obligatorio.")
		return
	}
	if !strings.Contains(correo, "@") {
		WriteError(w, http.StatusBadRequest, "El campo Correo_Electronico debe ser un correo válido.")
		return
	}

	contrasena := req.Contrasena
	temporal := contrasena == ""
	if temporal {
		generated, err := services.GenerateTemporaryPassword(10)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		contrasena = generated
	} else if len(contrasena) < 8 {
		WriteError(w, http.StatusBadRequest, "La contraseña debe tener al menos 8 caracteres.")
		return
	}

	user, err := services.RegisterUsuario(s.DB, s.Tokens, req.Nombres, req.Apellidos, correo, contrasena)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if temporal {
		nombre := user.CorreoElectronico
		if user.Nombres != nil && *user.Nombres != "" {
			nombre = *user.Nombres
		}
		if err := s.Mailer.SendTemporaryPassword(user.CorreoElectronico, nombre, contrasena); err != nil {
			log.Printf("register: no se pudo enviar el correo a %s: %v", user.CorreoElectronico, err)
		}
	}
	WriteData(w, http.StatusCreated, "Usuario registrado exitosamente", user)
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "El cuerpo de la petición debe ser un objeto JSON válido.")
		return
	}
	if req.CorreoElectronico == "" || req.Contrasena == "" {
		WriteError(w, http.StatusBadRequest, "Los campos Correo_Electronico y Contraseña son obligatorios.")
		return
	}

	user, token, err := services.Login(s.DB, s.Tokens, req.CorreoElectronico, req.Contrasena)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Inicio de sesión exitoso",
		"token":   token,
		"user":    user,
	})
}

func (s *Server) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Acceso denegado. No se proporcionó un token de autenticación.")
		return
	}
	WriteData(w, http.StatusOK, "Perfil obtenido exitosamente", user)
}

// Verify lets the client confirm a stored token is still usable; the auth
// middleware has already done all the work by the time this runs.
func (s *Server) Verify(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Acceso denegado. No se proporcionó un token de autenticación.")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Token válido",
		"valid":   true,
		"user":    user,
	})
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Acceso denegado. No se proporcionó un token de autenticación.")
		return
	}
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "El cuerpo de la petición debe ser un objeto JSON válido.")
		return
	}
	if req.Actual == "" || req.Nueva == "" {
		WriteError(w, http.StatusBadRequest, "Los campos contrasena_actual y contrasena_nueva son obligatorios.")
		return
	}
	if len(req.Nueva) < 8 {
		WriteError(w, http.StatusBadRequest, "La contraseña debe tener al menos 8 caracteres.")
		return
	}
	if err := services.ChangePassword(s.DB, s.Tokens, user.Usuario.ID, req.Actual, req.Nueva); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteData(w, http.StatusOK, "Contraseña actualizada exitosamente", nil)
}

func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := services.ListUsuarios(s.DB)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteData(w, http.StatusOK, "Usuarios obtenidos exitosamente", users)
}

func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "El ID debe ser un número entero.")
		return
	}
	user, err := services.GetUsuario(s.DB, id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteData(w, http.StatusOK, "Usuario obtenido exitosamente", user)
}

func (s *Server) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "El ID debe ser un número entero.")
		return
	}
	user, err := services.SetUsuarioStatus(s.DB, id, 0)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteData(w, http.StatusOK, "Usuario dado de baja exitosamente (Status cambiado a 0)", user)
}

func (s *Server) RestoreUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "El ID debe ser un número entero.")
		return
	}
	user, err := services.SetUsuarioStatus(s.DB, id, 1)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteData(w, http.StatusOK, "Usuario restaurado exitosamente (Status cambiado a 1)", user)
}

func (s *Server) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "El cuerpo de la petición debe ser un objeto JSON válido.")
		return
	}
	if req.CorreoElectronico == "" {
		WriteError(w, http.StatusBadRequest, "El campo Correo_Electronico es obligatorio.")
		return
	}
	if err := services.ForgotPassword(s.DB, s.Tokens, s.Mailer, req.CorreoElectronico); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteData(w, http.StatusOK, "Se ha enviado una contraseña temporal a tu correo electrónico.", nil)
}
