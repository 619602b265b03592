package services

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends account notifications over SMTP. With no host configured it
// refuses to send, which the forgot-password flow treats as a delivery
// failure (logged, not fatal).
type Mailer struct {
	Host string
	Port int
	User string
	Pass string
}

func (m Mailer) SendTemporaryPassword(to, nombre, contrasena string) error {
	if m.Host == "" {
		return errors.New("smtp no configurado")
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.User, "Torre de Colecciones Antiguas"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Recuperación de contraseña")
	msg.SetBody("text/html", temporaryPasswordHTML(nombre, contrasena))

	dialer := gomail.NewDialer(m.Host, m.Port, m.User, m.Pass)
	return dialer.DialAndSend(msg)
}

func temporaryPasswordHTML(nombre, contrasena string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="es">
<head>
	<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
	<title>Recuperación de contraseña</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f7f9fc;">
	<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #ffffff;">
		<tr>
			<td align="center" style="padding: 30px 0; background-color: #6d4c41; color: #ffffff;">
				<h1 style="margin: 0; font-size: 24px;">Torre de Colecciones Antiguas</h1>
			</td>
		</tr>
		<tr>
			<td style="padding: 40px 30px; color: #333333; font-size: 16px; line-height: 1.6;">
				<p style="margin-top: 0;">Hola, <strong>%s</strong>:</p>
				<p>Recibimos una solicitud para restablecer tu contraseña. Tu nueva contraseña temporal es:</p>
				<p align="center" style="background-color: #f3efec; border-radius: 8px; padding: 15px 0; font-size: 22px; font-weight: bold; letter-spacing: 2px;">%s</p>
				<p>Por seguridad, inicia sesión y cámbiala lo antes posible desde tu perfil.</p>
				<p style="margin-bottom: 0;">Si no solicitaste este cambio, contacta al administrador.</p>
			</td>
		</tr>
	</table>
</body>
</html>`, nombre, contrasena)
}
