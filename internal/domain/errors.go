package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// ErrChallengeRequired y ErrNoValidToken son estados del flujo de sesión, no
// fallos de infraestructura: el primero indica que el sign-in quedó pendiente
// de completar un desafío (rotación forzada de contraseña) y el segundo que el
// proveedor devolvió un token vacío y la operación privilegiada debe abortarse.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrOrderNotFound      = errors.New("orden no encontrada")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidStatus      = errors.New("estado de orden inválido")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrChallengeRequired  = errors.New("autenticación incompleta: desafío pendiente")
	ErrNoValidToken       = errors.New("no hay token de acceso válido")
)
