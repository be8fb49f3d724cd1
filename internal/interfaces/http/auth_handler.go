package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Kanyapat-samee/Bakeria/internal/application/auth"
	"github.com/Kanyapat-samee/Bakeria/internal/application/dto"
	"github.com/Kanyapat-samee/Bakeria/internal/application/session"
	"github.com/Kanyapat-samee/Bakeria/internal/domain"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
)

// registrar contrato mínimo para el sign-up; lo implementa el proveedor local
// del pool de clientes. Nil en el handler del pool admin (sin auto-registro).
type registrar interface {
	Register(ctx context.Context, email, password, name string) (*entity.PoolUser, error)
}

// AuthHandler maneja sign-up, sign-in, sign-out y consulta de sesión de un pool.
type AuthHandler struct {
	resolver *auth.Resolver
	reg      registrar
	sessions *session.Manager
}

// NewAuthHandler construye el handler de auth para un pool.
func NewAuthHandler(resolver *auth.Resolver, reg registrar, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{resolver: resolver, reg: reg, sessions: sessions}
}

// SignUp registra una cuenta de cliente.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	if h.reg == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "este pool no admite registro"})
	}
	var in dto.SignUpRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y name son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	user, err := h.reg.Register(c.Context(), in.Email, in.Password, in.Name)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": user.ID, "email": user.Email, "name": user.Name})
}

// SignIn autentica contra el pool. Si el pool exige rotar la contraseña y el
// cuerpo no trae new_password, responde 409 CHALLENGE_REQUIRED: autenticación
// incompleta, distinta tanto del éxito como del fallo duro.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var in dto.SignInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	token, ident, err := h.resolver.SignIn(c.Context(), in.Email, in.Password, in.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrChallengeRequired):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CHALLENGE_REQUIRED", Message: "se requiere una contraseña nueva para completar el sign-in"})
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "contraseña nueva inválida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.SignInResponse{Token: token, Identity: identityDTO(ident)})
}

// SignOut desmonta la sesión. La identidad pasa a ausente de inmediato; el
// proveedor se notifica best effort.
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	if key := GetSessionKey(c); key != "" {
		h.sessions.Drop(key)
	}
	h.resolver.SignOut(c.Context(), GetToken(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// Session devuelve la identidad resuelta de la sesión actual (null si no hay).
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	if ident == nil {
		return c.JSON(dto.SessionResponse{})
	}
	out := identityDTO(ident)
	return c.JSON(dto.SessionResponse{Identity: &out})
}

func identityDTO(ident *entity.Identity) dto.IdentityResponse {
	return dto.IdentityResponse{
		Username: ident.Username,
		Email:    ident.Email,
		Roles:    ident.Roles,
	}
}
