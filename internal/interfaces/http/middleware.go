package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Kanyapat-samee/Bakeria/internal/application/auth"
	"github.com/Kanyapat-samee/Bakeria/internal/application/dto"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
)

// Locals keys.
const (
	LocalIdentity   = "identity"
	LocalToken      = "token"
	LocalSessionKey = "session_key"
)

// Cookie de sesión de invitados (carrito anónimo, solo en memoria).
const guestCookie = "bakeria_session"

// SessionContext resuelve la identidad del Bearer token (si lo hay) con el
// resolver del pool y deja en locals la identidad, el token y la clave de
// sesión. No rechaza a nadie: la ausencia de identidad es un estado normal;
// los invitados reciben una cookie de sesión para que su carrito tenga dueño.
func SessionContext(resolver *auth.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		ident, err := resolver.Resolve(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}

		c.Locals(LocalToken, token)
		if ident != nil {
			c.Locals(LocalIdentity, ident)
			c.Locals(LocalSessionKey, "user:"+ident.Username)
			return c.Next()
		}

		sid := c.Cookies(guestCookie)
		if sid == "" {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     guestCookie,
				Value:    sid,
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(LocalSessionKey, "guest:"+sid)
		return c.Next()
	}
}

// RequireIdentity exige una identidad resuelta (después de SessionContext).
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetIdentity(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "se requiere sesión"})
		}
		return c.Next()
	}
}

// RequireRole exige que la identidad tenga alguno de los roles indicados.
// Debe usarse DESPUÉS de SessionContext.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident := GetIdentity(c)
		if ident == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "se requiere sesión"})
		}
		for _, r := range roles {
			if ident.HasRole(r) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol insuficiente"})
	}
}

// GetIdentity devuelve la identidad del contexto, o nil si no hay sesión.
func GetIdentity(c *fiber.Ctx) *entity.Identity {
	ident, _ := c.Locals(LocalIdentity).(*entity.Identity)
	return ident
}

// GetToken devuelve el token de sesión del contexto ("" si no hay).
func GetToken(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalToken).(string)
	return s
}

// GetSessionKey devuelve la clave de sesión del contexto.
func GetSessionKey(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionKey).(string)
	return s
}

func bearerToken(c *fiber.Ctx) string {
	const prefix = "Bearer "
	h := c.Get("Authorization")
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}
