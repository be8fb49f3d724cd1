// Package auth implementa el Identity Resolver: convierte una sesión emitida
// por el proveedor de identidades en una identidad normalizada (username,
// email, roles en minúsculas), o en ausencia de identidad.
//
// El storefront y la consola admin usan cada uno su propio pool, pero el
// resolver es una sola implementación parametrizada por el proveedor, así el
// parser de claims no puede divergir entre superficies.
package auth

import (
	"context"
	"strings"

	"github.com/Kanyapat-samee/Bakeria/internal/domain"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
	"github.com/Kanyapat-samee/Bakeria/pkg/logger"
)

// Session lo que el proveedor entrega al consultar la sesión: los claims del
// id token y el access token para llamadas autenticadas.
type Session struct {
	Claims      map[string]interface{}
	AccessToken string
}

// SignInOutcome resultado de un sign-in. ChallengePending indica que la
// autenticación quedó incompleta (el pool exige rotar la contraseña); en ese
// caso Token viene vacío y el caller debe completar el desafío.
type SignInOutcome struct {
	Token            string
	ChallengePending bool
}

// SessionProvider contrato del proveedor de identidades: solo las operaciones
// que el core invoca.
type SessionProvider interface {
	// FetchSession resuelve un token de sesión a claims. Token vacío o sesión
	// inexistente devuelve (nil, nil): no tener sesión es un estado normal.
	FetchSession(ctx context.Context, token string, forceRefresh bool) (*Session, error)
	// SignIn autentica; puede devolver un desafío pendiente en vez de token.
	SignIn(ctx context.Context, email, password string) (*SignInOutcome, error)
	// ConfirmChallenge completa un sign-in pendiente con la nueva contraseña.
	ConfirmChallenge(ctx context.Context, email, password, newPassword string) (*SignInOutcome, error)
	// SignOut invalida la sesión en el proveedor (best effort).
	SignOut(ctx context.Context, token string) error
}

// Resolver resuelve sesiones de un pool concreto a identidades.
type Resolver struct {
	pool     string
	provider SessionProvider
	log      *logger.Logger
}

// NewResolver construye el resolver de un pool ("customer" o "admin").
func NewResolver(pool string, provider SessionProvider, log *logger.Logger) *Resolver {
	return &Resolver{pool: pool, provider: provider, log: log.Component("auth." + pool)}
}

// Resolve intenta restaurar la identidad a partir de un token de sesión.
// Sin sesión válida devuelve (nil, nil): ausencia de identidad no es un error.
func (r *Resolver) Resolve(ctx context.Context, token string) (*entity.Identity, error) {
	if token == "" {
		return nil, nil
	}
	session, err := r.provider.FetchSession(ctx, token, true)
	if err != nil {
		r.log.Warn().Err(err).Msg("sin sesión válida")
		return nil, nil
	}
	if session == nil {
		return nil, nil
	}
	ident := IdentityFromClaims(session.Claims, r.log)
	if ident != nil {
		r.log.Debug().
			Str("username", ident.Username).
			Strs("roles", ident.Roles).
			Msg("identidad resuelta")
	}
	return ident, nil
}

// SignIn autentica contra el pool y devuelve el token de sesión y la identidad.
// Si el pool exige rotar la contraseña y newPassword viene vacío, devuelve
// ErrChallengeRequired para que el caller pida el dato que falta; con
// newPassword el desafío se completa en la misma llamada.
func (r *Resolver) SignIn(ctx context.Context, email, password, newPassword string) (string, *entity.Identity, error) {
	outcome, err := r.provider.SignIn(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	if outcome.ChallengePending {
		if newPassword == "" {
			return "", nil, domain.ErrChallengeRequired
		}
		outcome, err = r.provider.ConfirmChallenge(ctx, email, password, newPassword)
		if err != nil {
			return "", nil, err
		}
	}

	ident, err := r.Resolve(ctx, outcome.Token)
	if err != nil {
		return "", nil, err
	}
	if ident == nil {
		// el proveedor emitió un token sin claim de email: tratar como no autenticado
		return "", nil, domain.ErrUnauthorized
	}
	r.log.Info().Str("username", ident.Username).Strs("roles", ident.Roles).Msg("sign-in completado")
	return outcome.Token, ident, nil
}

// SignOut cierra la sesión en el proveedor. La identidad del caller pasa a
// ausente de inmediato, sin esperar al proveedor; el error solo se registra.
func (r *Resolver) SignOut(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := r.provider.SignOut(ctx, token); err != nil {
		r.log.Warn().Err(err).Msg("sign-out en el proveedor falló")
	}
}

// AccessToken devuelve el access token de la sesión para llamadas privilegiadas.
// Token vacío o en blanco del proveedor → ErrNoValidToken; el caller debe
// tratarlo igual que "no autenticado" y abortar la operación.
func (r *Resolver) AccessToken(ctx context.Context, token string) (string, error) {
	session, err := r.provider.FetchSession(ctx, token, true)
	if err != nil || session == nil {
		return "", domain.ErrNoValidToken
	}
	if strings.TrimSpace(session.AccessToken) == "" {
		r.log.Error().Msg("el proveedor devolvió un access token en blanco")
		return "", domain.ErrNoValidToken
	}
	return session.AccessToken, nil
}

// IdentityFromClaims normaliza los claims del id token a una identidad.
//
//   - sin claim de email no hay identidad (nil);
//   - username: claim "name" si es textual; si no, la parte local del email;
//     si tampoco, el literal "User";
//   - grupos: se aceptan como lista o como string suelto, siempre en
//     minúsculas; las entradas no-string se descartan con un warn.
func IdentityFromClaims(claims map[string]interface{}, log *logger.Logger) *entity.Identity {
	if claims == nil {
		return nil
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return nil
	}

	name, _ := claims["name"].(string)
	username := name
	if username == "" {
		if at := strings.Index(email, "@"); at > 0 {
			username = email[:at]
		}
	}
	if username == "" {
		username = "User"
	}

	return &entity.Identity{
		Username: username,
		Email:    email,
		Roles:    normalizeGroups(claims["groups"], log),
	}
}

func normalizeGroups(raw interface{}, log *logger.Logger) []string {
	var roles []string
	switch v := raw.(type) {
	case nil:
	case string:
		roles = append(roles, strings.ToLower(v))
	case []string:
		for _, g := range v {
			roles = append(roles, strings.ToLower(g))
		}
	case []interface{}:
		for _, g := range v {
			s, ok := g.(string)
			if !ok {
				log.Warn().Interface("entry", g).Msg("entrada no-string en el claim de grupos, descartada")
				continue
			}
			roles = append(roles, strings.ToLower(s))
		}
	default:
		log.Warn().Interface("groups", v).Msg("claim de grupos con forma inesperada, ignorado")
	}
	return roles
}
