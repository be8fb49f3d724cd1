// Package identity implementa un proveedor de sesiones local al estilo de un
// user pool gestionado: cuentas en PostgreSQL, contraseñas con bcrypt y tokens
// de sesión HS256 por pool. El sign-in de una cuenta marcada
// must_change_password no emite token hasta que llega la contraseña nueva.
package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kanyapat-samee/Bakeria/internal/application/auth"
	"github.com/Kanyapat-samee/Bakeria/internal/domain"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/repository"
	"github.com/Kanyapat-samee/Bakeria/pkg/config"
	"github.com/Kanyapat-samee/Bakeria/pkg/jwt"
	"github.com/Kanyapat-samee/Bakeria/pkg/logger"
)

var _ auth.SessionProvider = (*LocalProvider)(nil)

// LocalProvider proveedor de sesiones de un pool concreto.
type LocalProvider struct {
	users repository.UserRepository
	cfg   config.PoolConfig
	log   *logger.Logger
}

// NewLocalProvider construye el proveedor para un pool.
func NewLocalProvider(users repository.UserRepository, cfg config.PoolConfig, log *logger.Logger) *LocalProvider {
	return &LocalProvider{users: users, cfg: cfg, log: log.Component("identity." + cfg.Name)}
}

// FetchSession resuelve un token de sesión a claims. Token vacío → sin sesión
// (nil, nil); token inválido o expirado → error, que el resolver trata como
// ausencia de identidad.
func (p *LocalProvider) FetchSession(ctx context.Context, token string, forceRefresh bool) (*auth.Session, error) {
	if token == "" {
		return nil, nil
	}
	claims, err := jwt.ParseRaw(p.cfg.Secret, token)
	if err != nil {
		return nil, err
	}
	return &auth.Session{Claims: claims, AccessToken: token}, nil
}

// SignIn verifica credenciales. Cuenta marcada must_change_password devuelve
// el desafío pendiente en lugar de token. Credencial inválida, cuenta
// inexistente o inactiva responden igual (ErrUnauthorized): no se filtra cuál
// fue el caso.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*auth.SignInOutcome, error) {
	user, err := p.verifyPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user.MustChangePassword {
		p.log.Info().Str("email", email).Msg("sign-in con desafío de nueva contraseña pendiente")
		return &auth.SignInOutcome{ChallengePending: true}, nil
	}
	return p.issue(user)
}

// ConfirmChallenge completa un sign-in pendiente: verifica otra vez las
// credenciales, rota la contraseña y emite el token.
func (p *LocalProvider) ConfirmChallenge(ctx context.Context, email, password, newPassword string) (*auth.SignInOutcome, error) {
	if len(newPassword) < 8 {
		return nil, domain.ErrInvalidInput
	}
	user, err := p.verifyPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !user.MustChangePassword {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.MustChangePassword = false
	user.UpdatedAt = time.Now()
	if err := p.users.Update(ctx, user); err != nil {
		return nil, err
	}
	p.log.Info().Str("email", email).Msg("desafío completado, contraseña rotada")
	return p.issue(user)
}

// SignOut los tokens son autocontenidos; no hay estado de sesión que revocar
// en el proveedor local.
func (p *LocalProvider) SignOut(ctx context.Context, token string) error {
	return nil
}

// Register crea una cuenta del pool (el storefront la usa para el sign-up de
// clientes; las cuentas admin se siembran fuera de banda).
func (p *LocalProvider) Register(ctx context.Context, email, password, name string) (*entity.PoolUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.PoolUser{
		ID:           uuid.NewString(),
		Pool:         p.cfg.Name,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := p.users.Create(ctx, user); err != nil {
		return nil, err
	}
	p.log.Info().Str("email", email).Msg("cuenta registrada")
	return user, nil
}

func (p *LocalProvider) verifyPassword(ctx context.Context, email, password string) (*entity.PoolUser, error) {
	user, err := p.users.GetByEmail(ctx, p.cfg.Name, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != "active" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func (p *LocalProvider) issue(user *entity.PoolUser) (*auth.SignInOutcome, error) {
	token, err := jwt.Generate(p.cfg.Secret, user.ID, user.Email, user.Name, user.Groups, p.cfg.Issuer, p.cfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &auth.SignInOutcome{Token: token}, nil
}
