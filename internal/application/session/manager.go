// Package session maneja el estado de alcance de sesión de forma explícita:
// nada de globales mutables ambientales. Cada sesión (un cliente autenticado
// o un invitado con cookie) es un objeto construido al primer uso y
// desmontado en el sign-out, y es quien posee el motor de carrito.
package session

import (
	"sync"
	"time"

	"github.com/Kanyapat-samee/Bakeria/internal/application/cart"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/repository"
	"github.com/Kanyapat-samee/Bakeria/pkg/logger"
)

// Session el estado de una sesión: identidad resuelta y motor de carrito.
type Session struct {
	Key       string
	Identity  *entity.Identity
	Cart      *cart.Engine
	CreatedAt time.Time
}

// Manager construye y desmonta sesiones por clave.
type Manager struct {
	cartRepo repository.CartRepository
	log      *logger.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager construye el manager.
func NewManager(cartRepo repository.CartRepository, log *logger.Logger) *Manager {
	return &Manager{
		cartRepo: cartRepo,
		log:      log.Component("session"),
		sessions: make(map[string]*Session),
	}
}

// Session devuelve la sesión de la clave, creándola si es la primera vez. Al
// crearla se dispara el OnIdentityChange inicial del motor (que decide si
// carga el carrito persistido o arranca vacío según la identidad).
//
// En una sesión ya existente la identidad puede haber cambiado bajo la misma
// clave: la cuenta pudo ganar o perder un rol privilegiado entre peticiones.
// El motor debe re-observarla, porque el cambio decide si los guardados del
// carrito siguen permitidos.
func (m *Manager) Session(key string, identity *entity.Identity) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[key]; ok {
		if !s.Identity.Equal(identity) {
			s.Identity = identity
			s.Cart.OnIdentityChange(identity)
			m.log.Debug().Str("key", key).Msg("identidad de la sesión cambió, motor re-observado")
		}
		return s
	}
	engine := cart.NewEngine(m.cartRepo, m.log)
	engine.OnIdentityChange(identity)
	s := &Session{
		Key:       key,
		Identity:  identity,
		Cart:      engine,
		CreatedAt: time.Now(),
	}
	m.sessions[key] = s
	m.log.Debug().Str("key", key).Msg("sesión creada")
	return s
}

// Drop desmonta la sesión en el sign-out. El motor vuelve a identidad
// ausente primero, lo que invalida por época las cargas y guardados en vuelo
// antes de soltar la sesión.
func (m *Manager) Drop(key string) {
	m.mu.Lock()
	s, ok := m.sessions[key]
	if ok {
		delete(m.sessions, key)
	}
	m.mu.Unlock()
	if ok {
		s.Cart.OnIdentityChange(nil)
		m.log.Debug().Str("key", key).Msg("sesión desmontada")
	}
}
