// Package cart implementa el motor de sincronización del carrito.
//
// El motor es el dueño exclusivo del estado en memoria del carrito durante la
// vida de la identidad actual. Dos efectos asíncronos comparten ese estado
// (la carga inicial y los guardados) y nunca deben pisarse:
//
//   - ningún guardado efectivo puede observarse antes de que termine la carga
//     de esa identidad (flag ready), porque escribiría estado por defecto
//     encima del carrito remoto real;
//   - una carga tardía de una identidad ya reemplazada se descarta (época);
//   - los guardados se serializan por un único goroutine con un slot de
//     "última escritura pendiente": mutaciones rápidas se coalescen y el
//     estado final del store siempre refleja la mutación más reciente,
//     sin importar el orden en que completen las escrituras.
package cart

import (
	"context"
	"sync"

	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/repository"
	"github.com/Kanyapat-samee/Bakeria/pkg/logger"
)

// pendingSave la próxima escritura al store: snapshot del carrito más la
// época de la identidad que la originó.
type pendingSave struct {
	userID string
	epoch  uint64
	cart   entity.Cart
}

// Engine motor de sincronización, de alcance de sesión. Todas las operaciones
// son seguras para uso concurrente; cart y ready solo mutan bajo mu.
type Engine struct {
	repo repository.CartRepository
	log  *logger.Logger

	mu       sync.Mutex
	identity *entity.Identity
	cart     entity.Cart
	ready    bool
	epoch    uint64 // incrementa con cada cambio de identidad; invalida cargas y guardados viejos

	saving  bool
	pending *pendingSave
}

// NewEngine construye el motor. El carrito arranca vacío y no-ready hasta el
// primer OnIdentityChange.
func NewEngine(repo repository.CartRepository, log *logger.Logger) *Engine {
	return &Engine{repo: repo, log: log.Component("cart")}
}

// OnIdentityChange reemplaza la identidad dueña del carrito.
//
// Identidad ausente o privilegiada (admin/employee): carrito vacío y ready de
// inmediato; esas identidades nunca tienen carrito de cliente persistido.
// Cliente normal: ready baja, y la carga del carrito persistido corre en
// segundo plano; si falla se conserva el carrito local (perder el remoto no
// debe destruir uno ya poblado) y ready sube igualmente.
func (e *Engine) OnIdentityChange(identity *entity.Identity) {
	e.mu.Lock()
	e.epoch++
	e.identity = identity
	// las escrituras encoladas pertenecen a la identidad anterior
	e.pending = nil

	if identity == nil || identity.IsPrivileged() {
		e.cart = entity.Cart{}
		e.ready = true
		e.mu.Unlock()
		return
	}

	e.ready = false
	epoch := e.epoch
	userID := identity.Username
	e.mu.Unlock()

	go e.load(epoch, userID)
}

func (e *Engine) load(epoch uint64, userID string) {
	// sin cancelación: los resultados obsoletos se ignoran por época
	loaded, err := e.repo.Get(context.Background(), userID)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.epoch != epoch {
		e.log.Debug().Str("user", userID).Msg("carga obsoleta descartada: la identidad cambió")
		return
	}
	if err != nil {
		e.log.Error().Err(err).Str("user", userID).Msg("fallo al cargar el carrito; se conserva el local")
	} else {
		e.cart = loaded
	}
	e.ready = true
}

// AddItem agrega una línea: si el id ya existe incrementa su cantidad en 1
// conservando posición; si no, la agrega al final con cantidad 1.
func (e *Engine) AddItem(item entity.CartItem) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart = e.cart.Add(item)
	e.schedulePersistLocked()
}

// RemoveItem elimina la línea; no-op si no existe.
func (e *Engine) RemoveItem(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart = e.cart.Remove(id)
	e.schedulePersistLocked()
}

// SetQuantity fija la cantidad; <= 0 equivale a RemoveItem.
func (e *Engine) SetQuantity(id string, quantity int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart = e.cart.SetQuantity(id, quantity)
	e.schedulePersistLocked()
}

// Clear vacía el carrito.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart = entity.Cart{}
	e.schedulePersistLocked()
}

// Items snapshot del carrito.
func (e *Engine) Items() entity.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.Clone()
}

// Ready indica si la carga de la identidad actual ya terminó.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

// Identity la identidad dueña actual (puede ser nil).
func (e *Engine) Identity() *entity.Identity {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.identity
}

// schedulePersistLocked encola un guardado del estado actual. Se llama con mu
// tomado, después de cada mutación.
//
// Regla de supresión (la invariante central): el guardado se descarta salvo
// que ready sea true Y haya identidad Y no sea privilegiada. Esto evita
// persistir un carrito por defecto encima del remoto antes de terminar la
// carga, y persistir datos de cliente bajo una identidad que no debe tener
// carrito guardado.
func (e *Engine) schedulePersistLocked() {
	if !e.ready || e.identity == nil || e.identity.IsPrivileged() {
		e.log.Debug().Bool("ready", e.ready).Msg("guardado suprimido")
		return
	}
	save := &pendingSave{
		userID: e.identity.Username,
		epoch:  e.epoch,
		cart:   e.cart.Clone(),
	}
	if e.saving {
		// slot único: solo interesa el estado más reciente
		e.pending = save
		return
	}
	e.saving = true
	go e.saver(save)
}

// saver drena escrituras una a una. Un solo goroutine activo por motor, así
// que las escrituras salen en orden y nunca una vieja pisa a una nueva.
func (e *Engine) saver(save *pendingSave) {
	for save != nil {
		e.mu.Lock()
		if save.epoch != e.epoch {
			// la identidad cambió mientras esperaba el turno: no escribir en
			// el slot de la identidad anterior
			save = e.takeNextLocked()
			e.mu.Unlock()
			continue
		}
		e.mu.Unlock()

		if err := e.repo.Put(context.Background(), save.userID, save.cart); err != nil {
			// el carrito en memoria sigue siendo la fuente de verdad de la
			// sesión; no se reintenta ni se propaga al caller de la mutación
			e.log.Error().Err(err).Str("user", save.userID).Msg("fallo al guardar el carrito")
		}

		e.mu.Lock()
		save = e.takeNextLocked()
		e.mu.Unlock()
	}
}

func (e *Engine) takeNextLocked() *pendingSave {
	next := e.pending
	e.pending = nil
	if next == nil {
		e.saving = false
	}
	return next
}
