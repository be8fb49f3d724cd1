package cart_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kanyapat-samee/Bakeria/internal/application/cart"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
	"github.com/Kanyapat-samee/Bakeria/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del store de carritos, con compuertas para ordenar los efectos
// asíncronos del motor desde el test.
// ──────────────────────────────────────────────────────────────────────────────

type putCall struct {
	userID string
	cart   entity.Cart
}

type fakeCartRepo struct {
	mu     sync.Mutex
	stored map[string]entity.Cart
	puts   []putCall

	getGate chan struct{} // si no es nil, Get espera a que lo cierren
	putGate chan struct{} // si no es nil, Put espera a que lo cierren
	getErr  error
	putErr  error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{stored: map[string]entity.Cart{}}
}

func (f *fakeCartRepo) Get(_ context.Context, userID string) (entity.Cart, error) {
	f.mu.Lock()
	gate, err := f.getGate, f.getErr
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stored[userID].Clone(), nil
}

func (f *fakeCartRepo) Put(_ context.Context, userID string, c entity.Cart) error {
	f.mu.Lock()
	gate, err := f.putGate, f.putErr
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored[userID] = c.Clone()
	f.puts = append(f.puts, putCall{userID: userID, cart: c.Clone()})
	return nil
}

func (f *fakeCartRepo) putCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.puts)
}

func (f *fakeCartRepo) lastPut() (putCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.puts) == 0 {
		return putCall{}, false
	}
	return f.puts[len(f.puts)-1], true
}

func customer(username string) *entity.Identity {
	return &entity.Identity{Username: username, Email: username + "@example.com"}
}

func admin() *entity.Identity {
	return &entity.Identity{Username: "staff", Email: "staff@example.com", Roles: []string{entity.RoleAdmin}}
}

func item(id string) entity.CartItem {
	return entity.CartItem{ID: id, Name: id, Price: decimal.NewFromInt(45)}
}

func waitReady(t *testing.T, e *cart.Engine) {
	t.Helper()
	assert.Eventually(t, e.Ready, time.Second, 5*time.Millisecond,
		"el motor debe quedar ready")
}

func waitPuts(t *testing.T, repo *fakeCartRepo, n int) {
	t.Helper()
	assert.Eventually(t, func() bool { return repo.putCount() >= n },
		time.Second, 5*time.Millisecond, "se esperaban al menos %d guardados", n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Gating de carga (ready)
// ──────────────────────────────────────────────────────────────────────────────

// Mientras la carga de un cliente está en vuelo ningún guardado debe llegar al
// store: un guardado temprano escribiría el carrito por defecto encima del
// carrito remoto real.
func TestEngine_NoGuardaAntesDeTerminarLaCarga(t *testing.T) {
	repo := newFakeCartRepo()
	repo.stored["ana"] = entity.Cart{}.Add(item("croissant-1"))
	repo.getGate = make(chan struct{})

	e := cart.NewEngine(repo, logger.Nop())
	e.OnIdentityChange(customer("ana"))
	require.False(t, e.Ready(), "la carga sigue en vuelo")

	// mutación mientras carga: debe suprimirse, no encolarse
	e.AddItem(item("brownie-2"))
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, repo.putCount(), "ningún guardado antes de ready")

	close(repo.getGate)
	waitReady(t, e)

	// el carrito remoto reemplaza al estado local provisorio
	items := e.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "croissant-1", items[0].ID)
	assert.Zero(t, repo.putCount(), "terminar la carga no dispara guardados")
}

// Con ready, cada mutación persiste el estado resultante.
func TestEngine_GuardaDespuesDeReady(t *testing.T) {
	repo := newFakeCartRepo()
	e := cart.NewEngine(repo, logger.Nop())
	e.OnIdentityChange(customer("ana"))
	waitReady(t, e)

	e.AddItem(item("croissant-1"))
	waitPuts(t, repo, 1)

	last, ok := repo.lastPut()
	require.True(t, ok)
	assert.Equal(t, "ana", last.userID)
	require.Len(t, last.cart, 1)
	assert.Equal(t, 1, last.cart[0].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bypass de identidades sin carrito persistido
// ──────────────────────────────────────────────────────────────────────────────

// Identidad ausente: ready inmediato, sin carga y sin guardados.
func TestEngine_SinIdentidad_ReadyInmediatoYSinGuardados(t *testing.T) {
	repo := newFakeCartRepo()
	e := cart.NewEngine(repo, logger.Nop())

	e.OnIdentityChange(nil)
	assert.True(t, e.Ready())

	e.AddItem(item("croissant-1"))
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, repo.putCount(), "los invitados del motor no persisten")
	assert.Len(t, e.Items(), 1, "el carrito en memoria sí funciona")
}

// Identidad privilegiada: mismo bypass que la ausente.
func TestEngine_IdentidadPrivilegiada_NoCargaNiGuarda(t *testing.T) {
	repo := newFakeCartRepo()
	repo.stored["staff"] = entity.Cart{}.Add(item("croissant-1"))

	e := cart.NewEngine(repo, logger.Nop())
	e.OnIdentityChange(admin())
	assert.True(t, e.Ready(), "ready inmediato, sin carga")
	assert.Empty(t, e.Items(), "el carrito arranca vacío aunque el store tenga datos")

	e.AddItem(item("brownie-2"))
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, repo.putCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// Épocas: cargas y guardados obsoletos
// ──────────────────────────────────────────────────────────────────────────────

// Una carga que completa después de un cambio de identidad se descarta: su
// resultado pertenece a la identidad anterior.
func TestEngine_CargaObsoleta_SeDescarta(t *testing.T) {
	repo := newFakeCartRepo()
	repo.stored["ana"] = entity.Cart{}.Add(item("croissant-1"))
	repo.getGate = make(chan struct{})

	e := cart.NewEngine(repo, logger.Nop())
	e.OnIdentityChange(customer("ana"))

	// la identidad cambia antes de que la carga de ana responda
	e.OnIdentityChange(nil)
	assert.True(t, e.Ready())

	close(repo.getGate)
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, e.Items(), "el carrito de ana no debe filtrarse a la sesión anónima")
}

// Un fallo de carga conserva el carrito local y sube ready igualmente.
func TestEngine_FalloDeCarga_ConservaElLocal(t *testing.T) {
	repo := newFakeCartRepo()
	repo.getErr = errors.New("redis caído")

	e := cart.NewEngine(repo, logger.Nop())
	e.OnIdentityChange(customer("ana"))
	waitReady(t, e)
	assert.Empty(t, e.Items())

	// la sesión sigue operable
	e.AddItem(item("croissant-1"))
	assert.Len(t, e.Items(), 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Coalescencia y orden de guardados
// ──────────────────────────────────────────────────────────────────────────────

// Mutaciones rápidas mientras hay una escritura en vuelo se coalescen en una
// sola escritura pendiente; el estado final del store refleja la última.
func TestEngine_MutacionesRapidas_SeCoalescen(t *testing.T) {
	repo := newFakeCartRepo()
	e := cart.NewEngine(repo, logger.Nop())
	e.OnIdentityChange(customer("ana"))
	waitReady(t, e)

	repo.mu.Lock()
	repo.putGate = make(chan struct{})
	repo.mu.Unlock()

	e.AddItem(item("croissant-1")) // escritura 1 queda bloqueada en la compuerta
	e.AddItem(item("croissant-1"))
	e.AddItem(item("brownie-2"))
	e.SetQuantity("brownie-2", 5) // solo este snapshot debe quedar pendiente

	repo.mu.Lock()
	close(repo.putGate)
	repo.putGate = nil
	repo.mu.Unlock()

	waitPuts(t, repo, 2)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 2, repo.putCount(),
		"una escritura en vuelo más una pendiente coalescida")

	last, ok := repo.lastPut()
	require.True(t, ok)
	require.Len(t, last.cart, 2)
	assert.Equal(t, 2, last.cart[0].Quantity)
	assert.Equal(t, 5, last.cart[1].Quantity)
}

// Un fallo de guardado no rompe la sesión ni descarta el carrito en memoria.
func TestEngine_FalloDeGuardado_NoAfectaLaSesion(t *testing.T) {
	repo := newFakeCartRepo()
	repo.putErr = errors.New("redis caído")

	e := cart.NewEngine(repo, logger.Nop())
	e.OnIdentityChange(customer("ana"))
	waitReady(t, e)

	e.AddItem(item("croissant-1"))
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, e.Items(), 1, "la memoria sigue siendo la fuente de verdad")
}

// Un guardado encolado para la identidad anterior no debe escribirse tras el
// cambio de identidad.
func TestEngine_GuardadoObsoleto_SeDescarta(t *testing.T) {
	repo := newFakeCartRepo()
	e := cart.NewEngine(repo, logger.Nop())
	e.OnIdentityChange(customer("ana"))
	waitReady(t, e)

	repo.mu.Lock()
	repo.putGate = make(chan struct{})
	repo.mu.Unlock()

	e.AddItem(item("croissant-1")) // escritura de ana bloqueada
	e.AddItem(item("brownie-2"))   // pendiente de ana

	// ana cierra sesión antes de que el saver drene
	e.OnIdentityChange(nil)

	repo.mu.Lock()
	close(repo.putGate)
	repo.putGate = nil
	repo.mu.Unlock()

	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, repo.putCount(), 1,
		"a lo sumo la escritura que ya estaba en vuelo; la pendiente se descarta")
	if last, ok := repo.lastPut(); ok {
		assert.Len(t, last.cart, 1, "la pendiente con brownie nunca debe llegar al store")
	}
}
