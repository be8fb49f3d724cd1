package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kanyapat-samee/Bakeria/internal/application/session"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
	"github.com/Kanyapat-samee/Bakeria/pkg/logger"
)

// fakeCartRepo store vacío que siempre responde de inmediato.
type fakeCartRepo struct {
	mu     sync.Mutex
	stored map[string]entity.Cart
}

func (f *fakeCartRepo) Get(_ context.Context, userID string) (entity.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stored[userID].Clone(), nil
}

func (f *fakeCartRepo) Put(_ context.Context, userID string, c entity.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stored == nil {
		f.stored = map[string]entity.Cart{}
	}
	f.stored[userID] = c.Clone()
	return nil
}

func (f *fakeCartRepo) snapshot(userID string) entity.Cart {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stored[userID].Clone()
}

func TestManager_MismaClave_MismaSesion(t *testing.T) {
	m := session.NewManager(&fakeCartRepo{}, logger.Nop())

	a := m.Session("guest:sid-1", nil)
	b := m.Session("guest:sid-1", nil)
	require.Same(t, a, b, "la misma clave debe devolver la misma sesión")
	assert.Same(t, a.Cart, b.Cart)
}

func TestManager_ClavesDistintas_MotoresIndependientes(t *testing.T) {
	m := session.NewManager(&fakeCartRepo{}, logger.Nop())

	a := m.Session("guest:sid-1", nil)
	b := m.Session("guest:sid-2", nil)
	require.NotSame(t, a, b)

	a.Cart.AddItem(entity.CartItem{ID: "croissant-1", Name: "Croissant"})
	assert.Len(t, a.Cart.Items(), 1)
	assert.Empty(t, b.Cart.Items(), "los carritos de sesiones distintas no se comparten")
}

func TestManager_Drop_DesmontaYPermiteRecrear(t *testing.T) {
	m := session.NewManager(&fakeCartRepo{}, logger.Nop())

	a := m.Session("user:ana", &entity.Identity{Username: "ana", Email: "ana@example.com"})
	a.Cart.AddItem(entity.CartItem{ID: "croissant-1", Name: "Croissant"})
	m.Drop("user:ana")

	b := m.Session("user:ana", nil)
	require.NotSame(t, a, b, "después del drop la clave produce una sesión nueva")
	assert.Empty(t, b.Cart.Items())
}

// La cuenta detrás de una clave existente puede volverse privilegiada entre
// peticiones (ganó el grupo employee). El manager debe re-observar la
// identidad en el motor: el carrito se vacía y ningún guardado posterior
// llega al store bajo la identidad elevada.
func TestManager_ElevacionDeRolEnLaMismaClave_CortaLosGuardados(t *testing.T) {
	repo := &fakeCartRepo{}
	m := session.NewManager(repo, logger.Nop())

	cliente := &entity.Identity{Username: "ana", Email: "ana@example.com"}
	a := m.Session("user:ana", cliente)
	assert.Eventually(t, a.Cart.Ready, time.Second, 5*time.Millisecond)

	a.Cart.AddItem(entity.CartItem{ID: "croissant-1", Name: "Croissant"})
	assert.Eventually(t, func() bool { return len(repo.snapshot("ana")) == 1 },
		time.Second, 5*time.Millisecond, "como cliente sus mutaciones sí persisten")

	// misma clave, identidad ahora con rol privilegiado
	empleada := &entity.Identity{Username: "ana", Email: "ana@example.com", Roles: []string{entity.RoleEmployee}}
	b := m.Session("user:ana", empleada)
	require.Same(t, a, b, "la clave sigue apuntando a la misma sesión")
	assert.True(t, b.Cart.Ready(), "identidad privilegiada: ready inmediato, sin carga")
	assert.Empty(t, b.Cart.Items(), "el carrito de cliente no se arrastra a la identidad elevada")

	before := repo.snapshot("ana")
	b.Cart.AddItem(entity.CartItem{ID: "brownie-2", Name: "Brownie"})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, before, repo.snapshot("ana"),
		"una identidad privilegiada nunca debe tener carrito de cliente persistido")
}

// La misma identidad en peticiones sucesivas no reinicializa el motor: el
// carrito en memoria de la sesión sobrevive.
func TestManager_MismaIdentidad_NoReinicializaElMotor(t *testing.T) {
	m := session.NewManager(&fakeCartRepo{}, logger.Nop())

	a := m.Session("guest:sid-1", nil)
	a.Cart.AddItem(entity.CartItem{ID: "croissant-1", Name: "Croissant"})

	b := m.Session("guest:sid-1", nil)
	require.Same(t, a, b)
	assert.Len(t, b.Cart.Items(), 1, "el carrito no debe vaciarse si la identidad no cambió")
}

func TestManager_DropClaveInexistente_NoOp(t *testing.T) {
	m := session.NewManager(&fakeCartRepo{}, logger.Nop())
	m.Drop("no-existe")
}
