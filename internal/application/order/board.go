package order

import (
	"context"
	"sync"

	"github.com/Kanyapat-samee/Bakeria/internal/domain"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
)

// Row una fila del tablero de órdenes. PendingConfirm marca el lapso entre el
// reflejo optimista local y la confirmación del store: la ventana de
// inconsistencia deja de ser implícita y pasa a ser un estado observable.
type Row struct {
	Order          entity.Order `json:"order"`
	PendingConfirm bool         `json:"pendingConfirm,omitempty"`
}

// Board la vista en memoria de la consola admin sobre las órdenes.
//
// Un cambio de estado se aplica en dos fases: primero el reflejo local
// marcado pending-confirm, después la escritura remota; si confirma se limpia
// la marca, si falla se revierte la fila y el error sube al caller. El store
// resuelve ediciones concurrentes de dos admins con last-write-wins; el
// tablero no hace locking distribuido.
type Board struct {
	uc *UseCase

	mu   sync.Mutex
	rows []*Row
}

// NewBoard construye el tablero.
func NewBoard(uc *UseCase) *Board {
	return &Board{uc: uc}
}

// Refresh recarga todas las filas desde el store.
func (b *Board) Refresh(ctx context.Context) error {
	orders, err := b.uc.ListOrders(ctx)
	if err != nil {
		return err
	}
	rows := make([]*Row, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, &Row{Order: *o})
	}
	b.mu.Lock()
	b.rows = rows
	b.mu.Unlock()
	return nil
}

// Rows snapshot de las filas.
func (b *Board) Rows() []Row {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Row, 0, len(b.rows))
	for _, r := range b.rows {
		out = append(out, *r)
	}
	return out
}

// SetStatus cambia el estado de una orden con reflejo optimista.
func (b *Board) SetStatus(ctx context.Context, userID, orderID string, status entity.OrderStatus) error {
	if !entity.IsValidStatus(status) {
		return domain.ErrInvalidStatus
	}

	b.mu.Lock()
	row := b.findLocked(userID, orderID)
	if row == nil {
		b.mu.Unlock()
		return domain.ErrOrderNotFound
	}
	previous := row.Order.Status
	row.Order.Status = status
	row.PendingConfirm = true
	b.mu.Unlock()

	err := b.uc.SetStatus(ctx, userID, orderID, status)

	b.mu.Lock()
	defer b.mu.Unlock()
	// la fila puede haber sido reemplazada por un Refresh mientras tanto
	if row = b.findLocked(userID, orderID); row != nil {
		if err != nil {
			row.Order.Status = previous
		}
		row.PendingConfirm = false
	}
	return err
}

func (b *Board) findLocked(userID, orderID string) *Row {
	for _, r := range b.rows {
		if r.Order.UserID == userID && r.Order.OrderID == orderID {
			return r
		}
	}
	return nil
}
