// Package order implementa el checkout y el ciclo de estados de las órdenes.
//
// El ciclo es una etiqueta, no una máquina de estados estricta: el camino
// Pending → Paid → In progress → Ready → Complete es el recorrido sugerido,
// pero cualquier actor autorizado puede fijar cualquiera de los cinco estados
// en cualquier momento, sin errores de transición ilegal.
package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Kanyapat-samee/Bakeria/internal/domain"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
	"github.com/Kanyapat-samee/Bakeria/internal/domain/repository"
	"github.com/Kanyapat-samee/Bakeria/pkg/logger"
)

// UseCase casos de uso sobre el store de órdenes.
type UseCase struct {
	repo repository.OrderRepository
	log  *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.OrderRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, log: log.Component("order")}
}

// Checkout crea la orden: id fresco, userId de la identidad actual o "guest",
// timestamp de creación más la hora local formateada, estado inicial Pending,
// y una única escritura completa al store. Los errores de la escritura se
// devuelven al caller tal cual; no hay reintento automático en una operación
// que mueve dinero.
func (uc *UseCase) Checkout(
	ctx context.Context,
	ident *entity.Identity,
	items []entity.OrderItem,
	shipping entity.ShippingInfo,
	total decimal.Decimal,
) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if shipping.Name == "" || shipping.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	switch shipping.Method {
	case entity.MethodPickup:
	case entity.MethodDelivery:
		if shipping.Address == "" {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	userID := entity.GuestUserID
	if ident != nil {
		if name := strings.TrimSpace(ident.Username); name != "" {
			userID = name
		}
	}

	now := time.Now()
	order := &entity.Order{
		OrderID:   uuid.NewString(),
		UserID:    userID,
		Items:     items,
		Shipping:  shipping,
		Total:     total,
		Status:    entity.StatusPending,
		CreatedAt: now.UTC(),
		Time:      now.Format("15:04:05"),
	}

	if err := uc.repo.Create(ctx, order); err != nil {
		uc.log.Error().Err(err).Str("order", order.OrderID).Msg("fallo al guardar la orden")
		return nil, err
	}
	uc.log.Info().Str("order", order.OrderID).Str("user", userID).Msg("orden creada")
	return order, nil
}

// ListOrders scan completo del store de órdenes. Operación privilegiada: el
// gate por rol vive en la frontera HTTP. El orden de los resultados lo define
// el store; la vista que consume ordena y filtra por su cuenta.
func (uc *UseCase) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	return uc.repo.ListAll(ctx)
}

// ListUserOrders órdenes del usuario indicado.
func (uc *UseCase) ListUserOrders(ctx context.Context, userID string) ([]*entity.Order, error) {
	return uc.repo.ListByUser(ctx, userID)
}

// GetOrder una orden por clave (userID, orderID).
func (uc *UseCase) GetOrder(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	order, err := uc.repo.GetByID(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// SetStatus actualiza únicamente el campo status de la orden (userID, orderID).
// Solo valida pertenencia al conjunto de etiquetas; no hay guardas de
// transición. Los errores del store se devuelven al caller.
func (uc *UseCase) SetStatus(ctx context.Context, userID, orderID string, status entity.OrderStatus) error {
	if !entity.IsValidStatus(status) {
		return domain.ErrInvalidStatus
	}
	if err := uc.repo.UpdateStatus(ctx, userID, orderID, status); err != nil {
		return err
	}
	uc.log.Info().Str("order", orderID).Str("status", string(status)).Msg("estado actualizado")
	return nil
}
