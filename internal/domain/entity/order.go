package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus etiqueta de estado de una orden. En el store es un string
// abierto; la API solo escribe los cinco valores nombrados. El camino
// Pending → Paid → In progress → Ready → Complete es el recorrido sugerido,
// no hay guardas de transición: cualquier actor autorizado puede fijar
// cualquier etiqueta en cualquier momento.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusPaid       OrderStatus = "Paid"
	StatusInProgress OrderStatus = "In progress"
	StatusReady      OrderStatus = "Ready"
	StatusComplete   OrderStatus = "Complete"
)

// Statuses los cinco estados, en el orden del recorrido sugerido.
func Statuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusPaid, StatusInProgress, StatusReady, StatusComplete}
}

// IsValidStatus indica si la etiqueta pertenece al conjunto nombrado.
func IsValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusPaid, StatusInProgress, StatusReady, StatusComplete:
		return true
	}
	return false
}

// Métodos de entrega.
const (
	MethodDelivery = "delivery"
	MethodPickup   = "pickup"
)

// OrderItem línea de una orden: snapshot de la línea del carrito al momento
// del checkout (el precio no sigue al catálogo).
type OrderItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// ShippingInfo datos de entrega. Address solo es obligatorio para delivery.
type ShippingInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	Method  string `json:"method"` // delivery | pickup
}

// Order registro persistido de un checkout. OrderID se genera una sola vez en
// la creación y no cambia; UserID es "guest" cuando no hay identidad
// resoluble. Solo Status muta después de creada; nunca se borra.
type Order struct {
	OrderID   string          `json:"orderId"`
	UserID    string          `json:"userId"`
	Items     []OrderItem     `json:"items"`
	Shipping  ShippingInfo    `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	Time      string          `json:"time"` // hora local de creación, "HH:mm:ss"
}

// GuestUserID el userId literal de los checkouts sin identidad.
const GuestUserID = "guest"
