package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product un producto del catálogo de la panadería.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    string // bread, cake, pastry, drink
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
