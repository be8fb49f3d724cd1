package entity

import "github.com/shopspring/decimal"

// CartItem una línea del carrito. Quantity siempre es >= 1 mientras la línea
// exista: bajar a cero o menos elimina la línea en vez de persistir cantidades
// no positivas.
type CartItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imageUrl"`
	Quantity int             `json:"quantity"`
}

// Cart secuencia ordenada de líneas: el orden de iteración es el orden en que
// cada id se vio por primera vez. A lo sumo una línea por id.
type Cart []CartItem

// Add incrementa en 1 la cantidad si el id ya existe (conservando posición);
// si no, agrega la línea al final con cantidad 1.
func (c Cart) Add(item CartItem) Cart {
	for i := range c {
		if c[i].ID == item.ID {
			out := make(Cart, len(c))
			copy(out, c)
			out[i].Quantity++
			return out
		}
	}
	item.Quantity = 1
	out := make(Cart, 0, len(c)+1)
	out = append(out, c...)
	return append(out, item)
}

// Remove elimina la línea con ese id; no-op si no existe.
func (c Cart) Remove(id string) Cart {
	out := make(Cart, 0, len(c))
	for _, it := range c {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// SetQuantity fija la cantidad de la línea en su posición. Cantidad <= 0
// equivale a Remove.
func (c Cart) SetQuantity(id string, quantity int) Cart {
	if quantity <= 0 {
		return c.Remove(id)
	}
	out := make(Cart, len(c))
	copy(out, c)
	for i := range out {
		if out[i].ID == id {
			out[i].Quantity = quantity
		}
	}
	return out
}

// Total suma precio * cantidad de todas las líneas.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Clone copia superficial; las líneas son valores.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}
