// Package pdf genera el recibo imprimible de una orden para la consola admin.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Bakeria  │  N° de orden + fecha/hora │
//	│  ───────────────────────────────────────────  │
//	│  ENTREGA: nombre / teléfono / método (+dir.)  │
//	│  ───────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Precio | Subtotal   │
//	│  ───────────────────────────────────────────  │
//	│  TOTAL + estado actual de la orden            │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Kanyapat-samee/Bakeria/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorBrand = &props.Color{Red: 156, Green: 25, Blue: 29} // el rojo Bakeria
	colorGray  = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var bahtPrinter = message.NewPrinter(language.Thai)

// ReceiptGenerator genera recibos de orden usando Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateOrderReceipt genera el PDF del recibo y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateOrderReceipt(_ context.Context, order *entity.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Bakeria — recibo de orden", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorBrand, Thickness: 0.5}))
	m.AddRows(shippingRow(order.Shipping))
	m.AddRows(line.NewRow(1, props.Line{Color: colorBrand, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorBrand, Thickness: 0.3}))
	m.AddRows(totalRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(order *entity.Order) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("Bakeria", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorBrand, Top: 1,
			}),
			text.New("Recibo de orden", props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(6).Add(
			text.New(order.OrderID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New(order.CreatedAt.Format("02/01/2006")+"  "+order.Time, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func shippingRow(s entity.ShippingInfo) core.Row {
	detail := fmt.Sprintf("Tel: %s   |   Método: %s", s.Phone, s.Method)
	if s.Method == entity.MethodDelivery {
		detail += "   |   " + s.Address
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("ENTREGA: "+s.Name, props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorBrand, Top: 1,
			}),
			text.New(detail, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorBrand, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("Precio", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func itemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		subtotal := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1},
			)),
			col.New(2).Add(text.New(
				formatBaht(it.Price),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(3).Add(text.New(
				formatBaht(subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
		))
	}
	return result
}

func totalRow(order *entity.Order) core.Row {
	return row.New(10).Add(
		col.New(7).Add(
			text.New("Estado: "+string(order.Status), props.Text{
				Size: 9, Top: 2, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TOTAL  "+formatBaht(order.Total), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorBrand, Top: 1,
			}),
		),
	)
}

// formatBaht formatea un monto en Baht con los dígitos agrupados según la
// localización tailandesa.
func formatBaht(d decimal.Decimal) string {
	f, _ := d.Float64()
	return bahtPrinter.Sprint(currency.Symbol(currency.THB.Amount(f)))
}
