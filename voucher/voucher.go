// Package voucher turns a finalized order into the printable payment
// voucher used for in-person cash settlement. Building the document is a
// pure transformation: identical input always yields identical content,
// so a voucher can be regenerated later for the same order and match the
// original.
package voucher

import (
	"fmt"
	"strings"
	"time"

	"github.com/RAMIR007/konfort-total2/models"
	"github.com/shopspring/decimal"
)

const (
	fontSizeTitle = 20
	fontSizeBody  = 12
	fontSizeTotal = 14
)

type Line struct {
	Text string
	Size float64
}

// Document is the renderable voucher. CreatedAt is the order's creation
// time and doubles as the PDF creation date so renders are reproducible.
type Document struct {
	CreatedAt time.Time
	Lines     []Line
}

// Text returns the voucher content as plain text, one line per entry.
func (d Document) Text() string {
	texts := make([]string, len(d.Lines))
	for i, line := range d.Lines {
		texts[i] = line.Text
	}
	return strings.Join(texts, "\n")
}

func formatCUP(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2) + " CUP"
}

// BuildDocument composes the voucher for a composed order. Phone and
// address lines are omitted when the purchaser record has none.
func BuildDocument(order models.Order, purchaser models.UserSummary) Document {
	lines := []Line{
		{Text: "Vale de Pago - Konfort Total", Size: fontSizeTitle},
		{Text: "", Size: fontSizeBody},
		{Text: "Datos del Cliente:", Size: fontSizeBody},
		{Text: "Nombre: " + purchaser.Name, Size: fontSizeBody},
		{Text: "Email: " + purchaser.Email, Size: fontSizeBody},
	}
	if purchaser.Phone != "" {
		lines = append(lines, Line{Text: "Teléfono: " + purchaser.Phone, Size: fontSizeBody})
	}
	if purchaser.Address != "" {
		lines = append(lines, Line{Text: "Dirección: " + purchaser.Address, Size: fontSizeBody})
	}

	lines = append(lines,
		Line{Text: "", Size: fontSizeBody},
		Line{Text: "Detalles de la Orden:", Size: fontSizeBody},
		Line{Text: fmt.Sprintf("Número de Orden: %d", order.ID), Size: fontSizeBody},
		Line{Text: "Fecha: " + order.CreatedAt.Format("02/01/2006"), Size: fontSizeBody},
		Line{Text: "Dirección de Envío: " + order.ShippingAddress, Size: fontSizeBody},
		Line{Text: "", Size: fontSizeBody},
		Line{Text: "Productos:", Size: fontSizeBody},
	)

	for _, item := range order.OrderItems {
		lines = append(lines, Line{
			Text: fmt.Sprintf("%s - Cantidad: %d - Precio: %s",
				item.Product.Name, item.Quantity, formatCUP(item.Price)),
			Size: fontSizeBody,
		})
	}

	lines = append(lines,
		Line{Text: "", Size: fontSizeBody},
		Line{Text: "Total a Pagar: " + formatCUP(order.Total), Size: fontSizeTotal},
		Line{Text: "", Size: fontSizeBody},
		Line{Text: "Instrucciones de Pago:", Size: fontSizeBody},
		Line{Text: "Este vale es válido para pago en efectivo en nuestras tiendas físicas.", Size: fontSizeBody},
		Line{Text: "Presente este documento al momento de recoger su pedido.", Size: fontSizeBody},
		Line{Text: "Para pagos en efectivo, diríjase a cualquiera de nuestras sucursales en Cuba.", Size: fontSizeBody},
		Line{Text: "Moneda: Pesos Cubanos (CUP)", Size: fontSizeBody},
	)

	return Document{CreatedAt: order.CreatedAt, Lines: lines}
}
