package services

import (
	"fmt"
	"strings"

	"cafe-site/models"
)

const (
	whatsAppBaseURL = "https://wa.me/"
	mapsBaseURL     = "https://maps.google.com/maps?q="

	MinOrderQuantity = 1
	MaxOrderQuantity = 10
)

// OrderRequest is what a customer picks in the order dialog.
type OrderRequest struct {
	Size     string
	Quantity int
	Note     string
}

// SelectedSize returns the requested size name, or the first size of the
// item when none was requested.
func SelectedSize(item models.MenuItem, size string) string {
	if size != "" {
		return size
	}
	if item.HasSizes() {
		return item.Sizes[0].Name
	}
	return ""
}

// UnitPrice prefers the price of the selected size over the base price.
// Unknown sizes fall back to the base price.
func UnitPrice(item models.MenuItem, size string) float64 {
	if s, ok := item.FindSize(SelectedSize(item, size)); ok {
		return s.Price
	}
	return item.Price
}

func ClampQuantity(q int) int {
	if q < MinOrderQuantity {
		return MinOrderQuantity
	}
	if q > MaxOrderQuantity {
		return MaxOrderQuantity
	}
	return q
}

// QuickOrderMessage is the one-line message sent for a direct order of one unit.
func QuickOrderMessage(item models.MenuItem) string {
	return fmt.Sprintf("Hola, quiero pedir: %s - %s | Cant: 1 | Precio: $%.2f",
		item.Category, item.Name, UnitPrice(item, ""))
}

// OrderMessage is the detailed message sent from the order dialog.
func OrderMessage(item models.MenuItem, req OrderRequest) string {
	qty := ClampQuantity(req.Quantity)
	size := SelectedSize(item, req.Size)
	unit := UnitPrice(item, size)

	var b strings.Builder
	b.WriteString("🛒 *NUEVO PEDIDO*\n\n")
	fmt.Fprintf(&b, "📋 *Producto:* %s\n", item.Name)
	fmt.Fprintf(&b, "🏷️ *Categoría:* %s\n", models.CategoryLabel(item.Category))
	if size != "" {
		fmt.Fprintf(&b, "📏 *Tamaño:* %s\n", size)
	}
	fmt.Fprintf(&b, "🔢 *Cantidad:* %d\n", qty)
	fmt.Fprintf(&b, "💰 *Precio unitario:* $%.2f\n", unit)
	fmt.Fprintf(&b, "💵 *Total:* $%.2f\n", unit*float64(qty))
	if note := strings.TrimSpace(req.Note); note != "" {
		fmt.Fprintf(&b, "📝 *Nota especial:* %s\n", note)
	}
	b.WriteString("\n¡Gracias por elegir nuestro café! ☕")
	return b.String()
}

// WhatsAppLink builds a wa.me deep link. Non-digits are stripped from the
// number; text is omitted when empty.
func WhatsAppLink(number, text string) string {
	link := whatsAppBaseURL + digitsOnly(number)
	if text != "" {
		link += "?text=" + EncodeURIComponent(text)
	}
	return link
}

// OrderLink picks the quick message for a plain one-unit order of an item
// without sizes, and the detailed one otherwise.
func OrderLink(number string, item models.MenuItem, req OrderRequest) string {
	if !item.HasSizes() && req.Size == "" && ClampQuantity(req.Quantity) == 1 && strings.TrimSpace(req.Note) == "" {
		return WhatsAppLink(number, QuickOrderMessage(item))
	}
	return WhatsAppLink(number, OrderMessage(item, req))
}

func MapsLink(address string) string {
	return mapsBaseURL + EncodeURIComponent(address)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EncodeURIComponent percent-encodes s the way browsers do: everything but
// A-Z a-z 0-9 and -_.!~*'() is escaped byte by byte, spaces as %20.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isURIUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
