package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/cafe-demo/internal/config"
	"github.com/MikeMC777/cafe-demo/internal/mail"
)

const rule = "═══════════════════════════════════════"

func itemsText(items []Item) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		sub := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		lines = append(lines, fmt.Sprintf("  • %s x%d - €%s", it.ProductName, it.Quantity, sub.StringFixed(2)))
	}
	return strings.Join(lines, "\n")
}

func customerEmail(o *Order, biz config.BusinessConfig, at time.Time) mail.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s,\n\n", o.CustomerName)
	fmt.Fprintf(&b, "¡Gracias por tu pedido en %s! ☕\n\n", biz.Name)
	fmt.Fprintf(&b, "DETALLES DE TU PEDIDO:\n%s\n", rule)
	fmt.Fprintf(&b, "Número de pedido: #%d\n", o.ID)
	fmt.Fprintf(&b, "Fecha: %s\n\n", at.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "PRODUCTOS:\n%s\n\n", itemsText(o.Items))
	fmt.Fprintf(&b, "TOTAL: €%.2f\n", o.TotalAmount)
	if o.Notes != "" {
		fmt.Fprintf(&b, "\nNOTAS: %s\n", o.Notes)
	}
	fmt.Fprintf(&b, "%s\n\n", rule)
	contact := o.CustomerPhone
	if contact == "" {
		contact = "email proporcionado"
	}
	b.WriteString("Tu pedido está siendo preparado y estará listo pronto.\n")
	fmt.Fprintf(&b, "Te contactaremos al %s cuando esté listo para recoger.\n\n", contact)
	fmt.Fprintf(&b, "¡Gracias por elegirnos!\n\nEl equipo de %s\n\n", biz.Name)
	fmt.Fprintf(&b, "---\nPara cualquier consulta sobre tu pedido, responde a este email mencionando el número #%d.\n", o.ID)

	return mail.Message{
		To:      o.CustomerEmail,
		Subject: fmt.Sprintf("¡Pedido confirmado #%d! - %s", o.ID, biz.Name),
		Body:    b.String(),
	}
}

func operatorEmail(o *Order, at time.Time) mail.Message {
	phone := o.CustomerPhone
	if phone == "" {
		phone = "No proporcionado"
	}
	notes := "Sin notas especiales"
	if o.Notes != "" {
		notes = "NOTAS DEL CLIENTE: " + o.Notes
	}

	var b strings.Builder
	fmt.Fprintf(&b, "NUEVO PEDIDO RECIBIDO:\n%s\n", rule)
	fmt.Fprintf(&b, "Número: #%d\n", o.ID)
	fmt.Fprintf(&b, "Cliente: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "Email: %s\n", o.CustomerEmail)
	fmt.Fprintf(&b, "Teléfono: %s\n", phone)
	fmt.Fprintf(&b, "Fecha: %s\n\n", at.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "PRODUCTOS PEDIDOS:\n%s\n\n", itemsText(o.Items))
	fmt.Fprintf(&b, "TOTAL: €%.2f\n\n%s\n%s\n\n", o.TotalAmount, notes, rule)
	b.WriteString("Accede al panel de administración para gestionar este pedido.\n")

	return mail.Message{
		Subject: fmt.Sprintf("Nuevo Pedido #%d - %s", o.ID, o.CustomerName),
		Body:    b.String(),
	}
}
