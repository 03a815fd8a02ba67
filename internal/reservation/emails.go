package reservation

import (
	"fmt"
	"strings"

	"github.com/MikeMC777/cafe-demo/internal/config"
	"github.com/MikeMC777/cafe-demo/internal/mail"
)

const rule = "═══════════════════════════════════════"

func customerEmail(r *Reservation, biz config.BusinessConfig) mail.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s,\n\n", r.CustomerName)
	fmt.Fprintf(&b, "¡Tu reserva en %s ha sido registrada! ☕\n\n", biz.Name)
	fmt.Fprintf(&b, "DETALLES DE TU RESERVA:\n%s\n", rule)
	fmt.Fprintf(&b, "Número de reserva: #%d\n", r.ID)
	fmt.Fprintf(&b, "Fecha: %s\n", r.Date)
	fmt.Fprintf(&b, "Hora: %s\n", r.Time)
	fmt.Fprintf(&b, "Número de personas: %d\n", r.PartySize)
	if r.Notes != "" {
		fmt.Fprintf(&b, "\nNOTAS: %s\n", r.Notes)
	}
	fmt.Fprintf(&b, "%s\n\n", rule)
	b.WriteString("Te esperamos en la fecha y hora indicada.\n")
	b.WriteString("Si necesitas hacer cambios o cancelar, por favor contáctanos con al menos 2 horas de anticipación.\n\n")
	fmt.Fprintf(&b, "Teléfono de contacto: %s\n\n", biz.Phone)
	fmt.Fprintf(&b, "¡Nos vemos pronto!\n\nEl equipo de %s\n\n", biz.Name)
	fmt.Fprintf(&b, "---\nPara cualquier consulta sobre tu reserva, responde a este email mencionando el número #%d.\n", r.ID)

	return mail.Message{
		To:      r.CustomerEmail,
		Subject: fmt.Sprintf("¡Reserva confirmada #%d! - %s", r.ID, biz.Name),
		Body:    b.String(),
	}
}

func operatorEmail(r *Reservation) mail.Message {
	notes := "Sin notas especiales"
	if r.Notes != "" {
		notes = "NOTAS DEL CLIENTE: " + r.Notes
	}

	var b strings.Builder
	fmt.Fprintf(&b, "NUEVA RESERVA RECIBIDA:\n%s\n", rule)
	fmt.Fprintf(&b, "Número: #%d\n", r.ID)
	fmt.Fprintf(&b, "Cliente: %s\n", r.CustomerName)
	fmt.Fprintf(&b, "Email: %s\n", r.CustomerEmail)
	fmt.Fprintf(&b, "Teléfono: %s\n\n", r.CustomerPhone)
	fmt.Fprintf(&b, "Fecha: %s\nHora: %s\nPersonas: %d\n\n", r.Date, r.Time, r.PartySize)
	fmt.Fprintf(&b, "%s\n%s\n\n", notes, rule)
	b.WriteString("Accede al panel de administración para gestionar esta reserva.\n")

	return mail.Message{
		Subject: fmt.Sprintf("Nueva Reserva #%d - %s", r.ID, r.CustomerName),
		Body:    b.String(),
	}
}
