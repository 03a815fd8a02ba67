package inquiry

import (
	"fmt"
	"strings"
	"time"

	"github.com/MikeMC777/cafe-demo/internal/config"
	"github.com/MikeMC777/cafe-demo/internal/mail"
)

const stamp = "2006-01-02 15:04:05"

func contactOperatorEmail(m *ContactMessage, biz config.BusinessConfig, at time.Time) mail.Message {
	var b strings.Builder
	b.WriteString("Nuevo mensaje de contacto recibido:\n\n")
	fmt.Fprintf(&b, "Nombre: %s\nEmail: %s\nAsunto: %s\n\n", m.Name, m.Email, m.Subject)
	fmt.Fprintf(&b, "Mensaje:\n%s\n\n---\n", m.Message)
	fmt.Fprintf(&b, "Este mensaje fue enviado desde el formulario de contacto de %s.\n", biz.Name)
	fmt.Fprintf(&b, "Fecha: %s\nID del mensaje: %d\n", at.Format(stamp), m.ID)
	return mail.Message{
		Subject: "Nuevo mensaje de contacto: " + m.Subject,
		Body:    b.String(),
	}
}

func welcomeEmail(email, name string, biz config.BusinessConfig, at time.Time) mail.Message {
	if name == "" {
		name = "amigo cafetero"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "¡Hola %s!\n\n", name)
	fmt.Fprintf(&b, "¡Te damos la bienvenida al newsletter de %s! ☕\n\n", biz.Name)
	b.WriteString("Ahora recibirás:\n")
	b.WriteString("✅ Ofertas exclusivas y descuentos especiales\n")
	b.WriteString("✅ Noticias sobre nuevos productos y eventos\n")
	b.WriteString("✅ Tips y curiosidades del mundo del café\n")
	b.WriteString("✅ Invitaciones a eventos especiales\n\n")
	b.WriteString("¡Gracias por unirte a nuestra comunidad cafetera!\n\n")
	fmt.Fprintf(&b, "Con cariño,\nEl equipo de %s\n\n---\n", biz.Name)
	fmt.Fprintf(&b, "Email: %s\nFecha: %s\n", email, at.Format(stamp))
	return mail.Message{
		To:      email,
		Subject: fmt.Sprintf("¡Bienvenido al Newsletter de %s! ☕", biz.Name),
		Body:    b.String(),
	}
}

func subscriptionOperatorEmail(email, name string, biz config.BusinessConfig, at time.Time) mail.Message {
	if name == "" {
		name = "No proporcionado"
	}
	return mail.Message{
		Subject: "Nueva suscripción al newsletter - " + biz.Name,
		Body: fmt.Sprintf("Nueva suscripción al newsletter:\n\nEmail: %s\nNombre: %s\nFecha: %s\n",
			email, name, at.Format(stamp)),
	}
}

func applicationOperatorEmail(a *JobApplication, biz config.BusinessConfig, at time.Time) mail.Message {
	cv := a.CVFilename
	if cv == "" {
		cv = "No adjuntado"
	}
	var b strings.Builder
	b.WriteString("Nueva aplicación de trabajo recibida:\n\n")
	fmt.Fprintf(&b, "Nombre: %s\nEmail: %s\nTeléfono: %s\nPosición: %s\n\n", a.Name, a.Email, a.Phone, a.Position)
	fmt.Fprintf(&b, "Experiencia:\n%s\n\nMotivación:\n%s\n\nCV: %s\n\n---\n", a.Experience, a.Motivation, cv)
	fmt.Fprintf(&b, "Esta aplicación fue enviada desde el formulario \"Únete al Equipo\" de %s.\n", biz.Name)
	fmt.Fprintf(&b, "Fecha: %s\nID de la aplicación: %d\n", at.Format(stamp), a.ID)
	return mail.Message{
		Subject: "Nueva aplicación de trabajo: " + a.Position,
		Body:    b.String(),
	}
}

func applicationConfirmation(a *JobApplication, biz config.BusinessConfig, at time.Time) mail.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s,\n\n", a.Name)
	fmt.Fprintf(&b, "¡Gracias por tu interés en formar parte del equipo de %s! ☕\n\n", biz.Name)
	fmt.Fprintf(&b, "Hemos recibido tu aplicación para la posición de %s.\n\n", a.Position)
	b.WriteString("Nuestro equipo revisará tu aplicación y se pondrá en contacto contigo ")
	b.WriteString("en los próximos días si tu perfil coincide con lo que estamos buscando.\n\n")
	b.WriteString("¡Esperamos conocerte pronto!\n\n")
	fmt.Fprintf(&b, "Con cariño,\nEl equipo de %s\n\n---\n", biz.Name)
	fmt.Fprintf(&b, "Fecha de aplicación: %s\nNúmero de referencia: #%d\n", at.Format(stamp), a.ID)
	return mail.Message{
		To:      a.Email,
		Subject: "¡Hemos recibido tu aplicación! - " + biz.Name,
		Body:    b.String(),
	}
}

func newsletterEmail(s Subscriber, subject, content string, biz config.BusinessConfig) mail.Message {
	name := s.Name
	if name == "" {
		name = "amigo cafetero"
	}
	return mail.Message{
		To:      s.Email,
		Subject: subject,
		Body:    fmt.Sprintf("Hola %s,\n\n%s\n\n¡Gracias por ser parte de %s!", name, content, biz.Name),
	}
}
