package chat

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type rule struct {
	keywords []string
	reply    func(r *Resolver, ctx context.Context) string
}

// rules are tried in order; the first rule with a keyword contained in the
// folded message wins.
var rules = []rule{
	{
		keywords: []string{"hola", "buenas", "hey", "hi"},
		reply: func(r *Resolver, _ context.Context) string {
			return fmt.Sprintf("¡Hola! 👋 Bienvenido a %s. ¿En qué puedo ayudarte? Puedes preguntarme sobre nuestro menú, horarios o ubicación.", r.biz.Name)
		},
	},
	{
		keywords: []string{"menu", "carta", "comida", "bebida"},
		reply: func(r *Resolver, ctx context.Context) string {
			return fmt.Sprintf("📋 Aquí tienes nuestro menú:\n\n%s\n📞 Para pedidos: %s", menuContext(ctx, r.menu, r.biz.Name), r.biz.Phone)
		},
	},
	{
		keywords: []string{"precio", "cuesta", "coste"},
		reply: func(r *Resolver, _ context.Context) string {
			return fmt.Sprintf("💰 Los precios varían según el producto. Te recomiendo ver nuestro menú completo o llamarnos al %s para información específica.", r.biz.Phone)
		},
	},
	{
		keywords: []string{"horario", "abierto", "cerrado", "hora"},
		reply: func(r *Resolver, _ context.Context) string {
			return fmt.Sprintf("🕒 Nuestro horario: %s\n📍 Ubicación: %s", r.biz.Hours, r.biz.Address)
		},
	},
	{
		keywords: []string{"donde", "ubicacion", "direccion"},
		reply: func(r *Resolver, _ context.Context) string {
			return fmt.Sprintf("📍 Nos encontramos en: %s\n🕒 Horario: %s\n📞 Teléfono: %s", r.biz.Address, r.biz.Hours, r.biz.Phone)
		},
	},
	{
		keywords: []string{"reserva", "mesa", "booking"},
		reply: func(r *Resolver, _ context.Context) string {
			return fmt.Sprintf("🍽️ Para reservas de mesa, por favor llámanos al %s o visítanos directamente en %s. ¡Te esperamos!", r.biz.Phone, r.biz.Address)
		},
	},
	{
		keywords: []string{"especial", "oferta", "promocion"},
		reply: func(r *Resolver, _ context.Context) string {
			return "🎉 Consulta nuestros especiales del día en nuestro menú. ¡Siempre tenemos ofertas deliciosas! Para más detalles, llámanos al " + r.biz.Phone
		},
	},
}

func (r *Resolver) fallback(ctx context.Context, message string) string {
	folded := fold(message)
	for _, rl := range rules {
		if containsAny(folded, rl.keywords) {
			return rl.reply(r, ctx)
		}
	}
	return fmt.Sprintf("🤖 Soy el asistente virtual de %s. Puedo ayudarte con:\n• Ver nuestro menú\n• Información de horarios y ubicación\n• Precios y especiales\n\nPara consultas específicas: %s", r.biz.Name, r.biz.Phone)
}

// fold lower-cases s and strips diacritics so "Ubicación" matches "ubicacion".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
