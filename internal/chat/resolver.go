// Package chat answers customer chat messages, first with a generative model
// when one is configured and otherwise with keyword rules.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/MikeMC777/cafe-demo/internal/config"
	"github.com/MikeMC777/cafe-demo/internal/logger"
	"github.com/MikeMC777/cafe-demo/internal/metrics"
)

const (
	TierGreeting = "greeting"
	TierLLM      = "llm"
	TierRules    = "rules"
	TierError    = "error"
)

// Generator is the part of llms.Model the resolver calls.
type Generator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

var redirectKeywords = []string{"reserva", "pedido", "alergia", "delivery"}

type Options struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

type Resolver struct {
	biz  config.BusinessConfig
	menu MenuSource
	gen  Generator
	opts Options
	log  logger.Logger
}

// NewResolver builds a resolver. gen may be nil, in which case only the rules run.
func NewResolver(biz config.BusinessConfig, menu MenuSource, gen Generator, opts Options, log logger.Logger) *Resolver {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 200
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Resolver{biz: biz, menu: menu, gen: gen, opts: opts, log: log.With(map[string]interface{}{"component": "chat"})}
}

// Generative reports whether a model is configured.
func (r *Resolver) Generative() bool { return r.gen != nil }

// Reply never fails: every error path degrades to a canned text.
func (r *Resolver) Reply(ctx context.Context, message string) (reply string, tier string) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("chat resolver panic", map[string]interface{}{"panic": fmt.Sprint(p)})
			reply, tier = r.technicalDifficulties(), TierError
		}
		metrics.ChatReplies.WithLabelValues(tier).Inc()
	}()

	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Sprintf("👋 ¡Hola! Soy el asistente virtual de %s. ¿En qué puedo ayudarte hoy?", r.biz.Name), TierGreeting
	}

	if r.gen != nil {
		out, err := r.generate(ctx, message)
		if err == nil {
			return out, TierLLM
		}
		r.log.WithError(err).Warn("generative reply failed, using rules", nil)
	}
	return r.fallback(ctx, message), TierRules
}

func (r *Resolver) generate(ctx context.Context, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	resp, err := r.gen.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, r.systemPrompt(ctx)),
			llms.TextParts(llms.ChatMessageTypeHuman, message),
		},
		llms.WithMaxTokens(r.opts.MaxTokens),
		llms.WithTemperature(r.opts.Temperature),
	)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	out := strings.TrimSpace(resp.Choices[0].Content)
	if out == "" {
		return "", errors.New("empty completion")
	}
	if containsAny(fold(message), redirectKeywords) && !strings.Contains(out, r.biz.Phone) {
		out += "\n\n📞 Para más información: " + r.biz.Phone
	}
	return out, nil
}

func (r *Resolver) systemPrompt(ctx context.Context) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Eres el asistente virtual de %s, una cafetería.\n\n", r.biz.Name)
	b.WriteString("📍 INFORMACIÓN DEL NEGOCIO:\n")
	fmt.Fprintf(&b, "- Nombre: %s\n- Horario: %s\n- Ubicación: %s\n- Teléfono: %s\n\n", r.biz.Name, r.biz.Hours, r.biz.Address, r.biz.Phone)
	b.WriteString(menuContext(ctx, r.menu, r.biz.Name))
	b.WriteString("\n📋 INSTRUCCIONES IMPORTANTES:\n")
	b.WriteString("- Sé amigable, profesional y entusiasta sobre nuestros productos\n")
	b.WriteString("- Responde SIEMPRE en español\n")
	b.WriteString("- Si preguntan por productos específicos, menciona precio y descripción\n")
	b.WriteString("- Para reservas o pedidos complejos, deriva al teléfono de contacto\n")
	b.WriteString("- Si preguntan información no disponible, sé honesto y deriva al contacto\n")
	b.WriteString("- Mantén respuestas concisas (máximo 150 palabras)\n")
	b.WriteString("- Si mencionan alergias, recomienda hablar directamente con el personal\n\n")
	fmt.Fprintf(&b, "📞 Para dudas complejas o reservas especiales, deriva siempre al: %s\n", r.biz.Phone)
	return b.String()
}

func (r *Resolver) technicalDifficulties() string {
	return fmt.Sprintf("🤖 Disculpa, estoy experimentando problemas técnicos. Por favor contacta directamente al %s o visítanos en %s.", r.biz.Phone, r.biz.Address)
}

// Status is the diagnostic view served by the status endpoint. It never
// includes credentials.
type Status struct {
	ChatbotActive bool   `json:"chatbot_active"`
	Generative    bool   `json:"openai_configured"`
	Model         string `json:"model,omitempty"`
	MenuReadable  bool   `json:"database_accessible"`
	Business      string `json:"business_name"`
	Message       string `json:"message"`
}

func (r *Resolver) Status(ctx context.Context, model string) Status {
	st := Status{ChatbotActive: true, Generative: r.gen != nil, Business: r.biz.Name}
	if st.Generative {
		st.Model = model
	}
	if products, err := r.menu.Products(ctx, ""); err == nil && len(products) > 0 {
		st.MenuReadable = true
	}
	if st.Generative && st.MenuReadable {
		st.Message = "Chatbot configurado correctamente"
	} else {
		st.Message = "Configuración incompleta"
	}
	return st
}
