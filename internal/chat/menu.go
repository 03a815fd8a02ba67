package chat

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/MikeMC777/cafe-demo/internal/catalog"
)

// MenuSource provides the live catalog used to build the menu context.
type MenuSource interface {
	Products(ctx context.Context, category string) ([]catalog.Product, error)
	TodaySpecials(ctx context.Context) ([]catalog.Special, error)
}

const menuUnavailable = "Lo siento, no puedo acceder al menú en este momento."

// menuContext renders available products grouped by category followed by
// today's specials. Any read failure yields menuUnavailable.
func menuContext(ctx context.Context, src MenuSource, business string) string {
	products, err := src.Products(ctx, "")
	if err != nil {
		return menuUnavailable
	}
	specials, err := src.TodaySpecials(ctx)
	if err != nil {
		return menuUnavailable
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ MENÚ %s:\n\n", business)

	var order []string
	groups := map[string][]string{}
	for _, p := range products {
		if _, seen := groups[p.Category]; !seen {
			order = append(order, p.Category)
		}
		groups[p.Category] = append(groups[p.Category],
			fmt.Sprintf("• %s: %s - €%.2f", p.Name, orDefault(p.Description), p.Price))
	}
	for _, cat := range order {
		fmt.Fprintf(&b, "📂 %s:\n%s\n\n", strings.ToUpper(cat), strings.Join(groups[cat], "\n"))
	}

	if len(specials) > 0 {
		b.WriteString("🎉 ESPECIALES DEL DÍA:\n")
		for _, s := range specials {
			fmt.Fprintf(&b, "• %s: %s - €%.2f (antes €%.2f, -%s%% descuento)\n",
				s.Product.Name, orDefault(s.Product.Description), s.DiscountedPrice(), s.Product.Price,
				strconv.FormatFloat(s.Discount, 'f', -1, 64))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func orDefault(desc string) string {
	if strings.TrimSpace(desc) == "" {
		return "Sin descripción"
	}
	return desc
}
