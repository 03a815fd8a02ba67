package order

import (
	"context"

	"github.com/MikeMC777/cafe-demo/internal/catalog"
	"github.com/MikeMC777/cafe-demo/internal/notification"
)

// ProductLookup resolves a catalog product for an order line. It returns an
// apperr validation error when the product is missing or unavailable.
type ProductLookup interface {
	Lookup(ctx context.Context, id int64) (*catalog.Product, error)
}

// Announcer receives committed admin notifications for fan-out.
type Announcer interface {
	Announce(ctx context.Context, n notification.Notification)
}
