package orderitem

import (
	"time"

	"github.com/corray333/backend-labs/booking/internal/service/models/currency"
)

// OrderItem represents an item within an order
type OrderItem struct {
	ID            int64             `json:"id"`
	OrderID       int64             `json:"orderId"`
	Name          string            `json:"name"          validate:"required"`
	Quantity      int               `json:"quantity"      validate:"gt=0"`
	PriceCents    int64             `json:"priceCents"    validate:"gte=0"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
	CreatedAt     time.Time         `json:"createdAt"`
}
