package order

import (
	"time"

	"github.com/corray333/backend-labs/booking/internal/service/models/currency"
	"github.com/corray333/backend-labs/booking/internal/service/models/customer"
	"github.com/corray333/backend-labs/booking/internal/service/models/orderitem"
)

// StatusPending is the status of every freshly submitted order.
const StatusPending = "pending"

// Order represents a pastry order in the system.
type Order struct {
	ID                  int64                 `json:"id"`
	CustomerID          int64                 `json:"customerId"`
	TotalCents          int64                 `json:"totalCents"`
	TotalCurrency       currency.Currency     `json:"totalCurrency"`
	DeliveryAddress     string                `json:"deliveryAddress"`
	ZipCode             string                `json:"zipCode"`
	SpecialInstructions string                `json:"specialInstructions,omitempty"`
	Status              string                `json:"status"`
	CreatedAt           time.Time             `json:"createdAt"`
	UpdatedAt           time.Time             `json:"updatedAt"`
	OrderItems          []orderitem.OrderItem `json:"orderItems"`
}

// Request is a pastry order submission. Prices are settled later, so TotalCents
// and item prices are normally zero.
type Request struct {
	Customer            customer.Contact      `json:"customer"`
	Items               []orderitem.OrderItem `json:"items"      validate:"dive"`
	TotalCents          int64                 `json:"totalCents" validate:"gte=0"`
	SpecialInstructions string                `json:"specialInstructions"`
}

// Confirmation is the committed order together with its customer.
type Confirmation struct {
	Order    Order             `json:"order"`
	Customer customer.Customer `json:"customer"`
}
