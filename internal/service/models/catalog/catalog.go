package catalog

import "github.com/corray333/backend-labs/booking/internal/service/models/currency"

// fixedPriceServices are billed at a fixed hourly rate shown up front.
var fixedPriceServices = map[string]struct{}{
	"House Cleaning": {},
	"Cooking":        {},
	"Decorating":     {},
}

// Service is a bookable service. Catalog entries are reference data and never mutated.
type Service struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	PricePerHourCents int64             `json:"pricePerHourCents"`
	PriceCurrency     currency.Currency `json:"priceCurrency"`
	FixedPrice        bool              `json:"fixedPrice"`
}

// IsFixedPrice reports whether a service with the given name has a fixed hourly price.
func IsFixedPrice(name string) bool {
	_, ok := fixedPriceServices[name]

	return ok
}

// Pastry is an orderable pastry. Prices are settled with the customer after the order.
type Pastry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
}

// Pastry categories.
const (
	CategoryCakes    = "cakes"
	CategoryPastries = "pastries"
	CategoryDesserts = "desserts"
	CategorySweets   = "sweets"
	CategoryPlatters = "platters"
)
