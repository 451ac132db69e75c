package event

import "time"

// Kinds of submission events.
const (
	KindBooking = "booking"
	KindOrder   = "order"
)

// Routing keys used when publishing submission events.
const (
	RKBookingCreated = "booking.created"
	RKOrderCreated   = "order.created"
)

// Submission is published after a booking or order has been committed.
type Submission struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"`
	RecordID       int64     `json:"recordId"`
	CustomerID     int64     `json:"customerId"`
	CustomerEmail  string    `json:"customerEmail"`
	ItemCount      int       `json:"itemCount"`
	NotificationOK bool      `json:"notificationOk"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// RoutingKey returns the routing key matching the event kind.
func (s Submission) RoutingKey() string {
	if s.Kind == KindOrder {
		return RKOrderCreated
	}

	return RKBookingCreated
}
