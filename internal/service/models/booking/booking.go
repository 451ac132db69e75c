package booking

import (
	"time"

	"github.com/corray333/backend-labs/booking/internal/service/models/catalog"
	"github.com/corray333/backend-labs/booking/internal/service/models/customer"
)

// Booking is a reserved time window for a service. It is created once and never updated.
type Booking struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customerId"`
	ServiceID   int64     `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	BookingDate string    `json:"bookingDate"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Address     string    `json:"address"`
	ZipCode     string    `json:"zipCode"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Request is a booking submission as entered by the customer.
type Request struct {
	ServiceID   int64  `json:"serviceId"   validate:"required"`
	BookingDate string `json:"bookingDate" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"startTime"   validate:"required"`
	EndTime     string `json:"endTime"     validate:"required"`
	Name        string `json:"name"        validate:"required"`
	Email       string `json:"email"       validate:"required,email"`
	Phone       string `json:"phone"       validate:"required"`
	Address     string `json:"address"     validate:"required"`
	ZipCode     string `json:"zipCode"     validate:"required"`
	Notes       string `json:"notes"`
}

// Confirmation is the committed booking together with its customer and service.
type Confirmation struct {
	Booking  Booking           `json:"booking"`
	Customer customer.Customer `json:"customer"`
	Service  catalog.Service   `json:"service"`
}
