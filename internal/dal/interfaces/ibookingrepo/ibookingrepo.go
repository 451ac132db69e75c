package ibookingrepo

import (
	"context"

	"github.com/corray333/backend-labs/booking/internal/service/models/booking"
)

// IBookingRepository is an interface for booking postgres repository.
type IBookingRepository interface {
	Insert(ctx context.Context, b booking.Booking) (booking.Booking, error)
	Query(ctx context.Context, filter *booking.QueryBookingsModel) ([]booking.Booking, error)
}
