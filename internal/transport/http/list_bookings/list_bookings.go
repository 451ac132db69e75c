package listbookings

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/schema"

	"github.com/corray333/backend-labs/booking/internal/service/models/booking"
	"github.com/corray333/backend-labs/booking/internal/transport/http/response"
)

type service interface {
	ListBookings(ctx context.Context, filter booking.QueryBookingsModel) ([]booking.Booking, error)
}

type queryBookingsRequest struct {
	Ids         []int64 `schema:"ids,omitempty"`
	CustomerIds []int64 `schema:"customerIds,omitempty"`
	BookingDate string  `schema:"bookingDate,omitempty"`
	Limit       int     `schema:"limit,omitempty"`
	Offset      int     `schema:"offset,omitempty"`
}

func (q *queryBookingsRequest) ToModel() booking.QueryBookingsModel {
	return booking.QueryBookingsModel{
		Ids:         q.Ids,
		CustomerIds: q.CustomerIds,
		BookingDate: q.BookingDate,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
}

func ListBookings(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &queryBookingsRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		slog.Error("Error decoding request", "error", err)
		response.BadRequest(w, "Invalid query parameters")

		return
	}
	if query.BookingDate != "" {
		if _, err := time.Parse(time.DateOnly, query.BookingDate); err != nil {
			response.BadRequest(w, "bookingDate must be formatted as YYYY-MM-DD")

			return
		}
	}

	bookings, err := service.ListBookings(r.Context(), query.ToModel())
	if err != nil {
		slog.Error("Error getting bookings", "error", err)
		response.Error(w, err)

		return
	}

	response.JSON(w, http.StatusOK, bookings)
}
