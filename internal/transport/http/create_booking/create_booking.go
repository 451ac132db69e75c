package createbooking

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/booking/internal/service/models/booking"
	"github.com/corray333/backend-labs/booking/internal/service/services/submissionsvc"
	"github.com/corray333/backend-labs/booking/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	SubmitBooking(ctx context.Context, req booking.Request) (submissionsvc.BookingResult, error)
}

// CreateBooking handles a booking submission.
func CreateBooking(w http.ResponseWriter, r *http.Request, service service) {
	req := booking.Request{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Error decoding request body for booking", "error", err)
		response.BadRequest(w, "Invalid request body")

		return
	}

	res, err := service.SubmitBooking(r.Context(), req)
	if err != nil {
		slog.Error("Error submitting booking", "error", err)
		response.Error(w, err)

		return
	}

	response.JSON(w, http.StatusCreated, res)
}
