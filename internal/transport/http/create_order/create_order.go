package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/booking/internal/service/models/order"
	"github.com/corray333/backend-labs/booking/internal/service/services/submissionsvc"
	"github.com/corray333/backend-labs/booking/internal/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	SubmitOrder(ctx context.Context, req order.Request) (submissionsvc.OrderResult, error)
}

// CreateOrder handles a pastry order submission.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := order.Request{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Error decoding request body for order", "error", err)
		response.BadRequest(w, "Invalid request body")

		return
	}

	res, err := service.SubmitOrder(r.Context(), req)
	if err != nil {
		slog.Error("Error submitting order", "error", err)
		response.Error(w, err)

		return
	}

	response.JSON(w, http.StatusCreated, res)
}
