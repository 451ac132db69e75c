package listorders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/corray333/backend-labs/booking/internal/service/models/order"
	"github.com/corray333/backend-labs/booking/internal/transport/http/response"
)

type service interface {
	ListOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
}

type queryOrdersRequest struct {
	Ids         []int64 `schema:"ids,omitempty"`
	CustomerIds []int64 `schema:"customerIds,omitempty"`
	Limit       int     `schema:"limit,omitempty"`
	Offset      int     `schema:"offset,omitempty"`
}

func (q *queryOrdersRequest) ToModel() order.QueryOrdersModel {
	return order.QueryOrdersModel{
		Ids:         q.Ids,
		CustomerIds: q.CustomerIds,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
}

func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &queryOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		slog.Error("Error decoding request", "error", err)
		response.BadRequest(w, "Invalid query parameters")

		return
	}

	orders, err := service.ListOrders(r.Context(), query.ToModel())
	if err != nil {
		slog.Error("Error getting orders", "error", err)
		response.Error(w, err)

		return
	}

	response.JSON(w, http.StatusOK, orders)
}
