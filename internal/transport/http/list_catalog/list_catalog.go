package listcatalog

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"

	"github.com/corray333/backend-labs/booking/internal/service/models/catalog"
	"github.com/corray333/backend-labs/booking/internal/transport/http/response"
)

type service interface {
	ServiceByID(ctx context.Context, id int64) (catalog.Service, error)
	ListServices(ctx context.Context, filter catalog.QueryServicesModel) ([]catalog.Service, error)
	ListPastries(ctx context.Context, filter catalog.QueryPastriesModel) ([]catalog.Pastry, error)
}

type queryServicesRequest struct {
	Limit  int `schema:"limit,omitempty"`
	Offset int `schema:"offset,omitempty"`
}

type queryPastriesRequest struct {
	Search   string `schema:"search,omitempty"`
	Category string `schema:"category,omitempty"`
	Limit    int    `schema:"limit,omitempty"`
	Offset   int    `schema:"offset,omitempty"`
}

func (q *queryPastriesRequest) ToModel() catalog.QueryPastriesModel {
	return catalog.QueryPastriesModel{
		Search:   q.Search,
		Category: q.Category,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
}

func newDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return decoder
}

// ListServices writes the bookable services.
func ListServices(w http.ResponseWriter, r *http.Request, service service) {
	query := &queryServicesRequest{}
	if err := newDecoder().Decode(query, r.URL.Query()); err != nil {
		slog.Error("Error decoding request", "error", err)
		response.BadRequest(w, "Invalid query parameters")

		return
	}

	services, err := service.ListServices(r.Context(), catalog.QueryServicesModel{
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		slog.Error("Error listing services", "error", err)
		response.Error(w, err)

		return
	}

	response.JSON(w, http.StatusOK, services)
}

// GetService writes the service named by the {id} path parameter.
func GetService(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid service id")

		return
	}

	svc, err := service.ServiceByID(r.Context(), id)
	if err != nil {
		response.Error(w, err)

		return
	}

	response.JSON(w, http.StatusOK, svc)
}

// ListPastries writes the pastry menu, optionally filtered by search text and category.
func ListPastries(w http.ResponseWriter, r *http.Request, service service) {
	query := &queryPastriesRequest{}
	if err := newDecoder().Decode(query, r.URL.Query()); err != nil {
		slog.Error("Error decoding request", "error", err)
		response.BadRequest(w, "Invalid query parameters")

		return
	}

	pastries, err := service.ListPastries(r.Context(), query.ToModel())
	if err != nil {
		slog.Error("Error listing pastries", "error", err)
		response.Error(w, err)

		return
	}

	response.JSON(w, http.StatusOK, pastries)
}
