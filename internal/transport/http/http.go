package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/corray333/backend-labs/booking/internal/metrics"
	"github.com/corray333/backend-labs/booking/internal/service/models/booking"
	"github.com/corray333/backend-labs/booking/internal/service/models/catalog"
	"github.com/corray333/backend-labs/booking/internal/service/models/order"
	"github.com/corray333/backend-labs/booking/internal/service/services/submissionsvc"
	"github.com/corray333/backend-labs/booking/internal/service/wizard"
	bookingdrafts "github.com/corray333/backend-labs/booking/internal/transport/http/booking_drafts"
	createbooking "github.com/corray333/backend-labs/booking/internal/transport/http/create_booking"
	createorder "github.com/corray333/backend-labs/booking/internal/transport/http/create_order"
	"github.com/corray333/backend-labs/booking/internal/transport/http/docs"
	listbookings "github.com/corray333/backend-labs/booking/internal/transport/http/list_bookings"
	listcatalog "github.com/corray333/backend-labs/booking/internal/transport/http/list_catalog"
	listorders "github.com/corray333/backend-labs/booking/internal/transport/http/list_orders"
	"github.com/corray333/backend-labs/booking/internal/transport/http/response"
	"github.com/corray333/backend-labs/booking/pkg/http/middleware/trace"
	"github.com/corray333/backend-labs/booking/pkg/logger"
)

type catalogService interface {
	ServiceByID(ctx context.Context, id int64) (catalog.Service, error)
	ListServices(ctx context.Context, filter catalog.QueryServicesModel) ([]catalog.Service, error)
	ListPastries(ctx context.Context, filter catalog.QueryPastriesModel) ([]catalog.Pastry, error)
}

type submissionService interface {
	SubmitBooking(ctx context.Context, req booking.Request) (submissionsvc.BookingResult, error)
	SubmitOrder(ctx context.Context, req order.Request) (submissionsvc.OrderResult, error)
}

type historyService interface {
	ListBookings(ctx context.Context, filter booking.QueryBookingsModel) ([]booking.Booking, error)
	ListOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
}

type draftService interface {
	Create(ctx context.Context) (*wizard.Draft, error)
	Get(ctx context.Context, id string) (*wizard.Draft, error)
	SelectService(ctx context.Context, id string, serviceID int64) (*wizard.Draft, error)
	ChooseTime(ctx context.Context, id, date, start, end string) (*wizard.Draft, error)
	EnterDetails(ctx context.Context, id string, details wizard.Details) (*wizard.Draft, error)
	Back(ctx context.Context, id string) (*wizard.Draft, error)
	Submit(ctx context.Context, id string) (submissionsvc.BookingResult, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Services are the handlers' dependencies. Health is optional.
type Services struct {
	Catalog     catalogService
	Submissions submissionService
	History     historyService
	Drafts      draftService
	Health      pinger
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	services Services
}

func NewHTTPTransport(services Services) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:   server,
		router:   router,
		services: services,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// Handler returns the router, for tests and embedding.
func (h *HTTPTransport) Handler() http.Handler {
	return h.router
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Get("/healthz", h.healthz)
	h.router.Handle("/metrics", metrics.Handler())
	h.router.Get("/swagger/doc.json", serveDoc)
	h.router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	h.router.Route("/api", func(r chi.Router) {
		r.Get("/services", h.listServices)
		r.Get("/services/{id}", h.getService)
		r.Get("/pastries", h.listPastries)

		r.Get("/bookings", h.listBookings)
		r.Post("/bookings", h.createBooking)
		r.Get("/orders", h.listOrders)
		r.Post("/orders", h.createOrder)

		r.Route("/booking-drafts", func(r chi.Router) {
			r.Post("/", h.createDraft)
			r.Get("/{id}", h.getDraft)
			r.Put("/{id}/service", h.selectDraftService)
			r.Put("/{id}/time", h.chooseDraftTime)
			r.Put("/{id}/details", h.enterDraftDetails)
			r.Post("/{id}/back", h.draftBack)
			r.Post("/{id}/submit", h.submitDraft)
		})
	})
}

func (h *HTTPTransport) listServices(w http.ResponseWriter, r *http.Request) {
	listcatalog.ListServices(w, r, h.services.Catalog)
}

func (h *HTTPTransport) getService(w http.ResponseWriter, r *http.Request) {
	listcatalog.GetService(w, r, h.services.Catalog)
}

func (h *HTTPTransport) listPastries(w http.ResponseWriter, r *http.Request) {
	listcatalog.ListPastries(w, r, h.services.Catalog)
}

func (h *HTTPTransport) createBooking(w http.ResponseWriter, r *http.Request) {
	createbooking.CreateBooking(w, r, h.services.Submissions)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.services.Submissions)
}

func (h *HTTPTransport) listBookings(w http.ResponseWriter, r *http.Request) {
	listbookings.ListBookings(w, r, h.services.History)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.services.History)
}

func (h *HTTPTransport) createDraft(w http.ResponseWriter, r *http.Request) {
	bookingdrafts.Create(w, r, h.services.Drafts)
}

func (h *HTTPTransport) getDraft(w http.ResponseWriter, r *http.Request) {
	bookingdrafts.Get(w, r, h.services.Drafts)
}

func (h *HTTPTransport) selectDraftService(w http.ResponseWriter, r *http.Request) {
	bookingdrafts.SelectService(w, r, h.services.Drafts)
}

func (h *HTTPTransport) chooseDraftTime(w http.ResponseWriter, r *http.Request) {
	bookingdrafts.ChooseTime(w, r, h.services.Drafts)
}

func (h *HTTPTransport) enterDraftDetails(w http.ResponseWriter, r *http.Request) {
	bookingdrafts.EnterDetails(w, r, h.services.Drafts)
}

func (h *HTTPTransport) draftBack(w http.ResponseWriter, r *http.Request) {
	bookingdrafts.Back(w, r, h.services.Drafts)
}

func (h *HTTPTransport) submitDraft(w http.ResponseWriter, r *http.Request) {
	bookingdrafts.Submit(w, r, h.services.Drafts)
}

func (h *HTTPTransport) healthz(w http.ResponseWriter, r *http.Request) {
	if h.services.Health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.services.Health.Ping(ctx); err != nil {
			slog.Error("Health check failed", "error", err)
			response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})

			return
		}
	}

	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func serveDoc(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(docs.SwaggerJSON); err != nil {
		slog.Error("Error sending swagger document", "error", err)
	}
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware("booking-svc"))
	router.Use(metrics.Middleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:              "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
