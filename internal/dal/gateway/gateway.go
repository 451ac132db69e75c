// Package gateway is the persistence boundary of the submission workflow. Every failure
// it returns is an apperr.ErrPersistence.
package gateway

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/corray333/backend-labs/booking/internal/dal/interfaces/ibookingrepo"
	"github.com/corray333/backend-labs/booking/internal/dal/interfaces/icustomerrepo"
	"github.com/corray333/backend-labs/booking/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/booking/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/booking/internal/dal/postgres"
	"github.com/corray333/backend-labs/booking/internal/dal/uow"
	"github.com/corray333/backend-labs/booking/internal/metrics"
	"github.com/corray333/backend-labs/booking/internal/service/apperr"
	"github.com/corray333/backend-labs/booking/internal/service/models/booking"
	"github.com/corray333/backend-labs/booking/internal/service/models/currency"
	"github.com/corray333/backend-labs/booking/internal/service/models/customer"
	"github.com/corray333/backend-labs/booking/internal/service/models/order"
	"github.com/corray333/backend-labs/booking/internal/service/models/orderitem"
)

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	CustomerRepository() icustomerrepo.ICustomerRepository
	BookingRepository() ibookingrepo.IBookingRepository
	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
}

// Gateway persists customers, bookings and orders.
type Gateway struct {
	newUOW func() unitOfWork
	now    func() time.Time
}

type option func(*Gateway)

// MustNewGateway creates a new Gateway.
func MustNewGateway(opts ...option) *Gateway {
	g := &Gateway{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}

	if g.newUOW == nil {
		panic("gateway: no postgres client configured")
	}

	return g
}

// WithPostgresClient sets the Postgres client for the Gateway.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(g *Gateway) {
		g.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithUnitOfWork sets the unit of work factory. Used by tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWork(newUOW func() unitOfWork) option {
	return func(g *Gateway) {
		g.newUOW = newUOW
	}
}

// UpsertCustomer looks the customer up by email, refreshing name and phone when it exists
// and creating it otherwise. Lookup and write share one transaction.
func (g *Gateway) UpsertCustomer(ctx context.Context, email, name, phone string) (customer.Customer, error) {
	ctx, span := otel.Tracer("dal").Start(ctx, "Gateway.UpsertCustomer")
	defer span.End()
	defer metrics.ObserveDBQuery("upsert_customer", time.Now())

	email = strings.TrimSpace(email)
	work := g.newUOW()
	if err := work.Begin(ctx); err != nil {
		return customer.Customer{}, apperr.Persistence("begin customer upsert", err)
	}

	c, err := g.upsertCustomer(ctx, work, email, name, phone)
	if err != nil {
		if rbErr := work.Rollback(ctx); rbErr != nil {
			slog.Error("Failed to rollback customer upsert", "error", rbErr)
		}

		return customer.Customer{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return customer.Customer{}, apperr.Persistence("commit customer upsert", err)
	}

	return c, nil
}

func (g *Gateway) upsertCustomer(
	ctx context.Context,
	work unitOfWork,
	email, name, phone string,
) (customer.Customer, error) {
	repo := work.CustomerRepository()
	now := g.now()

	existing, found, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return customer.Customer{}, apperr.Persistence("look up customer", err)
	}

	var c customer.Customer
	if found {
		c, err = repo.UpdateContact(ctx, existing.ID, name, phone, now)
		if err != nil {
			return customer.Customer{}, apperr.Persistence("update customer", err)
		}
	} else {
		c, err = repo.Insert(ctx, customer.Customer{
			FullName:  name,
			Email:     email,
			Phone:     phone,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return customer.Customer{}, apperr.Persistence("create customer", err)
		}
	}

	if c.ID == 0 {
		return customer.Customer{}, apperr.Persistence("customer record has no id", nil)
	}

	return c, nil
}

// CreateBooking inserts a booking for the customer.
func (g *Gateway) CreateBooking(ctx context.Context, customerID int64, b booking.Booking) (booking.Booking, error) {
	ctx, span := otel.Tracer("dal").Start(ctx, "Gateway.CreateBooking")
	defer span.End()
	defer metrics.ObserveDBQuery("create_booking", time.Now())

	b.CustomerID = customerID
	b.CreatedAt = g.now()

	created, err := g.newUOW().BookingRepository().Insert(ctx, b)
	if err != nil {
		return booking.Booking{}, apperr.Persistence("create booking", err)
	}
	if created.ID == 0 {
		return booking.Booking{}, apperr.Persistence("booking record has no id", nil)
	}

	return created, nil
}

// CreateOrder inserts a pending order and then its items. The two inserts are not
// atomic: if the items fail the order row stays without items.
func (g *Gateway) CreateOrder(ctx context.Context, customerID int64, o order.Order) (order.Order, error) {
	ctx, span := otel.Tracer("dal").Start(ctx, "Gateway.CreateOrder")
	defer span.End()
	defer metrics.ObserveDBQuery("create_order", time.Now())

	now := g.now()
	work := g.newUOW()

	o.CustomerID = customerID
	o.Status = order.StatusPending
	o.TotalCurrency = currency.CurrencyEUR
	o.CreatedAt = now
	o.UpdatedAt = now

	created, err := work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return order.Order{}, apperr.Persistence("create order", err)
	}
	if created.ID == 0 {
		return order.Order{}, apperr.Persistence("order record has no id", nil)
	}

	items := make([]orderitem.OrderItem, len(o.OrderItems))
	for i, item := range o.OrderItems {
		item.OrderID = created.ID
		item.PriceCurrency = currency.CurrencyEUR
		item.CreatedAt = now
		items[i] = item
	}

	createdItems, err := work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		slog.Error("Order stored without items", "order_id", created.ID, "error", err)

		return order.Order{}, apperr.Persistence("create order items", err)
	}
	created.OrderItems = createdItems

	return created, nil
}

// ListBookings returns bookings matching the filter.
func (g *Gateway) ListBookings(ctx context.Context, filter booking.QueryBookingsModel) ([]booking.Booking, error) {
	ctx, span := otel.Tracer("dal").Start(ctx, "Gateway.ListBookings")
	defer span.End()
	defer metrics.ObserveDBQuery("list_bookings", time.Now())

	bookings, err := g.newUOW().BookingRepository().Query(ctx, &filter)
	if err != nil {
		return nil, apperr.Persistence("list bookings", err)
	}

	return bookings, nil
}

// ListOrders returns orders matching the filter together with their items.
func (g *Gateway) ListOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error) {
	ctx, span := otel.Tracer("dal").Start(ctx, "Gateway.ListOrders")
	defer span.End()
	defer metrics.ObserveDBQuery("list_orders", time.Now())

	work := g.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, apperr.Persistence("list orders", err)
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	itemQuery := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		itemQuery.OrderIds = append(itemQuery.OrderIds, o.ID)
	}
	items, err := work.OrderItemRepository().Query(ctx, itemQuery)
	if err != nil {
		return nil, apperr.Persistence("list order items", err)
	}

	byOrder := make(map[int64][]orderitem.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		if its, ok := byOrder[orders[i].ID]; ok {
			orders[i].OrderItems = its
		}
	}

	return orders, nil
}
