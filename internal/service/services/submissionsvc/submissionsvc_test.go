package submissionsvc_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corray333/backend-labs/booking/internal/service/apperr"
	"github.com/corray333/backend-labs/booking/internal/service/messages"
	"github.com/corray333/backend-labs/booking/internal/service/models/booking"
	"github.com/corray333/backend-labs/booking/internal/service/models/catalog"
	"github.com/corray333/backend-labs/booking/internal/service/models/customer"
	"github.com/corray333/backend-labs/booking/internal/service/models/event"
	"github.com/corray333/backend-labs/booking/internal/service/models/order"
	"github.com/corray333/backend-labs/booking/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/booking/internal/service/notification"
	"github.com/corray333/backend-labs/booking/internal/service/services/submissionsvc"
)

type fakeGateway struct {
	customers   map[string]customer.Customer
	bookings    []booking.Booking
	orders      []order.Order
	calls       int
	failBooking bool
	nextID      int64
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{customers: map[string]customer.Customer{}}
}

func (g *fakeGateway) UpsertCustomer(_ context.Context, email, name, phone string) (customer.Customer, error) {
	g.calls++
	c, ok := g.customers[email]
	if !ok {
		g.nextID++
		c = customer.Customer{ID: g.nextID, Email: email}
	}
	c.FullName, c.Phone = name, phone
	g.customers[email] = c

	return c, nil
}

func (g *fakeGateway) CreateBooking(_ context.Context, customerID int64, b booking.Booking) (booking.Booking, error) {
	g.calls++
	if g.failBooking {
		return booking.Booking{}, apperr.Persistence("create booking", errors.New("connection reset"))
	}
	b.ID = int64(len(g.bookings) + 100)
	b.CustomerID = customerID
	g.bookings = append(g.bookings, b)

	return b, nil
}

func (g *fakeGateway) CreateOrder(_ context.Context, customerID int64, o order.Order) (order.Order, error) {
	g.calls++
	o.ID = int64(len(g.orders) + 200)
	o.CustomerID = customerID
	o.Status = order.StatusPending
	g.orders = append(g.orders, o)

	return o, nil
}

type fakeCatalog map[int64]catalog.Service

func (c fakeCatalog) GetService(_ context.Context, id int64) (catalog.Service, bool, error) {
	s, ok := c[id]

	return s, ok, nil
}

type fakeNotifier struct {
	result  notification.Result
	booking []messages.BookingDetails
	order   []messages.OrderDetails
}

func (n *fakeNotifier) SendBookingNotification(_ context.Context, d messages.BookingDetails) notification.Result {
	n.booking = append(n.booking, d)

	return n.result
}

func (n *fakeNotifier) SendOrderNotification(_ context.Context, d messages.OrderDetails) notification.Result {
	n.order = append(n.order, d)

	return n.result
}

type fakePublisher struct {
	events []event.Submission
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, ev event.Submission) error {
	p.events = append(p.events, ev)

	return p.err
}

type fixture struct {
	gw  *fakeGateway
	ntf *fakeNotifier
	pub *fakePublisher
	svc *submissionsvc.SubmissionService
}

func newFixture(notified bool) *fixture {
	f := &fixture{
		gw:  newFakeGateway(),
		ntf: &fakeNotifier{result: notification.Result{Success: notified, Message: "sms"}},
		pub: &fakePublisher{},
	}
	f.svc = submissionsvc.MustNewSubmissionService(
		submissionsvc.WithGateway(f.gw),
		submissionsvc.WithCatalog(fakeCatalog{
			1: {ID: 1, Name: "House Cleaning", PricePerHourCents: 1200, FixedPrice: true},
		}),
		submissionsvc.WithNotifier(f.ntf),
		submissionsvc.WithPublisher(f.pub),
	)

	return f
}

func houseCleaning() booking.Request {
	return booking.Request{
		ServiceID:   1,
		BookingDate: "2024-06-01",
		StartTime:   "09:00",
		EndTime:     "11:00",
		Name:        "Ana Silva",
		Email:       "ana@example.com",
		Phone:       "912345678",
		Address:     "Rua A 1",
		ZipCode:     "1000-001",
	}
}

func TestSubmitBooking(t *testing.T) {
	f := newFixture(true)

	res, err := f.svc.SubmitBooking(context.Background(), houseCleaning())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, submissionsvc.MsgBookingNotified, res.Message)
	assert.Empty(t, res.Warning)
	assert.Equal(t, "House Cleaning", res.Confirmation.Booking.ServiceName)
	assert.Equal(t, "Ana Silva", res.Confirmation.Customer.FullName)
	assert.Contains(t, res.WhatsAppLink, "https://wa.me/351912137525?text=")

	require.Len(t, f.ntf.booking, 1)
	assert.Equal(t, "912345678", f.ntf.booking[0].CustomerPhone)
	assert.EqualValues(t, 1200, f.ntf.booking[0].PricePerHourCents)

	require.Len(t, f.pub.events, 1)
	assert.Equal(t, event.KindBooking, f.pub.events[0].Kind)
	assert.NotEmpty(t, f.pub.events[0].ID)
	assert.True(t, f.pub.events[0].NotificationOK)
}

func TestSubmitBooking_NotificationFailureIsWarning(t *testing.T) {
	f := newFixture(false)

	res, err := f.svc.SubmitBooking(context.Background(), houseCleaning())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, submissionsvc.MsgBookingNotifyFail, res.Warning)
	assert.Len(t, f.gw.bookings, 1)
}

func TestSubmitBooking_WithSMSProvider(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		warning string
	}{
		{name: "delivered", status: http.StatusOK},
		{name: "provider down", status: http.StatusInternalServerError, warning: submissionsvc.MsgBookingNotifyFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				mu         sync.Mutex
				recipients []string
			)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				mu.Lock()
				recipients = append(recipients, r.PostForm.Get("To"))
				mu.Unlock()

				if tt.status != http.StatusOK {
					http.Error(w, "service unavailable", tt.status)

					return
				}
				_ = json.NewEncoder(w).Encode(map[string]string{"sid": "SM1"})
			}))
			defer srv.Close()

			gw := newFakeGateway()
			svc := submissionsvc.MustNewSubmissionService(
				submissionsvc.WithGateway(gw),
				submissionsvc.WithCatalog(fakeCatalog{
					1: {ID: 1, Name: "House Cleaning", PricePerHourCents: 1200, FixedPrice: true},
				}),
				submissionsvc.WithNotifier(notification.NewNotifier(notification.WithSMSSender(
					notification.NewSMSSender(notification.SMSConfig{
						BaseURL:     srv.URL,
						AccountSID:  "AC123",
						AuthToken:   "secret",
						PhoneNumber: "+15550000000",
					}, srv.Client()),
				))),
			)

			req := houseCleaning()
			req.BookingDate = "2025-01-10"
			req.Address = "Rua X 10"

			res, err := svc.SubmitBooking(context.Background(), req)
			require.NoError(t, err)

			assert.True(t, res.Success)
			assert.Equal(t, tt.warning, res.Warning)
			require.Len(t, gw.bookings, 1)
			assert.Equal(t, "Rua X 10", gw.bookings[0].Address)

			mu.Lock()
			defer mu.Unlock()
			assert.ElementsMatch(t, []string{"+351912137525", "+351912345678"}, recipients)
		})
	}
}

func TestSubmitBooking_DuplicateEmailUpdatesCustomer(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	first, err := f.svc.SubmitBooking(ctx, houseCleaning())
	require.NoError(t, err)

	again := houseCleaning()
	again.Name = "Ana M. Silva"
	again.Phone = "913000111"
	second, err := f.svc.SubmitBooking(ctx, again)
	require.NoError(t, err)

	assert.Equal(t, first.Confirmation.Customer.ID, second.Confirmation.Customer.ID)
	assert.Len(t, f.gw.customers, 1)
	assert.Equal(t, "Ana M. Silva", f.gw.customers["ana@example.com"].FullName)
	assert.Len(t, f.gw.bookings, 2)
}

func TestSubmitBooking_ValidationHasNoSideEffects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *booking.Request)
		want   string
	}{
		{name: "missing fields", mutate: func(r *booking.Request) { r.Name, r.ZipCode = "", "" }, want: "name, zipCode"},
		{name: "outside hours", mutate: func(r *booking.Request) { r.EndTime = "18:30" }, want: "between 7:00 AM and 6:00 PM"},
		{name: "end before start", mutate: func(r *booking.Request) { r.StartTime, r.EndTime = "10:00", "09:00" }, want: "End time must be after start time"},
		{name: "unknown service", mutate: func(r *booking.Request) { r.ServiceID = 42 }, want: submissionsvc.MsgInvalidService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(true)
			req := houseCleaning()
			tt.mutate(&req)

			_, err := f.svc.SubmitBooking(context.Background(), req)

			require.ErrorIs(t, err, apperr.ErrValidation)
			assert.Contains(t, err.Error(), tt.want)
			assert.Zero(t, f.gw.calls)
			assert.Empty(t, f.ntf.booking)
			assert.Empty(t, f.pub.events)
		})
	}
}

func TestSubmitBooking_PersistenceFailure(t *testing.T) {
	f := newFixture(true)
	f.gw.failBooking = true

	_, err := f.svc.SubmitBooking(context.Background(), houseCleaning())

	require.ErrorIs(t, err, apperr.ErrPersistence)
	assert.Empty(t, f.ntf.booking)
	assert.Empty(t, f.pub.events)
}

func TestSubmitBooking_PublishFailureIsIgnored(t *testing.T) {
	f := newFixture(true)
	f.pub.err = errors.New("channel closed")

	res, err := f.svc.SubmitBooking(context.Background(), houseCleaning())

	require.NoError(t, err)
	assert.True(t, res.Success)
}

func pastryOrder() order.Request {
	return order.Request{
		Customer: customer.Contact{
			Name:    "Rui Costa",
			Email:   "rui@example.com",
			Phone:   "913000111",
			Address: "Rua B 2",
			ZipCode: "2000-002",
		},
		Items: []orderitem.OrderItem{
			{Name: "Pastel de Nata", Quantity: 6},
			{Name: "Bolo de Chocolate", Quantity: 1},
		},
		SpecialInstructions: "Sem canela",
	}
}

func TestSubmitOrder(t *testing.T) {
	f := newFixture(true)

	res, err := f.svc.SubmitOrder(context.Background(), pastryOrder())
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, submissionsvc.MsgOrderPlaced, res.Message)
	assert.Equal(t, order.StatusPending, res.Confirmation.Order.Status)
	assert.Zero(t, res.Confirmation.Order.TotalCents)
	require.Len(t, f.gw.orders, 1)
	assert.Equal(t, "Rua B 2", f.gw.orders[0].DeliveryAddress)
	for _, item := range f.gw.orders[0].OrderItems {
		assert.Zero(t, item.PriceCents)
	}

	require.Len(t, f.ntf.order, 1)
	assert.Equal(t, []messages.OrderLine{{Name: "Pastel de Nata", Quantity: 6}, {Name: "Bolo de Chocolate", Quantity: 1}}, f.ntf.order[0].Items)
	require.Len(t, f.pub.events, 1)
	assert.Equal(t, event.KindOrder, f.pub.events[0].Kind)
}

func TestSubmitOrder_NotificationFailureIsSwallowed(t *testing.T) {
	f := newFixture(false)

	res, err := f.svc.SubmitOrder(context.Background(), pastryOrder())

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, submissionsvc.MsgOrderPlaced, res.Message)
	assert.False(t, res.Notification.Success)
}

func TestSubmitOrder_EmptyCartFailsBeforePersistence(t *testing.T) {
	f := newFixture(true)
	req := pastryOrder()
	req.Items = nil

	_, err := f.svc.SubmitOrder(context.Background(), req)

	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), submissionsvc.MsgEmptyCart)
	assert.Zero(t, f.gw.calls)
}

func TestSubmitOrder_InvalidItem(t *testing.T) {
	f := newFixture(true)
	req := pastryOrder()
	req.Items[1].Quantity = 0

	_, err := f.svc.SubmitOrder(context.Background(), req)

	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), "items[1].quantity")
	assert.Zero(t, f.gw.calls)
}

func TestSubmitOrder_MissingContact(t *testing.T) {
	f := newFixture(true)
	req := pastryOrder()
	req.Customer.Phone = ""

	_, err := f.svc.SubmitOrder(context.Background(), req)

	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), "customer.phone")
}

func TestMustNewSubmissionService_RequiresDependencies(t *testing.T) {
	assert.Panics(t, func() { submissionsvc.MustNewSubmissionService() })
}
