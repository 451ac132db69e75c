package httptransport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corray333/backend-labs/booking/internal/service/apperr"
	"github.com/corray333/backend-labs/booking/internal/service/models/booking"
	"github.com/corray333/backend-labs/booking/internal/service/models/catalog"
	"github.com/corray333/backend-labs/booking/internal/service/models/order"
	"github.com/corray333/backend-labs/booking/internal/service/services/submissionsvc"
	"github.com/corray333/backend-labs/booking/internal/service/wizard"
	httptransport "github.com/corray333/backend-labs/booking/internal/transport/http"
)

type fakeCatalog struct {
	lastPastries catalog.QueryPastriesModel
}

func (f *fakeCatalog) ServiceByID(_ context.Context, id int64) (catalog.Service, error) {
	if id != 1 {
		return catalog.Service{}, apperr.ErrNotFound
	}

	return catalog.Service{ID: 1, Name: "House Cleaning"}, nil
}

func (f *fakeCatalog) ListServices(context.Context, catalog.QueryServicesModel) ([]catalog.Service, error) {
	return []catalog.Service{{ID: 1, Name: "House Cleaning"}, {ID: 2, Name: "Cooking"}}, nil
}

func (f *fakeCatalog) ListPastries(_ context.Context, filter catalog.QueryPastriesModel) ([]catalog.Pastry, error) {
	f.lastPastries = filter

	return []catalog.Pastry{{ID: 3, Name: "Pastel de Nata", Category: catalog.CategoryPastries}}, nil
}

type fakeSubmissions struct {
	bookingErr error
	lastOrder  order.Request
}

func (f *fakeSubmissions) SubmitBooking(_ context.Context, req booking.Request) (submissionsvc.BookingResult, error) {
	if f.bookingErr != nil {
		return submissionsvc.BookingResult{}, f.bookingErr
	}

	return submissionsvc.BookingResult{
		Success: true,
		Message: submissionsvc.MsgBookingNotified,
		Confirmation: booking.Confirmation{
			Booking: booking.Booking{ID: 10, ServiceID: req.ServiceID, BookingDate: req.BookingDate},
		},
	}, nil
}

func (f *fakeSubmissions) SubmitOrder(_ context.Context, req order.Request) (submissionsvc.OrderResult, error) {
	f.lastOrder = req

	return submissionsvc.OrderResult{Success: true, Message: submissionsvc.MsgOrderPlaced}, nil
}

type fakeHistory struct {
	lastBookings booking.QueryBookingsModel
	lastOrders   order.QueryOrdersModel
}

func (f *fakeHistory) ListBookings(_ context.Context, filter booking.QueryBookingsModel) ([]booking.Booking, error) {
	f.lastBookings = filter

	return []booking.Booking{{ID: 1}}, nil
}

func (f *fakeHistory) ListOrders(_ context.Context, filter order.QueryOrdersModel) ([]order.Order, error) {
	f.lastOrders = filter

	return nil, apperr.Persistence("query orders", errors.New("connection refused"))
}

type fakeDrafts struct {
	drafts map[string]*wizard.Draft
}

func (f *fakeDrafts) Create(context.Context) (*wizard.Draft, error) {
	d := wizard.New("d-1", time.Now())
	f.drafts[d.ID] = d

	return d, nil
}

func (f *fakeDrafts) Get(_ context.Context, id string) (*wizard.Draft, error) {
	d, ok := f.drafts[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}

	return d, nil
}

func (f *fakeDrafts) SelectService(ctx context.Context, id string, serviceID int64) (*wizard.Draft, error) {
	d, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return d, d.SelectService(serviceID, "House Cleaning")
}

func (f *fakeDrafts) ChooseTime(ctx context.Context, id, date, start, end string) (*wizard.Draft, error) {
	d, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := d.ChooseTime(date, start, end); err != nil {
		return nil, err
	}

	return d, nil
}

func (f *fakeDrafts) EnterDetails(ctx context.Context, id string, details wizard.Details) (*wizard.Draft, error) {
	d, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := d.EnterDetails(details); err != nil {
		return nil, err
	}

	return d, nil
}

func (f *fakeDrafts) Back(ctx context.Context, id string) (*wizard.Draft, error) {
	d, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := d.Back(); err != nil {
		return nil, err
	}

	return d, nil
}

func (f *fakeDrafts) Submit(ctx context.Context, id string) (submissionsvc.BookingResult, error) {
	if _, err := f.Get(ctx, id); err != nil {
		return submissionsvc.BookingResult{}, err
	}
	delete(f.drafts, id)

	return submissionsvc.BookingResult{Success: true, Message: submissionsvc.MsgBookingNotified}, nil
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("down") }

type env struct {
	handler     http.Handler
	catalog     *fakeCatalog
	submissions *fakeSubmissions
	history     *fakeHistory
	drafts      *fakeDrafts
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		catalog:     &fakeCatalog{},
		submissions: &fakeSubmissions{},
		history:     &fakeHistory{},
		drafts:      &fakeDrafts{drafts: map[string]*wizard.Draft{}},
	}

	transport := httptransport.NewHTTPTransport(httptransport.Services{
		Catalog:     e.catalog,
		Submissions: e.submissions,
		History:     e.history,
		Drafts:      e.drafts,
	})
	transport.RegisterRoutes()
	e.handler = transport.Handler()

	return e
}

func (e *env) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, httptest.NewRequest(method, target, &buf))

	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestCatalogRoutes(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/api/services", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var services []catalog.Service
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &services))
	assert.Len(t, services, 2)

	rec = e.do(t, http.MethodGet, "/api/services/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/services/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/services/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid service id", decodeBody(t, rec)["message"])

	rec = e.do(t, http.MethodGet, "/api/pastries?search=nata&category=pastries&limit=5", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, catalog.QueryPastriesModel{Search: "nata", Category: "pastries", Limit: 5}, e.catalog.lastPastries)
}

func TestCreateBooking(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/api/bookings", booking.Request{ServiceID: 1, BookingDate: "2024-06-01"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, submissionsvc.MsgBookingNotified, body["message"])
}

func TestCreateBooking_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "validation",
			err:     apperr.Validation("Booking times must be between 7:00 AM and 6:00 PM"),
			status:  http.StatusBadRequest,
			message: "Booking times must be between 7:00 AM and 6:00 PM",
		},
		{
			name:    "persistence",
			err:     apperr.Persistence("insert booking", nil),
			status:  http.StatusInternalServerError,
			message: "persistence error: insert booking",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			e.submissions.bookingErr = tt.err

			rec := e.do(t, http.MethodPost, "/api/bookings", booking.Request{})

			assert.Equal(t, tt.status, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestCreateBooking_MalformedBody(t *testing.T) {
	e := newEnv(t)

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeBody(t, rec)["message"])
}

func TestCreateOrder(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/api/orders", map[string]any{
		"customer": map[string]string{"name": "Ana", "email": "ana@example.com", "phone": "912345678"},
		"items":    []map[string]any{{"name": "Pastel de Nata", "quantity": 6}},
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, e.submissions.lastOrder.Items, 1)
	assert.Equal(t, 6, e.submissions.lastOrder.Items[0].Quantity)
}

func TestListRoutes(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/api/bookings?customerIds=4&bookingDate=2024-06-01", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{4}, e.history.lastBookings.CustomerIds)
	assert.Equal(t, "2024-06-01", e.history.lastBookings.BookingDate)

	rec = e.do(t, http.MethodGet, "/api/bookings?bookingDate=06/01/2024", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/orders?ids=1&ids=2", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, []int64{1, 2}, e.history.lastOrders.Ids)
}

func TestBookingDraftFlow(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/api/booking-drafts", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody(t, rec)["id"].(string)

	rec = e.do(t, http.MethodPut, "/api/booking-drafts/"+id+"/time", map[string]string{
		"bookingDate": "2024-06-01", "startTime": "09:00", "endTime": "12:00",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "time before service")

	rec = e.do(t, http.MethodPut, "/api/booking-drafts/"+id+"/service", map[string]int64{"serviceId": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(wizard.StepChooseTime), decodeBody(t, rec)["step"])

	rec = e.do(t, http.MethodPut, "/api/booking-drafts/"+id+"/time", map[string]string{
		"bookingDate": "2024-06-01", "startTime": "06:00", "endTime": "12:00",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Booking times must be between 7:00 AM and 6:00 PM", decodeBody(t, rec)["message"])

	rec = e.do(t, http.MethodPut, "/api/booking-drafts/"+id+"/time", map[string]string{
		"bookingDate": "2024-06-01", "startTime": "09:00", "endTime": "12:00",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/booking-drafts/"+id+"/back", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(wizard.StepChooseTime), decodeBody(t, rec)["step"])

	rec = e.do(t, http.MethodPost, "/api/booking-drafts/"+id+"/submit", nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/booking-drafts/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOperationalRoutes(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/swagger/doc.json", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2.0", decodeBody(t, rec)["swagger"])

	e.do(t, http.MethodGet, "/api/services", nil)
	rec = e.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `booking_http_request_duration_seconds`)
}

func TestHealthz_Unavailable(t *testing.T) {
	transport := httptransport.NewHTTPTransport(httptransport.Services{Health: failingPinger{}})
	transport.RegisterRoutes()

	rec := httptest.NewRecorder()
	transport.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
