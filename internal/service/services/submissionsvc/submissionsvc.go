package submissionsvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/corray333/backend-labs/booking/internal/metrics"
	"github.com/corray333/backend-labs/booking/internal/service/apperr"
	"github.com/corray333/backend-labs/booking/internal/service/messages"
	"github.com/corray333/backend-labs/booking/internal/service/models/booking"
	"github.com/corray333/backend-labs/booking/internal/service/models/catalog"
	"github.com/corray333/backend-labs/booking/internal/service/models/customer"
	"github.com/corray333/backend-labs/booking/internal/service/models/event"
	"github.com/corray333/backend-labs/booking/internal/service/models/order"
	"github.com/corray333/backend-labs/booking/internal/service/notification"
	"github.com/corray333/backend-labs/booking/internal/service/phone"
	"github.com/corray333/backend-labs/booking/internal/service/validation"
)

// User facing outcome messages.
const (
	MsgBookingNotified   = "Booking submitted successfully! SMS notification sent."
	MsgBookingSubmitted  = "Booking submitted successfully!"
	MsgBookingNotifyFail = "Booking successful but failed to send SMS notification"
	MsgOrderPlaced       = "Order placed successfully!"
	MsgEmptyCart         = "Your cart is empty"
	MsgInvalidService    = "Please select a valid service"
)

type gateway interface {
	UpsertCustomer(ctx context.Context, email, name, phone string) (customer.Customer, error)
	CreateBooking(ctx context.Context, customerID int64, b booking.Booking) (booking.Booking, error)
	CreateOrder(ctx context.Context, customerID int64, o order.Order) (order.Order, error)
}

type serviceCatalog interface {
	GetService(ctx context.Context, id int64) (catalog.Service, bool, error)
}

type notifier interface {
	SendBookingNotification(ctx context.Context, d messages.BookingDetails) notification.Result
	SendOrderNotification(ctx context.Context, d messages.OrderDetails) notification.Result
}

type publisher interface {
	Publish(ctx context.Context, ev event.Submission) error
}

// SubmissionService runs the booking and order submission workflows:
// validate, upsert the customer, persist, notify.
type SubmissionService struct {
	gateway   gateway
	catalog   serviceCatalog
	notifier  notifier
	publisher publisher
	now       func() time.Time
}

// BookingResult is the outcome of a committed booking.
type BookingResult struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	Warning      string               `json:"warning,omitempty"`
	Confirmation booking.Confirmation `json:"confirmation"`
	Notification notification.Result  `json:"notification"`
	WhatsAppLink string               `json:"whatsappLink"`
}

// OrderResult is the outcome of a committed order.
type OrderResult struct {
	Success      bool                `json:"success"`
	Message      string              `json:"message"`
	Confirmation order.Confirmation  `json:"confirmation"`
	Notification notification.Result `json:"notification"`
	WhatsAppLink string              `json:"whatsappLink"`
}

// option is a function that configures the SubmissionService.
type option func(*SubmissionService)

// MustNewSubmissionService creates a new SubmissionService.
func MustNewSubmissionService(opts ...option) *SubmissionService {
	s := &SubmissionService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if s.gateway == nil || s.catalog == nil || s.notifier == nil {
		panic("submissionsvc: gateway, catalog and notifier are required")
	}

	return s
}

// WithGateway sets the persistence gateway.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithGateway(g gateway) option {
	return func(s *SubmissionService) {
		s.gateway = g
	}
}

// WithCatalog sets the service catalog used to resolve booked services.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalog(c serviceCatalog) option {
	return func(s *SubmissionService) {
		s.catalog = c
	}
}

// WithNotifier sets the notifier.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(n notifier) option {
	return func(s *SubmissionService) {
		s.notifier = n
	}
}

// WithPublisher sets the submission event publisher. Without one no events are sent.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPublisher(p publisher) option {
	return func(s *SubmissionService) {
		s.publisher = p
	}
}

// SubmitBooking validates and stores a booking, then notifies the admin and the customer.
// A failed notification does not fail the submission; it only sets a warning.
func (s *SubmissionService) SubmitBooking(ctx context.Context, req booking.Request) (res BookingResult, err error) {
	ctx, span := otel.Tracer("service").Start(ctx, "SubmissionService.SubmitBooking")
	defer span.End()
	defer func() { metrics.RecordSubmission(event.KindBooking, err == nil) }()

	if err := validation.Struct(req); err != nil {
		return BookingResult{}, err
	}
	if err := booking.ValidateWindow(req.StartTime, req.EndTime); err != nil {
		return BookingResult{}, err
	}

	svc, found, err := s.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		return BookingResult{}, apperr.Persistence("look up service", err)
	}
	if !found {
		return BookingResult{}, apperr.Validation(MsgInvalidService)
	}

	cust, err := s.gateway.UpsertCustomer(ctx, req.Email, req.Name, req.Phone)
	if err != nil {
		slog.Error("Failed to upsert customer", "error", err)

		return BookingResult{}, err
	}

	created, err := s.gateway.CreateBooking(ctx, cust.ID, booking.Booking{
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		BookingDate: req.BookingDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Address:     req.Address,
		ZipCode:     req.ZipCode,
		Notes:       req.Notes,
	})
	if err != nil {
		slog.Error("Failed to create booking", "error", err, "customer_id", cust.ID)

		return BookingResult{}, err
	}

	details := messages.BookingDetails{
		ServiceName:       svc.Name,
		PricePerHourCents: svc.PricePerHourCents,
		BookingDate:       created.BookingDate,
		StartTime:         created.StartTime,
		EndTime:           created.EndTime,
		CustomerName:      req.Name,
		CustomerEmail:     req.Email,
		CustomerPhone:     req.Phone,
		Address:           req.Address,
		ZipCode:           req.ZipCode,
		Notes:             req.Notes,
	}

	notified := s.notifier.SendBookingNotification(ctx, details)

	res = BookingResult{
		Success:      true,
		Message:      MsgBookingNotified,
		Confirmation: booking.Confirmation{Booking: created, Customer: cust, Service: svc},
		Notification: notified,
		WhatsAppLink: messages.WhatsAppLink(messages.BookingWhatsApp(details), phone.AdminPhone),
	}
	if !notified.Success {
		slog.Warn("Booking stored but notification failed", "booking_id", created.ID, "message", notified.Message)
		res.Message = MsgBookingSubmitted
		res.Warning = MsgBookingNotifyFail
	}

	s.publish(ctx, event.Submission{
		Kind:           event.KindBooking,
		RecordID:       created.ID,
		CustomerID:     cust.ID,
		CustomerEmail:  cust.Email,
		ItemCount:      1,
		NotificationOK: notified.Success,
	})

	slog.Info("Booking submitted", "booking_id", created.ID, "customer_id", cust.ID, "service", svc.Name)

	return res, nil
}

// SubmitOrder validates and stores a pastry order, then notifies the admin and the customer.
// Success depends only on the persistence steps.
func (s *SubmissionService) SubmitOrder(ctx context.Context, req order.Request) (res OrderResult, err error) {
	ctx, span := otel.Tracer("service").Start(ctx, "SubmissionService.SubmitOrder")
	defer span.End()
	defer func() { metrics.RecordSubmission(event.KindOrder, err == nil) }()

	if len(req.Items) == 0 {
		return OrderResult{}, apperr.Validation(MsgEmptyCart)
	}
	if err := validation.Struct(req); err != nil {
		return OrderResult{}, err
	}

	contact := req.Customer
	cust, err := s.gateway.UpsertCustomer(ctx, contact.Email, contact.Name, contact.Phone)
	if err != nil {
		slog.Error("Failed to upsert customer", "error", err)

		return OrderResult{}, err
	}

	created, err := s.gateway.CreateOrder(ctx, cust.ID, order.Order{
		TotalCents:          req.TotalCents,
		DeliveryAddress:     contact.Address,
		ZipCode:             contact.ZipCode,
		SpecialInstructions: req.SpecialInstructions,
		OrderItems:          req.Items,
	})
	if err != nil {
		slog.Error("Failed to create order", "error", err, "customer_id", cust.ID)

		return OrderResult{}, err
	}

	lines := make([]messages.OrderLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = messages.OrderLine{Name: item.Name, Quantity: item.Quantity}
	}
	details := messages.OrderDetails{
		Items:               lines,
		CustomerName:        contact.Name,
		CustomerEmail:       contact.Email,
		CustomerPhone:       contact.Phone,
		Address:             contact.Address,
		ZipCode:             contact.ZipCode,
		SpecialInstructions: req.SpecialInstructions,
	}

	notified := s.notifier.SendOrderNotification(ctx, details)
	if !notified.Success {
		slog.Warn("Order stored but notification failed", "order_id", created.ID, "message", notified.Message)
	}

	s.publish(ctx, event.Submission{
		Kind:           event.KindOrder,
		RecordID:       created.ID,
		CustomerID:     cust.ID,
		CustomerEmail:  cust.Email,
		ItemCount:      len(created.OrderItems),
		NotificationOK: notified.Success,
	})

	slog.Info("Order submitted", "order_id", created.ID, "customer_id", cust.ID, "items", len(created.OrderItems))

	return OrderResult{
		Success:      true,
		Message:      MsgOrderPlaced,
		Confirmation: order.Confirmation{Order: created, Customer: cust},
		Notification: notified,
		WhatsAppLink: messages.WhatsAppLink(messages.OrderWhatsApp(details), phone.AdminPhone),
	}, nil
}

// publish sends a submission event; failures are only logged.
func (s *SubmissionService) publish(ctx context.Context, ev event.Submission) {
	if s.publisher == nil {
		return
	}

	ev.ID = uuid.NewString()
	ev.OccurredAt = s.now().UTC()
	if err := s.publisher.Publish(ctx, ev); err != nil {
		slog.Warn("Failed to publish submission event",
			"error", fmt.Errorf("%w: %w", apperr.ErrTransport, err),
			"kind", ev.Kind,
			"record_id", ev.RecordID,
		)
	}
}
