package notification

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/corray333/backend-labs/booking/internal/metrics"
	"github.com/corray333/backend-labs/booking/internal/service/apperr"
	"github.com/corray333/backend-labs/booking/internal/service/messages"
	"github.com/corray333/backend-labs/booking/internal/service/phone"
)

type smsSender interface {
	Configured() bool
	Send(ctx context.Context, to, body string) Result
}

type emailSender interface {
	Configured() bool
	Send(ctx context.Context, email Email) Result
}

// Notifier sends admin and customer notifications for bookings and orders.
type Notifier struct {
	sms        smsSender
	email      emailSender
	adminPhone string
	adminEmail string
}

type option func(*Notifier)

// NewNotifier creates a new Notifier. Without WithSMSSender every send fails with a
// missing configuration result.
func NewNotifier(opts ...option) *Notifier {
	n := &Notifier{adminPhone: phone.AdminPhone}
	for _, opt := range opts {
		opt(n)
	}

	return n
}

// WithSMSSender sets the SMS sender.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSMSSender(sender smsSender) option {
	return func(n *Notifier) {
		n.sms = sender
	}
}

// WithEmailSender sets the sender used for the admin booking email.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEmailSender(sender emailSender, adminEmail string) option {
	return func(n *Notifier) {
		n.email = sender
		n.adminEmail = adminEmail
	}
}

// WithAdminPhone overrides the admin phone number.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAdminPhone(number string) option {
	return func(n *Notifier) {
		n.adminPhone = number
	}
}

// SendBookingNotification notifies the admin and the customer about a new booking.
// The admin email, when configured, is sent alongside and only logged.
func (n *Notifier) SendBookingNotification(ctx context.Context, d messages.BookingDetails) Result {
	ctx, span := otel.Tracer("service").Start(ctx, "Notifier.SendBookingNotification")
	defer span.End()

	admin, customer := messages.BookingSMS(d)

	var g errgroup.Group
	if n.email != nil && n.email.Configured() && n.adminEmail != "" {
		g.Go(func() error {
			subject, html := messages.BookingEmail(d)
			res := n.email.Send(ctx, Email{To: n.adminEmail, Subject: subject, HTML: html})
			metrics.RecordNotification("email", "admin", res.Success)
			if !res.Success {
				slog.Warn("Failed to send admin booking email", "message", res.Message)
			}

			return nil
		})
	}

	res := n.dispatch(ctx, admin, customer, d.CustomerPhone)
	_ = g.Wait()

	return res
}

// SendOrderNotification notifies the admin and the customer about a new pastry order.
func (n *Notifier) SendOrderNotification(ctx context.Context, d messages.OrderDetails) Result {
	ctx, span := otel.Tracer("service").Start(ctx, "Notifier.SendOrderNotification")
	defer span.End()

	admin, customer := messages.OrderSMS(d)

	return n.dispatch(ctx, admin, customer, d.CustomerPhone)
}

// dispatch sends the admin SMS and, if the customer phone is valid, the customer SMS
// concurrently. The combined result succeeds when at least one of them succeeded.
func (n *Notifier) dispatch(ctx context.Context, adminBody, customerBody, customerPhone string) Result {
	if n.sms == nil || !n.sms.Configured() {
		err := fmt.Errorf("%w: SMS provider credentials are not set", apperr.ErrMissingConfiguration)
		slog.Error("Notification skipped", "error", err)

		return failed(err.Error())
	}

	var (
		g                 errgroup.Group
		adminRes, custRes Result
	)

	g.Go(func() error {
		adminRes = n.sms.Send(ctx, n.adminPhone, adminBody)
		metrics.RecordNotification("sms", "admin", adminRes.Success)

		return nil
	})

	to, err := phone.Format(customerPhone)
	if err != nil {
		_ = g.Wait()
		slog.Warn("Customer notification skipped", "error", err, "admin_success", adminRes.Success)

		return failed(err.Error())
	}

	g.Go(func() error {
		custRes = n.sms.Send(ctx, to, customerBody)
		metrics.RecordNotification("sms", "customer", custRes.Success)

		return nil
	})
	_ = g.Wait()

	if !adminRes.Success {
		slog.Warn("Failed to send admin notification", "message", adminRes.Message)
	}
	if !custRes.Success {
		slog.Warn("Failed to send customer notification", "message", custRes.Message)
	}

	return Result{
		Success: adminRes.Success || custRes.Success,
		Message: fmt.Sprintf("Admin notification: %s, Customer notification: %s", adminRes.Message, custRes.Message),
	}
}
