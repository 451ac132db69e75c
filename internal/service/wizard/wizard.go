// Package wizard is the three step booking flow: pick a service, pick a time window,
// enter contact details. A Draft only moves between adjacent steps and only after the
// data for the current step is valid, so a draft that reaches Submitted always produced
// a complete booking request.
package wizard

import (
	"errors"
	"fmt"
	"time"

	"github.com/corray333/backend-labs/booking/internal/service/apperr"
	"github.com/corray333/backend-labs/booking/internal/service/models/booking"
	"github.com/corray333/backend-labs/booking/internal/service/validation"
)

// Step is a wizard state.
type Step string

const (
	StepSelectService Step = "select_service"
	StepChooseTime    Step = "choose_time"
	StepEnterDetails  Step = "enter_details"
	StepSubmitted     Step = "submitted"
)

// ErrInvalidTransition is returned for an action that is not allowed in the current step.
// It always comes wrapped together with apperr.ErrValidation.
var ErrInvalidTransition = errors.New("invalid booking step transition")

// Details is the contact information entered in the last step.
type Details struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"required"`
	Address string `json:"address" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Notes   string `json:"notes"`
}

// Draft is an in-progress booking.
type Draft struct {
	ID             string    `json:"id"`
	Step           Step      `json:"step"`
	ServiceID      int64     `json:"serviceId,omitempty"`
	ServiceName    string    `json:"serviceName,omitempty"`
	BookingDate    string    `json:"bookingDate,omitempty"`
	StartTime      string    `json:"startTime,omitempty"`
	EndTime        string    `json:"endTime,omitempty"`
	Details        Details   `json:"details"`
	DetailsEntered bool      `json:"detailsEntered"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// New starts a draft at the service selection step.
func New(id string, now time.Time) *Draft {
	return &Draft{
		ID:        id,
		Step:      StepSelectService,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (d *Draft) transitionError(action string) error {
	return fmt.Errorf("%w: %w: cannot %s at step %s", apperr.ErrValidation, ErrInvalidTransition, action, d.Step)
}

func (d *Draft) moveTo(step Step) {
	d.Step = step
	d.UpdatedAt = time.Now()
}

// SelectService records the chosen catalog service and advances to ChooseTime.
// The caller resolves the service so only catalog ids get here.
func (d *Draft) SelectService(id int64, name string) error {
	if d.Step != StepSelectService {
		return d.transitionError("select a service")
	}
	if id <= 0 {
		return apperr.Validation("Please select a valid service")
	}

	d.ServiceID = id
	d.ServiceName = name
	d.moveTo(StepChooseTime)

	return nil
}

// ChooseTime records the date and time window and advances to EnterDetails.
func (d *Draft) ChooseTime(date, start, end string) error {
	if d.Step != StepChooseTime {
		return d.transitionError("choose a time")
	}
	if date == "" {
		return apperr.Validation("Please select a date")
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return apperr.Validation("invalid date %q, expected YYYY-MM-DD", date)
	}
	if err := booking.ValidateWindow(start, end); err != nil {
		return err
	}

	d.BookingDate = date
	d.StartTime = start
	d.EndTime = end
	d.moveTo(StepEnterDetails)

	return nil
}

// EnterDetails records the contact details. The draft stays at EnterDetails until it
// is submitted.
func (d *Draft) EnterDetails(details Details) error {
	if d.Step != StepEnterDetails {
		return d.transitionError("enter details")
	}
	if err := validation.Struct(details); err != nil {
		return err
	}

	d.Details = details
	d.DetailsEntered = true
	d.UpdatedAt = time.Now()

	return nil
}

// Back returns to the previous step. Data entered on later steps is kept.
func (d *Draft) Back() error {
	switch d.Step {
	case StepChooseTime:
		d.moveTo(StepSelectService)
	case StepEnterDetails:
		d.moveTo(StepChooseTime)
	default:
		return d.transitionError("go back")
	}

	return nil
}

// Request builds the booking request of a draft whose details were entered.
func (d *Draft) Request() (booking.Request, error) {
	if d.Step != StepEnterDetails || !d.DetailsEntered {
		return booking.Request{}, d.transitionError("submit")
	}

	return booking.Request{
		ServiceID:   d.ServiceID,
		BookingDate: d.BookingDate,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		Name:        d.Details.Name,
		Email:       d.Details.Email,
		Phone:       d.Details.Phone,
		Address:     d.Details.Address,
		ZipCode:     d.Details.ZipCode,
		Notes:       d.Details.Notes,
	}, nil
}

// Complete marks the draft as submitted.
func (d *Draft) Complete() error {
	if d.Step != StepEnterDetails || !d.DetailsEntered {
		return d.transitionError("complete")
	}
	d.moveTo(StepSubmitted)

	return nil
}
