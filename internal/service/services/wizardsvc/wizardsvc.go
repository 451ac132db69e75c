package wizardsvc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/corray333/backend-labs/booking/internal/service/apperr"
	"github.com/corray333/backend-labs/booking/internal/service/models/booking"
	"github.com/corray333/backend-labs/booking/internal/service/models/catalog"
	"github.com/corray333/backend-labs/booking/internal/service/services/submissionsvc"
	"github.com/corray333/backend-labs/booking/internal/service/wizard"
)

type draftStore interface {
	Save(ctx context.Context, d *wizard.Draft) error
	Get(ctx context.Context, id string) (*wizard.Draft, error)
	Delete(ctx context.Context, id string) error
}

type serviceCatalog interface {
	GetService(ctx context.Context, id int64) (catalog.Service, bool, error)
}

type submitter interface {
	SubmitBooking(ctx context.Context, req booking.Request) (submissionsvc.BookingResult, error)
}

// WizardService keeps booking drafts server side and drives them through the wizard.
type WizardService struct {
	drafts    draftStore
	catalog   serviceCatalog
	submitter submitter
}

// option is a function that configures the WizardService.
type option func(*WizardService)

// MustNewWizardService creates a new WizardService.
func MustNewWizardService(opts ...option) *WizardService {
	s := &WizardService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.drafts == nil || s.catalog == nil || s.submitter == nil {
		panic("wizardsvc: draft store, catalog and submitter are required")
	}

	return s
}

// WithDraftStore sets the draft store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDraftStore(store draftStore) option {
	return func(s *WizardService) {
		s.drafts = store
	}
}

// WithCatalog sets the catalog used to resolve selected services.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalog(c serviceCatalog) option {
	return func(s *WizardService) {
		s.catalog = c
	}
}

// WithSubmitter sets the booking submission workflow.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSubmitter(sub submitter) option {
	return func(s *WizardService) {
		s.submitter = sub
	}
}

func storeError(step string, err error) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return err
	}

	return apperr.Persistence(step, err)
}

// Create starts a new draft.
func (s *WizardService) Create(ctx context.Context) (*wizard.Draft, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "WizardService.Create")
	defer span.End()

	d := wizard.New(uuid.NewString(), time.Now().UTC())
	if err := s.drafts.Save(ctx, d); err != nil {
		return nil, storeError("save draft", err)
	}

	return d, nil
}

// Get returns a draft.
func (s *WizardService) Get(ctx context.Context, id string) (*wizard.Draft, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, storeError("get draft", err)
	}

	return d, nil
}

// update loads a draft, applies step and saves it when step succeeds.
func (s *WizardService) update(ctx context.Context, id string, step func(d *wizard.Draft) error) (*wizard.Draft, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := step(d); err != nil {
		return nil, err
	}

	if err := s.drafts.Save(ctx, d); err != nil {
		return nil, storeError("save draft", err)
	}

	return d, nil
}

// SelectService resolves serviceID in the catalog and records it on the draft.
func (s *WizardService) SelectService(ctx context.Context, id string, serviceID int64) (*wizard.Draft, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "WizardService.SelectService")
	defer span.End()

	return s.update(ctx, id, func(d *wizard.Draft) error {
		svc, found, err := s.catalog.GetService(ctx, serviceID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.Validation(submissionsvc.MsgInvalidService)
		}

		return d.SelectService(svc.ID, svc.Name)
	})
}

// ChooseTime records the date and time window.
func (s *WizardService) ChooseTime(ctx context.Context, id, date, start, end string) (*wizard.Draft, error) {
	return s.update(ctx, id, func(d *wizard.Draft) error {
		return d.ChooseTime(date, start, end)
	})
}

// EnterDetails records the contact details.
func (s *WizardService) EnterDetails(ctx context.Context, id string, details wizard.Details) (*wizard.Draft, error) {
	return s.update(ctx, id, func(d *wizard.Draft) error {
		return d.EnterDetails(details)
	})
}

// Back moves the draft to the previous step.
func (s *WizardService) Back(ctx context.Context, id string) (*wizard.Draft, error) {
	return s.update(ctx, id, func(d *wizard.Draft) error {
		return d.Back()
	})
}

// Submit runs the booking workflow for a completed draft. The draft is deleted only
// when the submission succeeds, so a failed attempt can be retried from the same draft.
func (s *WizardService) Submit(ctx context.Context, id string) (submissionsvc.BookingResult, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "WizardService.Submit")
	defer span.End()

	d, err := s.Get(ctx, id)
	if err != nil {
		return submissionsvc.BookingResult{}, err
	}

	req, err := d.Request()
	if err != nil {
		return submissionsvc.BookingResult{}, err
	}

	res, err := s.submitter.SubmitBooking(ctx, req)
	if err != nil {
		return submissionsvc.BookingResult{}, err
	}

	// A submitted draft must never reach SubmitBooking again, even if the delete below fails.
	if err := d.Complete(); err != nil {
		slog.Error("Failed to complete draft", "draft_id", id, "error", err)
	}
	if err := s.drafts.Save(ctx, d); err != nil {
		slog.Warn("Failed to save submitted draft", "draft_id", id, "error", err)
	}
	if err := s.drafts.Delete(ctx, id); err != nil {
		slog.Warn("Failed to delete submitted draft", "draft_id", id, "error", err)
	}

	return res, nil
}
