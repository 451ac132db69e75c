// Package bookingdrafts serves the multi-step booking flow backed by server-side drafts.
package bookingdrafts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/backend-labs/booking/internal/service/services/submissionsvc"
	"github.com/corray333/backend-labs/booking/internal/service/wizard"
	"github.com/corray333/backend-labs/booking/internal/transport/http/response"
)

type service interface {
	Create(ctx context.Context) (*wizard.Draft, error)
	Get(ctx context.Context, id string) (*wizard.Draft, error)
	SelectService(ctx context.Context, id string, serviceID int64) (*wizard.Draft, error)
	ChooseTime(ctx context.Context, id, date, start, end string) (*wizard.Draft, error)
	EnterDetails(ctx context.Context, id string, details wizard.Details) (*wizard.Draft, error)
	Back(ctx context.Context, id string) (*wizard.Draft, error)
	Submit(ctx context.Context, id string) (submissionsvc.BookingResult, error)
}

type selectServiceRequest struct {
	ServiceID int64 `json:"serviceId"`
}

type chooseTimeRequest struct {
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Error("Error decoding request body for draft", "error", err)
		response.BadRequest(w, "Invalid request body")

		return false
	}

	return true
}

func writeDraft(w http.ResponseWriter, status int, d *wizard.Draft, err error) {
	if err != nil {
		response.Error(w, err)

		return
	}

	response.JSON(w, status, d)
}

// Create starts a new draft.
func Create(w http.ResponseWriter, r *http.Request, service service) {
	d, err := service.Create(r.Context())
	writeDraft(w, http.StatusCreated, d, err)
}

// Get writes the draft named by {id}.
func Get(w http.ResponseWriter, r *http.Request, service service) {
	d, err := service.Get(r.Context(), chi.URLParam(r, "id"))
	writeDraft(w, http.StatusOK, d, err)
}

// SelectService handles the service step.
func SelectService(w http.ResponseWriter, r *http.Request, service service) {
	req := selectServiceRequest{}
	if !decode(w, r, &req) {
		return
	}

	d, err := service.SelectService(r.Context(), chi.URLParam(r, "id"), req.ServiceID)
	writeDraft(w, http.StatusOK, d, err)
}

// ChooseTime handles the date and time step.
func ChooseTime(w http.ResponseWriter, r *http.Request, service service) {
	req := chooseTimeRequest{}
	if !decode(w, r, &req) {
		return
	}

	d, err := service.ChooseTime(r.Context(), chi.URLParam(r, "id"), req.BookingDate, req.StartTime, req.EndTime)
	writeDraft(w, http.StatusOK, d, err)
}

// EnterDetails handles the contact details step.
func EnterDetails(w http.ResponseWriter, r *http.Request, service service) {
	req := wizard.Details{}
	if !decode(w, r, &req) {
		return
	}

	d, err := service.EnterDetails(r.Context(), chi.URLParam(r, "id"), req)
	writeDraft(w, http.StatusOK, d, err)
}

// Back returns the draft to its previous step.
func Back(w http.ResponseWriter, r *http.Request, service service) {
	d, err := service.Back(r.Context(), chi.URLParam(r, "id"))
	writeDraft(w, http.StatusOK, d, err)
}

// Submit books the completed draft.
func Submit(w http.ResponseWriter, r *http.Request, service service) {
	res, err := service.Submit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Error submitting draft", "error", err)
		response.Error(w, err)

		return
	}

	response.JSON(w, http.StatusCreated, res)
}
