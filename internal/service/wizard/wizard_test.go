package wizard_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corray333/backend-labs/booking/internal/service/apperr"
	"github.com/corray333/backend-labs/booking/internal/service/wizard"
)

func details() wizard.Details {
	return wizard.Details{
		Name:    "Ana Silva",
		Email:   "ana@example.com",
		Phone:   "912345678",
		Address: "Rua A 1",
		ZipCode: "1000-001",
	}
}

func TestDraft_HappyPath(t *testing.T) {
	d := wizard.New("d1", time.Now())
	require.Equal(t, wizard.StepSelectService, d.Step)

	require.NoError(t, d.SelectService(1, "House Cleaning"))
	require.Equal(t, wizard.StepChooseTime, d.Step)

	require.NoError(t, d.ChooseTime("2024-06-01", "09:00", "11:00"))
	require.Equal(t, wizard.StepEnterDetails, d.Step)

	require.NoError(t, d.EnterDetails(details()))
	req, err := d.Request()
	require.NoError(t, err)
	assert.EqualValues(t, 1, req.ServiceID)
	assert.Equal(t, "2024-06-01", req.BookingDate)
	assert.Equal(t, "Ana Silva", req.Name)

	require.NoError(t, d.Complete())
	assert.Equal(t, wizard.StepSubmitted, d.Step)
}

func TestDraft_InvalidTransitions(t *testing.T) {
	d := wizard.New("d1", time.Now())

	err := d.ChooseTime("2024-06-01", "09:00", "11:00")
	assert.True(t, errors.Is(err, wizard.ErrInvalidTransition))
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	assert.ErrorIs(t, d.EnterDetails(details()), wizard.ErrInvalidTransition)
	assert.ErrorIs(t, d.Back(), wizard.ErrInvalidTransition)
	_, err = d.Request()
	assert.ErrorIs(t, err, wizard.ErrInvalidTransition)
	assert.ErrorIs(t, d.Complete(), wizard.ErrInvalidTransition)

	require.NoError(t, d.SelectService(2, "Cooking"))
	assert.ErrorIs(t, d.SelectService(3, "Decorating"), wizard.ErrInvalidTransition)
}

func TestDraft_RequestNeedsDetails(t *testing.T) {
	d := wizard.New("d1", time.Now())
	require.NoError(t, d.SelectService(1, "House Cleaning"))
	require.NoError(t, d.ChooseTime("2024-06-01", "09:00", "11:00"))

	_, err := d.Request()
	assert.ErrorIs(t, err, wizard.ErrInvalidTransition)
}

func TestDraft_SelectServiceRejectsUnknownId(t *testing.T) {
	d := wizard.New("d1", time.Now())

	err := d.SelectService(0, "")

	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, wizard.StepSelectService, d.Step)
}

func TestDraft_ChooseTimeValidatesWindow(t *testing.T) {
	tests := []struct {
		name             string
		date, start, end string
	}{
		{name: "missing date", date: "", start: "09:00", end: "10:00"},
		{name: "malformed date", date: "01-06-2024", start: "09:00", end: "10:00"},
		{name: "before opening", date: "2024-06-01", start: "06:30", end: "08:00"},
		{name: "after closing", date: "2024-06-01", start: "17:00", end: "18:30"},
		{name: "end before start", date: "2024-06-01", start: "10:00", end: "09:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := wizard.New("d1", time.Now())
			require.NoError(t, d.SelectService(1, "House Cleaning"))

			err := d.ChooseTime(tt.date, tt.start, tt.end)

			assert.ErrorIs(t, err, apperr.ErrValidation)
			assert.Equal(t, wizard.StepChooseTime, d.Step)
		})
	}
}

func TestDraft_EnterDetailsValidates(t *testing.T) {
	d := wizard.New("d1", time.Now())
	require.NoError(t, d.SelectService(1, "House Cleaning"))
	require.NoError(t, d.ChooseTime("2024-06-01", "07:00", "18:00"))

	incomplete := details()
	incomplete.Phone = ""
	err := d.EnterDetails(incomplete)

	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), "phone")
	assert.False(t, d.DetailsEntered)
}

func TestDraft_BackKeepsData(t *testing.T) {
	d := wizard.New("d1", time.Now())
	require.NoError(t, d.SelectService(1, "House Cleaning"))
	require.NoError(t, d.ChooseTime("2024-06-01", "09:00", "11:00"))

	require.NoError(t, d.Back())
	assert.Equal(t, wizard.StepChooseTime, d.Step)
	require.NoError(t, d.Back())
	assert.Equal(t, wizard.StepSelectService, d.Step)
	assert.Equal(t, "09:00", d.StartTime)

	require.NoError(t, d.SelectService(2, "Cooking"))
	assert.EqualValues(t, 2, d.ServiceID)
}
