package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corray333/backend-labs/booking/internal/service/apperr"
	"github.com/corray333/backend-labs/booking/internal/service/models/booking"
	"github.com/corray333/backend-labs/booking/internal/service/models/customer"
	"github.com/corray333/backend-labs/booking/internal/service/validation"
)

func TestStruct_Valid(t *testing.T) {
	err := validation.Struct(customer.Contact{
		Name:    "Ana Silva",
		Email:   "ana@example.com",
		Phone:   "912345678",
		Address: "Rua A 1",
		ZipCode: "1000-001",
	})

	assert.NoError(t, err)
}

func TestStruct_ListsMissingFields(t *testing.T) {
	err := validation.Struct(customer.Contact{Name: "Ana", Phone: "912345678", Address: "Rua A"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Contains(t, err.Error(), "Please fill in all required fields: email, zipCode")
}

func TestStruct_ReportsMalformedFields(t *testing.T) {
	err := validation.Struct(booking.Request{
		ServiceID:   1,
		BookingDate: "01/06/2024",
		StartTime:   "09:00",
		EndTime:     "11:00",
		Name:        "Ana",
		Email:       "not-an-email",
		Phone:       "912345678",
		Address:     "Rua A",
		ZipCode:     "1000-001",
	})

	require.Error(t, err)
	assert.True(t, apperr.IsClientError(err))
	assert.Contains(t, err.Error(), "bookingDate")
	assert.Contains(t, err.Error(), "email")
	assert.NotContains(t, err.Error(), "required fields")
}
