package customer

import "time"

// Customer is identified by email. It is created on the first submission for an email
// and its name and phone are refreshed on every later one.
type Customer struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	ZipCode   string    `json:"zipCode,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Contact is the customer data collected by a submission form.
type Contact struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"required"`
	Address string `json:"address" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
}
