package icustomerrepo

import (
	"context"
	"time"

	"github.com/corray333/backend-labs/booking/internal/service/models/customer"
)

// ICustomerRepository is an interface for customer postgres repository.
type ICustomerRepository interface {
	GetByEmail(ctx context.Context, email string) (customer.Customer, bool, error)
	Insert(ctx context.Context, c customer.Customer) (customer.Customer, error)
	UpdateContact(ctx context.Context, id int64, fullName, phone string, updatedAt time.Time) (customer.Customer, error)
}
