package uow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corray333/backend-labs/booking/internal/dal/interfaces/ibookingrepo"
	"github.com/corray333/backend-labs/booking/internal/dal/interfaces/icustomerrepo"
	"github.com/corray333/backend-labs/booking/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/booking/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/booking/internal/dal/postgres"
	bookingrepo "github.com/corray333/backend-labs/booking/internal/dal/repositories/booking/postgres"
	customerrepo "github.com/corray333/backend-labs/booking/internal/dal/repositories/customer/postgres"
	orderrepo "github.com/corray333/backend-labs/booking/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/corray333/backend-labs/booking/internal/dal/repositories/orderitem/postgres"
)

type unitOfWork struct {
	pool          *pgxpool.Pool
	tx            pgx.Tx
	customerRepo  icustomerrepo.ICustomerRepository
	bookingRepo   ibookingrepo.IBookingRepository
	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
}

// NewUnitOfWork creates repositories bound to the pool. After Begin they are rebound to
// the transaction.
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	u := &unitOfWork{pool: client.Pool()}
	u.bind(client.Pool())

	return u
}

func (u *unitOfWork) bind(conn postgres.GenericConn) {
	u.customerRepo = customerrepo.NewPostgresCustomerRepository(conn)
	u.bookingRepo = bookingrepo.NewPostgresBookingRepository(conn)
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(conn)
}

func (u *unitOfWork) CustomerRepository() icustomerrepo.ICustomerRepository {
	return u.customerRepo
}

func (u *unitOfWork) BookingRepository() ibookingrepo.IBookingRepository {
	return u.bookingRepo
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback is a no-op after Commit.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	if err := u.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}

	return nil
}
