package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/corray333/backend-labs/booking/internal/dal/postgres"
	"github.com/corray333/backend-labs/booking/internal/service/models/customer"
)

// CustomerDal represents customer data access layer model.
type CustomerDal struct {
	Id        int64     `db:"id"`
	FullName  string    `db:"full_name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Address   string    `db:"address"`
	ZipCode   string    `db:"zip_code"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts CustomerDal to service layer Customer model.
func (c *CustomerDal) ToModel() customer.Customer {
	return customer.Customer{
		ID:        c.Id,
		FullName:  c.FullName,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		ZipCode:   c.ZipCode,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

var columns = []string{"id", "full_name", "email", "phone", "address", "zip_code", "created_at", "updated_at"}

func scan(row pgx.Row) (customer.Customer, error) {
	var dal CustomerDal
	if err := row.Scan(
		&dal.Id,
		&dal.FullName,
		&dal.Email,
		&dal.Phone,
		&dal.Address,
		&dal.ZipCode,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	); err != nil {
		return customer.Customer{}, err
	}

	return dal.ToModel(), nil
}

// PostgresCustomerRepository represents a Postgres customer repository.
type PostgresCustomerRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresCustomerRepository creates a new Postgres customer repository.
func NewPostgresCustomerRepository(conn postgres.GenericConn) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetByEmail returns the customer with the given email. The bool is false when none exists.
func (r *PostgresCustomerRepository) GetByEmail(ctx context.Context, email string) (customer.Customer, bool, error) {
	sql, args, err := r.sb.Select(columns...).
		From("customers").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return customer.Customer{}, false, fmt.Errorf("failed to build query: %w", err)
	}

	c, err := scan(r.conn.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return customer.Customer{}, false, nil
	}
	if err != nil {
		return customer.Customer{}, false, fmt.Errorf("failed to get customer by email: %w", err)
	}

	return c, true, nil
}

// Insert creates a customer and returns it with its id.
func (r *PostgresCustomerRepository) Insert(ctx context.Context, c customer.Customer) (customer.Customer, error) {
	sql, args, err := r.sb.Insert("customers").
		Columns("full_name", "email", "phone", "address", "zip_code", "created_at", "updated_at").
		Values(c.FullName, c.Email, c.Phone, c.Address, c.ZipCode, c.CreatedAt, c.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return customer.Customer{}, fmt.Errorf("failed to build query: %w", err)
	}

	inserted, err := scan(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return customer.Customer{}, fmt.Errorf("failed to insert customer: %w", err)
	}

	return inserted, nil
}

// UpdateContact refreshes the name and phone of an existing customer.
func (r *PostgresCustomerRepository) UpdateContact(
	ctx context.Context,
	id int64,
	fullName, phone string,
	updatedAt time.Time,
) (customer.Customer, error) {
	sql, args, err := r.sb.Update("customers").
		Set("full_name", fullName).
		Set("phone", phone).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return customer.Customer{}, fmt.Errorf("failed to build query: %w", err)
	}

	updated, err := scan(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return customer.Customer{}, fmt.Errorf("failed to update customer: %w", err)
	}

	return updated, nil
}
