package postgresrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/corray333/backend-labs/booking/internal/dal/postgres"
	"github.com/corray333/backend-labs/booking/internal/service/models/currency"
	"github.com/corray333/backend-labs/booking/internal/service/models/order"
	"github.com/corray333/backend-labs/booking/internal/service/models/orderitem"
)

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id                  int64     `db:"id"`
	CustomerId          int64     `db:"customer_id"`
	Status              string    `db:"status"`
	TotalCents          int64     `db:"total_cents"`
	TotalCurrency       string    `db:"total_currency"`
	Address             string    `db:"address"`
	ZipCode             string    `db:"zip_code"`
	SpecialInstructions string    `db:"special_instructions"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() (order.Order, error) {
	cur, err := currency.ParseCurrency(o.TotalCurrency)
	if err != nil {
		return order.Order{}, err
	}

	return order.Order{
		ID:                  o.Id,
		CustomerID:          o.CustomerId,
		TotalCents:          o.TotalCents,
		TotalCurrency:       cur,
		DeliveryAddress:     o.Address,
		ZipCode:             o.ZipCode,
		SpecialInstructions: o.SpecialInstructions,
		Status:              o.Status,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
		OrderItems:          []orderitem.OrderItem{},
	}, nil
}

// OrderDalFromModel converts service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:                  o.ID,
		CustomerId:          o.CustomerID,
		Status:              o.Status,
		TotalCents:          o.TotalCents,
		TotalCurrency:       o.TotalCurrency.String(),
		Address:             o.DeliveryAddress,
		ZipCode:             o.ZipCode,
		SpecialInstructions: o.SpecialInstructions,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

var columns = []string{
	"id",
	"customer_id",
	"status",
	"total_cents",
	"total_currency",
	"address",
	"zip_code",
	"special_instructions",
	"created_at",
	"updated_at",
}

func scan(row pgx.Row) (order.Order, error) {
	var dal OrderDal
	if err := row.Scan(
		&dal.Id,
		&dal.CustomerId,
		&dal.Status,
		&dal.TotalCents,
		&dal.TotalCurrency,
		&dal.Address,
		&dal.ZipCode,
		&dal.SpecialInstructions,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	); err != nil {
		return order.Order{}, err
	}

	return dal.ToModel()
}

// PostgresOrderRepository represents a Postgres pastry order repository.
type PostgresOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres pastry order repository.
func NewPostgresOrderRepository(conn postgres.GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert creates an order row without its items and returns it with its id.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	dal := OrderDalFromModel(&o)

	sql, args, err := r.sb.Insert("pastry_orders").
		Columns(columns[1:]...).
		Values(
			dal.CustomerId,
			dal.Status,
			dal.TotalCents,
			dal.TotalCurrency,
			dal.Address,
			dal.ZipCode,
			dal.SpecialInstructions,
			dal.CreatedAt,
			dal.UpdatedAt,
		).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build query: %w", err)
	}

	inserted, err := scan(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return inserted, nil
}

// Query retrieves orders based on filter criteria, newest first.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	query := r.sb.Select(columns...).From("pastry_orders").OrderBy("id DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.CustomerIds) > 0 {
		query = query.Where(sq.Eq{"customer_id": filter.CustomerIds})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	result := []order.Order{}
	for rows.Next() {
		o, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
