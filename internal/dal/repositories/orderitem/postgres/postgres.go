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
	"github.com/corray333/backend-labs/booking/internal/service/models/orderitem"
)

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	Id            int64     `db:"id"`
	OrderId       int64     `db:"order_id"`
	Name          string    `db:"name"`
	Quantity      int       `db:"quantity"`
	PriceCents    int64     `db:"price_cents"`
	PriceCurrency string    `db:"price_currency"`
	CreatedAt     time.Time `db:"created_at"`
}

// ToModel converts OrderItemDal to service layer OrderItem model.
func (oi *OrderItemDal) ToModel() (orderitem.OrderItem, error) {
	cur, err := currency.ParseCurrency(oi.PriceCurrency)
	if err != nil {
		return orderitem.OrderItem{}, err
	}

	return orderitem.OrderItem{
		ID:            oi.Id,
		OrderID:       oi.OrderId,
		Name:          oi.Name,
		Quantity:      oi.Quantity,
		PriceCents:    oi.PriceCents,
		PriceCurrency: cur,
		CreatedAt:     oi.CreatedAt,
	}, nil
}

var columns = []string{"id", "order_id", "name", "quantity", "price_cents", "price_currency", "created_at"}

func scan(row pgx.Row) (orderitem.OrderItem, error) {
	var dal OrderItemDal
	if err := row.Scan(
		&dal.Id,
		&dal.OrderId,
		&dal.Name,
		&dal.Quantity,
		&dal.PriceCents,
		&dal.PriceCurrency,
		&dal.CreatedAt,
	); err != nil {
		return orderitem.OrderItem{}, err
	}

	return dal.ToModel()
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.GenericConn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts all items in one statement and returns them with ids, in input order.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	orderItems []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(orderItems) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	query := r.sb.Insert("pastry_order_items").Columns(columns[1:]...)
	for _, oi := range orderItems {
		query = query.Values(
			oi.OrderID,
			oi.Name,
			oi.Quantity,
			oi.PriceCents,
			oi.PriceCurrency.String(),
			oi.CreatedAt,
		)
	}

	sql, args, err := query.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	result := make([]orderitem.OrderItem, 0, len(orderItems))
	for rows.Next() {
		oi, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, oi)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Query retrieves order items based on filter criteria.
func (r *PostgresOrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	query := r.sb.Select(columns...).From("pastry_order_items").OrderBy("id")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.OrderIds) > 0 {
		query = query.Where(sq.Eq{"order_id": filter.OrderIds})
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
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		oi, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, oi)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
