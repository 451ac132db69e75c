package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/corray333/backend-labs/booking/internal/dal/postgres"
	"github.com/corray333/backend-labs/booking/internal/service/models/catalog"
	"github.com/corray333/backend-labs/booking/internal/service/models/currency"
)

// ServiceDal represents service data access layer model.
type ServiceDal struct {
	Id                int64  `db:"id"`
	Name              string `db:"name"`
	Description       string `db:"description"`
	PricePerHourCents int64  `db:"price_per_hour_cents"`
	PriceCurrency     string `db:"price_currency"`
}

// ToModel converts ServiceDal to service layer Service model.
func (s *ServiceDal) ToModel() (catalog.Service, error) {
	cur, err := currency.ParseCurrency(s.PriceCurrency)
	if err != nil {
		return catalog.Service{}, err
	}

	return catalog.Service{
		ID:                s.Id,
		Name:              s.Name,
		Description:       s.Description,
		PricePerHourCents: s.PricePerHourCents,
		PriceCurrency:     cur,
		FixedPrice:        catalog.IsFixedPrice(s.Name),
	}, nil
}

// PostgresCatalogRepository reads services and pastries.
type PostgresCatalogRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresCatalogRepository creates a new Postgres catalog repository.
func NewPostgresCatalogRepository(conn postgres.GenericConn) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PostgresCatalogRepository) servicesQuery() sq.SelectBuilder {
	return r.sb.Select("id", "name", "description", "price_per_hour_cents", "price_currency").
		From("services")
}

func scanService(row pgx.Row) (catalog.Service, error) {
	var dal ServiceDal
	if err := row.Scan(&dal.Id, &dal.Name, &dal.Description, &dal.PricePerHourCents, &dal.PriceCurrency); err != nil {
		return catalog.Service{}, err
	}

	return dal.ToModel()
}

// GetService returns a service by id. The bool is false when it does not exist.
func (r *PostgresCatalogRepository) GetService(ctx context.Context, id int64) (catalog.Service, bool, error) {
	sql, args, err := r.servicesQuery().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return catalog.Service{}, false, fmt.Errorf("failed to build query: %w", err)
	}

	s, err := scanService(r.conn.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Service{}, false, nil
	}
	if err != nil {
		return catalog.Service{}, false, fmt.Errorf("failed to get service: %w", err)
	}

	return s, true, nil
}

// QueryServices retrieves services ordered by id.
func (r *PostgresCatalogRepository) QueryServices(
	ctx context.Context,
	filter *catalog.QueryServicesModel,
) ([]catalog.Service, error) {
	query := r.servicesQuery().OrderBy("id")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
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
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	result := []catalog.Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		result = append(result, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// QueryPastries retrieves pastries matching a free text search on name or description
// and an optional category.
func (r *PostgresCatalogRepository) QueryPastries(
	ctx context.Context,
	filter *catalog.QueryPastriesModel,
) ([]catalog.Pastry, error) {
	query := r.sb.Select("id", "name", "description", "category", "image_url").
		From("pastries").
		OrderBy("id")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"description": pattern},
		})
	}

	if filter.Category != "" {
		query = query.Where(sq.Eq{"category": filter.Category})
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
		return nil, fmt.Errorf("failed to query pastries: %w", err)
	}
	defer rows.Close()

	result := []catalog.Pastry{}
	for rows.Next() {
		var p catalog.Pastry
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan pastry: %w", err)
		}
		result = append(result, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
