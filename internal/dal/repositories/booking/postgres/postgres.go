package postgresrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/corray333/backend-labs/booking/internal/dal/postgres"
	"github.com/corray333/backend-labs/booking/internal/service/models/booking"
)

const dateLayout = "2006-01-02"

// BookingDal represents booking data access layer model.
type BookingDal struct {
	Id          int64     `db:"id"`
	CustomerId  int64     `db:"customer_id"`
	ServiceId   int64     `db:"service_id"`
	ServiceName string    `db:"service_name"`
	BookingDate time.Time `db:"booking_date"`
	StartTime   string    `db:"start_time"`
	EndTime     string    `db:"end_time"`
	Address     string    `db:"address"`
	ZipCode     string    `db:"zip_code"`
	Notes       string    `db:"notes"`
	CreatedAt   time.Time `db:"created_at"`
}

// ToModel converts BookingDal to service layer Booking model.
func (b *BookingDal) ToModel() booking.Booking {
	return booking.Booking{
		ID:          b.Id,
		CustomerID:  b.CustomerId,
		ServiceID:   b.ServiceId,
		ServiceName: b.ServiceName,
		BookingDate: b.BookingDate.Format(dateLayout),
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Address:     b.Address,
		ZipCode:     b.ZipCode,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
	}
}

var columns = []string{
	"id",
	"customer_id",
	"service_id",
	"service_name",
	"booking_date",
	"start_time",
	"end_time",
	"address",
	"zip_code",
	"notes",
	"created_at",
}

func scan(row pgx.Row) (booking.Booking, error) {
	var dal BookingDal
	if err := row.Scan(
		&dal.Id,
		&dal.CustomerId,
		&dal.ServiceId,
		&dal.ServiceName,
		&dal.BookingDate,
		&dal.StartTime,
		&dal.EndTime,
		&dal.Address,
		&dal.ZipCode,
		&dal.Notes,
		&dal.CreatedAt,
	); err != nil {
		return booking.Booking{}, err
	}

	return dal.ToModel(), nil
}

// PostgresBookingRepository represents a Postgres booking repository.
type PostgresBookingRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresBookingRepository creates a new Postgres booking repository.
func NewPostgresBookingRepository(conn postgres.GenericConn) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert creates a booking and returns it with its id.
func (r *PostgresBookingRepository) Insert(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	sql, args, err := r.sb.Insert("bookings").
		Columns(columns[1:]...).
		Values(
			b.CustomerID,
			b.ServiceID,
			b.ServiceName,
			sq.Expr("?::date", b.BookingDate),
			b.StartTime,
			b.EndTime,
			b.Address,
			b.ZipCode,
			b.Notes,
			b.CreatedAt,
		).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return booking.Booking{}, fmt.Errorf("failed to build query: %w", err)
	}

	inserted, err := scan(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return booking.Booking{}, fmt.Errorf("failed to insert booking: %w", err)
	}

	return inserted, nil
}

// Query retrieves bookings based on filter criteria, newest first.
func (r *PostgresBookingRepository) Query(ctx context.Context, filter *booking.QueryBookingsModel) ([]booking.Booking, error) {
	query := r.sb.Select(columns...).From("bookings").OrderBy("id DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.CustomerIds) > 0 {
		query = query.Where(sq.Eq{"customer_id": filter.CustomerIds})
	}

	if filter.BookingDate != "" {
		query = query.Where(sq.Expr("booking_date = ?::date", filter.BookingDate))
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
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	result := []booking.Booking{}
	for rows.Next() {
		b, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		result = append(result, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
