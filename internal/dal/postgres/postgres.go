package postgres

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/viper"
)

// GenericConn is implemented by both pgxpool.Pool and pgx.Tx, so repositories work
// inside and outside a transaction.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Client represents a Postgres client.
type Client struct {
	pool *pgxpool.Pool
}

// Pool returns the underlying connection pool.
func (p *Client) Pool() *pgxpool.Pool {
	return p.pool
}

// Ping checks the database connection.
func (p *Client) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close closes the database connection for graceful shutdown.
func (p *Client) Close() {
	p.pool.Close()
}

func connString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		viper.GetString("postgres.host"),
		viper.GetInt("postgres.port"),
		os.Getenv("BOOKING_PG_USER"),
		os.Getenv("BOOKING_PG_PASSWORD"),
		os.Getenv("BOOKING_PG_DB"),
		viper.GetString("postgres.sslmode"),
	)
}

// MustNewClient creates a new Postgres client and applies pending migrations when
// postgres.auto_migrate is set.
func MustNewClient() *Client {
	config, err := pgxpool.ParseConfig(connString())
	if err != nil {
		panic(err)
	}
	if maxConns := viper.GetInt32("postgres.max_conns"); maxConns > 0 {
		config.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		panic(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		panic(err)
	}

	client := &Client{
		pool: pool,
	}

	if viper.GetBool("postgres.auto_migrate") {
		if err := client.Migrate(context.Background(), MigrateUp); err != nil {
			panic(err)
		}
	}

	return client
}
