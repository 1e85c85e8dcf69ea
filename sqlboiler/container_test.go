package sqlboiler_test

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aarondl/null/v8"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nrfta/gridview-go/catalog"
)

// Container represents a running PostgreSQL testcontainer with the products
// table created.
type Container struct {
	Container *postgres.PostgresContainer
	DB        *sql.DB
	ConnStr   string
}

// SetupPostgres starts a PostgreSQL container with initialized tables.
func SetupPostgres(ctx context.Context) (*Container, error) {
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := createTables(ctx, db); err != nil {
		db.Close()
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Container{
		Container: pgContainer,
		DB:        db,
		ConnStr:   connStr,
	}, nil
}

// Terminate stops and removes the PostgreSQL container.
func (c *Container) Terminate(ctx context.Context) error {
	if c.DB != nil {
		c.DB.Close()
	}
	if c.Container != nil {
		return c.Container.Terminate(ctx)
	}
	return nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	schema := `
		CREATE TABLE products (
			id INTEGER PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			brand VARCHAR(255),
			category VARCHAR(255) NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			stock INTEGER NOT NULL DEFAULT 0,
			rating DOUBLE PRECISION NOT NULL DEFAULT 0
		);
	`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SeedProducts inserts count products. Every fourth product has no brand and
// every fifth is titled as a phone.
func SeedProducts(ctx context.Context, db *sql.DB, count int) ([]catalog.Product, error) {
	products := make([]catalog.Product, count)

	for i := 0; i < count; i++ {
		p := catalog.Product{
			ID:       i + 1,
			Title:    fmt.Sprintf("Gadget %d", i+1),
			Category: []string{"tools", "garden", "kitchen"}[i%3],
			Price:    float64(10 + i),
			Stock:    i * 2,
			Rating:   float64(i%5) + 0.5,
		}
		if i%5 == 0 {
			p.Title = fmt.Sprintf("Phone %d", i+1)
		}
		if i%4 != 0 {
			p.Brand = null.StringFrom([]string{"Acme", "Zeta"}[i%2])
		}

		_, err := db.ExecContext(ctx,
			`INSERT INTO products (id, title, brand, category, price, stock, rating) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.ID, p.Title, p.Brand, p.Category, p.Price, p.Stock, p.Rating,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to seed product %d: %w", i, err)
		}

		products[i] = p
	}

	return products, nil
}

// CleanupTables removes all rows between specs.
func CleanupTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `TRUNCATE products`)
	return err
}
