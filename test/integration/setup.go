package integration

import (
	"context"
	"testing"
	"time"

	"tienda-api/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS marcas (
			id BIGSERIAL PRIMARY KEY,
			nombre VARCHAR(255) NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS categorias (
			id BIGSERIAL PRIMARY KEY,
			nombre VARCHAR(255) NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS productos (
			id BIGSERIAL PRIMARY KEY,
			nombre VARCHAR(255) NOT NULL UNIQUE,
			descripcion TEXT NOT NULL DEFAULT '',
			precio NUMERIC(8, 2) NOT NULL CHECK (precio >= 0),
			cantidad_disponible INTEGER NOT NULL CHECK (cantidad_disponible >= 0),
			categoria_id BIGINT NOT NULL REFERENCES categorias(id),
			marca_id BIGINT NOT NULL REFERENCES marcas(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS compras (
			id BIGSERIAL PRIMARY KEY,
			subtotal NUMERIC(10, 2) NOT NULL,
			total NUMERIC(10, 2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS compras_productos (
			id BIGSERIAL PRIMARY KEY,
			compra_id BIGINT NOT NULL REFERENCES compras(id) ON DELETE CASCADE,
			producto_id BIGINT NOT NULL REFERENCES productos(id),
			precio NUMERIC(8, 2) NOT NULL,
			cantidad INTEGER NOT NULL CHECK (cantidad > 0),
			subtotal NUMERIC(10, 2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCategory inserts a category and returns its id.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, name string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO categorias (nombre) VALUES ($1) RETURNING id`, name,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return id
}

// SeedBrand inserts a brand and returns its id.
func SeedBrand(t *testing.T, pool *pgxpool.Pool, name string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO marcas (nombre) VALUES ($1) RETURNING id`, name,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed brand: %v", err)
	}
	return id
}

// SeedProduct inserts a product and returns its id.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, name string, price decimal.Decimal, stock int, categoryID, brandID int64) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO productos (nombre, precio, cantidad_disponible, categoria_id, marca_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		name, price, stock, categoryID, brandID,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return id
}

// ProductStock reads the current available stock of a product.
func ProductStock(t *testing.T, pool *pgxpool.Pool, id int64) int {
	t.Helper()

	var stock int
	err := pool.QueryRow(context.Background(),
		`SELECT cantidad_disponible FROM productos WHERE id = $1`, id,
	).Scan(&stock)
	if err != nil {
		t.Fatalf("failed to read product stock: %v", err)
	}
	return stock
}

// CountPurchases returns the number of purchase headers in the database.
func CountPurchases(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()

	var count int
	err := pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM compras`).Scan(&count)
	if err != nil {
		t.Fatalf("failed to count purchases: %v", err)
	}
	return count
}

// PurchaseItems reads the stored line items of a purchase in insertion order.
func PurchaseItems(t *testing.T, pool *pgxpool.Pool, purchaseID int64) []model.PurchaseItem {
	t.Helper()

	rows, err := pool.Query(context.Background(),
		`SELECT compra_id, producto_id, precio, cantidad, subtotal
		 FROM compras_productos WHERE compra_id = $1 ORDER BY id`, purchaseID)
	if err != nil {
		t.Fatalf("failed to query purchase items: %v", err)
	}
	defer rows.Close()

	var items []model.PurchaseItem
	for rows.Next() {
		var item model.PurchaseItem
		if err := rows.Scan(&item.PurchaseID, &item.ProductID, &item.UnitPrice, &item.Quantity, &item.Subtotal); err != nil {
			t.Fatalf("failed to scan purchase item: %v", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("failed to iterate purchase items: %v", err)
	}
	return items
}
