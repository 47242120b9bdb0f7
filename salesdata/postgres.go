package salesdata

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"app/models"
)

// PostgresStore reads order records from a Postgres table instead of the live
// API. Used when DATABASE_URL is configured, e.g. for deployments that mirror
// the form data into their own database.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore on an existing pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// FetchAll retrieves every order row.
func (s *PostgresStore) FetchAll(ctx context.Context) ([]models.SalesRecord, error) {
	query := `
		SELECT id, order_date::text, weave, quality, composition, quantity, rate, status, agent_name, customer_name
		FROM orders
		ORDER BY order_date
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var records []models.SalesRecord
	for rows.Next() {
		var r models.SalesRecord
		var quantity, rate float64
		if err := rows.Scan(&r.ID, &r.Date, &r.Weave, &r.Quality, &r.Composition, &quantity, &rate, &r.Status, &r.AgentName, &r.CustomerName); err != nil {
			log.Printf("Error scanning order row: %v", err)
			continue
		}
		r.Quantity = models.Flexible(quantity)
		r.Rate = models.Flexible(rate)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order rows: %w", err)
	}

	return records, nil
}
