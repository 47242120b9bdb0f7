package database

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// db holds the database connection pool.
var db *pgxpool.Pool

// Connect sets up the database connection pool.
func Connect(databaseURL string) error {
	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		return err
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return err
	}

	db = pool
	log.Println("Successfully connected to the database")
	return nil
}

// GetDB returns the connection pool, or nil when no database is configured.
func GetDB() *pgxpool.Pool {
	return db
}

// Close closes the database connection pool.
func Close() {
	if db != nil {
		db.Close()
		log.Println("Database connection pool closed")
	}
}
