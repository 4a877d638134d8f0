package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var db *sql.DB

// InitDB opens the connection pool and verifies it with a ping. Schema
// changes are applied separately through the migrate command.
func InitDB(host, port, user, password, dbname, sslmode string) error {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	db = conn
	return nil
}

// GetDB returns the database connection pool.
func GetDB() *sql.DB {
	return db
}
