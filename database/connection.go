// backend/database/connection.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/madruiz/pm9data/backend/config"
	_ "github.com/go-sql-driver/mysql"
)

var DB *sql.DB

// InitDB opens the connection pool against the configured MySQL server and
// verifies it with a ping. The DSN forces utf8mb4 because center names,
// titles and abstracts carry accented Spanish text, and parseTime so DATE
// columns scan into time.Time.
func InitDB(cfg config.DatabaseConfig) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
	)

	var err error
	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(10)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err := DB.Ping(); err != nil {
		DB.Close()
		DB = nil
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to the database!")
	return nil
}

// CloseDB closes the connection pool. Called on application shutdown.
func CloseDB() {
	if DB != nil {
		DB.Close()
		log.Println("Database connection closed.")
	}
}
