// Package database provides database connection management for the
// compete-radar product tracking and competitive analysis system.
//
// This package includes:
//   - Database connection management using GORM and PostgreSQL
//   - Data models for tracked products, snapshots, and competitive groups
//   - Comprehensive error handling and validation
//
// Key Concepts:
//   - Product snapshots are append-only; the latest snapshot per product
//     identifier is the metrics source for competitive analysis
//   - Competitive groups and competitors use soft deletes (is_active flag)
//   - JSONB columns hold category ranks and feature tags per snapshot
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database holds the GORM database connection and provides access to the
// underlying DB instance. It serves as the central connection point for all
// database operations in the application.
type Database struct {
	db *gorm.DB
}

// DB returns the underlying GORM database instance for direct access when needed.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Connect establishes database connection using GORM
func Connect(host string, port int, dbname, user, password string) (*Database, error) {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		host, port, dbname, user, password)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Silent logging for production
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitSchema performs auto-migration for all tables
func (d *Database) InitSchema() error {
	fmt.Println("🔄 Starting database schema initialization...")

	err := d.db.AutoMigrate(
		&Product{},
		&ProductSnapshot{},
		&CompetitiveGroup{},
		&Competitor{},
		&AnalysisReportRecord{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	// Partial unique index backs the group-scoped uniqueness invariant:
	// at most one active competitor per product id within a group.
	d.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_competitors_unique_active
		ON competitors (group_id, product_id)
		WHERE is_active
	`)

	fmt.Println("✅ Database schema initialized")
	return nil
}
