package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tableorder-backend/config"
	"tableorder-backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	log.Println("Running database migrations...")
	if err := Migrate(db); err != nil {
		return nil, err
	}

	if cfg.EnforceChecks {
		log.Println("Applying check-constraint DDL...")
		if err := applyCheckConstraints(db); err != nil {
			log.Printf("Warning: failed to apply some check constraints: %v. Continuing without them.", err)
		}
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// Migrate runs AutoMigrate for all domain entities.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.MenuItem{},
		&model.Table{},
		&model.DeviceSession{},
		&model.Order{},
		&model.CustomerRequest{},
		&model.Profile{},
		&model.PushSubscription{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

// applyCheckConstraints adds the closed-enumeration and positivity checks the
// store also enforces in code. Postgres-only; each statement is idempotent.
func applyCheckConstraints(db *gorm.DB) error {
	ddls := []string{
		"ALTER TABLE tables DROP CONSTRAINT IF EXISTS tables_status_check;",
		"ALTER TABLE tables ADD CONSTRAINT tables_status_check " +
			"CHECK (status IN ('free', 'occupied'));",

		"ALTER TABLE orders DROP CONSTRAINT IF EXISTS orders_status_check;",
		"ALTER TABLE orders ADD CONSTRAINT orders_status_check " +
			"CHECK (status IN ('pending', 'preparing', 'order is ready', 'served', 'cancelled'));",

		"ALTER TABLE orders DROP CONSTRAINT IF EXISTS orders_total_amount_check;",
		"ALTER TABLE orders ADD CONSTRAINT orders_total_amount_check CHECK (total_amount > 0);",

		"ALTER TABLE customer_requests DROP CONSTRAINT IF EXISTS customer_requests_type_check;",
		"ALTER TABLE customer_requests ADD CONSTRAINT customer_requests_type_check " +
			"CHECK (request_type IN ('water', 'bill', 'order_more'));",

		"ALTER TABLE menu_items DROP CONSTRAINT IF EXISTS menu_items_price_check;",
		"ALTER TABLE menu_items ADD CONSTRAINT menu_items_price_check CHECK (price > 0);",

		"ALTER TABLE menu_items DROP CONSTRAINT IF EXISTS menu_items_prep_time_check;",
		"ALTER TABLE menu_items ADD CONSTRAINT menu_items_prep_time_check CHECK (prep_time_minutes > 0);",

		"ALTER TABLE profiles DROP CONSTRAINT IF EXISTS profiles_role_check;",
		"ALTER TABLE profiles ADD CONSTRAINT profiles_role_check " +
			"CHECK (role IN ('manager', 'servant'));",
	}

	for _, ddl := range ddls {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("DDL failed on %q: %w", ddl, err)
		}
	}
	return nil
}
