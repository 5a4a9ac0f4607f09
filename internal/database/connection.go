// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sokomarket/soko-backend/internal/config"
	"github.com/sokomarket/soko-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Affiliate{},
		&models.AffiliateLink{},
		&models.Click{},
		&models.Order{},
		&models.OrderItem{},
		&models.Influencer{},
		&models.Campaign{},
		&models.Engagement{},
		&models.Review{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_vendor ON products(vendor_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_approval ON products(is_approved, is_affiliate_promotable)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Affiliate indexes
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_affiliate_links_code ON affiliate_links(code)",
		"CREATE INDEX IF NOT EXISTS idx_affiliate_links_pair ON affiliate_links(product_id, affiliate_id)",
		"CREATE INDEX IF NOT EXISTS idx_clicks_link ON clicks(affiliate_link_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_clicks_affiliate ON clicks(affiliate_id)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_buyer_status ON orders(buyer_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_affiliate ON orders(affiliate_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",

		// Campaign indexes
		"CREATE INDEX IF NOT EXISTS idx_campaigns_vendor_status ON campaigns(vendor_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_engagements_campaign ON engagements(campaign_id, created_at DESC)",

		// Review indexes
		"CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_reviews_user ON reviews(user_id)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",

		// Full-text search index
		"CREATE INDEX IF NOT EXISTS idx_products_search ON products USING GIN(to_tsvector('english', title || ' ' || description))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to create index: %s", index)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	logrus.Info("Seeding initial data...")

	// Create default admin user
	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Name:       "System Administrator",
			Email:      "admin@sokomarket.rw",
			Role:       models.RoleAdmin,
			IsVerified: true,
		}

		if err := admin.SetPassword("Admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		logrus.Info("Default admin user created successfully")
	}

	logrus.Info("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
