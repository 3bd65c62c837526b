// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/damaiputra/living-backend/internal/config"
	"github.com/damaiputra/living-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
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
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
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

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Unit{},
		&models.PermitTicket{},
		&models.Reward{},
		&models.RewardClaim{},
		&models.Notification{},
		&models.Property{},
		&models.Event{},
		&models.Destination{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_role_status ON users(role, status)",

		// Unit indexes
		"CREATE INDEX IF NOT EXISTS idx_units_owner ON units(owner_id)",
		"CREATE INDEX IF NOT EXISTS idx_units_status ON units(status)",
		"CREATE INDEX IF NOT EXISTS idx_units_number_tower ON units(unit_number, tower)",

		// Permit ticket indexes
		"CREATE INDEX IF NOT EXISTS idx_permit_tickets_user ON permit_tickets(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_permit_tickets_unit ON permit_tickets(unit_id)",
		"CREATE INDEX IF NOT EXISTS idx_permit_tickets_status_stage ON permit_tickets(status, workflow_stage)",
		"CREATE INDEX IF NOT EXISTS idx_permit_tickets_type ON permit_tickets(permit_type)",
		"CREATE INDEX IF NOT EXISTS idx_permit_tickets_created_at ON permit_tickets(created_at DESC)",

		// Reward indexes
		"CREATE INDEX IF NOT EXISTS idx_rewards_active ON rewards(is_active)",
		"CREATE INDEX IF NOT EXISTS idx_reward_claims_user ON reward_claims(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_reward_claims_status_expiry ON reward_claims(status, expires_at)",

		// Notification indexes
		"CREATE INDEX IF NOT EXISTS idx_notifications_user_read ON notifications(user_id, read_at)",
		"CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at DESC)",

		// Catalog indexes
		"CREATE INDEX IF NOT EXISTS idx_properties_status ON properties(status)",
		"CREATE INDEX IF NOT EXISTS idx_events_dates ON events(starts_at, ends_at)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",

		// Full-text search
		"CREATE INDEX IF NOT EXISTS idx_permit_tickets_search ON permit_tickets USING GIN(to_tsvector('simple', coalesce(activity_name, '') || ' ' || coalesce(description, '')))",
		"CREATE INDEX IF NOT EXISTS idx_properties_search ON properties USING GIN(to_tsvector('simple', name || ' ' || coalesce(description, '')))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	// Create default admin user
	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			FullName: "Estate Administrator",
			Email:    "admin@damaiputraliving.com",
			Role:     models.UserRoleAdmin,
			Status:   models.UserStatusActive,
			ProfileData: models.JSONB{
				"department": "estate_management",
			},
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	// Seed the starter reward catalog once
	var rewardCount int64
	db.Model(&models.Reward{}).Count(&rewardCount)

	if rewardCount == 0 {
		rewards := []models.Reward{
			{
				Title:       "Voucher IPL Rp100.000",
				Description: "Potongan tagihan IPL bulan berjalan",
				Category:    "billing",
				PointsCost:  1000,
				Stock:       100,
				ValidDays:   30,
				IsActive:    true,
			},
			{
				Title:       "Free Coffee - Damai Cafe",
				Description: "Satu minuman gratis di Damai Cafe",
				Category:    "fnb",
				PointsCost:  150,
				Stock:       200,
				ValidDays:   14,
				IsActive:    true,
			},
			{
				Title:       "Gym Day Pass",
				Description: "Akses satu hari ke fasilitas gym clubhouse",
				Category:    "facility",
				PointsCost:  300,
				Stock:       50,
				ValidDays:   30,
				IsActive:    true,
			},
		}

		for _, reward := range rewards {
			if err := db.Create(&reward).Error; err != nil {
				log.Printf("Warning: Failed to seed reward %s: %v", reward.Title, err)
			}
		}
	}

	log.Println("Initial data seeding completed")
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
