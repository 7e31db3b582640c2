package migration

import (
	"context"
	"errors"

	"gorm.io/gorm"

	coreport "github.com/nmehta6/wallet-ledger/internal/domain/port/core"
	"github.com/nmehta6/wallet-ledger/internal/infrastructure/adapter/model"
)

// CurrentSchemaVersion represents the current database schema version
const CurrentSchemaVersion = "1.0.0"

// MigrationManager manages database migrations
type MigrationManager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// MigrateAll performs all migrations
func (m *MigrationManager) MigrateAll() error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	if err := m.db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	currentVersion, err := m.GetCurrentVersion(context.Background())
	if err != nil {
		m.logger.Error("Failed to check current schema version", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	if err := m.db.AutoMigrate(&model.User{}, &model.Transaction{}); err != nil {
		m.logger.Error("Failed to auto-migrate models", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := m.createIndexes(); err != nil {
		m.logger.Error("Failed to create indexes", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := m.createConstraints(); err != nil {
		m.logger.Error("Failed to create constraints", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := m.setVersion(context.Background(), CurrentSchemaVersion, "Full schema migration"); err != nil {
		m.logger.Error("Failed to update schema version", map[string]any{
			"error":   err.Error(),
			"version": CurrentSchemaVersion,
		})
		return err
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// GetCurrentVersion gets the current migration version
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("applied_at desc").First(&version)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}
	return version.Version, nil
}

// setVersion records a completed migration
func (m *MigrationManager) setVersion(ctx context.Context, version, details string) error {
	record := model.MigrationVersion{
		Version:   version,
		AppliedAt: m.timeProvider.Now(),
		Details:   details,
	}
	return m.db.WithContext(ctx).Create(&record).Error
}

// createIndexes creates the indexes the hot paths depend on
func (m *MigrationManager) createIndexes() error {
	m.logger.Info("Creating indexes", nil)

	// Settlement looks transactions up by order id; the unique index also
	// enforces one ledger row per gateway order.
	if err := m.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_order_id
		ON transactions (order_id)
	`).Error; err != nil {
		return err
	}

	// Transaction history is served newest first per user.
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transactions_user_created
		ON transactions (user_id, created_at DESC)
	`).Error; err != nil {
		return err
	}

	// Partial index keeps the PENDING working set cheap to scan.
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transactions_pending
		ON transactions (order_id)
		WHERE status = 'PENDING'
	`).Error; err != nil {
		return err
	}

	if err := m.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email
		ON users (email)
	`).Error; err != nil {
		return err
	}

	return nil
}

// createConstraints adds non-negative checks on every wallet column
func (m *MigrationManager) createConstraints() error {
	m.logger.Info("Creating constraints", nil)

	columns := []string{
		"balance",
		"ai_avatar_balance",
		"meta_ad_balance",
		"data_scrap_balance",
		"broadcast_bot_balance",
	}
	for _, column := range columns {
		stmt := `
			DO $$ BEGIN
				ALTER TABLE users ADD CONSTRAINT chk_users_` + column + `_non_negative
				CHECK (` + column + ` >= 0);
			EXCEPTION WHEN duplicate_object THEN NULL;
			END $$;
		`
		if err := m.db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
