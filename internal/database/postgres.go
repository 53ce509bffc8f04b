package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/talentbridge/talentbridge-go-api/internal/models"
)

// ConnectPostgres establishes a connection to the PostgreSQL database using the provided DSN.
func ConnectPostgres(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn must not be empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return db, nil
}

// Migrate applies the schema. Beyond AutoMigrate it creates the partial
// unique index enforcing one live application per (student, opportunity):
// only non-rejected rows participate, so a student may re-apply after a
// rejection while concurrent double-submission still collides.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Business{},
		&models.Student{},
		&models.Opportunity{},
		&models.Application{},
		&models.Rating{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_applications_live_target
		ON applications (student_id, opportunity_id)
		WHERE status <> 'rejected' AND opportunity_id IS NOT NULL`).Error
	if err != nil {
		return fmt.Errorf("failed to create live application index: %w", err)
	}

	return nil
}
