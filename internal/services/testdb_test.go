package services

import (
	"testing"

	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens an in-memory sqlite database limited to a single connection,
// so every goroutine in the concurrency tests shares one database the way
// service instances share one Postgres.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Staff{},
		&models.Team{},
		&models.Participant{},
		&models.MealRedemption{},
		&models.Score{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}
