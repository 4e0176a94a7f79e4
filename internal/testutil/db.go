// Package testutil provides helpers shared by package tests.
package testutil

import (
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alphafarm/database"
	"alphafarm/entities"
)

// NewTestDB opens a migrated in-memory database that lives for the test.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every connection would get its own :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// SeedFarmer creates a farmer account and profile.
func SeedFarmer(t testing.TB, db *gorm.DB, phone, name string) (entities.Account, entities.Farmer) {
	t.Helper()
	acc := entities.Account{Phone: phone, Name: name, Role: entities.RoleFarmer}
	if err := db.Create(&acc).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	f := entities.Farmer{AccountID: acc.AccountID, Name: name, Phone: phone, ApprovalStatus: entities.StatusPending}
	if err := db.Create(&f).Error; err != nil {
		t.Fatalf("seed farmer: %v", err)
	}
	return acc, f
}

// SeedLand creates a land for the farmer with the given status.
func SeedLand(t testing.TB, db *gorm.DB, farmerID uint, area float64, status string) entities.Land {
	t.Helper()
	l := entities.Land{
		FarmerID: farmerID, Country: "India", State: "Karnataka", District: "Kolar", Village: "Malur",
		LandArea: area, SoilType: "Red", IrrigationType: "Drip", ApprovalStatus: status,
	}
	if err := db.Create(&l).Error; err != nil {
		t.Fatalf("seed land: %v", err)
	}
	return l
}
