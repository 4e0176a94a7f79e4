package database

import (
	"os"
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alphafarm/entities"
)

func openRaw(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestMigrateRebuildsLegacyLands(t *testing.T) {
	db := openRaw(t)
	require.NoError(t, db.Exec(`CREATE TABLE lands (land_id INTEGER PRIMARY KEY, farmer_id INTEGER, area REAL, soil_type TEXT)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO lands (land_id, farmer_id, area, soil_type) VALUES (4, 1, 3.5, 'Black')`).Error)

	require.NoError(t, Migrate(db))

	var l entities.Land
	require.NoError(t, db.First(&l, 4).Error)
	assert.Equal(t, 3.5, l.LandArea)
	assert.Equal(t, "Black", l.SoilType)
	assert.Equal(t, entities.StatusPending, l.ApprovalStatus)

	// second run is a no-op
	require.NoError(t, Migrate(db))
}

func TestSeedAdmin(t *testing.T) {
	db := openRaw(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, SeedAdmin(db, "9000000000", "first"))
	require.NoError(t, SeedAdmin(db, "9000000000", "second"))

	var accs []entities.Account
	require.NoError(t, db.Find(&accs).Error)
	require.Len(t, accs, 1)
	assert.Equal(t, entities.RoleAdmin, accs[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(accs[0].PasswordHash), []byte("second")))

	assert.NoError(t, SeedAdmin(db, "", "x"))
}

func TestSeedLocations(t *testing.T) {
	db := openRaw(t)
	require.NoError(t, Migrate(db))
	path := filepath.Join(t.TempDir(), "locations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
states:
  - name: Karnataka
    districts:
      - name: Kolar
        villages: [Bangarapet, Malur]
      - name: Mandya
`), 0o644))

	require.NoError(t, SeedLocations(db, path))
	require.NoError(t, SeedLocations(db, path))

	var n int64
	db.Model(&entities.State{}).Count(&n)
	assert.EqualValues(t, 1, n)
	db.Model(&entities.District{}).Count(&n)
	assert.EqualValues(t, 2, n)
	db.Model(&entities.Village{}).Count(&n)
	assert.EqualValues(t, 2, n)
}
