// database/bootstrap.go
package database

import (
	"database/sql"
	"fmt"
	"strings"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alphafarm/entities"
)

// Models lists every table AutoMigrate manages.
func Models() []any {
	return []any{
		&entities.Account{},
		&entities.OTPCode{},
		&entities.Farmer{},
		&entities.Land{},
		&entities.CropPlan{},
		&entities.CropAllocation{},
		&entities.News{},
		&entities.CropYieldConfig{},
		&entities.State{},
		&entities.District{},
		&entities.Village{},
	}
}

func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate upgrades legacy tables, then runs AutoMigrate.
func Migrate(db *gorm.DB) error {
	// legacy rebuild has to run first; AutoMigrate would add an empty land_area
	if err := migrateLandsRenameArea(db); err != nil {
		return fmt.Errorf("migrate lands: %w", err)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

type colInfo struct {
	Cid       int
	Name      string
	Type      string
	NotNull   int
	DfltValue sql.NullString
	Pk        int
}

func tableColumns(db *gorm.DB, table string) (map[string]bool, error) {
	var name string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name).Error; err != nil {
		return nil, fmt.Errorf("check table exist: %w", err)
	}
	if name == "" {
		return nil, nil
	}
	var cols []colInfo
	if err := db.Raw(fmt.Sprintf(`PRAGMA table_info(%s)`, table)).Scan(&cols).Error; err != nil {
		return nil, fmt.Errorf("table_info: %w", err)
	}
	out := make(map[string]bool, len(cols))
	for _, c := range cols {
		out[strings.ToLower(c.Name)] = true
	}
	return out, nil
}

// migrateLandsRenameArea rebuilds lands tables created before the area
// column was renamed to land_area.
func migrateLandsRenameArea(db *gorm.DB) error {
	cols, err := tableColumns(db, "lands")
	if err != nil || cols == nil {
		return err
	}
	if cols["land_area"] || !cols["area"] {
		return nil
	}

	createSQL := `
CREATE TABLE lands_new (
    land_id INTEGER PRIMARY KEY AUTOINCREMENT,
    farmer_id INTEGER,
    country TEXT,
    state TEXT,
    district TEXT,
    village TEXT,
    survey_number TEXT,
    land_area REAL,
    latitude REAL,
    longitude REAL,
    soil_type TEXT,
    irrigation_type TEXT,
    approval_status TEXT DEFAULT 'pending',
    admin_remark TEXT,
    created_at DATETIME,
    updated_at DATETIME
);
`
	sel := func(name string) string {
		if cols[name] {
			return name
		}
		return "NULL"
	}
	copySQL := fmt.Sprintf(`
INSERT INTO lands_new (land_id, farmer_id, country, state, district, village, survey_number, land_area,
    latitude, longitude, soil_type, irrigation_type, approval_status, admin_remark, created_at, updated_at)
SELECT %s, %s, %s, %s, %s, %s, %s, area, %s, %s, %s, %s, COALESCE(%s, 'pending'), %s, %s, %s FROM lands;
`,
		sel("land_id"), sel("farmer_id"), sel("country"), sel("state"), sel("district"),
		sel("village"), sel("survey_number"), sel("latitude"), sel("longitude"),
		sel("soil_type"), sel("irrigation_type"), sel("approval_status"), sel("admin_remark"),
		sel("created_at"), sel("updated_at"),
	)

	return db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range []string{
			`PRAGMA foreign_keys=OFF`,
			createSQL,
			copySQL,
			`DROP TABLE lands`,
			`ALTER TABLE lands_new RENAME TO lands`,
			`PRAGMA foreign_keys=ON`,
		} {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
