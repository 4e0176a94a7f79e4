package database

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"alphafarm/entities"
)

// SeedAdmin creates the admin account, or resets its password and role.
// Empty phone or password is a no-op.
func SeedAdmin(db *gorm.DB, phone, password string) error {
	if phone == "" || password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	var acc entities.Account
	err = db.Where("phone = ?", phone).First(&acc).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		acc = entities.Account{Phone: phone, Name: "Admin", Role: entities.RoleAdmin, PasswordHash: string(hash)}
		return db.Create(&acc).Error
	case err != nil:
		return err
	}
	return db.Model(&acc).Updates(map[string]any{
		"password_hash": string(hash),
		"role":          entities.RoleAdmin,
	}).Error
}

// LocationSeed is the YAML layout of the locations file:
//
//	states:
//	  - name: Karnataka
//	    districts:
//	      - name: Kolar
//	        villages: [Bangarapet, Malur]
type LocationSeed struct {
	States []struct {
		Name      string `yaml:"name"`
		Districts []struct {
			Name     string   `yaml:"name"`
			Villages []string `yaml:"villages"`
		} `yaml:"districts"`
	} `yaml:"states"`
}

// SeedLocations loads states, districts and villages from a YAML file.
// Existing names are kept, so the call is safe to repeat.
func SeedLocations(db *gorm.DB, path string) error {
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read locations %s: %w", path, err)
	}
	var seed LocationSeed
	if err := yaml.Unmarshal(b, &seed); err != nil {
		return fmt.Errorf("parse locations %s: %w", path, err)
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, s := range seed.States {
			st := entities.State{Name: s.Name}
			if err := tx.Where(entities.State{Name: s.Name}).FirstOrCreate(&st).Error; err != nil {
				return err
			}
			for _, d := range s.Districts {
				dist := entities.District{StateID: st.StateID, Name: d.Name}
				if err := tx.Where(entities.District{StateID: st.StateID, Name: d.Name}).FirstOrCreate(&dist).Error; err != nil {
					return err
				}
				for _, v := range d.Villages {
					vil := entities.Village{DistrictID: dist.DistrictID, Name: v}
					if err := tx.Where(entities.Village{DistrictID: dist.DistrictID, Name: v}).FirstOrCreate(&vil).Error; err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}
