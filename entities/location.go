package entities

type State struct {
	StateID uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"uniqueIndex" json:"name"`
}

type District struct {
	DistrictID uint   `gorm:"primaryKey" json:"id"`
	StateID    uint   `gorm:"index" json:"state_id"`
	Name       string `gorm:"index" json:"name"`
}

type Village struct {
	VillageID  uint   `gorm:"primaryKey" json:"id"`
	DistrictID uint   `gorm:"index" json:"district_id"`
	Name       string `json:"name"`
}
