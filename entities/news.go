package entities

import "time"

type News struct {
	NewsID      uint   `gorm:"primaryKey" json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Content     string `json:"content"`
	ImageURL    string `json:"image_url"`
	URL         string `json:"url"`
	Tags        string `json:"tags"`
	IsImportant bool   `gorm:"index" json:"is_important"`
	IsActive    bool   `json:"is_active"`
	Status      string `gorm:"index;default:pending" json:"status"`
	AuthorID    *uint  `json:"author_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
