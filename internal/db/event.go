package db

import "time"

// Event 定义活动与展会模型
type Event struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Location    string    `gorm:"not null" json:"location"`
	Images      []string  `gorm:"serializer:json" json:"images"`
	Category    string    `gorm:"not null" json:"category"` // airshow, exhibition, conference, trade-show, other
	IsActive    bool      `json:"isActive"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
