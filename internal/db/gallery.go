package db

import "time"

// GalleryItem 定义媒体画廊条目模型。
// Tags 沿用逗号分隔字符串，宽高在上传时解码记录。
type GalleryItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `gorm:"not null" json:"imageUrl"`
	ImageWidth  int       `json:"imageWidth"`
	ImageHeight int       `json:"imageHeight"`
	Category    string    `gorm:"not null" json:"category"`
	Tags        string    `json:"tags"`
	IsActive    bool      `json:"isActive"`
	Order       int       `gorm:"default:0" json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
