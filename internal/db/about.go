package db

import "time"

// AboutStat 表示关于板块中的一条统计数据
type AboutStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// AboutSection 定义关于页面各板块模型。
// Images 与 Stats 以 JSON 序列化列存储。
type AboutSection struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	Section     string      `gorm:"not null;index" json:"section"` // mission, vision, values, quality, global-leaders, clients
	Title       string      `gorm:"not null" json:"title"`
	Subtitle    string      `json:"subtitle"`
	Description string      `gorm:"not null" json:"description"`
	Content     string      `json:"content"`
	ContentHTML string      `gorm:"-" json:"contentHtml,omitempty"`
	Images      []string    `gorm:"serializer:json" json:"images"`
	Stats       []AboutStat `gorm:"serializer:json" json:"stats"`
	IsActive    bool        `json:"isActive"`
	Order       int         `gorm:"default:0" json:"order"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
