package db

import "time"

// Hero 定义首页主视觉横幅模型
type Hero struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	Subtitle        string    `gorm:"not null" json:"subtitle"`
	BackgroundImage string    `gorm:"not null" json:"backgroundImage"`
	CTAText         string    `json:"ctaText"`
	CTALink         string    `json:"ctaLink"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
