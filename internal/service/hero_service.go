package service

import (
	"errors"
	"strings"

	"github.com/aerosite/internal/db"
	"gorm.io/gorm"
)

var (
	ErrHeroNotFound     = errors.New("hero not found")
	ErrNoActiveHero     = errors.New("no active hero found")
	ErrHeroImageMissing = errors.New("background image is required")
	ErrHeroTitleMissing = errors.New("title and subtitle are required")
)

// HeroService handles hero banner CRUD.
type HeroService struct {
	db *gorm.DB
}

// HeroInput represents fields accepted when creating or updating a hero.
// Pointer fields distinguish "absent" from zero values for updates.
type HeroInput struct {
	Title           string
	Subtitle        string
	BackgroundImage string
	CTAText         string
	CTALink         string
	IsActive        *bool
}

// NewHeroService creates a HeroService instance.
func NewHeroService(gdb *gorm.DB) *HeroService {
	return &HeroService{db: gdb}
}

// List returns all heroes, newest first.
func (s *HeroService) List() ([]db.Hero, error) {
	var heroes []db.Hero
	if err := s.db.Order("created_at desc").Find(&heroes).Error; err != nil {
		return nil, err
	}
	return heroes, nil
}

// Active returns the most recently created active hero.
func (s *HeroService) Active() (*db.Hero, error) {
	var hero db.Hero
	err := s.db.Where("is_active = ?", true).Order("created_at desc").First(&hero).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveHero
		}
		return nil, err
	}
	return &hero, nil
}

// Get fetches a hero by id.
func (s *HeroService) Get(id uint) (*db.Hero, error) {
	var hero db.Hero
	if err := s.db.First(&hero, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHeroNotFound
		}
		return nil, err
	}
	return &hero, nil
}

// Create inserts a new hero banner.
func (s *HeroService) Create(input HeroInput) (*db.Hero, error) {
	hero := db.Hero{
		Title:           strings.TrimSpace(input.Title),
		Subtitle:        strings.TrimSpace(input.Subtitle),
		BackgroundImage: strings.TrimSpace(input.BackgroundImage),
		CTAText:         strings.TrimSpace(input.CTAText),
		CTALink:         strings.TrimSpace(input.CTALink),
		IsActive:        true,
	}
	if input.IsActive != nil {
		hero.IsActive = *input.IsActive
	}

	if err := validateHero(&hero); err != nil {
		return nil, err
	}
	if err := s.db.Create(&hero).Error; err != nil {
		return nil, err
	}
	return &hero, nil
}

// Update modifies an existing hero.
func (s *HeroService) Update(id uint, input HeroInput) (*db.Hero, error) {
	hero, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	hero.Title = strings.TrimSpace(input.Title)
	hero.Subtitle = strings.TrimSpace(input.Subtitle)
	hero.BackgroundImage = strings.TrimSpace(input.BackgroundImage)
	hero.CTAText = strings.TrimSpace(input.CTAText)
	hero.CTALink = strings.TrimSpace(input.CTALink)
	if input.IsActive != nil {
		hero.IsActive = *input.IsActive
	}

	if err := validateHero(hero); err != nil {
		return nil, err
	}
	if err := s.db.Save(hero).Error; err != nil {
		return nil, err
	}
	return hero, nil
}

// Delete removes a hero and returns the deleted record so callers can
// release its media.
func (s *HeroService) Delete(id uint) (*db.Hero, error) {
	hero, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(hero).Error; err != nil {
		return nil, err
	}
	return hero, nil
}

// ToggleActive flips the active flag and persists.
func (s *HeroService) ToggleActive(id uint) (*db.Hero, error) {
	hero, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	hero.IsActive = !hero.IsActive
	if err := s.db.Save(hero).Error; err != nil {
		return nil, err
	}
	return hero, nil
}

func validateHero(hero *db.Hero) error {
	if hero.Title == "" || hero.Subtitle == "" {
		return ErrHeroTitleMissing
	}
	if hero.BackgroundImage == "" {
		return ErrHeroImageMissing
	}
	return nil
}
