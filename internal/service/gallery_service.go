package service

import (
	"errors"
	"strings"

	"github.com/aerosite/internal/db"
	"gorm.io/gorm"
)

var (
	ErrGalleryItemNotFound  = errors.New("gallery item not found")
	ErrGalleryImageMissing  = errors.New("image is required")
	ErrGalleryFieldsMissing = errors.New("title and category are required")
)

// GalleryService handles media gallery CRUD.
type GalleryService struct {
	db *gorm.DB
}

// GalleryInput represents fields accepted when creating or updating a
// gallery item.
type GalleryInput struct {
	Title       string
	Description string
	ImageURL    string
	ImageWidth  int
	ImageHeight int
	Category    string
	Tags        string
	IsActive    *bool
	Order       *int
}

// NewGalleryService creates a GalleryService instance.
func NewGalleryService(gdb *gorm.DB) *GalleryService {
	return &GalleryService{db: gdb}
}

// List returns gallery items ordered for display, optionally filtered
// by category.
func (s *GalleryService) List(category string) ([]db.GalleryItem, error) {
	return s.list(category, false)
}

// ListActive returns only active items, for the public site.
func (s *GalleryService) ListActive(category string) ([]db.GalleryItem, error) {
	return s.list(category, true)
}

func (s *GalleryService) list(category string, activeOnly bool) ([]db.GalleryItem, error) {
	query := s.db.Model(&db.GalleryItem{})
	if category = strings.TrimSpace(category); category != "" {
		query = query.Where("category = ?", category)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var items []db.GalleryItem
	if err := query.Order("`order` asc").Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a gallery item by id.
func (s *GalleryService) Get(id uint) (*db.GalleryItem, error) {
	var item db.GalleryItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a new gallery item.
func (s *GalleryService) Create(input GalleryInput) (*db.GalleryItem, error) {
	item := db.GalleryItem{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		ImageWidth:  input.ImageWidth,
		ImageHeight: input.ImageHeight,
		Category:    strings.TrimSpace(input.Category),
		Tags:        strings.TrimSpace(input.Tags),
		IsActive:    true,
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	if input.Order != nil {
		item.Order = *input.Order
	}

	if err := validateGalleryItem(&item); err != nil {
		return nil, err
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update modifies an existing gallery item.
func (s *GalleryService) Update(id uint, input GalleryInput) (*db.GalleryItem, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	item.Title = strings.TrimSpace(input.Title)
	item.Description = strings.TrimSpace(input.Description)
	item.ImageURL = strings.TrimSpace(input.ImageURL)
	if input.ImageWidth > 0 {
		item.ImageWidth = input.ImageWidth
	}
	if input.ImageHeight > 0 {
		item.ImageHeight = input.ImageHeight
	}
	item.Category = strings.TrimSpace(input.Category)
	item.Tags = strings.TrimSpace(input.Tags)
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	if input.Order != nil {
		item.Order = *input.Order
	}

	if err := validateGalleryItem(item); err != nil {
		return nil, err
	}
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a gallery item and returns the deleted record.
func (s *GalleryService) Delete(id uint) (*db.GalleryItem, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func validateGalleryItem(item *db.GalleryItem) error {
	if item.Title == "" || item.Category == "" {
		return ErrGalleryFieldsMissing
	}
	if item.ImageURL == "" {
		return ErrGalleryImageMissing
	}
	return nil
}
