package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aerosite/internal/db"
	"gorm.io/gorm"
)

var (
	ErrAboutNotFound       = errors.New("about section not found")
	ErrAboutFieldsMissing  = errors.New("section, title and description are required")
	ErrAboutSectionInvalid = errors.New("section: must be one of mission, vision, values, quality, global-leaders, clients")
)

// aboutSections is the fixed set of valid section tags.
var aboutSections = []string{"mission", "vision", "values", "quality", "global-leaders", "clients"}

// AboutService handles about page section CRUD.
type AboutService struct {
	db *gorm.DB
}

// AboutInput represents fields accepted when creating or updating an
// about section. Nil slices mean "keep existing images/stats".
type AboutInput struct {
	Section     string
	Title       string
	Subtitle    string
	Description string
	Content     string
	Images      []string
	Stats       []db.AboutStat
	IsActive    *bool
	Order       *int
}

// NewAboutService creates an AboutService instance.
func NewAboutService(gdb *gorm.DB) *AboutService {
	return &AboutService{db: gdb}
}

// List returns all sections ordered for display, optionally filtered by
// section tag.
func (s *AboutService) List(section string) ([]db.AboutSection, error) {
	return s.list(section, false)
}

// ListActive returns only active sections, for the public site.
func (s *AboutService) ListActive(section string) ([]db.AboutSection, error) {
	return s.list(section, true)
}

func (s *AboutService) list(section string, activeOnly bool) ([]db.AboutSection, error) {
	query := s.db.Model(&db.AboutSection{})
	if section = strings.TrimSpace(section); section != "" {
		query = query.Where("section = ?", section)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var sections []db.AboutSection
	if err := query.Order("`order` asc").Order("created_at desc").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// Get fetches an about section by id.
func (s *AboutService) Get(id uint) (*db.AboutSection, error) {
	var section db.AboutSection
	if err := s.db.First(&section, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAboutNotFound
		}
		return nil, err
	}
	return &section, nil
}

// Create inserts a new about section.
func (s *AboutService) Create(input AboutInput) (*db.AboutSection, error) {
	section := db.AboutSection{
		Section:     strings.TrimSpace(input.Section),
		Title:       strings.TrimSpace(input.Title),
		Subtitle:    strings.TrimSpace(input.Subtitle),
		Description: strings.TrimSpace(input.Description),
		Content:     input.Content,
		Images:      input.Images,
		Stats:       input.Stats,
		IsActive:    true,
	}
	if section.Images == nil {
		section.Images = []string{}
	}
	if section.Stats == nil {
		section.Stats = []db.AboutStat{}
	}
	if input.IsActive != nil {
		section.IsActive = *input.IsActive
	}
	if input.Order != nil {
		section.Order = *input.Order
	}

	if err := validateAboutSection(&section); err != nil {
		return nil, err
	}
	if err := s.db.Create(&section).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// Update modifies an existing about section. Images and stats are
// replaced only when the input carries them.
func (s *AboutService) Update(id uint, input AboutInput) (*db.AboutSection, error) {
	section, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	section.Section = strings.TrimSpace(input.Section)
	section.Title = strings.TrimSpace(input.Title)
	section.Subtitle = strings.TrimSpace(input.Subtitle)
	section.Description = strings.TrimSpace(input.Description)
	section.Content = input.Content
	if input.Images != nil {
		section.Images = input.Images
	}
	if input.Stats != nil {
		section.Stats = input.Stats
	}
	if input.IsActive != nil {
		section.IsActive = *input.IsActive
	}
	if input.Order != nil {
		section.Order = *input.Order
	}

	if err := validateAboutSection(section); err != nil {
		return nil, err
	}
	if err := s.db.Save(section).Error; err != nil {
		return nil, err
	}
	return section, nil
}

// Delete removes an about section and returns the deleted record.
func (s *AboutService) Delete(id uint) (*db.AboutSection, error) {
	section, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(section).Error; err != nil {
		return nil, err
	}
	return section, nil
}

func validateAboutSection(section *db.AboutSection) error {
	if section.Section == "" || section.Title == "" || section.Description == "" {
		return ErrAboutFieldsMissing
	}
	for _, valid := range aboutSections {
		if section.Section == valid {
			return nil
		}
	}
	return fmt.Errorf("%w, got %q", ErrAboutSectionInvalid, section.Section)
}
