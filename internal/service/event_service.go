package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aerosite/internal/db"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventFieldsMissing   = errors.New("title, description, date and location are required")
	ErrEventCategoryInvalid = errors.New("category: must be one of airshow, exhibition, conference, trade-show, other")
)

// eventCategories is the fixed set of valid event categories.
var eventCategories = []string{"airshow", "exhibition", "conference", "trade-show", "other"}

// EventService handles event CRUD.
type EventService struct {
	db *gorm.DB
}

// EventFilter describes filters for listing events.
type EventFilter struct {
	Category   string
	Featured   *bool
	ActiveOnly bool
}

// EventInput represents fields accepted when creating or updating an
// event. A nil Images slice means "keep existing images".
type EventInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	Images      []string
	Category    string
	IsActive    *bool
	Featured    *bool
}

// NewEventService creates an EventService instance.
func NewEventService(gdb *gorm.DB) *EventService {
	return &EventService{db: gdb}
}

// List returns events matching the filter, newest event date first.
func (s *EventService) List(filter EventFilter) ([]db.Event, error) {
	query := s.db.Model(&db.Event{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var events []db.Event
	if err := query.Order("date desc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ListPublic returns active events for the public site.
func (s *EventService) ListPublic() ([]db.Event, error) {
	return s.List(EventFilter{ActiveOnly: true})
}

// Get fetches an event by id.
func (s *EventService) Get(id uint) (*db.Event, error) {
	var event db.Event
	if err := s.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// Create inserts a new event.
func (s *EventService) Create(input EventInput) (*db.Event, error) {
	event := db.Event{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Date:        input.Date,
		Location:    strings.TrimSpace(input.Location),
		Images:      input.Images,
		Category:    strings.TrimSpace(input.Category),
		IsActive:    true,
	}
	if event.Images == nil {
		event.Images = []string{}
	}
	if input.IsActive != nil {
		event.IsActive = *input.IsActive
	}
	if input.Featured != nil {
		event.Featured = *input.Featured
	}

	if err := validateEvent(&event); err != nil {
		return nil, err
	}
	if err := s.db.Create(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Update modifies an existing event. Images are replaced only when the
// input carries them.
func (s *EventService) Update(id uint, input EventInput) (*db.Event, error) {
	event, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	event.Title = strings.TrimSpace(input.Title)
	event.Description = strings.TrimSpace(input.Description)
	event.Date = input.Date
	event.Location = strings.TrimSpace(input.Location)
	event.Category = strings.TrimSpace(input.Category)
	if input.Images != nil {
		event.Images = input.Images
	}
	if input.IsActive != nil {
		event.IsActive = *input.IsActive
	}
	if input.Featured != nil {
		event.Featured = *input.Featured
	}

	if err := validateEvent(event); err != nil {
		return nil, err
	}
	if err := s.db.Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes an event and returns the deleted record.
func (s *EventService) Delete(id uint) (*db.Event, error) {
	event, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// ToggleFeatured flips the featured flag and persists.
func (s *EventService) ToggleFeatured(id uint) (*db.Event, error) {
	event, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	event.Featured = !event.Featured
	if err := s.db.Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func validateEvent(event *db.Event) error {
	if event.Title == "" || event.Description == "" || event.Location == "" || event.Date.IsZero() {
		return ErrEventFieldsMissing
	}
	for _, valid := range eventCategories {
		if event.Category == valid {
			return nil
		}
	}
	return fmt.Errorf("%w, got %q", ErrEventCategoryInvalid, event.Category)
}
