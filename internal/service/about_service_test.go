package service

import (
	"errors"
	"testing"

	"github.com/aerosite/internal/db"
)

func TestAboutCreateValidation(t *testing.T) {
	svc := NewAboutService(setupTestDB(t))

	if _, err := svc.Create(AboutInput{Section: "mission"}); !errors.Is(err, ErrAboutFieldsMissing) {
		t.Fatalf("expected fields error, got %v", err)
	}
	if _, err := svc.Create(AboutInput{Section: "history", Title: "t", Description: "d"}); !errors.Is(err, ErrAboutSectionInvalid) {
		t.Fatalf("expected invalid section error, got %v", err)
	}

	section, err := svc.Create(AboutInput{
		Section:     "mission",
		Title:       "Our mission",
		Description: "Advance flight",
		Stats:       []db.AboutStat{{Label: "Years", Value: "25"}},
		Images:      []string{"/api/uploads/a.jpg"},
	})
	if err != nil {
		t.Fatalf("failed to create section: %v", err)
	}
	if !section.IsActive {
		t.Fatalf("expected section to default to active")
	}
	if len(section.Stats) != 1 || section.Stats[0].Label != "Years" {
		t.Fatalf("unexpected stats: %+v", section.Stats)
	}

	got, err := svc.Get(section.ID)
	if err != nil {
		t.Fatalf("failed to get section: %v", err)
	}
	if len(got.Images) != 1 || got.Images[0] != "/api/uploads/a.jpg" {
		t.Fatalf("images did not round-trip: %+v", got.Images)
	}
	if len(got.Stats) != 1 || got.Stats[0].Value != "25" {
		t.Fatalf("stats did not round-trip: %+v", got.Stats)
	}
}

func TestAboutListOrderAndFilter(t *testing.T) {
	svc := NewAboutService(setupTestDB(t))

	second, err := svc.Create(AboutInput{Section: "vision", Title: "Vision", Description: "d", Order: intPtr(2)})
	if err != nil {
		t.Fatalf("failed to create section: %v", err)
	}
	first, err := svc.Create(AboutInput{Section: "mission", Title: "Mission", Description: "d", Order: intPtr(1)})
	if err != nil {
		t.Fatalf("failed to create section: %v", err)
	}
	hidden, err := svc.Create(AboutInput{Section: "clients", Title: "Clients", Description: "d", IsActive: boolPtr(false)})
	if err != nil {
		t.Fatalf("failed to create section: %v", err)
	}

	all, err := svc.List("")
	if err != nil {
		t.Fatalf("failed to list sections: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(all))
	}
	if all[0].ID != hidden.ID {
		t.Fatalf("expected order 0 section first, got %d", all[0].ID)
	}
	if all[1].ID != first.ID || all[2].ID != second.ID {
		t.Fatalf("sections not sorted by order: %d, %d", all[1].ID, all[2].ID)
	}

	active, err := svc.ListActive("")
	if err != nil {
		t.Fatalf("failed to list active sections: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active sections, got %d", len(active))
	}
	for _, s := range active {
		if s.ID == hidden.ID {
			t.Fatalf("inactive section leaked into public list")
		}
	}

	missions, err := svc.List("mission")
	if err != nil {
		t.Fatalf("failed to filter sections: %v", err)
	}
	if len(missions) != 1 || missions[0].ID != first.ID {
		t.Fatalf("unexpected section filter result: %+v", missions)
	}
}

func TestAboutUpdateKeepsSlicesWhenNil(t *testing.T) {
	svc := NewAboutService(setupTestDB(t))

	section, err := svc.Create(AboutInput{
		Section:     "values",
		Title:       "Values",
		Description: "d",
		Images:      []string{"/api/uploads/a.jpg", "/api/uploads/b.jpg"},
		Stats:       []db.AboutStat{{Label: "Team", Value: "200"}},
	})
	if err != nil {
		t.Fatalf("failed to create section: %v", err)
	}

	updated, err := svc.Update(section.ID, AboutInput{
		Section:     "values",
		Title:       "Values v2",
		Description: "d2",
	})
	if err != nil {
		t.Fatalf("failed to update section: %v", err)
	}
	if len(updated.Images) != 2 {
		t.Fatalf("nil images input must keep existing, got %+v", updated.Images)
	}
	if len(updated.Stats) != 1 {
		t.Fatalf("nil stats input must keep existing, got %+v", updated.Stats)
	}

	replaced, err := svc.Update(section.ID, AboutInput{
		Section:     "values",
		Title:       "Values v3",
		Description: "d3",
		Images:      []string{"/api/uploads/c.jpg"},
		Stats:       []db.AboutStat{},
	})
	if err != nil {
		t.Fatalf("failed to replace slices: %v", err)
	}
	if len(replaced.Images) != 1 || replaced.Images[0] != "/api/uploads/c.jpg" {
		t.Fatalf("images not replaced: %+v", replaced.Images)
	}
	if len(replaced.Stats) != 0 {
		t.Fatalf("empty stats input must clear existing, got %+v", replaced.Stats)
	}
}

func TestAboutDeleteReturnsRecord(t *testing.T) {
	svc := NewAboutService(setupTestDB(t))

	section, err := svc.Create(AboutInput{
		Section:     "quality",
		Title:       "Quality",
		Description: "d",
		Images:      []string{"/api/uploads/q.jpg"},
	})
	if err != nil {
		t.Fatalf("failed to create section: %v", err)
	}

	deleted, err := svc.Delete(section.ID)
	if err != nil {
		t.Fatalf("failed to delete section: %v", err)
	}
	if len(deleted.Images) != 1 {
		t.Fatalf("deleted record must carry images for cleanup, got %+v", deleted.Images)
	}

	if _, err := svc.Get(section.ID); !errors.Is(err, ErrAboutNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
