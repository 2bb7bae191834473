package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestUserBeforeCreateAssignsID(t *testing.T) {
	user := User{Email: "user@test.com"}
	if err := user.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate returned error: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Errorf("Expected ID to be assigned")
	}
}

func TestUserBeforeCreateKeepsID(t *testing.T) {
	id := uuid.New()
	user := User{ID: id, Email: "user@test.com"}
	if err := user.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate returned error: %v", err)
	}
	if user.ID != id {
		t.Errorf("Expected provided ID to be kept, got %s", user.ID)
	}
}

func TestCategoryBeforeCreateAssignsID(t *testing.T) {
	cat := Category{Name: "Laptops", Slug: "laptops", FullSlug: "laptops"}
	if err := cat.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate returned error: %v", err)
	}
	if cat.ID == uuid.Nil {
		t.Errorf("Expected ID to be assigned")
	}
}
