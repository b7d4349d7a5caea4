package store

import (
	"context"
	"testing"

	"github.com/mvogel/voliere/internal/db"
	"github.com/mvogel/voliere/internal/model"
)

func TestCreateAndGetAviary(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := newTestOwner(t, database, "breeder@example.com")

	aviary, err := CreateAviary(ctx, database, owner, &model.Aviary{
		Name: "Flight 1", Location: "garden", Capacity: 12, Description: "outdoor flight",
	})
	if err != nil {
		t.Fatalf("CreateAviary: %v", err)
	}

	got, err := GetAviary(ctx, database, owner, aviary.ID)
	if err != nil {
		t.Fatalf("GetAviary: %v", err)
	}
	if got == nil {
		t.Fatal("expected aviary, got nil")
	}
	if got.Name != "Flight 1" || got.Location != "garden" || got.Capacity != 12 {
		t.Errorf("stored aviary does not match input: %+v", got)
	}
}

func TestUpdateAviary(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := newTestOwner(t, database, "breeder@example.com")

	aviary, _ := CreateAviary(ctx, database, owner, &model.Aviary{Name: "Flight 1", Capacity: 12})
	aviary.Capacity = 16
	aviary.Notes = "extended"

	if err := UpdateAviary(ctx, database, owner, aviary); err != nil {
		t.Fatalf("UpdateAviary: %v", err)
	}

	got, _ := GetAviary(ctx, database, owner, aviary.ID)
	if got.Capacity != 16 || got.Notes != "extended" {
		t.Errorf("expected updated aviary, got %+v", got)
	}
}

func TestDeleteAviaryLeavesBirdsDangling(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := newTestOwner(t, database, "breeder@example.com")

	aviary, _ := CreateAviary(ctx, database, owner, &model.Aviary{Name: "Flight 1", Capacity: 4})
	in := testBird("D-1")
	in.AviaryID = aviary.ID
	bird, _ := CreateBird(ctx, database, owner, in)

	if err := DeleteAviary(ctx, database, owner, aviary.ID); err != nil {
		t.Fatalf("DeleteAviary: %v", err)
	}

	got, _ := GetBird(ctx, database, owner, bird.ID)
	if got.AviaryID != aviary.ID {
		t.Error("expected bird to keep its aviary reference")
	}
	if resolved, _ := GetAviary(ctx, database, owner, got.AviaryID); resolved != nil {
		t.Error("expected dangling aviary reference to resolve to nil")
	}
}

func TestCapacityIsAdvisory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := newTestOwner(t, database, "breeder@example.com")

	aviary, _ := CreateAviary(ctx, database, owner, &model.Aviary{Name: "Small", Capacity: 1})

	// Assigning beyond capacity is allowed.
	for _, ring := range []string{"C-1", "C-2"} {
		in := testBird(ring)
		in.AviaryID = aviary.ID
		if _, err := CreateBird(ctx, database, owner, in); err != nil {
			t.Fatalf("CreateBird %s: %v", ring, err)
		}
	}

	birds, _ := GetBirdsByAviary(ctx, database, owner, aviary.ID)
	if len(birds) != 2 {
		t.Errorf("expected 2 birds despite capacity 1, got %d", len(birds))
	}
}
