package store

import (
	"context"
	"testing"

	"github.com/mvogel/voliere/internal/db"
	"github.com/mvogel/voliere/internal/model"
)

func TestCreateAndGetBird(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := newTestOwner(t, database, "breeder@example.com")

	in := testBird("NL-2024-001")
	in.Subspecies = "red-headed"
	in.Notes = "show quality"

	bird, err := CreateBird(ctx, database, owner, in)
	if err != nil {
		t.Fatalf("CreateBird: %v", err)
	}
	if bird.ID == "" {
		t.Fatal("expected assigned id")
	}

	got, err := GetBird(ctx, database, owner, bird.ID)
	if err != nil {
		t.Fatalf("GetBird: %v", err)
	}
	if got == nil {
		t.Fatal("expected bird, got nil")
	}
	if got.RingNumber != "NL-2024-001" || got.Species != "Gouldian finch" ||
		got.Subspecies != "red-headed" || got.Gender != model.GenderMale ||
		got.Origin != model.OriginPurchased || got.Status != model.BirdStatusActive ||
		got.Notes != "show quality" {
		t.Errorf("stored bird does not match input: %+v", got)
	}
}

func TestGetBirdNotFound(t *testing.T) {
	database := db.NewTestDB(t)
	owner := newTestOwner(t, database, "breeder@example.com")

	got, err := GetBird(context.Background(), database, owner, "no-such-id")
	if err != nil {
		t.Fatalf("GetBird: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown id, got %+v", got)
	}
}

func TestListBirdsByStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := newTestOwner(t, database, "breeder@example.com")

	CreateBird(ctx, database, owner, testBird("A-1"))
	sold := testBird("A-2")
	sold.Status = model.BirdStatusSold
	CreateBird(ctx, database, owner, sold)

	all, _ := ListBirds(ctx, database, owner, "")
	if len(all) != 2 {
		t.Errorf("expected 2 birds, got %d", len(all))
	}

	active, _ := ListBirds(ctx, database, owner, model.BirdStatusActive)
	if len(active) != 1 {
		t.Errorf("expected 1 active bird, got %d", len(active))
	}
}

func TestUpdateBird(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := newTestOwner(t, database, "breeder@example.com")

	bird, _ := CreateBird(ctx, database, owner, testBird("B-1"))
	bird.Status = model.BirdStatusDeceased
	bird.Notes = "found dead 2025-06-01"

	if err := UpdateBird(ctx, database, owner, bird); err != nil {
		t.Fatalf("UpdateBird: %v", err)
	}

	got, _ := GetBird(ctx, database, owner, bird.ID)
	if got.Status != model.BirdStatusDeceased {
		t.Errorf("expected status deceased, got %q", got.Status)
	}
	if got.Notes != "found dead 2025-06-01" {
		t.Errorf("expected updated notes, got %q", got.Notes)
	}
}

func TestDeleteBirdKeepsBreedingHistory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := newTestOwner(t, database, "breeder@example.com")

	male, _ := CreateBird(ctx, database, owner, testBird("M-1"))
	female := testBird("F-1")
	female.Gender = model.GenderFemale
	hen, _ := CreateBird(ctx, database, owner, female)

	couple, _ := CreateCouple(ctx, database, owner, &model.Couple{
		MaleID: male.ID, FemaleID: hen.ID, Season: "2025", Active: true,
	})

	if err := DeleteBird(ctx, database, owner, male.ID); err != nil {
		t.Fatalf("DeleteBird: %v", err)
	}

	// The couple survives; its male reference dangles.
	got, _ := GetCouple(ctx, database, owner, couple.ID)
	if got == nil {
		t.Fatal("expected couple to survive bird delete")
	}
	dangling, _ := GetBird(ctx, database, owner, got.MaleID)
	if dangling != nil {
		t.Error("expected dangling male reference to resolve to nil")
	}
}

func TestBirdImage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	owner := newTestOwner(t, database, "breeder@example.com")

	bird, _ := CreateBird(ctx, database, owner, testBird("P-1"))
	if err := SetBirdImage(ctx, database, owner, bird.ID, []byte("fake image data"), "image/jpeg"); err != nil {
		t.Fatalf("SetBirdImage: %v", err)
	}

	data, mime, err := GetBirdImage(ctx, database, owner, bird.ID)
	if err != nil {
		t.Fatalf("GetBirdImage: %v", err)
	}
	if string(data) != "fake image data" {
		t.Errorf("expected image data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}
}

func TestBirdsScopedToOwner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := newTestOwner(t, database, "alice@example.com")
	bob := newTestOwner(t, database, "bob@example.com")

	bird, _ := CreateBird(ctx, database, alice, testBird("A-1"))

	got, _ := GetBird(ctx, database, bob, bird.ID)
	if got != nil {
		t.Error("expected other account's bird to be invisible")
	}

	birds, _ := ListBirds(ctx, database, bob, "")
	if len(birds) != 0 {
		t.Errorf("expected 0 birds for other account, got %d", len(birds))
	}
}
