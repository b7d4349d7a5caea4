package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/mvogel/voliere/internal/model"
)

// newTestOwner creates an account to scope test records to.
func newTestOwner(t *testing.T, database *sql.DB, email string) string {
	t.Helper()
	user, err := CreateUser(context.Background(), database, email, "Test Breeder", "hash")
	if err != nil {
		t.Fatalf("creating test owner: %v", err)
	}
	return user.ID
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func testBird(ringNumber string) *model.Bird {
	return &model.Bird{
		RingNumber: ringNumber,
		Name:       "Bird " + ringNumber,
		Species:    "Gouldian finch",
		Gender:     model.GenderMale,
		BirthDate:  date(2024, 3, 15),
		Origin:     model.OriginPurchased,
		Status:     model.BirdStatusActive,
	}
}
