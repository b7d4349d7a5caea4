package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mvogel/voliere/internal/model"
)

// GetBirdsByAviary returns the birds assigned to an aviary. An empty result
// means either an empty or an unknown aviary; no distinction is made.
func GetBirdsByAviary(ctx context.Context, db *sql.DB, ownerID, aviaryID string) ([]model.Bird, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+birdColumns+` FROM birds
		 WHERE owner_id = ? AND aviary_id = ? ORDER BY ring_number`,
		ownerID, aviaryID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting birds by aviary: %w", err)
	}
	defer rows.Close()

	return scanBirds(rows)
}

// GetHealthRecordsByBird returns a bird's health records, most recent first.
// Records on the same date keep insertion order.
func GetHealthRecordsByBird(ctx context.Context, db *sql.DB, ownerID, birdID string) ([]model.HealthRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+healthRecordColumns+` FROM health_records
		 WHERE owner_id = ? AND bird_id = ? ORDER BY date DESC, rowid`,
		ownerID, birdID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting health records by bird: %w", err)
	}
	defer rows.Close()

	return scanHealthRecords(rows)
}

// GetNestsByCouple returns a couple's nests, newest first.
func GetNestsByCouple(ctx context.Context, db *sql.DB, ownerID, coupleID string) ([]model.Nest, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+nestColumns+` FROM nests
		 WHERE owner_id = ? AND couple_id = ? ORDER BY start_date DESC`,
		ownerID, coupleID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting nests by couple: %w", err)
	}
	defer rows.Close()

	return scanNests(rows)
}

// GetEggsByNest returns a nest's eggs in lay order.
func GetEggsByNest(ctx context.Context, db *sql.DB, ownerID, nestID string) ([]model.Egg, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+eggColumns+` FROM eggs
		 WHERE owner_id = ? AND nest_id = ? ORDER BY lay_date`,
		ownerID, nestID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting eggs by nest: %w", err)
	}
	defer rows.Close()

	return scanEggs(rows)
}

// GetOffspring returns the birds that hatched from a couple's nests: the join
// runs couple -> nests -> hatched eggs -> each egg's linked bird. Eggs with
// any other status, and hatched eggs without a linked bird, contribute nothing.
func GetOffspring(ctx context.Context, db *sql.DB, ownerID, coupleID string) ([]model.Bird, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT b.id, b.owner_id, b.ring_number, b.name, b.species, b.subspecies,
		        b.gender, b.color_mutation, b.birth_date, b.origin, b.status,
		        b.aviary_id, b.father_id, b.mother_id, b.image_mime, b.notes, b.created_at
		 FROM birds b
		 JOIN eggs e ON e.bird_id = b.id AND e.owner_id = b.owner_id
		 JOIN nests n ON n.id = e.nest_id AND n.owner_id = e.owner_id
		 WHERE b.owner_id = ? AND n.couple_id = ? AND e.status = ?`,
		ownerID, coupleID, model.EggStatusHatched,
	)
	if err != nil {
		return nil, fmt.Errorf("getting offspring: %w", err)
	}
	defer rows.Close()

	return scanBirds(rows)
}

// GetParents resolves a bird's father and mother independently. A nil parent
// means the id was absent or dangling; that is "unknown", not an error.
func GetParents(ctx context.Context, db *sql.DB, ownerID, birdID string) (*model.Parents, error) {
	bird, err := GetBird(ctx, db, ownerID, birdID)
	if err != nil {
		return nil, err
	}
	if bird == nil {
		return nil, nil
	}

	parents := &model.Parents{}
	if bird.FatherID != "" {
		parents.Father, err = GetBird(ctx, db, ownerID, bird.FatherID)
		if err != nil {
			return nil, err
		}
	}
	if bird.MotherID != "" {
		parents.Mother, err = GetBird(ctx, db, ownerID, bird.MotherID)
		if err != nil {
			return nil, err
		}
	}
	return parents, nil
}

// GetStatistics computes the aggregate counts over one account's collections.
func GetStatistics(ctx context.Context, db *sql.DB, ownerID string) (*model.Statistics, error) {
	stats := &model.Statistics{}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM birds WHERE owner_id = ?`, &stats.TotalBirds},
		{`SELECT COUNT(*) FROM birds WHERE owner_id = ? AND status = 'active'`, &stats.ActiveBirds},
		{`SELECT COUNT(*) FROM couples WHERE owner_id = ?`, &stats.TotalCouples},
		{`SELECT COUNT(*) FROM couples WHERE owner_id = ? AND active = 1`, &stats.ActiveCouples},
		{`SELECT COUNT(*) FROM nests WHERE owner_id = ?`, &stats.TotalNests},
		{`SELECT COUNT(*) FROM nests WHERE owner_id = ? AND active = 1`, &stats.ActiveNests},
		{`SELECT COUNT(*) FROM eggs WHERE owner_id = ?`, &stats.TotalEggs},
		{`SELECT COUNT(*) FROM eggs WHERE owner_id = ? AND status = 'hatched'`, &stats.HatchedEggs},
		{`SELECT COUNT(*) FROM aviaries WHERE owner_id = ?`, &stats.TotalAviaries},
	}

	for _, c := range counts {
		if err := db.QueryRowContext(ctx, c.query, ownerID).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("computing statistics: %w", err)
		}
	}

	return stats, nil
}
