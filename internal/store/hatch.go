package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mvogel/voliere/internal/model"
)

// HatchResult describes a completed hatch transition.
type HatchResult struct {
	Nest  *model.Nest  `json:"nest"`
	Birds []model.Bird `json:"birds"`
}

// HatchNest marks count eggs of a nest as hatched in a single transaction.
//
// For each hatched egg one bird is created with gender unknown, origin bred,
// the couple's male and female as father and mother, and the hatch date as
// birth date. The egg's bird_id links to the new bird. If the nest tracks
// fewer egg rows than its egg count, rows are created for the difference, so
// offspring queries (which join through hatched eggs) always see the result.
// Finally the nest turns inactive and a hatch summary is appended to its notes.
//
// Count must be between 1 and the effective egg count (tracked egg rows if any,
// otherwise the nest's egg_count). An invalid count or an inactive nest leaves
// every table unchanged.
func HatchNest(ctx context.Context, db *sql.DB, ownerID, nestID string, count int, hatchDate time.Time) (*HatchResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	nest, err := getNestTx(ctx, tx, ownerID, nestID)
	if err != nil {
		return nil, err
	}
	if nest == nil {
		return nil, fmt.Errorf("nest not found")
	}
	if !nest.Active {
		return nil, fmt.Errorf("nest is no longer active")
	}

	eggs, err := getEggsByNestTx(ctx, tx, ownerID, nestID)
	if err != nil {
		return nil, err
	}

	eggCount := nest.EggCount
	if len(eggs) > 0 {
		eggCount = len(eggs)
	}
	if count < 1 || count > eggCount {
		return nil, fmt.Errorf("hatch count must be between 1 and %d", eggCount)
	}

	couple, err := getCoupleTx(ctx, tx, ownerID, nest.CoupleID)
	if err != nil {
		return nil, err
	}

	// Parents may be unknown when the couple or its birds were deleted.
	var father, mother *model.Bird
	var fatherID, motherID string
	if couple != nil {
		father, err = getBirdTx(ctx, tx, ownerID, couple.MaleID)
		if err != nil {
			return nil, err
		}
		mother, err = getBirdTx(ctx, tx, ownerID, couple.FemaleID)
		if err != nil {
			return nil, err
		}
		fatherID = couple.MaleID
		motherID = couple.FemaleID
	}

	species := "unknown"
	if father != nil {
		species = father.Species
	} else if mother != nil {
		species = mother.Species
	}

	// Pick the eggs to hatch: tracked unhatched eggs first, then synthetic
	// rows for nests that only track a count.
	var toHatch []model.Egg
	for _, egg := range eggs {
		if len(toHatch) == count {
			break
		}
		if egg.Status != model.EggStatusHatched {
			toHatch = append(toHatch, egg)
		}
	}
	if len(toHatch) < count {
		return nil, fmt.Errorf("nest has only %d unhatched eggs", len(toHatch))
	}

	result := &HatchResult{}
	for i, egg := range toHatch {
		birdID := uuid.NewString()
		ringNumber := fmt.Sprintf("%s-%d", hatchDate.Format("20060102"), nest.HatchedCount+i+1)

		_, err = tx.ExecContext(ctx,
			`INSERT INTO birds (id, owner_id, ring_number, name, species, gender,
			                    birth_date, origin, status, aviary_id, father_id, mother_id, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			birdID, ownerID, ringNumber, "", species, model.GenderUnknown,
			hatchDate, model.OriginBred, model.BirdStatusActive,
			nest.AviaryID, fatherID, motherID,
			fmt.Sprintf("Hatched from nest on %s", hatchDate.Format("2006-01-02")),
		)
		if err != nil {
			return nil, fmt.Errorf("creating hatched bird: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE eggs SET status = ?, hatch_date = ?, bird_id = ?
			 WHERE owner_id = ? AND id = ?`,
			model.EggStatusHatched, hatchDate, birdID, ownerID, egg.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("marking egg hatched: %w", err)
		}

		bird, err := getBirdTx(ctx, tx, ownerID, birdID)
		if err != nil {
			return nil, err
		}
		result.Birds = append(result.Birds, *bird)
	}

	notes := nest.Notes
	if notes != "" {
		notes += "\n"
	}
	notes += fmt.Sprintf("%d eggs hatched on %s", count, hatchDate.Format("2006-01-02"))

	_, err = tx.ExecContext(ctx,
		`UPDATE nests SET active = 0, hatched_count = hatched_count + ?,
		        actual_hatch_date = ?, notes = ?
		 WHERE owner_id = ? AND id = ?`,
		count, hatchDate, notes, ownerID, nestID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating nest: %w", err)
	}

	result.Nest, err = getNestTx(ctx, tx, ownerID, nestID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing hatch: %w", err)
	}
	return result, nil
}

// getNestTx, getEggsByNestTx, getCoupleTx and getBirdTx mirror their *sql.DB
// counterparts inside the hatch transaction. A nest that only tracks a count
// gets egg rows created here so every hatch is represented by an egg record.

func getNestTx(ctx context.Context, tx *sql.Tx, ownerID, id string) (*model.Nest, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+nestColumns+` FROM nests WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	nest, err := scanNest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting nest: %w", err)
	}
	return nest, nil
}

func getCoupleTx(ctx context.Context, tx *sql.Tx, ownerID, id string) (*model.Couple, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+coupleColumns+` FROM couples WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	couple, err := scanCouple(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting couple: %w", err)
	}
	return couple, nil
}

func getBirdTx(ctx context.Context, tx *sql.Tx, ownerID, id string) (*model.Bird, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+birdColumns+` FROM birds WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	bird, err := scanBird(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting bird: %w", err)
	}
	return bird, nil
}

// getEggsByNestTx returns the nest's tracked eggs in lay order. When the nest
// tracks only a count, rows are created first (status laid, lay date = start
// date) so the hatch can link birds to real egg records.
func getEggsByNestTx(ctx context.Context, tx *sql.Tx, ownerID, nestID string) ([]model.Egg, error) {
	eggs, err := queryEggsTx(ctx, tx, ownerID, nestID)
	if err != nil {
		return nil, err
	}
	if len(eggs) > 0 {
		return eggs, nil
	}

	var nest *model.Nest
	if nest, err = getNestTx(ctx, tx, ownerID, nestID); err != nil || nest == nil {
		return nil, err
	}
	for i := 0; i < nest.EggCount; i++ {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO eggs (id, owner_id, nest_id, lay_date, status)
			 VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), ownerID, nestID, nest.StartDate, model.EggStatusLaid,
		)
		if err != nil {
			return nil, fmt.Errorf("creating egg record: %w", err)
		}
	}

	return queryEggsTx(ctx, tx, ownerID, nestID)
}

func queryEggsTx(ctx context.Context, tx *sql.Tx, ownerID, nestID string) ([]model.Egg, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT `+eggColumns+` FROM eggs
		 WHERE owner_id = ? AND nest_id = ? ORDER BY lay_date, rowid`,
		ownerID, nestID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting eggs by nest: %w", err)
	}
	defer rows.Close()

	return scanEggs(rows)
}
