package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mvogel/voliere/internal/model"
)

const eggColumns = `id, owner_id, nest_id, lay_date, status, hatch_date, bird_id, notes`

// CreateEgg inserts a new egg and returns the stored record.
func CreateEgg(ctx context.Context, db *sql.DB, ownerID string, egg *model.Egg) (*model.Egg, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO eggs (id, owner_id, nest_id, lay_date, status, hatch_date, bird_id, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, ownerID, egg.NestID, egg.LayDate, egg.Status, egg.HatchDate, egg.BirdID, egg.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("creating egg: %w", err)
	}

	return GetEgg(ctx, db, ownerID, id)
}

// GetEgg returns an egg by id, or nil if it does not exist.
func GetEgg(ctx context.Context, db *sql.DB, ownerID, id string) (*model.Egg, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+eggColumns+` FROM eggs WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	egg, err := scanEgg(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting egg: %w", err)
	}
	return egg, nil
}

// ListEggs returns all of an account's eggs.
func ListEggs(ctx context.Context, db *sql.DB, ownerID string) ([]model.Egg, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+eggColumns+` FROM eggs WHERE owner_id = ? ORDER BY lay_date`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing eggs: %w", err)
	}
	defer rows.Close()

	return scanEggs(rows)
}

// UpdateEgg replaces an egg's mutable fields.
func UpdateEgg(ctx context.Context, db *sql.DB, ownerID string, egg *model.Egg) error {
	_, err := db.ExecContext(ctx,
		`UPDATE eggs SET nest_id = ?, lay_date = ?, status = ?, hatch_date = ?,
		        bird_id = ?, notes = ?
		 WHERE owner_id = ? AND id = ?`,
		egg.NestID, egg.LayDate, egg.Status, egg.HatchDate, egg.BirdID, egg.Notes,
		ownerID, egg.ID,
	)
	if err != nil {
		return fmt.Errorf("updating egg: %w", err)
	}
	return nil
}

// DeleteEgg removes an egg.
func DeleteEgg(ctx context.Context, db *sql.DB, ownerID, id string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM eggs WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting egg: %w", err)
	}
	return nil
}

func scanEgg(s scanner) (*model.Egg, error) {
	egg := &model.Egg{}
	var birdID, notes sql.NullString
	var hatchDate sql.NullTime
	err := s.Scan(&egg.ID, &egg.OwnerID, &egg.NestID, &egg.LayDate, &egg.Status,
		&hatchDate, &birdID, &notes)
	if err != nil {
		return nil, err
	}
	egg.BirdID = birdID.String
	egg.Notes = notes.String
	if hatchDate.Valid {
		t := hatchDate.Time
		egg.HatchDate = &t
	}
	return egg, nil
}

func scanEggs(rows *sql.Rows) ([]model.Egg, error) {
	var eggs []model.Egg
	for rows.Next() {
		egg, err := scanEgg(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning egg: %w", err)
		}
		eggs = append(eggs, *egg)
	}
	return eggs, rows.Err()
}
