package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mvogel/voliere/internal/model"
)

const nestColumns = `id, owner_id, couple_id, start_date, aviary_id, active, egg_count,
	expected_hatch_date, actual_hatch_date, hatched_count, notes, created_at`

// CreateNest inserts a new nest and returns the stored record.
func CreateNest(ctx context.Context, db *sql.DB, ownerID string, nest *model.Nest) (*model.Nest, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO nests (id, owner_id, couple_id, start_date, aviary_id, active,
		                    egg_count, expected_hatch_date, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, ownerID, nest.CoupleID, nest.StartDate, nest.AviaryID, nest.Active,
		nest.EggCount, nest.ExpectedHatchDate, nest.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("creating nest: %w", err)
	}

	return GetNest(ctx, db, ownerID, id)
}

// GetNest returns a nest by id, or nil if it does not exist.
func GetNest(ctx context.Context, db *sql.DB, ownerID, id string) (*model.Nest, error) {
	row := db.QueryRowContext(ctx,
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

// ListNests returns all of an account's nests, newest first.
func ListNests(ctx context.Context, db *sql.DB, ownerID string) ([]model.Nest, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+nestColumns+` FROM nests WHERE owner_id = ? ORDER BY start_date DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing nests: %w", err)
	}
	defer rows.Close()

	return scanNests(rows)
}

// UpdateNest replaces a nest's mutable fields.
func UpdateNest(ctx context.Context, db *sql.DB, ownerID string, nest *model.Nest) error {
	_, err := db.ExecContext(ctx,
		`UPDATE nests SET couple_id = ?, start_date = ?, aviary_id = ?, active = ?,
		        egg_count = ?, expected_hatch_date = ?, actual_hatch_date = ?,
		        hatched_count = ?, notes = ?
		 WHERE owner_id = ? AND id = ?`,
		nest.CoupleID, nest.StartDate, nest.AviaryID, nest.Active, nest.EggCount,
		nest.ExpectedHatchDate, nest.ActualHatchDate, nest.HatchedCount, nest.Notes,
		ownerID, nest.ID,
	)
	if err != nil {
		return fmt.Errorf("updating nest: %w", err)
	}
	return nil
}

// DeleteNest removes a nest. Its eggs are kept as breeding history.
func DeleteNest(ctx context.Context, db *sql.DB, ownerID, id string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM nests WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting nest: %w", err)
	}
	return nil
}

func scanNest(s scanner) (*model.Nest, error) {
	nest := &model.Nest{}
	var aviaryID, notes sql.NullString
	var expected, actual sql.NullTime
	err := s.Scan(&nest.ID, &nest.OwnerID, &nest.CoupleID, &nest.StartDate, &aviaryID,
		&nest.Active, &nest.EggCount, &expected, &actual, &nest.HatchedCount,
		&notes, &nest.CreatedAt)
	if err != nil {
		return nil, err
	}
	nest.AviaryID = aviaryID.String
	nest.Notes = notes.String
	if expected.Valid {
		t := expected.Time
		nest.ExpectedHatchDate = &t
	}
	if actual.Valid {
		t := actual.Time
		nest.ActualHatchDate = &t
	}
	return nest, nil
}

func scanNests(rows *sql.Rows) ([]model.Nest, error) {
	var nests []model.Nest
	for rows.Next() {
		nest, err := scanNest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning nest: %w", err)
		}
		nests = append(nests, *nest)
	}
	return nests, rows.Err()
}
