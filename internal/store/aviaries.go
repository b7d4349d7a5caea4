package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mvogel/voliere/internal/model"
)

const aviaryColumns = `id, owner_id, name, location, capacity, description, notes, created_at`

// CreateAviary inserts a new aviary and returns the stored record.
func CreateAviary(ctx context.Context, db *sql.DB, ownerID string, aviary *model.Aviary) (*model.Aviary, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO aviaries (id, owner_id, name, location, capacity, description, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, ownerID, aviary.Name, aviary.Location, aviary.Capacity, aviary.Description, aviary.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("creating aviary: %w", err)
	}

	return GetAviary(ctx, db, ownerID, id)
}

// GetAviary returns an aviary by id, or nil if it does not exist.
func GetAviary(ctx context.Context, db *sql.DB, ownerID, id string) (*model.Aviary, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+aviaryColumns+` FROM aviaries WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	aviary, err := scanAviary(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting aviary: %w", err)
	}
	return aviary, nil
}

// ListAviaries returns all of an account's aviaries.
func ListAviaries(ctx context.Context, db *sql.DB, ownerID string) ([]model.Aviary, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+aviaryColumns+` FROM aviaries WHERE owner_id = ? ORDER BY name`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing aviaries: %w", err)
	}
	defer rows.Close()

	return scanAviaries(rows)
}

// UpdateAviary replaces an aviary's mutable fields.
func UpdateAviary(ctx context.Context, db *sql.DB, ownerID string, aviary *model.Aviary) error {
	_, err := db.ExecContext(ctx,
		`UPDATE aviaries SET name = ?, location = ?, capacity = ?, description = ?, notes = ?
		 WHERE owner_id = ? AND id = ?`,
		aviary.Name, aviary.Location, aviary.Capacity, aviary.Description, aviary.Notes,
		ownerID, aviary.ID,
	)
	if err != nil {
		return fmt.Errorf("updating aviary: %w", err)
	}
	return nil
}

// DeleteAviary removes an aviary. Birds assigned to it keep their aviary_id,
// which then resolves to "not found".
func DeleteAviary(ctx context.Context, db *sql.DB, ownerID, id string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM aviaries WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting aviary: %w", err)
	}
	return nil
}

func scanAviary(s scanner) (*model.Aviary, error) {
	aviary := &model.Aviary{}
	var location, description, notes sql.NullString
	err := s.Scan(&aviary.ID, &aviary.OwnerID, &aviary.Name, &location,
		&aviary.Capacity, &description, &notes, &aviary.CreatedAt)
	if err != nil {
		return nil, err
	}
	aviary.Location = location.String
	aviary.Description = description.String
	aviary.Notes = notes.String
	return aviary, nil
}

func scanAviaries(rows *sql.Rows) ([]model.Aviary, error) {
	var aviaries []model.Aviary
	for rows.Next() {
		aviary, err := scanAviary(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning aviary: %w", err)
		}
		aviaries = append(aviaries, *aviary)
	}
	return aviaries, rows.Err()
}
