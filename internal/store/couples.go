package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mvogel/voliere/internal/model"
)

const coupleColumns = `id, owner_id, male_id, female_id, season, active, notes, created_at`

// CreateCouple inserts a new breeding couple and returns the stored record.
// The male and female ids are stored as given; their existence and genders
// are not checked here.
func CreateCouple(ctx context.Context, db *sql.DB, ownerID string, couple *model.Couple) (*model.Couple, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO couples (id, owner_id, male_id, female_id, season, active, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, ownerID, couple.MaleID, couple.FemaleID, couple.Season, couple.Active, couple.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("creating couple: %w", err)
	}

	return GetCouple(ctx, db, ownerID, id)
}

// GetCouple returns a couple by id, or nil if it does not exist.
func GetCouple(ctx context.Context, db *sql.DB, ownerID, id string) (*model.Couple, error) {
	row := db.QueryRowContext(ctx,
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

// ListCouples returns all of an account's couples, newest season first.
func ListCouples(ctx context.Context, db *sql.DB, ownerID string) ([]model.Couple, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+coupleColumns+` FROM couples WHERE owner_id = ? ORDER BY season DESC, created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing couples: %w", err)
	}
	defer rows.Close()

	return scanCouples(rows)
}

// UpdateCouple replaces a couple's mutable fields.
func UpdateCouple(ctx context.Context, db *sql.DB, ownerID string, couple *model.Couple) error {
	_, err := db.ExecContext(ctx,
		`UPDATE couples SET male_id = ?, female_id = ?, season = ?, active = ?, notes = ?
		 WHERE owner_id = ? AND id = ?`,
		couple.MaleID, couple.FemaleID, couple.Season, couple.Active, couple.Notes,
		ownerID, couple.ID,
	)
	if err != nil {
		return fmt.Errorf("updating couple: %w", err)
	}
	return nil
}

// DeleteCouple removes a couple. Its nests are kept as breeding history.
func DeleteCouple(ctx context.Context, db *sql.DB, ownerID, id string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM couples WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting couple: %w", err)
	}
	return nil
}

func scanCouple(s scanner) (*model.Couple, error) {
	couple := &model.Couple{}
	var notes sql.NullString
	err := s.Scan(&couple.ID, &couple.OwnerID, &couple.MaleID, &couple.FemaleID,
		&couple.Season, &couple.Active, &notes, &couple.CreatedAt)
	if err != nil {
		return nil, err
	}
	couple.Notes = notes.String
	return couple, nil
}

func scanCouples(rows *sql.Rows) ([]model.Couple, error) {
	var couples []model.Couple
	for rows.Next() {
		couple, err := scanCouple(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning couple: %w", err)
		}
		couples = append(couples, *couple)
	}
	return couples, rows.Err()
}
