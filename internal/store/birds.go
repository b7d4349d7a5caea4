package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mvogel/voliere/internal/model"
)

const birdColumns = `id, owner_id, ring_number, name, species, subspecies, gender,
	color_mutation, birth_date, origin, status, aviary_id, father_id, mother_id,
	image_mime, notes, created_at`

// CreateBird inserts a new bird and returns the stored record.
// The id is assigned here and is immutable afterwards.
func CreateBird(ctx context.Context, db *sql.DB, ownerID string, bird *model.Bird) (*model.Bird, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO birds (id, owner_id, ring_number, name, species, subspecies, gender,
		                    color_mutation, birth_date, origin, status, aviary_id,
		                    father_id, mother_id, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, ownerID, bird.RingNumber, bird.Name, bird.Species, bird.Subspecies,
		bird.Gender, bird.ColorMutation, bird.BirthDate, bird.Origin, bird.Status,
		bird.AviaryID, bird.FatherID, bird.MotherID, bird.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("creating bird: %w", err)
	}

	return GetBird(ctx, db, ownerID, id)
}

// GetBird returns a bird by id, or nil if it does not exist.
func GetBird(ctx context.Context, db *sql.DB, ownerID, id string) (*model.Bird, error) {
	row := db.QueryRowContext(ctx,
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

// ListBirds returns all of an account's birds, optionally filtered by status.
func ListBirds(ctx context.Context, db *sql.DB, ownerID, status string) ([]model.Bird, error) {
	var rows *sql.Rows
	var err error

	if status != "" {
		rows, err = db.QueryContext(ctx,
			`SELECT `+birdColumns+` FROM birds
			 WHERE owner_id = ? AND status = ? ORDER BY ring_number`,
			ownerID, status,
		)
	} else {
		rows, err = db.QueryContext(ctx,
			`SELECT `+birdColumns+` FROM birds WHERE owner_id = ? ORDER BY ring_number`,
			ownerID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing birds: %w", err)
	}
	defer rows.Close()

	return scanBirds(rows)
}

// UpdateBird replaces a bird's mutable fields. The id and creation time are
// left unchanged.
func UpdateBird(ctx context.Context, db *sql.DB, ownerID string, bird *model.Bird) error {
	_, err := db.ExecContext(ctx,
		`UPDATE birds SET ring_number = ?, name = ?, species = ?, subspecies = ?,
		        gender = ?, color_mutation = ?, birth_date = ?, origin = ?, status = ?,
		        aviary_id = ?, father_id = ?, mother_id = ?, notes = ?
		 WHERE owner_id = ? AND id = ?`,
		bird.RingNumber, bird.Name, bird.Species, bird.Subspecies, bird.Gender,
		bird.ColorMutation, bird.BirthDate, bird.Origin, bird.Status,
		bird.AviaryID, bird.FatherID, bird.MotherID, bird.Notes,
		ownerID, bird.ID,
	)
	if err != nil {
		return fmt.Errorf("updating bird: %w", err)
	}
	return nil
}

// DeleteBird removes a bird. Couples, nests and eggs referencing it are left
// in place; their references dangle and resolve to "not found" on read.
func DeleteBird(ctx context.Context, db *sql.DB, ownerID, id string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM birds WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting bird: %w", err)
	}
	return nil
}

// SetBirdImage sets a bird's photo.
func SetBirdImage(ctx context.Context, db *sql.DB, ownerID, id string, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE birds SET image = ?, image_mime = ? WHERE owner_id = ? AND id = ?`,
		image, mime, ownerID, id,
	)
	if err != nil {
		return fmt.Errorf("setting bird image: %w", err)
	}
	return nil
}

// GetBirdImage returns a bird's photo data and MIME type.
func GetBirdImage(ctx context.Context, db *sql.DB, ownerID, id string) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM birds WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting bird image: %w", err)
	}
	return image, mime.String, nil
}

// scanner abstracts *sql.Row and *sql.Rows for the scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanBird(s scanner) (*model.Bird, error) {
	bird := &model.Bird{}
	var subspecies, colorMutation, aviaryID, fatherID, motherID, imageMime, notes sql.NullString
	err := s.Scan(&bird.ID, &bird.OwnerID, &bird.RingNumber, &bird.Name, &bird.Species,
		&subspecies, &bird.Gender, &colorMutation, &bird.BirthDate, &bird.Origin,
		&bird.Status, &aviaryID, &fatherID, &motherID, &imageMime, &notes, &bird.CreatedAt)
	if err != nil {
		return nil, err
	}
	bird.Subspecies = subspecies.String
	bird.ColorMutation = colorMutation.String
	bird.AviaryID = aviaryID.String
	bird.FatherID = fatherID.String
	bird.MotherID = motherID.String
	bird.ImageMime = imageMime.String
	bird.Notes = notes.String
	return bird, nil
}

func scanBirds(rows *sql.Rows) ([]model.Bird, error) {
	var birds []model.Bird
	for rows.Next() {
		bird, err := scanBird(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bird: %w", err)
		}
		birds = append(birds, *bird)
	}
	return birds, rows.Err()
}
