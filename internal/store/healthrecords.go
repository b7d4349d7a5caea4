package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mvogel/voliere/internal/model"
)

const healthRecordColumns = `id, owner_id, bird_id, date, type, description, notes`

// CreateHealthRecord inserts a new health record and returns the stored record.
func CreateHealthRecord(ctx context.Context, db *sql.DB, ownerID string, record *model.HealthRecord) (*model.HealthRecord, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO health_records (id, owner_id, bird_id, date, type, description, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, ownerID, record.BirdID, record.Date, record.Type, record.Description, record.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("creating health record: %w", err)
	}

	return GetHealthRecord(ctx, db, ownerID, id)
}

// GetHealthRecord returns a health record by id, or nil if it does not exist.
func GetHealthRecord(ctx context.Context, db *sql.DB, ownerID, id string) (*model.HealthRecord, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+healthRecordColumns+` FROM health_records WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	record, err := scanHealthRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting health record: %w", err)
	}
	return record, nil
}

// ListHealthRecords returns all of an account's health records, most recent first.
func ListHealthRecords(ctx context.Context, db *sql.DB, ownerID string) ([]model.HealthRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+healthRecordColumns+` FROM health_records
		 WHERE owner_id = ? ORDER BY date DESC, rowid`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing health records: %w", err)
	}
	defer rows.Close()

	return scanHealthRecords(rows)
}

// UpdateHealthRecord replaces a health record's mutable fields.
func UpdateHealthRecord(ctx context.Context, db *sql.DB, ownerID string, record *model.HealthRecord) error {
	_, err := db.ExecContext(ctx,
		`UPDATE health_records SET bird_id = ?, date = ?, type = ?, description = ?, notes = ?
		 WHERE owner_id = ? AND id = ?`,
		record.BirdID, record.Date, record.Type, record.Description, record.Notes,
		ownerID, record.ID,
	)
	if err != nil {
		return fmt.Errorf("updating health record: %w", err)
	}
	return nil
}

// DeleteHealthRecord removes a health record.
func DeleteHealthRecord(ctx context.Context, db *sql.DB, ownerID, id string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM health_records WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting health record: %w", err)
	}
	return nil
}

func scanHealthRecord(s scanner) (*model.HealthRecord, error) {
	record := &model.HealthRecord{}
	var notes sql.NullString
	err := s.Scan(&record.ID, &record.OwnerID, &record.BirdID, &record.Date,
		&record.Type, &record.Description, &notes)
	if err != nil {
		return nil, err
	}
	record.Notes = notes.String
	return record, nil
}

func scanHealthRecords(rows *sql.Rows) ([]model.HealthRecord, error) {
	var records []model.HealthRecord
	for rows.Next() {
		record, err := scanHealthRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning health record: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}
