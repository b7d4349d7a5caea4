package model

import "time"

// Nest represents one breeding round of a couple. A nest starts active and
// turns inactive when its eggs are marked hatched; that transition is driven
// by an explicit user action, never automatically.
type Nest struct {
	ID                string     `json:"id"`
	OwnerID           string     `json:"-"`
	CoupleID          string     `json:"couple_id"`
	StartDate         time.Time  `json:"start_date"`
	AviaryID          string     `json:"aviary_id,omitempty"`
	Active            bool       `json:"active"`
	EggCount          int        `json:"egg_count,omitempty"`
	ExpectedHatchDate *time.Time `json:"expected_hatch_date,omitempty"`
	ActualHatchDate   *time.Time `json:"actual_hatch_date,omitempty"`
	HatchedCount      int        `json:"hatched_count,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}
