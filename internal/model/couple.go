package model

import "time"

// Couple represents a breeding pair for one season. MaleID and FemaleID are
// weak references to birds; the storage layer does not enforce that they
// exist or that their genders match.
type Couple struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"-"`
	MaleID    string    `json:"male_id"`
	FemaleID  string    `json:"female_id"`
	Season    string    `json:"season"`
	Active    bool      `json:"active"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Parents holds the resolved parents of a bird. Either field may be nil when
// the parent id is absent or dangling; callers treat nil as "unknown parent".
type Parents struct {
	Father *Bird `json:"father"`
	Mother *Bird `json:"mother"`
}
