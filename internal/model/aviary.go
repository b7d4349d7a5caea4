package model

import "time"

// Aviary represents a cage or enclosure birds can be assigned to.
// Capacity is advisory: nothing blocks assigning more birds than it holds.
type Aviary struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"-"`
	Name        string    `json:"name"`
	Location    string    `json:"location,omitempty"`
	Capacity    int       `json:"capacity"`
	Description string    `json:"description,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
