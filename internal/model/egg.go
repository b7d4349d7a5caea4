package model

import "time"

// Egg represents a single egg in a nest. BirdID is set once the egg hatches
// and links to the bird created for it.
type Egg struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"-"`
	NestID    string     `json:"nest_id"`
	LayDate   time.Time  `json:"lay_date"`
	Status    string     `json:"status"`
	HatchDate *time.Time `json:"hatch_date,omitempty"`
	BirdID    string     `json:"bird_id,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

// Egg statuses.
const (
	EggStatusLaid      = "laid"
	EggStatusFertile   = "fertile"
	EggStatusInfertile = "infertile"
	EggStatusHatched   = "hatched"
	EggStatusDead      = "dead"
)

// ValidEggStatus reports whether s is a known egg status.
func ValidEggStatus(s string) bool {
	switch s {
	case EggStatusLaid, EggStatusFertile, EggStatusInfertile, EggStatusHatched, EggStatusDead:
		return true
	}
	return false
}
