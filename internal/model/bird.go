package model

import "time"

// Bird represents a single ringed bird in a breeder's collection.
// AviaryID, FatherID and MotherID are weak references: they may be empty or
// point at records that no longer exist, and resolve to "not found" at read
// time instead of being rejected at write time.
type Bird struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"-"`
	RingNumber    string    `json:"ring_number"`
	Name          string    `json:"name"`
	Species       string    `json:"species"`
	Subspecies    string    `json:"subspecies,omitempty"`
	Gender        string    `json:"gender"`
	ColorMutation string    `json:"color_mutation,omitempty"`
	BirthDate     time.Time `json:"birth_date"`
	Origin        string    `json:"origin"`
	Status        string    `json:"status"`
	AviaryID      string    `json:"aviary_id,omitempty"`
	FatherID      string    `json:"father_id,omitempty"`
	MotherID      string    `json:"mother_id,omitempty"`
	ImageMime     string    `json:"image_mime,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Genders.
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderUnknown = "unknown"
)

// Bird statuses.
const (
	BirdStatusActive    = "active"
	BirdStatusDeceased  = "deceased"
	BirdStatusSold      = "sold"
	BirdStatusExchanged = "exchanged"
)

// Bird origins.
const (
	OriginPurchased = "purchased"
	OriginBred      = "bred"
	OriginRescue    = "rescue"
)

// ValidGender reports whether g is a known gender value.
func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale || g == GenderUnknown
}

// ValidBirdStatus reports whether s is a known bird status.
func ValidBirdStatus(s string) bool {
	switch s {
	case BirdStatusActive, BirdStatusDeceased, BirdStatusSold, BirdStatusExchanged:
		return true
	}
	return false
}

// ValidOrigin reports whether o is a known bird origin.
func ValidOrigin(o string) bool {
	return o == OriginPurchased || o == OriginBred || o == OriginRescue
}
