package model

import "time"

// HealthRecord represents a veterinary or care event for a bird.
type HealthRecord struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"-"`
	BirdID      string    `json:"bird_id"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Notes       string    `json:"notes,omitempty"`
}

// Health record types.
const (
	HealthTypeVaccination = "vaccination"
	HealthTypeMedication  = "medication"
	HealthTypeCheckup     = "checkup"
	HealthTypeOther       = "other"
)

// ValidHealthRecordType reports whether t is a known health record type.
func ValidHealthRecordType(t string) bool {
	switch t {
	case HealthTypeVaccination, HealthTypeMedication, HealthTypeCheckup, HealthTypeOther:
		return true
	}
	return false
}
