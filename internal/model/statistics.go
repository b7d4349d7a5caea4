package model

// Statistics holds aggregate counts over one account's collections.
type Statistics struct {
	TotalBirds    int `json:"total_birds"`
	ActiveBirds   int `json:"active_birds"`
	TotalCouples  int `json:"total_couples"`
	ActiveCouples int `json:"active_couples"`
	TotalNests    int `json:"total_nests"`
	ActiveNests   int `json:"active_nests"`
	TotalEggs     int `json:"total_eggs"`
	HatchedEggs   int `json:"hatched_eggs"`
	TotalAviaries int `json:"total_aviaries"`
}
