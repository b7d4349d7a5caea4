// Package export builds full-account data exports in JSON or plain text.
package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mvogel/voliere/internal/model"
	"github.com/mvogel/voliere/internal/store"
)

// Snapshot is a point-in-time copy of everything one account tracks.
type Snapshot struct {
	ExportedAt    time.Time            `json:"exported_at"`
	Birds         []model.Bird         `json:"birds"`
	Couples       []model.Couple       `json:"couples"`
	Nests         []model.Nest         `json:"nests"`
	Eggs          []model.Egg          `json:"eggs"`
	Aviaries      []model.Aviary       `json:"aviaries"`
	HealthRecords []model.HealthRecord `json:"health_records"`
	Statistics    *model.Statistics    `json:"statistics"`
}

// BuildSnapshot reads all of an account's collections. Collections come back
// as empty slices, never nil, so exports always contain every section.
func BuildSnapshot(ctx context.Context, db *sql.DB, ownerID string) (*Snapshot, error) {
	snap := &Snapshot{ExportedAt: time.Now().UTC()}
	var err error

	if snap.Birds, err = store.ListBirds(ctx, db, ownerID, ""); err != nil {
		return nil, fmt.Errorf("exporting birds: %w", err)
	}
	if snap.Couples, err = store.ListCouples(ctx, db, ownerID); err != nil {
		return nil, fmt.Errorf("exporting couples: %w", err)
	}
	if snap.Nests, err = store.ListNests(ctx, db, ownerID); err != nil {
		return nil, fmt.Errorf("exporting nests: %w", err)
	}
	if snap.Eggs, err = store.ListEggs(ctx, db, ownerID); err != nil {
		return nil, fmt.Errorf("exporting eggs: %w", err)
	}
	if snap.Aviaries, err = store.ListAviaries(ctx, db, ownerID); err != nil {
		return nil, fmt.Errorf("exporting aviaries: %w", err)
	}
	if snap.HealthRecords, err = store.ListHealthRecords(ctx, db, ownerID); err != nil {
		return nil, fmt.Errorf("exporting health records: %w", err)
	}
	if snap.Statistics, err = store.GetStatistics(ctx, db, ownerID); err != nil {
		return nil, fmt.Errorf("exporting statistics: %w", err)
	}

	if snap.Birds == nil {
		snap.Birds = []model.Bird{}
	}
	if snap.Couples == nil {
		snap.Couples = []model.Couple{}
	}
	if snap.Nests == nil {
		snap.Nests = []model.Nest{}
	}
	if snap.Eggs == nil {
		snap.Eggs = []model.Egg{}
	}
	if snap.Aviaries == nil {
		snap.Aviaries = []model.Aviary{}
	}
	if snap.HealthRecords == nil {
		snap.HealthRecords = []model.HealthRecord{}
	}

	return snap, nil
}

// JSON renders the snapshot as indented JSON.
func (s *Snapshot) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Text renders the snapshot as a human-readable report.
func (s *Snapshot) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Aviary export, %s\n", s.ExportedAt.Format("2006-01-02 15:04 MST"))
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	fmt.Fprintf(&b, "Birds (%d)\n", len(s.Birds))
	for _, bird := range s.Birds {
		fmt.Fprintf(&b, "  %s  %s (%s, %s, %s)\n",
			bird.RingNumber, displayName(bird.Name), bird.Species, bird.Gender, bird.Status)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Couples (%d)\n", len(s.Couples))
	for _, c := range s.Couples {
		state := "inactive"
		if c.Active {
			state = "active"
		}
		fmt.Fprintf(&b, "  season %s: %s x %s (%s)\n", c.Season, c.MaleID, c.FemaleID, state)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Nests (%d)\n", len(s.Nests))
	for _, n := range s.Nests {
		state := "inactive"
		if n.Active {
			state = "active"
		}
		fmt.Fprintf(&b, "  started %s: %d eggs, %d hatched (%s)\n",
			n.StartDate.Format("2006-01-02"), n.EggCount, n.HatchedCount, state)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Eggs (%d)\n", len(s.Eggs))
	for _, e := range s.Eggs {
		fmt.Fprintf(&b, "  laid %s: %s\n", e.LayDate.Format("2006-01-02"), e.Status)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Aviaries (%d)\n", len(s.Aviaries))
	for _, a := range s.Aviaries {
		fmt.Fprintf(&b, "  %s (capacity %d)\n", a.Name, a.Capacity)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Health records (%d)\n", len(s.HealthRecords))
	for _, hr := range s.HealthRecords {
		fmt.Fprintf(&b, "  %s %s: %s\n", hr.Date.Format("2006-01-02"), hr.Type, hr.Description)
	}
	b.WriteString("\n")

	st := s.Statistics
	b.WriteString("Statistics\n")
	fmt.Fprintf(&b, "  birds:    %d total, %d active\n", st.TotalBirds, st.ActiveBirds)
	fmt.Fprintf(&b, "  couples:  %d total, %d active\n", st.TotalCouples, st.ActiveCouples)
	fmt.Fprintf(&b, "  nests:    %d total, %d active\n", st.TotalNests, st.ActiveNests)
	fmt.Fprintf(&b, "  eggs:     %d total, %d hatched\n", st.TotalEggs, st.HatchedEggs)
	fmt.Fprintf(&b, "  aviaries: %d total\n", st.TotalAviaries)

	return b.String()
}

func displayName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}
