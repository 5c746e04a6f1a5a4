package domain

import "time"

// SnapshotPhase tags the state of a section's most recent refresh.
type SnapshotPhase string

const (
	PhaseLoading SnapshotPhase = "loading"
	PhaseLoaded  SnapshotPhase = "loaded"
	PhaseFailed  SnapshotPhase = "failed"
)

// SectionSnapshot is the render-ready state of one section. Only a successful
// refresh replaces the payload; a failed one keeps the previous rows and tags
// the snapshot Failed so the view can show a section-scoped error.
type SectionSnapshot struct {
	Section    Section
	Phase      SnapshotPhase
	Error      string
	Generation uint64
	UpdatedAt  time.Time

	Stats       *DashboardStats
	Orders      []Order
	Maintenance []MaintenanceRequest
	History     []HistoryEntry
}
