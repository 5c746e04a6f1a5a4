package domain

import "errors"

// Section identifies one of the mutually exclusive portal views. Exactly one
// section is active per session at any time.
type Section string

const (
	SectionDashboard   Section = "dashboard"
	SectionOrders      Section = "orders"
	SectionMaintenance Section = "maintenance"
	SectionHistory     Section = "history"
)

var ErrUnknownSection = errors.New("unknown section")

// Sections lists all sections in navigation order.
var Sections = []Section{SectionDashboard, SectionOrders, SectionMaintenance, SectionHistory}

// Valid reports whether s names a known section.
func (s Section) Valid() bool {
	switch s {
	case SectionDashboard, SectionOrders, SectionMaintenance, SectionHistory:
		return true
	}
	return false
}

// ParseSection validates a raw section name.
func ParseSection(raw string) (Section, error) {
	s := Section(raw)
	if !s.Valid() {
		return "", ErrUnknownSection
	}
	return s, nil
}
