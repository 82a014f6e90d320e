// Package chain derives ownership chain rows and alternate-title rows for
// works in the destination workbook, from rights-holder records extracted
// out of the intake export.
//
// A work yields at most two chain rows: one for the participants signed to
// an in-house publisher and one for everyone else. Each row carries the
// group's publisher in its first slot and the group's writers in the
// remaining slots.
package chain

import (
	"github.com/rs/zerolog"

	"github.com/eliteembassy/songbridge/pkg/intake"
	"github.com/eliteembassy/songbridge/pkg/rules"
)

// Slot type markers written to the destination.
const (
	SlotPublisher = "Publisher"
	SlotWriter    = "Writer"
)

// maxSlots is the slot capacity of one destination chain row.
const maxSlots = 10

// Work is the destination-side context a chain row is generated for.
type Work struct {
	ID       string
	Title    string
	MainID   string
	Tunecode string

	// Territory and Language come from the run configuration's static
	// fills, not from the work row.
	Territory string
	Language  string
}

// Slot is one participant position within a chain row.
type Slot struct {
	Type       string
	Name       string
	FirstName  string
	MiddleName string
	Surname    string
	CAE        string
	Controlled string // "Y" or "N"
	Capacity   string

	MechanicalOwned      float64
	MechanicalCollected  float64
	PerformanceOwned     float64
	PerformanceCollected float64
}

// Row is one derived chain row: a work plus its ordered slots.
type Row struct {
	Work  Work
	Slots []Slot
}

// Generator turns a work's participants into chain rows under one rule
// configuration.
type Generator struct {
	cfg rules.Config
	log zerolog.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(cfg rules.Config, log zerolog.Logger) *Generator {
	return &Generator{cfg: cfg, log: log}
}

// Rows derives the chain rows for one work. A work with no participants
// yields no rows. The in-house group's row, when present, comes first.
func (g *Generator) Rows(work Work, ps []intake.Participant) []Row {
	if len(ps) == 0 {
		return nil
	}

	var controlled, others []intake.Participant
	for _, p := range ps {
		if p.PublisherControlled {
			controlled = append(controlled, p)
		} else {
			others = append(others, p)
		}
	}

	mech := representedMechanical(controlled, ps)

	var rows []Row
	if len(controlled) > 0 {
		lead := controlled[0]
		head := Slot{
			Type:                 SlotPublisher,
			Name:                 lead.PublisherName,
			CAE:                  lead.PublisherCAE,
			Capacity:             publisherCapacity(lead, g.cfg),
			Controlled:           "Y",
			MechanicalOwned:      mech,
			MechanicalCollected:  mech,
			PerformanceOwned:     mech / 2,
			PerformanceCollected: mech / 2,
		}
		rows = append(rows, g.row(work, head, controlled))
	}
	if len(others) > 0 {
		remainder := 100 - mech
		head := Slot{
			Type:                 SlotPublisher,
			Name:                 g.cfg.PlaceholderPublisher,
			CAE:                  g.cfg.PlaceholderCAE,
			Capacity:             g.cfg.OriginalPublisherLabel,
			Controlled:           "N",
			MechanicalOwned:      remainder,
			MechanicalCollected:  remainder,
			PerformanceOwned:     remainder / 2,
			PerformanceCollected: remainder / 2,
		}
		rows = append(rows, g.row(work, head, others))
	}
	return rows
}

// row assembles one chain row: the publisher slot followed by the group's
// writers. Writers beyond the slot capacity are dropped.
func (g *Generator) row(work Work, head Slot, group []intake.Participant) Row {
	slots := make([]Slot, 0, maxSlots)
	slots = append(slots, head)

	for _, p := range group {
		if len(slots) >= maxSlots {
			g.log.Warn().
				Str("work_id", work.ID).
				Str("publisher", head.Name).
				Int("dropped", len(group)-(maxSlots-1)).
				Msg("chain row slot capacity exceeded, writers dropped")
			break
		}
		slots = append(slots, writerSlot(p))
	}

	return Row{Work: work, Slots: slots}
}

// writerSlot maps a participant to a writer slot. Writers carry no
// mechanical shares of their own; performance is half the declared share.
func writerSlot(p intake.Participant) Slot {
	mark := "N"
	if p.Controlled {
		mark = "Y"
	}
	return Slot{
		Type:                 SlotWriter,
		Name:                 p.FullName(),
		FirstName:            p.FirstName,
		MiddleName:           p.MiddleName,
		Surname:              p.Surname,
		Controlled:           mark,
		Capacity:             p.Capacity,
		PerformanceOwned:     p.Share / 2,
		PerformanceCollected: p.Share / 2,
	}
}

// representedMechanical picks the work's represented mechanical percentage:
// the first in-house participant carrying a number, falling back to any
// participant carrying one, else zero.
func representedMechanical(controlled, all []intake.Participant) float64 {
	for _, p := range controlled {
		if p.HasMechanical && p.Mechanical > 0 {
			return p.Mechanical
		}
	}
	for _, p := range all {
		if p.HasMechanical && p.Mechanical > 0 {
			return p.Mechanical
		}
	}
	return 0
}

// publisherCapacity prefers the capacity declared on the intake form,
// falling back to the configured original-publisher label.
func publisherCapacity(p intake.Participant, cfg rules.Config) string {
	if p.PublisherCapacity != "" {
		return p.PublisherCapacity
	}
	return cfg.OriginalPublisherLabel
}
