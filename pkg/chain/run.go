package chain

import (
	"strings"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/eliteembassy/songbridge/pkg/errors"
	"github.com/eliteembassy/songbridge/pkg/headers"
	"github.com/eliteembassy/songbridge/pkg/intake"
	"github.com/eliteembassy/songbridge/pkg/normalize"
	"github.com/eliteembassy/songbridge/pkg/rules"
	"github.com/eliteembassy/songbridge/pkg/tables"
)

// Destination table addressing. The works and alternate-titles tables are
// found by name fragment, the chain table by its exact name.
const (
	worksTableFragment = "WORK"
	altTableFragment   = "ALTERNATE"
	chainTableName     = "IP Chain"
)

// Result summarizes one derivation run.
type Result struct {
	Started   utc.Time
	Completed utc.Time

	WorksScanned int
	WorksMatched int
	ChainRows    int
	AltTitleRows int
}

// Runner walks the destination works table, joins each work to its intake
// record by business key, and regenerates the chain and alternate-title
// tables from scratch.
type Runner struct {
	cfg rules.Config
	log zerolog.Logger
}

// NewRunner creates a Runner.
func NewRunner(cfg rules.Config, log zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// Run executes the derivation over one destination table set. Missing
// tables and missing join columns are structural and abort the run; a work
// with no intake match is skipped and counted, never an error.
func (r *Runner) Run(dest *tables.Set, src *intake.Index) (*Result, error) {
	res := &Result{Started: utc.Now()}

	works, err := dest.RequireContains(worksTableFragment)
	if err != nil {
		return nil, err
	}
	chainTbl, err := dest.RequireExact(chainTableName)
	if err != nil {
		return nil, err
	}
	altTbl, err := dest.RequireContains(altTableFragment)
	if err != nil {
		return nil, err
	}

	wix := headers.Resolve(works)
	idCol, err := wix.Require("ID", headers.Spec{{"WORK", "ID"}, {"ID"}})
	if err != nil {
		return nil, errors.WrapStage("chains", err)
	}
	foreignCol, err := wix.Require("Foreign ID", headers.Words("FOREIGN", "ID"))
	if err != nil {
		return nil, errors.WrapStage("chains", err)
	}
	titleCol := wix.FindWords("TITLE")
	mainCol := wix.FindWords("MAIN", "IDENTIFIER")
	tuneCol := wix.FindWords("TUNE")
	langCol := wix.FindWords("LANGUAGE")
	terrCol := wix.Find(headers.Spec{{"TERRITORIES"}, {"TERRITORY"}})

	gen := NewGenerator(r.cfg, r.log)
	sink := NewSink(chainTbl, r.log)
	altSink := NewAltSink(altTbl)

	for row := wix.FirstDataRow(); row <= works.MaxRow(); row++ {
		key := normalize.Key(wix.Value(row, foreignCol))
		if key == "" {
			continue
		}
		res.WorksScanned++

		work := Work{
			ID:        strings.TrimSpace(normalize.String(wix.Value(row, idCol))),
			Title:     strings.TrimSpace(normalize.String(wix.Value(row, titleCol))),
			MainID:    strings.TrimSpace(normalize.String(wix.Value(row, mainCol))),
			Tunecode:  strings.TrimSpace(normalize.String(wix.Value(row, tuneCol))),
			Territory: strings.TrimSpace(normalize.String(wix.Value(row, terrCol))),
			Language:  strings.TrimSpace(normalize.String(wix.Value(row, langCol))),
		}
		// The work row's own values win; static fills only cover columns
		// the template lacks or left blank.
		if work.Territory == "" {
			work.Territory = r.cfg.StaticFills["Territories"]
		}
		if work.Language == "" {
			work.Language = r.cfg.StaticFills["Language"]
		}

		srcRow, ok := src.Lookup(key)
		if ok {
			res.WorksMatched++

			ps := srcRow.Participants(r.cfg)
			if declared, parsed := srcRow.DeclaredWriters(); parsed && declared > r.cfg.MaxParticipants {
				r.log.Warn().
					Str("work_id", work.ID).
					Int("declared", declared).
					Int("max", r.cfg.MaxParticipants).
					Msg("declared writer count exceeds capacity, extra writers dropped")
			}

			for _, cr := range gen.Rows(work, ps) {
				sink.Write(cr)
				res.ChainRows++
			}
		} else {
			r.log.Debug().
				Str("work_id", work.ID).
				Str("key", key).
				Msg("no intake record for work")
		}

		for _, alt := range src.AltTitles(normalize.Key(work.Title), key) {
			altSink.Write(work, normalize.Title(alt))
			res.AltTitleRows++
		}
	}

	res.Completed = utc.Now()
	r.log.Info().
		Int("works_scanned", res.WorksScanned).
		Int("works_matched", res.WorksMatched).
		Int("chain_rows", res.ChainRows).
		Int("alt_title_rows", res.AltTitleRows).
		Msg("chain derivation complete")

	return res, nil
}
