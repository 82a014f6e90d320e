package chain_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteembassy/songbridge/pkg/chain"
	"github.com/eliteembassy/songbridge/pkg/errors"
	"github.com/eliteembassy/songbridge/pkg/intake"
	"github.com/eliteembassy/songbridge/pkg/rules"
	"github.com/eliteembassy/songbridge/pkg/tables"
)

func intakeIndex() *intake.Index {
	return intake.BuildIndex(tables.NewWithRows("Form Responses 1", [][]any{
		{
			"Title",
			"Alternate Titles (one per line)",
			"EEP Master Catalog Number",
			"Total Writers",
			"Elite Embassy Represents %",
			"Composer 1 First Name",
			"Composer 1 Surname",
			"Composer 1 Share",
			"Composer 1 Capacity",
			"Composer 1 Controlled (Y/N)",
			"Publisher 1 Name",
			"Publisher 1 CAE",
			"Publisher 1 Capacity",
			"Composer 2 First Name",
			"Composer 2 Surname",
			"Composer 2 Share",
			"Composer 2 Capacity",
			"Composer 2 Controlled (Y/N)",
			"Publisher 2 Name",
			"Publisher 2 CAE",
		},
		{
			"Midnight Run", "night run\nmidnight running", "EEP-100", 2.0, "50",
			"Jane", "Doe", "60%", "C", "Y",
			"Elite Embassy Publishing", "00123456789", "Original Publisher",
			"John", "Smith", "40%", "A", "N",
			"Big Indie Music", "98765",
		},
		{
			"Quiet Hours", nil, "EEP-200", 1.0, "100",
			"Alma", "Kemp", 100.0, "CA", "Y",
			"Music Embassies Publishing", "00123456789", "Original Publisher",
		},
	}))
}

func chainHeader() []any {
	header := []any{
		"Work ID", "Work Title", "Work Main Identifier", "Work Tunecode", "Territory",
	}
	for _, n := range []string{"1", "2", "3"} {
		header = append(header,
			"Participant "+n+" Type",
			"Participant "+n+" Name",
			"Participant "+n+" First Name",
			"Participant "+n+" Middle Name",
			"Participant "+n+" Surname",
			"Participant "+n+" CAE",
			"Participant "+n+" Controlled",
			"Participant "+n+" Capacity",
			"Participant "+n+" Mechanical Owned",
			"Participant "+n+" Mechanical Collected",
			"Participant "+n+" Performance Owned",
			"Participant "+n+" Performance Collected",
		)
	}
	return header
}

func destinationSet() *tables.Set {
	works := tables.NewWithRows("Works", [][]any{
		{"ID", "Work Title", "Main Identifier", "Tunecode", "Foreign ID"},
		{"required", "required", "optional", "optional", "required"},
		{"W-1", "Midnight Run", "M-1", "T-1", "EEP-100"},
		{"W-2", "Quiet Hours", "M-2", "T-2", "EEP-200"},
		{"W-3", "Ghost", "M-3", "T-3", "EEP-404"},
	})

	chainTbl := tables.NewWithRows("IP Chain", [][]any{
		chainHeader(),
		{"instructions"},
		{"stale", "data", "from", "a", "previous", "run"},
	})

	alt := tables.NewWithRows("Alternate Titles", [][]any{
		{"WORK ID", "WORK TITLE", "WORK MAIN IDENTIFIER", "WORK TUNECODE", "ALTERNATE TITLE", "LANGUAGE"},
		{"instructions"},
		{"stale"},
	})

	return tables.NewSet("curve.xlsx", works, chainTbl, alt)
}

func TestRunDerivesChainAndAltTitles(t *testing.T) {
	dest := destinationSet()
	runner := chain.NewRunner(rules.Default(), zerolog.Nop())

	res, err := runner.Run(dest, intakeIndex())
	require.NoError(t, err)

	assert.Equal(t, 3, res.WorksScanned)
	assert.Equal(t, 2, res.WorksMatched)
	assert.Equal(t, 3, res.ChainRows)
	assert.Equal(t, 2, res.AltTitleRows)
	assert.False(t, res.Completed.Time.Before(res.Started.Time))

	chainTbl := dest.FindExact("IP Chain")
	require.NotNil(t, chainTbl)

	// Stale data region replaced; writes start on row 3.
	require.Equal(t, 5, chainTbl.MaxRow())

	// Row 3: W-1's in-house group.
	assert.Equal(t, "W-1", chainTbl.Cell(3, 1))
	assert.Equal(t, "Midnight Run", chainTbl.Cell(3, 2))
	assert.Equal(t, "WW", chainTbl.Cell(3, 5))
	assert.Equal(t, "Publisher", chainTbl.Cell(3, 6))
	assert.Equal(t, "Elite Embassy Publishing", chainTbl.Cell(3, 7))
	assert.Equal(t, "Y", chainTbl.Cell(3, 12))
	assert.Equal(t, 50.0, chainTbl.Cell(3, 14))
	assert.Equal(t, 25.0, chainTbl.Cell(3, 16))
	assert.Equal(t, "Writer", chainTbl.Cell(3, 18))
	assert.Equal(t, "Jane Doe", chainTbl.Cell(3, 19))
	assert.Equal(t, "Composer", chainTbl.Cell(3, 25))
	assert.Equal(t, 30.0, chainTbl.Cell(3, 28))

	// Row 4: W-1's outside group under the placeholder publisher.
	assert.Equal(t, "W-1", chainTbl.Cell(4, 1))
	assert.Equal(t, "Copyright Control", chainTbl.Cell(4, 7))
	assert.Equal(t, "00000000", chainTbl.Cell(4, 11))
	assert.Equal(t, "N", chainTbl.Cell(4, 12))
	assert.Equal(t, 50.0, chainTbl.Cell(4, 14))
	assert.Equal(t, "John Smith", chainTbl.Cell(4, 19))
	assert.Equal(t, "Lyrics", chainTbl.Cell(4, 25))

	// Row 5: W-2, fully in-house.
	assert.Equal(t, "W-2", chainTbl.Cell(5, 1))
	assert.Equal(t, "Music Embassies Publishing", chainTbl.Cell(5, 7))
	assert.Equal(t, 100.0, chainTbl.Cell(5, 14))
	assert.Equal(t, "Lyrics and Music", chainTbl.Cell(5, 25))

	altTbl := dest.FindContains("ALTERNATE")
	require.NotNil(t, altTbl)
	require.Equal(t, 4, altTbl.MaxRow())

	assert.Equal(t, "W-1", altTbl.Cell(3, 1))
	assert.Equal(t, "Midnight Run", altTbl.Cell(3, 2))
	assert.Equal(t, "Night Run", altTbl.Cell(3, 5), "alternate titles are title-cased")
	assert.Equal(t, "English", altTbl.Cell(3, 6))
	assert.Equal(t, "Midnight Running", altTbl.Cell(4, 5))
}

func TestRunMissingChainTable(t *testing.T) {
	dest := tables.NewSet("curve.xlsx",
		tables.NewWithRows("Works", [][]any{{"ID", "Foreign ID"}}))

	runner := chain.NewRunner(rules.Default(), zerolog.Nop())
	_, err := runner.Run(dest, intakeIndex())
	require.Error(t, err)
	assert.True(t, errors.IsMissingTable(err))
}

func TestRunMissingJoinColumn(t *testing.T) {
	dest := tables.NewSet("curve.xlsx",
		tables.NewWithRows("Works", [][]any{{"ID", "Work Title"}}),
		tables.NewWithRows("IP Chain", [][]any{chainHeader()}),
		tables.NewWithRows("Alternate Titles", [][]any{{"WORK ID"}}),
	)

	runner := chain.NewRunner(rules.Default(), zerolog.Nop())
	_, err := runner.Run(dest, intakeIndex())
	require.Error(t, err)
	assert.True(t, errors.IsMissingColumn(err))
}

func TestRunWorkRowLanguageAndTerritory(t *testing.T) {
	dest := tables.NewSet("curve.xlsx",
		tables.NewWithRows("Works", [][]any{
			{"ID", "Work Title", "Foreign ID", "Language", "Territories"},
			{"instructions"},
			{"W-1", "Midnight Run", "EEP-100", "French", "EU"},
			{"W-2", "Quiet Hours", "EEP-200", nil, nil},
		}),
		tables.NewWithRows("IP Chain", [][]any{chainHeader()}),
		tables.NewWithRows("Alternate Titles", [][]any{
			{"WORK ID", "WORK TITLE", "ALTERNATE TITLE", "LANGUAGE"},
		}),
	)

	runner := chain.NewRunner(rules.Default(), zerolog.Nop())
	res, err := runner.Run(dest, intakeIndex())
	require.NoError(t, err)
	require.Equal(t, 2, res.WorksMatched)

	chainTbl := dest.FindExact("IP Chain")
	require.NotNil(t, chainTbl)
	assert.Equal(t, "EU", chainTbl.Cell(3, 5), "work row territory wins")
	assert.Equal(t, "WW", chainTbl.Cell(5, 5), "blank cell falls back to the static fill")

	altTbl := dest.FindContains("ALTERNATE")
	require.NotNil(t, altTbl)
	assert.Equal(t, "Night Run", altTbl.Cell(3, 3))
	assert.Equal(t, "French", altTbl.Cell(3, 4), "work row language wins")
}

func TestRunSparseSecondWriterStillSplits(t *testing.T) {
	src := intake.BuildIndex(tables.NewWithRows("Form Responses 1", [][]any{
		{
			"Title", "EEP Master Catalog Number", "Total Writers",
			"Elite Embassy Represents %",
			"Composer 1 Controlled (Y/N)", "Publisher 1 Name",
			"Composer 2 Controlled (Y/N)",
		},
		{"Fade Out", "EEP-300", 2.0, "50%", "Y", "Elite Embassy Publishing", "N"},
	}))

	dest := tables.NewSet("curve.xlsx",
		tables.NewWithRows("Works", [][]any{
			{"ID", "Work Title", "Foreign ID"},
			{"instructions"},
			{"W-5", "Fade Out", "EEP-300"},
		}),
		tables.NewWithRows("IP Chain", [][]any{chainHeader()}),
		tables.NewWithRows("Alternate Titles", [][]any{
			{"WORK ID", "WORK TITLE", "ALTERNATE TITLE", "LANGUAGE"},
		}),
	)

	runner := chain.NewRunner(rules.Default(), zerolog.Nop())
	res, err := runner.Run(dest, src)
	require.NoError(t, err)

	assert.Equal(t, 2, res.ChainRows, "a marker-only second writer still forms the outside group")

	chainTbl := dest.FindExact("IP Chain")
	require.NotNil(t, chainTbl)
	assert.Equal(t, "Elite Embassy Publishing", chainTbl.Cell(3, 7))
	assert.Equal(t, 50.0, chainTbl.Cell(3, 14))
	assert.Equal(t, "Copyright Control", chainTbl.Cell(4, 7))
	assert.Equal(t, 50.0, chainTbl.Cell(4, 14))
}

func TestRunUnmatchedWorkSkipped(t *testing.T) {
	dest := tables.NewSet("curve.xlsx",
		tables.NewWithRows("Works", [][]any{
			{"ID", "Work Title", "Foreign ID"},
			{"instructions"},
			{"W-9", "Nowhere", "EEP-999"},
		}),
		tables.NewWithRows("IP Chain", [][]any{chainHeader()}),
		tables.NewWithRows("Alternate Titles", [][]any{
			{"WORK ID", "WORK TITLE", "ALTERNATE TITLE", "LANGUAGE"},
		}),
	)

	runner := chain.NewRunner(rules.Default(), zerolog.Nop())
	res, err := runner.Run(dest, intakeIndex())
	require.NoError(t, err)

	assert.Equal(t, 1, res.WorksScanned)
	assert.Equal(t, 0, res.WorksMatched)
	assert.Equal(t, 0, res.ChainRows)
}
