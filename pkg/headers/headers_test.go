package headers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteembassy/songbridge/pkg/errors"
	"github.com/eliteembassy/songbridge/pkg/headers"
	"github.com/eliteembassy/songbridge/pkg/tables"
)

func intakeTable() *tables.Table {
	t := tables.New("Intake")
	t.AppendRow("Title", "EEP Master Catalog Number", "Writers (A) - Author (C) - Composer", "Publishers' Names", "Shares")
	t.AppendRow("Song A", "EEP-1", "Jane Doe", "Elite Embassy Publishing", "50%")
	return t
}

func TestResolveHeaderOnFirstRow(t *testing.T) {
	ix := headers.Resolve(intakeTable())
	assert.Equal(t, 1, ix.HeaderRow())
	assert.Equal(t, 3, ix.FirstDataRow())
}

func TestResolveScansLeadingRows(t *testing.T) {
	tbl := tables.New("Works")
	tbl.AppendRow(nil, nil)
	tbl.AppendRow()
	tbl.AppendRow("ID", "Foreign ID", "Title")

	ix := headers.Resolve(tbl)
	assert.Equal(t, 3, ix.HeaderRow())
	assert.Equal(t, 2, ix.FindWords("FOREIGN", "ID"))
}

func TestResolveBoundedScan(t *testing.T) {
	tbl := tables.New("Empty")
	for i := 0; i < 12; i++ {
		tbl.AppendRow(nil)
	}
	tbl.SetCell(11, 1, "Too Late") // beyond the 10-row scan bound

	ix := headers.Resolve(tbl)
	assert.Equal(t, 0, ix.HeaderRow())
	assert.Equal(t, 0, ix.FindWords("TOO"))
}

func TestFindAllKeywordsMustMatch(t *testing.T) {
	ix := headers.Resolve(intakeTable())

	assert.Equal(t, 2, ix.FindWords("EEP", "MASTER", "CATALOG", "NUMBER"))
	assert.Equal(t, 3, ix.FindWords("WRITERS", "COMPOSER"))
	assert.Equal(t, 0, ix.FindWords("EEP", "MISSING"))
}

func TestFindPriorityOrder(t *testing.T) {
	ix := headers.Resolve(intakeTable())

	spec := headers.Spec{
		{"NO", "SUCH", "COLUMN"},
		{"EEP", "CATALOG", "NUMBER"},
	}
	assert.Equal(t, 2, ix.Find(spec))
}

func TestFindFirstColumnWins(t *testing.T) {
	tbl := tables.New("Dup")
	tbl.AppendRow("Work Title", "Alternate Title")
	ix := headers.Resolve(tbl)

	assert.Equal(t, 1, ix.FindWords("TITLE"))
}

func TestFindIgnoresApostrophes(t *testing.T) {
	ix := headers.Resolve(intakeTable())
	assert.Equal(t, 4, ix.FindWords("PUBLISHERS", "NAMES"))
}

func TestExact(t *testing.T) {
	tbl := tables.New("Alternate Titles")
	tbl.AppendRow("Work ID", "Work Title", "Alternate Title", "Language")
	ix := headers.Resolve(tbl)

	assert.Equal(t, 1, ix.Exact("WORK ID"))
	assert.Equal(t, 3, ix.Exact("alternate title"))
	assert.Equal(t, 0, ix.Exact("WORK"))
}

func TestRequire(t *testing.T) {
	ix := headers.Resolve(intakeTable())

	col, err := ix.Require("EEP Master Catalog Number", headers.Words("EEP", "CATALOG"))
	require.NoError(t, err)
	assert.Equal(t, 2, col)

	_, err = ix.Require("Foreign ID", headers.Words("FOREIGN", "ID"))
	require.Error(t, err)
	assert.True(t, errors.IsMissingColumn(err))
	assert.Contains(t, err.Error(), "Foreign ID")
}

func TestValue(t *testing.T) {
	ix := headers.Resolve(intakeTable())

	col := ix.FindWords("TITLE")
	assert.Equal(t, "Song A", ix.Value(2, col))
	assert.Nil(t, ix.Value(2, 0))
}
