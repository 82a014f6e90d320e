package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteembassy/songbridge/internal/workbook"
	"github.com/eliteembassy/songbridge/pkg/chain"
	"github.com/eliteembassy/songbridge/pkg/enrich"
	"github.com/eliteembassy/songbridge/pkg/intake"
	"github.com/eliteembassy/songbridge/pkg/rules"
)

const intakeCSV = `Title,Alternate Titles,EEP Master Catalog Number,Total Writers,Elite Embassy Represents %,ISWC,TUNECODE #,Artist(s),Recording ISRC,Popular Catalog Status,Composer 1 First Name,Composer 1 Surname,Composer 1 Share,Composer 1 Capacity,Composer 1 Controlled (Y/N),Publisher 1 Name,Publisher 1 CAE,Publisher 1 Capacity,Composer 2 First Name,Composer 2 Surname,Composer 2 Share,Composer 2 Capacity,Composer 2 Controlled (Y/N),Publisher 2 Name,Publisher 2 CAE
Midnight Run,"Night Run",EEP-100,2,50,T-123456789-0,TC-1,The Night Owls,USRC12345678,POPULAR-ARTIST,Jane,Doe,60%,C,Y,Elite Embassy Publishing,00123456789,Original Publisher,John,Smith,40%,A,N,Big Indie Music,98765
`

const worksCSV = `Title,ISWC,Tunecode,Copyright Date,Performers,Track ISRCs,Notes,Priority Work,Language,Territories,ID,Foreign ID
required,optional,optional,optional,optional,optional,optional,optional,optional,optional,required,required
,,,,,,,,,,W-1,EEP-100
`

const chainCSV = `Work ID,Work Title,Territory,Participant 1 Type,Participant 1 Name,Participant 1 CAE,Participant 1 Controlled,Participant 1 Capacity,Participant 1 Mechanical Owned,Participant 1 Performance Owned,Participant 2 Type,Participant 2 Name,Participant 2 Controlled,Participant 2 Capacity,Participant 2 Performance Owned
instructions
`

const altCSV = `WORK ID,WORK TITLE,ALTERNATE TITLE,LANGUAGE
instructions
`

// TestPipeline runs enrichment and chain derivation back to back over CSV
// directories, the way the CLI drives them.
func TestPipeline(t *testing.T) {
	dir := t.TempDir()
	workbookDir := filepath.Join(dir, "curve")
	intakePath := filepath.Join(dir, "Form Responses 1.csv")

	require.NoError(t, os.MkdirAll(workbookDir, 0o755))
	require.NoError(t, os.WriteFile(intakePath, []byte(intakeCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(workbookDir, "Works.csv"), []byte(worksCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(workbookDir, "IP Chain.csv"), []byte(chainCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(workbookDir, "Alternate Titles.csv"), []byte(altCSV), 0o644))

	cfg := rules.Default()
	log := zerolog.Nop()

	src, err := workbook.LoadFile(intakePath)
	require.NoError(t, err)
	dest, err := workbook.LoadDir(workbookDir)
	require.NoError(t, err)

	enrichRes, err := enrich.NewRunner(cfg, log).Run(dest, src)
	require.NoError(t, err)
	assert.Equal(t, 1, enrichRes.RowsWritten)

	chainRes, err := chain.NewRunner(cfg, log).Run(dest, intake.BuildIndex(src))
	require.NoError(t, err)
	assert.Equal(t, 1, chainRes.WorksMatched)
	assert.Equal(t, 2, chainRes.ChainRows)
	assert.Equal(t, 1, chainRes.AltTitleRows)

	outDir := filepath.Join(dir, "out")
	require.NoError(t, workbook.SaveDir(dest, outDir))

	// Reload the saved directory and verify the round trip.
	saved, err := workbook.LoadDir(outDir)
	require.NoError(t, err)

	works := saved.FindExact("Works")
	require.NotNil(t, works)
	assert.Equal(t, "Midnight Run", works.Cell(3, 1))
	assert.Equal(t, "T-123456789-0", works.Cell(3, 2))
	assert.Equal(t, "TRUE", works.Cell(3, 8))
	assert.Equal(t, "English", works.Cell(3, 9))
	assert.Equal(t, "WW", works.Cell(3, 10))

	chainTbl := saved.FindExact("IP Chain")
	require.NotNil(t, chainTbl)
	assert.Equal(t, "W-1", chainTbl.Cell(3, 1))
	assert.Equal(t, "Elite Embassy Publishing", chainTbl.Cell(3, 5))
	assert.Equal(t, "50", chainTbl.Cell(3, 9))
	assert.Equal(t, "Jane Doe", chainTbl.Cell(3, 12))
	assert.Equal(t, "Copyright Control", chainTbl.Cell(4, 5))
	assert.Equal(t, "John Smith", chainTbl.Cell(4, 12))

	alt := saved.FindExact("Alternate Titles")
	require.NotNil(t, alt)
	assert.Equal(t, "W-1", alt.Cell(3, 1))
	assert.Equal(t, "Night Run", alt.Cell(3, 3))
	assert.Equal(t, "English", alt.Cell(3, 4))
}
