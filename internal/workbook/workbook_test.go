package workbook_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteembassy/songbridge/internal/workbook"
	"github.com/eliteembassy/songbridge/pkg/tables"
)

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Works.csv"),
		[]byte("ID,Title,Foreign ID\nrequired,required,required\nW-1,Midnight Run,EEP-100\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "IP Chain.csv"),
		[]byte("Work ID,Participant 1 Type\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"),
		[]byte("not a table"), 0o644))

	set, err := workbook.LoadDir(dir)
	require.NoError(t, err)

	require.Len(t, set.Tables(), 2)
	assert.NotNil(t, set.FindExact("Works"))
	assert.NotNil(t, set.FindExact("IP Chain"))

	works := set.FindExact("Works")
	assert.Equal(t, 3, works.MaxRow())
	assert.Equal(t, "W-1", works.Cell(3, 1))
	assert.Equal(t, "EEP-100", works.Cell(3, 3))
	assert.Nil(t, works.Cell(4, 1))
}

func TestLoadDirMissing(t *testing.T) {
	_, err := workbook.LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadFileRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Form Responses 1.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte("Title,EEP Master Catalog Number,Total Writers\nSong,EEP-1\n"), 0o644))

	tbl, err := workbook.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Form Responses 1", tbl.Name())
	assert.Equal(t, "EEP-1", tbl.Cell(2, 2))
	assert.Nil(t, tbl.Cell(2, 3))
}

func TestSaveDirRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	src := tables.NewWithRows("Works", [][]any{
		{"ID", "Title", "Share"},
		{"W-1", "Midnight Run", 50.0},
		{"W-2", nil, 33.34},
	})
	require.NoError(t, workbook.SaveDir(tables.NewSet("curve", src), dir))

	set, err := workbook.LoadDir(dir)
	require.NoError(t, err)

	got := set.FindExact("Works")
	require.NotNil(t, got)
	assert.Equal(t, "W-1", got.Cell(2, 1))
	assert.Equal(t, "50", got.Cell(2, 3), "numbers render in plain form")
	assert.Nil(t, got.Cell(3, 2))
	assert.Equal(t, "33.34", got.Cell(3, 3))
}
