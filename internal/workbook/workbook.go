// Package workbook loads and stores table sets as directories of CSV
// files, one file per table, named after the table. It is the I/O adapter
// the command layer uses; the engine itself never touches files.
package workbook

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/eliteembassy/songbridge/pkg/errors"
	"github.com/eliteembassy/songbridge/pkg/normalize"
	"github.com/eliteembassy/songbridge/pkg/tables"
)

const csvExt = ".csv"

// LoadDir reads every CSV file in a directory into one table set, in
// directory order. The set is named after the directory.
func LoadDir(dir string) (*tables.Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapIO("read", dir, err)
	}

	set := tables.NewSet(filepath.Base(dir))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), csvExt) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		t, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		set.Add(t)
	}
	return set, nil
}

// LoadFile reads a single CSV file as a one-table set.
func LoadFile(path string) (*tables.Table, error) {
	return loadFile(path)
}

func loadFile(path string) (*tables.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // source exports are ragged

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.WrapIO("parse", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(rec))
		for j, cell := range rec {
			if cell == "" {
				continue
			}
			row[j] = cell
		}
		rows[i] = row
	}
	return tables.NewWithRows(name, rows), nil
}

// SaveDir writes every table of a set into a directory, one CSV file per
// table, creating the directory as needed. Existing files are overwritten.
func SaveDir(set *tables.Set, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	for _, t := range set.Tables() {
		if err := saveFile(t, filepath.Join(dir, t.Name()+csvExt)); err != nil {
			return err
		}
	}
	return nil
}

func saveFile(t *tables.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	width := t.MaxCol()
	for _, row := range t.Rows() {
		rec := make([]string, width)
		for j := 0; j < width && j < len(row); j++ {
			rec[j] = normalize.String(row[j])
		}
		if err := w.Write(rec); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return f.Close()
}
