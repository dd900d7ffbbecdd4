// Package dataset supplies named production series: the bundled example
// datasets shipped in the data directory and user-uploaded xlsx files.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/angas/pv-revenue-go/convert"
	"github.com/angas/pv-revenue-go/production"
	"github.com/angas/pv-revenue-go/types"
)

// The bundled example files. Both are plain two-column exports
// (timestamp;yield) like the ones PV portals produce.
var examples = []struct {
	file   string
	name   string
	source types.DatasetSource
}{
	{"beispiel_dachanlage.csv", "Beispiel Dachanlage", types.DatasetExampleRooftop},
	{"beispiel_freiflaeche.csv", "Beispiel Freifläche", types.DatasetExampleGroundMount},
}

// LoadExamples reads the bundled example datasets from dir. A missing or
// broken example is skipped with a logged warning; the caller simply sees
// fewer projects.
func LoadExamples(logger *slog.Logger, dir string) []types.Project {
	var projects []types.Project
	for _, ex := range examples {
		project, err := fromCSVFile(filepath.Join(dir, ex.file), ex.name, ex.source)
		if err != nil {
			logger.Warn("skipping example dataset",
				slog.String("file", ex.file),
				slog.Any("error", err))
			continue
		}
		logger.Debug("loaded example dataset",
			slog.String("project", project.Name),
			slog.Int("hours", len(project.Series)))
		projects = append(projects, project)
	}
	return projects
}

// FromXLSX reads an uploaded production workbook: first sheet, a header row,
// then timestamp (UTC) in the first column and yield in the second. The
// returned project carries the normalized hourly series.
func FromXLSX(r io.Reader, name string) (types.Project, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return types.Project{}, fmt.Errorf("not a readable xlsx file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return types.Project{}, fmt.Errorf("workbook %q has no sheets", name)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return types.Project{}, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	raw, err := rawFromRows(rows)
	if err != nil {
		return types.Project{}, fmt.Errorf("workbook %q: %w", name, err)
	}

	return newProject(name, types.DatasetUploaded, raw)
}

func fromCSVFile(path, name string, source types.DatasetSource) (types.Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Project{}, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = ';'
	cr.FieldsPerRecord = 2

	rows, err := cr.ReadAll()
	if err != nil {
		return types.Project{}, fmt.Errorf("reading %s: %w", path, err)
	}

	raw, err := rawFromRows(rows)
	if err != nil {
		return types.Project{}, fmt.Errorf("file %s: %w", path, err)
	}

	return newProject(name, source, raw)
}

// rawFromRows converts tabular rows (header first) into raw readings.
func rawFromRows(rows [][]string) ([]types.RawReading, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("expected a header row and at least one reading")
	}

	raw := make([]types.RawReading, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) == 0 || (len(row) == 1 && row[0] == "") {
			continue // trailing blank rows are common in exports
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d has %d columns, expected timestamp and yield", i+2, len(row))
		}
		yield, err := convert.ParseGermanFloat(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d has unreadable yield %q", i+2, row[1])
		}
		raw = append(raw, types.RawReading{Timestamp: row[0], Yield: yield})
	}

	return raw, nil
}

func newProject(name string, source types.DatasetSource, raw []types.RawReading) (types.Project, error) {
	series, err := production.Normalize(raw)
	if err != nil {
		return types.Project{}, err
	}
	return types.Project{Name: name, Source: source, Series: series}, nil
}
