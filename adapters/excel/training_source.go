// Package excel loads real training datasets from an Excel workbook or a
// directory of CSV files, feeding the same sample schema the synthetic
// generators produce.
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ecodesign/domain/design"
	"ecodesign/ports"
)

// Sheet (and CSV file base-) names expected in a training workbook.
const (
	SheetCosts       = "costs"
	SheetPreferences = "preferences"
	SheetHistorical  = "historical"
)

// TrainingSource reads training data from disk. Path points at either an
// .xlsx workbook with costs/preferences/historical sheets or a directory
// holding costs.csv, preferences.csv and historical.csv.
type TrainingSource struct {
	path string
}

// NewTrainingSource creates a loader-backed training data source.
func NewTrainingSource(path string) *TrainingSource {
	return &TrainingSource{path: path}
}

// Name identifies the source for startup logging.
func (s *TrainingSource) Name() string {
	return fmt.Sprintf("file:%s", s.path)
}

// Load reads all three datasets. Malformed rows are skipped and counted,
// not fatal; a missing file or sheet is an error so the caller can fall
// back to synthetic data.
func (s *TrainingSource) Load(_ context.Context) (*ports.TrainingData, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("training data not found: %s", s.path)
	}

	var tables map[string][][]string
	if info.IsDir() {
		tables, err = s.readCSVDir()
	} else {
		tables, err = s.readWorkbook()
	}
	if err != nil {
		return nil, err
	}

	data := &ports.TrainingData{}
	skipped := 0

	for _, row := range tables[SheetCosts] {
		sample, err := parseCostRow(row)
		if err != nil {
			skipped++
			continue
		}
		data.Costs = append(data.Costs, sample)
	}
	for _, row := range tables[SheetPreferences] {
		sample, err := parsePreferenceRow(row)
		if err != nil {
			skipped++
			continue
		}
		data.Preferences = append(data.Preferences, sample)
	}
	for _, row := range tables[SheetHistorical] {
		proj, err := parseHistoricalRow(row)
		if err != nil {
			skipped++
			continue
		}
		data.Historical = append(data.Historical, proj)
	}

	if skipped > 0 {
		log.Printf("[TrainingSource] skipped %d malformed rows in %s", skipped, s.path)
	}
	if len(data.Costs) == 0 {
		return nil, fmt.Errorf("no usable cost samples in %s", s.path)
	}
	return data, nil
}

// readWorkbook pulls the three sheets from an xlsx file, dropping each
// sheet's header row.
func (s *TrainingSource) readWorkbook() (map[string][][]string, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	tables := make(map[string][][]string, 3)
	for _, sheet := range []string{SheetCosts, SheetPreferences, SheetHistorical} {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		if len(rows) < 2 {
			return nil, fmt.Errorf("sheet %s needs a header row and at least one data row", sheet)
		}
		tables[sheet] = rows[1:]
	}
	return tables, nil
}

// readCSVDir pulls costs.csv, preferences.csv and historical.csv from a
// directory, dropping each file's header row.
func (s *TrainingSource) readCSVDir() (map[string][][]string, error) {
	tables := make(map[string][][]string, 3)
	for _, name := range []string{SheetCosts, SheetPreferences, SheetHistorical} {
		path := filepath.Join(s.path, name+".csv")
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		records, err := csv.NewReader(f).ReadAll()
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if len(records) < 2 {
			return nil, fmt.Errorf("%s needs a header row and at least one data row", path)
		}
		tables[name] = records[1:]
	}
	return tables, nil
}

// Row layouts: costs = area,budget,climate,priority,design,cost
// preferences = area,budget,climate,priority,preferred
// historical = area,budget,climate,priority,design,outcome

func parseCostRow(row []string) (design.CostSample, error) {
	c, err := parseConstraintCols(row)
	if err != nil {
		return design.CostSample{}, err
	}
	arch, err := parseArchetypeCol(row, 4)
	if err != nil {
		return design.CostSample{}, err
	}
	cost, err := parseFloatCol(row, 5)
	if err != nil || cost <= 0 {
		return design.CostSample{}, fmt.Errorf("bad cost column")
	}
	return design.CostSample{
		Area:      c.Area,
		Budget:    c.Budget,
		Climate:   c.Climate,
		Priority:  c.Priority,
		Archetype: arch,
		Cost:      cost,
	}, nil
}

func parsePreferenceRow(row []string) (design.PreferenceSample, error) {
	c, err := parseConstraintCols(row)
	if err != nil {
		return design.PreferenceSample{}, err
	}
	preferred, err := parseArchetypeCol(row, 4)
	if err != nil {
		return design.PreferenceSample{}, err
	}
	return design.PreferenceSample{Constraints: c, Preferred: preferred}, nil
}

func parseHistoricalRow(row []string) (design.HistoricalProject, error) {
	c, err := parseConstraintCols(row)
	if err != nil {
		return design.HistoricalProject{}, err
	}
	chosen, err := parseArchetypeCol(row, 4)
	if err != nil {
		return design.HistoricalProject{}, err
	}
	outcome, err := parseFloatCol(row, 5)
	if err != nil || outcome < 0 || outcome > 100 {
		return design.HistoricalProject{}, fmt.Errorf("bad outcome column")
	}
	return design.HistoricalProject{Constraints: c, Chosen: chosen, OutcomeScore: outcome}, nil
}

func parseConstraintCols(row []string) (design.Constraints, error) {
	if len(row) < 4 {
		return design.Constraints{}, fmt.Errorf("row too short")
	}
	area, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return design.Constraints{}, fmt.Errorf("bad area column")
	}
	budget, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return design.Constraints{}, fmt.Errorf("bad budget column")
	}
	c := design.Constraints{
		Area:     area,
		Budget:   budget,
		Climate:  design.Climate(strings.ToLower(strings.TrimSpace(row[2]))),
		Priority: design.Priority(strings.ToLower(strings.TrimSpace(row[3]))),
	}
	if !c.Climate.Valid() {
		return design.Constraints{}, fmt.Errorf("bad climate column")
	}
	if !c.Priority.Valid() {
		return design.Constraints{}, fmt.Errorf("bad priority column")
	}
	return c, nil
}

func parseArchetypeCol(row []string, idx int) (design.Archetype, error) {
	if len(row) <= idx {
		return 0, fmt.Errorf("row too short")
	}
	n, err := strconv.Atoi(strings.TrimSpace(row[idx]))
	if err != nil {
		return 0, fmt.Errorf("bad archetype column")
	}
	arch := design.Archetype(n)
	if !arch.Valid() {
		return 0, fmt.Errorf("archetype id out of range")
	}
	return arch, nil
}

func parseFloatCol(row []string, idx int) (float64, error) {
	if len(row) <= idx {
		return 0, fmt.Errorf("row too short")
	}
	return strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
}
