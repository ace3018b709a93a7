package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ecodesign/domain/design"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	sheets := map[string][][]interface{}{
		SheetCosts: {
			{"area", "budget", "climate", "priority", "design", "cost"},
			{1000, 50, "moderate", "energy", 0, 1450000.0},
			{1500, 80, "hot", "water", 2, 3100000.0},
			{600, 20, "cold", "materials", 1, 980000.0},
			{"oops", 50, "moderate", "energy", 0, 1450000.0}, // malformed, skipped
		},
		SheetPreferences: {
			{"area", "budget", "climate", "priority", "preferred"},
			{1000, 50, "moderate", "energy", 0},
			{1200, 60, "hot", "water", 2},
		},
		SheetHistorical: {
			{"area", "budget", "climate", "priority", "design", "outcome"},
			{900, 45, "cold", "energy", 0, 78.5},
			{1600, 75, "hot", "water", 2, 88.0},
		},
	}

	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))

	path := filepath.Join(t.TempDir(), "training.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestTrainingSource_Workbook(t *testing.T) {
	src := NewTrainingSource(writeWorkbook(t))

	data, err := src.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, data.Costs, 3, "malformed row should be skipped")
	require.Len(t, data.Preferences, 2)
	require.Len(t, data.Historical, 2)

	first := data.Costs[0]
	assert.Equal(t, 1000, first.Area)
	assert.Equal(t, 50, first.Budget)
	assert.Equal(t, design.ClimateModerate, first.Climate)
	assert.Equal(t, design.PriorityEnergy, first.Priority)
	assert.Equal(t, design.ArchetypeEcoEfficient, first.Archetype)
	assert.InDelta(t, 1450000.0, first.Cost, 1e-6)

	assert.Equal(t, design.ArchetypeRegenerative, data.Historical[1].Chosen)
	assert.InDelta(t, 88.0, data.Historical[1].OutcomeScore, 1e-6)
}

func TestTrainingSource_CSVDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"costs.csv":       "area,budget,climate,priority,design,cost\n1000,50,moderate,energy,0,1450000\n800,30,Cold,materials,1,910000\n",
		"preferences.csv": "area,budget,climate,priority,preferred\n1000,50,moderate,energy,0\n",
		"historical.csv":  "area,budget,climate,priority,design,outcome\n1100,65,hot,water,2,81.5\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	data, err := NewTrainingSource(dir).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, data.Costs, 2)
	assert.Equal(t, design.ClimateCold, data.Costs[1].Climate, "climate parsing is case-insensitive")
	require.Len(t, data.Preferences, 1)
	require.Len(t, data.Historical, 1)
}

func TestTrainingSource_MissingPath(t *testing.T) {
	_, err := NewTrainingSource(filepath.Join(t.TempDir(), "nope.xlsx")).Load(context.Background())
	require.Error(t, err)
}

func TestTrainingSource_RowParsers(t *testing.T) {
	tests := []struct {
		name string
		row  []string
	}{
		{"short row", []string{"1000", "50"}},
		{"bad climate", []string{"1000", "50", "swamp", "energy", "0", "100"}},
		{"bad priority", []string{"1000", "50", "moderate", "speed", "0", "100"}},
		{"archetype out of range", []string{"1000", "50", "moderate", "energy", "7", "100"}},
		{"negative cost", []string{"1000", "50", "moderate", "energy", "0", "-5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCostRow(tt.row)
			assert.Error(t, err)
		})
	}

	sample, err := parseCostRow([]string{" 1000 ", "50", " Moderate ", "energy", "0", "1450000"})
	require.NoError(t, err, "whitespace and case should be tolerated")
	assert.Equal(t, fmt.Sprintf("%d", 1000), fmt.Sprintf("%d", sample.Area))
}
