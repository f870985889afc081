// Package testutil provides shared test infrastructure for the vaxnet engine.
// It holds the golden game dataset types and loaders used by sim/ and cmd/
// test packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldengames.json.
type GoldenDataset struct {
	Games []GoldenGame `json:"games"`
}

// GoldenGame is one fully deterministic game: a scenario file from testdata/,
// an optional policy override and the outcome it must produce.
type GoldenGame struct {
	Name     string        `json:"name"`
	Scenario string        `json:"scenario"`
	Policy   string        `json:"policy"`
	Seed     int64         `json:"seed"`
	Metrics  GoldenMetrics `json:"metrics"`
}

// GoldenMetrics represents the expected outcome of a golden game.
type GoldenMetrics struct {
	Rounds             int    `json:"rounds"`
	EndReason          string `json:"end_reason"`
	TotalCost          int    `json:"total_cost"`
	Rank               string `json:"rank"`
	VaccinationsUsed   int    `json:"vaccinations_used"`
	InfectionsOccurred int    `json:"infections_occurred"`
	PeakInfected       int    `json:"peak_infected"`
	PeakRound          int    `json:"peak_round"`
}

// TestdataPath resolves name inside the repo root testdata/ directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", name)
}

// LoadGoldenDataset loads the golden games from the testdata directory.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()
	data, err := os.ReadFile(TestdataPath(t, "goldengames.json"))
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Games) == 0 {
		t.Fatal("Golden dataset has no games")
	}
	return &dataset
}
