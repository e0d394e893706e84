package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cityrent/zufang/pkg/models"
)

func sampleResult() *models.FetchResult {
	return &models.FetchResult{
		City: "sh",
		Listings: []models.Listing{
			{Title: "整租·阳光小区", PriceText: "6500", Price: 6500, PriceValid: true, Detail: "浦东 | 80㎡", Page: 1},
			{Title: "合租·梅园", PriceText: "面议", Page: 2},
		},
		Pages: []models.PageResult{
			{Page: 1, Listings: 1},
			{Page: 2, Listings: 1},
		},
	}
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.csv")

	if err := SaveCSV(sampleResult(), path); err != nil {
		t.Fatalf("SaveCSV failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "title" {
		t.Errorf("Unexpected header: %v", rows[0])
	}
	// unparsable prices keep their display text
	if rows[2][2] != "面议" {
		t.Errorf("Expected raw price text in CSV, got %q", rows[2][2])
	}
}

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.json")

	if err := SaveJSON(sampleResult(), path); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	var decoded models.FetchResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(decoded.Listings) != 2 || len(decoded.Pages) != 2 {
		t.Errorf("Unexpected export shape: %+v", decoded)
	}
	if decoded.Listings[1].PriceValid {
		t.Error("Expected missing price to stay missing through export")
	}
}
