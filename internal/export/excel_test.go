package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/homematch-ph/listing-recommender/internal/domain"
)

func sampleResults() (domain.BuyerProfile, []domain.ScoredListing) {
	profile := domain.BuyerProfile{
		BuyerType:         domain.BuyerFirstTime,
		MonthlyIncome:     50000,
		PreferredLocation: "Quezon City",
		BudgetRange:       domain.Budget1to3M,
	}
	results := []domain.ScoredListing{
		{
			Listing:              domain.Listing{ID: "lst-1", Title: "Starter condo", Location: "Quezon City", Price: "₱2,000,000"},
			MatchScore:           88,
			MatchFactors:         []string{"financial-good", "location-perfect"},
			RecommendationReason: "Excellent match for your First Time Buyer profile.",
		},
		{
			Listing:              domain.Listing{ID: "lst-2", Title: "Pasig high-rise", Location: "Pasig", Price: "₱9,500,000"},
			MatchScore:           20,
			RecommendationReason: "Limited match for your First Time Buyer profile.",
		},
	}
	return profile, results
}

func TestBuildWorkbook(t *testing.T) {
	t.Parallel()

	profile, results := sampleResults()
	f, err := BuildWorkbook(profile, results)
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	defer f.Close()

	buyerType, err := f.GetCellValue(summarySheet, "B1")
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if buyerType != domain.BuyerFirstTime {
		t.Errorf("summary buyer type=%q want %q", buyerType, domain.BuyerFirstTime)
	}

	title, err := f.GetCellValue(rankedSheet, "B2")
	if err != nil {
		t.Fatalf("read ranked sheet: %v", err)
	}
	if title != "Starter condo" {
		t.Errorf("rank 1 title=%q want %q", title, "Starter condo")
	}

	score, err := f.GetCellValue(rankedSheet, "E3")
	if err != nil {
		t.Fatalf("read ranked sheet: %v", err)
	}
	if score != "20" {
		t.Errorf("rank 2 score=%q want 20", score)
	}
}

func TestToFile(t *testing.T) {
	t.Parallel()

	profile, results := sampleResults()
	path := filepath.Join(t.TempDir(), "report")
	if err := ToFile(profile, results, path); err != nil {
		t.Fatalf("ToFile: %v", err)
	}

	f, err := excelize.OpenFile(path + ".xlsx")
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(rankedSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 { // header + 2 results
		t.Fatalf("rows=%d want 3", len(rows))
	}
}
