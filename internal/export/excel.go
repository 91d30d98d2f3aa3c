package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/homematch-ph/listing-recommender/internal/domain"
)

const (
	summarySheet = "Summary"
	rankedSheet  = "Ranked Listings"
)

// BuildWorkbook assembles an XLSX report of ranked results for a buyer
// profile. The caller owns the returned file and must Close it.
func BuildWorkbook(profile domain.BuyerProfile, results []domain.ScoredListing) (*excelize.File, error) {
	f := excelize.NewFile()

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(rankedSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create ranked sheet: %w", err)
	}

	if err := fillSummarySheet(f, profile, results); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("fill summary sheet: %w", err)
	}
	if err := fillRankedSheet(f, results); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("fill ranked sheet: %w", err)
	}
	return f, nil
}

// ToFile saves the report to disk, appending .xlsx when missing.
func ToFile(profile domain.BuyerProfile, results []domain.ScoredListing, path string) error {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	f, err := BuildWorkbook(profile, results)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func fillSummarySheet(f *excelize.File, profile domain.BuyerProfile, results []domain.ScoredListing) error {
	_ = f.SetColWidth(summarySheet, "A", "A", 24)
	_ = f.SetColWidth(summarySheet, "B", "B", 40)

	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	topScore := 0
	if len(results) > 0 {
		topScore = results[0].MatchScore
	}

	rows := [][2]any{
		{"Buyer type", profile.BuyerType},
		{"Preferred location", profile.PreferredLocation},
		{"Budget range", profile.BudgetRange},
		{"Monthly income", float64(profile.MonthlyIncome)},
		{"Listings ranked", len(results)},
		{"Top match score", topScore},
	}
	for i, row := range rows {
		labelCell := fmt.Sprintf("A%d", i+1)
		if err := f.SetCellValue(summarySheet, labelCell, row[0]); err != nil {
			return err
		}
		_ = f.SetCellStyle(summarySheet, labelCell, labelCell, labelStyle)
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), row[1]); err != nil {
			return err
		}
	}
	return nil
}

func fillRankedSheet(f *excelize.File, results []domain.ScoredListing) error {
	headers := []string{"Rank", "Title", "Location", "Price", "Match Score", "Recommendation", "Factors"}
	widths := []float64{8, 32, 28, 16, 12, 44, 36}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, h := range headers {
		col := string(rune('A' + i))
		cell := col + "1"
		if err := f.SetCellValue(rankedSheet, cell, h); err != nil {
			return err
		}
		_ = f.SetCellStyle(rankedSheet, cell, cell, headerStyle)
		_ = f.SetColWidth(rankedSheet, col, col, widths[i])
	}

	for i, sl := range results {
		row := i + 2
		values := []any{
			i + 1,
			sl.Title,
			sl.Location,
			sl.Price,
			sl.MatchScore,
			sl.RecommendationReason,
			strings.Join(sl.MatchFactors, ", "),
		}
		for j, v := range values {
			cell := fmt.Sprintf("%s%d", string(rune('A'+j)), row)
			if err := f.SetCellValue(rankedSheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
