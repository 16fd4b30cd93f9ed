// Package export writes comparison results to CSV and XLSX files.
package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/nexus-group/quote-intel/internal/model"
	"github.com/nexus-group/quote-intel/internal/money"
)

// comparisonColumns defines the ordered comparison output columns.
var comparisonColumns = []string{
	"Rank",
	"Vendor",
	"Nexus Trust Score",
	"Total Landed Cost (USD)",
	"Risk Level",
	"Cost Score",
	"Quality Score",
	"Speed Score",
	"Risk Score",
}

// WriteComparisonCSV writes a ranked comparison as a CSV file.
func WriteComparisonCSV(result model.ComparisonResult, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "export: create csv file")
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(comparisonColumns); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}

	for _, v := range result.Vendors {
		if err := w.Write(buildComparisonRow(v)); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}

	w.Flush()
	return eris.Wrap(w.Error(), "export: flush csv")
}

// buildComparisonRow maps a RankedVendor to a CSV row.
func buildComparisonRow(v model.RankedVendor) []string {
	return []string{
		strconv.Itoa(v.Rank),
		v.VendorName,
		formatScore(v.NexusTrustScore),
		money.FormatUSD(v.TotalLandedCost),
		string(v.RiskLevel),
		formatScore(v.ScoreBreakdown.CostScore),
		formatScore(v.ScoreBreakdown.QualityScore),
		formatScore(v.ScoreBreakdown.SpeedScore),
		formatScore(v.ScoreBreakdown.RiskScore),
	}
}

func formatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', 1, 64)
}

// WriteComparisonXLSX writes a ranked comparison as an XLSX workbook with
// a ranking sheet and a recommendation summary sheet.
func WriteComparisonXLSX(result model.ComparisonResult, outputPath string) error {
	f := xlsx.NewFile()

	sheet, err := f.AddSheet("Comparison")
	if err != nil {
		return eris.Wrap(err, "export: add comparison sheet")
	}

	header := sheet.AddRow()
	for _, col := range comparisonColumns {
		header.AddCell().SetString(col)
	}

	for _, v := range result.Vendors {
		row := sheet.AddRow()
		row.AddCell().SetInt(v.Rank)
		row.AddCell().SetString(v.VendorName)
		row.AddCell().SetFloatWithFormat(v.NexusTrustScore, "0.0")
		row.AddCell().SetFloatWithFormat(v.TotalLandedCost, "#,##0.00")
		row.AddCell().SetString(string(v.RiskLevel))
		row.AddCell().SetFloatWithFormat(v.ScoreBreakdown.CostScore, "0.0")
		row.AddCell().SetFloatWithFormat(v.ScoreBreakdown.QualityScore, "0.0")
		row.AddCell().SetFloatWithFormat(v.ScoreBreakdown.SpeedScore, "0.0")
		row.AddCell().SetFloatWithFormat(v.ScoreBreakdown.RiskScore, "0.0")
	}

	summary, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}
	addSummaryRow(summary, "Recommended Vendor", result.Comparison.RecommendedVendor)
	addSummaryRow(summary, "Justification", result.Comparison.RecommendationJustification)
	addSummaryRow(summary, "Savings vs Most Expensive", money.FormatUSD(result.Comparison.SavingsVsMostExpensive))

	return eris.Wrap(f.Save(outputPath), "export: save xlsx file")
}

func addSummaryRow(sheet *xlsx.Sheet, label, value string) {
	row := sheet.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetString(value)
}
