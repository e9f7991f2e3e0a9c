package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type ExcelExporter struct {
	OutputDir string
}

func NewExcelExporter(outputDir string) *ExcelExporter {
	return &ExcelExporter{OutputDir: outputDir}
}

// Export writes one workbook with a Dashboard sheet (totals, window,
// formula) and a Leaderboard sheet.
func (e *ExcelExporter) Export(s Summary) error {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join(e.OutputDir, fmt.Sprintf("leaderboard_%s.xlsx", timestamp))

	f := excelize.NewFile()
	defer f.Close()

	if err := e.createDashboardSheet(f, "Dashboard", s); err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}
	if err := e.createLeaderboardSheet(f, "Leaderboard", s); err != nil {
		return fmt.Errorf("failed to create leaderboard: %w", err)
	}

	_ = f.DeleteSheet("Sheet1")

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save excel file: %w", err)
	}
	return nil
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	return style
}

func totalStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#B4C7E7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	return style
}

func (e *ExcelExporter) createDashboardSheet(f *excelize.File, sheetName string, s Summary) error {
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	hdr := headerStyle(f)
	tot := totalStyle(f)

	f.SetCellValue(sheetName, "A1", "Project:")
	f.SetCellValue(sheetName, "B1", fmt.Sprintf("%s/%s", s.Organization, s.Project))
	f.SetCellValue(sheetName, "A2", "Date From:")
	f.SetCellValue(sheetName, "B2", s.Start.Format("02-01-06"))
	f.SetCellValue(sheetName, "A3", "Date to:")
	f.SetCellValue(sheetName, "B3", s.End.Format("02-01-06"))

	row := 5
	f.SetCellValue(sheetName, cellName(1, row), "Category")
	f.SetCellStyle(sheetName, cellName(1, row), cellName(1, row), hdr)
	f.SetCellValue(sheetName, cellName(2, row), "Total")
	f.SetCellStyle(sheetName, cellName(2, row), cellName(2, row), hdr)
	row++

	type category struct {
		label string
		value int
	}
	categories := []category{
		{"Contributors", s.Totals.Contributors},
		{"Commits", s.Totals.Commits},
		{"PRs Created", s.Totals.PRsCreated},
		{"PRs Merged", s.Totals.PRsMerged},
		{"Reviews", s.Totals.PRsReviewed},
		{"Work Items", s.Totals.WorkItems},
	}
	if s.Builds.Total > 0 {
		categories = append(categories,
			category{"Builds", s.Builds.Total},
			category{"Builds Succeeded", s.Builds.Succeeded},
			category{"Builds Failed", s.Builds.Failed},
		)
	}

	for _, cat := range categories {
		f.SetCellValue(sheetName, cellName(1, row), cat.label)
		f.SetCellValue(sheetName, cellName(2, row), cat.value)
		row++
	}

	row++
	f.SetCellValue(sheetName, cellName(1, row), "Scoring")
	f.SetCellStyle(sheetName, cellName(1, row), cellName(1, row), tot)
	f.SetCellValue(sheetName, cellName(2, row), s.Formula)

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "B", 60)

	return nil
}

func (e *ExcelExporter) createLeaderboardSheet(f *excelize.File, sheetName string, s Summary) error {
	index, err := f.NewSheet(sanitizeSheetName(sheetName))
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	hdr := headerStyle(f)

	headers := []string{
		"Rank",
		"Contributor",
		"Email",
		"Commits",
		"PRs Created",
		"PRs Merged",
		"Reviews",
		"Work Items",
		"Score",
	}
	for col, header := range headers {
		cell := cellName(col+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, hdr)
	}

	for i, entry := range s.Entries {
		row := i + 2
		acc := entry.Contributor

		f.SetCellValue(sheetName, cellName(1, row), entry.Rank)
		f.SetCellValue(sheetName, cellName(2, row), displayName(acc))
		f.SetCellValue(sheetName, cellName(3, row), acc.Email)
		f.SetCellValue(sheetName, cellName(4, row), acc.Commits)
		f.SetCellValue(sheetName, cellName(5, row), acc.PRsCreated)
		f.SetCellValue(sheetName, cellName(6, row), acc.PRsMerged)
		f.SetCellValue(sheetName, cellName(7, row), acc.PRsReviewed)
		f.SetCellValue(sheetName, cellName(8, row), acc.WorkItems)
		f.SetCellValue(sheetName, cellName(9, row), roundScore(entry.Score))
	}

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 35)
	f.SetColWidth(sheetName, "D", "I", 12)

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}

func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", columnLetter(col), row)
}

func columnLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

func sanitizeSheetName(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	name = strings.ReplaceAll(name, "?", "")
	name = strings.ReplaceAll(name, "*", "")
	name = strings.ReplaceAll(name, "[", "(")
	name = strings.ReplaceAll(name, "]", ")")

	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
