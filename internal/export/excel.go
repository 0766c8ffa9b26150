package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/talentsift/talentsift/internal/candidate"
	"github.com/talentsift/talentsift/internal/jobdesc"
	"github.com/talentsift/talentsift/internal/ranking"
)

// Report bundles everything one screening run produced.
type Report struct {
	JobTitle   string
	Candidates []*candidate.Candidate
	Results    []*ranking.MatchResult
	Summaries  []string
	Reqs       *jobdesc.Requirements
}

// WriteExcel writes the run report as a workbook with a summary sheet, the
// ranked results and the full candidate table.
func WriteExcel(report Report, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	summarySheet := "Summary"
	resultsSheet := "Ranked Candidates"
	candidatesSheet := "All Candidates"

	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(resultsSheet)
	f.NewSheet(candidatesSheet)

	if err := writeSummarySheet(f, summarySheet, report); err != nil {
		return fmt.Errorf("writing summary sheet: %w", err)
	}
	if err := writeResultsSheet(f, resultsSheet, report.Results); err != nil {
		return fmt.Errorf("writing results sheet: %w", err)
	}
	if err := writeCandidatesSheet(f, candidatesSheet, report.Candidates); err != nil {
		return fmt.Errorf("writing candidates sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheetName string, report Report) error {
	f.SetColWidth(sheetName, "A", "A", 28)
	f.SetColWidth(sheetName, "B", "B", 70)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	row := 1
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Resume Screening Report")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row += 2

	setLabeled := func(label string, value any) {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), label)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), value)
		row++
	}

	setLabeled("Job Title:", report.JobTitle)
	setLabeled("Generated:", time.Now().Format("2006-01-02 15:04:05"))
	setLabeled("Candidates Parsed:", len(report.Candidates))
	setLabeled("Candidates Ranked:", len(report.Results))
	if report.Reqs != nil {
		setLabeled("Minimum Experience:", report.Reqs.MinimumExperienceYears)
		setLabeled("Required Skills:", strings.Join(report.Reqs.RequiredSkills, ", "))
	}

	if len(report.Summaries) > 0 {
		row++
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Pre-Screening")
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		row++
		for _, summary := range report.Summaries {
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), summary)
			row++
		}
	}

	return nil
}

func writeResultsSheet(f *excelize.File, sheetName string, results []*ranking.MatchResult) error {
	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 25)
	f.SetColWidth(sheetName, "C", "E", 15)
	f.SetColWidth(sheetName, "F", "G", 50)
	f.SetColWidth(sheetName, "H", "I", 20)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	headers := []string{"Rank", "Name", "Match %", "Semantic", "Final Score",
		"Strengths", "Gaps", "Recommendation", "Interview Priority"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, "A1", "I1", headerStyle)

	for i, res := range results {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), res.Rank)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), res.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), res.MatchPercentage)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), res.SemanticScore)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), res.FinalScore)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), res.Strengths)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), res.Gaps)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), res.Recommendation)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), res.InterviewPriority)
	}

	return nil
}

func writeCandidatesSheet(f *excelize.File, sheetName string, pool []*candidate.Candidate) error {
	f.SetColWidth(sheetName, "A", "A", 38)
	f.SetColWidth(sheetName, "B", "M", 22)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	for i, header := range candidateHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, "A1", "M1", headerStyle)

	for i, c := range pool {
		row := i + 2
		values := []string{
			c.ID, c.Name, c.Email, c.Phone, c.Experience, c.TechStack,
			c.CurrentRole, c.Education, c.KeyProjects, c.Certifications,
			c.DomainExpertise, c.Filename, c.SubmissionDate,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	return nil
}
