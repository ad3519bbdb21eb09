// Package export renders a parsed resume as an Excel workbook, the
// spreadsheet counterpart of the JSON response.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"resume-parser/internal/models"
)

const sheetName = "Resume"

// Write renders the resume as an xlsx workbook on w.
func Write(w io.Writer, resume *models.ParsedResume) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	row := 1
	setRow := func(label string, value any) {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), label)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), value)
		row++
	}
	section := func(title string) {
		row++
		cell := fmt.Sprintf("A%d", row)
		f.SetCellValue(sheetName, cell, title)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		row++
	}

	setRow("Full Name", resume.FullName)
	if resume.Email != "" {
		setRow("Email", resume.Email)
	}
	if resume.Phone != "" {
		setRow("Phone", resume.Phone)
	}
	if resume.Location != "" {
		setRow("Location", resume.Location)
	}
	if resume.CurrentJobTitle != "" {
		setRow("Current Job Title", resume.CurrentJobTitle)
	}
	if resume.YearsOfExperience != nil {
		setRow("Years of Experience", *resume.YearsOfExperience)
	}
	if resume.Summary != "" {
		setRow("Summary", resume.Summary)
	}

	if len(resume.WorkExperience) > 0 {
		section("Work Experience")
		for _, exp := range resume.WorkExperience {
			setRow(exp.JobTitle, exp.Company)
			if exp.StartDate != "" || exp.EndDate != "" {
				setRow("", fmt.Sprintf("%s - %s", exp.StartDate, exp.EndDate))
			}
			for _, r := range exp.Responsibilities {
				setRow("", "• "+r)
			}
		}
	}

	if len(resume.Skills) > 0 {
		section("Skills")
		for _, s := range resume.Skills {
			if s.Proficiency != "" {
				setRow(s.Name, s.Proficiency)
			} else {
				setRow(s.Name, "")
			}
		}
	}

	if len(resume.Education) > 0 {
		section("Education")
		for _, edu := range resume.Education {
			detail := edu.Institution
			if edu.GraduationYear != "" {
				detail = fmt.Sprintf("%s (%s)", detail, edu.GraduationYear)
			}
			setRow(edu.Degree, detail)
		}
	}

	if len(resume.Certifications) > 0 {
		section("Certifications")
		for _, cert := range resume.Certifications {
			setRow(cert.Name, cert.IssuingOrganization)
		}
	}

	if len(resume.Languages) > 0 {
		section("Languages")
		setRow("", strings.Join(resume.Languages, ", "))
	}

	if err := f.SetColWidth(sheetName, "A", "A", 28); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "B", 60); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
