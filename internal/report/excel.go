// Package report exports persisted batch reports to reviewer-facing
// spreadsheets.
package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ProfessionalAIAssistants/DLA/internal/models"
	"github.com/ProfessionalAIAssistants/DLA/internal/qualify"
	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders a BatchReport as a two-sheet workbook: a Summary sheet
// with the run metadata and criteria snapshot, and an Outcomes sheet with
// one row per processed document.
func WriteXLSX(rep *models.BatchReport, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return err
	}

	rows := [][]any{
		{"Run ID", rep.RunID},
		{"Run Timestamp", rep.RunTimestamp.Format("2006-01-02 15:04:05 MST")},
		{"Processed", rep.Counts.Processed},
		{"Created", rep.Counts.Created},
		{"Skipped", rep.Counts.Skipped},
		{"Errors", rep.Counts.Errors},
	}
	rows = append(rows, criteriaRows(rep.CriteriaSnapshot)...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return err
		}
	}

	const outcomes = "Outcomes"
	if _, err := f.NewSheet(outcomes); err != nil {
		return err
	}
	header := []any{"Filename", "Status", "Skip Reasons", "Created IDs", "Error"}
	if err := f.SetSheetRow(outcomes, "A1", &header); err != nil {
		return err
	}
	for i, o := range rep.Outcomes {
		row := []any{
			o.Filename,
			string(o.Status),
			strings.Join(o.SkipReasons, "; "),
			strings.Join(o.CreatedEntityIDs, "; "),
			o.ErrorDetail,
		}
		if err := f.SetSheetRow(outcomes, "A"+strconv.Itoa(i+2), &row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// criteriaRows tolerates both forms the snapshot takes: the live
// *qualify.Criteria during a run, and the generic map it becomes after a
// JSON round trip through the reports folder.
func criteriaRows(snapshot any) [][]any {
	criteria, ok := snapshot.(*qualify.Criteria)
	if !ok {
		data, err := json.Marshal(snapshot)
		if err != nil {
			return nil
		}
		criteria = &qualify.Criteria{}
		if err := json.Unmarshal(data, criteria); err != nil {
			return nil
		}
	}
	if criteria == nil {
		return nil
	}
	return [][]any{
		{"Min Delivery Days", criteria.MinDeliveryDays},
		{"ISO Required", criteria.ISORequired},
		{"Sampling Required", criteria.SamplingRequired},
		{"Inspection Point", criteria.InspectionPoint},
		{"Manufacturer Allowlist", strings.Join(criteria.ManufacturerAllowlist, ", ")},
	}
}
