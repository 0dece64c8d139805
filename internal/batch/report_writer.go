package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProfessionalAIAssistants/DLA/internal/models"
)

// WriteReport serializes the finished report to the reports folder: the full
// JSON document plus a per-document CSV summary for reviewers. The JSON is
// written to a temp file and renamed so a crash never leaves a readable
// half-report, and the report is never mutated after this point.
func WriteReport(report *models.BatchReport, dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	stamp := report.RunTimestamp.Format("2006-01-02_15-04-05")

	if err := writeJSONAtomic(report, filepath.Join(dir, stamp+"_report.json")); err != nil {
		return err
	}
	return writeCSVSummary(report, filepath.Join(dir, stamp+"_summary.csv"))
}

func writeJSONAtomic(report *models.BatchReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func writeCSVSummary(report *models.BatchReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Filename", "Status", "Skip Reasons", "Created IDs", "Error"}); err != nil {
		return err
	}
	for _, o := range report.Outcomes {
		row := []string{
			o.Filename,
			string(o.Status),
			strings.Join(o.SkipReasons, "; "),
			strings.Join(o.CreatedEntityIDs, "; "),
			o.ErrorDetail,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
