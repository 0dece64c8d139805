package batch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ProfessionalAIAssistants/DLA/internal/extract"
	"github.com/ProfessionalAIAssistants/DLA/internal/models"
	"github.com/ProfessionalAIAssistants/DLA/internal/qualify"
	"github.com/google/uuid"
)

// AccountResolver resolves a buying organization to its hierarchy node.
type AccountResolver interface {
	Resolve(ctx context.Context, office, division string) (*models.Account, error)
}

// EntityCreator is the downstream persistence collaborator for qualified
// records. It must return whatever ids were created before a failure.
type EntityCreator interface {
	CreateEntities(ctx context.Context, rec *models.RFQRecord, accountID string) ([]string, error)
}

// RunRecorder persists the finished report; nil disables persistence.
type RunRecorder interface {
	SaveRun(ctx context.Context, report *models.BatchReport) error
}

// Dirs are the filesystem locations of one run.
type Dirs struct {
	Pending    string // incoming PDFs, read once at run start
	Automation string // created documents, filed under nsn/request_number
	Reviewed   string // skipped and errored documents
	Reports    string // JSON report + CSV summary
}

// Processor sweeps the pending folder and runs the per-document pipeline:
// extract, evaluate, resolve, create, record. Documents are processed
// strictly sequentially: the resolver's find-then-create sequence is not
// safe under concurrent execution against the same store, and batch volumes
// are small enough that correctness wins over throughput.
type Processor struct {
	Extractor extract.TextExtractor
	Criteria  *qualify.Criteria
	Resolver  AccountResolver
	Creator   EntityCreator
	Recorder  RunRecorder
	Dirs      Dirs

	now func() time.Time
}

// Run processes every pending PDF and returns the batch report. A failure on
// one document is recorded as an Error outcome and the sweep continues; the
// only run-level failures are an unreadable pending folder and (upstream of
// this call) an unloadable criteria file.
func (p *Processor) Run(ctx context.Context) (*models.BatchReport, error) {
	entries, err := os.ReadDir(p.Dirs.Pending)
	if err != nil {
		return nil, fmt.Errorf("reading pending folder: %w", err)
	}

	report := &models.BatchReport{
		RunID:            uuid.NewString(),
		RunTimestamp:     p.timeNow(),
		CriteriaSnapshot: p.Criteria,
		Outcomes:         []models.ProcessingOutcome{},
	}

	log.Printf("Starting batch run %s over %s", report.RunID, p.Dirs.Pending)

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		outcome, rec := p.processDocument(ctx, entry.Name())
		report.Outcomes = append(report.Outcomes, outcome)
		p.disposeFile(entry.Name(), outcome.Status, rec)
		log.Printf("%s: %s", entry.Name(), outcome.Status)
	}

	report.Tally()

	if err := WriteReport(report, p.Dirs.Reports); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	if p.Recorder != nil {
		if err := p.Recorder.SaveRun(ctx, report); err != nil {
			return nil, fmt.Errorf("persisting run: %w", err)
		}
	}

	log.Printf("Batch run %s complete: %d processed, %d created, %d skipped, %d errors",
		report.RunID, report.Counts.Processed, report.Counts.Created,
		report.Counts.Skipped, report.Counts.Errors)

	return report, nil
}

// processDocument runs the pipeline for one file. It never returns an error:
// every failure mode is folded into the outcome so the sweep continues.
func (p *Processor) processDocument(ctx context.Context, filename string) (models.ProcessingOutcome, *models.RFQRecord) {
	outcome := models.ProcessingOutcome{Filename: filename}

	content, err := os.ReadFile(filepath.Join(p.Dirs.Pending, filename))
	if err != nil {
		outcome.Status = models.StatusError
		outcome.ErrorDetail = fmt.Sprintf("reading file: %v", err)
		return outcome, nil
	}

	doc, err := p.Extractor.ExtractDocument(content)
	if err != nil {
		outcome.Status = models.StatusError
		outcome.ErrorDetail = fmt.Sprintf("extracting text: %v", err)
		return outcome, nil
	}

	rec := extract.ExtractRecord(doc)
	rec.SolicitationFile = filename

	decision := qualify.Evaluate(rec, p.Criteria)
	if !decision.Automate {
		outcome.Status = models.StatusSkipped
		outcome.SkipReasons = decision.Reasons
		return outcome, rec
	}

	account, err := p.Resolver.Resolve(ctx, rec.Office, rec.Division)
	if err != nil {
		outcome.Status = models.StatusError
		outcome.ErrorDetail = fmt.Sprintf("resolving account: %v", err)
		return outcome, rec
	}

	ids, err := p.Creator.CreateEntities(ctx, rec, account.ID)
	// Ids created before a partial failure are retained for manual cleanup.
	outcome.CreatedEntityIDs = ids
	if err != nil {
		outcome.Status = models.StatusError
		outcome.ErrorDetail = fmt.Sprintf("creating entities: %v", err)
		return outcome, rec
	}

	outcome.Status = models.StatusCreated
	return outcome, rec
}

// disposeFile relocates a processed document: created solicitations file
// under automation/<nsn>/<request_number>/, everything else goes to the
// reviewed folder. A move failure is logged and otherwise ignored; the
// outcome is already recorded.
func (p *Processor) disposeFile(filename string, status models.OutcomeStatus, rec *models.RFQRecord) {
	if p.Dirs.Automation == "" && p.Dirs.Reviewed == "" {
		return
	}

	src := filepath.Join(p.Dirs.Pending, filename)
	dstDir := p.Dirs.Reviewed
	if status == models.StatusCreated && rec != nil {
		dstDir = filepath.Join(p.Dirs.Automation, rec.NSN, rec.RequestNumber)
	}
	if dstDir == "" {
		return
	}

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		log.Printf("Could not create %s: %v", dstDir, err)
		return
	}
	if err := os.Rename(src, filepath.Join(dstDir, filename)); err != nil {
		log.Printf("Could not move %s to %s: %v", filename, dstDir, err)
	}
}

func (p *Processor) timeNow() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now().UTC()
}
