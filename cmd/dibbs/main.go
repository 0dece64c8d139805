package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/ProfessionalAIAssistants/DLA/internal/accounts"
	"github.com/ProfessionalAIAssistants/DLA/internal/batch"
	"github.com/ProfessionalAIAssistants/DLA/internal/crm"
	"github.com/ProfessionalAIAssistants/DLA/internal/db"
	"github.com/ProfessionalAIAssistants/DLA/internal/extract"
	"github.com/ProfessionalAIAssistants/DLA/internal/qualify"
	"github.com/jedib0t/go-pretty/v6/table"
)

func main() {
	pending := flag.String("pending", "To Process", "folder of pending solicitation PDFs")
	automation := flag.String("automation", "Automation", "destination for created solicitations")
	reviewed := flag.String("reviewed", "Reviewed", "destination for skipped and errored solicitations")
	reports := flag.String("reports", "Output", "folder for run reports")
	criteriaPath := flag.String("criteria", "", "criteria YAML (defaults to embedded configuration)")
	flag.Parse()

	ctx := context.Background()

	criteria, err := qualify.LoadCriteria(*criteriaPath)
	if err != nil {
		log.Fatalf("Failed to load criteria: %v", err)
	}

	pool, err := db.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	store := db.NewStore(pool)
	processor := &batch.Processor{
		Extractor: extract.PDFExtractor{},
		Criteria:  criteria,
		Resolver:  accounts.NewResolver(store),
		Creator:   crm.NewCreator(store),
		Recorder:  store,
		Dirs: batch.Dirs{
			Pending:    *pending,
			Automation: *automation,
			Reviewed:   *reviewed,
			Reports:    *reports,
		},
	}

	report, err := processor.Run(ctx)
	if err != nil {
		log.Fatalf("Batch run failed: %v", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"File", "Status", "Detail"})
	for _, o := range report.Outcomes {
		detail := o.ErrorDetail
		if o.Status == "Skipped" {
			detail = strings.Join(o.SkipReasons, "; ")
		} else if o.Status == "Created" {
			detail = strings.Join(o.CreatedEntityIDs, "; ")
		}
		t.AppendRow(table.Row{o.Filename, o.Status, detail})
	}
	t.AppendFooter(table.Row{"", "Processed", report.Counts.Processed})
	t.Render()
}
