package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/ProfessionalAIAssistants/DLA/internal/models"
	"github.com/ProfessionalAIAssistants/DLA/internal/report"
)

func main() {
	in := flag.String("in", "", "path to a run report JSON")
	out := flag.String("out", "", "destination .xlsx (defaults to the input name)")
	flag.Parse()

	if *in == "" {
		log.Fatal("usage: export_report -in <report.json> [-out <report.xlsx>]")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("Failed to read report: %v", err)
	}

	var rep models.BatchReport
	if err := json.Unmarshal(data, &rep); err != nil {
		log.Fatalf("Failed to parse report: %v", err)
	}

	dest := *out
	if dest == "" {
		dest = strings.TrimSuffix(*in, ".json") + ".xlsx"
	}

	if err := report.WriteXLSX(&rep, dest); err != nil {
		log.Fatalf("Failed to write workbook: %v", err)
	}
	log.Printf("Wrote %s", dest)
}
