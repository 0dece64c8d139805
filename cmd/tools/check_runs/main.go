package main

import (
	"context"
	"log"
	"os"

	"github.com/ProfessionalAIAssistants/DLA/internal/db"
	"github.com/jedib0t/go-pretty/v6/table"
)

func main() {
	ctx := context.Background()
	pool, err := db.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	runs, err := db.NewStore(pool).RecentRuns(ctx, 10)
	if err != nil {
		log.Fatal(err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Run", "Processed", "Created", "Skipped", "Errors", "Started At"})

	for _, r := range runs {
		t.AppendRow(table.Row{r.RunID[:8], r.Processed, r.Created, r.Skipped, r.Errors, r.RunTimestamp.Format("2006-01-02 15:04:05")})
	}
	t.Render()
}
