package extract

import (
	"math"
	"strconv"
	"strings"

	"github.com/ProfessionalAIAssistants/DLA/internal/models"
)

// TableSchema declares the shape of a positioned table: the ordered column
// names as they appear on the header line, and how many layout lines sit
// between the header and the first data row. A multi-word column name spans
// several header tokens but still maps to exactly one whitespace-delimited
// data token, so a column's data index is simply its ordinal in Columns.
type TableSchema struct {
	Columns   []string
	SkipLines int
}

var paymentHistorySchema = TableSchema{
	Columns:   []string{"CAGE", "Contract Number", "Quantity", "Unit Cost", "AWD Date", "Surplus Material"},
	SkipLines: 2,
}

var unitQuantitySchema = TableSchema{
	Columns: []string{"CLIN", "PR", "PRLI", "UI", "QUANTITY", "UNIT PRICE", "TOTAL PRICE"},
}

func (s TableSchema) headerWords() []string {
	var words []string
	for _, col := range s.Columns {
		words = append(words, strings.Fields(col)...)
	}
	return words
}

// ColumnIndex returns the whitespace-token index of a column in a data row.
func (s TableSchema) ColumnIndex(name string) int {
	for i, col := range s.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// findHeader returns the index of the first line whose tokens contain the
// schema's header words as a contiguous run, or -1.
func (s TableSchema) findHeader(lines []string) int {
	want := s.headerWords()
	for i, line := range lines {
		if containsRun(strings.Fields(line), want) {
			return i
		}
	}
	return -1
}

func containsRun(tokens, want []string) bool {
	if len(want) == 0 || len(tokens) < len(want) {
		return false
	}
	for start := 0; start+len(want) <= len(tokens); start++ {
		matched := true
		for k, w := range want {
			if tokens[start+k] != w {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// dataRows slices the lines following the header into token rows. The table
// ends at the first blank line or at a line whose leading word carries no
// digit (a following section heading). Short rows are kept; consumers
// bounds-check the columns they read so a truncated row skips itself.
func (s TableSchema) dataRows(lines []string, headerIdx int) [][]string {
	start := headerIdx + 1 + s.SkipLines
	if start > len(lines) {
		return nil
	}

	var rows [][]string
	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			break
		}
		tokens := strings.Fields(trimmed)
		if !strings.ContainsAny(tokens[0], "0123456789") {
			break
		}
		rows = append(rows, tokens)
	}
	return rows
}

// ParsePaymentHistory extracts the procurement-history table. A document
// without the recognized header yields the needs-review sentinel; an empty
// slice of entries with NeedsReview false means the table was present and
// confirmed empty. Rows that fail numeric parsing are dropped individually.
func ParsePaymentHistory(lines []string) models.PaymentHistory {
	headerIdx := paymentHistorySchema.findHeader(lines)
	if headerIdx < 0 {
		return models.PaymentHistory{NeedsReview: true}
	}

	qtyIdx := paymentHistorySchema.ColumnIndex("Quantity")
	costIdx := paymentHistorySchema.ColumnIndex("Unit Cost")
	dateIdx := paymentHistorySchema.ColumnIndex("AWD Date")

	entries := []models.PaymentEntry{}
	for _, row := range paymentHistorySchema.dataRows(lines, headerIdx) {
		if dateIdx >= len(row) {
			continue
		}
		qty, err := strconv.ParseFloat(row[qtyIdx], 64)
		if err != nil {
			continue
		}
		cost, err := strconv.ParseFloat(strings.TrimPrefix(row[costIdx], "$"), 64)
		if err != nil {
			continue
		}
		entries = append(entries, models.PaymentEntry{
			Quantity:  int(math.Round(qty)),
			UnitCost:  math.Round(cost*100) / 100,
			AwardDate: row[dateIdx],
		})
	}

	return models.PaymentHistory{Entries: entries}
}

// ParseUnitQuantity extracts the unit of issue and solicited quantity from
// the CLIN pricing table. Quantity comes back nil when the table or a
// parseable value is absent; zero is reserved for a literal zero quantity.
func ParseUnitQuantity(lines []string) (string, *int) {
	headerIdx := unitQuantitySchema.findHeader(lines)
	if headerIdx < 0 {
		return "", nil
	}

	uiIdx := unitQuantitySchema.ColumnIndex("UI")
	qtyIdx := unitQuantitySchema.ColumnIndex("QUANTITY")

	rows := unitQuantitySchema.dataRows(lines, headerIdx)
	if len(rows) == 0 {
		return "", nil
	}

	row := rows[0]
	if qtyIdx >= len(row) {
		return "", nil
	}

	unit := row[uiIdx]
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, row[qtyIdx])

	qty, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || qty < 0 {
		return unit, nil
	}
	rounded := int(math.Round(qty))
	return unit, &rounded
}
