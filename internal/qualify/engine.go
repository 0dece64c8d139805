package qualify

import (
	"fmt"
	"strings"

	"github.com/ProfessionalAIAssistants/DLA/internal/models"
)

// Decision is the outcome of evaluating one record against the run criteria.
// Automate is true only when Reasons is empty.
type Decision struct {
	Automate bool
	Reasons  []string
}

// Evaluate checks every criterion independently and accumulates a reason for
// each one that fails. It deliberately never short-circuits: a skipped
// document's report entry must explain itself completely without anyone
// re-reading the source PDF.
func Evaluate(rec *models.RFQRecord, criteria *Criteria) Decision {
	var reasons []string

	if rec.DeliveryDays == nil {
		reasons = append(reasons, "missing delivery days information")
	} else if *rec.DeliveryDays < criteria.MinDeliveryDays {
		reasons = append(reasons, fmt.Sprintf("delivery days too short: %d days (minimum: %d)",
			*rec.DeliveryDays, criteria.MinDeliveryDays))
	}

	if criteria.ISORequired != Any && rec.ISORequired != criteria.ISORequired {
		reasons = append(reasons, fmt.Sprintf("ISO mismatch: requires %s, RFQ has %s",
			criteria.ISORequired, valueOrUnknown(rec.ISORequired)))
	}

	if criteria.SamplingRequired != Any && rec.Sampling != criteria.SamplingRequired {
		reasons = append(reasons, fmt.Sprintf("sampling mismatch: requires %s, RFQ has %s",
			criteria.SamplingRequired, valueOrUnknown(rec.Sampling)))
	}

	if criteria.InspectionPoint != Any {
		if !strings.Contains(strings.ToLower(rec.Inspection), strings.ToLower(criteria.InspectionPoint)) {
			reasons = append(reasons, fmt.Sprintf("inspection point mismatch: requires substring %s, RFQ has %q",
				criteria.InspectionPoint, rec.Inspection))
		}
	}

	if reason := checkManufacturer(rec.Manufacturer, criteria.ManufacturerAllowlist); reason != "" {
		reasons = append(reasons, reason)
	}

	if missing := missingCriticalFields(rec); len(missing) > 0 {
		reasons = append(reasons, "missing critical information: "+strings.Join(missing, ", "))
	}

	return Decision{Automate: len(reasons) == 0, Reasons: reasons}
}

// checkManufacturer passes when the allowlist is empty or any entry appears
// case-insensitively within the record's manufacturer block. A missing
// manufacturer is its own distinct failure when a filter is configured.
func checkManufacturer(manufacturer string, allowlist []string) string {
	if len(allowlist) == 0 {
		return ""
	}
	if strings.TrimSpace(manufacturer) == "" {
		return "missing manufacturer information"
	}
	lower := strings.ToLower(manufacturer)
	for _, entry := range allowlist {
		entry = strings.TrimSpace(entry)
		if entry != "" && strings.Contains(lower, strings.ToLower(entry)) {
			return ""
		}
	}
	return fmt.Sprintf("manufacturer not in allowlist: %q", truncate(manufacturer, 50))
}

// missingCriticalFields lists identifier fields without which a created
// entity would be meaningless, regardless of the business criteria.
func missingCriticalFields(rec *models.RFQRecord) []string {
	var missing []string
	if strings.TrimSpace(rec.RequestNumber) == "" {
		missing = append(missing, "request_number")
	}
	if strings.TrimSpace(rec.NSN) == "" {
		missing = append(missing, "nsn")
	}
	return missing
}

func valueOrUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
