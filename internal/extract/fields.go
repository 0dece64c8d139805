package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ProfessionalAIAssistants/DLA/internal/models"
)

// The DIBBs solicitation layout is stable enough that each field has its own
// targeted pattern. Every pattern is applied independently: one field failing
// to match never prevents the others from being extracted, and a miss always
// leaves the field at its absent marker.
var (
	requestNumberRe  = regexp.MustCompile(`1\. REQUEST NO\.\s*(\S+)`)
	purchaseNumberRe = regexp.MustCompile(`3\.\s*REQUISITION/PURCHASE REQUEST NO\.\s*(\S+)`)
	nsnFscRe         = regexp.MustCompile(`NSN/FSC:\s*(\d+)/(\d+)`)
	nsnMaterialRe    = regexp.MustCompile(`NSN/MATERIAL:\s*(\d+)`)
	deliveryDaysRe   = regexp.MustCompile(`6\. DELIVER BY\s*\S*\s*(\d+)`)
	fobRe            = regexp.MustCompile(`FOB:\s*(\w+)`)
	isoRe            = regexp.MustCompile(`\bISO\b`)
	samplingRe       = regexp.MustCompile(`\bSAMPLING\b`)
	inspectionRe     = regexp.MustCompile(`INSPECTION\s*POINT:\s*(\w+)`)
	descriptionRe    = regexp.MustCompile(`ITEM\s*DESCRIPTION\s*(.*)`)
	manufacturerRe   = regexp.MustCompile(`(?m)^(.+?\s+\w{5}\s+P/N\s+.+)$`)
	partNumberRe     = regexp.MustCompile(`P/N\s+(\S+)`)
	packagingRe      = regexp.MustCompile(`(?s)PKGING DATA - (.+?)(?:\n\s*\n|\z)`)
	milStdRe         = regexp.MustCompile(`MIL-STD-[^\s]*`)
	bidDateRe        = regexp.MustCompile(`(\d{4})\s+([A-Za-z]{3})\s+(\d{1,2})`)
	buyerBlockRe     = regexp.MustCompile(`(?mi)^(DLA.*)\n(.*)\n(.*)\n(.*)\n(USA)\s*\nName:\s*(.*?)\s+Buyer\s*Code:\s*(\w+)\s+Tel:\s*(.*?)\s+(?:Fax:\s*([\d-]+)\s+)?Email:\s*(\S+@\S+)`)
)

// ExtractRecord builds an RFQRecord from a document's raw text and tables.
// It never fails: whatever cannot be parsed stays at its absent marker so
// qualification can name exactly what is missing.
func ExtractRecord(doc *Document) *models.RFQRecord {
	rec := &models.RFQRecord{}

	rec.RequestNumber = firstGroup(requestNumberRe.FindStringSubmatch(doc.Text), 1)
	rec.PurchaseNumber = firstGroup(purchaseNumberRe.FindStringSubmatch(doc.Text), 1)
	rec.NSN, rec.FSC = findNSNAndFSC(doc.Text)
	rec.DeliveryDays = findDeliveryDays(doc.Text)
	rec.FOBTerms = firstGroup(fobRe.FindStringSubmatch(doc.Text), 1)
	rec.ISORequired = yesNo(isoRe.MatchString(doc.Text))
	rec.Sampling = yesNo(samplingRe.MatchString(doc.Text))
	rec.Inspection = firstGroup(inspectionRe.FindStringSubmatch(doc.Text), 1)
	rec.Description = firstGroup(descriptionRe.FindStringSubmatch(doc.Text), 1)
	rec.Manufacturer = findManufacturer(doc.Text)
	rec.PartNumber = firstGroup(partNumberRe.FindStringSubmatch(rec.Manufacturer), 1)
	rec.Packaging = normalizeSpace(firstGroup(packagingRe.FindStringSubmatch(doc.Text), 1))
	rec.PackageType = findPackageType(doc.Text)
	rec.OpenDate, rec.CloseDate = findBidDates(doc.Text)

	findBuyer(doc.Text, rec)

	rec.Unit, rec.Quantity = ParseUnitQuantity(doc.Lines)
	rec.PaymentHistory = ParsePaymentHistory(doc.Lines)

	return rec
}

// findNSNAndFSC handles both NSN layouts. The NSN/FSC form carries the FSC
// prefix separately; the NSN/MATERIAL form omits it and gasket-class items
// get the 5331 prefix unless already present.
func findNSNAndFSC(text string) (string, string) {
	if m := nsnFscRe.FindStringSubmatch(text); m != nil {
		fsc := m[2]
		return fsc + m[1], fsc
	}
	if m := nsnMaterialRe.FindStringSubmatch(text); m != nil {
		nsn := m[1]
		if !strings.HasPrefix(nsn, "5331") && !strings.HasPrefix(nsn, "5330") {
			nsn = "5331" + nsn
		}
		return nsn, ""
	}
	return "", ""
}

func findDeliveryDays(text string) *int {
	m := deliveryDaysRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	days, err := strconv.Atoi(m[1])
	if err != nil || days < 0 {
		return nil
	}
	return &days
}

// findManufacturer collects every approved-source line of the form
// "<manufacturer> <CAGE> P/N <part>"; multiple sources are newline-joined.
func findManufacturer(text string) string {
	matches := manufacturerRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return ""
	}
	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, strings.TrimSpace(m[1]))
	}
	return strings.Join(lines, "\n")
}

func findPackageType(text string) string {
	if strings.Contains(text, "ASTM") {
		return "ASTM"
	}
	if m := milStdRe.FindString(text); m != "" {
		return strings.ReplaceAll(m, ",", "")
	}
	return ""
}

// findBidDates takes the first two "YYYY MMM D" dates in the document as the
// bid open and close dates.
func findBidDates(text string) (string, string) {
	matches := bidDateRe.FindAllStringSubmatch(text, 2)
	if len(matches) < 2 {
		return "", ""
	}
	format := func(m []string) string { return m[2] + " " + m[3] + ", " + m[1] }
	return format(matches[0]), format(matches[1])
}

// findBuyer parses the issuing-office block: office, division and address
// lines, then the labeled buyer fields. A non-matching block leaves every
// party field empty rather than guessing at partial lines.
func findBuyer(text string, rec *models.RFQRecord) {
	m := buyerBlockRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	rec.Office = strings.TrimSpace(m[1])
	rec.Division = strings.TrimSpace(m[2])
	rec.BuyerAddress = normalizeSpace(m[3] + " " + m[4])
	rec.BuyerName = strings.TrimSpace(m[6])
	rec.BuyerCode = m[7]
	rec.BuyerPhone = strings.TrimSpace(m[8])
	rec.BuyerFax = m[9]
	rec.BuyerEmail = m[10]
}

func yesNo(present bool) string {
	if present {
		return "YES"
	}
	return "NO"
}
