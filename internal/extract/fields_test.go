package extract

import (
	"strings"
	"testing"
)

const sampleText = `1. REQUEST NO. SPE7L1-24-Q-0123 2. CERTIFIED FOR NATIONAL DEFENSE
3. REQUISITION/PURCHASE REQUEST NO. 7005671234
2024 JAN 05
2024 FEB 04
NSN/FSC:012345678/4730
6. DELIVER BY ADO 120
FOB: DESTINATION
INSPECTION POINT: DESTINATION
ITEM DESCRIPTION  VALVE,CHECK
PARKER HANNIFIN CORP 83259 P/N 12F34-56
PKGING DATA - MIL-STD-2073-1
QUP: 001

DLA LAND AND MARITIME
FLUID HANDLING DIVISION
PO BOX 3990
COLUMBUS OH 43218-3990
USA
Name: JANE DOE Buyer Code: PMAA1 Tel: 614-692-0001 Fax: 614-693-1234 Email: jane.doe@dla.mil
`

func docFromText(text string) *Document {
	lines := strings.Split(text, "\n")
	return &Document{Lines: lines, Text: text}
}

func TestExtractRecord_Identifiers(t *testing.T) {
	rec := ExtractRecord(docFromText(sampleText))

	if rec.RequestNumber != "SPE7L1-24-Q-0123" {
		t.Errorf("request number = %q", rec.RequestNumber)
	}
	if rec.PurchaseNumber != "7005671234" {
		t.Errorf("purchase number = %q", rec.PurchaseNumber)
	}
	if rec.NSN != "4730012345678" {
		t.Errorf("nsn = %q, want 4730012345678", rec.NSN)
	}
	if rec.FSC != "4730" {
		t.Errorf("fsc = %q, want 4730", rec.FSC)
	}
}

func TestExtractRecord_CommercialTerms(t *testing.T) {
	rec := ExtractRecord(docFromText(sampleText))

	if rec.DeliveryDays == nil {
		t.Fatal("expected delivery days")
	}
	if *rec.DeliveryDays != 120 {
		t.Errorf("delivery days = %d, want 120", *rec.DeliveryDays)
	}
	if rec.FOBTerms != "DESTINATION" {
		t.Errorf("fob = %q", rec.FOBTerms)
	}
	if rec.Inspection != "DESTINATION" {
		t.Errorf("inspection point = %q", rec.Inspection)
	}
	if rec.Description != "VALVE,CHECK" {
		t.Errorf("description = %q", rec.Description)
	}
	if rec.PackageType != "MIL-STD-2073-1" {
		t.Errorf("package type = %q", rec.PackageType)
	}
}

func TestExtractRecord_BuyerBlock(t *testing.T) {
	rec := ExtractRecord(docFromText(sampleText))

	if rec.Office != "DLA LAND AND MARITIME" {
		t.Errorf("office = %q", rec.Office)
	}
	if rec.Division != "FLUID HANDLING DIVISION" {
		t.Errorf("division = %q", rec.Division)
	}
	if rec.BuyerName != "JANE DOE" {
		t.Errorf("buyer name = %q", rec.BuyerName)
	}
	if rec.BuyerCode != "PMAA1" {
		t.Errorf("buyer code = %q", rec.BuyerCode)
	}
	if rec.BuyerEmail != "jane.doe@dla.mil" {
		t.Errorf("buyer email = %q", rec.BuyerEmail)
	}
	if rec.BuyerPhone != "614-692-0001" {
		t.Errorf("buyer phone = %q", rec.BuyerPhone)
	}
	if rec.BuyerFax != "614-693-1234" {
		t.Errorf("buyer fax = %q", rec.BuyerFax)
	}
}

func TestExtractRecord_Manufacturer(t *testing.T) {
	rec := ExtractRecord(docFromText(sampleText))

	if !strings.Contains(rec.Manufacturer, "PARKER HANNIFIN CORP") {
		t.Errorf("manufacturer = %q", rec.Manufacturer)
	}
	if rec.PartNumber != "12F34-56" {
		t.Errorf("part number = %q", rec.PartNumber)
	}
}

func TestExtractRecord_BidDates(t *testing.T) {
	rec := ExtractRecord(docFromText(sampleText))

	if rec.OpenDate != "JAN 05, 2024" {
		t.Errorf("open date = %q", rec.OpenDate)
	}
	if rec.CloseDate != "FEB 04, 2024" {
		t.Errorf("close date = %q", rec.CloseDate)
	}
}

// Each field is extracted independently: a document missing nearly everything
// still yields a record with absent markers, never an error.
func TestExtractRecord_PartialDocument(t *testing.T) {
	rec := ExtractRecord(docFromText("NSN/FSC:098765432/5331\nnothing else recognizable"))

	if rec.NSN != "5331098765432" {
		t.Errorf("nsn = %q", rec.NSN)
	}
	if rec.RequestNumber != "" {
		t.Errorf("request number should be absent, got %q", rec.RequestNumber)
	}
	if rec.DeliveryDays != nil {
		t.Errorf("delivery days should be absent, got %d", *rec.DeliveryDays)
	}
	if rec.Quantity != nil {
		t.Error("quantity should be absent")
	}
	if !rec.PaymentHistory.NeedsReview {
		t.Error("payment history should be the needs-review sentinel")
	}
	if rec.Office != "" {
		t.Errorf("office should be absent, got %q", rec.Office)
	}
}

func TestFindNSNAndFSC_MaterialVariant(t *testing.T) {
	nsn, fsc := findNSNAndFSC("NSN/MATERIAL:016629370")
	if nsn != "5331016629370" {
		t.Errorf("nsn = %q, want 5331 prefix applied", nsn)
	}
	if fsc != "" {
		t.Errorf("fsc should be absent for the material variant, got %q", fsc)
	}

	nsn, _ = findNSNAndFSC("NSN/MATERIAL:5330016629370")
	if nsn != "5330016629370" {
		t.Errorf("existing 5330 prefix must not be doubled, got %q", nsn)
	}
}

func TestFindDeliveryDays_AbsentIsNilNotDefault(t *testing.T) {
	if days := findDeliveryDays("no delivery clause here"); days != nil {
		t.Fatalf("expected nil, got %d", *days)
	}
}

func TestYesNoFlags(t *testing.T) {
	rec := ExtractRecord(docFromText("ISO 9001 CERTIFICATION REQUIRED\nSAMPLING PLAN PER MIL-STD-1916"))
	if rec.ISORequired != "YES" {
		t.Errorf("iso = %q, want YES", rec.ISORequired)
	}
	if rec.Sampling != "YES" {
		t.Errorf("sampling = %q, want YES", rec.Sampling)
	}

	rec = ExtractRecord(docFromText("plain solicitation text"))
	if rec.ISORequired != "NO" || rec.Sampling != "NO" {
		t.Errorf("flags = %q/%q, want NO/NO", rec.ISORequired, rec.Sampling)
	}
}
