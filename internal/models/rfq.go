package models

// PaymentEntry is one historical award row from the solicitation's
// procurement-history table.
type PaymentEntry struct {
	Quantity  int     `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
	AwardDate string  `json:"award_date"`
}

// PaymentHistory distinguishes "confirmed no history" (empty Entries,
// NeedsReview false) from "table could not be parsed" (NeedsReview true).
// The two must never collapse into one another.
type PaymentHistory struct {
	Entries     []PaymentEntry `json:"entries"`
	NeedsReview bool           `json:"needs_review"`
}

// RFQRecord is the structured record extracted from one solicitation PDF.
// Numeric fields use pointers so an absent value is never confused with a
// legitimate zero; free-text fields use "" for absent.
type RFQRecord struct {
	SolicitationFile string `json:"solicitation_file"`

	RequestNumber  string `json:"request_number"`
	PurchaseNumber string `json:"purchase_number"`
	NSN            string `json:"nsn"`
	FSC            string `json:"fsc"`

	OpenDate  string `json:"open_date"`
	CloseDate string `json:"close_date"`

	Quantity     *int    `json:"quantity"`
	Unit         string  `json:"unit"`
	FOBTerms     string  `json:"fob_terms"`
	DeliveryDays *int    `json:"delivery_days"`
	ISORequired  string  `json:"iso_required"`      // YES / NO / ""
	Sampling     string  `json:"sampling_required"` // YES / NO / ""
	Inspection   string  `json:"inspection_point"`

	Office       string `json:"office"`
	Division     string `json:"division"`
	BuyerName    string `json:"buyer_name"`
	BuyerCode    string `json:"buyer_code"`
	BuyerEmail   string `json:"buyer_email"`
	BuyerPhone   string `json:"buyer_phone"`
	BuyerFax     string `json:"buyer_fax"`
	BuyerAddress string `json:"buyer_address"`

	Manufacturer string `json:"manufacturer"`
	PartNumber   string `json:"part_number"`
	Description  string `json:"product_description"`
	Packaging    string `json:"packaging"`
	PackageType  string `json:"package_type"`

	PaymentHistory PaymentHistory `json:"payment_history"`
}
