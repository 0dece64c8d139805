package crm

import (
	"context"
	"fmt"
	"math"

	"github.com/ProfessionalAIAssistants/DLA/internal/db"
	"github.com/ProfessionalAIAssistants/DLA/internal/models"
)

// EntityStore is the persistence surface for downstream entity creation.
type EntityStore interface {
	FindContactByEmail(ctx context.Context, accountID, email string) (*models.Contact, error)
	CreateContact(ctx context.Context, c *models.Contact) (string, error)
	CreateRFQ(ctx context.Context, rec *models.RFQRecord, accountID, contactID string) (string, error)
	CreateOpportunity(ctx context.Context, p db.OpportunityParams) (string, error)
}

// Creator persists the business entities for one qualified record: the buyer
// contact (matched by email under the account, created otherwise), the RFQ
// row, and an opportunity with an estimated amount derived from the payment
// history. All ids created before a failure are returned alongside the error
// so the outcome retains them for manual cleanup.
type Creator struct {
	store EntityStore
}

func NewCreator(store EntityStore) *Creator {
	return &Creator{store: store}
}

func (c *Creator) CreateEntities(ctx context.Context, rec *models.RFQRecord, accountID string) ([]string, error) {
	var created []string

	contactID, err := c.resolveContact(ctx, rec, accountID, &created)
	if err != nil {
		return created, fmt.Errorf("contact: %w", err)
	}

	rfqID, err := c.store.CreateRFQ(ctx, rec, accountID, contactID)
	if err != nil {
		return created, fmt.Errorf("rfq: %w", err)
	}
	created = append(created, rfqID)

	oppID, err := c.store.CreateOpportunity(ctx, db.OpportunityParams{
		Name:            opportunityName(rec),
		AccountID:       accountID,
		ContactID:       contactID,
		RFQID:           rfqID,
		EstimatedAmount: EstimatedAmount(rec),
		Notes:           opportunityNotes(rec),
	})
	if err != nil {
		return created, fmt.Errorf("opportunity: %w", err)
	}
	created = append(created, oppID)

	return created, nil
}

func (c *Creator) resolveContact(ctx context.Context, rec *models.RFQRecord, accountID string, created *[]string) (string, error) {
	if rec.BuyerEmail == "" {
		return "", nil
	}

	existing, err := c.store.FindContactByEmail(ctx, accountID, rec.BuyerEmail)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}

	id, err := c.store.CreateContact(ctx, &models.Contact{
		AccountID: accountID,
		Name:      rec.BuyerName,
		Email:     rec.BuyerEmail,
		Phone:     rec.BuyerPhone,
		Fax:       rec.BuyerFax,
		BuyerCode: rec.BuyerCode,
	})
	if err != nil {
		return "", err
	}
	*created = append(*created, id)
	return id, nil
}

// EstimatedAmount projects a deal size from the solicited quantity and the
// mean historical unit cost. Either value missing yields zero; zero here
// means "no estimate", which the opportunity notes make explicit.
func EstimatedAmount(rec *models.RFQRecord) float64 {
	if rec.Quantity == nil || len(rec.PaymentHistory.Entries) == 0 {
		return 0
	}
	var total float64
	for _, e := range rec.PaymentHistory.Entries {
		total += e.UnitCost
	}
	mean := total / float64(len(rec.PaymentHistory.Entries))
	return math.Round(mean*float64(*rec.Quantity)*100) / 100
}

func opportunityName(rec *models.RFQRecord) string {
	return fmt.Sprintf("RFQ %s - NSN %s", rec.RequestNumber, rec.NSN)
}

func opportunityNotes(rec *models.RFQRecord) string {
	if rec.PaymentHistory.NeedsReview {
		return "Payment history could not be parsed from the solicitation; check manually."
	}
	if len(rec.PaymentHistory.Entries) == 0 {
		return "No prior procurement history on the solicitation."
	}
	return ""
}
