package crm

import (
	"context"
	"fmt"
	"testing"

	"github.com/ProfessionalAIAssistants/DLA/internal/db"
	"github.com/ProfessionalAIAssistants/DLA/internal/models"
)

type fakeEntityStore struct {
	contacts        map[string]*models.Contact // keyed by email
	failOpportunity bool
	createdContacts int
}

func (f *fakeEntityStore) FindContactByEmail(_ context.Context, _, email string) (*models.Contact, error) {
	return f.contacts[email], nil
}

func (f *fakeEntityStore) CreateContact(_ context.Context, c *models.Contact) (string, error) {
	f.createdContacts++
	id := fmt.Sprintf("contact-%d", f.createdContacts)
	if f.contacts == nil {
		f.contacts = map[string]*models.Contact{}
	}
	c.ID = id
	f.contacts[c.Email] = c
	return id, nil
}

func (f *fakeEntityStore) CreateRFQ(_ context.Context, _ *models.RFQRecord, _, _ string) (string, error) {
	return "rfq-1", nil
}

func (f *fakeEntityStore) CreateOpportunity(_ context.Context, _ db.OpportunityParams) (string, error) {
	if f.failOpportunity {
		return "", fmt.Errorf("insert failed")
	}
	return "opp-1", nil
}

func record() *models.RFQRecord {
	qty := 100
	return &models.RFQRecord{
		RequestNumber: "SPE7L1-24-Q-0001",
		NSN:           "4730012345678",
		BuyerName:     "JANE DOE",
		BuyerEmail:    "jane.doe@dla.mil",
		Quantity:      &qty,
		PaymentHistory: models.PaymentHistory{Entries: []models.PaymentEntry{
			{Quantity: 50, UnitCost: 10.00, AwardDate: "2023-01-15"},
			{Quantity: 80, UnitCost: 20.00, AwardDate: "2022-06-30"},
		}},
	}
}

func TestCreateEntities_ContactRFQAndOpportunity(t *testing.T) {
	store := &fakeEntityStore{}
	ids, err := NewCreator(store).CreateEntities(context.Background(), record(), "acc-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 3 {
		t.Fatalf("ids = %v, want contact + rfq + opportunity", ids)
	}
}

func TestCreateEntities_ExistingContactReused(t *testing.T) {
	store := &fakeEntityStore{contacts: map[string]*models.Contact{
		"jane.doe@dla.mil": {ID: "contact-existing", Email: "jane.doe@dla.mil"},
	}}

	ids, err := NewCreator(store).CreateEntities(context.Background(), record(), "acc-1")
	if err != nil {
		t.Fatal(err)
	}
	if store.createdContacts != 0 {
		t.Fatal("existing contact must not be duplicated")
	}
	// Only the rfq and opportunity are new.
	if len(ids) != 2 {
		t.Fatalf("ids = %v", ids)
	}
}

func TestCreateEntities_PartialIDsReturnedOnFailure(t *testing.T) {
	store := &fakeEntityStore{failOpportunity: true}

	ids, err := NewCreator(store).CreateEntities(context.Background(), record(), "acc-1")
	if err == nil {
		t.Fatal("expected the opportunity failure to propagate")
	}
	if len(ids) != 2 {
		t.Fatalf("contact and rfq ids must be retained on failure, got %v", ids)
	}
}

func TestEstimatedAmount(t *testing.T) {
	rec := record()
	// Mean unit cost 15.00 across two entries, quantity 100.
	if got := EstimatedAmount(rec); got != 1500.00 {
		t.Fatalf("estimated amount = %v, want 1500.00", got)
	}

	rec.Quantity = nil
	if got := EstimatedAmount(rec); got != 0 {
		t.Fatalf("missing quantity must yield no estimate, got %v", got)
	}

	rec = record()
	rec.PaymentHistory = models.PaymentHistory{NeedsReview: true}
	if got := EstimatedAmount(rec); got != 0 {
		t.Fatalf("unparsed history must yield no estimate, got %v", got)
	}
}
