package accounts

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ProfessionalAIAssistants/DLA/internal/models"
)

// fakeStore is an in-memory AccountStore with the same (lower(name), parent)
// matching contract as the real one.
type fakeStore struct {
	accounts []*models.Account
	creates  int
	failAll  bool
}

func (f *fakeStore) FindAccount(_ context.Context, name string, parentID *string) (*models.Account, error) {
	if f.failAll {
		return nil, fmt.Errorf("store unavailable")
	}
	for _, acc := range f.accounts {
		if !strings.EqualFold(acc.Name, name) {
			continue
		}
		if (acc.ParentID == nil) != (parentID == nil) {
			continue
		}
		if parentID != nil && *acc.ParentID != *parentID {
			continue
		}
		return acc, nil
	}
	return nil, nil
}

func (f *fakeStore) CreateAccount(_ context.Context, name string, parentID *string, accountType string) (*models.Account, error) {
	if f.failAll {
		return nil, fmt.Errorf("store unavailable")
	}
	f.creates++
	acc := &models.Account{
		ID:       fmt.Sprintf("acc-%d", f.creates),
		Name:     name,
		ParentID: parentID,
		Type:     accountType,
	}
	f.accounts = append(f.accounts, acc)
	return acc, nil
}

func TestResolve_ExistingHierarchyReturnedWithoutCreation(t *testing.T) {
	parentID := "parent-1"
	store := &fakeStore{accounts: []*models.Account{
		{ID: parentID, Name: "DLA LAND AND MARITIME"},
		{ID: "child-1", Name: "FLUID HANDLING DIVISION", ParentID: &parentID},
	}}
	resolver := NewResolver(store)

	acc, err := resolver.Resolve(context.Background(), "DLA LAND AND MARITIME", "FLUID HANDLING DIVISION")
	if err != nil {
		t.Fatal(err)
	}
	if acc.ID != "child-1" {
		t.Fatalf("expected existing child, got %s", acc.ID)
	}
	if store.creates != 0 {
		t.Fatalf("existing hierarchy must not trigger creation, got %d creates", store.creates)
	}
}

func TestResolve_IsIdempotent(t *testing.T) {
	store := &fakeStore{}
	resolver := NewResolver(store)
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, "DLA TROOP SUPPORT", "CLOTHING AND TEXTILES")
	if err != nil {
		t.Fatal(err)
	}
	second, err := resolver.Resolve(ctx, "DLA TROOP SUPPORT", "CLOTHING AND TEXTILES")
	if err != nil {
		t.Fatal(err)
	}

	if first.ID != second.ID {
		t.Fatalf("repeat resolve returned a different node: %s vs %s", first.ID, second.ID)
	}
	if store.creates != 2 {
		t.Fatalf("expected exactly one parent and one child created, got %d", store.creates)
	}
}

func TestResolve_LookupIsCaseInsensitiveButCasingPreserved(t *testing.T) {
	store := &fakeStore{}
	resolver := NewResolver(store)
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, "DLA Aviation", "Supplier Operations")
	if err != nil {
		t.Fatal(err)
	}
	second, err := resolver.Resolve(ctx, "dla aviation", "SUPPLIER OPERATIONS")
	if err != nil {
		t.Fatal(err)
	}

	if first.ID != second.ID {
		t.Fatal("case variants must resolve to the same node")
	}
	if first.Name != "Supplier Operations" {
		t.Fatalf("stored name must keep original casing, got %q", first.Name)
	}
}

func TestResolve_OnlyParentExistsCreatesChildUnderIt(t *testing.T) {
	store := &fakeStore{accounts: []*models.Account{{ID: "parent-9", Name: "DLA AVIATION"}}}
	resolver := NewResolver(store)

	acc, err := resolver.Resolve(context.Background(), "DLA AVIATION", "SUPPLIER OPS")
	if err != nil {
		t.Fatal(err)
	}
	if acc.ParentID == nil || *acc.ParentID != "parent-9" {
		t.Fatalf("child must hang under the existing parent, got %+v", acc)
	}
	if store.creates != 1 {
		t.Fatalf("expected only the child created, got %d", store.creates)
	}
}

func TestResolve_EmptyDivisionReturnsOffice(t *testing.T) {
	store := &fakeStore{}
	resolver := NewResolver(store)

	acc, err := resolver.Resolve(context.Background(), "DLA LAND AND MARITIME", "  ")
	if err != nil {
		t.Fatal(err)
	}
	if acc.ParentID != nil {
		t.Fatal("office node must be top-level")
	}
	if store.creates != 1 {
		t.Fatalf("expected a single office node, got %d creates", store.creates)
	}
}

// The resolver must never collapse the hierarchy into one concatenated node.
func TestResolve_NeverSynthesizesCombinedName(t *testing.T) {
	store := &fakeStore{}
	resolver := NewResolver(store)

	if _, err := resolver.Resolve(context.Background(), "DLA LAND AND MARITIME", "FLUID HANDLING DIVISION"); err != nil {
		t.Fatal(err)
	}

	for _, acc := range store.accounts {
		if strings.Contains(acc.Name, "DLA LAND AND MARITIME FLUID") {
			t.Fatalf("combined-name account created: %q", acc.Name)
		}
	}
	if len(store.accounts) != 2 {
		t.Fatalf("expected parent + child, got %d accounts", len(store.accounts))
	}
}

func TestResolve_EmptyOfficeIsAnError(t *testing.T) {
	if _, err := NewResolver(&fakeStore{}).Resolve(context.Background(), "", "DIV"); err == nil {
		t.Fatal("expected an error for an empty office name")
	}
}

func TestResolve_StoreFailurePropagates(t *testing.T) {
	if _, err := NewResolver(&fakeStore{failAll: true}).Resolve(context.Background(), "DLA AVIATION", "X"); err == nil {
		t.Fatal("expected the store failure to propagate")
	}
}
