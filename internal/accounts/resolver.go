package accounts

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ProfessionalAIAssistants/DLA/internal/models"
)

// AccountStore is the narrow persistence surface the resolver needs.
// db.Store implements it; tests use an in-memory fake.
type AccountStore interface {
	FindAccount(ctx context.Context, name string, parentID *string) (*models.Account, error)
	CreateAccount(ctx context.Context, name string, parentID *string, accountType string) (*models.Account, error)
}

// Resolver maps a buying organization's (office, division) names onto the
// account hierarchy, creating nodes only when no match exists. It never
// synthesizes a combined "<office> <division>" account; collapsing the
// hierarchy into a single concatenated name is exactly the duplicate-account
// defect this resolver exists to prevent, so no such fallback path exists.
//
// The find-then-create sequence is not safe under concurrent runs against
// the same store; the batch processor therefore processes documents strictly
// sequentially (a unique index on (lower(name), parent_id) backstops the
// invariant regardless).
type Resolver struct {
	store AccountStore
}

func NewResolver(store AccountStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the account node for the office/division pair: the
// existing division under the existing office when both are known, otherwise
// the minimal set of newly created nodes. Repeat calls with the same inputs
// always yield the same node. An empty division resolves to the office node.
func (r *Resolver) Resolve(ctx context.Context, office, division string) (*models.Account, error) {
	office = strings.TrimSpace(office)
	division = strings.TrimSpace(division)

	if office == "" {
		return nil, fmt.Errorf("cannot resolve account: office name is empty")
	}

	parent, err := r.store.FindAccount(ctx, office, nil)
	if err != nil {
		return nil, err
	}

	if parent != nil && division != "" {
		// Duplicate-prevention path: an existing child must be found and
		// returned before any creation is attempted.
		child, err := r.store.FindAccount(ctx, division, &parent.ID)
		if err != nil {
			return nil, err
		}
		if child != nil {
			return child, nil
		}
	}

	if parent == nil {
		parent, err = r.store.CreateAccount(ctx, office, nil, "Customer")
		if err != nil {
			return nil, err
		}
		log.Printf("Created office account %q (%s)", office, parent.ID)
	}

	if division == "" {
		return parent, nil
	}

	child, err := r.store.CreateAccount(ctx, division, &parent.ID, "Customer")
	if err != nil {
		return nil, err
	}
	log.Printf("Created division account %q under %q (%s)", division, office, child.ID)
	return child, nil
}
