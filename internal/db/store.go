package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ProfessionalAIAssistants/DLA/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const accountCols = `id, name, parent_id, account_type, account_source, created_at`

// accountLookupQuery builds the duplicate-prevention lookup. Matching is on
// lower(name); a nil parent selects top-level offices only.
func accountLookupQuery(parentID *string) string {
	q := `SELECT ` + accountCols + ` FROM accounts WHERE LOWER(name) = LOWER($1) AND `
	if parentID == nil {
		return q + `parent_id IS NULL`
	}
	return q + `parent_id = $2`
}

// FindAccount returns the account with the given name (case-insensitive)
// under the given parent, or nil when none exists.
func (s *Store) FindAccount(ctx context.Context, name string, parentID *string) (*models.Account, error) {
	var row pgx.Row
	if parentID == nil {
		row = s.pool.QueryRow(ctx, accountLookupQuery(nil), name)
	} else {
		row = s.pool.QueryRow(ctx, accountLookupQuery(parentID), name, *parentID)
	}

	acc, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("account lookup %q: %w", name, err)
	}
	return acc, nil
}

// CreateAccount inserts a new hierarchy node, preserving the caller's casing.
func (s *Store) CreateAccount(ctx context.Context, name string, parentID *string, accountType string) (*models.Account, error) {
	acc := &models.Account{
		ID:       uuid.NewString(),
		Name:     name,
		ParentID: parentID,
		Type:     accountType,
		Source:   "DIBBS",
		Created:  time.Now().UTC(),
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO accounts (id, name, parent_id, account_type, account_source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		acc.ID, acc.Name, acc.ParentID, acc.Type, acc.Source, acc.Created)
	if err != nil {
		return nil, fmt.Errorf("create account %q: %w", name, err)
	}
	return acc, nil
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var acc models.Account
	if err := row.Scan(&acc.ID, &acc.Name, &acc.ParentID, &acc.Type, &acc.Source, &acc.Created); err != nil {
		return nil, err
	}
	return &acc, nil
}

// FindContactByEmail looks a buyer up under an account; nil when absent.
func (s *Store) FindContactByEmail(ctx context.Context, accountID, email string) (*models.Contact, error) {
	var c models.Contact
	err := s.pool.QueryRow(ctx, `
		SELECT id, account_id, name, email, phone, fax, buyer_code
		FROM contacts WHERE account_id = $1 AND LOWER(email) = LOWER($2)`,
		accountID, email).Scan(&c.ID, &c.AccountID, &c.Name, &c.Email, &c.Phone, &c.Fax, &c.BuyerCode)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("contact lookup %q: %w", email, err)
	}
	return &c, nil
}

func (s *Store) CreateContact(ctx context.Context, c *models.Contact) (string, error) {
	c.ID = uuid.NewString()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO contacts (id, account_id, name, email, phone, fax, buyer_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.AccountID, c.Name, c.Email, c.Phone, c.Fax, c.BuyerCode)
	if err != nil {
		return "", fmt.Errorf("create contact %q: %w", c.Email, err)
	}
	return c.ID, nil
}

// CreateRFQ persists the extracted record linked to its resolved account.
func (s *Store) CreateRFQ(ctx context.Context, rec *models.RFQRecord, accountID, contactID string) (string, error) {
	id := uuid.NewString()

	historyJSON, err := json.Marshal(rec.PaymentHistory.Entries)
	if err != nil {
		return "", fmt.Errorf("encode payment history: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO rfqs (
			id, request_number, purchase_number, nsn, fsc, open_date, close_date,
			quantity, unit, fob_terms, delivery_days, iso_required, sampling_required,
			inspection_point, manufacturer, part_number, product_description,
			packaging, package_type, payment_history, payment_history_needs_review,
			solicitation_file, account_id, contact_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24
		)`,
		id, rec.RequestNumber, rec.PurchaseNumber, rec.NSN, rec.FSC, rec.OpenDate, rec.CloseDate,
		rec.Quantity, rec.Unit, rec.FOBTerms, rec.DeliveryDays, rec.ISORequired, rec.Sampling,
		rec.Inspection, rec.Manufacturer, rec.PartNumber, rec.Description,
		rec.Packaging, rec.PackageType, historyJSON, rec.PaymentHistory.NeedsReview,
		rec.SolicitationFile, nullable(accountID), nullable(contactID))
	if err != nil {
		return "", fmt.Errorf("create rfq %q: %w", rec.RequestNumber, err)
	}
	return id, nil
}

// OpportunityParams carries the fields the pipeline writes for a new
// opportunity; everything else stays at schema defaults.
type OpportunityParams struct {
	Name            string
	AccountID       string
	ContactID       string
	RFQID           string
	EstimatedAmount float64
	Notes           string
}

func (s *Store) CreateOpportunity(ctx context.Context, p OpportunityParams) (string, error) {
	id := uuid.NewString()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO opportunities (id, name, account_id, contact_id, rfq_id, estimated_amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, p.Name, p.AccountID, nullable(p.ContactID), nullable(p.RFQID), p.EstimatedAmount, p.Notes)
	if err != nil {
		return "", fmt.Errorf("create opportunity %q: %w", p.Name, err)
	}
	return id, nil
}

// SaveRun persists the finished batch report. The report row is written once
// at run end and never updated afterwards.
func (s *Store) SaveRun(ctx context.Context, report *models.BatchReport) error {
	criteriaJSON, err := json.Marshal(report.CriteriaSnapshot)
	if err != nil {
		return fmt.Errorf("encode criteria snapshot: %w", err)
	}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO processing_runs (run_id, run_timestamp, criteria, processed, created, skipped, errors, report)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		report.RunID, report.RunTimestamp, criteriaJSON,
		report.Counts.Processed, report.Counts.Created, report.Counts.Skipped, report.Counts.Errors,
		reportJSON)
	if err != nil {
		return fmt.Errorf("save run %s: %w", report.RunID, err)
	}
	return nil
}

type RunSummary struct {
	RunID        string
	RunTimestamp time.Time
	Processed    int
	Created      int
	Skipped      int
	Errors       int
	CompletedAt  time.Time
}

func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT run_id, run_timestamp, processed, created, skipped, errors, completed_at
		FROM processing_runs ORDER BY run_timestamp DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.RunID, &r.RunTimestamp, &r.Processed, &r.Created, &r.Skipped, &r.Errors, &r.CompletedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func nullable(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
