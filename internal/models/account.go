package models

import "time"

// Account is one node of the buying-organization hierarchy. A nil ParentID
// marks a top-level office; divisions hang one level beneath it. No two
// accounts may share the same (lower(name), parent_id) pair.
type Account struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	ParentID *string   `json:"parent_id"`
	Type     string    `json:"type"`
	Source   string    `json:"source"`
	Created  time.Time `json:"created_at"`
}

// Contact is a buyer attached to an account.
type Contact struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Fax       string `json:"fax"`
	BuyerCode string `json:"buyer_code"`
}
