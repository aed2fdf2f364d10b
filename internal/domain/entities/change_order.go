package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type ChangeOrderStatus string

const (
	ChangeOrderStatusPending  ChangeOrderStatus = "pending"
	ChangeOrderStatusApproved ChangeOrderStatus = "approved"
	ChangeOrderStatusDeclined ChangeOrderStatus = "declined"
)

// ChangeOrder amends a quote after it was shared. Customers reach it through
// ApprovalToken, the change-order analogue of Quote.ShareLink.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (approval_token-index): approval_token
type ChangeOrder struct {
	ID            string            `json:"id"`
	QuoteID       string            `json:"quote_id"`
	ApprovalToken string            `json:"approval_token"`
	Status        ChangeOrderStatus `json:"status"`
	Amount        decimal.Decimal   `json:"amount"`
	Reason        string            `json:"reason"`
	DecidedAt     *time.Time        `json:"decided_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
