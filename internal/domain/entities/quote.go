package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus represents the lifecycle of a quote.
//
// Progression is linear: draft -> sent -> viewed -> approved -> paid.
// "viewed" is only reachable while the quote is not approved or paid.

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusViewed   QuoteStatus = "viewed"
	QuoteStatusApproved QuoteStatus = "approved"
	QuoteStatusPaid     QuoteStatus = "paid"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusViewed, QuoteStatusApproved, QuoteStatusPaid:
		return true
	}
	return false
}

// FreezesViewTracking reports whether reads of the share link must leave the
// quote untouched.
func (s QuoteStatus) FreezesViewTracking() bool {
	return s == QuoteStatusApproved || s == QuoteStatusPaid
}

// Approvable reports whether a customer may still approve the quote.
func (s QuoteStatus) Approvable() bool {
	return s == QuoteStatusSent || s == QuoteStatusViewed
}

// Quote is the price quote a detailer shares with a customer.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (share_link-index): share_link
//   - GSI2 (detailer_id-index): detailer_id
//
// View metadata:
//   - ViewedAt is written once, on the first read of the share link.
//   - LastViewedAt, ViewerIP and ViewerDevice are overwritten on every read.
//   - ViewCount only ever grows.
type Quote struct {
	ID            string          `json:"id"`
	DetailerID    string          `json:"detailer_id"`
	ShareLink     string          `json:"share_link"`
	Title         string          `json:"title"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Total         decimal.Decimal `json:"total"`
	Status        QuoteStatus     `json:"status"`

	ViewedAt     *time.Time `json:"viewed_at,omitempty"`
	LastViewedAt *time.Time `json:"last_viewed_at,omitempty"`
	ViewCount    int        `json:"view_count"`
	ViewerIP     string     `json:"viewer_ip,omitempty"`
	ViewerDevice string     `json:"viewer_device,omitempty"`

	SentAt     *time.Time `json:"sent_at,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// QuoteView is the viewer metadata captured for a single read of a share link.
type QuoteView struct {
	At     time.Time
	IP     string
	Device string
}
