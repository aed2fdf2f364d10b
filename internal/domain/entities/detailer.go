package entities

import "time"

// Detailer is the service provider who owns quotes.
//
// FCMToken is the push registration of the detailer's device. It is never part
// of a public payload.
type Detailer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	FCMToken     string `json:"-"`

	// ExternalAccountID is the payment-processor account linked through the
	// OAuth handshake. A later successful handshake overwrites it.
	ExternalAccountID       string     `json:"external_account_id,omitempty"`
	ExternalAccountLinkedAt *time.Time `json:"external_account_linked_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d Detailer) HasPushToken() bool { return d.FCMToken != "" }

func (d Detailer) HasEmail() bool { return d.Email != "" }
