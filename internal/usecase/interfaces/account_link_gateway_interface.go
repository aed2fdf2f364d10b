package interfaces

import "context"

// IAccountLinkGateway abstracts the payment provider's OAuth endpoints used to
// link a detailer's merchant account.
type IAccountLinkGateway interface {
	AuthorizationURL(state string) string

	// ExchangeCode trades a single-use authorization code for the provider
	// account id. It performs exactly one network call. An empty account id
	// with a nil error means the provider answered without one.
	ExchangeCode(ctx context.Context, code string) (accountID string, err error)
}
