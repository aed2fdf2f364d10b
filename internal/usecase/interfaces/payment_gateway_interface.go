package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts the payment provider (Mercado Pago).
//
// Quote payments are created through it and the provider response payload is
// persisted alongside the payment for traceability.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
