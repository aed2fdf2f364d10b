package request

import "encoding/json"

// BillingPaymentCreateRequest is the customer payload for paying a quote.
//
// `mp_payload` is forwarded to Mercado Pago as-is (raw JSON) to support
// varying payment method schemas. A bare Mercado Pago body is accepted too.
type BillingPaymentCreateRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}
