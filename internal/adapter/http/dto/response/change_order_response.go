package response

import (
	"time"

	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase"
)

type ChangeOrderResponse struct {
	ID            string     `json:"id"`
	QuoteID       string     `json:"quote_id"`
	ApprovalToken string     `json:"approval_token"`
	Status        string     `json:"status"`
	Amount        string     `json:"amount"`
	Reason        string     `json:"reason"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func FromChangeOrder(co entities.ChangeOrder) ChangeOrderResponse {
	return ChangeOrderResponse{
		ID:            co.ID,
		QuoteID:       co.QuoteID,
		ApprovalToken: co.ApprovalToken,
		Status:        string(co.Status),
		Amount:        co.Amount.StringFixed(2),
		Reason:        co.Reason,
		DecidedAt:     co.DecidedAt,
		CreatedAt:     co.CreatedAt,
	}
}

func FromChangeOrders(items []entities.ChangeOrder) []ChangeOrderResponse {
	out := make([]ChangeOrderResponse, 0, len(items))
	for _, co := range items {
		out = append(out, FromChangeOrder(co))
	}
	return out
}

type ChangeOrderViewResponse struct {
	ChangeOrder ChangeOrderResponse `json:"change_order"`
	Quote       PublicQuoteResponse `json:"quote"`
}

func FromChangeOrderView(v usecase.ChangeOrderView) ChangeOrderViewResponse {
	return ChangeOrderViewResponse{
		ChangeOrder: FromChangeOrder(v.ChangeOrder),
		Quote:       FromPublicQuote(v.Quote),
	}
}
