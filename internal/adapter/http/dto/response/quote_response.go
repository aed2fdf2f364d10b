package response

import (
	"time"

	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase"
)

// QuoteResponse is the owner view of a quote, view metadata included.
type QuoteResponse struct {
	ID            string     `json:"id"`
	DetailerID    string     `json:"detailer_id"`
	ShareLink     string     `json:"share_link"`
	Title         string     `json:"title"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	Total         string     `json:"total"`
	Status        string     `json:"status"`
	ViewedAt      *time.Time `json:"viewed_at,omitempty"`
	LastViewedAt  *time.Time `json:"last_viewed_at,omitempty"`
	ViewCount     int        `json:"view_count"`
	ViewerIP      string     `json:"viewer_ip,omitempty"`
	ViewerDevice  string     `json:"viewer_device,omitempty"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:            q.ID,
		DetailerID:    q.DetailerID,
		ShareLink:     q.ShareLink,
		Title:         q.Title,
		CustomerName:  q.CustomerName,
		CustomerEmail: q.CustomerEmail,
		Total:         q.Total.StringFixed(2),
		Status:        string(q.Status),
		ViewedAt:      q.ViewedAt,
		LastViewedAt:  q.LastViewedAt,
		ViewCount:     q.ViewCount,
		ViewerIP:      q.ViewerIP,
		ViewerDevice:  q.ViewerDevice,
		SentAt:        q.SentAt,
		ApprovedAt:    q.ApprovedAt,
		PaidAt:        q.PaidAt,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

func FromQuotes(items []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(items))
	for _, q := range items {
		out = append(out, FromQuote(q))
	}
	return out
}

// PublicQuoteResponse is what a customer sees through the share link. Viewer
// fingerprints stay owner-only.
type PublicQuoteResponse struct {
	ID           string     `json:"id"`
	ShareLink    string     `json:"share_link"`
	Title        string     `json:"title"`
	CustomerName string     `json:"customer_name"`
	Total        string     `json:"total"`
	Status       string     `json:"status"`
	ViewedAt     *time.Time `json:"viewed_at,omitempty"`
	LastViewedAt *time.Time `json:"last_viewed_at,omitempty"`
	ViewCount    int        `json:"view_count"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func FromPublicQuote(q entities.Quote) PublicQuoteResponse {
	return PublicQuoteResponse{
		ID:           q.ID,
		ShareLink:    q.ShareLink,
		Title:        q.Title,
		CustomerName: q.CustomerName,
		Total:        q.Total.StringFixed(2),
		Status:       string(q.Status),
		ViewedAt:     q.ViewedAt,
		LastViewedAt: q.LastViewedAt,
		ViewCount:    q.ViewCount,
		ApprovedAt:   q.ApprovedAt,
		PaidAt:       q.PaidAt,
		CreatedAt:    q.CreatedAt,
	}
}

// PublicDetailerResponse omits the push token and the linked account.
type PublicDetailerResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BusinessName string `json:"business_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

func FromPublicDetailer(d entities.Detailer) PublicDetailerResponse {
	return PublicDetailerResponse{
		ID:           d.ID,
		Name:         d.Name,
		BusinessName: d.BusinessName,
		Email:        d.Email,
		Phone:        d.Phone,
	}
}

type QuoteViewResponse struct {
	Quote    PublicQuoteResponse    `json:"quote"`
	Detailer PublicDetailerResponse `json:"detailer"`
}

func FromQuoteView(v usecase.QuoteViewResult) QuoteViewResponse {
	return QuoteViewResponse{
		Quote:    FromPublicQuote(v.Quote),
		Detailer: FromPublicDetailer(v.Detailer),
	}
}
