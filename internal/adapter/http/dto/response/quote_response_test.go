package response

import (
	"encoding/json"
	"strings"
	"testing"

	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase"

	"github.com/shopspring/decimal"
)

func TestFromQuoteView_HidesPrivateFields(t *testing.T) {
	v := usecase.QuoteViewResult{
		Quote: entities.Quote{
			ID:           "q-1",
			Title:        "Wash",
			Total:        decimal.RequireFromString("80"),
			Status:       entities.QuoteStatusViewed,
			ViewCount:    3,
			ViewerIP:     "10.0.0.9",
			ViewerDevice: "Firefox",
		},
		Detailer: entities.Detailer{ID: "d-1", Name: "Ana", FCMToken: "secret-token", ExternalAccountID: "acct-1"},
	}

	raw, err := json.Marshal(FromQuoteView(v))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(raw)
	for _, leaked := range []string{"secret-token", "acct-1", "10.0.0.9", "Firefox"} {
		if strings.Contains(body, leaked) {
			t.Fatalf("public payload leaks %q: %s", leaked, body)
		}
	}
	if !strings.Contains(body, `"total":"80.00"`) || !strings.Contains(body, `"view_count":3`) {
		t.Fatalf("unexpected payload: %s", body)
	}
}

func TestFromQuote_OwnerSeesViewer(t *testing.T) {
	res := FromQuote(entities.Quote{ID: "q-1", ViewerIP: "10.0.0.9", Total: decimal.RequireFromString("1.5")})
	if res.ViewerIP != "10.0.0.9" || res.Total != "1.50" {
		t.Fatalf("unexpected response: %+v", res)
	}
}
