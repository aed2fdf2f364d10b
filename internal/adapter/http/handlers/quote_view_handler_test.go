package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quoteflow/internal/adapter/http/handlers/mocks"
	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestQuoteViewHandler_GetQuoteView(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	newRouter := func(uc usecase.IQuoteViewUseCase) *gin.Engine {
		h := NewQuoteViewHandler(uc)
		h.now = func() time.Time { return now }
		r := gin.New()
		r.GET("/v1/quotes/view/:shareLink", h.GetQuoteView)
		return r
	}

	t.Run("passes viewer metadata", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteViewUseCase(ctrl)

		uc.EXPECT().RecordView(gomock.Any(), "abc123", "203.0.113.9", "Mozilla/5.0 (iPhone)", now).Return(usecase.QuoteViewResult{
			Quote:       entities.Quote{ID: "q-1", Title: "Detail", Total: decimal.RequireFromString("120"), Status: entities.QuoteStatusViewed, ViewCount: 2},
			Detailer:    entities.Detailer{ID: "d-1", Name: "Ana", FCMToken: "push-token"},
			IsFirstView: true,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/view/abc123", nil)
		req.RemoteAddr = "203.0.113.9:5555"
		req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone)")
		w := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(w, req)

		expectStatus(t, w, http.StatusOK)
		body := decodeBody(t, w)
		quote := body["quote"].(map[string]any)
		if quote["id"] != "q-1" || quote["view_count"] != float64(2) {
			t.Fatalf("unexpected quote: %v", quote)
		}
		detailer := body["detailer"].(map[string]any)
		if _, leaked := detailer["fcm_token"]; leaked {
			t.Fatalf("detailer leaks push token: %v", detailer)
		}
	})

	t.Run("public payload hides private fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteViewUseCase(ctrl)
		linkedAt := now.Add(-time.Hour)

		uc.EXPECT().RecordView(gomock.Any(), "abc123", gomock.Any(), gomock.Any(), now).Return(usecase.QuoteViewResult{
			Quote: entities.Quote{
				ID: "q-1", DetailerID: "d-1", Title: "Detail", CustomerEmail: "bo@customer.test",
				Total: decimal.RequireFromString("120"), Status: entities.QuoteStatusViewed, ViewCount: 3,
				ViewerIP: "198.51.100.7", ViewerDevice: "SecretPhone/1.0",
			},
			Detailer: entities.Detailer{
				ID: "d-1", Name: "Ana", Email: "ana@shop.test",
				FCMToken: "push-token-xyz", ExternalAccountID: "mp-acct-777", ExternalAccountLinkedAt: &linkedAt,
			},
		}, nil)

		w := serve(newRouter(uc), http.MethodGet, "/v1/quotes/view/abc123", "")
		expectStatus(t, w, http.StatusOK)

		body := decodeBody(t, w)
		quote := body["quote"].(map[string]any)
		for _, key := range []string{"viewer_ip", "viewer_device", "customer_email", "detailer_id"} {
			if _, leaked := quote[key]; leaked {
				t.Fatalf("quote leaks %s: %v", key, quote)
			}
		}
		detailer := body["detailer"].(map[string]any)
		for _, key := range []string{"fcm_token", "FCMToken", "external_account_id", "external_account_linked_at"} {
			if _, leaked := detailer[key]; leaked {
				t.Fatalf("detailer leaks %s: %v", key, detailer)
			}
		}
		raw := w.Body.String()
		for _, secret := range []string{"push-token-xyz", "mp-acct-777", "198.51.100.7", "SecretPhone"} {
			if strings.Contains(raw, secret) {
				t.Fatalf("response contains %q: %s", secret, raw)
			}
		}
	})

	t.Run("unknown link", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteViewUseCase(ctrl)
		uc.EXPECT().RecordView(gomock.Any(), "nope", gomock.Any(), gomock.Any(), now).Return(usecase.QuoteViewResult{}, usecase.ErrQuoteNotFound)

		w := serve(newRouter(uc), http.MethodGet, "/v1/quotes/view/nope", "")
		expectStatus(t, w, http.StatusNotFound)
		if body := decodeBody(t, w); body["code"] != "QUOTE_NOT_FOUND" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIQuoteViewUseCase(ctrl)
		uc.EXPECT().RecordView(gomock.Any(), "abc", gomock.Any(), gomock.Any(), now).Return(usecase.QuoteViewResult{}, errors.New("dynamodb timeout"))

		w := serve(newRouter(uc), http.MethodGet, "/v1/quotes/view/abc", "")
		expectStatus(t, w, http.StatusInternalServerError)
		if body := decodeBody(t, w); body["details"] != "dynamodb timeout" {
			t.Fatalf("expected storage message in details: %v", body)
		}
	})
}
