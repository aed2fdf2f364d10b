package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quoteflow/internal/adapter/http/handlers"
	"quoteflow/internal/adapter/http/handlers/mocks"
	"quoteflow/internal/adapter/http/middleware"
	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

const testSecret = "routes-test-secret"

type routerMocks struct {
	views    *mocks.MockIQuoteViewUseCase
	quotes   *mocks.MockIQuoteUseCase
	changes  *mocks.MockIChangeOrderUseCase
	payments *mocks.MockIBillingPaymentUseCase
	link     *mocks.MockIAccountLinkUseCase
}

func newTestRouter(t *testing.T, limiter *middleware.IPRateLimiter) (*gin.Engine, routerMocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	m := routerMocks{
		views:    mocks.NewMockIQuoteViewUseCase(ctrl),
		quotes:   mocks.NewMockIQuoteUseCase(ctrl),
		changes:  mocks.NewMockIChangeOrderUseCase(ctrl),
		payments: mocks.NewMockIBillingPaymentUseCase(ctrl),
		link:     mocks.NewMockIAccountLinkUseCase(ctrl),
	}
	r := NewRouter(Dependencies{
		QuoteViews:    handlers.NewQuoteViewHandler(m.views),
		Quotes:        handlers.NewQuoteHandler(m.quotes),
		ChangeOrders:  handlers.NewChangeOrderHandler(m.changes),
		Payments:      handlers.NewBillingPaymentHandler(m.payments, false),
		AccountLink:   handlers.NewAccountLinkHandler(m.link, "https://app.test"),
		AuthSecret:    testSecret,
		PublicLimiter: limiter,
	})
	return r, m
}

func bearer(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + signed
}

func do(r *gin.Engine, method, target, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Ping(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	if w := do(r, http.MethodGet, "/v1/ping", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRouter_OwnerRoutesRequireBearer(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	cases := []struct{ method, target string }{
		{http.MethodGet, "/v1/quotes"},
		{http.MethodPost, "/v1/quotes"},
		{http.MethodGet, "/v1/quotes/q-1"},
		{http.MethodPost, "/v1/quotes/q-1/send"},
		{http.MethodPost, "/v1/quotes/q-1/change-orders"},
		{http.MethodGet, "/v1/quotes/q-1/change-orders"},
		{http.MethodGet, "/v1/quotes/q-1/payments"},
		{http.MethodGet, "/v1/payments/123"},
		{http.MethodGet, "/v1/oauth/connect"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			if w := do(r, tc.method, tc.target, ""); w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestRouter_OwnerRouteWithToken(t *testing.T) {
	r, m := newTestRouter(t, nil)
	m.quotes.EXPECT().ListForOwner(gomock.Any(), "d-1").Return([]entities.Quote{
		{ID: "q-1", DetailerID: "d-1", Total: decimal.NewFromInt(10), Status: entities.QuoteStatusDraft},
	}, nil)

	if w := do(r, http.MethodGet, "/v1/quotes", bearer(t, "d-1")); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRouter_PublicRoutesAreRateLimited(t *testing.T) {
	r, m := newTestRouter(t, middleware.NewIPRateLimiter(0.001, 1))
	m.views.EXPECT().RecordView(gomock.Any(), "abc", gomock.Any(), gomock.Any(), gomock.Any()).
		Return(usecase.QuoteViewResult{Quote: entities.Quote{ID: "q-1"}, Detailer: entities.Detailer{ID: "d-1"}}, nil)

	if w := do(r, http.MethodGet, "/v1/quotes/view/abc", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodGet, "/v1/quotes/view/abc", ""); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestRouter_OAuthCallbackIsPublic(t *testing.T) {
	r, m := newTestRouter(t, nil)
	m.link.EXPECT().CompleteLink(gomock.Any(), gomock.Any()).Return("acct-1", nil)

	w := do(r, http.MethodGet, "/v1/oauth/callback?code=c&state=s", "")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "https://app.test/settings?stripe=success" {
		t.Fatalf("unexpected redirect %q", got)
	}
}
