package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"quoteflow/internal/adapter/http/handlers/mocks"
	"quoteflow/internal/usecase"
	"quoteflow/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

const testAppURL = "https://app.example.com"

func newAccountLinkRouter(uc usecase.IAccountLinkUseCase) *gin.Engine {
	h := NewAccountLinkHandler(uc, testAppURL)
	r := gin.New()
	r.GET("/v1/oauth/connect", asDetailer("d-1"), h.Connect)
	r.GET("/v1/oauth/callback", h.Callback)
	return r
}

func TestAccountLinkHandler_Connect(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns authorize url", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAccountLinkUseCase(ctrl)
		uc.EXPECT().BeginLink(gomock.Any(), "d-1").Return("https://auth.mercadopago.com/authorization?state=s", nil)

		w := serve(newAccountLinkRouter(uc), http.MethodGet, "/v1/oauth/connect", "")
		expectStatus(t, w, http.StatusOK)
		if body := decodeBody(t, w); body["authorize_url"] != "https://auth.mercadopago.com/authorization?state=s" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("provider not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAccountLinkUseCase(ctrl)
		uc.EXPECT().BeginLink(gomock.Any(), "d-1").Return("", usecase.ErrServiceUnavailable)

		w := serve(newAccountLinkRouter(uc), http.MethodGet, "/v1/oauth/connect", "")
		expectStatus(t, w, http.StatusServiceUnavailable)
	})
}

func TestAccountLinkHandler_Callback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success redirect", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAccountLinkUseCase(ctrl)
		uc.EXPECT().CompleteLink(gomock.Any(), usecase.OAuthCallback{Code: "c1", State: "s1"}).Return("acct-1", nil)

		w := serve(newAccountLinkRouter(uc), http.MethodGet, "/v1/oauth/callback?code=c1&state=s1", "")
		expectStatus(t, w, http.StatusFound)
		if loc := w.Header().Get("Location"); loc != testAppURL+"/settings?stripe=success" {
			t.Fatalf("unexpected location %q", loc)
		}
	})

	t.Run("provider error is forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAccountLinkUseCase(ctrl)
		uc.EXPECT().CompleteLink(gomock.Any(), usecase.OAuthCallback{Error: "access_denied", ErrorDescription: "User denied access"}).
			Return("", &usecase.ProviderDeniedError{Code: "access_denied", Description: "User denied access"})

		w := serve(newAccountLinkRouter(uc), http.MethodGet, "/v1/oauth/callback?error=access_denied&error_description=User+denied+access", "")
		expectStatus(t, w, http.StatusFound)
		assertErrorRedirect(t, w.Header().Get("Location"), "User denied access")
	})

	errs := []error{
		usecase.ErrServiceUnavailable,
		usecase.ErrMissingAuthorizationCode,
		fmt.Errorf("%w: %w", usecase.ErrInvalidState, interfaces.ErrMalformedState),
		usecase.ErrAuthorizationExpired,
		usecase.ErrInvalidState,
		fmt.Errorf("%w: timeout", usecase.ErrExchangeFailed),
		usecase.ErrExchangeIncomplete,
		usecase.ErrPersistenceFailed,
	}
	seen := map[string]error{}
	for _, e := range errs {
		t.Run(e.Error(), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIAccountLinkUseCase(ctrl)
			uc.EXPECT().CompleteLink(gomock.Any(), gomock.Any()).Return("", e)

			w := serve(newAccountLinkRouter(uc), http.MethodGet, "/v1/oauth/callback?code=c&state=s", "")
			expectStatus(t, w, http.StatusFound)
			msg := assertErrorRedirect(t, w.Header().Get("Location"), "")
			if prev, dup := seen[msg]; dup {
				t.Fatalf("message %q shared by %v and %v", msg, prev, e)
			}
			seen[msg] = e
		})
	}
}

// assertErrorRedirect checks the settings error location and returns its
// message. An empty want only requires a non-empty message.
func assertErrorRedirect(t *testing.T, location, want string) string {
	t.Helper()
	u, err := url.Parse(location)
	if err != nil {
		t.Fatalf("invalid location %q: %v", location, err)
	}
	if u.Scheme+"://"+u.Host != testAppURL || u.Path != "/settings" {
		t.Fatalf("unexpected target %q", location)
	}
	q := u.Query()
	if q.Get("stripe") != "error" {
		t.Fatalf("expected stripe=error in %q", location)
	}
	msg := q.Get("message")
	if msg == "" {
		t.Fatalf("missing message in %q", location)
	}
	if want != "" && msg != want {
		t.Fatalf("expected message %q, got %q", want, msg)
	}
	return msg
}
