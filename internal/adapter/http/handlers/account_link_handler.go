package handlers

import (
	"errors"
	"net/http"
	"net/url"

	response "quoteflow/internal/adapter/http/dto/response"
	"quoteflow/internal/adapter/http/middleware"
	"quoteflow/internal/usecase"
	"quoteflow/internal/usecase/interfaces"
	"quoteflow/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// The settings page reads this query key; it predates the Mercado Pago
// integration.
const linkResultParam = "stripe"

// AccountLinkHandler runs the browser side of the payment account OAuth
// handshake.
type AccountLinkHandler struct {
	usecase usecase.IAccountLinkUseCase
	appURL  string
}

func NewAccountLinkHandler(uc usecase.IAccountLinkUseCase, appURL string) *AccountLinkHandler {
	return &AccountLinkHandler{usecase: uc, appURL: appURL}
}

// Connect godoc
// @Summary      Start linking a payment account
// @Tags         oauth
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  response.ConnectResponse
// @Failure      401  {object}  pkg.HTTPError
// @Failure      503  {object}  pkg.HTTPError
// @Router       /oauth/connect [get]
func (h *AccountLinkHandler) Connect(c *gin.Context) {
	authorizeURL, err := h.usecase.BeginLink(c.Request.Context(), middleware.DetailerID(c))
	if err != nil {
		writeError(c, mapConnectError(err))
		return
	}
	c.JSON(http.StatusOK, response.ConnectResponse{AuthorizeURL: authorizeURL})
}

// Callback godoc
// @Summary      OAuth callback from the payment provider
// @Description  Always answers with a redirect to the settings page carrying the outcome.
// @Tags         oauth
// @Param        code               query  string  false  "Authorization code"
// @Param        state              query  string  false  "State issued by /oauth/connect"
// @Param        error              query  string  false  "Provider error code"
// @Param        error_description  query  string  false  "Provider error description"
// @Success      302
// @Router       /oauth/callback [get]
func (h *AccountLinkHandler) Callback(c *gin.Context) {
	accountID, err := h.usecase.CompleteLink(c.Request.Context(), usecase.OAuthCallback{
		Code:             c.Query("code"),
		State:            c.Query("state"),
		Error:            c.Query("error"),
		ErrorDescription: c.Query("error_description"),
	})
	if err != nil {
		c.Redirect(http.StatusFound, h.settingsURL("error", callbackErrorMessage(err)))
		return
	}
	log.Info().Str("account_id", accountID).Msg("[oauth][handler] account linked")
	c.Redirect(http.StatusFound, h.settingsURL("success", ""))
}

func (h *AccountLinkHandler) settingsURL(result, message string) string {
	target := h.appURL + "/settings?" + linkResultParam + "=" + result
	if message != "" {
		target += "&message=" + url.QueryEscape(message)
	}
	return target
}

func callbackErrorMessage(err error) string {
	var denied *usecase.ProviderDeniedError
	switch {
	case errors.As(err, &denied):
		return denied.Error()
	case errors.Is(err, usecase.ErrServiceUnavailable):
		return "Payment account linking is not available right now"
	case errors.Is(err, usecase.ErrMissingAuthorizationCode):
		return "Missing authorization code"
	case errors.Is(err, interfaces.ErrMalformedState):
		return "Invalid authorization request"
	case errors.Is(err, usecase.ErrAuthorizationExpired):
		return "Authorization expired, please try again"
	case errors.Is(err, usecase.ErrInvalidState):
		return "Authorization request does not match an account"
	case errors.Is(err, usecase.ErrExchangeFailed):
		return "Could not confirm the authorization with the payment provider"
	case errors.Is(err, usecase.ErrExchangeIncomplete):
		return "Payment provider did not return an account"
	case errors.Is(err, usecase.ErrPersistenceFailed):
		return "Account authorized but could not be saved, please try again"
	default:
		log.Error().Err(err).Msg("[oauth][handler] unexpected callback failure")
		return "Failed to link payment account"
	}
}

func mapConnectError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrMissingIdentity):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid bearer token", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrServiceUnavailable):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment account linking is not configured", http.StatusServiceUnavailable)
	default:
		return internalError(err)
	}
}
