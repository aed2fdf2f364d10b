package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	response "quoteflow/internal/adapter/http/dto/response"
	"quoteflow/internal/adapter/http/middleware"
	"quoteflow/internal/usecase"
	"quoteflow/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// BillingPaymentHandler handles HTTP requests for quote payments.
type BillingPaymentHandler struct {
	usecase usecase.IBillingPaymentUseCase
	// lenientPayload substitutes an empty payload for unreadable bodies. Set
	// when the gateway runs in mock mode.
	lenientPayload bool
}

func NewBillingPaymentHandler(uc usecase.IBillingPaymentUseCase, lenientPayload bool) *BillingPaymentHandler {
	return &BillingPaymentHandler{usecase: uc, lenientPayload: lenientPayload}
}

// PayQuote godoc
// @Summary      Pay an approved quote
// @Description  Forwards the Mercado Pago payload (bare or wrapped in mp_payload) and marks the quote paid when approved.
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        shareLink  path      string                               true   "Share link token"
// @Param        body       body      request.BillingPaymentCreateRequest  false  "Mercado Pago payload"
// @Success      200        {object}  response.BillingPaymentResponse
// @Failure      400        {object}  pkg.HTTPError
// @Failure      404        {object}  pkg.HTTPError
// @Failure      409        {object}  pkg.HTTPError
// @Router       /quotes/view/{shareLink}/payments [post]
func (h *BillingPaymentHandler) PayQuote(c *gin.Context) {
	shareLink := c.Param("shareLink")
	mpPayload, err := readMPPayload(c)
	if err != nil {
		if h.lenientPayload {
			log.Warn().Err(err).Msg("[payment][handler] payload invalid in mock mode; using empty payload")
			mpPayload = json.RawMessage("{}")
		} else {
			log.Info().Err(err).Msg("[payment][handler] invalid payload")
			writeError(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest))
			return
		}
	}

	created, err := h.usecase.PayByShareLink(c.Request.Context(), shareLink, mpPayload)
	if err != nil {
		log.Warn().Err(err).Msg("[payment][handler] create failed")
		writeError(c, mapBillingPaymentError(err))
		return
	}
	log.Info().Str("quote_id", created.QuoteID).Str("payment_id", created.ID).Str("status", string(created.Status)).Msg("[payment][handler] create success")

	c.JSON(http.StatusOK, response.FromBillingPayment(created))
}

// ListQuotePayments godoc
// @Summary      List payments of a quote
// @Tags         payments
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {array}   response.BillingPaymentResponse
// @Failure      403  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quotes/{id}/payments [get]
func (h *BillingPaymentHandler) ListQuotePayments(c *gin.Context) {
	payments, err := h.usecase.ListForOwner(c.Request.Context(), middleware.DetailerID(c), c.Param("id"))
	if err != nil {
		writeError(c, mapBillingPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBillingPayments(payments))
}

// GetPayment godoc
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Security     Bearer
// @Param        payment_id  path      string  true  "Payment ID"
// @Success      200         {object}  response.BillingPaymentResponse
// @Failure      404         {object}  pkg.HTTPError
// @Router       /payments/{payment_id} [get]
func (h *BillingPaymentHandler) GetPayment(c *gin.Context) {
	p, err := h.usecase.GetForOwner(c.Request.Context(), middleware.DetailerID(c), c.Param("payment_id"))
	if err != nil {
		writeError(c, mapBillingPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBillingPayment(p))
}

func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapBillingPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentID), errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrServiceUnavailable):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrQuoteNotApproved):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_APPROVED", "Quote not approved", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteAlreadyPaid):
		return pkg.NewDomainErrorSimple("QUOTE_ALREADY_PAID", "Quote already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrBillingPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return mapQuoteError(err)
	}
}
