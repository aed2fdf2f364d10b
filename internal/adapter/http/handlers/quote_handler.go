package handlers

import (
	"errors"
	"net/http"

	request "quoteflow/internal/adapter/http/dto/request"
	response "quoteflow/internal/adapter/http/dto/response"
	"quoteflow/internal/adapter/http/middleware"
	"quoteflow/internal/usecase"
	"quoteflow/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)
)

// QuoteHandler handles owner quote management and customer approval.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// CreateQuote godoc
// @Summary      Create a draft quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body      request.QuoteCreateRequest  true  "Quote"
// @Success      201   {object}  response.QuoteResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      401   {object}  pkg.HTTPError
// @Router       /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.QuoteCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidQuotePayload)
		return
	}
	payload = payload.Normalized()

	total, err := payload.ResolveTotal()
	if err != nil {
		writeError(c, errInvalidQuotePayload)
		return
	}

	q, err := h.usecase.Create(c.Request.Context(), middleware.DetailerID(c), usecase.CreateQuoteInput{
		Title:         payload.Title,
		CustomerName:  payload.CustomerName,
		CustomerEmail: payload.CustomerEmail,
		Total:         total,
	})
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}

	c.JSON(http.StatusCreated, response.FromQuote(q))
}

// ListQuotes godoc
// @Summary      List the caller's quotes
// @Tags         quotes
// @Produce      json
// @Security     Bearer
// @Success      200  {array}   response.QuoteResponse
// @Failure      401  {object}  pkg.HTTPError
// @Router       /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	items, err := h.usecase.ListForOwner(c.Request.Context(), middleware.DetailerID(c))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(items))
}

// GetQuote godoc
// @Summary      Get one of the caller's quotes
// @Tags         quotes
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  response.QuoteResponse
// @Failure      403  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	q, err := h.usecase.GetForOwner(c.Request.Context(), middleware.DetailerID(c), c.Param("id"))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// SendQuote godoc
// @Summary      Mark a draft quote as sent
// @Tags         quotes
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  response.QuoteResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /quotes/{id}/send [post]
func (h *QuoteHandler) SendQuote(c *gin.Context) {
	q, err := h.usecase.Send(c.Request.Context(), middleware.DetailerID(c), c.Param("id"))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	log.Info().Str("quote_id", q.ID).Msg("[quote][handler] sent")
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// ApproveQuote godoc
// @Summary      Approve a shared quote
// @Tags         public
// @Produce      json
// @Param        shareLink  path      string  true  "Share link token"
// @Success      200        {object}  response.PublicQuoteResponse
// @Failure      404        {object}  pkg.HTTPError
// @Failure      409        {object}  pkg.HTTPError
// @Router       /quotes/view/{shareLink}/approve [post]
func (h *QuoteHandler) ApproveQuote(c *gin.Context) {
	q, err := h.usecase.ApproveByShareLink(c.Request.Context(), c.Param("shareLink"))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPublicQuote(q))
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrMissingIdentity):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid bearer token", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrInvalidQuoteID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidQuoteInput):
		return errInvalidQuotePayload
	case errors.Is(err, usecase.ErrQuoteForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Quote belongs to another detailer", http.StatusForbidden)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotSendable):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_SENDABLE", "Only draft quotes can be sent", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteNotApprovable):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_APPROVABLE", "Quote cannot be approved in its current status", http.StatusConflict)
	default:
		return internalError(err)
	}
}
