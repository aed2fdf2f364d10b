package handlers

import (
	"context"
	"errors"
	"net/http"

	request "quoteflow/internal/adapter/http/dto/request"
	response "quoteflow/internal/adapter/http/dto/response"
	"quoteflow/internal/adapter/http/middleware"
	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase"
	"quoteflow/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidChangeOrderPayload = pkg.NewDomainErrorSimple("INVALID_CHANGE_ORDER_INPUT", "Invalid change order payload", http.StatusBadRequest)
)

// ChangeOrderHandler exposes change-order creation to owners and the
// approval-token flow to customers.
type ChangeOrderHandler struct {
	usecase usecase.IChangeOrderUseCase
}

func NewChangeOrderHandler(uc usecase.IChangeOrderUseCase) *ChangeOrderHandler {
	return &ChangeOrderHandler{usecase: uc}
}

// CreateChangeOrder godoc
// @Summary      Amend a shared quote
// @Tags         change-orders
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                            true  "Quote ID"
// @Param        body  body      request.ChangeOrderCreateRequest  true  "Change order"
// @Success      201   {object}  response.ChangeOrderResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /quotes/{id}/change-orders [post]
func (h *ChangeOrderHandler) CreateChangeOrder(c *gin.Context) {
	var payload request.ChangeOrderCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidChangeOrderPayload)
		return
	}
	amount, err := payload.ResolveAmount()
	if err != nil {
		writeError(c, errInvalidChangeOrderPayload)
		return
	}

	co, err := h.usecase.Create(c.Request.Context(), middleware.DetailerID(c), c.Param("id"), usecase.CreateChangeOrderInput{
		Amount: amount,
		Reason: payload.Reason,
	})
	if err != nil {
		writeError(c, mapChangeOrderError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromChangeOrder(co))
}

// ListChangeOrders godoc
// @Summary      List change orders of a quote
// @Tags         change-orders
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {array}   response.ChangeOrderResponse
// @Router       /quotes/{id}/change-orders [get]
func (h *ChangeOrderHandler) ListChangeOrders(c *gin.Context) {
	items, err := h.usecase.ListForOwner(c.Request.Context(), middleware.DetailerID(c), c.Param("id"))
	if err != nil {
		writeError(c, mapChangeOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromChangeOrders(items))
}

// GetChangeOrderView godoc
// @Summary      Open a change order by approval token
// @Tags         public
// @Produce      json
// @Param        approvalToken  path      string  true  "Approval token"
// @Success      200            {object}  response.ChangeOrderViewResponse
// @Failure      404            {object}  pkg.HTTPError
// @Router       /change-orders/view/{approvalToken} [get]
func (h *ChangeOrderHandler) GetChangeOrderView(c *gin.Context) {
	v, err := h.usecase.GetByApprovalToken(c.Request.Context(), c.Param("approvalToken"))
	if err != nil {
		writeError(c, mapChangeOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromChangeOrderView(v))
}

// ApproveChangeOrder godoc
// @Summary      Approve a change order
// @Tags         public
// @Produce      json
// @Param        approvalToken  path      string  true  "Approval token"
// @Success      200            {object}  response.ChangeOrderResponse
// @Failure      404            {object}  pkg.HTTPError
// @Failure      409            {object}  pkg.HTTPError
// @Router       /change-orders/view/{approvalToken}/approve [post]
func (h *ChangeOrderHandler) ApproveChangeOrder(c *gin.Context) {
	h.decide(c, h.usecase.Approve)
}

// DeclineChangeOrder godoc
// @Summary      Decline a change order
// @Tags         public
// @Produce      json
// @Param        approvalToken  path      string  true  "Approval token"
// @Success      200            {object}  response.ChangeOrderResponse
// @Failure      404            {object}  pkg.HTTPError
// @Failure      409            {object}  pkg.HTTPError
// @Router       /change-orders/view/{approvalToken}/decline [post]
func (h *ChangeOrderHandler) DeclineChangeOrder(c *gin.Context) {
	h.decide(c, h.usecase.Decline)
}

func (h *ChangeOrderHandler) decide(
	c *gin.Context,
	decider func(ctx context.Context, token string) (entities.ChangeOrder, error),
) {
	co, err := decider(c.Request.Context(), c.Param("approvalToken"))
	if err != nil {
		writeError(c, mapChangeOrderError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromChangeOrder(co))
}

func mapChangeOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidChangeOrderInput):
		return errInvalidChangeOrderPayload
	case errors.Is(err, usecase.ErrChangeOrderNotFound):
		return pkg.NewDomainErrorSimple("CHANGE_ORDER_NOT_FOUND", "Change order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrChangeOrderAlreadyDecided):
		return pkg.NewDomainErrorSimple("CHANGE_ORDER_ALREADY_DECIDED", "Change order was already decided", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteNotAmendable):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_AMENDABLE", "Quote can no longer be amended", http.StatusConflict)
	default:
		return mapQuoteError(err)
	}
}
