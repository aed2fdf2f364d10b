package routes

import (
	"quoteflow/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathPayments = "/payments"

func addPaymentRoutes(rg *gin.RouterGroup, h *handlers.BillingPaymentHandler, requireOwner gin.HandlerFunc) {
	payments := rg.Group(PathPayments, requireOwner)
	{
		payments.GET("/:payment_id", h.GetPayment)
	}
}
