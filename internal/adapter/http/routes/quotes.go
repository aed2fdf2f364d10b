package routes

import (
	"quoteflow/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes       = "/quotes"
	PathQuoteViews   = "/quotes/view"
	PathChangeOrders = "/change-orders/view"
)

func addQuoteRoutes(rg *gin.RouterGroup, d Dependencies, requireOwner gin.HandlerFunc, public []gin.HandlerFunc) {
	views := rg.Group(PathQuoteViews, public...)
	{
		// Share-link endpoints used by the customer browser.
		views.GET("/:shareLink", d.QuoteViews.GetQuoteView)
		views.POST("/:shareLink/approve", d.Quotes.ApproveQuote)
		views.POST("/:shareLink/payments", d.Payments.PayQuote)
	}

	quotes := rg.Group(PathQuotes, requireOwner)
	{
		quotes.POST("", d.Quotes.CreateQuote)
		quotes.GET("", d.Quotes.ListQuotes)
		quotes.GET("/:id", d.Quotes.GetQuote)
		quotes.POST("/:id/send", d.Quotes.SendQuote)
		quotes.POST("/:id/change-orders", d.ChangeOrders.CreateChangeOrder)
		quotes.GET("/:id/change-orders", d.ChangeOrders.ListChangeOrders)
		quotes.GET("/:id/payments", d.Payments.ListQuotePayments)
	}
}

func addChangeOrderRoutes(rg *gin.RouterGroup, h *handlers.ChangeOrderHandler, public []gin.HandlerFunc) {
	changeOrders := rg.Group(PathChangeOrders, public...)
	{
		changeOrders.GET("/:approvalToken", h.GetChangeOrderView)
		changeOrders.POST("/:approvalToken/approve", h.ApproveChangeOrder)
		changeOrders.POST("/:approvalToken/decline", h.DeclineChangeOrder)
	}
}
