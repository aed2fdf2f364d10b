package routes

import (
	_ "quoteflow/docs" // generated by swag init
	"quoteflow/internal/adapter/http/handlers"
	"quoteflow/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the handlers and middleware settings the router mounts.
type Dependencies struct {
	QuoteViews   *handlers.QuoteViewHandler
	Quotes       *handlers.QuoteHandler
	ChangeOrders *handlers.ChangeOrderHandler
	Payments     *handlers.BillingPaymentHandler
	AccountLink  *handlers.AccountLinkHandler

	AuthSecret    string
	PublicLimiter *middleware.IPRateLimiter
}

// NewRouter builds the gin engine with every /v1 route and the swagger UI.
func NewRouter(d Dependencies) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireOwner := middleware.RequireDetailer(d.AuthSecret)
	public := []gin.HandlerFunc{}
	if d.PublicLimiter != nil {
		public = append(public, d.PublicLimiter.Handler())
	}

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuoteRoutes(v1, d, requireOwner, public)
	addChangeOrderRoutes(v1, d.ChangeOrders, public)
	addPaymentRoutes(v1, d.Payments, requireOwner)
	addOAuthRoutes(v1, d.AccountLink, requireOwner)
	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().Interface("panic", recovered).Str("path", c.FullPath()).Msg("[http][router] recovered from panic")
		c.AbortWithStatus(500)
	}))
}
