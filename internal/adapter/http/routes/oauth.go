package routes

import (
	"quoteflow/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathOAuth = "/oauth"

func addOAuthRoutes(rg *gin.RouterGroup, h *handlers.AccountLinkHandler, requireOwner gin.HandlerFunc) {
	oauth := rg.Group(PathOAuth)
	{
		oauth.GET("/connect", requireOwner, h.Connect)
		// The provider redirects the browser here; no bearer token is present.
		oauth.GET("/callback", h.Callback)
	}
}
