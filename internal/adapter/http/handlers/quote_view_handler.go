package handlers

import (
	"errors"
	"net/http"
	"time"

	response "quoteflow/internal/adapter/http/dto/response"
	"quoteflow/internal/usecase"
	"quoteflow/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// QuoteViewHandler serves the public share-link read.
type QuoteViewHandler struct {
	usecase usecase.IQuoteViewUseCase
	now     func() time.Time
}

func NewQuoteViewHandler(uc usecase.IQuoteViewUseCase) *QuoteViewHandler {
	return &QuoteViewHandler{usecase: uc, now: time.Now}
}

// GetQuoteView godoc
// @Summary      Open a shared quote
// @Description  Returns the quote and its detailer, recording the view unless the quote is approved or paid.
// @Tags         public
// @Produce      json
// @Param        shareLink  path      string  true  "Share link token"
// @Success      200        {object}  response.QuoteViewResponse
// @Failure      404        {object}  pkg.HTTPError
// @Failure      429        {object}  pkg.HTTPError
// @Failure      500        {object}  pkg.HTTPError
// @Router       /quotes/view/{shareLink} [get]
func (h *QuoteViewHandler) GetQuoteView(c *gin.Context) {
	shareLink := c.Param("shareLink")

	res, err := h.usecase.RecordView(c.Request.Context(), shareLink, c.ClientIP(), c.Request.UserAgent(), h.now().UTC())
	if err != nil {
		appErr := mapQuoteViewError(err)
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			log.Error().Err(err).Msg("[quote][handler] view failed")
		}
		writeError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, response.FromQuoteView(res))
}

func mapQuoteViewError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
