package notification

import (
	"fmt"
	"strings"

	"quoteflow/internal/domain/entities"
)

const quoteViewedTitle = "Quote viewed"

func quoteViewedBody(q entities.Quote) string {
	who := strings.TrimSpace(q.CustomerName)
	if who == "" {
		who = "Your customer"
	}
	return fmt.Sprintf("%s just opened %q.", who, q.Title)
}
