package pdf

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/domain"
)

const receiptDateLayout = "January 02, 2006 03:04 PM"

var amountPrinter = message.NewPrinter(language.English)

// formatRand renders an amount as "R 12,345.00".
func formatRand(amount decimal.Decimal) string {
	return amountPrinter.Sprintf("R %v", number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
}

func formatDate(t time.Time) string {
	return t.Format(receiptDateLayout)
}

// statusLabel prints the stored status code as is, e.g. "PAID".
func statusLabel(status domain.Status) string {
	return string(status)
}

func categoryLabel(plan domain.Plan) string {
	if plan.CategoryLabel != "" {
		return plan.CategoryLabel
	}
	switch strings.ToUpper(plan.Category) {
	case "PLAN":
		return "House Plan"
	case "BUILT":
		return "Built Home"
	default:
		return plan.Category
	}
}
