package output

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tirecycle/feasibility/internal/domain"
	"github.com/tirecycle/feasibility/pkg/dateutil"
	"github.com/tirecycle/feasibility/pkg/money"
)

// FormatCurrency formats a decimal as grouped currency with 2 decimals.
func FormatCurrency(amount decimal.Decimal) string { return money.NewMoneyFromDecimal(amount).Format() }

// FormatWholeCurrency formats a decimal as grouped currency without cents.
func FormatWholeCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).FormatWhole()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatTons formats a tonnage with one decimal.
func FormatTons(tons decimal.Decimal) string { return tons.StringFixed(1) + " t" }

// FormatPayback renders a payback period. The sentinel is never shown as a duration.
func FormatPayback(months int) string {
	if months == domain.PaybackSentinel {
		return fmt.Sprintf("> %d years", domain.PaybackSentinel/12)
	}
	years, rest := dateutil.SplitMonths(months)
	return fmt.Sprintf("%d months (%dy %dm)", months, years, rest)
}

// FormatIRR renders "N/A" for a rate the solver could not establish.
func FormatIRR(r domain.FinancialResults) string {
	if !r.IRRComputable {
		return "N/A"
	}
	return FormatPercentage(r.IRRPercentage)
}

// PaybackDate returns the month the investment is recovered, or "" when the plant has
// no commissioning date or never pays back.
func PaybackDate(cfg domain.PlantConfiguration, r domain.FinancialResults) string {
	if cfg.StartDate == nil || !r.PaysBack() {
		return ""
	}
	return dateutil.PaybackDate(*cfg.StartDate, r.PaybackMonths).Format("Jan 2006")
}

// yearLabel labels projection year n with its calendar year when the plant has a
// commissioning date.
func yearLabel(cfg domain.PlantConfiguration, n int) string {
	if cfg.StartDate == nil {
		return "Year " + strconv.Itoa(n)
	}
	return fmt.Sprintf("Year %d (%d)", n, dateutil.OperatingYear(*cfg.StartDate, n))
}

func calendarYear(start *time.Time, n int) string {
	if start == nil {
		return ""
	}
	return strconv.Itoa(dateutil.OperatingYear(*start, n))
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
