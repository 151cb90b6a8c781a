package schedule

import (
	"fmt"

	"autosave/models"
	"autosave/utils"

	"github.com/shopspring/decimal"
)

// CycleDays is the length of a daily-savings contribution cycle.
const CycleDays = 31

// ValidateDailyAmount checks amount against a daily-savings package: it must be
// a whole number of daily units, at least one day, and must fit in what is
// left of the current cycle. It returns "" when the amount is acceptable.
func ValidateDailyAmount(amount decimal.Decimal, pkg models.SelectablePackage) string {
	perDay := pkg.AmountPerDay
	if !perDay.IsPositive() {
		return "Daily amount is not configured for this package"
	}

	if !amount.Mod(perDay).IsZero() {
		return fmt.Sprintf("Amount must be a multiple of %s", utils.FormatNaira(perDay))
	}

	// Compared as decimals: the day count can exceed int64.
	days := amount.Div(perDay).Round(0)
	if days.LessThan(decimal.NewFromInt(1)) {
		return "Contribution amount is too small"
	}

	// Exactly CycleDays is allowed.
	if decimal.NewFromInt(int64(pkg.TotalCount)).Add(days).GreaterThan(decimal.NewFromInt(CycleDays)) {
		remaining := CycleDays - pkg.TotalCount
		if remaining < 0 {
			remaining = 0
		}
		maxAllowed := perDay.Mul(decimal.NewFromInt(int64(remaining)))
		return fmt.Sprintf("Max: %s (%d days remaining in cycle)", utils.FormatNaira(maxAllowed), remaining)
	}
	return ""
}
