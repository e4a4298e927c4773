package valuation

import (
	"time"

	"github.com/KotFed0t/schedule_fa/internal/calendar"
	"github.com/KotFed0t/schedule_fa/internal/model"
	"github.com/shopspring/decimal"
)

// EffectiveQuantity applies every split dated on or after the acquisition day.
// Splits before acquisition never touched these units.
func EffectiveQuantity(quantity decimal.Decimal, splits []model.Split, acquired time.Time) decimal.Decimal {
	acquired = calendar.NormalizeDate(acquired)
	for _, s := range splits {
		if !calendar.NormalizeDate(s.Date).Before(acquired) {
			quantity = quantity.Mul(s.Ratio)
		}
	}
	return quantity
}
