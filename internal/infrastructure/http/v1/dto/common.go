// Package dto defines request and response shapes for the v1 API.
package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stockpick/internal/core/types"
)

// ParseAmount converts a major-unit amount string ("1234.56") to minor
// units, via decimal to avoid float rounding.
func ParseAmount(s string) (types.MinorUnits, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return types.MinorUnits(d.Mul(decimal.NewFromInt(100)).IntPart()), nil
}

// FormatAmount renders minor units as a major-unit string with two
// decimals.
func FormatAmount(m types.MinorUnits) string {
	return decimal.NewFromInt(int64(m)).Div(decimal.NewFromInt(100)).StringFixed(2)
}
