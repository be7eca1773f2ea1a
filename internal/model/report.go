package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ChartSlice is one category's share of a pie chart.
type ChartSlice struct {
	Category string
	Amount   decimal.Decimal
	Percent  decimal.Decimal
}

// Label returns the slice label with the percentage to one decimal place.
func (s ChartSlice) Label() string {
	return fmt.Sprintf("%s %s%%", s.Category, s.Percent.StringFixed(1))
}

// ChartReport describes a rendered chart.
type ChartReport struct {
	Path   string
	Slices []ChartSlice
	Opened bool
}
