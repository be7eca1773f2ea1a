package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/expense-tracker/internal/common"
)

// categoryChoice is the decoded answer to the category prompt: either an
// existing category picked by position or a new name typed in.
type categoryChoice interface {
	isCategoryChoice()
}

// byIndex selects an existing category by zero-based position.
type byIndex int

// byName names a category that should be registered before use.
type byName string

func (byIndex) isCategoryChoice() {}
func (byName) isCategoryChoice()  {}

// parseCategoryChoice decides once how the category answer is interpreted.
// A number within 1..count picks that category; anything else, including an
// out-of-range number, is taken as a new category name.
func parseCategoryChoice(input string, count int) (categoryChoice, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: category cannot be empty", common.ErrValidation)
	}

	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= count {
		return byIndex(n - 1), nil
	}
	return byName(input), nil
}

// parseAmount parses a signed decimal amount.
func parseAmount(input string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a valid amount", common.ErrValidation, input)
	}
	return amount, nil
}
