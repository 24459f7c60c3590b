package tracker

import "github.com/shopspring/decimal"

// Денежные колонки схемы имеют тип NUMERIC(12, 2).
const moneyScale = 2

var moneyLimit = decimal.New(1, 10)

// validateMoney проверяет, что сумма помещается в денежную колонку без округления.
func validateMoney(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return validationError("%s must not be negative", field)
	}
	if !v.Equal(v.Truncate(moneyScale)) {
		return validationError("%s must have at most %d decimal places, got %s", field, moneyScale, v)
	}
	if v.GreaterThanOrEqual(moneyLimit) {
		return validationError("%s must be less than %s, got %s", field, moneyLimit, v)
	}
	return nil
}
