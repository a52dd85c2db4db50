package tax

import "github.com/shopspring/decimal"

// Compute returns the sales tax and excise tax for a subtotal at the given
// jurisdiction rates. Both are rounded half-up to the currency's minor unit.
// Rates come from location configuration, never from user input.
func Compute(subtotal, taxRate, exciseRate decimal.Decimal) (tax, excise decimal.Decimal) {
	tax = subtotal.Mul(taxRate).Round(2)
	excise = subtotal.Mul(exciseRate).Round(2)
	return tax, excise
}

// Total combines the monetary components of an order, rounded to the
// currency's minor unit: subtotal + tax + excise - discount.
func Total(subtotal, tax, excise, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax).Add(excise).Sub(discount).Round(2)
}
