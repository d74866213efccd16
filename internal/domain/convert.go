package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopstock/internal/model"
)

// ToBaseQuantity converts a quantity in the given unit to the category's
// base unit. Quantities in the base unit itself pass through unchanged; no
// rounding happens here, only at monetary boundaries.
func ToBaseQuantity(unit model.Unit, baseUnitID uuid.UUID, quantity decimal.Decimal) decimal.Decimal {
	if unit.ID == baseUnitID {
		return quantity
	}
	return quantity.Mul(unit.ConversionToBase)
}

// RoundMoney rounds to 2 decimal places, half up. decimal.Round rounds half
// away from zero, which is half-up for the non-negative amounts handled here.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// TotalPrice is the stored line total: round(quantity * price_per_unit, 2).
func TotalPrice(quantity, pricePerUnit decimal.Decimal) decimal.Decimal {
	return RoundMoney(quantity.Mul(pricePerUnit))
}

// CalculatePrice prices a quantity against the product's base-unit price.
// For countable units the price scales with the conversion factor (a Dozen
// costs 12x the per-piece price); weight-like quantities are already
// expressed in base-compatible terms and do not scale.
func CalculatePrice(unit model.Unit, quantity, basePricePerUnit decimal.Decimal) decimal.Decimal {
	if unit.IsCountable {
		return RoundMoney(quantity.Mul(basePricePerUnit.Mul(unit.ConversionToBase)))
	}
	return RoundMoney(quantity.Mul(basePricePerUnit))
}

// PricePerBaseUnit converts a per-unit price to the category base unit: a
// per-dozen price over a conversion of 12 yields the per-piece price.
func PricePerBaseUnit(unit model.Unit, baseUnitID uuid.UUID, pricePerUnit decimal.Decimal) decimal.Decimal {
	if unit.ID == baseUnitID {
		return pricePerUnit
	}
	return pricePerUnit.Div(unit.ConversionToBase)
}

// IsPaid determines the payment flag at transaction-creation time: a DUE
// payment method forces unpaid regardless of the stated due amount.
func IsPaid(paymentMethod string, dueAmount decimal.Decimal) bool {
	return paymentMethod != model.PaymentDue && dueAmount.IsZero()
}

// ValidDueAmount checks 0 <= due <= total, and that a DUE payment actually
// carries a due amount.
func ValidDueAmount(paymentMethod string, dueAmount, totalAmount decimal.Decimal) error {
	if dueAmount.IsNegative() {
		return &InvalidDueAmountError{Due: dueAmount, Total: totalAmount, Reason: "due amount cannot be negative"}
	}
	if dueAmount.GreaterThan(totalAmount) {
		return &InvalidDueAmountError{Due: dueAmount, Total: totalAmount, Reason: "due amount cannot exceed total amount"}
	}
	if paymentMethod == model.PaymentDue && !dueAmount.IsPositive() {
		return &InvalidDueAmountError{Due: dueAmount, Total: totalAmount, Reason: "due amount must be greater than zero when payment method is DUE"}
	}
	return nil
}
