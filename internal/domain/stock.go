package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopstock/internal/model"
)

// Movement is the stock effect of one transaction item, derived as a pure
// value before anything is written: a signed base-unit stock delta and a
// signed pieces delta. BUY movements are positive, SELL negative.
type Movement struct {
	Stock  decimal.Decimal
	Pieces int
}

// StockDelta derives the movement a transaction item causes. piecesCount,
// when present, converts through the unit factor only for countable units;
// weight-like units carry the pieces count through unchanged.
func StockDelta(transactionType string, unit model.Unit, baseUnitID uuid.UUID, quantity decimal.Decimal, piecesCount *int) Movement {
	mv := Movement{Stock: ToBaseQuantity(unit, baseUnitID, quantity)}

	if piecesCount != nil {
		if unit.IsCountable {
			mv.Pieces = int(decimal.NewFromInt(int64(*piecesCount)).Mul(unit.ConversionToBase).IntPart())
		} else {
			mv.Pieces = *piecesCount
		}
	}

	if transactionType == model.TxTypeSell {
		mv.Stock = mv.Stock.Neg()
		mv.Pieces = -mv.Pieces
	}
	return mv
}

// Apply returns the product counters after a movement, clamped at zero.
// SELL callers must have rejected insufficient stock before applying; the
// clamp here only absorbs rounding residue and BUY-direction edge cases.
func (mv Movement) Apply(currentStock decimal.Decimal, piecesCount int) (decimal.Decimal, int) {
	stock := currentStock.Add(mv.Stock)
	if stock.IsNegative() {
		stock = decimal.Zero
	}
	pieces := piecesCount + mv.Pieces
	if pieces < 0 {
		pieces = 0
	}
	return stock, pieces
}

// ValidateItem runs the pre-write checks shared by every path that records a
// transaction item. sellableStock is the product's current stock; it is only
// consulted for SELL items.
func ValidateItem(transactionType string, category model.Category, unit model.Unit, quantity, pricePerUnit, sellableStock decimal.Decimal) error {
	if !quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	if pricePerUnit.IsNegative() {
		return ErrInvalidPrice
	}
	if !unitAllowed(category, unit) {
		return ErrUnitNotAllowed
	}
	if transactionType == model.TxTypeSell {
		return SufficientStock(category, unit, quantity, sellableStock)
	}
	return nil
}

// ValidateOrderLine runs the pre-write checks for a point-of-sale order line.
// Order quantities are denominated in the category's base unit and carry no
// unit choice, so the transaction-unit whitelist does not apply to them.
func ValidateOrderLine(category model.Category, quantity, unitPrice, sellableStock decimal.Decimal) error {
	if !quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return ErrInvalidPrice
	}
	return SufficientStock(category, category.BaseUnit, quantity, sellableStock)
}

// SufficientStock checks a SELL quantity against the available stock, both
// expressed in base units.
func SufficientStock(category model.Category, unit model.Unit, quantity, sellableStock decimal.Decimal) error {
	baseQty := ToBaseQuantity(unit, category.BaseUnitID, quantity)
	if baseQty.GreaterThan(sellableStock) {
		return &InsufficientStockError{
			Available:  sellableStock,
			Requested:  baseQty,
			UnitSymbol: category.BaseUnit.Symbol,
		}
	}
	return nil
}

// A unit is legal for a category only by membership in its transaction
// units; the base unit gets no implicit pass.
func unitAllowed(category model.Category, unit model.Unit) bool {
	for _, allowed := range category.TransactionUnits {
		if allowed.ID == unit.ID {
			return true
		}
	}
	return false
}
