package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopstock/internal/model"
)

func intPtr(n int) *int { return &n }

func eggsCategory() (model.Category, model.Unit, model.Unit) {
	piece := model.Unit{ID: uuid.New(), Name: "Piece", Symbol: "pc", IsCountable: true, ConversionToBase: d("1")}
	dozen := model.Unit{ID: uuid.New(), Name: "Dozen", Symbol: "dz", IsCountable: true, ConversionToBase: d("12")}
	cat := model.Category{
		ID:               uuid.New(),
		Name:             "Eggs",
		BaseUnitID:       piece.ID,
		BaseUnit:         piece,
		TransactionUnits: []model.Unit{piece, dozen},
	}
	return cat, piece, dozen
}

func TestStockDelta_Signs(t *testing.T) {
	cat, _, dozen := eggsCategory()

	buy := StockDelta(model.TxTypeBuy, dozen, cat.BaseUnitID, d("5"), nil)
	if !buy.Stock.Equal(d("60")) {
		t.Errorf("BUY 5 dozen stock delta = %s, want 60", buy.Stock)
	}

	sell := StockDelta(model.TxTypeSell, dozen, cat.BaseUnitID, d("2"), nil)
	if !sell.Stock.Equal(d("-24")) {
		t.Errorf("SELL 2 dozen stock delta = %s, want -24", sell.Stock)
	}
}

func TestStockDelta_Pieces(t *testing.T) {
	cat, _, dozen := eggsCategory()
	kg := model.Unit{ID: uuid.New(), Name: "Kilogram", Symbol: "kg", ConversionToBase: d("1")}

	// Countable unit: pieces convert through the factor.
	mv := StockDelta(model.TxTypeBuy, dozen, cat.BaseUnitID, d("5"), intPtr(5))
	if mv.Pieces != 60 {
		t.Errorf("countable pieces delta = %d, want 60", mv.Pieces)
	}

	// Weight unit: pieces pass through unchanged.
	mv = StockDelta(model.TxTypeSell, kg, cat.BaseUnitID, d("3"), intPtr(4))
	if mv.Pieces != -4 {
		t.Errorf("weight pieces delta = %d, want -4", mv.Pieces)
	}

	// Absent pieces leave the counter alone.
	mv = StockDelta(model.TxTypeBuy, dozen, cat.BaseUnitID, d("5"), nil)
	if mv.Pieces != 0 {
		t.Errorf("nil pieces delta = %d, want 0", mv.Pieces)
	}
}

func TestMovement_Apply_Clamps(t *testing.T) {
	stock, pieces := Movement{Stock: d("-5"), Pieces: -3}.Apply(d("2"), 1)
	if !stock.IsZero() || pieces != 0 {
		t.Errorf("Apply clamped to (%s, %d), want (0, 0)", stock, pieces)
	}

	stock, pieces = Movement{Stock: d("10"), Pieces: 10}.Apply(d("2"), 1)
	if !stock.Equal(d("12")) || pieces != 11 {
		t.Errorf("Apply = (%s, %d), want (12, 11)", stock, pieces)
	}
}

func TestStockReplay(t *testing.T) {
	// Any sequence of BUY/SELL movements replayed over a fresh product must
	// land on the signed sum of base quantities, floored at zero.
	cat, piece, dozen := eggsCategory()

	moves := []Movement{
		StockDelta(model.TxTypeBuy, dozen, cat.BaseUnitID, d("2"), nil),  // +24
		StockDelta(model.TxTypeSell, piece, cat.BaseUnitID, d("10"), nil), // -10
		StockDelta(model.TxTypeBuy, piece, cat.BaseUnitID, d("6"), nil),  // +6
		StockDelta(model.TxTypeSell, dozen, cat.BaseUnitID, d("1"), nil), // -12
	}

	stock := decimal.Zero
	pieces := 0
	for _, mv := range moves {
		stock, pieces = mv.Apply(stock, pieces)
	}
	if !stock.Equal(d("8")) {
		t.Errorf("replayed stock = %s, want 8", stock)
	}
}

func TestValidateItem(t *testing.T) {
	cat, piece, dozen := eggsCategory()
	crate := model.Unit{ID: uuid.New(), Name: "Crate", Symbol: "cr", IsCountable: true, ConversionToBase: d("30")}

	if err := ValidateItem(model.TxTypeBuy, cat, dozen, d("5"), d("120"), decimal.Zero); err != nil {
		t.Errorf("valid BUY rejected: %v", err)
	}

	if err := ValidateItem(model.TxTypeBuy, cat, crate, d("1"), d("10"), decimal.Zero); !errors.Is(err, ErrUnitNotAllowed) {
		t.Errorf("disallowed unit: got %v, want ErrUnitNotAllowed", err)
	}

	if err := ValidateItem(model.TxTypeBuy, cat, piece, d("0"), d("10"), decimal.Zero); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero quantity: got %v, want ErrInvalidQuantity", err)
	}

	if err := ValidateItem(model.TxTypeBuy, cat, piece, d("1"), d("-1"), decimal.Zero); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("negative price: got %v, want ErrInvalidPrice", err)
	}

	// SELL beyond stock reports available vs requested in base units.
	err := ValidateItem(model.TxTypeSell, cat, dozen, d("2"), d("10"), d("20"))
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("oversell: got %v, want InsufficientStockError", err)
	}
	if !insufficient.Available.Equal(d("20")) || !insufficient.Requested.Equal(d("24")) {
		t.Errorf("InsufficientStockError = available %s requested %s, want 20/24",
			insufficient.Available, insufficient.Requested)
	}
	if insufficient.UnitSymbol != "pc" {
		t.Errorf("InsufficientStockError symbol = %q, want pc", insufficient.UnitSymbol)
	}

	// SELL exactly at stock is allowed.
	if err := ValidateItem(model.TxTypeSell, cat, dozen, d("2"), d("10"), d("24")); err != nil {
		t.Errorf("sell at exact stock rejected: %v", err)
	}
}

func TestValidateItemRequiresTransactionUnitMembership(t *testing.T) {
	// A category sold only by the dozen: the base unit is not in the
	// transaction units and must be rejected like any other outsider.
	piece := model.Unit{ID: uuid.New(), Name: "Piece", Symbol: "pc", IsCountable: true, ConversionToBase: d("1")}
	dozen := model.Unit{ID: uuid.New(), Name: "Dozen", Symbol: "dz", IsCountable: true, ConversionToBase: d("12")}
	cat := model.Category{
		ID:               uuid.New(),
		Name:             "Eggs",
		BaseUnitID:       piece.ID,
		BaseUnit:         piece,
		TransactionUnits: []model.Unit{dozen},
	}

	if err := ValidateItem(model.TxTypeSell, cat, piece, d("5"), d("10"), d("100")); !errors.Is(err, ErrUnitNotAllowed) {
		t.Errorf("SELL in non-listed base unit: got %v, want ErrUnitNotAllowed", err)
	}
	if err := ValidateItem(model.TxTypeBuy, cat, piece, d("5"), d("10"), decimal.Zero); !errors.Is(err, ErrUnitNotAllowed) {
		t.Errorf("BUY in non-listed base unit: got %v, want ErrUnitNotAllowed", err)
	}
	if err := ValidateItem(model.TxTypeSell, cat, dozen, d("1"), d("120"), d("12")); err != nil {
		t.Errorf("SELL in listed unit rejected: %v", err)
	}
}

func TestValidateOrderLine(t *testing.T) {
	// Order lines are base-unit quantities with no unit choice, so they are
	// exempt from the transaction-unit whitelist.
	piece := model.Unit{ID: uuid.New(), Name: "Piece", Symbol: "pc", IsCountable: true, ConversionToBase: d("1")}
	dozen := model.Unit{ID: uuid.New(), Name: "Dozen", Symbol: "dz", IsCountable: true, ConversionToBase: d("12")}
	cat := model.Category{
		ID:               uuid.New(),
		Name:             "Eggs",
		BaseUnitID:       piece.ID,
		BaseUnit:         piece,
		TransactionUnits: []model.Unit{dozen},
	}

	if err := ValidateOrderLine(cat, d("5"), d("10"), d("6")); err != nil {
		t.Errorf("valid order line rejected: %v", err)
	}
	if err := ValidateOrderLine(cat, d("0"), d("10"), d("6")); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero quantity: got %v, want ErrInvalidQuantity", err)
	}
	if err := ValidateOrderLine(cat, d("5"), d("-1"), d("6")); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("negative price: got %v, want ErrInvalidPrice", err)
	}

	err := ValidateOrderLine(cat, d("8"), d("10"), d("6"))
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("oversized line: got %v, want InsufficientStockError", err)
	}
	if !insufficient.Available.Equal(d("6")) || !insufficient.Requested.Equal(d("8")) {
		t.Errorf("InsufficientStockError = available %s requested %s, want 6/8",
			insufficient.Available, insufficient.Requested)
	}
}

func TestIsBusinessError(t *testing.T) {
	if !IsBusinessError(ErrUnitNotAllowed) {
		t.Error("sentinel not recognized as business error")
	}
	if !IsBusinessError(&InsufficientStockError{Available: d("1"), Requested: d("2")}) {
		t.Error("InsufficientStockError not recognized as business error")
	}
	if IsBusinessError(errors.New("connection refused")) {
		t.Error("arbitrary error misclassified as business error")
	}
}
