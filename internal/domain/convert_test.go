package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopstock/internal/model"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestToBaseQuantity(t *testing.T) {
	pieceID := uuid.New()
	piece := model.Unit{ID: pieceID, Name: "Piece", Symbol: "pc", IsCountable: true, ConversionToBase: d("1")}
	dozen := model.Unit{ID: uuid.New(), Name: "Dozen", Symbol: "dz", IsCountable: true, ConversionToBase: d("12")}
	gram := model.Unit{ID: uuid.New(), Name: "Gram", Symbol: "g", ConversionToBase: d("0.001")}

	tests := []struct {
		name string
		unit model.Unit
		qty  string
		want string
	}{
		{"base unit passes through", piece, "7.5", "7.5"},
		{"dozen converts to pieces", dozen, "5", "60"},
		{"fractional factor", gram, "250", "0.25"},
		{"fractional quantity", dozen, "0.5", "6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToBaseQuantity(tt.unit, pieceID, d(tt.qty))
			if !got.Equal(d(tt.want)) {
				t.Errorf("ToBaseQuantity(%s %s) = %s, want %s", tt.qty, tt.unit.Symbol, got, tt.want)
			}
		})
	}
}

func TestTotalPrice_RoundsHalfUp(t *testing.T) {
	tests := []struct {
		qty   string
		price string
		want  string
	}{
		{"3", "2.345", "7.04"}, // 7.035 rounds up, not to 7.03
		{"1", "2.344", "2.34"},
		{"2", "0.005", "0.01"},
		{"5", "120", "600"},
		{"1.5", "3.33", "5"},
	}
	for _, tt := range tests {
		got := TotalPrice(d(tt.qty), d(tt.price))
		if !got.Equal(d(tt.want)) {
			t.Errorf("TotalPrice(%s, %s) = %s, want %s", tt.qty, tt.price, got, tt.want)
		}
	}
}

func TestCalculatePrice(t *testing.T) {
	dozen := model.Unit{ID: uuid.New(), IsCountable: true, ConversionToBase: d("12")}
	kg := model.Unit{ID: uuid.New(), IsCountable: false, ConversionToBase: d("1")}

	// Countable units scale with the conversion factor.
	got := CalculatePrice(dozen, d("2"), d("10"))
	if !got.Equal(d("240")) {
		t.Errorf("CalculatePrice(dozen) = %s, want 240", got)
	}

	// Weight units do not.
	got = CalculatePrice(kg, d("2.5"), d("10"))
	if !got.Equal(d("25")) {
		t.Errorf("CalculatePrice(kg) = %s, want 25", got)
	}
}

func TestIsPaid(t *testing.T) {
	tests := []struct {
		method string
		due    string
		want   bool
	}{
		{model.PaymentCash, "0", true},
		{model.PaymentBank, "0", true},
		{model.PaymentCash, "10", false},
		{model.PaymentDue, "0", false}, // DUE forces unpaid regardless of due amount
		{model.PaymentDue, "50", false},
	}
	for _, tt := range tests {
		if got := IsPaid(tt.method, d(tt.due)); got != tt.want {
			t.Errorf("IsPaid(%s, %s) = %v, want %v", tt.method, tt.due, got, tt.want)
		}
	}
}

func TestValidDueAmount(t *testing.T) {
	if err := ValidDueAmount(model.PaymentCash, d("0"), d("100")); err != nil {
		t.Errorf("zero due with CASH should be valid: %v", err)
	}
	if err := ValidDueAmount(model.PaymentCash, d("100"), d("100")); err != nil {
		t.Errorf("due equal to total should be valid: %v", err)
	}
	if err := ValidDueAmount(model.PaymentCash, d("100.01"), d("100")); err == nil {
		t.Error("due above total should be rejected")
	}
	if err := ValidDueAmount(model.PaymentCash, d("-1"), d("100")); err == nil {
		t.Error("negative due should be rejected")
	}
	if err := ValidDueAmount(model.PaymentDue, d("0"), d("100")); err == nil {
		t.Error("DUE method with zero due should be rejected")
	}
}

func TestPricePerBaseUnit(t *testing.T) {
	baseID := uuid.New()
	base := model.Unit{ID: baseID, ConversionToBase: d("1")}
	dozen := model.Unit{ID: uuid.New(), ConversionToBase: d("12")}

	if got := PricePerBaseUnit(base, baseID, d("10")); !got.Equal(d("10")) {
		t.Errorf("base unit price = %s, want 10", got)
	}
	if got := PricePerBaseUnit(dozen, baseID, d("120")); !got.Equal(d("10")) {
		t.Errorf("dozen price per base = %s, want 10", got)
	}
}
