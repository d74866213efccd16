package service

import (
	"context"
	"errors"
	"testing"

	"shopstock/internal/domain"
	"shopstock/internal/model"
)

func TestCreateOrderMutatesStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.buyEggs(t, "5", "120", env.dozen) // 60 pieces

	order, err := env.orders.CreateOrder(context.Background(), env.owner.ID.String(), CreateOrderRequest{
		ShopID:        env.shop.ID.String(),
		PaymentMethod: model.PaymentCash,
		Items: []OrderItemInput{
			{ProductID: product.ID, Quantity: "24", UnitPrice: "12", Discount: "8"},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.Subtotal != "288.00" {
		t.Errorf("subtotal = %s, want 288.00", order.Subtotal)
	}
	if order.DiscountTotal != "8.00" {
		t.Errorf("discount total = %s, want 8.00", order.DiscountTotal)
	}
	if order.FinalTotal != "280.00" {
		t.Errorf("final total = %s, want 280.00", order.FinalTotal)
	}
	if !order.IsPaid {
		t.Error("CASH order with no due should be paid")
	}

	// Orders sell through the same stock path the ledger uses.
	stock, _ := env.productStock(t, product.ID)
	if stock != "36" {
		t.Errorf("stock after order = %s, want 36", stock)
	}
}

func TestCreateOrderRejectsInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.buyEggs(t, "10", "10", env.piece)

	_, err := env.orders.CreateOrder(context.Background(), env.owner.ID.String(), CreateOrderRequest{
		ShopID:        env.shop.ID.String(),
		PaymentMethod: model.PaymentCash,
		Items: []OrderItemInput{
			{ProductID: product.ID, Quantity: "11", UnitPrice: "12"},
		},
	})
	var insufficient *domain.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}

	stock, _ := env.productStock(t, product.ID)
	if stock != "10" {
		t.Errorf("stock after rejected order = %s, want 10", stock)
	}
	var count int64
	env.db.Model(&model.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("orders after rejection = %d, want 0", count)
	}
}

func TestCreateOrderMultiLineIsAtomic(t *testing.T) {
	env := newTestEnv(t)
	product := env.buyEggs(t, "10", "10", env.piece)

	// Second line overdraws after the first line consumed stock; the whole
	// order must roll back, first line included.
	_, err := env.orders.CreateOrder(context.Background(), env.owner.ID.String(), CreateOrderRequest{
		ShopID:        env.shop.ID.String(),
		PaymentMethod: model.PaymentCash,
		Items: []OrderItemInput{
			{ProductID: product.ID, Quantity: "6", UnitPrice: "12"},
			{ProductID: product.ID, Quantity: "6", UnitPrice: "12"},
		},
	})
	var insufficient *domain.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}

	stock, _ := env.productStock(t, product.ID)
	if stock != "10" {
		t.Errorf("stock after rolled-back order = %s, want 10", stock)
	}
}

func TestCreateOrderSellsBaseUnitNotListedForTransactions(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedDozenOnlyProduct(t, "2") // 24 pieces on hand

	// Order lines are base-unit quantities; they go through even when the
	// base unit is not one of the category's transaction units.
	order, err := env.orders.CreateOrder(context.Background(), env.owner.ID.String(), CreateOrderRequest{
		ShopID:        env.shop.ID.String(),
		PaymentMethod: model.PaymentCash,
		Items: []OrderItemInput{
			{ProductID: product.ID, Quantity: "5", UnitPrice: "15"},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.FinalTotal != "75.00" {
		t.Errorf("final total = %s, want 75.00", order.FinalTotal)
	}

	stock, _ := env.productStock(t, product.ID)
	if stock != "19" {
		t.Errorf("stock after order = %s, want 19", stock)
	}
}

func TestCreateOrderRejectsForeignShop(t *testing.T) {
	env := newTestEnv(t)
	product := env.buyEggs(t, "10", "10", env.piece)

	_, err := env.orders.CreateOrder(context.Background(), env.stranger.ID.String(), CreateOrderRequest{
		ShopID:        env.shop.ID.String(),
		PaymentMethod: model.PaymentCash,
		Items: []OrderItemInput{
			{ProductID: product.ID, Quantity: "1", UnitPrice: "12"},
		},
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateOrderDueTracksPaymentState(t *testing.T) {
	env := newTestEnv(t)
	product := env.buyEggs(t, "10", "10", env.piece)

	order, err := env.orders.CreateOrder(context.Background(), env.owner.ID.String(), CreateOrderRequest{
		ShopID:        env.shop.ID.String(),
		PaymentMethod: model.PaymentDue,
		DueAmount:     "120.00",
		Items: []OrderItemInput{
			{ProductID: product.ID, Quantity: "10", UnitPrice: "12"},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.IsPaid {
		t.Error("DUE order must not be paid")
	}
	if order.DueAmount != "120.00" {
		t.Errorf("due amount = %s, want 120.00", order.DueAmount)
	}
}

func TestListOrders(t *testing.T) {
	env := newTestEnv(t)
	product := env.buyEggs(t, "10", "10", env.piece)

	for i := 0; i < 3; i++ {
		if _, err := env.orders.CreateOrder(context.Background(), env.owner.ID.String(), CreateOrderRequest{
			ShopID:        env.shop.ID.String(),
			PaymentMethod: model.PaymentCash,
			Items: []OrderItemInput{
				{ProductID: product.ID, Quantity: "2", UnitPrice: "12"},
			},
		}); err != nil {
			t.Fatalf("order %d: %v", i, err)
		}
	}

	orders, total, err := env.orders.ListOrders(context.Background(), env.owner.ID.String(), env.shop.ID.String(), 1, 2)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(orders) != 2 {
		t.Errorf("page size = %d, want 2", len(orders))
	}
}
