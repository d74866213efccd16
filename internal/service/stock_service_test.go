package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"shopstock/internal/domain"
	"shopstock/internal/model"

	"github.com/shopspring/decimal"
)

func TestAddStockCreatesProductAndLedgerEntry(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.stock.AddStock(context.Background(), env.owner.ID.String(), AddStockRequest{
		ShopID:             env.shop.ID.String(),
		SubCategoryID:      env.chicken.ID.String(),
		Quantity:           "5",
		UnitID:             env.dozen.ID.String(),
		BuyingPricePerUnit: "120",
		PaymentMethod:      model.PaymentCash,
	})
	if err != nil {
		t.Fatalf("AddStock: %v", err)
	}

	if !result.ProductCreated {
		t.Error("expected product_created to be true on first purchase")
	}
	if !result.TransactionCreated {
		t.Error("expected transaction_created to be true")
	}
	// 5 dozen at conversion 12 lands as 60 base units
	if result.CurrentStock != "60" {
		t.Errorf("current stock = %s, want 60", result.CurrentStock)
	}
	if result.TotalAmount != "600.00" {
		t.Errorf("total amount = %s, want 600.00", result.TotalAmount)
	}
	if !result.IsPaid {
		t.Error("CASH purchase with no due should be paid")
	}

	transaction, err := env.transactions.GetTransaction(context.Background(), env.owner.ID.String(), result.TransactionID)
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if transaction.TransactionType != model.TxTypeBuy {
		t.Errorf("transaction type = %s, want BUY", transaction.TransactionType)
	}
	if len(transaction.Items) != 1 {
		t.Fatalf("transaction items = %d, want 1", len(transaction.Items))
	}
	if transaction.Items[0].Quantity != "5" {
		t.Errorf("item quantity = %s, want 5", transaction.Items[0].Quantity)
	}
	if transaction.ExternalPartyName != "Unknown" {
		t.Errorf("external party = %q, want Unknown", transaction.ExternalPartyName)
	}
}

func TestAddStockSecondPurchaseReusesProduct(t *testing.T) {
	env := newTestEnv(t)

	first := env.buyEggs(t, "2", "10", env.dozen)
	second := env.buyEggs(t, "6", "10", env.piece)

	if second.ProductCreated {
		t.Error("second purchase must not report product_created")
	}
	if second.ID != first.ID {
		t.Error("both purchases must land on the same product row")
	}
	if second.CurrentStock != "30" {
		t.Errorf("current stock = %s, want 30", second.CurrentStock)
	}
}

func TestAddStockRejectsDisallowedUnit(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.stock.AddStock(context.Background(), env.owner.ID.String(), AddStockRequest{
		ShopID:             env.shop.ID.String(),
		SubCategoryID:      env.chicken.ID.String(),
		Quantity:           "5",
		UnitID:             env.kg.ID.String(),
		BuyingPricePerUnit: "120",
		PaymentMethod:      model.PaymentCash,
	})
	if !errors.Is(err, domain.ErrUnitNotAllowed) {
		t.Fatalf("err = %v, want ErrUnitNotAllowed", err)
	}

	var count int64
	env.db.Model(&model.ShopProduct{}).Count(&count)
	if count != 0 {
		t.Error("rejected purchase must not create a product")
	}
}

func TestAddStockDuePaymentRequiresDueAmount(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.stock.AddStock(context.Background(), env.owner.ID.String(), AddStockRequest{
		ShopID:             env.shop.ID.String(),
		SubCategoryID:      env.chicken.ID.String(),
		Quantity:           "1",
		UnitID:             env.piece.ID.String(),
		BuyingPricePerUnit: "10",
		PaymentMethod:      model.PaymentDue,
	})
	var invalidDue *domain.InvalidDueAmountError
	if !errors.As(err, &invalidDue) {
		t.Fatalf("err = %v, want InvalidDueAmountError", err)
	}
}

func TestAddStockPartialDueIsUnpaid(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.stock.AddStock(context.Background(), env.owner.ID.String(), AddStockRequest{
		ShopID:             env.shop.ID.String(),
		SubCategoryID:      env.chicken.ID.String(),
		Quantity:           "10",
		UnitID:             env.piece.ID.String(),
		BuyingPricePerUnit: "10",
		PaymentMethod:      model.PaymentCash,
		DueAmount:          "40",
	})
	if err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	if result.IsPaid {
		t.Error("purchase with outstanding due must not be paid")
	}
	if result.DueAmount != "40.00" {
		t.Errorf("due amount = %s, want 40.00", result.DueAmount)
	}
}

func TestSellStockReducesStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.buyEggs(t, "5", "120", env.dozen) // 60 pieces

	result, err := env.stock.SellStock(context.Background(), env.owner.ID.String(), product.ID, SellStockRequest{
		Quantity:            "2",
		UnitID:              env.dozen.ID.String(),
		SellingPricePerUnit: "140",
		PaymentMethod:       model.PaymentCash,
		CustomerName:        "Walk-in",
	})
	if err != nil {
		t.Fatalf("SellStock: %v", err)
	}
	if result.CurrentStock != "36" {
		t.Errorf("current stock = %s, want 36", result.CurrentStock)
	}
	if result.TotalAmount != "280.00" {
		t.Errorf("total amount = %s, want 280.00", result.TotalAmount)
	}
}

func TestSellStockRejectsInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.buyEggs(t, "20", "10", env.piece)

	_, err := env.stock.SellStock(context.Background(), env.owner.ID.String(), product.ID, SellStockRequest{
		Quantity:            "2",
		UnitID:              env.dozen.ID.String(), // 24 pieces requested, 20 available
		SellingPricePerUnit: "15",
		PaymentMethod:       model.PaymentCash,
	})

	var insufficient *domain.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if insufficient.Available.String() != "20" || insufficient.Requested.String() != "24" {
		t.Errorf("available/requested = %s/%s, want 20/24",
			insufficient.Available, insufficient.Requested)
	}

	// Rejection must leave both stock and the ledger untouched.
	stock, _ := env.productStock(t, product.ID)
	if stock != "20" {
		t.Errorf("stock after rejected sale = %s, want 20", stock)
	}
	var sellCount int64
	env.db.Model(&model.Transaction{}).Where("transaction_type = ?", model.TxTypeSell).Count(&sellCount)
	if sellCount != 0 {
		t.Errorf("SELL transactions after rejected sale = %d, want 0", sellCount)
	}
}

func TestSequentialSalesContendForSameStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.buyEggs(t, "6", "10", env.piece)

	if _, err := env.stock.SellStock(context.Background(), env.owner.ID.String(), product.ID, SellStockRequest{
		Quantity:            "5",
		UnitID:              env.piece.ID.String(),
		SellingPricePerUnit: "12",
		PaymentMethod:       model.PaymentCash,
	}); err != nil {
		t.Fatalf("first sale: %v", err)
	}

	_, err := env.stock.SellStock(context.Background(), env.owner.ID.String(), product.ID, SellStockRequest{
		Quantity:            "4",
		UnitID:              env.piece.ID.String(),
		SellingPricePerUnit: "12",
		PaymentMethod:       model.PaymentCash,
	})
	var insufficient *domain.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("second sale err = %v, want InsufficientStockError", err)
	}

	stock, _ := env.productStock(t, product.ID)
	if stock != "1" {
		t.Errorf("final stock = %s, want 1", stock)
	}
}

func TestConcurrentSalesContendForSameStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.buyEggs(t, "6", "10", env.piece)

	// sqlite allows a single writer; one pooled connection keeps the two
	// competing transactions queued instead of erroring.
	sqlDB, err := env.db.DB()
	if err != nil {
		t.Fatalf("underlying db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	quantities := []string{"5", "4"}
	errs := make([]error, len(quantities))
	var wg sync.WaitGroup
	for i, quantity := range quantities {
		wg.Add(1)
		go func(i int, quantity string) {
			defer wg.Done()
			_, errs[i] = env.stock.SellStock(context.Background(), env.owner.ID.String(), product.ID, SellStockRequest{
				Quantity:            quantity,
				UnitID:              env.piece.ID.String(),
				SellingPricePerUnit: "12",
				PaymentMethod:       model.PaymentCash,
			})
		}(i, quantity)
	}
	wg.Wait()

	// Exactly one sale wins the row; the loser must be rejected for
	// insufficiency, never allowed to drive the stock negative.
	sold := decimal.Zero
	successes, rejections := 0, 0
	for i, saleErr := range errs {
		switch {
		case saleErr == nil:
			successes++
			sold = sold.Add(mustDecimal(t, quantities[i]))
		default:
			var insufficient *domain.InsufficientStockError
			if !errors.As(saleErr, &insufficient) {
				t.Fatalf("sale of %s: %v, want InsufficientStockError", quantities[i], saleErr)
			}
			rejections++
		}
	}
	if successes != 1 || rejections != 1 {
		t.Fatalf("successes/rejections = %d/%d, want 1/1", successes, rejections)
	}

	stock, _ := env.productStock(t, product.ID)
	final := mustDecimal(t, stock)
	if final.IsNegative() {
		t.Fatalf("final stock %s is negative", stock)
	}
	if !final.Equal(mustDecimal(t, "6").Sub(sold)) {
		t.Errorf("final stock = %s, want %s", stock, mustDecimal(t, "6").Sub(sold))
	}
}

func TestSellStockRejectsBaseUnitOutsideTransactionUnits(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedDozenOnlyProduct(t, "2") // 24 pieces on hand

	_, err := env.stock.SellStock(context.Background(), env.owner.ID.String(), product.ID, SellStockRequest{
		Quantity:            "5",
		UnitID:              env.piece.ID.String(),
		SellingPricePerUnit: "15",
		PaymentMethod:       model.PaymentCash,
	})
	if !errors.Is(err, domain.ErrUnitNotAllowed) {
		t.Fatalf("err = %v, want ErrUnitNotAllowed", err)
	}

	stock, _ := env.productStock(t, product.ID)
	if stock != "24" {
		t.Errorf("stock after rejected sale = %s, want 24", stock)
	}
}

func TestSellStockRejectsForeignProduct(t *testing.T) {
	env := newTestEnv(t)
	product := env.buyEggs(t, "10", "10", env.piece)

	_, err := env.stock.SellStock(context.Background(), env.stranger.ID.String(), product.ID, SellStockRequest{
		Quantity:            "1",
		UnitID:              env.piece.ID.String(),
		SellingPricePerUnit: "12",
		PaymentMethod:       model.PaymentCash,
	})
	if !errors.Is(err, domain.ErrProductShopMismatch) {
		t.Fatalf("err = %v, want ErrProductShopMismatch", err)
	}
}

func TestLedgerReplayMatchesStoredStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.buyEggs(t, "5", "120", env.dozen)

	for _, sale := range []string{"7", "11", "3"} {
		if _, err := env.stock.SellStock(context.Background(), env.owner.ID.String(), product.ID, SellStockRequest{
			Quantity:            sale,
			UnitID:              env.piece.ID.String(),
			SellingPricePerUnit: "15",
			PaymentMethod:       model.PaymentCash,
		}); err != nil {
			t.Fatalf("sale of %s: %v", sale, err)
		}
	}
	env.buyEggs(t, "1", "120", env.dozen)

	// Replay the ledger against the fixture's unit table and compare with the
	// stored counter.
	views, _, err := env.transactions.ListTransactions(context.Background(), env.owner.ID.String(), TransactionQuery{
		ShopID: env.shop.ID.String(),
		Limit:  100,
	})
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}

	unitsByID := map[string]model.Unit{
		env.piece.ID.String(): env.piece,
		env.dozen.ID.String(): env.dozen,
	}
	replayed := decimal.Zero
	for _, tx := range views {
		for _, item := range tx.Items {
			unit := unitsByID[item.UnitID]
			mv := domain.StockDelta(tx.TransactionType, unit, env.eggs.BaseUnitID, mustDecimal(t, item.Quantity), nil)
			replayed = replayed.Add(mv.Stock)
		}
	}

	stored, _ := env.productStock(t, product.ID)
	if replayed.String() != stored {
		t.Errorf("replayed stock %s != stored stock %s", replayed, stored)
	}
}

func TestManualStockUpdate(t *testing.T) {
	env := newTestEnv(t)
	product := env.buyEggs(t, "10", "10", env.piece)

	pieces := 4
	view, err := env.stock.UpdateStockManually(context.Background(), env.owner.ID.String(), product.ID, ManualStockUpdateRequest{
		CurrentStock: "7.5",
		PiecesCount:  &pieces,
	})
	if err != nil {
		t.Fatalf("UpdateStockManually: %v", err)
	}
	if view.CurrentStock != "7.5" || view.PiecesCount != 4 {
		t.Errorf("stock/pieces = %s/%d, want 7.5/4", view.CurrentStock, view.PiecesCount)
	}

	// No transaction is recorded for manual corrections.
	var count int64
	env.db.Model(&model.Transaction{}).Count(&count)
	if count != 1 {
		t.Errorf("transactions = %d, want only the seeding purchase", count)
	}
}

func TestManualStockUpdateRejectsNegative(t *testing.T) {
	env := newTestEnv(t)
	product := env.buyEggs(t, "10", "10", env.piece)

	_, err := env.stock.UpdateStockManually(context.Background(), env.owner.ID.String(), product.ID, ManualStockUpdateRequest{
		CurrentStock: "-1",
	})
	if !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("err = %v, want ErrInvalidQuantity", err)
	}
}

func TestUpdateBasePriceReflectsInView(t *testing.T) {
	env := newTestEnv(t)
	product := env.buyEggs(t, "10", "10", env.piece)

	view, err := env.stock.UpdateBasePrice(context.Background(), env.owner.ID.String(), product.ID, UpdateBasePriceRequest{
		BasePrice: "12.50",
	})
	if err != nil {
		t.Fatalf("UpdateBasePrice: %v", err)
	}
	if view.BasePrice != "12.50" {
		t.Errorf("base price = %s, want 12.50", view.BasePrice)
	}
}

func TestUpdateUnitPriceRejectsDisallowedUnit(t *testing.T) {
	env := newTestEnv(t)
	product := env.buyEggs(t, "10", "10", env.piece)

	_, err := env.stock.UpdateUnitPrice(context.Background(), env.owner.ID.String(), product.ID, UpdateUnitPriceRequest{
		UnitID: env.kg.ID.String(),
		Price:  "5",
	})
	if !errors.Is(err, domain.ErrUnitNotAllowed) {
		t.Fatalf("err = %v, want ErrUnitNotAllowed", err)
	}
}

func TestAllowedUnits(t *testing.T) {
	env := newTestEnv(t)

	units, err := env.stock.AllowedUnits(context.Background(), env.eggs.ID.String())
	if err != nil {
		t.Fatalf("AllowedUnits: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("allowed units = %d, want 2", len(units))
	}
}

func TestProductViewDerivesUnitPricesFromBasePrice(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.stock.AddStock(context.Background(), env.owner.ID.String(), AddStockRequest{
		ShopID:             env.shop.ID.String(),
		SubCategoryID:      env.chicken.ID.String(),
		Quantity:           "2",
		UnitID:             env.dozen.ID.String(),
		BuyingPricePerUnit: "120",
		PaymentMethod:      model.PaymentCash,
		Prices:             []PriceInput{{UnitID: env.piece.ID.String(), Price: "10"}},
	})
	if err != nil {
		t.Fatalf("AddStock: %v", err)
	}

	view, err := env.stock.GetProduct(context.Background(), env.owner.ID.String(), result.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if view.BasePrice != "10.00" {
		t.Errorf("base price = %s, want 10.00", view.BasePrice)
	}

	// The dozen has no stored price row, so the view suggests one scaled
	// from the per-piece price.
	var dozenView *PriceView
	for i := range view.Prices {
		if view.Prices[i].UnitID == env.dozen.ID.String() {
			dozenView = &view.Prices[i]
		}
	}
	if dozenView == nil {
		t.Fatal("dozen price missing from view")
	}
	if !dozenView.Derived {
		t.Error("dozen price should be marked derived")
	}
	if dozenView.Price != "120.00" {
		t.Errorf("derived dozen price = %s, want 120.00", dozenView.Price)
	}
}

func TestProductViewBasePriceFallsBackToListedUnit(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.stock.AddStock(context.Background(), env.owner.ID.String(), AddStockRequest{
		ShopID:             env.shop.ID.String(),
		SubCategoryID:      env.chicken.ID.String(),
		Quantity:           "2",
		UnitID:             env.dozen.ID.String(),
		BuyingPricePerUnit: "120",
		PaymentMethod:      model.PaymentCash,
		Prices:             []PriceInput{{UnitID: env.dozen.ID.String(), Price: "144"}},
	})
	if err != nil {
		t.Fatalf("AddStock: %v", err)
	}

	// No per-piece row: the per-dozen price converts down to the base unit.
	view, err := env.stock.GetProduct(context.Background(), env.owner.ID.String(), result.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if view.BasePrice != "12.00" {
		t.Errorf("base price = %s, want 12.00", view.BasePrice)
	}
}

func TestBuyWithPiecesCountTracksPieces(t *testing.T) {
	env := newTestEnv(t)

	pieces := 5
	result, err := env.stock.AddStock(context.Background(), env.owner.ID.String(), AddStockRequest{
		ShopID:             env.shop.ID.String(),
		SubCategoryID:      env.chicken.ID.String(),
		Quantity:           "5",
		UnitID:             env.dozen.ID.String(),
		BuyingPricePerUnit: "120",
		PaymentMethod:      model.PaymentCash,
		PiecesCount:        &pieces,
	})
	if err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	// Countable unit: pieces scale by the conversion factor, 5 * 12 = 60.
	if result.PiecesCount != 60 {
		t.Errorf("pieces count = %d, want 60", result.PiecesCount)
	}
}
