package service

import (
	"context"
	"fmt"
	"testing"

	"shopstock/internal/database"
	"shopstock/internal/model"
	"shopstock/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv bundles the wired services and the seed fixture every stock test
// starts from: an eggs category sold by Piece (base) or Dozen, one shop, one
// owner.
type testEnv struct {
	db *gorm.DB

	stock        StockService
	orders       OrderService
	transactions TransactionService

	owner    model.User
	stranger model.User
	shop     model.Shop
	piece    model.Unit
	dozen    model.Unit
	kg       model.Unit
	eggs     model.Category
	chicken  model.SubCategory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	env := &testEnv{db: db}

	env.owner = model.User{Name: "Owner", Phone: "01711111111", Password: "x"}
	if err := db.Create(&env.owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	env.stranger = model.User{Name: "Stranger", Phone: "01722222222", Password: "x"}
	if err := db.Create(&env.stranger).Error; err != nil {
		t.Fatalf("seed stranger: %v", err)
	}

	env.shop = model.Shop{OwnerID: env.owner.ID, Name: "Corner Store"}
	if err := db.Create(&env.shop).Error; err != nil {
		t.Fatalf("seed shop: %v", err)
	}

	env.piece = model.Unit{Name: "Piece", Symbol: "pc", IsCountable: true, ConversionToBase: decimal.NewFromInt(1)}
	env.dozen = model.Unit{Name: "Dozen", Symbol: "dz", IsCountable: true, ConversionToBase: decimal.NewFromInt(12)}
	env.kg = model.Unit{Name: "Kilogram", Symbol: "kg", IsCountable: false, ConversionToBase: decimal.NewFromInt(1)}
	for _, unit := range []*model.Unit{&env.piece, &env.dozen, &env.kg} {
		if err := db.Create(unit).Error; err != nil {
			t.Fatalf("seed unit %s: %v", unit.Name, err)
		}
	}

	env.eggs = model.Category{
		Name:             "Eggs",
		Slug:             "eggs",
		BaseUnitID:       env.piece.ID,
		TransactionUnits: []model.Unit{env.piece, env.dozen},
	}
	if err := db.Create(&env.eggs).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	env.chicken = model.SubCategory{CategoryID: env.eggs.ID, Name: "Chicken Egg"}
	if err := db.Create(&env.chicken).Error; err != nil {
		t.Fatalf("seed subcategory: %v", err)
	}

	shopRepo := repository.NewShopRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	productRepo := repository.NewProductRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	contactRepo := repository.NewContactRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	txManager := repository.NewTransactionManager(db)

	env.stock = NewStockService(shopRepo, catalogRepo, productRepo, txRepo, contactRepo, txManager, nil)
	env.orders = NewOrderService(shopRepo, productRepo, orderRepo, contactRepo, txManager)
	env.transactions = NewTransactionService(shopRepo, txRepo)
	return env
}

// seedDozenOnlyProduct creates a category whose transaction units do not
// include its Piece base unit, then stocks a product in it through the real
// purchase path. quantity is in dozens.
func (env *testEnv) seedDozenOnlyProduct(t *testing.T, quantity string) StockOperationResult {
	t.Helper()

	category := model.Category{
		Name:             "Duck Eggs",
		Slug:             "duck-eggs",
		BaseUnitID:       env.piece.ID,
		TransactionUnits: []model.Unit{env.dozen},
	}
	if err := env.db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	sub := model.SubCategory{CategoryID: category.ID, Name: "Duck Egg"}
	if err := env.db.Create(&sub).Error; err != nil {
		t.Fatalf("seed subcategory: %v", err)
	}

	result, err := env.stock.AddStock(context.Background(), env.owner.ID.String(), AddStockRequest{
		ShopID:             env.shop.ID.String(),
		SubCategoryID:      sub.ID.String(),
		Quantity:           quantity,
		UnitID:             env.dozen.ID.String(),
		BuyingPricePerUnit: "150",
		PaymentMethod:      model.PaymentCash,
	})
	if err != nil {
		t.Fatalf("stock duck eggs: %v", err)
	}
	return result
}

// buyEggs seeds stock through the real purchase path and returns the product.
func (env *testEnv) buyEggs(t *testing.T, quantity, unitPrice string, unit model.Unit) StockOperationResult {
	t.Helper()
	result, err := env.stock.AddStock(context.Background(), env.owner.ID.String(), AddStockRequest{
		ShopID:             env.shop.ID.String(),
		SubCategoryID:      env.chicken.ID.String(),
		Quantity:           quantity,
		UnitID:             unit.ID.String(),
		BuyingPricePerUnit: unitPrice,
		PaymentMethod:      model.PaymentCash,
	})
	if err != nil {
		t.Fatalf("buy eggs: %v", err)
	}
	return result
}

func mustDecimal(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", raw, err)
	}
	return d
}

func (env *testEnv) productStock(t *testing.T, productID string) (string, int) {
	t.Helper()
	var product model.ShopProduct
	if err := env.db.First(&product, "id = ?", productID).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	return product.CurrentStock.String(), product.PiecesCount
}
