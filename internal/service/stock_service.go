package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shopstock/internal/domain"
	"shopstock/internal/model"
	"shopstock/internal/repository"
	ws "shopstock/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DTOs

type PriceInput struct {
	UnitID string `json:"unit_id" binding:"required"`
	Price  string `json:"price" binding:"required"`
}

type AddStockRequest struct {
	ShopID             string       `json:"shop_id" binding:"required"`
	SubCategoryID      string       `json:"subcategory_id" binding:"required"`
	Quantity           string       `json:"quantity" binding:"required"`
	UnitID             string       `json:"unit_id" binding:"required"`
	BuyingPricePerUnit string       `json:"buying_price_per_unit" binding:"required"`
	PaymentMethod      string       `json:"payment_method" binding:"required,oneof=CASH BANK MOBILE DUE"`
	DueAmount          string       `json:"due_amount"`
	DueDate            string       `json:"due_date"` // YYYY-MM-DD
	SupplierID         string       `json:"supplier_id"`
	ExternalPartyName  string       `json:"external_party_name"`
	Notes              string       `json:"notes"`
	PiecesCount        *int         `json:"pieces_count"`
	InitialStock       string       `json:"initial_stock"` // only honored for brand-new products
	Prices             []PriceInput `json:"prices"`
}

type SellStockRequest struct {
	Quantity            string `json:"quantity" binding:"required"`
	UnitID              string `json:"unit_id" binding:"required"`
	SellingPricePerUnit string `json:"selling_price_per_unit" binding:"required"`
	PaymentMethod       string `json:"payment_method" binding:"required,oneof=CASH BANK MOBILE DUE"`
	CustomerName        string `json:"customer_name"`
	Notes               string `json:"notes"`
	DueAmount           string `json:"due_amount"`
	DueDate             string `json:"due_date"`
	PiecesCount         *int   `json:"pieces_count"`
}

type ManualStockUpdateRequest struct {
	CurrentStock string `json:"current_stock" binding:"required"`
	PiecesCount  *int   `json:"pieces_count"`
	Notes        string `json:"notes"`
}

type UpdateBasePriceRequest struct {
	BasePrice string `json:"base_price" binding:"required"`
}

type UpdateUnitPriceRequest struct {
	UnitID string `json:"unit_id" binding:"required"`
	Price  string `json:"price" binding:"required"`
}

type PriceView struct {
	UnitID     string `json:"unit_id"`
	UnitName   string `json:"unit_name"`
	UnitSymbol string `json:"unit_symbol"`
	Price      string `json:"price"`
	Derived    bool   `json:"derived,omitempty"`
}

type ShopProductView struct {
	ID              string      `json:"id"`
	ShopID          string      `json:"shop_id"`
	SubCategoryID   string      `json:"subcategory_id"`
	SubCategoryName string      `json:"subcategory_name"`
	CategoryName    string      `json:"category_name"`
	BaseUnitSymbol  string      `json:"base_unit_symbol"`
	CurrentStock    string      `json:"current_stock"`
	PiecesCount     int         `json:"pieces_count"`
	BasePrice       string      `json:"base_price"`
	StockDisplay    string      `json:"stock_display"`
	Prices          []PriceView `json:"prices"`
}

// StockOperationResult is the consolidated view returned by the composite
// purchase/sale operations.
type StockOperationResult struct {
	ShopProductView
	TransactionCreated bool   `json:"transaction_created"`
	TransactionID      string `json:"transaction_id,omitempty"`
	ProductCreated     bool   `json:"product_created"`
	TotalAmount        string `json:"total_amount"`
	DueAmount          string `json:"due_amount"`
	IsPaid             bool   `json:"is_paid"`
	PaymentMethod      string `json:"payment_method"`
}

// StockService is the transaction engine: every code path that records a
// purchase or sale goes through it, and every stock mutation happens inside
// one transaction boundary with the product row locked.
type StockService interface {
	AddStock(ctx context.Context, userID string, req AddStockRequest) (StockOperationResult, error)
	SellStock(ctx context.Context, userID, productID string, req SellStockRequest) (StockOperationResult, error)
	UpdateStockManually(ctx context.Context, userID, productID string, req ManualStockUpdateRequest) (ShopProductView, error)
	UpdateBasePrice(ctx context.Context, userID, productID string, req UpdateBasePriceRequest) (ShopProductView, error)
	UpdateUnitPrice(ctx context.Context, userID, productID string, req UpdateUnitPriceRequest) (ShopProductView, error)
	AllowedUnits(ctx context.Context, categoryID string) ([]model.Unit, error)
	GetProduct(ctx context.Context, userID, productID string) (ShopProductView, error)
	ListProducts(ctx context.Context, userID, shopID, categoryID string, page, limit int) ([]ShopProductView, int64, error)
}

type stockService struct {
	shopRepo    repository.ShopRepository
	catalogRepo repository.CatalogRepository
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	contactRepo repository.ContactRepository
	txManager   repository.TransactionManager
	hub         *ws.Hub
}

func NewStockService(
	shopRepo repository.ShopRepository,
	catalogRepo repository.CatalogRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	contactRepo repository.ContactRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) StockService {
	return &stockService{
		shopRepo:    shopRepo,
		catalogRepo: catalogRepo,
		productRepo: productRepo,
		txRepo:      txRepo,
		contactRepo: contactRepo,
		txManager:   txManager,
		hub:         hub,
	}
}

func (s *stockService) AddStock(ctx context.Context, userID string, req AddStockRequest) (StockOperationResult, error) {
	shop, err := s.ownedShop(ctx, userID, req.ShopID)
	if err != nil {
		return StockOperationResult{}, err
	}

	quantity, err := parseQuantity(req.Quantity)
	if err != nil {
		return StockOperationResult{}, err
	}
	price, err := parsePrice(req.BuyingPricePerUnit)
	if err != nil {
		return StockOperationResult{}, err
	}
	dueAmount, err := parseOptionalAmount(req.DueAmount)
	if err != nil {
		return StockOperationResult{}, err
	}
	initialStock, err := parseOptionalAmount(req.InitialStock)
	if err != nil {
		return StockOperationResult{}, err
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return StockOperationResult{}, err
	}

	sub, err := s.catalogRepo.FindSubCategoryByID(ctx, mustParse(req.SubCategoryID))
	if err != nil {
		return StockOperationResult{}, notFoundOr(err, "subcategory")
	}
	category := sub.Category

	unit, err := s.catalogRepo.FindUnitByID(ctx, mustParse(req.UnitID))
	if err != nil {
		return StockOperationResult{}, notFoundOr(err, "unit")
	}

	// All business validation happens before any write.
	if err := domain.ValidateItem(model.TxTypeBuy, category, *unit, quantity, price, decimal.Zero); err != nil {
		return StockOperationResult{}, err
	}
	total := domain.TotalPrice(quantity, price)
	if err := domain.ValidDueAmount(req.PaymentMethod, dueAmount, total); err != nil {
		return StockOperationResult{}, err
	}

	var supplierID *uuid.UUID
	externalParty := req.ExternalPartyName
	if req.SupplierID != "" {
		supplier, err := s.contactRepo.FindSupplierByID(ctx, mustParse(req.SupplierID))
		if err != nil || supplier.ShopID != shop.ID {
			return StockOperationResult{}, fmt.Errorf("supplier: %w", domain.ErrNotFound)
		}
		supplierID = &supplier.ID
	} else if externalParty == "" {
		externalParty = "Unknown"
	}

	type parsedPrice struct {
		unitID uuid.UUID
		price  decimal.Decimal
	}
	priceRows := make([]parsedPrice, 0, len(req.Prices))
	for _, pi := range req.Prices {
		unitID, err := uuid.Parse(pi.UnitID)
		if err != nil {
			return StockOperationResult{}, fmt.Errorf("price unit: %w", domain.ErrNotFound)
		}
		if _, err := s.catalogRepo.FindUnitByID(ctx, unitID); err != nil {
			return StockOperationResult{}, notFoundOr(err, "price unit")
		}
		p, err := parsePrice(pi.Price)
		if err != nil {
			return StockOperationResult{}, err
		}
		if !p.IsPositive() {
			return StockOperationResult{}, domain.ErrInvalidPrice
		}
		priceRows = append(priceRows, parsedPrice{unitID: unitID, price: p})
	}

	var (
		productID      uuid.UUID
		productCreated bool
		transactionID  uuid.UUID
		newStock       decimal.Decimal
		newPieces      int
	)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		product, findErr := s.productRepo.FindByShopAndSubCategory(txCtx, shop.ID, sub.ID)
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			product = &model.ShopProduct{
				ShopID:        shop.ID,
				SubCategoryID: sub.ID,
				CurrentStock:  initialStock,
			}
			if createErr := s.productRepo.Create(txCtx, product); createErr != nil {
				return fmt.Errorf("failed to create product: %w", createErr)
			}
			productCreated = true
		} else if findErr != nil {
			return fmt.Errorf("failed to load product: %w", findErr)
		}
		productID = product.ID

		locked, lockErr := s.productRepo.FindByIDForUpdate(txCtx, product.ID)
		if lockErr != nil {
			return fmt.Errorf("failed to lock product row: %w", lockErr)
		}

		for _, row := range priceRows {
			if upErr := s.productRepo.UpsertPrice(txCtx, &model.ProductPrice{
				ProductID: product.ID,
				UnitID:    row.unitID,
				Price:     row.price,
			}); upErr != nil {
				return fmt.Errorf("failed to upsert price: %w", upErr)
			}
		}

		basePrice, bpErr := s.basePrice(txCtx, product.ID, category.BaseUnitID)
		if bpErr != nil {
			return bpErr
		}

		transaction := &model.Transaction{
			ShopID:            shop.ID,
			TransactionType:   model.TxTypeBuy,
			PaymentMethod:     req.PaymentMethod,
			IsPaid:            domain.IsPaid(req.PaymentMethod, dueAmount),
			DueAmount:         dueAmount,
			DueDate:           dueDate,
			Notes:             req.Notes,
			SupplierID:        supplierID,
			ExternalPartyName: externalParty,
		}
		if txErr := s.txRepo.Create(txCtx, transaction); txErr != nil {
			return fmt.Errorf("failed to create transaction: %w", txErr)
		}
		transactionID = transaction.ID

		item := &model.TransactionItem{
			TransactionID:          transaction.ID,
			ProductID:              product.ID,
			UnitID:                 unit.ID,
			Quantity:               quantity,
			PricePerUnit:           price,
			TotalPrice:             total,
			BasePriceAtTransaction: basePrice,
			PiecesCount:            req.PiecesCount,
		}
		if itemErr := s.txRepo.CreateItem(txCtx, item); itemErr != nil {
			return fmt.Errorf("failed to create transaction item: %w", itemErr)
		}

		mv := domain.StockDelta(model.TxTypeBuy, *unit, category.BaseUnitID, quantity, req.PiecesCount)
		newStock, newPieces = mv.Apply(locked.CurrentStock, locked.PiecesCount)
		if stockErr := s.productRepo.UpdateStock(txCtx, product.ID, newStock, newPieces); stockErr != nil {
			return fmt.Errorf("failed to persist stock: %w", stockErr)
		}
		return nil
	})
	if err != nil {
		return StockOperationResult{}, orchestrationError(err)
	}

	s.broadcastStock(productID, newStock, newPieces)

	view, err := s.productView(ctx, productID)
	if err != nil {
		return StockOperationResult{}, err
	}
	return StockOperationResult{
		ShopProductView:    view,
		TransactionCreated: true,
		TransactionID:      transactionID.String(),
		ProductCreated:     productCreated,
		TotalAmount:        total.StringFixed(2),
		DueAmount:          dueAmount.StringFixed(2),
		IsPaid:             domain.IsPaid(req.PaymentMethod, dueAmount),
		PaymentMethod:      req.PaymentMethod,
	}, nil
}

func (s *stockService) SellStock(ctx context.Context, userID, productID string, req SellStockRequest) (StockOperationResult, error) {
	product, err := s.ownedProduct(ctx, userID, productID)
	if err != nil {
		return StockOperationResult{}, err
	}
	category := product.SubCategory.Category

	quantity, err := parseQuantity(req.Quantity)
	if err != nil {
		return StockOperationResult{}, err
	}
	price, err := parsePrice(req.SellingPricePerUnit)
	if err != nil {
		return StockOperationResult{}, err
	}
	dueAmount, err := parseOptionalAmount(req.DueAmount)
	if err != nil {
		return StockOperationResult{}, err
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return StockOperationResult{}, err
	}

	unit, err := s.catalogRepo.FindUnitByID(ctx, mustParse(req.UnitID))
	if err != nil {
		return StockOperationResult{}, notFoundOr(err, "unit")
	}

	// Pre-write validation against the unlocked row; re-checked under the
	// lock before the mutation is applied.
	if err := domain.ValidateItem(model.TxTypeSell, category, *unit, quantity, price, product.CurrentStock); err != nil {
		return StockOperationResult{}, err
	}
	total := domain.TotalPrice(quantity, price)
	if err := domain.ValidDueAmount(req.PaymentMethod, dueAmount, total); err != nil {
		return StockOperationResult{}, err
	}

	var (
		transactionID uuid.UUID
		newStock      decimal.Decimal
		newPieces     int
	)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		transaction := &model.Transaction{
			ShopID:            product.ShopID,
			TransactionType:   model.TxTypeSell,
			PaymentMethod:     req.PaymentMethod,
			IsPaid:            domain.IsPaid(req.PaymentMethod, dueAmount),
			DueAmount:         dueAmount,
			DueDate:           dueDate,
			Notes:             req.Notes,
			ExternalPartyName: req.CustomerName,
		}
		if txErr := s.txRepo.Create(txCtx, transaction); txErr != nil {
			return fmt.Errorf("failed to create transaction: %w", txErr)
		}
		transactionID = transaction.ID

		item := &model.TransactionItem{
			TransactionID:          transaction.ID,
			ProductID:              product.ID,
			UnitID:                 unit.ID,
			Quantity:               quantity,
			PricePerUnit:           price,
			TotalPrice:             total,
			BasePriceAtTransaction: product.BasePrice(),
			PiecesCount:            req.PiecesCount,
		}
		if itemErr := s.txRepo.CreateItem(txCtx, item); itemErr != nil {
			return fmt.Errorf("failed to create transaction item: %w", itemErr)
		}

		locked, applyErr := applySale(txCtx, s.productRepo, category, *unit, quantity, req.PiecesCount, product.ID)
		if applyErr != nil {
			return applyErr
		}
		newStock, newPieces = locked.CurrentStock, locked.PiecesCount
		return nil
	})
	if err != nil {
		return StockOperationResult{}, orchestrationError(err)
	}

	s.broadcastStock(product.ID, newStock, newPieces)

	view, err := s.productView(ctx, product.ID)
	if err != nil {
		return StockOperationResult{}, err
	}
	return StockOperationResult{
		ShopProductView:    view,
		TransactionCreated: true,
		TransactionID:      transactionID.String(),
		TotalAmount:        total.StringFixed(2),
		DueAmount:          dueAmount.StringFixed(2),
		IsPaid:             domain.IsPaid(req.PaymentMethod, dueAmount),
		PaymentMethod:      req.PaymentMethod,
	}, nil
}

// UpdateStockManually sets the counters directly without recording a
// transaction. This is the explicit correction escape hatch; it does not
// appear in the ledger.
func (s *stockService) UpdateStockManually(ctx context.Context, userID, productID string, req ManualStockUpdateRequest) (ShopProductView, error) {
	product, err := s.ownedProduct(ctx, userID, productID)
	if err != nil {
		return ShopProductView{}, err
	}

	newStock, err := decimal.NewFromString(req.CurrentStock)
	if err != nil || newStock.IsNegative() {
		return ShopProductView{}, domain.ErrInvalidQuantity
	}
	newPieces := product.PiecesCount
	if req.PiecesCount != nil {
		if *req.PiecesCount < 0 {
			return ShopProductView{}, domain.ErrInvalidQuantity
		}
		newPieces = *req.PiecesCount
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, lockErr := s.productRepo.FindByIDForUpdate(txCtx, product.ID); lockErr != nil {
			return fmt.Errorf("failed to lock product row: %w", lockErr)
		}
		return s.productRepo.UpdateStock(txCtx, product.ID, newStock, newPieces)
	})
	if err != nil {
		return ShopProductView{}, orchestrationError(err)
	}

	s.broadcastStock(product.ID, newStock, newPieces)
	return s.productView(ctx, product.ID)
}

func (s *stockService) UpdateBasePrice(ctx context.Context, userID, productID string, req UpdateBasePriceRequest) (ShopProductView, error) {
	product, err := s.ownedProduct(ctx, userID, productID)
	if err != nil {
		return ShopProductView{}, err
	}

	basePrice, err := parsePrice(req.BasePrice)
	if err != nil {
		return ShopProductView{}, err
	}
	if !basePrice.IsPositive() {
		return ShopProductView{}, domain.ErrInvalidPrice
	}

	baseUnitID := product.SubCategory.Category.BaseUnitID
	if err := s.productRepo.UpsertPrice(ctx, &model.ProductPrice{
		ProductID: product.ID,
		UnitID:    baseUnitID,
		Price:     basePrice,
	}); err != nil {
		return ShopProductView{}, &domain.TransactionFailedError{Err: err}
	}
	return s.productView(ctx, product.ID)
}

func (s *stockService) UpdateUnitPrice(ctx context.Context, userID, productID string, req UpdateUnitPriceRequest) (ShopProductView, error) {
	product, err := s.ownedProduct(ctx, userID, productID)
	if err != nil {
		return ShopProductView{}, err
	}

	unit, err := s.catalogRepo.FindUnitByID(ctx, mustParse(req.UnitID))
	if err != nil {
		return ShopProductView{}, notFoundOr(err, "unit")
	}

	allowed := false
	for _, u := range product.SubCategory.Category.TransactionUnits {
		if u.ID == unit.ID {
			allowed = true
			break
		}
	}
	if !allowed {
		return ShopProductView{}, domain.ErrUnitNotAllowed
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return ShopProductView{}, err
	}
	if !price.IsPositive() {
		return ShopProductView{}, domain.ErrInvalidPrice
	}

	if err := s.productRepo.UpsertPrice(ctx, &model.ProductPrice{
		ProductID: product.ID,
		UnitID:    unit.ID,
		Price:     price,
	}); err != nil {
		return ShopProductView{}, &domain.TransactionFailedError{Err: err}
	}
	return s.productView(ctx, product.ID)
}

func (s *stockService) AllowedUnits(ctx context.Context, categoryID string) ([]model.Unit, error) {
	category, err := s.catalogRepo.FindCategoryByID(ctx, mustParse(categoryID))
	if err != nil {
		return nil, notFoundOr(err, "category")
	}
	return category.TransactionUnits, nil
}

func (s *stockService) GetProduct(ctx context.Context, userID, productID string) (ShopProductView, error) {
	product, err := s.ownedProduct(ctx, userID, productID)
	if err != nil {
		return ShopProductView{}, err
	}
	return buildProductView(product), nil
}

func (s *stockService) ListProducts(ctx context.Context, userID, shopID, categoryID string, page, limit int) ([]ShopProductView, int64, error) {
	shop, err := s.ownedShop(ctx, userID, shopID)
	if err != nil {
		return nil, 0, err
	}

	var catFilter *uuid.UUID
	if categoryID != "" {
		id, parseErr := uuid.Parse(categoryID)
		if parseErr != nil {
			return nil, 0, fmt.Errorf("category: %w", domain.ErrNotFound)
		}
		catFilter = &id
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	products, total, err := s.productRepo.List(ctx, shop.ID, catFilter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]ShopProductView, 0, len(products))
	for i := range products {
		views = append(views, buildProductView(&products[i]))
	}
	return views, total, nil
}

// --- shared internals ---

// applySale locks the product row, re-validates stock sufficiency under the
// lock and applies the SELL movement. Every sale-recording path (transaction
// ledger and orders alike) funnels through here; callers must already be
// inside a RunInTx unit.
func applySale(
	txCtx context.Context,
	products repository.ProductRepository,
	category model.Category,
	unit model.Unit,
	quantity decimal.Decimal,
	piecesCount *int,
	productID uuid.UUID,
) (*model.ShopProduct, error) {
	locked, err := products.FindByIDForUpdate(txCtx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrConcurrencyConflict
		}
		return nil, fmt.Errorf("failed to lock product row: %w", err)
	}

	if err := domain.SufficientStock(category, unit, quantity, locked.CurrentStock); err != nil {
		return nil, err
	}

	mv := domain.StockDelta(model.TxTypeSell, unit, category.BaseUnitID, quantity, piecesCount)
	newStock, newPieces := mv.Apply(locked.CurrentStock, locked.PiecesCount)
	if err := products.UpdateStock(txCtx, locked.ID, newStock, newPieces); err != nil {
		return nil, fmt.Errorf("failed to persist stock: %w", err)
	}
	locked.CurrentStock = newStock
	locked.PiecesCount = newPieces
	return locked, nil
}

func (s *stockService) ownedShop(ctx context.Context, userID, shopID string) (*model.Shop, error) {
	actorID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	id, err := uuid.Parse(shopID)
	if err != nil {
		return nil, fmt.Errorf("shop: %w", domain.ErrNotFound)
	}
	shop, err := s.shopRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "shop")
	}
	if shop.OwnerID != actorID {
		return nil, fmt.Errorf("shop: %w", domain.ErrNotFound)
	}
	return shop, nil
}

func (s *stockService) ownedProduct(ctx context.Context, userID, productID string) (*model.ShopProduct, error) {
	actorID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("product: %w", domain.ErrNotFound)
	}
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product")
	}
	shop, err := s.shopRepo.FindByID(ctx, product.ShopID)
	if err != nil {
		return nil, notFoundOr(err, "shop")
	}
	if shop.OwnerID != actorID {
		return nil, domain.ErrProductShopMismatch
	}
	return product, nil
}

func (s *stockService) basePrice(ctx context.Context, productID, baseUnitID uuid.UUID) (decimal.Decimal, error) {
	prices, err := s.productRepo.ListPrices(ctx, productID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load prices: %w", err)
	}
	for _, p := range prices {
		if p.UnitID == baseUnitID {
			return p.Price, nil
		}
	}
	return decimal.Zero, nil
}

func (s *stockService) productView(ctx context.Context, productID uuid.UUID) (ShopProductView, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return ShopProductView{}, notFoundOr(err, "product")
	}
	return buildProductView(product), nil
}

func buildProductView(product *model.ShopProduct) ShopProductView {
	category := product.SubCategory.Category

	// Without a base-unit price row the base price falls back to the first
	// listed unit, converted down to the base unit.
	basePrice := product.BasePrice()
	if basePrice.IsZero() && len(product.Prices) > 0 {
		first := product.Prices[0]
		basePrice = domain.PricePerBaseUnit(first.Unit, category.BaseUnitID, first.Price)
	}

	prices := make([]PriceView, 0, len(product.Prices))
	priced := make(map[uuid.UUID]bool, len(product.Prices))
	for _, p := range product.Prices {
		priced[p.UnitID] = true
		prices = append(prices, PriceView{
			UnitID:     p.UnitID.String(),
			UnitName:   p.Unit.Name,
			UnitSymbol: p.Unit.Symbol,
			Price:      p.Price.StringFixed(2),
		})
	}
	// Transaction units without an explicit price row get one suggested from
	// the base price, marked as derived.
	if basePrice.IsPositive() {
		for _, unit := range category.TransactionUnits {
			if priced[unit.ID] {
				continue
			}
			prices = append(prices, PriceView{
				UnitID:     unit.ID.String(),
				UnitName:   unit.Name,
				UnitSymbol: unit.Symbol,
				Price:      domain.CalculatePrice(unit, decimal.NewFromInt(1), basePrice).StringFixed(2),
				Derived:    true,
			})
		}
	}
	return ShopProductView{
		ID:              product.ID.String(),
		ShopID:          product.ShopID.String(),
		SubCategoryID:   product.SubCategoryID.String(),
		SubCategoryName: product.SubCategory.Name,
		CategoryName:    category.Name,
		BaseUnitSymbol:  category.BaseUnit.Symbol,
		CurrentStock:    product.CurrentStock.String(),
		PiecesCount:     product.PiecesCount,
		BasePrice:       basePrice.StringFixed(2),
		StockDisplay:    fmt.Sprintf("%s %s", product.CurrentStock.String(), category.BaseUnit.Symbol),
		Prices:          prices,
	}
}

func (s *stockService) broadcastStock(productID uuid.UUID, stock decimal.Decimal, pieces int) {
	if s.hub == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"event": "stock.updated",
		"data": map[string]interface{}{
			"product_id":    productID.String(),
			"current_stock": stock.String(),
			"pieces_count":  pieces,
		},
	})
	select {
	case s.hub.Broadcast <- payload:
	default:
	}
}

// --- parsing helpers shared by the sale-recording services ---

func parseQuantity(raw string) (decimal.Decimal, error) {
	q, err := decimal.NewFromString(raw)
	if err != nil || !q.IsPositive() {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	return q, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	p, err := decimal.NewFromString(raw)
	if err != nil || p.IsNegative() {
		return decimal.Zero, domain.ErrInvalidPrice
	}
	return p, nil
}

func parseOptionalAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	a, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	return a, nil
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return &t, nil
}

// mustParse is only called on IDs whose format was already bound; a garbage
// value parses to uuid.Nil and falls out as not-found downstream.
func mustParse(id string) uuid.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}

// notFoundOr maps gorm's record-not-found onto the domain sentinel with a
// label, passing any other error through untouched.
func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return err
}

// orchestrationError keeps business rejections intact and wraps everything
// else as a TransactionFailed so callers can tell "input rejected" from
// "commit failed".
func orchestrationError(err error) error {
	if domain.IsBusinessError(err) {
		return err
	}
	return &domain.TransactionFailedError{Err: err}
}
