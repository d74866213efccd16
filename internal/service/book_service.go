package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopstock/internal/domain"
	"shopstock/internal/model"
	"shopstock/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type BookEntryRequest struct {
	CategoryID  string `json:"category_id" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
}

// BookService keeps the cost book and the loss book: dated money records
// labelled by category, outside the stock ledger.
type BookService interface {
	CreateCostCategory(ctx context.Context, req BookCategoryRequest) (*model.CostCategory, error)
	ListCostCategories(ctx context.Context) ([]model.CostCategory, error)
	CreateCostEntry(ctx context.Context, userID, shopID string, req BookEntryRequest) (*model.CostEntry, error)
	ListCostEntries(ctx context.Context, userID, shopID, startDate, endDate string, page, limit int) ([]model.CostEntry, int64, error)

	CreateLossCategory(ctx context.Context, req BookCategoryRequest) (*model.LossCategory, error)
	ListLossCategories(ctx context.Context) ([]model.LossCategory, error)
	CreateLossEntry(ctx context.Context, userID, shopID string, req BookEntryRequest) (*model.LossEntry, error)
	ListLossEntries(ctx context.Context, userID, shopID, startDate, endDate string, page, limit int) ([]model.LossEntry, int64, error)
}

type bookService struct {
	shopRepo repository.ShopRepository
	bookRepo repository.BookRepository
}

func NewBookService(shopRepo repository.ShopRepository, bookRepo repository.BookRepository) BookService {
	return &bookService{shopRepo: shopRepo, bookRepo: bookRepo}
}

func (s *bookService) CreateCostCategory(ctx context.Context, req BookCategoryRequest) (*model.CostCategory, error) {
	category := &model.CostCategory{Name: strings.TrimSpace(req.Name)}
	if err := s.bookRepo.CreateCostCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *bookService) ListCostCategories(ctx context.Context) ([]model.CostCategory, error) {
	return s.bookRepo.ListCostCategories(ctx)
}

func (s *bookService) CreateCostEntry(ctx context.Context, userID, shopID string, req BookEntryRequest) (*model.CostEntry, error) {
	shop, err := s.ownedShop(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}
	amount, date, err := parseBookEntry(req)
	if err != nil {
		return nil, err
	}
	entry := &model.CostEntry{
		ShopID:         shop.ID,
		CostCategoryID: mustParse(req.CategoryID),
		Amount:         amount,
		Description:    req.Description,
		Date:           date,
	}
	if err := s.bookRepo.CreateCostEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *bookService) ListCostEntries(ctx context.Context, userID, shopID, startDate, endDate string, page, limit int) ([]model.CostEntry, int64, error) {
	shop, err := s.ownedShop(ctx, userID, shopID)
	if err != nil {
		return nil, 0, err
	}
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, 0, err
	}
	page, limit = normalizePage(page, limit)
	return s.bookRepo.ListCostEntries(ctx, shop.ID, start, end, page, limit)
}

func (s *bookService) CreateLossCategory(ctx context.Context, req BookCategoryRequest) (*model.LossCategory, error) {
	category := &model.LossCategory{Name: strings.TrimSpace(req.Name)}
	if err := s.bookRepo.CreateLossCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *bookService) ListLossCategories(ctx context.Context) ([]model.LossCategory, error) {
	return s.bookRepo.ListLossCategories(ctx)
}

func (s *bookService) CreateLossEntry(ctx context.Context, userID, shopID string, req BookEntryRequest) (*model.LossEntry, error) {
	shop, err := s.ownedShop(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}
	amount, date, err := parseBookEntry(req)
	if err != nil {
		return nil, err
	}
	entry := &model.LossEntry{
		ShopID:         shop.ID,
		LossCategoryID: mustParse(req.CategoryID),
		Amount:         amount,
		Description:    req.Description,
		Date:           date,
	}
	if err := s.bookRepo.CreateLossEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *bookService) ListLossEntries(ctx context.Context, userID, shopID, startDate, endDate string, page, limit int) ([]model.LossEntry, int64, error) {
	shop, err := s.ownedShop(ctx, userID, shopID)
	if err != nil {
		return nil, 0, err
	}
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, 0, err
	}
	page, limit = normalizePage(page, limit)
	return s.bookRepo.ListLossEntries(ctx, shop.ID, start, end, page, limit)
}

func (s *bookService) ownedShop(ctx context.Context, userID, shopID string) (*model.Shop, error) {
	actorID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	shop, err := s.shopRepo.FindByID(ctx, mustParse(shopID))
	if err != nil {
		return nil, notFoundOr(err, "shop")
	}
	if shop.OwnerID != actorID {
		return nil, fmt.Errorf("shop: %w", domain.ErrNotFound)
	}
	return shop, nil
}

func parseBookEntry(req BookEntryRequest) (decimal.Decimal, time.Time, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, time.Time{}, domain.ErrInvalidPrice
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}
	return amount, date, nil
}

func parseDateRange(startDate, endDate string) (*time.Time, *time.Time, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, nil, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, nil, err
	}
	return start, end, nil
}
