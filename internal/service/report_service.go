package service

import (
	"context"
	"fmt"
	"time"

	"shopstock/internal/domain"
	"shopstock/internal/model"
	"shopstock/internal/repository"

	"github.com/google/uuid"
)

// ReportService aggregates a shop's activity over named periods. Sums come
// back from the database as decimal strings and are passed through untouched.
type ReportService interface {
	// Summary accepts period "daily", "weekly", "monthly" or "custom" with
	// explicit start/end dates.
	Summary(ctx context.Context, userID, shopID, period, startDate, endDate string) (*model.PeriodSummary, error)
}

type reportService struct {
	shopRepo   repository.ShopRepository
	reportRepo repository.ReportRepository
}

func NewReportService(shopRepo repository.ShopRepository, reportRepo repository.ReportRepository) ReportService {
	return &reportService{shopRepo: shopRepo, reportRepo: reportRepo}
}

func (s *reportService) Summary(ctx context.Context, userID, shopID, period, startDate, endDate string) (*model.PeriodSummary, error) {
	shop, err := s.ownedShop(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}

	start, end, err := resolvePeriod(period, startDate, endDate)
	if err != nil {
		return nil, err
	}

	totalPurchases, purchaseCount, err := s.reportRepo.SumTransactions(ctx, shop.ID, model.TxTypeBuy, start, end)
	if err != nil {
		return nil, err
	}
	totalSales, saleCount, err := s.reportRepo.SumTransactions(ctx, shop.ID, model.TxTypeSell, start, end)
	if err != nil {
		return nil, err
	}
	totalDue, err := s.reportRepo.SumTransactionDue(ctx, shop.ID, start, end)
	if err != nil {
		return nil, err
	}
	orderRevenue, orderCount, err := s.reportRepo.SumOrders(ctx, shop.ID, start, end)
	if err != nil {
		return nil, err
	}
	totalCosts, err := s.reportRepo.SumCosts(ctx, shop.ID, start, end)
	if err != nil {
		return nil, err
	}
	totalLosses, err := s.reportRepo.SumLosses(ctx, shop.ID, start, end)
	if err != nil {
		return nil, err
	}
	topSold, err := s.reportRepo.TopSoldProducts(ctx, shop.ID, start, end, 5)
	if err != nil {
		return nil, err
	}

	return &model.PeriodSummary{
		ShopID:             shop.ID.String(),
		TotalPurchases:     totalPurchases,
		PurchaseCount:      purchaseCount,
		TotalSales:         totalSales,
		SaleCount:          saleCount,
		TotalOrderRevenue:  orderRevenue,
		OrderCount:         orderCount,
		TotalCosts:         totalCosts,
		TotalLosses:        totalLosses,
		TotalDue:           totalDue,
		TopSoldProducts:    topSold,
		TimeRangeStartDate: start,
		TimeRangeEndDate:   end,
	}, nil
}

// resolvePeriod turns a named period into a concrete [start, end] window
// anchored at the current day. Custom periods require both dates.
func resolvePeriod(period, startDate, endDate string) (time.Time, time.Time, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case "daily", "":
		return dayStart, dayStart.AddDate(0, 0, 1), nil
	case "weekly":
		return dayStart.AddDate(0, 0, -7), dayStart.AddDate(0, 0, 1), nil
	case "monthly":
		return dayStart.AddDate(0, -1, 0), dayStart.AddDate(0, 0, 1), nil
	case "custom":
		start, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", startDate, err)
		}
		end, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", endDate, err)
		}
		return start, end.AddDate(0, 0, 1), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown period %q", period)
	}
}

func (s *reportService) ownedShop(ctx context.Context, userID, shopID string) (*model.Shop, error) {
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
