package service

import (
	"context"
	"fmt"
	"strings"

	"shopstock/internal/domain"
	"shopstock/internal/model"
	"shopstock/internal/repository"

	"github.com/google/uuid"
)

type ShopRequest struct {
	Name     string `json:"name" binding:"required"`
	District string `json:"district"`
	Upazila  string `json:"upazila"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

type ShopService interface {
	CreateShop(ctx context.Context, userID string, req ShopRequest) (*model.Shop, error)
	GetShop(ctx context.Context, userID, shopID string) (*model.Shop, error)
	ListShops(ctx context.Context, userID string, page, limit int) ([]model.Shop, int64, error)
	UpdateShop(ctx context.Context, userID, shopID string, req ShopRequest) (*model.Shop, error)
	DeleteShop(ctx context.Context, userID, shopID string) error
}

type shopService struct {
	shopRepo repository.ShopRepository
}

func NewShopService(shopRepo repository.ShopRepository) ShopService {
	return &shopService{shopRepo: shopRepo}
}

func (s *shopService) CreateShop(ctx context.Context, userID string, req ShopRequest) (*model.Shop, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	shop := &model.Shop{
		OwnerID:  ownerID,
		Name:     strings.TrimSpace(req.Name),
		District: req.District,
		Upazila:  req.Upazila,
		Address:  req.Address,
		Phone:    req.Phone,
	}
	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *shopService) GetShop(ctx context.Context, userID, shopID string) (*model.Shop, error) {
	return s.ownedShop(ctx, userID, shopID)
}

func (s *shopService) ListShops(ctx context.Context, userID string, page, limit int) ([]model.Shop, int64, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	page, limit = normalizePage(page, limit)
	return s.shopRepo.ListByOwner(ctx, ownerID, page, limit)
}

func (s *shopService) UpdateShop(ctx context.Context, userID, shopID string, req ShopRequest) (*model.Shop, error) {
	shop, err := s.ownedShop(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}
	shop.Name = strings.TrimSpace(req.Name)
	shop.District = req.District
	shop.Upazila = req.Upazila
	shop.Address = req.Address
	shop.Phone = req.Phone
	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *shopService) DeleteShop(ctx context.Context, userID, shopID string) error {
	shop, err := s.ownedShop(ctx, userID, shopID)
	if err != nil {
		return err
	}
	return s.shopRepo.Delete(ctx, shop.ID)
}

func (s *shopService) ownedShop(ctx context.Context, userID, shopID string) (*model.Shop, error) {
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
