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

type SupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ContactService manages a shop's suppliers and customers. Every operation
// takes the acting user explicitly and checks shop ownership.
type ContactService interface {
	CreateSupplier(ctx context.Context, userID, shopID string, req SupplierRequest) (*model.Supplier, error)
	ListSuppliers(ctx context.Context, userID, shopID string, page, limit int) ([]model.Supplier, int64, error)
	UpdateSupplier(ctx context.Context, userID, supplierID string, req SupplierRequest) (*model.Supplier, error)
	DeleteSupplier(ctx context.Context, userID, supplierID string) error

	CreateCustomer(ctx context.Context, userID, shopID string, req CustomerRequest) (*model.Customer, error)
	ListCustomers(ctx context.Context, userID, shopID string, page, limit int) ([]model.Customer, int64, error)
	UpdateCustomer(ctx context.Context, userID, customerID string, req CustomerRequest) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, userID, customerID string) error
}

type contactService struct {
	shopRepo    repository.ShopRepository
	contactRepo repository.ContactRepository
}

func NewContactService(shopRepo repository.ShopRepository, contactRepo repository.ContactRepository) ContactService {
	return &contactService{shopRepo: shopRepo, contactRepo: contactRepo}
}

func (s *contactService) CreateSupplier(ctx context.Context, userID, shopID string, req SupplierRequest) (*model.Supplier, error) {
	shop, err := s.ownedShop(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}
	supplier := &model.Supplier{
		ShopID:  shop.ID,
		Name:    strings.TrimSpace(req.Name),
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}
	if err := s.contactRepo.CreateSupplier(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *contactService) ListSuppliers(ctx context.Context, userID, shopID string, page, limit int) ([]model.Supplier, int64, error) {
	shop, err := s.ownedShop(ctx, userID, shopID)
	if err != nil {
		return nil, 0, err
	}
	page, limit = normalizePage(page, limit)
	return s.contactRepo.ListSuppliers(ctx, shop.ID, page, limit)
}

func (s *contactService) UpdateSupplier(ctx context.Context, userID, supplierID string, req SupplierRequest) (*model.Supplier, error) {
	supplier, err := s.contactRepo.FindSupplierByID(ctx, mustParse(supplierID))
	if err != nil {
		return nil, notFoundOr(err, "supplier")
	}
	if _, err := s.ownedShop(ctx, userID, supplier.ShopID.String()); err != nil {
		return nil, err
	}
	supplier.Name = strings.TrimSpace(req.Name)
	supplier.Phone = req.Phone
	supplier.Address = req.Address
	supplier.Notes = req.Notes
	if err := s.contactRepo.UpdateSupplier(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *contactService) DeleteSupplier(ctx context.Context, userID, supplierID string) error {
	supplier, err := s.contactRepo.FindSupplierByID(ctx, mustParse(supplierID))
	if err != nil {
		return notFoundOr(err, "supplier")
	}
	if _, err := s.ownedShop(ctx, userID, supplier.ShopID.String()); err != nil {
		return err
	}
	return s.contactRepo.DeleteSupplier(ctx, supplier.ID)
}

func (s *contactService) CreateCustomer(ctx context.Context, userID, shopID string, req CustomerRequest) (*model.Customer, error) {
	shop, err := s.ownedShop(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}
	customer := &model.Customer{
		ShopID:  shop.ID,
		Name:    strings.TrimSpace(req.Name),
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.contactRepo.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *contactService) ListCustomers(ctx context.Context, userID, shopID string, page, limit int) ([]model.Customer, int64, error) {
	shop, err := s.ownedShop(ctx, userID, shopID)
	if err != nil {
		return nil, 0, err
	}
	page, limit = normalizePage(page, limit)
	return s.contactRepo.ListCustomers(ctx, shop.ID, page, limit)
}

func (s *contactService) UpdateCustomer(ctx context.Context, userID, customerID string, req CustomerRequest) (*model.Customer, error) {
	customer, err := s.contactRepo.FindCustomerByID(ctx, mustParse(customerID))
	if err != nil {
		return nil, notFoundOr(err, "customer")
	}
	if _, err := s.ownedShop(ctx, userID, customer.ShopID.String()); err != nil {
		return nil, err
	}
	customer.Name = strings.TrimSpace(req.Name)
	customer.Phone = req.Phone
	customer.Address = req.Address
	if err := s.contactRepo.UpdateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *contactService) DeleteCustomer(ctx context.Context, userID, customerID string) error {
	customer, err := s.contactRepo.FindCustomerByID(ctx, mustParse(customerID))
	if err != nil {
		return notFoundOr(err, "customer")
	}
	if _, err := s.ownedShop(ctx, userID, customer.ShopID.String()); err != nil {
		return err
	}
	return s.contactRepo.DeleteCustomer(ctx, customer.ID)
}

func (s *contactService) ownedShop(ctx context.Context, userID, shopID string) (*model.Shop, error) {
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

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return page, limit
}
