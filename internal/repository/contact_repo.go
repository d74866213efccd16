package repository

import (
	"context"

	"shopstock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactRepository interface {
	CreateSupplier(ctx context.Context, supplier *model.Supplier) error
	FindSupplierByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	ListSuppliers(ctx context.Context, shopID uuid.UUID, page, limit int) ([]model.Supplier, int64, error)
	UpdateSupplier(ctx context.Context, supplier *model.Supplier) error
	DeleteSupplier(ctx context.Context, id uuid.UUID) error

	CreateCustomer(ctx context.Context, customer *model.Customer) error
	FindCustomerByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	ListCustomers(ctx context.Context, shopID uuid.UUID, page, limit int) ([]model.Customer, int64, error)
	UpdateCustomer(ctx context.Context, customer *model.Customer) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) CreateSupplier(ctx context.Context, supplier *model.Supplier) error {
	return GetDB(ctx, r.db).Create(supplier).Error
}

func (r *contactRepository) FindSupplierByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := GetDB(ctx, r.db).First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *contactRepository) ListSuppliers(ctx context.Context, shopID uuid.UUID, page, limit int) ([]model.Supplier, int64, error) {
	var suppliers []model.Supplier
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Supplier{}).Where("shop_id = ?", shopID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name").Offset(offset).Limit(limit).Find(&suppliers).Error; err != nil {
		return nil, 0, err
	}

	return suppliers, total, nil
}

func (r *contactRepository) UpdateSupplier(ctx context.Context, supplier *model.Supplier) error {
	return GetDB(ctx, r.db).Save(supplier).Error
}

func (r *contactRepository) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Supplier{}).Error
}

func (r *contactRepository) CreateCustomer(ctx context.Context, customer *model.Customer) error {
	return GetDB(ctx, r.db).Create(customer).Error
}

func (r *contactRepository) FindCustomerByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := GetDB(ctx, r.db).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *contactRepository) ListCustomers(ctx context.Context, shopID uuid.UUID, page, limit int) ([]model.Customer, int64, error) {
	var customers []model.Customer
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Customer{}).Where("shop_id = ?", shopID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name").Offset(offset).Limit(limit).Find(&customers).Error; err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

func (r *contactRepository) UpdateCustomer(ctx context.Context, customer *model.Customer) error {
	return GetDB(ctx, r.db).Save(customer).Error
}

func (r *contactRepository) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Customer{}).Error
}
