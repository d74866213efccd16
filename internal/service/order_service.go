package service

import (
	"context"
	"fmt"

	"shopstock/internal/domain"
	"shopstock/internal/model"
	"shopstock/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  string `json:"quantity" binding:"required"` // base units
	UnitPrice string `json:"unit_price" binding:"required"`
	Discount  string `json:"discount"`
}

type CreateOrderRequest struct {
	ShopID        string           `json:"shop_id" binding:"required"`
	CustomerID    string           `json:"customer_id"`
	PaymentMethod string           `json:"payment_method" binding:"required,oneof=CASH BANK MOBILE DUE"`
	DueAmount     string           `json:"due_amount"`
	Items         []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

type OrderItemView struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	Quantity   string `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	Discount   string `json:"discount"`
	TotalPrice string `json:"total_price"`
}

type OrderView struct {
	ID            string          `json:"id"`
	ShopID        string          `json:"shop_id"`
	CustomerID    string          `json:"customer_id,omitempty"`
	OrderDate     string          `json:"order_date"`
	PaymentMethod string          `json:"payment_method"`
	Subtotal      string          `json:"subtotal"`
	DiscountTotal string          `json:"discount_total"`
	FinalTotal    string          `json:"final_total"`
	DueAmount     string          `json:"due_amount"`
	IsPaid        bool            `json:"is_paid"`
	Items         []OrderItemView `json:"items"`
}

// OrderService records point-of-sale orders. The stock side effect of every
// line goes through the same sale path the transaction ledger uses, inside
// one database transaction covering the whole order.
type OrderService interface {
	CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (OrderView, error)
	GetOrder(ctx context.Context, userID, orderID string) (OrderView, error)
	ListOrders(ctx context.Context, userID, shopID string, page, limit int) ([]OrderView, int64, error)
}

type orderService struct {
	shopRepo    repository.ShopRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	contactRepo repository.ContactRepository
	txManager   repository.TransactionManager
}

func NewOrderService(
	shopRepo repository.ShopRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	contactRepo repository.ContactRepository,
	txManager repository.TransactionManager,
) OrderService {
	return &orderService{
		shopRepo:    shopRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		contactRepo: contactRepo,
		txManager:   txManager,
	}
}

type parsedOrderItem struct {
	product   *model.ShopProduct
	quantity  decimal.Decimal
	unitPrice decimal.Decimal
	discount  decimal.Decimal
	total     decimal.Decimal
}

func (s *orderService) CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (OrderView, error) {
	shop, err := s.ownedShop(ctx, userID, req.ShopID)
	if err != nil {
		return OrderView{}, err
	}

	var customerID *uuid.UUID
	if req.CustomerID != "" {
		customer, custErr := s.contactRepo.FindCustomerByID(ctx, mustParse(req.CustomerID))
		if custErr != nil || customer.ShopID != shop.ID {
			return OrderView{}, fmt.Errorf("customer: %w", domain.ErrNotFound)
		}
		customerID = &customer.ID
	}

	dueAmount, err := parseOptionalAmount(req.DueAmount)
	if err != nil {
		return OrderView{}, err
	}

	// Parse and pre-validate every line before any write. Lines sell in the
	// category's base unit.
	items := make([]parsedOrderItem, 0, len(req.Items))
	subtotal := decimal.Zero
	discountTotal := decimal.Zero
	for _, in := range req.Items {
		product, prodErr := s.productRepo.FindByID(ctx, mustParse(in.ProductID))
		if prodErr != nil {
			return OrderView{}, notFoundOr(prodErr, "product")
		}
		if product.ShopID != shop.ID {
			return OrderView{}, domain.ErrProductShopMismatch
		}

		quantity, qErr := parseQuantity(in.Quantity)
		if qErr != nil {
			return OrderView{}, qErr
		}
		unitPrice, pErr := parsePrice(in.UnitPrice)
		if pErr != nil {
			return OrderView{}, pErr
		}
		discount, dErr := parseOptionalAmount(in.Discount)
		if dErr != nil {
			return OrderView{}, dErr
		}
		if discount.IsNegative() {
			return OrderView{}, domain.ErrInvalidPrice
		}

		category := product.SubCategory.Category
		if vErr := domain.ValidateOrderLine(category, quantity, unitPrice, product.CurrentStock); vErr != nil {
			return OrderView{}, vErr
		}

		lineTotal := domain.TotalPrice(quantity, unitPrice).Sub(discount)
		if lineTotal.IsNegative() {
			lineTotal = decimal.Zero
		}
		subtotal = subtotal.Add(domain.TotalPrice(quantity, unitPrice))
		discountTotal = discountTotal.Add(discount)
		items = append(items, parsedOrderItem{
			product:   product,
			quantity:  quantity,
			unitPrice: unitPrice,
			discount:  discount,
			total:     lineTotal,
		})
	}

	finalTotal := subtotal.Sub(discountTotal)
	if finalTotal.IsNegative() {
		finalTotal = decimal.Zero
	}
	if err := domain.ValidDueAmount(req.PaymentMethod, dueAmount, finalTotal); err != nil {
		return OrderView{}, err
	}

	var orderID uuid.UUID
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order := &model.Order{
			ShopID:        shop.ID,
			CustomerID:    customerID,
			PaymentMethod: req.PaymentMethod,
			Subtotal:      subtotal,
			DiscountTotal: discountTotal,
			FinalTotal:    finalTotal,
			DueAmount:     dueAmount,
			IsPaid:        domain.IsPaid(req.PaymentMethod, dueAmount),
		}
		if createErr := s.orderRepo.Create(txCtx, order); createErr != nil {
			return fmt.Errorf("failed to create order: %w", createErr)
		}
		orderID = order.ID

		for _, item := range items {
			if itemErr := s.orderRepo.CreateItem(txCtx, &model.OrderItem{
				OrderID:    order.ID,
				ProductID:  item.product.ID,
				Quantity:   item.quantity,
				UnitPrice:  item.unitPrice,
				Discount:   item.discount,
				TotalPrice: item.total,
			}); itemErr != nil {
				return fmt.Errorf("failed to create order item: %w", itemErr)
			}

			category := item.product.SubCategory.Category
			if _, applyErr := applySale(txCtx, s.productRepo, category, category.BaseUnit,
				item.quantity, nil, item.product.ID); applyErr != nil {
				return applyErr
			}
		}
		return nil
	})
	if err != nil {
		return OrderView{}, orchestrationError(err)
	}

	return s.orderView(ctx, orderID)
}

func (s *orderService) GetOrder(ctx context.Context, userID, orderID string) (OrderView, error) {
	order, err := s.orderRepo.FindByIDWithItems(ctx, mustParse(orderID))
	if err != nil {
		return OrderView{}, notFoundOr(err, "order")
	}
	if _, err := s.ownedShop(ctx, userID, order.ShopID.String()); err != nil {
		return OrderView{}, err
	}
	return buildOrderView(order), nil
}

func (s *orderService) ListOrders(ctx context.Context, userID, shopID string, page, limit int) ([]OrderView, int64, error) {
	shop, err := s.ownedShop(ctx, userID, shopID)
	if err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	orders, total, err := s.orderRepo.List(ctx, shop.ID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, buildOrderView(&orders[i]))
	}
	return views, total, nil
}

func (s *orderService) ownedShop(ctx context.Context, userID, shopID string) (*model.Shop, error) {
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

func (s *orderService) orderView(ctx context.Context, orderID uuid.UUID) (OrderView, error) {
	order, err := s.orderRepo.FindByIDWithItems(ctx, orderID)
	if err != nil {
		return OrderView{}, notFoundOr(err, "order")
	}
	return buildOrderView(order), nil
}

func buildOrderView(order *model.Order) OrderView {
	items := make([]OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemView{
			ID:         item.ID.String(),
			ProductID:  item.ProductID.String(),
			Quantity:   item.Quantity.String(),
			UnitPrice:  item.UnitPrice.StringFixed(2),
			Discount:   item.Discount.StringFixed(2),
			TotalPrice: item.TotalPrice.StringFixed(2),
		})
	}
	view := OrderView{
		ID:            order.ID.String(),
		ShopID:        order.ShopID.String(),
		OrderDate:     order.OrderDate.Format("2006-01-02T15:04:05Z07:00"),
		PaymentMethod: order.PaymentMethod,
		Subtotal:      order.Subtotal.StringFixed(2),
		DiscountTotal: order.DiscountTotal.StringFixed(2),
		FinalTotal:    order.FinalTotal.StringFixed(2),
		DueAmount:     order.DueAmount.StringFixed(2),
		IsPaid:        order.IsPaid,
		Items:         items,
	}
	if order.CustomerID != nil {
		view.CustomerID = order.CustomerID.String()
	}
	return view
}
