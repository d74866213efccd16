package service

import (
	"context"
	"fmt"

	"shopstock/internal/domain"
	"shopstock/internal/model"
	"shopstock/internal/repository"

	"github.com/google/uuid"
)

type TransactionItemView struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	UnitID       string `json:"unit_id"`
	UnitSymbol   string `json:"unit_symbol"`
	Quantity     string `json:"quantity"`
	PricePerUnit string `json:"price_per_unit"`
	TotalPrice   string `json:"total_price"`
	BasePrice    string `json:"base_price_at_transaction"`
	PiecesCount  *int   `json:"pieces_count,omitempty"`
}

type TransactionView struct {
	ID                string                `json:"id"`
	ShopID            string                `json:"shop_id"`
	TransactionType   string                `json:"transaction_type"`
	TransactionDate   string                `json:"transaction_date"`
	PaymentMethod     string                `json:"payment_method"`
	IsPaid            bool                  `json:"is_paid"`
	DueAmount         string                `json:"due_amount"`
	DueDate           string                `json:"due_date,omitempty"`
	Notes             string                `json:"notes,omitempty"`
	SupplierID        string                `json:"supplier_id,omitempty"`
	ExternalPartyName string                `json:"external_party_name,omitempty"`
	TotalAmount       string                `json:"total_amount"`
	Items             []TransactionItemView `json:"items"`
}

type TransactionQuery struct {
	ShopID          string
	TransactionType string
	StartDate       string // YYYY-MM-DD
	EndDate         string
	Page            int
	Limit           int
}

// TransactionService is the read side of the ledger. Writes only happen
// through StockService; the ledger itself is append-only.
type TransactionService interface {
	GetTransaction(ctx context.Context, userID, transactionID string) (TransactionView, error)
	ListTransactions(ctx context.Context, userID string, query TransactionQuery) ([]TransactionView, int64, error)
}

type transactionService struct {
	shopRepo repository.ShopRepository
	txRepo   repository.TransactionRepository
}

func NewTransactionService(shopRepo repository.ShopRepository, txRepo repository.TransactionRepository) TransactionService {
	return &transactionService{shopRepo: shopRepo, txRepo: txRepo}
}

func (s *transactionService) GetTransaction(ctx context.Context, userID, transactionID string) (TransactionView, error) {
	transaction, err := s.txRepo.FindByIDWithItems(ctx, mustParse(transactionID))
	if err != nil {
		return TransactionView{}, notFoundOr(err, "transaction")
	}
	if err := s.checkOwnership(ctx, userID, transaction.ShopID); err != nil {
		return TransactionView{}, err
	}
	return buildTransactionView(transaction), nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, query TransactionQuery) ([]TransactionView, int64, error) {
	shopID := mustParse(query.ShopID)
	if err := s.checkOwnership(ctx, userID, shopID); err != nil {
		return nil, 0, err
	}

	if query.TransactionType != "" &&
		query.TransactionType != model.TxTypeBuy &&
		query.TransactionType != model.TxTypeSell {
		return nil, 0, fmt.Errorf("unknown transaction type %q: %w", query.TransactionType, domain.ErrNotFound)
	}

	start, err := parseDate(query.StartDate)
	if err != nil {
		return nil, 0, err
	}
	end, err := parseDate(query.EndDate)
	if err != nil {
		return nil, 0, err
	}

	page, limit := query.Page, query.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	transactions, total, err := s.txRepo.List(ctx, repository.TransactionFilter{
		ShopID:          shopID,
		TransactionType: query.TransactionType,
		Start:           start,
		End:             end,
		Page:            page,
		Limit:           limit,
	})
	if err != nil {
		return nil, 0, err
	}

	views := make([]TransactionView, 0, len(transactions))
	for i := range transactions {
		views = append(views, buildTransactionView(&transactions[i]))
	}
	return views, total, nil
}

func (s *transactionService) checkOwnership(ctx context.Context, userID string, shopID uuid.UUID) error {
	actorID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	shop, err := s.shopRepo.FindByID(ctx, shopID)
	if err != nil {
		return notFoundOr(err, "shop")
	}
	if shop.OwnerID != actorID {
		return fmt.Errorf("shop: %w", domain.ErrNotFound)
	}
	return nil
}

func buildTransactionView(transaction *model.Transaction) TransactionView {
	items := make([]TransactionItemView, 0, len(transaction.Items))
	for _, item := range transaction.Items {
		items = append(items, TransactionItemView{
			ID:           item.ID.String(),
			ProductID:    item.ProductID.String(),
			UnitID:       item.UnitID.String(),
			UnitSymbol:   item.Unit.Symbol,
			Quantity:     item.Quantity.String(),
			PricePerUnit: item.PricePerUnit.StringFixed(2),
			TotalPrice:   item.TotalPrice.StringFixed(2),
			BasePrice:    item.BasePriceAtTransaction.StringFixed(2),
			PiecesCount:  item.PiecesCount,
		})
	}
	view := TransactionView{
		ID:                transaction.ID.String(),
		ShopID:            transaction.ShopID.String(),
		TransactionType:   transaction.TransactionType,
		TransactionDate:   transaction.TransactionDate.Format("2006-01-02T15:04:05Z07:00"),
		PaymentMethod:     transaction.PaymentMethod,
		IsPaid:            transaction.IsPaid,
		DueAmount:         transaction.DueAmount.StringFixed(2),
		Notes:             transaction.Notes,
		ExternalPartyName: transaction.ExternalPartyName,
		TotalAmount:       transaction.TotalAmount().StringFixed(2),
		Items:             items,
	}
	if transaction.DueDate != nil {
		view.DueDate = transaction.DueDate.Format("2006-01-02")
	}
	if transaction.SupplierID != nil {
		view.SupplierID = transaction.SupplierID.String()
	}
	return view
}
