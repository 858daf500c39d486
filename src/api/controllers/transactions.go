package controllers

import (
	"context"

	"tracker/src/models"
	"tracker/src/repositories"
	"tracker/src/schemas"
	"tracker/src/utils"

	"github.com/google/uuid"
)

type TransactionControllerI interface {
	Create(ctx context.Context, requesterID uuid.UUID, requesterRole models.UserRole, req *schemas.TransactionCreateRequest) (*schemas.TransactionOut, error)
	GetByID(ctx context.Context, id uuid.UUID) (*schemas.TransactionOut, error)
	List(ctx context.Context, filter repositories.TransactionFilter, params schemas.PageParams) (*schemas.Page[schemas.TransactionOut], error)
	Update(ctx context.Context, id uuid.UUID, req *schemas.TransactionUpdateRequest) (*schemas.TransactionOut, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
}

type TransactionController struct {
	users        repositories.UserRepository
	portfolios   repositories.PortfolioRepository
	transactions repositories.TransactionRepository
}

func NewTransactionController(
	users repositories.UserRepository,
	portfolios repositories.PortfolioRepository,
	transactions repositories.TransactionRepository,
) *TransactionController {
	return &TransactionController{users: users, portfolios: portfolios, transactions: transactions}
}

// Create records a transaction against an existing portfolio. The asset
// type must match the portfolio's, and the transaction is owned by the
// portfolio's owner regardless of who records it.
func (c *TransactionController) Create(ctx context.Context, requesterID uuid.UUID, requesterRole models.UserRole, req *schemas.TransactionCreateRequest) (*schemas.TransactionOut, error) {
	requester, err := c.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, utils.BadRequest("failed to create transaction")
	}
	if requester == nil {
		return nil, utils.NotFound("user not found")
	}

	portfolio, err := c.portfolios.GetByID(ctx, req.PortfolioID)
	if err != nil {
		return nil, utils.BadRequest("failed to create transaction")
	}
	if portfolio == nil {
		return nil, utils.NotFound("portfolio not found")
	}

	if !utils.IsAuthorized(requesterID, requesterRole, portfolio.UserID) {
		return nil, utils.Forbidden("not enough permissions")
	}
	if req.AssetType != portfolio.AssetType {
		return nil, utils.BadRequest("transaction asset type does not match portfolio asset type")
	}

	transaction := &models.Transaction{
		PortfolioID:     portfolio.ID,
		UserID:          portfolio.UserID,
		TransactionType: req.TransactionType,
		AssetType:       req.AssetType,
		TickerSymbol:    req.TickerSymbol,
		AssetName:       req.AssetName,
		Amount:          req.Amount,
		Currency:        req.Currency,
		UnitPrice:       req.UnitPrice,
		TransactionFee:  req.TransactionFee,
		Note:            req.Note,
	}
	if err := c.transactions.Create(ctx, transaction, nil); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.Conflict("transaction already exists")
		}
		return nil, utils.BadRequest("failed to create transaction")
	}
	return schemas.NewTransactionOut(transaction), nil
}

// GetByID resolves soft-deleted rows too; deletion hides a transaction from
// listings and valuation but it stays addressable by id.
func (c *TransactionController) GetByID(ctx context.Context, id uuid.UUID) (*schemas.TransactionOut, error) {
	transaction, err := c.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, utils.BadRequest("failed to retrieve transaction")
	}
	if transaction == nil {
		return nil, utils.NotFound("transaction not found")
	}
	return schemas.NewTransactionOut(transaction), nil
}

func (c *TransactionController) List(ctx context.Context, filter repositories.TransactionFilter, params schemas.PageParams) (*schemas.Page[schemas.TransactionOut], error) {
	filter.Skip = params.Skip()
	filter.Limit = params.Limit()

	transactions, total, err := c.transactions.List(ctx, filter)
	if err != nil {
		return nil, utils.BadRequest("failed to retrieve transactions")
	}

	items := make([]schemas.TransactionOut, 0, len(transactions))
	for i := range transactions {
		items = append(items, *schemas.NewTransactionOut(&transactions[i]))
	}
	return schemas.NewPage(items, params, total), nil
}

func (c *TransactionController) Update(ctx context.Context, id uuid.UUID, req *schemas.TransactionUpdateRequest) (*schemas.TransactionOut, error) {
	transaction, err := c.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, utils.BadRequest("failed to retrieve transaction")
	}
	if transaction == nil {
		return nil, utils.NotFound("transaction not found")
	}

	if req.TransactionType != nil {
		transaction.TransactionType = *req.TransactionType
	}
	if req.TickerSymbol != nil {
		transaction.TickerSymbol = *req.TickerSymbol
	}
	if req.AssetName != nil {
		transaction.AssetName = *req.AssetName
	}
	if req.Amount != nil {
		transaction.Amount = *req.Amount
	}
	if req.Currency != nil {
		transaction.Currency = *req.Currency
	}
	if req.UnitPrice != nil {
		transaction.UnitPrice = *req.UnitPrice
	}
	if req.TransactionFee != nil {
		transaction.TransactionFee = *req.TransactionFee
	}
	if req.Note != nil {
		transaction.Note = *req.Note
	}

	if err := c.transactions.Update(ctx, transaction); err != nil {
		return nil, utils.BadRequest("failed to update transaction")
	}
	return schemas.NewTransactionOut(transaction), nil
}

func (c *TransactionController) SoftDelete(ctx context.Context, id uuid.UUID) error {
	deleted, err := c.transactions.SoftDelete(ctx, id)
	if err != nil {
		return utils.BadRequest("failed to delete transaction")
	}
	if !deleted {
		return utils.NotFound("transaction not found")
	}
	return nil
}

// HardDelete permanently removes the row. Privileged: the handler only
// routes admins here.
func (c *TransactionController) HardDelete(ctx context.Context, id uuid.UUID) error {
	deleted, err := c.transactions.HardDelete(ctx, id)
	if err != nil {
		return utils.BadRequest("failed to delete transaction")
	}
	if !deleted {
		return utils.NotFound("transaction not found")
	}
	return nil
}
