package controllers

import (
	"context"

	"tracker/src/models"
	"tracker/src/repositories"
	"tracker/src/schemas"
	"tracker/src/services"
	"tracker/src/utils"

	"github.com/google/uuid"
)

type PortfolioControllerI interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *schemas.PortfolioCreateRequest) (*schemas.PortfolioOut, error)
	GetByID(ctx context.Context, id uuid.UUID) (*schemas.PortfolioOut, error)
	GetOwnerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	GetAll(ctx context.Context, params schemas.PageParams) (*schemas.Page[schemas.PortfolioOut], error)
	GetByUserID(ctx context.Context, userID uuid.UUID, params schemas.PageParams) (*schemas.Page[schemas.PortfolioOut], error)
	Update(ctx context.Context, id uuid.UUID, req *schemas.PortfolioUpdateRequest) (*schemas.PortfolioOut, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PortfolioController struct {
	users      repositories.UserRepository
	portfolios repositories.PortfolioRepository
	valuation  services.ValuationServiceI
}

func NewPortfolioController(
	users repositories.UserRepository,
	portfolios repositories.PortfolioRepository,
	valuation services.ValuationServiceI,
) *PortfolioController {
	return &PortfolioController{users: users, portfolios: portfolios, valuation: valuation}
}

func (c *PortfolioController) Create(ctx context.Context, ownerID uuid.UUID, req *schemas.PortfolioCreateRequest) (*schemas.PortfolioOut, error) {
	owner, err := c.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, utils.BadRequest("failed to create portfolio")
	}
	if owner == nil {
		return nil, utils.NotFound("user not found")
	}

	portfolio := &models.Portfolio{
		Name:        req.Name,
		Description: req.Description,
		AssetType:   req.AssetType,
		UserID:      ownerID,
	}
	if err := c.portfolios.Create(ctx, portfolio); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.Conflict("portfolio already exists")
		}
		return nil, utils.BadRequest("failed to create portfolio")
	}
	return schemas.NewPortfolioOut(portfolio), nil
}

// GetByID returns the portfolio enriched with its current market value and
// asset breakdown, both recomputed from the live transaction set.
func (c *PortfolioController) GetByID(ctx context.Context, id uuid.UUID) (*schemas.PortfolioOut, error) {
	portfolio, err := c.portfolios.GetByID(ctx, id)
	if err != nil {
		return nil, utils.BadRequest("failed to retrieve portfolio")
	}
	if portfolio == nil {
		return nil, utils.NotFound("portfolio not found")
	}

	out := schemas.NewPortfolioOut(portfolio)
	out.CurrentValue, err = c.valuation.ComputeValue(ctx, id)
	if err != nil {
		return nil, err
	}
	out.Assets, err = c.valuation.ComputeHoldings(ctx, id)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetOwnerID resolves just the owning user of a portfolio, for
// authorization checks that do not need the valuation a full read implies.
func (c *PortfolioController) GetOwnerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	portfolio, err := c.portfolios.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, utils.BadRequest("failed to retrieve portfolio")
	}
	if portfolio == nil {
		return uuid.Nil, utils.NotFound("portfolio not found")
	}
	return portfolio.UserID, nil
}

func (c *PortfolioController) GetAll(ctx context.Context, params schemas.PageParams) (*schemas.Page[schemas.PortfolioOut], error) {
	portfolios, err := c.portfolios.GetAll(ctx, params.Skip(), params.Limit())
	if err != nil {
		return nil, utils.BadRequest("failed to retrieve portfolios")
	}
	total, err := c.portfolios.CountAll(ctx)
	if err != nil {
		return nil, utils.BadRequest("failed to retrieve portfolios")
	}
	items, err := c.enrich(ctx, portfolios)
	if err != nil {
		return nil, err
	}
	return schemas.NewPage(items, params, total), nil
}

func (c *PortfolioController) GetByUserID(ctx context.Context, userID uuid.UUID, params schemas.PageParams) (*schemas.Page[schemas.PortfolioOut], error) {
	portfolios, err := c.portfolios.GetByUserID(ctx, userID, params.Skip(), params.Limit())
	if err != nil {
		return nil, utils.BadRequest("failed to retrieve portfolios")
	}
	total, err := c.portfolios.CountByUserID(ctx, userID)
	if err != nil {
		return nil, utils.BadRequest("failed to retrieve portfolios")
	}
	items, err := c.enrich(ctx, portfolios)
	if err != nil {
		return nil, err
	}
	return schemas.NewPage(items, params, total), nil
}

// enrich recomputes the current value of every listed portfolio. One full
// valuation per item; acceptable for the page sizes this API serves.
func (c *PortfolioController) enrich(ctx context.Context, portfolios []models.Portfolio) ([]schemas.PortfolioOut, error) {
	items := make([]schemas.PortfolioOut, 0, len(portfolios))
	for i := range portfolios {
		out := schemas.NewPortfolioOut(&portfolios[i])
		value, err := c.valuation.ComputeValue(ctx, portfolios[i].ID)
		if err != nil {
			return nil, err
		}
		out.CurrentValue = value
		items = append(items, *out)
	}
	return items, nil
}

func (c *PortfolioController) Update(ctx context.Context, id uuid.UUID, req *schemas.PortfolioUpdateRequest) (*schemas.PortfolioOut, error) {
	portfolio, err := c.portfolios.GetByID(ctx, id)
	if err != nil {
		return nil, utils.BadRequest("failed to retrieve portfolio")
	}
	if portfolio == nil {
		return nil, utils.NotFound("portfolio not found")
	}

	if req.Name != nil {
		portfolio.Name = *req.Name
	}
	if req.Description != nil {
		portfolio.Description = *req.Description
	}

	if err := c.portfolios.Update(ctx, portfolio); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.Conflict("portfolio already exists")
		}
		return nil, utils.BadRequest("failed to update portfolio")
	}
	return schemas.NewPortfolioOut(portfolio), nil
}

// Delete removes the portfolio and cascades to all of its transactions.
func (c *PortfolioController) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := c.portfolios.Delete(ctx, id)
	if err != nil {
		return utils.BadRequest("failed to delete portfolio")
	}
	if !deleted {
		return utils.NotFound("portfolio not found")
	}
	return nil
}
