package controllers

import (
	"tracker/src/repositories"
	"tracker/src/services"
)

// Controllers bundles the per-entity controllers behind their interfaces so
// handlers can swap in fakes during tests.
type Controllers struct {
	User        UserControllerI
	Portfolio   PortfolioControllerI
	Transaction TransactionControllerI
}

func NewControllers(
	userRepo repositories.UserRepository,
	portfolioRepo repositories.PortfolioRepository,
	transactionRepo repositories.TransactionRepository,
	authService services.AuthServiceI,
	valuationService services.ValuationServiceI,
) *Controllers {
	return &Controllers{
		User:        NewUserController(userRepo, authService),
		Portfolio:   NewPortfolioController(userRepo, portfolioRepo, valuationService),
		Transaction: NewTransactionController(userRepo, portfolioRepo, transactionRepo),
	}
}
