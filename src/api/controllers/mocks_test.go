package controllers_test

import (
	"context"
	"time"

	"tracker/src/models"
	"tracker/src/repositories"
	"tracker/src/schemas"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation mimics what the Postgres driver surfaces when an insert or
// update trips a unique constraint.
func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

// memUserRepo is an in-memory repositories.UserRepository.
type memUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *memUserRepo) add(u *models.User) *models.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return u
}

func (r *memUserRepo) Create(_ context.Context, u *models.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return uniqueViolation()
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) GetAll(_ context.Context, skip, limit int) ([]models.User, error) {
	all := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, *u)
	}
	if skip >= len(all) {
		return nil, nil
	}
	all = all[skip:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *memUserRepo) Update(_ context.Context, u *models.User) error {
	for id, existing := range r.users {
		if id != u.ID && (existing.Username == u.Username || existing.Email == u.Email) {
			return uniqueViolation()
		}
	}
	u.UpdatedAt = time.Now()
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

// memPortfolioRepo is an in-memory repositories.PortfolioRepository. It
// enforces the (name, user_id) uniqueness the real table carries.
type memPortfolioRepo struct {
	portfolios   map[uuid.UUID]*models.Portfolio
	transactions *memTransactionRepo
}

func newMemPortfolioRepo(transactions *memTransactionRepo) *memPortfolioRepo {
	return &memPortfolioRepo{
		portfolios:   make(map[uuid.UUID]*models.Portfolio),
		transactions: transactions,
	}
}

func (r *memPortfolioRepo) add(p *models.Portfolio) *models.Portfolio {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.portfolios[p.ID] = p
	return p
}

func (r *memPortfolioRepo) Create(_ context.Context, p *models.Portfolio) error {
	for _, existing := range r.portfolios {
		if existing.Name == p.Name && existing.UserID == p.UserID {
			return uniqueViolation()
		}
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.portfolios[p.ID] = p
	return nil
}

func (r *memPortfolioRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Portfolio, error) {
	p, ok := r.portfolios[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *memPortfolioRepo) GetAll(_ context.Context, skip, limit int) ([]models.Portfolio, error) {
	all := make([]models.Portfolio, 0, len(r.portfolios))
	for _, p := range r.portfolios {
		all = append(all, *p)
	}
	if skip >= len(all) {
		return nil, nil
	}
	all = all[skip:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memPortfolioRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.portfolios)), nil
}

func (r *memPortfolioRepo) GetByUserID(_ context.Context, userID uuid.UUID, skip, limit int) ([]models.Portfolio, error) {
	owned := make([]models.Portfolio, 0)
	for _, p := range r.portfolios {
		if p.UserID == userID {
			owned = append(owned, *p)
		}
	}
	if skip >= len(owned) {
		return nil, nil
	}
	owned = owned[skip:]
	if limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, nil
}

func (r *memPortfolioRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.portfolios {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memPortfolioRepo) Update(_ context.Context, p *models.Portfolio) error {
	for id, existing := range r.portfolios {
		if id != p.ID && existing.Name == p.Name && existing.UserID == p.UserID {
			return uniqueViolation()
		}
	}
	p.UpdatedAt = time.Now()
	clone := *p
	r.portfolios[p.ID] = &clone
	return nil
}

func (r *memPortfolioRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.portfolios[id]; !ok {
		return false, nil
	}
	delete(r.portfolios, id)
	if r.transactions != nil {
		for txID, t := range r.transactions.transactions {
			if t.PortfolioID == id {
				delete(r.transactions.transactions, txID)
			}
		}
	}
	return true, nil
}

// memTransactionRepo is an in-memory repositories.TransactionRepository.
type memTransactionRepo struct {
	transactions map[uuid.UUID]*models.Transaction
}

func newMemTransactionRepo() *memTransactionRepo {
	return &memTransactionRepo{transactions: make(map[uuid.UUID]*models.Transaction)}
}

func (r *memTransactionRepo) add(t *models.Transaction) *models.Transaction {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.transactions[t.ID] = t
	return t
}

func (r *memTransactionRepo) Create(_ context.Context, t *models.Transaction, _ pgx.Tx) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	r.transactions[t.ID] = t
	return nil
}

func (r *memTransactionRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Transaction, error) {
	t, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	clone := *t
	return &clone, nil
}

func (r *memTransactionRepo) visible(t *models.Transaction) bool {
	return t.DeletedAt == nil || t.DeletedAt.After(time.Now())
}

func (r *memTransactionRepo) List(_ context.Context, filter repositories.TransactionFilter) ([]models.Transaction, int64, error) {
	matched := make([]models.Transaction, 0)
	for _, t := range r.transactions {
		if !filter.IncludeDeleted && !r.visible(t) {
			continue
		}
		if filter.UserID != nil && t.UserID != *filter.UserID {
			continue
		}
		if filter.PortfolioID != nil && t.PortfolioID != *filter.PortfolioID {
			continue
		}
		if filter.CreatedAfter != nil && t.CreatedAt.Before(*filter.CreatedAfter) {
			continue
		}
		if filter.CreatedBefore != nil && t.CreatedAt.After(*filter.CreatedBefore) {
			continue
		}
		matched = append(matched, *t)
	}
	total := int64(len(matched))
	if filter.Skip >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Skip:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *memTransactionRepo) GetAllByPortfolioID(_ context.Context, portfolioID uuid.UUID) ([]models.Transaction, error) {
	matched := make([]models.Transaction, 0)
	for _, t := range r.transactions {
		if t.PortfolioID == portfolioID && r.visible(t) {
			matched = append(matched, *t)
		}
	}
	return matched, nil
}

func (r *memTransactionRepo) Update(_ context.Context, t *models.Transaction) error {
	t.UpdatedAt = time.Now()
	clone := *t
	r.transactions[t.ID] = &clone
	return nil
}

func (r *memTransactionRepo) SoftDelete(_ context.Context, id uuid.UUID) (bool, error) {
	t, ok := r.transactions[id]
	if !ok {
		return false, nil
	}
	now := time.Now()
	t.DeletedAt = &now
	return true, nil
}

func (r *memTransactionRepo) HardDelete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.transactions[id]; !ok {
		return false, nil
	}
	delete(r.transactions, id)
	return true, nil
}

// authStub satisfies services.AuthServiceI without real crypto; the
// controllers only care about the outcomes.
type authStub struct {
	verifyResult bool
}

func (s *authStub) HashPassword(plain string) (string, error) { return "hashed:" + plain, nil }

func (s *authStub) VerifyPassword(plain, hashed string) bool {
	return s.verifyResult || hashed == "hashed:"+plain
}

func (s *authStub) IssueToken(userID uuid.UUID) (string, error) {
	return "token-for-" + userID.String(), nil
}

func (s *authStub) SubjectFromClaims(claims map[string]interface{}) (uuid.UUID, error) {
	return uuid.Parse(claims["sub"].(string))
}

func (s *authStub) TokenAuth() *jwtauth.JWTAuth { return nil }

// valuationStub satisfies services.ValuationServiceI with canned results.
type valuationStub struct {
	value    float64
	holdings []schemas.AssetHolding
	err      error
}

func (s *valuationStub) ComputeValue(_ context.Context, _ uuid.UUID) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.value, nil
}

func (s *valuationStub) ComputeHoldings(_ context.Context, _ uuid.UUID) ([]schemas.AssetHolding, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.holdings, nil
}
