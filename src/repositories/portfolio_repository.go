package repositories

import (
	"context"
	"errors"

	"tracker/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PortfolioRepository interface {
	Create(ctx context.Context, p *models.Portfolio) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Portfolio, error)
	GetAll(ctx context.Context, skip, limit int) ([]models.Portfolio, error)
	CountAll(ctx context.Context) (int64, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, skip, limit int) ([]models.Portfolio, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, p *models.Portfolio) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type portfolioRepo struct {
	db *pgxpool.Pool
}

func NewPortfolioRepository(db *pgxpool.Pool) PortfolioRepository {
	return &portfolioRepo{db: db}
}

const portfolioColumns = `id, name, description, asset_type, user_id, created_at, updated_at`

func scanPortfolio(row pgx.Row) (*models.Portfolio, error) {
	var p models.Portfolio
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.AssetType, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *portfolioRepo) Create(ctx context.Context, p *models.Portfolio) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	query := `
		INSERT INTO portfolios (id, name, description, asset_type, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	err = tx.QueryRow(ctx, query,
		p.ID, p.Name, p.Description, p.AssetType, p.UserID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *portfolioRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Portfolio, error) {
	row := r.db.QueryRow(ctx, `SELECT `+portfolioColumns+` FROM portfolios WHERE id = $1`, id)
	p, err := scanPortfolio(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *portfolioRepo) GetAll(ctx context.Context, skip, limit int) ([]models.Portfolio, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+portfolioColumns+` FROM portfolios ORDER BY created_at OFFSET $1 LIMIT $2`,
		skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPortfolios(rows)
}

func (r *portfolioRepo) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM portfolios`).Scan(&total)
	return total, err
}

func (r *portfolioRepo) GetByUserID(ctx context.Context, userID uuid.UUID, skip, limit int) ([]models.Portfolio, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+portfolioColumns+` FROM portfolios WHERE user_id = $1 ORDER BY created_at OFFSET $2 LIMIT $3`,
		userID, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPortfolios(rows)
}

func (r *portfolioRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM portfolios WHERE user_id = $1`, userID).Scan(&total)
	return total, err
}

func collectPortfolios(rows pgx.Rows) ([]models.Portfolio, error) {
	var portfolios []models.Portfolio
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		portfolios = append(portfolios, *p)
	}
	return portfolios, rows.Err()
}

func (r *portfolioRepo) Update(ctx context.Context, p *models.Portfolio) error {
	query := `
		UPDATE portfolios
		SET name = $2, description = $3, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	err = tx.QueryRow(ctx, query, p.ID, p.Name, p.Description).Scan(&p.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes a portfolio and all of its transactions in one storage
// transaction. The cascade is explicit rather than left to the FK so the
// count of removed rows stays visible to callers that want to audit it.
func (r *portfolioRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM transactions WHERE portfolio_id = $1`, id); err != nil {
		return false, err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM portfolios WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return false, nil
	}

	if err = tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
