package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tracker/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionFilter narrows a List call. Nil fields are unfiltered. When
// both time bounds are set the range is inclusive on both ends.
type TransactionFilter struct {
	UserID         *uuid.UUID
	PortfolioID    *uuid.UUID
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
	IncludeDeleted bool
	Skip           int
	Limit          int
}

type TransactionRepository interface {
	Create(ctx context.Context, t *models.Transaction, tx pgx.Tx) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]models.Transaction, int64, error)
	GetAllByPortfolioID(ctx context.Context, portfolioID uuid.UUID) ([]models.Transaction, error)
	Update(ctx context.Context, t *models.Transaction) error
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)
	HardDelete(ctx context.Context, id uuid.UUID) (bool, error)
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

const transactionColumns = `id, portfolio_id, user_id, transaction_type, asset_type, ticker_symbol,
	asset_name, amount, currency, unit_price, transaction_fee, note, created_at, updated_at, deleted_at`

// Rows with a deletion timestamp in the future are still visible: a future
// deleted_at is a scheduled deletion that takes effect when the instant
// passes.
const notDeletedCondition = `(deleted_at IS NULL OR deleted_at > now())`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.PortfolioID, &t.UserID, &t.TransactionType, &t.AssetType, &t.TickerSymbol,
		&t.AssetName, &t.Amount, &t.Currency, &t.UnitPrice, &t.TransactionFee, &t.Note,
		&t.CreatedAt, &t.UpdatedAt, &t.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepo) Create(ctx context.Context, t *models.Transaction, tx pgx.Tx) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	query := `
		INSERT INTO transactions (id, portfolio_id, user_id, transaction_type, asset_type, ticker_symbol,
			asset_name, amount, currency, unit_price, transaction_fee, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	args := []interface{}{
		t.ID, t.PortfolioID, t.UserID, t.TransactionType, t.AssetType, t.TickerSymbol,
		t.AssetName, t.Amount, t.Currency, t.UnitPrice, t.TransactionFee, t.Note,
	}

	var err error
	if tx == nil {
		// If no transaction is provided, create a new one
		tx, err = r.db.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback(ctx)
			}
		}()

		err = tx.QueryRow(ctx, query, args...).Scan(&t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	// Use the provided transaction
	return tx.QueryRow(ctx, query, args...).Scan(&t.CreatedAt, &t.UpdatedAt)
}

// GetByID returns the row even when it is soft-deleted; deletion only hides
// rows from listings and valuation, not from direct addressing.
func (r *transactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	row := r.db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return t, err
}

func (r *transactionRepo) List(ctx context.Context, filter TransactionFilter) ([]models.Transaction, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.PortfolioID != nil {
		args = append(args, *filter.PortfolioID)
		conditions = append(conditions, fmt.Sprintf("portfolio_id = $%d", len(args)))
	}
	switch {
	case filter.CreatedAfter != nil && filter.CreatedBefore != nil:
		args = append(args, *filter.CreatedAfter, *filter.CreatedBefore)
		conditions = append(conditions, fmt.Sprintf("created_at BETWEEN $%d AND $%d", len(args)-1, len(args)))
	case filter.CreatedAfter != nil:
		args = append(args, *filter.CreatedAfter)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	case filter.CreatedBefore != nil:
		args = append(args, *filter.CreatedBefore)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if !filter.IncludeDeleted {
		conditions = append(conditions, notDeletedCondition)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Total reflects the filtered set before pagination
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`+whereClause, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	pageArgs := append(args, filter.Skip, filter.Limit)
	query := fmt.Sprintf(`SELECT %s FROM transactions%s ORDER BY created_at DESC OFFSET $%d LIMIT $%d`,
		transactionColumns, whereClause, len(pageArgs)-1, len(pageArgs))

	rows, err := r.db.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, *t)
	}
	return transactions, total, rows.Err()
}

// GetAllByPortfolioID fetches every visible transaction of a portfolio with
// no pagination. Valuation needs the complete ledger.
func (r *transactionRepo) GetAllByPortfolioID(ctx context.Context, portfolioID uuid.UUID) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE portfolio_id = $1 AND `+notDeletedCondition,
		portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

func (r *transactionRepo) Update(ctx context.Context, t *models.Transaction) error {
	query := `
		UPDATE transactions
		SET transaction_type = $2, ticker_symbol = $3, asset_name = $4, amount = $5,
			currency = $6, unit_price = $7, transaction_fee = $8, note = $9, updated_at = now()
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

	err = tx.QueryRow(ctx, query,
		t.ID, t.TransactionType, t.TickerSymbol, t.AssetName, t.Amount,
		t.Currency, t.UnitPrice, t.TransactionFee, t.Note,
	).Scan(&t.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *transactionRepo) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE transactions SET deleted_at = now() WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *transactionRepo) HardDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
