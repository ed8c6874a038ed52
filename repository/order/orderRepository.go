package orderrepo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avnishka/BookBee/model"
)

type Repo interface {
	// Insert appends an order inside the checkout transaction.
	Insert(ctx context.Context, tx *sql.Tx, o *model.Order) error
	ListForUser(ctx context.Context, userID int64) ([]model.Order, error)

	// Proof of transaction
	HasTransacted(ctx context.Context, a, b int64) (bool, error)
	HasBought(ctx context.Context, buyerID, bookID int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	const q = `
		INSERT INTO orders (buyer_id, seller_id, book_id, transaction_type, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	if err := tx.QueryRowContext(ctx, q, o.BuyerID, o.SellerID, o.BookID, o.TransactionType, o.Price).
		Scan(&o.ID, &o.CreatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *repo) ListForUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const q = `
		SELECT id, buyer_id, seller_id, book_id, transaction_type, price, created_at
		FROM orders
		WHERE buyer_id = $1 OR seller_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.SellerID, &o.BookID, &o.TransactionType, &o.Price, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repo) HasTransacted(ctx context.Context, a, b int64) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM orders
			WHERE (buyer_id = $1 AND seller_id = $2)
			   OR (buyer_id = $2 AND seller_id = $1)
		)`
	var ok bool
	if err := r.db.QueryRowContext(ctx, q, a, b).Scan(&ok); err != nil {
		return false, fmt.Errorf("has transacted: %w", err)
	}
	return ok, nil
}

func (r *repo) HasBought(ctx context.Context, buyerID, bookID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE buyer_id = $1 AND book_id = $2)`, buyerID, bookID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("has bought: %w", err)
	}
	return ok, nil
}
