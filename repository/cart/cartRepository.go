package cartrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avnishka/BookBee/model"
	"github.com/avnishka/BookBee/util/database"
)

// ErrBookGone is returned by Add when the book row no longer exists.
var ErrBookGone = errors.New("book no longer exists")

type Repo interface {
	Add(ctx context.Context, userID, bookID int64) error
	Remove(ctx context.Context, userID, bookID int64) error
	Items(ctx context.Context, userID int64) ([]model.Book, error)
	BookIDs(ctx context.Context, userID int64) ([]int64, error)
	Clear(ctx context.Context, userID int64, bookIDs []int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

// Add is idempotent; the cart exists as soon as it holds a row.
func (r *repo) Add(ctx context.Context, userID, bookID int64) error {
	const q = `
		INSERT INTO cart_items (user_id, book_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, book_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, q, userID, bookID); err != nil {
		if database.IsForeignKeyViolation(err) {
			return ErrBookGone
		}
		return fmt.Errorf("add to cart: %w", err)
	}
	return nil
}

func (r *repo) Remove(ctx context.Context, userID, bookID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND book_id = $2`, userID, bookID); err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	return nil
}

func (r *repo) Items(ctx context.Context, userID int64) ([]model.Book, error) {
	const q = `
		SELECT b.id, b.owner_id, b.title, b.price, b.security_deposit, b.location, b.pincode,
			b.description, b.genre, b.transaction_type, b.status, b.created_at
		FROM cart_items ci
		JOIN books b ON b.id = ci.book_id
		WHERE ci.user_id = $1
		ORDER BY ci.added_at, b.id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("cart items: %w", err)
	}
	defer rows.Close()

	out := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Title, &b.Price, &b.SecurityDeposit, &b.Location,
			&b.Pincode, &b.Description, &b.Genre, &b.TransactionType, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) BookIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT book_id FROM cart_items WHERE user_id = $1 ORDER BY added_at, book_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("cart book ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Clear removes the given books from the user's cart. Rows added after the
// caller read the cart are left in place.
func (r *repo) Clear(ctx context.Context, userID int64, bookIDs []int64) error {
	if len(bookIDs) == 0 {
		return nil
	}
	const q = `DELETE FROM cart_items WHERE user_id = $1 AND book_id = ANY($2)`
	if _, err := r.db.ExecContext(ctx, q, userID, bookIDs); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
