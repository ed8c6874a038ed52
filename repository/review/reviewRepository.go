package reviewrepo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avnishka/BookBee/model"
)

type Repo interface {
	Insert(ctx context.Context, rv *model.Review) error
	ListByBook(ctx context.Context, bookID int64) ([]model.Review, error)
	// ListForOwner returns reviews left on books currently owned by ownerID.
	ListForOwner(ctx context.Context, ownerID int64) ([]model.Review, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, rv *model.Review) error {
	const q = `
		INSERT INTO reviews (author_id, book_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	if err := r.db.QueryRowContext(ctx, q, rv.AuthorID, rv.BookID, rv.Rating, rv.Comment).
		Scan(&rv.ID, &rv.CreatedAt); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *repo) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	const q = `
		SELECT id, author_id, book_id, rating, comment, created_at
		FROM reviews
		WHERE book_id = $1
		ORDER BY created_at DESC, id DESC`
	return r.list(ctx, q, bookID)
}

func (r *repo) ListForOwner(ctx context.Context, ownerID int64) ([]model.Review, error) {
	const q = `
		SELECT rv.id, rv.author_id, rv.book_id, rv.rating, rv.comment, rv.created_at
		FROM reviews rv
		JOIN books b ON b.id = rv.book_id
		WHERE b.owner_id = $1
		ORDER BY rv.created_at DESC, rv.id DESC`
	return r.list(ctx, q, ownerID)
}

func (r *repo) list(ctx context.Context, q string, arg int64) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := []model.Review{}
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.AuthorID, &rv.BookID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
