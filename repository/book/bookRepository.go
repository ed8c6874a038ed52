package bookrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/avnishka/BookBee/model"
)

type Repo interface {
	Create(ctx context.Context, ownerID int64, nb model.NewBook, pincode string) (*model.Book, error)
	Get(ctx context.Context, id int64) (*model.Book, error)
	Search(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Book, error)
	Delete(ctx context.Context, id int64) error

	// Checkout
	LockForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Book, error)
	SaveTransition(ctx context.Context, tx *sql.Tx, b *model.Book) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const bookCols = `id, owner_id, title, price, security_deposit, location, pincode,
	description, genre, transaction_type, status, created_at`

type scanner interface{ Scan(dest ...any) error }

func scanBook(s scanner) (*model.Book, error) {
	var b model.Book
	if err := s.Scan(&b.ID, &b.OwnerID, &b.Title, &b.Price, &b.SecurityDeposit, &b.Location,
		&b.Pincode, &b.Description, &b.Genre, &b.TransactionType, &b.Status, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBooks(rows *sql.Rows) ([]model.Book, error) {
	defer rows.Close()
	out := []model.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *repo) Create(ctx context.Context, ownerID int64, nb model.NewBook, pincode string) (*model.Book, error) {
	const q = `
		INSERT INTO books (owner_id, title, price, security_deposit, location, pincode,
			description, genre, transaction_type, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,'AVAILABLE')
		RETURNING ` + bookCols
	b, err := scanBook(r.db.QueryRowContext(ctx, q, ownerID, nb.Title, nb.Price, nb.SecurityDeposit,
		nb.Location, pincode, nb.Description, nb.Genre, nb.TransactionType))
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}
	return b, nil
}

// Get returns sql.ErrNoRows (wrapped) when the book does not exist.
func (r *repo) Get(ctx context.Context, id int64) (*model.Book, error) {
	b, err := scanBook(r.db.QueryRowContext(ctx, `SELECT `+bookCols+` FROM books WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return b, nil
}

func (r *repo) Search(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
	q, args := buildSearch(f)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return scanBooks(rows)
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owner books: %w", err)
	}
	return scanBooks(rows)
}

// Delete removes the book; cart entries, reviews and orders cascade.
func (r *repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete book %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (r *repo) LockForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Book, error) {
	b, err := scanBook(tx.QueryRowContext(ctx, `SELECT `+bookCols+` FROM books WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, fmt.Errorf("lock book %d: %w", id, err)
	}
	return b, nil
}

func (r *repo) SaveTransition(ctx context.Context, tx *sql.Tx, b *model.Book) error {
	const q = `
		UPDATE books
		SET owner_id = $2,
			status = $3
		WHERE id = $1`
	if _, err := tx.ExecContext(ctx, q, b.ID, b.OwnerID, b.Status); err != nil {
		return fmt.Errorf("update book %d: %w", b.ID, err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func contains(s string) string { return "%" + likeEscaper.Replace(s) + "%" }

// buildSearch turns the filter into a parameterised query. Filters are ANDed.
func buildSearch(f model.BookFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Mode != model.ModeAll {
		where = append(where, "status = 'AVAILABLE'")
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		p := arg(contains(q))
		where = append(where, fmt.Sprintf(
			"(title ILIKE %[1]s OR location ILIKE %[1]s OR pincode ILIKE %[1]s OR description ILIKE %[1]s OR genre ILIKE %[1]s)", p))
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		where = append(where, "location ILIKE "+arg(contains(loc)))
	}
	if g := strings.TrimSpace(f.Genre); g != "" {
		where = append(where, "genre = "+arg(g))
	}
	if f.MinPrice != nil {
		where = append(where, "price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= "+arg(*f.MaxPrice))
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + bookCols + " FROM books")
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	switch f.Sort {
	case model.SortPriceAsc:
		sb.WriteString(" ORDER BY price ASC, created_at DESC, id DESC")
	case model.SortPriceDesc:
		sb.WriteString(" ORDER BY price DESC, created_at DESC, id DESC")
	default:
		sb.WriteString(" ORDER BY created_at DESC, id DESC")
	}
	return sb.String(), args
}
