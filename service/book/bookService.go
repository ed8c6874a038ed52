package booksvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/avnishka/BookBee/model"
	"github.com/avnishka/BookBee/repository/cache"
	"github.com/avnishka/BookBee/util/apperr"
)

type Repo interface {
	Create(ctx context.Context, ownerID int64, nb model.NewBook, pincode string) (*model.Book, error)
	Get(ctx context.Context, id int64) (*model.Book, error)
	Search(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	Delete(ctx context.Context, id int64) error
}

type ReviewLister interface {
	ListByBook(ctx context.Context, bookID int64) ([]model.Review, error)
}

type Service interface {
	Create(ctx context.Context, ownerID int64, nb model.NewBook) (*model.Book, error)
	Search(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.BookDetail, error)
	Delete(ctx context.Context, callerID, id int64) error
}

type service struct {
	r     Repo
	rv    ReviewLister
	cache cache.BookCache
	log   *slog.Logger
}

func New(r Repo, rv ReviewLister, c cache.BookCache, log *slog.Logger) Service {
	return &service{r: r, rv: rv, cache: c, log: log}
}

func (s *service) Create(ctx context.Context, ownerID int64, nb model.NewBook) (*model.Book, error) {
	nb.Title = strings.TrimSpace(nb.Title)
	if nb.Title == "" {
		return nil, apperr.Newf(apperr.ErrInvalidInput, "title is required")
	}
	if !nb.TransactionType.Valid() {
		return nil, apperr.Newf(apperr.ErrInvalidInput, "transaction_type must be rent or buy")
	}
	nb.Price = nb.Price.Round(2)
	nb.SecurityDeposit = nb.SecurityDeposit.Round(2)
	if nb.Price.IsNegative() || nb.Price.GreaterThan(model.MaxPrice) {
		return nil, apperr.Newf(apperr.ErrInvalidInput, "price out of range")
	}
	if nb.SecurityDeposit.IsNegative() || nb.SecurityDeposit.GreaterThan(model.MaxPrice) {
		return nil, apperr.Newf(apperr.ErrInvalidInput, "security_deposit out of range")
	}

	b, err := s.r.Create(ctx, ownerID, nb, model.ExtractPincode(nb.Location))
	if err != nil {
		return nil, err
	}
	s.log.Info("book listed", "book_id", b.ID, "owner_id", ownerID, "type", b.TransactionType)
	return b, nil
}

func (s *service) Search(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
	switch f.Mode {
	case "":
		f.Mode = model.ModeHome
	case model.ModeHome, model.ModeAll:
	default:
		return nil, apperr.Newf(apperr.ErrInvalidInput, "unknown mode")
	}
	switch f.Sort {
	case model.SortNewest, model.SortPriceAsc, model.SortPriceDesc:
	default:
		return nil, apperr.Newf(apperr.ErrInvalidInput, "unknown sort")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return nil, apperr.Newf(apperr.ErrInvalidInput, "min_price is greater than max_price")
	}
	return s.r.Search(ctx, f)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.BookDetail, error) {
	if d, ok := s.cache.Get(ctx, id); ok {
		return d, nil
	}
	b, err := s.r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.ErrNotFound)
		}
		return nil, err
	}
	reviews, err := s.rv.ListByBook(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("book %d reviews: %w", id, err)
	}
	d := &model.BookDetail{Book: *b, Reviews: reviews, AvgRating: model.AverageRating(reviews)}
	s.cache.Set(ctx, d)
	return d, nil
}

// Delete only lets the owner remove a book that has not been lent or sold.
func (s *service) Delete(ctx context.Context, callerID, id int64) error {
	b, err := s.r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.ErrNotFound)
		}
		return err
	}
	if b.OwnerID != callerID {
		return apperr.New(apperr.ErrUnauthorized)
	}
	if b.Status != model.BookAvailable {
		return apperr.Newf(apperr.ErrInvalidState, string(b.Status))
	}
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.ErrNotFound)
		}
		return err
	}
	s.cache.Invalidate(ctx, id)
	s.log.Info("book deleted", "book_id", id, "owner_id", callerID)
	return nil
}
