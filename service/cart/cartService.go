package cartsvc

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/avnishka/BookBee/model"
	cartrepo "github.com/avnishka/BookBee/repository/cart"
	"github.com/avnishka/BookBee/util/apperr"
)

type Repo interface {
	Add(ctx context.Context, userID, bookID int64) error
	Remove(ctx context.Context, userID, bookID int64) error
	Items(ctx context.Context, userID int64) ([]model.Book, error)
}

type BookGetter interface {
	Get(ctx context.Context, id int64) (*model.Book, error)
}

// RoomOpener is the messaging side effect of adding a book.
type RoomOpener interface {
	GetOrCreateRoom(ctx context.Context, a, b int64) (*model.ChatRoom, error)
}

type Service interface {
	Add(ctx context.Context, userID, bookID int64) error
	Remove(ctx context.Context, userID, bookID int64) error
	View(ctx context.Context, userID int64) (*model.CartView, error)
}

type service struct {
	r     Repo
	books BookGetter
	rooms RoomOpener
	log   *slog.Logger
}

func New(r Repo, books BookGetter, rooms RoomOpener, log *slog.Logger) Service {
	return &service{r: r, books: books, rooms: rooms, log: log}
}

// Add stages a book. Nothing is reserved; checkout re-validates.
func (s *service) Add(ctx context.Context, userID, bookID int64) error {
	b, err := s.books.Get(ctx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.ErrNotFound)
		}
		return err
	}
	if b.OwnerID == userID {
		return apperr.New(apperr.ErrSelfTransaction)
	}
	if !b.IsAvailable() {
		return apperr.Newf(apperr.ErrInvalidState, string(b.Status))
	}
	if err := s.r.Add(ctx, userID, bookID); err != nil {
		if errors.Is(err, cartrepo.ErrBookGone) {
			return apperr.New(apperr.ErrNotFound)
		}
		return err
	}

	if _, err := s.rooms.GetOrCreateRoom(ctx, userID, b.OwnerID); err != nil {
		s.log.Warn("open chat with owner", "user_id", userID, "owner_id", b.OwnerID, "err", err)
	}
	return nil
}

func (s *service) Remove(ctx context.Context, userID, bookID int64) error {
	return s.r.Remove(ctx, userID, bookID)
}

func (s *service) View(ctx context.Context, userID int64) (*model.CartView, error) {
	items, err := s.r.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.CartView{Items: items, Total: Total(items)}, nil
}

func Total(items []model.Book) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range items {
		sum = sum.Add(b.Price)
	}
	return sum
}
