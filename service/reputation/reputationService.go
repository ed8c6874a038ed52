package reputationsvc

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/avnishka/BookBee/model"
	"github.com/avnishka/BookBee/repository/cache"
	creditrepo "github.com/avnishka/BookBee/repository/credit"
	"github.com/avnishka/BookBee/repository/events"
	"github.com/avnishka/BookBee/util/apperr"
)

// OrderProof answers whether a transaction happened.
type OrderProof interface {
	HasTransacted(ctx context.Context, a, b int64) (bool, error)
	HasBought(ctx context.Context, buyerID, bookID int64) (bool, error)
}

type BookGetter interface {
	Get(ctx context.Context, id int64) (*model.Book, error)
}

type UserGetter interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type ReviewRepo interface {
	Insert(ctx context.Context, rv *model.Review) error
	ListForOwner(ctx context.Context, ownerID int64) ([]model.Review, error)
}

type CreditRepo interface {
	Insert(ctx context.Context, c *model.UserCredit, onePerPair bool) error
	TotalScore(ctx context.Context, receiverID int64) (int64, error)
}

type Service interface {
	HasTransacted(ctx context.Context, a, b int64) (bool, error)
	SubmitReview(ctx context.Context, authorID, bookID int64, rating int, comment string) (*model.Review, error)
	GiveCredit(ctx context.Context, giverID, receiverID int64, message string) (*model.UserCredit, error)
	TotalScore(ctx context.Context, userID int64) (int64, error)
	ReceivedReviews(ctx context.Context, userID int64) ([]model.Review, error)
}

type Options struct {
	// CreditOnePerPair limits a giver to one credit per receiver.
	CreditOnePerPair bool
}

type service struct {
	orders  OrderProof
	books   BookGetter
	users   UserGetter
	reviews ReviewRepo
	credits CreditRepo
	cache   cache.BookCache
	pub     events.Publisher
	opt     Options
	log     *slog.Logger
}

func New(orders OrderProof, books BookGetter, users UserGetter, reviews ReviewRepo, credits CreditRepo,
	c cache.BookCache, pub events.Publisher, opt Options, log *slog.Logger) Service {
	return &service{orders: orders, books: books, users: users, reviews: reviews, credits: credits,
		cache: c, pub: pub, opt: opt, log: log}
}

func (s *service) HasTransacted(ctx context.Context, a, b int64) (bool, error) {
	return s.orders.HasTransacted(ctx, a, b)
}

// SubmitReview requires the author to have ordered the book. Rating 0 means the default.
func (s *service) SubmitReview(ctx context.Context, authorID, bookID int64, rating int, comment string) (*model.Review, error) {
	if _, err := s.books.Get(ctx, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.ErrNotFound)
		}
		return nil, err
	}
	if rating == 0 {
		rating = model.DefaultRating
	}
	if rating < model.MinRating || rating > model.MaxRating {
		return nil, apperr.Newf(apperr.ErrInvalidInput, "rating must be between 1 and 5")
	}
	ok, err := s.orders.HasBought(ctx, authorID, bookID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.New(apperr.ErrNotEntitled)
	}

	rv := &model.Review{AuthorID: authorID, BookID: bookID, Rating: rating, Comment: strings.TrimSpace(comment)}
	if err := s.reviews.Insert(ctx, rv); err != nil {
		return nil, err
	}
	// cached detail carries the review list and average
	s.cache.Invalidate(ctx, bookID)
	return rv, nil
}

func (s *service) GiveCredit(ctx context.Context, giverID, receiverID int64, message string) (*model.UserCredit, error) {
	if giverID == receiverID {
		return nil, apperr.New(apperr.ErrSelfCredit)
	}
	if _, err := s.users.ByID(ctx, receiverID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.ErrNotFound)
		}
		return nil, err
	}
	ok, err := s.orders.HasTransacted(ctx, giverID, receiverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.New(apperr.ErrNotEntitled)
	}

	c := &model.UserCredit{GiverID: giverID, ReceiverID: receiverID, Score: model.DefaultScore, Message: strings.TrimSpace(message)}
	if err := s.credits.Insert(ctx, c, s.opt.CreditOnePerPair); err != nil {
		if errors.Is(err, creditrepo.ErrDuplicate) {
			return nil, apperr.New(apperr.ErrAlreadyCredited)
		}
		return nil, err
	}
	if err := s.pub.Publish(ctx, events.New(events.TypeCreditGiven, c)); err != nil {
		s.log.Warn("publish credit.given", "credit_id", c.ID, "err", err)
	}
	return c, nil
}

func (s *service) TotalScore(ctx context.Context, userID int64) (int64, error) {
	return s.credits.TotalScore(ctx, userID)
}

func (s *service) ReceivedReviews(ctx context.Context, userID int64) ([]model.Review, error) {
	return s.reviews.ListForOwner(ctx, userID)
}
