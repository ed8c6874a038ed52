package profilesvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avnishka/BookBee/model"
	"github.com/avnishka/BookBee/util/apperr"
)

type UserGetter interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type BookLister interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Book, error)
}

type Reputation interface {
	TotalScore(ctx context.Context, userID int64) (int64, error)
	ReceivedReviews(ctx context.Context, userID int64) ([]model.Review, error)
}

type Unread interface {
	UnreadCount(ctx context.Context, userID int64) (int64, error)
}

type Service interface {
	Get(ctx context.Context, userID int64) (*model.Profile, error)
}

type service struct {
	users UserGetter
	books BookLister
	rep   Reputation
	chat  Unread
}

func New(users UserGetter, books BookLister, rep Reputation, chat Unread) Service {
	return &service{users: users, books: books, rep: rep, chat: chat}
}

func (s *service) Get(ctx context.Context, userID int64) (*model.Profile, error) {
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.ErrNotFound)
		}
		return nil, err
	}
	books, err := s.books.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.rep.ReceivedReviews(ctx, userID)
	if err != nil {
		return nil, err
	}
	score, err := s.rep.TotalScore(ctx, userID)
	if err != nil {
		return nil, err
	}
	unread, err := s.chat.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.Profile{
		User:            *u,
		Books:           books,
		ReceivedReviews: reviews,
		TrustScore:      score,
		UnreadMessages:  unread,
	}, nil
}
