package chatsvc

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/avnishka/BookBee/model"
	chatrepo "github.com/avnishka/BookBee/repository/chat"
	"github.com/avnishka/BookBee/util/apperr"
)

type Repo interface {
	GetOrCreate(ctx context.Context, user1, user2 int64) (*model.ChatRoom, error)
	Get(ctx context.Context, roomID int64) (*model.ChatRoom, error)
	ListForUser(ctx context.Context, userID int64) ([]model.RoomSummary, error)
	Delete(ctx context.Context, roomID int64) error
	InsertMessage(ctx context.Context, m *model.Message) error
	MarkRead(ctx context.Context, roomID, viewerID int64) (int64, error)
	Messages(ctx context.Context, roomID int64) ([]model.Message, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
}

type UserFinder interface {
	ByUsername(ctx context.Context, username string) (*model.User, error)
}

type RoomView struct {
	Room     model.ChatRoom  `json:"room"`
	Messages []model.Message `json:"messages"`
}

type Service interface {
	GetOrCreateRoom(ctx context.Context, a, b int64) (*model.ChatRoom, error)
	StartWithUsername(ctx context.Context, userID int64, username string) (*model.ChatRoom, error)
	ListRooms(ctx context.Context, userID int64) ([]model.RoomSummary, error)
	PostMessage(ctx context.Context, roomID, senderID int64, text string) (*model.Message, error)
	OpenRoom(ctx context.Context, roomID, viewerID int64) (*RoomView, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
	DeleteRoom(ctx context.Context, roomID, callerID int64) error
}

type service struct {
	r     Repo
	users UserFinder
	log   *slog.Logger
}

func New(r Repo, users UserFinder, log *slog.Logger) Service {
	return &service{r: r, users: users, log: log}
}

func (s *service) GetOrCreateRoom(ctx context.Context, a, b int64) (*model.ChatRoom, error) {
	if a == b {
		return nil, apperr.New(apperr.ErrSelfChat)
	}
	lo, hi := model.CanonicalPair(a, b)
	room, err := s.r.GetOrCreate(ctx, lo, hi)
	if err != nil {
		if errors.Is(err, chatrepo.ErrUnknownUser) {
			return nil, apperr.New(apperr.ErrNotFound)
		}
		return nil, err
	}
	return room, nil
}

func (s *service) StartWithUsername(ctx context.Context, userID int64, username string) (*model.ChatRoom, error) {
	u, err := s.users.ByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.ErrNotFound)
		}
		return nil, err
	}
	return s.GetOrCreateRoom(ctx, userID, u.ID)
}

func (s *service) ListRooms(ctx context.Context, userID int64) ([]model.RoomSummary, error) {
	return s.r.ListForUser(ctx, userID)
}

// participantRoom loads the room and checks userID belongs to it.
func (s *service) participantRoom(ctx context.Context, roomID, userID int64) (*model.ChatRoom, error) {
	room, err := s.r.Get(ctx, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.ErrNotFound)
		}
		return nil, err
	}
	if !room.Has(userID) {
		return nil, apperr.New(apperr.ErrForbidden)
	}
	return room, nil
}

func (s *service) PostMessage(ctx context.Context, roomID, senderID int64, text string) (*model.Message, error) {
	if _, err := s.participantRoom(ctx, roomID, senderID); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Newf(apperr.ErrInvalidInput, "message text is empty")
	}
	m := &model.Message{RoomID: roomID, SenderID: senderID, Text: text}
	if err := s.r.InsertMessage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// OpenRoom marks the other participant's messages read and returns the
// conversation oldest first.
func (s *service) OpenRoom(ctx context.Context, roomID, viewerID int64) (*RoomView, error) {
	room, err := s.participantRoom(ctx, roomID, viewerID)
	if err != nil {
		return nil, err
	}
	n, err := s.r.MarkRead(ctx, roomID, viewerID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.r.Messages(ctx, roomID)
	if err != nil {
		return nil, err
	}
	s.log.Debug("room opened", "room_id", roomID, "viewer_id", viewerID, "marked_read", n)
	return &RoomView{Room: *room, Messages: msgs}, nil
}

func (s *service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.r.UnreadCount(ctx, userID)
}

func (s *service) DeleteRoom(ctx context.Context, roomID, callerID int64) error {
	if _, err := s.participantRoom(ctx, roomID, callerID); err != nil {
		return err
	}
	return s.r.Delete(ctx, roomID)
}
