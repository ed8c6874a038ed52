package chatrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avnishka/BookBee/model"
	"github.com/avnishka/BookBee/util/database"
)

// ErrUnknownUser is returned when a room would reference a missing user.
var ErrUnknownUser = errors.New("unknown user")

type Repo interface {
	// Rooms
	GetOrCreate(ctx context.Context, user1, user2 int64) (*model.ChatRoom, error)
	Get(ctx context.Context, roomID int64) (*model.ChatRoom, error)
	ListForUser(ctx context.Context, userID int64) ([]model.RoomSummary, error)
	Delete(ctx context.Context, roomID int64) error

	// Messages
	InsertMessage(ctx context.Context, m *model.Message) error
	MarkRead(ctx context.Context, roomID, viewerID int64) (int64, error)
	Messages(ctx context.Context, roomID int64) ([]model.Message, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

// GetOrCreate expects a canonical pair (user1 < user2). Concurrent callers
// converge on the row guarded by the unique (user1_id, user2_id) index.
func (r *repo) GetOrCreate(ctx context.Context, user1, user2 int64) (*model.ChatRoom, error) {
	const ins = `
		INSERT INTO chat_rooms (user1_id, user2_id)
		VALUES ($1, $2)
		ON CONFLICT (user1_id, user2_id) DO NOTHING
		RETURNING id, user1_id, user2_id, created_at`
	room := &model.ChatRoom{}
	err := r.db.QueryRowContext(ctx, ins, user1, user2).Scan(&room.ID, &room.User1ID, &room.User2ID, &room.CreatedAt)
	switch {
	case err == nil:
		return room, nil
	case database.IsForeignKeyViolation(err):
		return nil, ErrUnknownUser
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("create room: %w", err)
	}

	const sel = `
		SELECT id, user1_id, user2_id, created_at
		FROM chat_rooms
		WHERE user1_id = $1 AND user2_id = $2`
	if err := r.db.QueryRowContext(ctx, sel, user1, user2).Scan(&room.ID, &room.User1ID, &room.User2ID, &room.CreatedAt); err != nil {
		return nil, fmt.Errorf("load room: %w", err)
	}
	return room, nil
}

func (r *repo) Get(ctx context.Context, roomID int64) (*model.ChatRoom, error) {
	room := &model.ChatRoom{}
	err := r.db.QueryRowContext(ctx, `SELECT id, user1_id, user2_id, created_at FROM chat_rooms WHERE id = $1`, roomID).
		Scan(&room.ID, &room.User1ID, &room.User2ID, &room.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("room %d: %w", roomID, err)
	}
	return room, nil
}

func (r *repo) ListForUser(ctx context.Context, userID int64) ([]model.RoomSummary, error) {
	const q = `
		SELECT cr.id, cr.user1_id, cr.user2_id, cr.created_at,
			u.id, u.username,
			(SELECT COUNT(*) FROM messages m
			 WHERE m.room_id = cr.id AND m.is_read = FALSE AND m.sender_id <> $1) AS unread
		FROM chat_rooms cr
		JOIN users u ON u.id = CASE WHEN cr.user1_id = $1 THEN cr.user2_id ELSE cr.user1_id END
		WHERE cr.user1_id = $1 OR cr.user2_id = $1
		ORDER BY cr.created_at DESC, cr.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	out := []model.RoomSummary{}
	for rows.Next() {
		var s model.RoomSummary
		if err := rows.Scan(&s.Room.ID, &s.Room.User1ID, &s.Room.User2ID, &s.Room.CreatedAt,
			&s.OtherUserID, &s.OtherName, &s.Unread); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes the room; messages cascade.
func (r *repo) Delete(ctx context.Context, roomID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM chat_rooms WHERE id = $1`, roomID); err != nil {
		return fmt.Errorf("delete room %d: %w", roomID, err)
	}
	return nil
}

func (r *repo) InsertMessage(ctx context.Context, m *model.Message) error {
	const q = `
		INSERT INTO messages (room_id, sender_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, is_read, created_at`
	if err := r.db.QueryRowContext(ctx, q, m.RoomID, m.SenderID, m.Text).Scan(&m.ID, &m.IsRead, &m.CreatedAt); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// MarkRead flips every unread message in the room not sent by the viewer.
func (r *repo) MarkRead(ctx context.Context, roomID, viewerID int64) (int64, error) {
	const q = `
		UPDATE messages
		SET is_read = TRUE
		WHERE room_id = $1
		  AND sender_id <> $2
		  AND is_read = FALSE`
	res, err := r.db.ExecContext(ctx, q, roomID, viewerID)
	if err != nil {
		return 0, fmt.Errorf("mark read: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *repo) Messages(ctx context.Context, roomID int64) ([]model.Message, error) {
	const q = `
		SELECT id, room_id, sender_id, text, created_at, is_read
		FROM messages
		WHERE room_id = $1
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	out := []model.Message{}
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Text, &m.CreatedAt, &m.IsRead); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repo) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	const q = `
		SELECT COUNT(*)
		FROM messages m
		JOIN chat_rooms cr ON cr.id = m.room_id
		WHERE (cr.user1_id = $1 OR cr.user2_id = $1)
		  AND m.sender_id <> $1
		  AND m.is_read = FALSE`
	var n int64
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	return n, nil
}
